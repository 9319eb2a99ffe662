package report

import (
	"sort"
	"time"
)

// BucketLayout renders an hour bucket as "MM/DD HH:00". Every numeric field is
// zero padded, which is what lets a plain string sort order the buckets.
const BucketLayout = "01/02 15:00"

// HourlyPoint is the quantity sold inside one hour bucket.
type HourlyPoint struct {
	Label    string
	Quantity int64
}

// BucketLabel returns the hour bucket of t in zone.
func BucketLabel(t time.Time, zone *time.Location) string {
	return t.In(zone).Format(BucketLayout)
}

// hourlyBuckets accumulates quantity per bucket label.
type hourlyBuckets struct {
	zone *time.Location
	qty  map[string]int64
}

func newHourlyBuckets(zone *time.Location) *hourlyBuckets {
	return &hourlyBuckets{zone: zone, qty: make(map[string]int64)}
}

func (b *hourlyBuckets) add(s Sale) {
	b.qty[BucketLabel(s.CreatedAt, b.zone)] += s.Quantity
}

// series returns the buckets sorted by label string.
//
// The order is lexicographic on the label, not on the instant: it is only
// chronological within one calendar year (12/31 23:00 sorts after 01/01 00:00
// of the following year).
func (b *hourlyBuckets) series() []HourlyPoint {
	labels := make([]string, 0, len(b.qty))
	for l := range b.qty {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	out := make([]HourlyPoint, len(labels))
	for i, l := range labels {
		out[i] = HourlyPoint{Label: l, Quantity: b.qty[l]}
	}
	return out
}

// Cumulative returns the running sum of the hourly quantities; element i is
// the sum of points[0..i].
func Cumulative(points []HourlyPoint) []int64 {
	out := make([]int64, len(points))
	var sum int64
	for i, p := range points {
		sum += p.Quantity
		out[i] = sum
	}
	return out
}
