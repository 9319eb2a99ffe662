package report

import (
	"sort"
	"time"
)

// RecentWindow is the trailing interval of the "sales in the last hour" metric.
const RecentWindow = time.Hour

// Report is the dashboard view of the sale log. It is built fresh on every
// call and shares no state with the input or with other reports.
type Report struct {
	TotalQuantity int64
	TotalRevenue  int64
	// RecentRevenue is the revenue of the trailing RecentWindow.
	RecentRevenue int64

	Hourly     []HourlyPoint
	Cumulative []int64 // aligned index by index with Hourly
	Products   []ProductTotal

	Shifts        map[int]ShiftTotal
	ShiftProducts map[int]map[string]int64

	// Count is the number of sales scanned.
	Count int
}

// Build scans sales once and assembles every aggregate. An empty slice yields
// a zero report with empty (non-nil) series and maps.
func Build(sales []Sale, now time.Time, opts Options) Report {
	zone := opts.Zone()
	hourly := newHourlyBuckets(zone)
	products := newProductTotals()
	shifts := newShiftTotals()

	r := Report{Count: len(sales)}
	for _, s := range sales {
		r.TotalQuantity += s.Quantity
		r.TotalRevenue += s.Total
		hourly.add(s)
		products.add(s)
		shifts.add(s)
	}

	r.Hourly = hourly.series()
	r.Cumulative = Cumulative(r.Hourly)
	r.Products = products.rows
	if r.Products == nil {
		r.Products = []ProductTotal{}
	}
	r.Shifts = shifts.totals
	r.ShiftProducts = shifts.products
	r.RecentRevenue = RecentRevenue(sales, now, opts)
	return r
}

// ShiftNumbers returns the shifts present in the report in ascending order.
func (r Report) ShiftNumbers() []int {
	out := make([]int, 0, len(r.Shifts))
	for s := range r.Shifts {
		out = append(out, s)
	}
	sort.Ints(out)
	return out
}

// ShiftProductList returns one shift's item quantities sorted by item name.
func (r Report) ShiftProductList(shift int) []ProductTotal {
	byItem := r.ShiftProducts[shift]
	out := make([]ProductTotal, 0, len(byItem))
	for name, q := range byItem {
		out = append(out, ProductTotal{Name: name, Quantity: q})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
