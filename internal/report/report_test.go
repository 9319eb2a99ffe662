package report

import (
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jst = Options{Offset: 9 * time.Hour}

func intPtr(n int) *int { return &n }

func mustSale(t *testing.T, name string, price, qty int64, shift *int, at time.Time) Sale {
	t.Helper()
	s, err := NewSale(name, price, qty, shift, at)
	require.NoError(t, err)
	return s
}

// localTime builds an instant from shop-local wall clock fields.
func localTime(month time.Month, day, hour, min int) time.Time {
	return time.Date(2024, month, day, hour, min, 0, 0, jst.Zone())
}

func exampleSales(t *testing.T) []Sale {
	return []Sale{
		mustSale(t, "ItemA", 100, 2, intPtr(1), localTime(time.June, 1, 10, 15)),
		mustSale(t, "ItemB", 150, 1, intPtr(1), localTime(time.June, 1, 10, 45)),
		mustSale(t, "ItemA", 100, 3, intPtr(2), localTime(time.June, 1, 11, 5)),
	}
}

// ── NewSale ───────────────────────────────────────────────────────────────────

func TestNewSale_DerivesTotal(t *testing.T) {
	s, err := NewSale("Dango", 200, 3, nil, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(600), s.Total)
	assert.Nil(t, s.Shift)
}

func TestNewSale_CopiesShift(t *testing.T) {
	shift := 4
	s, err := NewSale("Dango", 200, 1, &shift, time.Now())
	require.NoError(t, err)
	shift = 9
	assert.Equal(t, 4, *s.Shift)
}

func TestNewSale_Rejects(t *testing.T) {
	now := time.Now()
	cases := map[string]func() error{
		"empty name":     func() error { _, err := NewSale("  ", 1, 1, nil, now); return err },
		"negative price": func() error { _, err := NewSale("x", -1, 1, nil, now); return err },
		"zero quantity":  func() error { _, err := NewSale("x", 1, 0, nil, now); return err },
		"zero shift":     func() error { _, err := NewSale("x", 1, 1, intPtr(0), now); return err },
		"no timestamp":   func() error { _, err := NewSale("x", 1, 1, nil, time.Time{}); return err },
		"total overflow": func() error { _, err := NewSale("x", math.MaxInt64/2, 3, nil, now); return err },
	}
	for name, fn := range cases {
		t.Run(name, func(t *testing.T) {
			assert.True(t, errors.Is(fn(), ErrInvalidSale))
		})
	}
}

func TestNewSale_LargestTotal(t *testing.T) {
	s, err := NewSale("x", math.MaxInt64/3, 3, nil, time.Now())
	require.NoError(t, err)
	assert.Positive(t, s.Total)
}

func TestRestoreSale_TotalMismatch(t *testing.T) {
	_, err := RestoreSale("x", 100, 2, 150, nil, time.Now())
	assert.ErrorIs(t, err, ErrInvalidSale)

	s, err := RestoreSale("x", 100, 2, 200, nil, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(200), s.Total)
}

// ── Build ─────────────────────────────────────────────────────────────────────

func TestBuild_ExampleScenario(t *testing.T) {
	r := Build(exampleSales(t), localTime(time.June, 1, 12, 0), jst)

	assert.Equal(t, int64(6), r.TotalQuantity)
	assert.Equal(t, int64(650), r.TotalRevenue)
	assert.Equal(t, []HourlyPoint{{"06/01 10:00", 3}, {"06/01 11:00", 3}}, r.Hourly)
	assert.Equal(t, []int64{3, 6}, r.Cumulative)
	assert.Equal(t, []ProductTotal{{"ItemA", 5}, {"ItemB", 1}}, r.Products)
	assert.Equal(t, map[int]ShiftTotal{1: {3, 350}, 2: {3, 300}}, r.Shifts)
	assert.Equal(t, map[int]map[string]int64{
		1: {"ItemA": 2, "ItemB": 1},
		2: {"ItemA": 3},
	}, r.ShiftProducts)
	assert.Equal(t, []int{1, 2}, r.ShiftNumbers())
	assert.Equal(t, 3, r.Count)
}

func TestBuild_Empty(t *testing.T) {
	r := Build(nil, time.Now(), jst)

	assert.Zero(t, r.TotalQuantity)
	assert.Zero(t, r.TotalRevenue)
	assert.Zero(t, r.RecentRevenue)
	assert.NotNil(t, r.Hourly)
	assert.Empty(t, r.Hourly)
	assert.NotNil(t, r.Cumulative)
	assert.Empty(t, r.Cumulative)
	assert.NotNil(t, r.Products)
	assert.Empty(t, r.Products)
	assert.NotNil(t, r.Shifts)
	assert.Empty(t, r.Shifts)
	assert.NotNil(t, r.ShiftProducts)
	assert.Empty(t, r.ShiftProducts)
}

func TestBuild_UnassignedShiftCountsInTotalsOnly(t *testing.T) {
	sales := append(exampleSales(t), mustSale(t, "ItemC", 500, 1, nil, localTime(time.June, 1, 11, 30)))
	r := Build(sales, localTime(time.June, 1, 12, 0), jst)

	assert.Equal(t, int64(7), r.TotalQuantity)
	assert.Equal(t, int64(1150), r.TotalRevenue)
	assert.Len(t, r.Shifts, 2)
	var shiftRevenue int64
	for _, st := range r.Shifts {
		shiftRevenue += st.Revenue
	}
	assert.Less(t, shiftRevenue, r.TotalRevenue)
}

func TestBuild_ProductOrderIsFirstSeen(t *testing.T) {
	at := localTime(time.June, 1, 9, 0)
	sales := []Sale{
		mustSale(t, "Zunda", 100, 1, nil, at),
		mustSale(t, "Anko", 100, 1, nil, at),
		mustSale(t, "Zunda", 100, 4, nil, at),
		mustSale(t, "Kinako", 100, 2, nil, at),
	}
	r := Build(sales, at, jst)
	assert.Equal(t, []ProductTotal{{"Zunda", 5}, {"Anko", 1}, {"Kinako", 2}}, r.Products)
}

func TestBuild_HourlyIgnoresInputOrder(t *testing.T) {
	sales := exampleSales(t)
	reversed := []Sale{sales[2], sales[1], sales[0]}
	now := localTime(time.June, 1, 12, 0)
	assert.Equal(t, Build(sales, now, jst).Hourly, Build(reversed, now, jst).Hourly)
}

func TestBuild_BucketUsesOffset(t *testing.T) {
	// 23:30 UTC on May 31 is 08:30 on June 1 at +09:00.
	at := time.Date(2024, time.May, 31, 23, 30, 0, 0, time.UTC)
	r := Build([]Sale{mustSale(t, "x", 1, 1, nil, at)}, at, jst)
	assert.Equal(t, "06/01 08:00", r.Hourly[0].Label)

	r = Build([]Sale{mustSale(t, "x", 1, 1, nil, at)}, at, Options{})
	assert.Equal(t, "05/31 23:00", r.Hourly[0].Label)
}

func TestBuild_LabelOrderAcrossYearBoundary(t *testing.T) {
	// Buckets are sorted by label string, so January comes before December
	// even when January belongs to the following year.
	dec := time.Date(2023, time.December, 31, 23, 10, 0, 0, jst.Zone())
	jan := time.Date(2024, time.January, 1, 0, 10, 0, 0, jst.Zone())
	r := Build([]Sale{mustSale(t, "x", 1, 1, nil, dec), mustSale(t, "x", 1, 2, nil, jan)}, jan, jst)
	require.Len(t, r.Hourly, 2)
	assert.Equal(t, "01/01 00:00", r.Hourly[0].Label)
	assert.Equal(t, "12/31 23:00", r.Hourly[1].Label)
}

func TestCumulative(t *testing.T) {
	assert.Equal(t, []int64{}, Cumulative(nil))
	assert.Equal(t, []int64{2, 2, 7}, Cumulative([]HourlyPoint{{"a", 2}, {"b", 0}, {"c", 5}}))
}

// ── RecentRevenue ─────────────────────────────────────────────────────────────

func TestRecentRevenue_WindowBoundary(t *testing.T) {
	now := localTime(time.June, 1, 12, 0)
	sales := []Sale{
		mustSale(t, "edge", 100, 1, nil, now.Add(-time.Hour)),
		mustSale(t, "old", 100, 2, nil, now.Add(-time.Hour-time.Second)),
		mustSale(t, "new", 100, 3, nil, now.Add(-time.Minute)),
		mustSale(t, "future", 100, 4, nil, now.Add(10*time.Minute)),
	}
	// edge, new and future are inside the window; old is one second too early.
	assert.Equal(t, int64(800), RecentRevenue(sales, now, jst))
}

func TestRecentRevenue_ExampleScenario(t *testing.T) {
	sales := exampleSales(t)
	r := Build(sales, localTime(time.June, 1, 11, 50), jst)
	// window starts 10:50: only the 11:05 sale counts
	assert.Equal(t, int64(300), r.RecentRevenue)
}

// ── Properties ────────────────────────────────────────────────────────────────

func randomSales(t *testing.T, rng *rand.Rand, n int) []Sale {
	names := []string{"Kinako", "Mitarashi", "Anko", "Matcha"}
	base := localTime(time.March, 10, 8, 0)
	out := make([]Sale, 0, n)
	for i := 0; i < n; i++ {
		var shift *int
		if rng.Intn(4) > 0 {
			shift = intPtr(1 + rng.Intn(3))
		}
		at := base.Add(time.Duration(rng.Intn(36*60)) * time.Minute)
		out = append(out, mustSale(t, names[rng.Intn(len(names))], int64(50*(1+rng.Intn(6))), int64(1+rng.Intn(5)), shift, at))
	}
	return out
}

func TestBuild_TotalsAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for iter := 0; iter < 50; iter++ {
		sales := randomSales(t, rng, rng.Intn(80))
		now := localTime(time.March, 11, 10, 0)
		r := Build(sales, now, jst)

		var hourlySum, productSum int64
		for _, p := range r.Hourly {
			hourlySum += p.Quantity
		}
		for _, p := range r.Products {
			productSum += p.Quantity
		}
		assert.Equal(t, r.TotalQuantity, hourlySum)
		assert.Equal(t, r.TotalQuantity, productSum)

		require.Len(t, r.Cumulative, len(r.Hourly))
		var running int64
		for i, p := range r.Hourly {
			running += p.Quantity
			assert.Equal(t, running, r.Cumulative[i])
			if i > 0 {
				assert.GreaterOrEqual(t, r.Cumulative[i], r.Cumulative[i-1])
				assert.Less(t, r.Hourly[i-1].Label, p.Label)
			}
		}

		wantRevenue := map[int]int64{}
		var wantRecent int64
		for _, s := range sales {
			if s.Shift != nil {
				wantRevenue[*s.Shift] += s.Total
			}
			if !s.CreatedAt.Before(now.Add(-time.Hour)) {
				wantRecent += s.Total
			}
		}
		var shiftRevenue int64
		for shift, st := range r.Shifts {
			assert.Equal(t, wantRevenue[shift], st.Revenue)
			var q int64
			for _, v := range r.ShiftProducts[shift] {
				q += v
			}
			assert.Equal(t, st.Quantity, q)
			shiftRevenue += st.Revenue
		}
		assert.LessOrEqual(t, shiftRevenue, r.TotalRevenue)
		assert.Equal(t, wantRecent, r.RecentRevenue)

		shuffled := append([]Sale(nil), sales...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		assert.Equal(t, r.RecentRevenue, RecentRevenue(shuffled, now, jst))
	}
}

func TestShiftProductList_SortedByName(t *testing.T) {
	r := Build(exampleSales(t), time.Now(), jst)
	assert.Equal(t, []ProductTotal{{"ItemA", 2}, {"ItemB", 1}}, r.ShiftProductList(1))
	assert.Empty(t, r.ShiftProductList(7))
}

func TestOptionsZone(t *testing.T) {
	assert.Equal(t, "UTC+09:00", jst.Zone().String())
	assert.Equal(t, "UTC-03:30", Options{Offset: -(3*time.Hour + 30*time.Minute)}.Zone().String())
}
