package report

import "time"

// ProductTotal is the quantity sold of one item name.
type ProductTotal struct {
	Name     string
	Quantity int64
}

// ShiftTotal is what one shift sold.
type ShiftTotal struct {
	Quantity int64
	Revenue  int64
}

// productTotals sums quantity per item name keeping first-seen order.
type productTotals struct {
	index map[string]int
	rows  []ProductTotal
}

func newProductTotals() *productTotals {
	return &productTotals{index: make(map[string]int)}
}

func (p *productTotals) add(s Sale) {
	i, ok := p.index[s.ItemName]
	if !ok {
		i = len(p.rows)
		p.index[s.ItemName] = i
		p.rows = append(p.rows, ProductTotal{Name: s.ItemName})
	}
	p.rows[i].Quantity += s.Quantity
}

// shiftTotals groups by shift and by shift x item. Unassigned sales are skipped.
type shiftTotals struct {
	totals   map[int]ShiftTotal
	products map[int]map[string]int64
}

func newShiftTotals() *shiftTotals {
	return &shiftTotals{
		totals:   make(map[int]ShiftTotal),
		products: make(map[int]map[string]int64),
	}
}

func (st *shiftTotals) add(s Sale) {
	if s.Shift == nil {
		return
	}
	shift := *s.Shift

	t := st.totals[shift]
	t.Quantity += s.Quantity
	t.Revenue += s.Total
	st.totals[shift] = t

	byItem, ok := st.products[shift]
	if !ok {
		byItem = make(map[string]int64)
		st.products[shift] = byItem
	}
	byItem[s.ItemName] += s.Quantity
}

// RecentRevenue sums Total over sales created at or after one hour before now,
// both sides read in the shop-local zone.
func RecentRevenue(sales []Sale, now time.Time, opts Options) int64 {
	zone := opts.Zone()
	windowStart := now.In(zone).Add(-RecentWindow)

	var sum int64
	for _, s := range sales {
		if !s.CreatedAt.In(zone).Before(windowStart) {
			sum += s.Total
		}
	}
	return sum
}
