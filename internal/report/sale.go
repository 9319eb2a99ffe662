// Package report turns a flat sale log into the dashboard aggregates and the
// flat file export. Every function is a pure computation over already fetched
// records: nothing is cached and nothing is shared between calls.
package report

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// ErrInvalidSale is wrapped by every NewSale validation failure.
var ErrInvalidSale = errors.New("invalid sale")

// Sale is one immutable line of the sale log.
// ItemName and UnitPrice are copied from the catalog at sale time; Total is
// fixed at creation and always equals UnitPrice * Quantity.
type Sale struct {
	ItemName  string
	UnitPrice int64 // minor currency units
	Quantity  int64
	Total     int64
	// Shift is nil for sales not assigned to any shift.
	Shift     *int
	CreatedAt time.Time
}

// NewSale validates the fields once and derives Total.
func NewSale(itemName string, unitPrice, quantity int64, shift *int, createdAt time.Time) (Sale, error) {
	switch {
	case strings.TrimSpace(itemName) == "":
		return Sale{}, fmt.Errorf("%w: empty item name", ErrInvalidSale)
	case unitPrice < 0:
		return Sale{}, fmt.Errorf("%w: negative unit price %d", ErrInvalidSale, unitPrice)
	case quantity <= 0:
		return Sale{}, fmt.Errorf("%w: quantity must be positive, got %d", ErrInvalidSale, quantity)
	case unitPrice > math.MaxInt64/quantity:
		return Sale{}, fmt.Errorf("%w: total of %d x %d overflows", ErrInvalidSale, unitPrice, quantity)
	case shift != nil && *shift <= 0:
		return Sale{}, fmt.Errorf("%w: shift must be positive, got %d", ErrInvalidSale, *shift)
	case createdAt.IsZero():
		return Sale{}, fmt.Errorf("%w: missing timestamp", ErrInvalidSale)
	}
	var s *int
	if shift != nil {
		n := *shift
		s = &n
	}
	return Sale{
		ItemName:  itemName,
		UnitPrice: unitPrice,
		Quantity:  quantity,
		Total:     unitPrice * quantity,
		Shift:     s,
		CreatedAt: createdAt,
	}, nil
}

// RestoreSale rebuilds a stored sale and checks that the persisted total
// still matches price * quantity.
func RestoreSale(itemName string, unitPrice, quantity, total int64, shift *int, createdAt time.Time) (Sale, error) {
	s, err := NewSale(itemName, unitPrice, quantity, shift, createdAt)
	if err != nil {
		return Sale{}, err
	}
	if s.Total != total {
		return Sale{}, fmt.Errorf("%w: total %d does not match %d x %d", ErrInvalidSale, total, unitPrice, quantity)
	}
	return s, nil
}

// Options carries the clock configuration shared by the bucketer, the
// recent-window metric and the exporter.
type Options struct {
	// Offset is the constant amount added to UTC to obtain shop-local time.
	Offset time.Duration
}

// Zone returns a fixed zone for Offset. No timezone database is consulted,
// so daylight saving never applies.
func (o Options) Zone() *time.Location {
	return time.FixedZone(zoneName(o.Offset), int(o.Offset/time.Second))
}

func zoneName(offset time.Duration) string {
	sign := '+'
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	h := int(offset / time.Hour)
	m := int((offset % time.Hour) / time.Minute)
	return fmt.Sprintf("UTC%c%02d:%02d", sign, h, m)
}
