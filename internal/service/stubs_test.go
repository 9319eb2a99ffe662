package service

import (
	"context"
	"sort"
	"time"

	"salelog/internal/config"
	"salelog/internal/model"
	"salelog/internal/worker"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type memSales struct {
	rows      []model.Sale
	nextID    uint
	lastOrder string
}

func (m *memSales) Create(_ context.Context, s *model.Sale) error {
	m.nextID++
	s.ID = m.nextID
	m.rows = append(m.rows, *s)
	return nil
}

func (m *memSales) FindByID(_ context.Context, id uint) (*model.Sale, error) {
	for i := range m.rows {
		if m.rows[i].ID == id {
			s := m.rows[i]
			return &s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memSales) Delete(_ context.Context, id uint) error {
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *memSales) List(_ context.Context, order string) ([]model.Sale, error) {
	m.lastOrder = order
	out := append([]model.Sale(nil), m.rows...)
	switch order {
	case config.OrderNewestFirst:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	case config.OrderOldestFirst:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	}
	return out, nil
}

// add stores a sale directly, bypassing the service.
func (m *memSales) add(name string, price, qty int64, shift *int, at time.Time) {
	_ = m.Create(context.Background(), &model.Sale{
		ItemName: name, UnitPrice: price, Quantity: qty, Total: price * qty, ShiftNumber: shift, CreatedAt: at,
	})
}

type memItems struct {
	rows   []model.Item
	nextID uint
	finds  int
}

func (m *memItems) Create(_ context.Context, it *model.Item) error {
	m.nextID++
	it.ID = m.nextID
	m.rows = append(m.rows, *it)
	return nil
}

func (m *memItems) CreateBatch(ctx context.Context, items []model.Item) error {
	for i := range items {
		_ = m.Create(ctx, &items[i])
	}
	return nil
}

func (m *memItems) FindByID(_ context.Context, id uint) (*model.Item, error) {
	m.finds++
	for i := range m.rows {
		if m.rows[i].ID == id {
			it := m.rows[i]
			return &it, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memItems) List(context.Context) ([]model.Item, error) {
	return append([]model.Item(nil), m.rows...), nil
}

func (m *memItems) Update(_ context.Context, it *model.Item) error {
	for i := range m.rows {
		if m.rows[i].ID == it.ID {
			m.rows[i] = *it
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *memItems) Delete(_ context.Context, id uint) error {
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *memItems) Count(context.Context) (int64, error) { return int64(len(m.rows)), nil }

type memUsers struct{ byName map[string]*model.User }

func newMemUsers() *memUsers { return &memUsers{byName: map[string]*model.User{}} }

func (m *memUsers) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	m.byName[u.Username] = u
	return nil
}

func (m *memUsers) FindByUsername(_ context.Context, username string) (*model.User, error) {
	u, ok := m.byName[username]
	if !ok || !u.Active {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (m *memUsers) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	for _, u := range m.byName {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memUsers) Upsert(ctx context.Context, u *model.User) error {
	if existing, ok := m.byName[u.Username]; ok {
		u.ID = existing.ID
	}
	return m.Create(ctx, u)
}

type recordingObserver struct {
	reports int
	exports map[string]int
}

func (o *recordingObserver) ReportBuilt(int) { o.reports++ }

func (o *recordingObserver) ExportProduced(format string, rows int) {
	if o.exports == nil {
		o.exports = map[string]int{}
	}
	o.exports[format] += rows
}

type recordingQueue struct{ payloads []worker.HandoverPayload }

func (q *recordingQueue) EnqueueHandover(_ context.Context, p worker.HandoverPayload) error {
	q.payloads = append(q.payloads, p)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "secret",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		UTCOffsetHours:     9,
		SalesListOrder:     config.OrderNewestFirst,
		ExportOrder:        config.OrderNatural,
		ExportFilename:     "sales_records.csv",
		ShopName:           "Dango Stand",
	}
}

func intp(v int) *int { return &v }
