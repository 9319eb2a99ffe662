package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"salelog/internal/config"
	"salelog/internal/dto"
	"salelog/internal/model"
	"salelog/internal/report"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-06-01 10:15 JST is 01:15 UTC.
var base = time.Date(2024, time.June, 1, 1, 15, 0, 0, time.UTC)

type fixture struct {
	sales    *memSales
	items    *memItems
	observer *recordingObserver
	svc      *saleService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{sales: &memSales{}, items: &memItems{}, observer: &recordingObserver{}}
	itemSvc := NewItemService(f.items, nil, time.Minute)
	f.svc = NewSaleService(f.sales, itemSvc, testConfig(), f.observer).(*saleService)
	f.svc.now = func() time.Time { return base.Add(time.Hour) }
	return f
}

// seedExample stores the three-record example: two sales in the 10:00 bucket,
// one in 11:00, across shifts 1 and 2.
func (f *fixture) seedExample() {
	f.sales.add("ItemA", 100, 2, intp(1), base)
	f.sales.add("ItemB", 150, 1, intp(1), base.Add(30*time.Minute))
	f.sales.add("ItemA", 100, 3, intp(2), base.Add(50*time.Minute))
}

func TestSaleService_Record(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.items.Create(context.Background(), &model.Item{Name: "白玉団子（あんこ）", Price: 200}))

	resp, err := f.svc.Record(context.Background(), dto.RecordSaleRequest{ItemID: 1, Quantity: 3, ShiftNumber: intp(2)})
	require.NoError(t, err)

	assert.Equal(t, uint(1), resp.ID)
	assert.Equal(t, "白玉団子（あんこ）", resp.ItemName)
	assert.Equal(t, int64(600), resp.Total)
	assert.Equal(t, "2024-06-01 11:15:00", resp.CreatedAt)
	require.Len(t, f.sales.rows, 1)
	assert.Equal(t, time.UTC, f.sales.rows[0].CreatedAt.Location())
	assert.Equal(t, 2, *f.sales.rows[0].ShiftNumber)
}

func TestSaleService_Record_Errors(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Record(context.Background(), dto.RecordSaleRequest{ItemID: 9, Quantity: 1})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, f.items.Create(context.Background(), &model.Item{Name: "Broken", Price: -1}))
	_, err = f.svc.Record(context.Background(), dto.RecordSaleRequest{ItemID: 1, Quantity: 1})
	assert.True(t, IsInvalidSale(err))
	assert.Empty(t, f.sales.rows)
}

func TestSaleService_List_UsesListOrder(t *testing.T) {
	f := newFixture(t)
	f.seedExample()

	resp, err := f.svc.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, config.OrderNewestFirst, f.sales.lastOrder)
	assert.Equal(t, 3, resp.Count)
	assert.Equal(t, int64(650), resp.GrandTotal)
	assert.Equal(t, uint(3), resp.Data[0].ID)
	assert.Equal(t, uint(1), resp.Data[2].ID)
}

func TestSaleService_Dashboard_Example(t *testing.T) {
	f := newFixture(t)
	f.seedExample()

	d, err := f.svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(6), d.TotalQuantity)
	assert.Equal(t, int64(650), d.TotalRevenue)
	assert.Equal(t, []dto.HourlyPoint{{Label: "06/01 10:00", Quantity: 3}, {Label: "06/01 11:00", Quantity: 3}}, d.Hourly)
	assert.Equal(t, []int64{3, 6}, d.Cumulative)
	assert.Equal(t, []dto.ProductQuantity{{Name: "ItemA", Quantity: 5}, {Name: "ItemB", Quantity: 1}}, d.Products)
	require.Len(t, d.Shifts, 2)
	assert.Equal(t, dto.ShiftSummary{
		Shift: 1, Quantity: 3, Revenue: 350,
		Products: []dto.ProductQuantity{{Name: "ItemA", Quantity: 2}, {Name: "ItemB", Quantity: 1}},
	}, d.Shifts[0])
	assert.Equal(t, 2, d.Shifts[1].Shift)
	assert.True(t, decimal.RequireFromString("216.67").Equal(d.AverageSale))
	// now is 11:15 local, so every sale from 10:15 on is inside the window.
	assert.Equal(t, int64(650), d.RecentRevenue)
	assert.Equal(t, "2024-06-01 11:15:00", d.GeneratedAt)
	assert.Equal(t, 1, f.observer.reports)
}

func TestSaleService_Report_ScansInInsertionOrder(t *testing.T) {
	f := newFixture(t)
	f.sales.add("ItemB", 150, 1, nil, base)
	f.sales.add("ItemA", 100, 2, nil, base.Add(10*time.Minute))

	d, err := f.svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, config.OrderNatural, f.sales.lastOrder)
	assert.Equal(t, []dto.ProductQuantity{{Name: "ItemB", Quantity: 1}, {Name: "ItemA", Quantity: 2}}, d.Products)
}

func TestSaleService_Dashboard_Empty(t *testing.T) {
	f := newFixture(t)
	d, err := f.svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Zero(t, d.TotalQuantity)
	assert.True(t, d.AverageSale.IsZero())
	assert.NotNil(t, d.Hourly)
	assert.NotNil(t, d.Cumulative)
	assert.NotNil(t, d.Products)
	assert.NotNil(t, d.Shifts)
}

func TestSaleService_Export_CSV(t *testing.T) {
	f := newFixture(t)
	f.seedExample()

	file, err := f.svc.Export(context.Background(), FormatCSV)
	require.NoError(t, err)

	assert.Equal(t, config.OrderNatural, f.sales.lastOrder)
	assert.Equal(t, "sales_records.csv", file.Name)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.True(t, bytes.HasPrefix(file.Data, []byte{0xEF, 0xBB, 0xBF}))
	lines := bytes.Split(bytes.TrimRight(file.Data[3:], "\r\n"), []byte("\n"))
	require.Len(t, lines, 4)
	assert.Equal(t, "ItemA,100,2,200,2024-06-01 10:15:00", string(bytes.TrimRight(lines[1], "\r")))
	assert.Equal(t, 3, f.observer.exports[FormatCSV])
}

func TestSaleService_Export_XLSXAndUnknown(t *testing.T) {
	f := newFixture(t)
	f.seedExample()

	file, err := f.svc.Export(context.Background(), FormatXLSX)
	require.NoError(t, err)
	assert.Equal(t, "sales_records.xlsx", file.Name)
	assert.NotEmpty(t, file.Data)

	_, err = f.svc.Export(context.Background(), "pdf")
	assert.Error(t, err)
}

func TestSaleService_Delete(t *testing.T) {
	f := newFixture(t)
	f.seedExample()

	require.NoError(t, f.svc.Delete(context.Background(), 2))
	assert.Len(t, f.sales.rows, 2)
	assert.ErrorIs(t, f.svc.Delete(context.Background(), 2), ErrNotFound)
}

func TestToReportSales_RejectsCorruptRow(t *testing.T) {
	_, err := ToReportSales([]model.Sale{{ID: 7, ItemName: "X", UnitPrice: 100, Quantity: 2, Total: 150, CreatedAt: base}})
	assert.ErrorIs(t, err, report.ErrInvalidSale)
	assert.ErrorIs(t, err, ErrCorruptRecord)
	assert.False(t, IsInvalidSale(err))
	assert.ErrorContains(t, err, "sale 7")
}

func TestWithExt(t *testing.T) {
	assert.Equal(t, "sales_records.xlsx", withExt("sales_records.csv", ".xlsx"))
	assert.Equal(t, "export.xlsx", withExt("export", ".xlsx"))
	assert.Equal(t, "sales_records.xlsx", withExt("", ".xlsx"))
}
