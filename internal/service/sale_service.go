package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"salelog/internal/config"
	"salelog/internal/dto"
	"salelog/internal/infra"
	"salelog/internal/model"
	"salelog/internal/report"
	"salelog/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// ExportFile is a rendered export ready to be sent as an attachment.
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// SaleService records sales and computes every read view from a full scan
// of the sale log. Nothing derived is cached.
type SaleService interface {
	Record(ctx context.Context, req dto.RecordSaleRequest) (*dto.SaleResponse, error)
	List(ctx context.Context) (*dto.SaleListResponse, error)
	Delete(ctx context.Context, id uint) error
	// Report returns the engine report and the reference time it was built at.
	Report(ctx context.Context) (report.Report, time.Time, error)
	Dashboard(ctx context.Context) (*dto.DashboardResponse, error)
	Export(ctx context.Context, format string) (*ExportFile, error)
}

type saleService struct {
	sales    repository.SaleRepository
	items    ItemService
	cfg      *config.Config
	now      func() time.Time
	observer Observer
}

// Observer is told about every report and export computed.
type Observer interface {
	ReportBuilt(records int)
	ExportProduced(format string, rows int)
}

type nopObserver struct{}

func (nopObserver) ReportBuilt(int)            {}
func (nopObserver) ExportProduced(string, int) {}

// NewSaleService creates the service. observer may be nil.
func NewSaleService(sales repository.SaleRepository, items ItemService, cfg *config.Config, observer Observer) SaleService {
	if observer == nil {
		observer = nopObserver{}
	}
	return &saleService{sales: sales, items: items, cfg: cfg, now: time.Now, observer: observer}
}

func (s *saleService) Record(ctx context.Context, req dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	item, err := s.items.GetByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}

	sale, err := report.NewSale(item.Name, item.Price, req.Quantity, req.ShiftNumber, s.now().UTC())
	if err != nil {
		return nil, err
	}

	m := &model.Sale{
		ItemName:    sale.ItemName,
		UnitPrice:   sale.UnitPrice,
		Quantity:    sale.Quantity,
		Total:       sale.Total,
		ShiftNumber: sale.Shift,
		CreatedAt:   sale.CreatedAt,
	}
	if err := s.sales.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("record sale: %w", err)
	}

	log.Info().
		Uint("sale_id", m.ID).
		Str("item", m.ItemName).
		Int64("quantity", m.Quantity).
		Int64("total", m.Total).
		Msg("sale recorded")

	resp := s.toResponse(*m)
	return &resp, nil
}

func (s *saleService) List(ctx context.Context) (*dto.SaleListResponse, error) {
	rows, err := s.sales.List(ctx, s.cfg.SalesListOrder)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	resp := &dto.SaleListResponse{Data: make([]dto.SaleResponse, len(rows)), Count: len(rows)}
	for i, r := range rows {
		resp.Data[i] = s.toResponse(r)
		resp.GrandTotal += r.Total
	}
	return resp, nil
}

func (s *saleService) Delete(ctx context.Context, id uint) error {
	if err := s.sales.Delete(ctx, id); err != nil {
		return notFound(err)
	}
	log.Info().Uint("sale_id", id).Msg("sale deleted")
	return nil
}

// Report scans in insertion order so first-seen product order does not
// depend on SALES_LIST_ORDER.
func (s *saleService) Report(ctx context.Context) (report.Report, time.Time, error) {
	sales, err := s.load(ctx, config.OrderNatural)
	if err != nil {
		return report.Report{}, time.Time{}, err
	}
	now := s.now()
	rep := report.Build(sales, now, s.cfg.ReportOptions())
	s.observer.ReportBuilt(rep.Count)
	return rep, now, nil
}

func (s *saleService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	rep, now, err := s.Report(ctx)
	if err != nil {
		return nil, err
	}
	return DashboardFrom(rep, now.In(s.cfg.Location())), nil
}

// DashboardFrom flattens a report into the API shape. Shifts are listed in
// ascending order with their products sorted by name.
func DashboardFrom(rep report.Report, generatedAt time.Time) *dto.DashboardResponse {
	resp := &dto.DashboardResponse{
		GeneratedAt:   generatedAt.Format(report.TimestampLayout),
		Count:         rep.Count,
		TotalQuantity: rep.TotalQuantity,
		TotalRevenue:  rep.TotalRevenue,
		RecentRevenue: rep.RecentRevenue,
		AverageSale:   AverageSale(rep.TotalRevenue, rep.Count),
		Hourly:        make([]dto.HourlyPoint, len(rep.Hourly)),
		Cumulative:    rep.Cumulative,
		Products:      productList(rep.Products),
		Shifts:        []dto.ShiftSummary{},
	}
	for i, p := range rep.Hourly {
		resp.Hourly[i] = dto.HourlyPoint{Label: p.Label, Quantity: p.Quantity}
	}
	for _, n := range rep.ShiftNumbers() {
		t := rep.Shifts[n]
		resp.Shifts = append(resp.Shifts, dto.ShiftSummary{
			Shift:    n,
			Quantity: t.Quantity,
			Revenue:  t.Revenue,
			Products: productList(rep.ShiftProductList(n)),
		})
	}
	return resp
}

// AverageSale is revenue per record rounded to two places; zero when empty.
func AverageSale(revenue int64, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(revenue).DivRound(decimal.NewFromInt(int64(count)), 2)
}

func productList(in []report.ProductTotal) []dto.ProductQuantity {
	out := make([]dto.ProductQuantity, len(in))
	for i, p := range in {
		out[i] = dto.ProductQuantity{Name: p.Name, Quantity: p.Quantity}
	}
	return out
}

func (s *saleService) Export(ctx context.Context, format string) (*ExportFile, error) {
	sales, err := s.load(ctx, s.cfg.ExportOrder)
	if err != nil {
		return nil, err
	}
	opts := s.cfg.ReportOptions()

	var file ExportFile
	switch format {
	case FormatCSV, "":
		format = FormatCSV
		data, err := report.ExportCSV(sales, opts)
		if err != nil {
			return nil, fmt.Errorf("export csv: %w", err)
		}
		file = ExportFile{Name: s.cfg.ExportFilename, ContentType: "text/csv", Data: data}
	case FormatXLSX:
		data, err := infra.ExportXLSX(sales, opts)
		if err != nil {
			return nil, err
		}
		file = ExportFile{
			Name:        withExt(s.cfg.ExportFilename, ".xlsx"),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}
	default:
		return nil, fmt.Errorf("export: unsupported format %q", format)
	}

	s.observer.ExportProduced(format, len(sales))
	log.Info().Str("format", format).Int("rows", len(sales)).Str("order", s.cfg.ExportOrder).Msg("export produced")
	return &file, nil
}

// load fetches every sale in the given order and converts it for the engine.
// A stored row that breaks the sale invariants is a data error, not skipped.
func (s *saleService) load(ctx context.Context, order string) ([]report.Sale, error) {
	rows, err := s.sales.List(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("load sales: %w", err)
	}
	return ToReportSales(rows)
}

// ToReportSales converts stored rows, keeping their order.
func ToReportSales(rows []model.Sale) ([]report.Sale, error) {
	out := make([]report.Sale, 0, len(rows))
	for _, r := range rows {
		sale, err := report.RestoreSale(r.ItemName, r.UnitPrice, r.Quantity, r.Total, r.ShiftNumber, r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: sale %d: %w", ErrCorruptRecord, r.ID, err)
		}
		out = append(out, sale)
	}
	return out, nil
}

func (s *saleService) toResponse(m model.Sale) dto.SaleResponse {
	return dto.SaleResponse{
		ID:          m.ID,
		ItemName:    m.ItemName,
		UnitPrice:   m.UnitPrice,
		Quantity:    m.Quantity,
		Total:       m.Total,
		ShiftNumber: m.ShiftNumber,
		CreatedAt:   m.CreatedAt.In(s.cfg.Location()).Format(report.TimestampLayout),
	}
}

func withExt(name, ext string) string {
	if name == "" {
		return "sales_records" + ext
	}
	return strings.TrimSuffix(name, filepath.Ext(name)) + ext
}

// IsInvalidSale reports whether err came from validating a new sale. Stored
// rows failing validation are ErrCorruptRecord and do not count.
func IsInvalidSale(err error) bool {
	return errors.Is(err, report.ErrInvalidSale) && !errors.Is(err, ErrCorruptRecord)
}
