package infra

// pdf.go: shift handover sheet rendered with go-pdf/fpdf.
// A5 portrait page with:
//   - Shop name and shift header
//   - Generation timestamp (shop-local)
//   - Item table (name, quantity)
//   - Shift totals and share of the day's revenue
//
// The output file is saved to storagePath/handover_shift{n}_{stamp}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"salelog/internal/report"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// HandoverSheet is everything printed on one shift handover page.
type HandoverSheet struct {
	ShopName    string
	Shift       int
	GeneratedAt time.Time // already in shop-local zone
	Items       []report.ProductTotal
	Quantity    int64
	Revenue     int64
	// DayRevenue is the revenue of the whole report, used for the share line.
	DayRevenue int64
}

// RevenueShare returns Revenue / DayRevenue as a percentage with two decimals.
func (h HandoverSheet) RevenueShare() decimal.Decimal {
	if h.DayRevenue == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(h.Revenue).
		Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromInt(h.DayRevenue), 2)
}

// PDFRenderer writes handover sheets to disk. When FontPath points to a TTF
// font it is embedded so non-Latin item names render; otherwise the core
// Helvetica font is used.
type PDFRenderer struct {
	StoragePath string
	FontPath    string
}

func NewPDFRenderer(storagePath, fontPath string) *PDFRenderer {
	return &PDFRenderer{StoragePath: storagePath, FontPath: fontPath}
}

// Render generates the sheet and returns the path of the written file.
func (r *PDFRenderer) Render(sheet HandoverSheet) (string, error) {
	if err := os.MkdirAll(r.StoragePath, 0o755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("handover_shift%d_%s.pdf", sheet.Shift, sheet.GeneratedAt.Format("20060102_150405"))
	filePath := filepath.Join(r.StoragePath, fileName)

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(10, 10, 10)

	family := "Helvetica"
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if r.FontPath != "" {
		pdf.AddUTF8Font("shop", "", r.FontPath)
		pdf.AddUTF8Font("shop", "B", r.FontPath)
		family = "shop"
		tr = func(s string) string { return s }
	}
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont(family, "B", 14)
	pdf.CellFormat(contentW, 8, tr(sheet.ShopName), "", 1, "C", false, 0, "")
	pdf.SetFont(family, "", 10)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Shift %d handover", sheet.Shift), "", 1, "C", false, 0, "")
	pdf.SetFont(family, "", 8)
	pdf.CellFormat(contentW, 5, sheet.GeneratedAt.Format(report.TimestampLayout), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	// ── Items ────────────────────────────────────────────────────────────────
	nameW := contentW * 0.75
	qtyW := contentW - nameW

	pdf.SetFont(family, "B", 9)
	pdf.CellFormat(nameW, 6, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(qtyW, 6, "Qty", "B", 1, "R", false, 0, "")

	pdf.SetFont(family, "", 9)
	if len(sheet.Items) == 0 {
		pdf.CellFormat(contentW, 6, "No sales recorded for this shift", "", 1, "C", false, 0, "")
	}
	for _, it := range sheet.Items {
		pdf.CellFormat(nameW, 6, tr(it.Name), "", 0, "L", false, 0, "")
		pdf.CellFormat(qtyW, 6, fmt.Sprintf("%d", it.Quantity), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(10, pdf.GetY(), pageW-10, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ───────────────────────────────────────────────────────────────
	pdf.SetFont(family, "B", 10)
	pdf.CellFormat(nameW, 6, "Total quantity", "", 0, "L", false, 0, "")
	pdf.CellFormat(qtyW, 6, fmt.Sprintf("%d", sheet.Quantity), "", 1, "R", false, 0, "")
	pdf.CellFormat(nameW, 6, "Revenue", "", 0, "L", false, 0, "")
	pdf.CellFormat(qtyW, 6, fmt.Sprintf("%d", sheet.Revenue), "", 1, "R", false, 0, "")
	pdf.SetFont(family, "", 8)
	pdf.CellFormat(nameW, 5, "Share of day revenue", "", 0, "L", false, 0, "")
	pdf.CellFormat(qtyW, 5, sheet.RevenueShare().StringFixed(2)+"%", "", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
