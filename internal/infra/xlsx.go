package infra

import (
	"bytes"
	"fmt"

	"salelog/internal/report"

	"github.com/xuri/excelize/v2"
)

const salesSheet = "Sales"

// salesColumnWidths follows report.ExportHeader.
var salesColumnWidths = []float64{32, 12, 10, 12, 20}

// ExportXLSX writes the same header and rows as report.ExportCSV into a
// workbook. Numeric columns are stored as numbers so spreadsheets can sum
// them; row order is exactly the order of sales.
func ExportXLSX(sales []report.Sale, ro report.Options) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(salesSheet)
	if err != nil {
		return nil, fmt.Errorf("xlsx: create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("xlsx: drop default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: header style: %w", err)
	}

	for col, h := range report.ExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(salesSheet, cell, h); err != nil {
			return nil, fmt.Errorf("xlsx: header %s: %w", cell, err)
		}
		if err := f.SetCellStyle(salesSheet, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("xlsx: header style %s: %w", cell, err)
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(salesSheet, name, name, salesColumnWidths[col]); err != nil {
			return nil, fmt.Errorf("xlsx: column width: %w", err)
		}
	}

	zone := ro.Zone()
	for i, s := range sales {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{
			s.ItemName,
			s.UnitPrice,
			s.Quantity,
			s.Total,
			s.CreatedAt.In(zone).Format(report.TimestampLayout),
		}
		if err := f.SetSheetRow(salesSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("xlsx: row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(salesSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("xlsx: freeze header: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("xlsx: write: %w", err)
	}
	return buf.Bytes(), nil
}
