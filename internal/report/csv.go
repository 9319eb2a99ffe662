package report

import (
	"bytes"
	"encoding/csv"
	"io"
	"strconv"
)

// utf8BOM lets spreadsheet applications detect the encoding of the export.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ExportHeader is the fixed column list of the flat export.
var ExportHeader = []string{"item_name", "unit_price", "quantity", "total", "timestamp"}

// TimestampLayout is the local timestamp pattern used in exports.
const TimestampLayout = "2006-01-02 15:04:05"

// ExportRow renders one sale as export cells.
func ExportRow(s Sale, opts Options) []string {
	return []string{
		s.ItemName,
		strconv.FormatInt(s.UnitPrice, 10),
		strconv.FormatInt(s.Quantity, 10),
		strconv.FormatInt(s.Total, 10),
		s.CreatedAt.In(opts.Zone()).Format(TimestampLayout),
	}
}

// WriteCSV writes the BOM, the header and one row per sale in the order given.
// Rows are never re-sorted: callers decide the order when fetching.
func WriteCSV(w io.Writer, sales []Sale, opts Options) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeader); err != nil {
		return err
	}
	for _, s := range sales {
		if err := cw.Write(ExportRow(s, opts)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSV returns the CSV export as bytes.
func ExportCSV(sales []Sale, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sales, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
