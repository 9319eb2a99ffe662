package main

import (
	"fmt"
	"io"
	"strconv"

	"salelog/internal/dto"
	"salelog/internal/worker"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func newTable(w io.Writer, title string) table.Writer {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.SetTitle(title)
	return tbl
}

// renderReport prints the dashboard as four tables.
func renderReport(w io.Writer, d *dto.DashboardResponse) {
	summary := newTable(w, "Summary ("+d.GeneratedAt+")")
	summary.AppendRows([]table.Row{
		{"Sales", d.Count},
		{"Quantity", d.TotalQuantity},
		{"Revenue", d.TotalRevenue},
		{"Last hour revenue", d.RecentRevenue},
		{"Average sale", d.AverageSale.StringFixed(2)},
	})
	summary.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	summary.Render()

	hourly := newTable(w, "Per hour")
	hourly.AppendHeader(table.Row{"Hour", "Quantity", "Cumulative"})
	for i, p := range d.Hourly {
		hourly.AppendRow(table.Row{p.Label, p.Quantity, d.Cumulative[i]})
	}
	hourly.Render()

	products := newTable(w, "Products")
	products.AppendHeader(table.Row{"Item", "Quantity"})
	for _, p := range d.Products {
		products.AppendRow(table.Row{p.Name, p.Quantity})
	}
	products.AppendFooter(table.Row{"Total", d.TotalQuantity})
	products.Render()

	shifts := newTable(w, "Shifts")
	shifts.AppendHeader(table.Row{"Shift", "Item", "Quantity", "Revenue"})
	for _, s := range d.Shifts {
		shifts.AppendRow(table.Row{s.Shift, "", s.Quantity, s.Revenue})
		for _, p := range s.Products {
			shifts.AppendRow(table.Row{"", p.Name, p.Quantity, ""})
		}
	}
	shifts.Render()
}

func renderDLQ(w io.Writer, entries []worker.DLQEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "dead letter queue is empty")
		return
	}
	tbl := newTable(w, "Dead-lettered jobs")
	tbl.AppendHeader(table.Row{"Failed at", "Type", "Attempts", "Reason", "Payload"})
	for _, e := range entries {
		tbl.AppendRow(table.Row{e.FailedAt, e.JobType, strconv.Itoa(e.Attempts), e.Reason, string(e.Payload)})
	}
	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d", len(entries))})
	tbl.Render()
}
