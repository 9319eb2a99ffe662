package infra

import (
	"io"

	"salelog/internal/report"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const chartHeight = "420px"

// HourlyChart builds the dashboard line chart: quantity per hour bucket on the
// left axis and the running total on the right axis.
func HourlyChart(title string, hourly []report.HourlyPoint, cumulative []int64) *charts.Line {
	labels := make([]string, len(hourly))
	perHour := make([]opts.LineData, len(hourly))
	running := make([]opts.LineData, len(cumulative))
	for i, p := range hourly {
		labels[i] = p.Label
		perHour[i] = opts.LineData{Value: p.Quantity}
	}
	for i, v := range cumulative {
		running[i] = opts.LineData{Value: v}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "100%", Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Hour"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Quantity"}),
	)
	line.ExtendYAxis(opts.YAxis{Name: "Cumulative"})

	line.SetXAxis(labels).
		AddSeries("Per hour", perHour).
		AddSeries("Cumulative", running,
			charts.WithLineChartOpts(opts.LineChart{YAxisIndex: 1, Smooth: opts.Bool(true)}),
		)
	return line
}

// RenderHourlyChart writes the chart as a standalone HTML page.
func RenderHourlyChart(w io.Writer, title string, hourly []report.HourlyPoint, cumulative []int64) error {
	return HourlyChart(title, hourly, cumulative).Render(w)
}
