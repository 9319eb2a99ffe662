package infra

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRegistry returns an independent registry with the Go runtime and
// process collectors, so tests can build as many as they like.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// MetricsHandler serves the /metrics scrape endpoint for reg.
func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

// ReportMetrics counts reports and exports computed from the sale log.
type ReportMetrics struct {
	reports       prometheus.Counter
	reportRecords prometheus.Histogram
	exports       *prometheus.CounterVec
	exportRows    *prometheus.CounterVec
}

func NewReportMetrics(reg prometheus.Registerer) *ReportMetrics {
	m := &ReportMetrics{
		reports: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "salelog",
			Name:      "reports_built_total",
			Help:      "Reports computed by full scan.",
		}),
		reportRecords: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "salelog",
			Name:      "report_records",
			Help:      "Sale records scanned per report.",
			Buckets:   prometheus.ExponentialBuckets(10, 4, 8),
		}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salelog",
			Name:      "exports_total",
			Help:      "Exports produced by format.",
		}, []string{"format"}),
		exportRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salelog",
			Name:      "export_rows_total",
			Help:      "Rows written to exports by format.",
		}, []string{"format"}),
	}
	reg.MustRegister(m.reports, m.reportRecords, m.exports, m.exportRows)
	return m
}

func (m *ReportMetrics) ReportBuilt(records int) {
	m.reports.Inc()
	m.reportRecords.Observe(float64(records))
}

func (m *ReportMetrics) ExportProduced(format string, rows int) {
	m.exports.WithLabelValues(format).Inc()
	m.exportRows.WithLabelValues(format).Add(float64(rows))
}
