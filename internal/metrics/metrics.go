package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the import counters. A nil *Metrics is valid and records nothing.
type Metrics struct {
	Rows           prometheus.Counter
	Upserts        prometheus.Counter
	SheetsSkipped  *prometheus.CounterVec
	UpsertDuration prometheus.Histogram
	LastRun        prometheus.Gauge
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		// no sheet label: sheet names come from uploads and are unbounded
		Rows: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "portal_import_rows_total",
			Help: "Data rows assembled into records.",
		}),
		Upserts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "portal_import_upserts_total",
			Help: "Records written to the store.",
		}),
		SheetsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_import_sheets_skipped_total",
			Help: "Sheets that contributed no records.",
		}, []string{"reason"}),
		UpsertDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "portal_import_upsert_duration_seconds",
			Help:    "Latency of a single upsert.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
		}),
		LastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "portal_import_last_run_timestamp_seconds",
			Help: "Unix time of the last finished import run.",
		}),
	}
	reg.MustRegister(m.Rows, m.Upserts, m.SheetsSkipped, m.UpsertDuration, m.LastRun)
	return m
}

func (m *Metrics) SheetRows(n int) {
	if m == nil {
		return
	}
	m.Rows.Add(float64(n))
}

func (m *Metrics) Skipped(reason string) {
	if m == nil {
		return
	}
	m.SheetsSkipped.WithLabelValues(reason).Inc()
}

func (m *Metrics) Upserted(d time.Duration) {
	if m == nil {
		return
	}
	m.Upserts.Inc()
	m.UpsertDuration.Observe(d.Seconds())
}

func (m *Metrics) RunFinished(t time.Time) {
	if m == nil {
		return
	}
	m.LastRun.Set(float64(t.Unix()))
}

// WriteTextfile dumps g in the node-exporter textfile format.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
