package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bazaar_gatherer"

// Metrics holds the gatherer collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	Cycles         *prometheus.CounterVec
	CycleDuration  prometheus.Histogram
	RecordsWritten prometheus.Counter
	StoreErrors    prometheus.Counter
	CounterBumps   prometheus.Counter
	CounterMisses  prometheus.Counter
	LastVersion    prometheus.Gauge
	LastPersisted  prometheus.Gauge
}

// New creates and registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Cycles: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "poll_cycles_total",
			Help:      "Poll cycles by outcome (updated, unchanged, failed).",
		}, []string{"outcome"}),
		CycleDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "poll_cycle_duration_seconds",
			Help:      "Duration of a poll cycle including persistence.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
		RecordsWritten: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_written_total",
			Help:      "Product records inserted into the store.",
		}),
		StoreErrors: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_errors_total",
			Help:      "Failed store operations.",
		}),
		CounterBumps: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "freshness_bumps_total",
			Help:      "Successful freshness counter increments.",
		}),
		CounterMisses: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "freshness_misses_total",
			Help:      "Freshness updates that matched no document.",
		}),
		LastVersion: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_persisted_version",
			Help:      "Upstream lastUpdated of the most recent persisted snapshot.",
		}),
		LastPersisted: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_persisted_timestamp_seconds",
			Help:      "Unix time of the most recent successful persist cycle.",
		}),
	}
}

// ObserveCycle records a finished poll cycle.
func (m *Metrics) ObserveCycle(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.Cycles.WithLabelValues(outcome).Inc()
	m.CycleDuration.Observe(d.Seconds())
}

// ObservePersisted records a successful persist cycle.
func (m *Metrics) ObservePersisted(version int64, at time.Time) {
	if m == nil {
		return
	}
	m.LastVersion.Set(float64(version))
	m.LastPersisted.Set(float64(at.Unix()))
}

// AddRecords counts inserted records.
func (m *Metrics) AddRecords(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.RecordsWritten.Add(float64(n))
}

// IncStoreErrors counts a failed store operation.
func (m *Metrics) IncStoreErrors() {
	if m == nil {
		return
	}
	m.StoreErrors.Inc()
}

// IncCounterBump counts a freshness counter increment; matched is false when
// no document was found.
func (m *Metrics) IncCounterBump(matched bool) {
	if m == nil {
		return
	}
	if matched {
		m.CounterBumps.Inc()
	} else {
		m.CounterMisses.Inc()
	}
}

// Handler exposes the collectors gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
