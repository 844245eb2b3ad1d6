package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Analysis outcomes.
const (
	OutcomeOK           = "ok"
	OutcomeInsufficient = "insufficient_history"
	OutcomeError        = "error"
)

// Metrics contains all Prometheus metrics for the service. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	Analyses        *prometheus.CounterVec
	AnalysisLatency prometheus.Histogram
	BatchDuration   prometheus.Histogram
	WatchlistSize   prometheus.Gauge
	LastBatch       prometheus.Gauge
	CacheHits       *prometheus.CounterVec
	ErrorsTotal     *prometheus.CounterVec
}

// New creates the metrics and registers them on reg.
// Pass prometheus.NewRegistry() in tests to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Analyses: f.NewCounterVec(prometheus.CounterOpts{
			Name: "stock_sentinel_analyses_total",
			Help: "Analyses run, by outcome",
		}, []string{"outcome"}),

		AnalysisLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "stock_sentinel_analysis_latency_seconds",
			Help:    "Time from fetch to finished analysis for one symbol",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),

		BatchDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "stock_sentinel_batch_duration_seconds",
			Help:    "Wall time of one watchlist batch",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		}),

		WatchlistSize: f.NewGauge(prometheus.GaugeOpts{
			Name: "stock_sentinel_watchlist_size",
			Help: "Number of symbols in the watchlist",
		}),

		LastBatch: f.NewGauge(prometheus.GaugeOpts{
			Name: "stock_sentinel_last_batch_timestamp",
			Help: "Unix timestamp of the last completed batch",
		}),

		CacheHits: f.NewCounterVec(prometheus.CounterOpts{
			Name: "stock_sentinel_cache_requests_total",
			Help: "Result cache lookups, by result",
		}, []string{"result"}), // hit|miss

		ErrorsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "stock_sentinel_errors_total",
			Help: "Errors by component",
		}, []string{"component"}),
	}
}

// ObserveAnalysis counts one analysis and, when it succeeded, records its latency.
func (m *Metrics) ObserveAnalysis(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.Analyses.WithLabelValues(outcome).Inc()
	if outcome == OutcomeOK {
		m.AnalysisLatency.Observe(d.Seconds())
	}
}

// ObserveBatch records a finished batch.
func (m *Metrics) ObserveBatch(d time.Duration, finished time.Time) {
	if m == nil {
		return
	}
	m.BatchDuration.Observe(d.Seconds())
	m.LastBatch.Set(float64(finished.Unix()))
}

func (m *Metrics) SetWatchlistSize(n int) {
	if m == nil {
		return
	}
	m.WatchlistSize.Set(float64(n))
}

func (m *Metrics) CacheLookup(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheHits.WithLabelValues("hit").Inc()
		return
	}
	m.CacheHits.WithLabelValues("miss").Inc()
}

// RecordError increments the error counter for component.
func (m *Metrics) RecordError(component string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(component).Inc()
}
