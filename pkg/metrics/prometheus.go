package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	synthesisRows *prometheus.GaugeVec
	synthesisTime *prometheus.HistogramVec
	scoreValue    *prometheus.GaugeVec
	scoreChange   *prometheus.GaugeVec
	cacheTotal    *prometheus.CounterVec
	exportedRows  *prometheus.CounterVec
	errorsTotal   *prometheus.CounterVec
	latency       *prometheus.HistogramVec
}

// New registers the recorder's collectors with the default registry.
func New() *Recorder {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the recorder's collectors with reg.
func NewWith(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		synthesisRows: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "denominator_series_rows",
				Help: "Rows in the most recently synthesized series",
			},
			[]string{"mode"},
		),
		synthesisTime: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "denominator_synthesis_duration_seconds",
				Help:    "Time taken to synthesize the series",
				Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
			},
			[]string{"mode"},
		),
		scoreValue: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "denominator_scorecard_value",
				Help: "Latest value of a headline scorecard",
			},
			[]string{"metric"},
		),
		scoreChange: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "denominator_scorecard_change_percent",
				Help: "Change of a headline scorecard under the configured policy",
			},
			[]string{"metric"},
		),
		cacheTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "denominator_metrics_cache_total",
				Help: "Scorecard cache lookups by result",
			},
			[]string{"result"},
		),
		exportedRows: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "denominator_exported_rows_total",
				Help: "Series rows written to an export sink",
			},
			[]string{"sink"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "denominator_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "denominator_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordSynthesis records the size and duration of a synthesis run.
func (r *Recorder) RecordSynthesis(mode string, rows int, seconds float64) {
	r.synthesisRows.WithLabelValues(mode).Set(float64(rows))
	r.synthesisTime.WithLabelValues(mode).Observe(seconds)
}

// RecordScorecard publishes a scorecard's value and change.
func (r *Recorder) RecordScorecard(name string, value, change float64) {
	r.scoreValue.WithLabelValues(name).Set(value)
	r.scoreChange.WithLabelValues(name).Set(change)
}

// RecordCache counts a cache lookup result (hit or miss).
func (r *Recorder) RecordCache(result string) {
	r.cacheTotal.WithLabelValues(result).Inc()
}

// RecordExport counts rows written to sink.
func (r *Recorder) RecordExport(sink string, rows int) {
	r.exportedRows.WithLabelValues(sink).Add(float64(rows))
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
