package repository

import (
	"context"

	"Denominator/internal/domain/models"
)

// SeriesExporter persists a generated series to an analytical store.
type SeriesExporter interface {
	Init(ctx context.Context) error // ensure tables
	Export(ctx context.Context, run ExportRun, rows []models.LiquidityDataPoint) error
	Health(ctx context.Context) error
	Close() error
}

// SeriesPublisher streams series rows to downstream consumers.
type SeriesPublisher interface {
	Publish(ctx context.Context, run ExportRun, rows []models.LiquidityDataPoint) error
	Close() error
}

// ExportRun identifies one export of one series.
type ExportRun struct {
	Mode        string
	Seed        uint32
	Fingerprint string
}

type Metrics interface {
	RecordSynthesis(mode string, rows int, seconds float64)
	RecordScorecard(name string, value, change float64)
	RecordCache(result string)
	RecordExport(sink string, rows int)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}

// NopMetrics discards every observation.
type NopMetrics struct{}

func (NopMetrics) RecordSynthesis(string, int, float64)     {}
func (NopMetrics) RecordScorecard(string, float64, float64) {}
func (NopMetrics) RecordCache(string)                       {}
func (NopMetrics) RecordExport(string, int)                 {}
func (NopMetrics) RecordError(string)                       {}
func (NopMetrics) RecordLatency(string, float64)            {}
