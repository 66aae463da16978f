package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"Denominator/internal/domain/models"
	"Denominator/internal/domain/repository"
	"Denominator/internal/services/reducer"
	"Denominator/internal/services/synth"
	xhttp "Denominator/pkg/http"
	"Denominator/pkg/logger"
)

var (
	ErrUnknownRange = errors.New("unknown range")
	ErrNoSinks      = errors.New("no export sink configured")
)

// Dashboard serves one series, generated at construction and never mutated.
type Dashboard struct {
	series  models.Series
	anchors []models.AnnualSnapshot
	mode    synth.Mode
	seed    uint32

	reducer   *reducer.Reducer
	exporter  repository.SeriesExporter
	publisher repository.SeriesPublisher
	metrics   repository.Metrics
	log       *logger.Logger
}

type DashboardOption func(*Dashboard)

// WithExporter enables the ClickHouse sink.
func WithExporter(e repository.SeriesExporter) DashboardOption {
	return func(d *Dashboard) { d.exporter = e }
}

// WithPublisher enables the Kafka sink.
func WithPublisher(p repository.SeriesPublisher) DashboardOption {
	return func(d *Dashboard) { d.publisher = p }
}

func WithMetrics(m repository.Metrics) DashboardOption {
	return func(d *Dashboard) {
		if m != nil {
			d.metrics = m
		}
	}
}

func WithLogger(l *logger.Logger) DashboardOption {
	return func(d *Dashboard) {
		if l != nil {
			d.log = l
		}
	}
}

// NewDashboard synthesizes the series once and keeps it for the process lifetime.
func NewDashboard(s *synth.Synthesizer, r *reducer.Reducer, opts ...DashboardOption) *Dashboard {
	d := &Dashboard{
		anchors: s.Anchors(),
		mode:    s.Mode(),
		seed:    s.Seed(),
		reducer: r,
		metrics: repository.NopMetrics{},
		log:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}

	start := time.Now()
	d.series = s.Generate()
	took := time.Since(start)

	d.metrics.RecordSynthesis(string(d.mode), d.series.Len(), took.Seconds())
	d.log.Info("series synthesized",
		logger.String("mode", string(d.mode)),
		logger.Int("rows", d.series.Len()),
		logger.String("fingerprint", d.series.Fingerprint()),
		logger.Duration("took_ms", took),
	)
	return d
}

// Series returns the rows within the range preset: 10Y, 25Y, 50Y or ALL.
func (d *Dashboard) Series(rangeKey string) (models.SeriesPage, error) {
	var rows []models.LiquidityDataPoint
	switch n := models.RangeYears(rangeKey); {
	case n > 0:
		rows = d.series.LastYears(n)
	case rangeKey == "ALL":
		rows = d.series.Rows()
	default:
		return models.SeriesPage{}, xhttp.BadRequestError(fmt.Sprintf("unknown range %q", rangeKey)).
			WithParam("options", []string{"10Y", "25Y", "50Y", "ALL"}).
			WithError(ErrUnknownRange)
	}
	return models.SeriesPage{Range: rangeKey, Count: len(rows), Rows: rows}, nil
}

// Latest returns the most recent row.
func (d *Dashboard) Latest() (models.LiquidityDataPoint, error) {
	row, ok := d.series.Last()
	if !ok {
		return row, xhttp.NotFoundError("series is empty")
	}
	return row, nil
}

// Metrics returns the headline scorecards.
func (d *Dashboard) Metrics(ctx context.Context) (models.Metrics, error) {
	m, err := d.reducer.LatestMetrics(ctx, d.series)
	if err != nil {
		if errors.Is(err, reducer.ErrEmptySeries) {
			return m, xhttp.NotFoundError("series is empty").WithError(err)
		}
		return m, xhttp.InternalError("metrics unavailable").WithError(err)
	}
	return m, nil
}

// Anchors returns the anchor table the series was built from.
func (d *Dashboard) Anchors() []models.AnnualSnapshot {
	return append([]models.AnnualSnapshot(nil), d.anchors...)
}

// Snapshot returns the full series value.
func (d *Dashboard) Snapshot() models.Series { return d.series }

// ExportReport summarizes one export.
type ExportReport struct {
	Fingerprint string   `json:"fingerprint"`
	Rows        int      `json:"rows"`
	Sinks       []string `json:"sinks"`
}

// Export writes the series to every configured sink concurrently. The first
// failure cancels the others.
func (d *Dashboard) Export(ctx context.Context) (ExportReport, error) {
	if d.exporter == nil && d.publisher == nil {
		return ExportReport{}, ErrNoSinks
	}

	run := repository.ExportRun{Mode: string(d.mode), Seed: d.seed, Fingerprint: d.series.Fingerprint()}
	rows := d.series.Rows()
	report := ExportReport{Fingerprint: run.Fingerprint, Rows: len(rows)}

	g, gctx := errgroup.WithContext(ctx)
	if d.exporter != nil {
		report.Sinks = append(report.Sinks, "clickhouse")
		g.Go(func() error {
			return d.exportTo(gctx, "clickhouse", rows, func(ctx context.Context) error {
				if err := d.exporter.Init(ctx); err != nil {
					return err
				}
				return d.exporter.Export(ctx, run, rows)
			})
		})
	}
	if d.publisher != nil {
		report.Sinks = append(report.Sinks, "kafka")
		g.Go(func() error {
			return d.exportTo(gctx, "kafka", rows, func(ctx context.Context) error {
				return d.publisher.Publish(ctx, run, rows)
			})
		})
	}

	if err := g.Wait(); err != nil {
		return report, err
	}
	d.log.Info("series exported",
		logger.Strings("sinks", report.Sinks),
		logger.Int("rows", report.Rows),
		logger.String("fingerprint", report.Fingerprint),
	)
	return report, nil
}

func (d *Dashboard) exportTo(ctx context.Context, sink string, rows []models.LiquidityDataPoint, fn func(context.Context) error) error {
	start := time.Now()
	if err := fn(ctx); err != nil {
		d.metrics.RecordError("export_" + sink)
		d.log.Error("export failed", logger.String("sink", sink), logger.Error(err))
		return fmt.Errorf("%s export: %w", sink, err)
	}
	d.metrics.RecordExport(sink, len(rows))
	d.metrics.RecordLatency("export_"+sink, time.Since(start).Seconds())
	return nil
}

// HealthReport describes the served series and the reachability of its sinks.
type HealthReport struct {
	Status      string            `json:"status"`
	Mode        string            `json:"mode"`
	Rows        int               `json:"rows"`
	Fingerprint string            `json:"fingerprint"`
	Checks      map[string]string `json:"checks,omitempty"`
}

// Health reports "ok", or "degraded" when a configured sink is unreachable.
func (d *Dashboard) Health(ctx context.Context) HealthReport {
	h := HealthReport{
		Status:      "ok",
		Mode:        string(d.mode),
		Rows:        d.series.Len(),
		Fingerprint: d.series.Fingerprint(),
	}
	if d.exporter != nil {
		h.Checks = map[string]string{"clickhouse": "ok"}
		if err := d.exporter.Health(ctx); err != nil {
			h.Status = "degraded"
			h.Checks["clickhouse"] = err.Error()
		}
	}
	return h
}

// Close releases the sinks.
func (d *Dashboard) Close() error {
	var errs []error
	if d.exporter != nil {
		errs = append(errs, d.exporter.Close())
	}
	if d.publisher != nil {
		errs = append(errs, d.publisher.Close())
	}
	return errors.Join(errs...)
}
