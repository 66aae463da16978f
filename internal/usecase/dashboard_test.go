package usecase

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"Denominator/internal/domain/models"
	"Denominator/internal/domain/repository"
	"Denominator/internal/services/reducer"
	"Denominator/internal/services/synth"
	xhttp "Denominator/pkg/http"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeExporter struct {
	mu     sync.Mutex
	inited bool
	run    repository.ExportRun
	rows   int
	err    error
	health error
	closed bool
}

func (f *fakeExporter) Init(context.Context) error { f.inited = true; return nil }
func (f *fakeExporter) Export(_ context.Context, run repository.ExportRun, rows []models.LiquidityDataPoint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.run, f.rows = run, len(rows)
	return f.err
}
func (f *fakeExporter) Health(context.Context) error { return f.health }
func (f *fakeExporter) Close() error                 { f.closed = true; return nil }

type fakePublisher struct {
	mu   sync.Mutex
	run  repository.ExportRun
	rows int
}

func (f *fakePublisher) Publish(_ context.Context, run repository.ExportRun, rows []models.LiquidityDataPoint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.run, f.rows = run, len(rows)
	return nil
}
func (f *fakePublisher) Close() error { return nil }

type countingMetrics struct {
	repository.NopMetrics
	mu        sync.Mutex
	synthRows int
	exported  map[string]int
	errors    []string
}

func (m *countingMetrics) RecordSynthesis(_ string, rows int, _ float64) { m.synthRows = rows }
func (m *countingMetrics) RecordExport(sink string, rows int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.exported == nil {
		m.exported = map[string]int{}
	}
	m.exported[sink] += rows
}
func (m *countingMetrics) RecordError(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, kind)
}

func newDashboard(t *testing.T, hybrid bool, opts ...DashboardOption) *Dashboard {
	t.Helper()
	sopts := []synth.Option{synth.WithAssets(synth.AssetAnchors())}
	if hybrid {
		sopts = append(sopts, synth.WithMonthlySimulation(synth.SimulationPhases(), synth.DefaultSimStart, synth.DefaultSimEnd))
	}
	s, err := synth.New(synth.HistoricalAnchors(), sopts...)
	require.NoError(t, err)
	return NewDashboard(s, reducer.New(models.ChangeCAGR), opts...)
}

func TestSeriesRanges(t *testing.T) {
	d := newDashboard(t, false)

	all, err := d.Series("ALL")
	require.NoError(t, err)
	assert.Equal(t, 113, all.Count)
	assert.Equal(t, "1913", all.Rows[0].Date)

	ten, err := d.Series("10Y")
	require.NoError(t, err)
	assert.Equal(t, "10Y", ten.Range)
	assert.Equal(t, ten.Count, len(ten.Rows))
	assert.Equal(t, "2025", ten.Rows[len(ten.Rows)-1].Date)
	assert.Less(t, ten.Count, all.Count)

	_, err = d.Series("7Y")
	var appErr *xhttp.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.ErrorIs(t, err, ErrUnknownRange)
}

func TestLatestAndMetrics(t *testing.T) {
	d := newDashboard(t, true)

	last, err := d.Latest()
	require.NoError(t, err)
	assert.Equal(t, "Dec 2025", last.Date)

	m, err := d.Metrics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.ChangeCAGR, m.Policy)
	assert.Equal(t, last.M2Global, m.M2Global.Value)
	assert.Equal(t, last.DenominatorIndex, m.DenominatorIndex.Value)
}

func TestAnchorsReturnsCopy(t *testing.T) {
	d := newDashboard(t, false)
	a := d.Anchors()
	require.NotEmpty(t, a)
	a[0].M2US = -1
	assert.NotEqual(t, -1.0, d.Anchors()[0].M2US)
}

func TestSynthesisIsRecorded(t *testing.T) {
	m := &countingMetrics{}
	d := newDashboard(t, false, WithMetrics(m))
	assert.Equal(t, d.Snapshot().Len(), m.synthRows)
}

func TestExportWithoutSinks(t *testing.T) {
	_, err := newDashboard(t, false).Export(context.Background())
	assert.ErrorIs(t, err, ErrNoSinks)
}

func TestExportFansOut(t *testing.T) {
	exp := &fakeExporter{}
	pub := &fakePublisher{}
	m := &countingMetrics{}
	d := newDashboard(t, true, WithExporter(exp), WithPublisher(pub), WithMetrics(m))

	report, err := d.Export(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"clickhouse", "kafka"}, report.Sinks)
	assert.Equal(t, d.Snapshot().Len(), report.Rows)
	assert.Equal(t, d.Snapshot().Fingerprint(), report.Fingerprint)

	assert.True(t, exp.inited)
	assert.Equal(t, report.Rows, exp.rows)
	assert.Equal(t, report.Rows, pub.rows)
	want := repository.ExportRun{Mode: "hybrid", Seed: synth.DefaultSeed, Fingerprint: report.Fingerprint}
	assert.Equal(t, want, exp.run)
	assert.Equal(t, want, pub.run)
	assert.Equal(t, report.Rows, m.exported["clickhouse"])
	assert.Equal(t, report.Rows, m.exported["kafka"])
}

func TestExportFailureIsReported(t *testing.T) {
	boom := errors.New("connection refused")
	m := &countingMetrics{}
	d := newDashboard(t, false, WithExporter(&fakeExporter{err: boom}), WithMetrics(m))

	_, err := d.Export(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "clickhouse export")
	assert.Equal(t, []string{"export_clickhouse"}, m.errors)
}

func TestHealth(t *testing.T) {
	d := newDashboard(t, false)
	h := d.Health(context.Background())
	assert.Equal(t, "ok", h.Status)
	assert.Equal(t, "annual", h.Mode)
	assert.Equal(t, 113, h.Rows)
	assert.Nil(t, h.Checks)

	exp := &fakeExporter{health: errors.New("down")}
	d = newDashboard(t, false, WithExporter(exp))
	h = d.Health(context.Background())
	assert.Equal(t, "degraded", h.Status)
	assert.Equal(t, "down", h.Checks["clickhouse"])

	require.NoError(t, d.Close())
	assert.True(t, exp.closed)
}
