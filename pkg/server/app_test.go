package server

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Denominator/internal/domain/models"
	"Denominator/internal/domain/repository"
	"Denominator/internal/services/reducer"
	"Denominator/internal/services/synth"
	"Denominator/internal/usecase"
	"Denominator/pkg/config"
	xhttp "Denominator/pkg/http"
	applogger "Denominator/pkg/logger"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type blockingPublisher struct {
	started  chan struct{}
	mu       sync.Mutex
	finished bool
	closedOK bool
}

func (p *blockingPublisher) Publish(ctx context.Context, _ repository.ExportRun, _ []models.LiquidityDataPoint) error {
	close(p.started)
	<-ctx.Done()
	time.Sleep(50 * time.Millisecond)
	p.mu.Lock()
	p.finished = true
	p.mu.Unlock()
	return ctx.Err()
}

func (p *blockingPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closedOK = p.finished
	return nil
}

func newApp(t *testing.T, buf *syncBuffer, opts ...usecase.DashboardOption) *App {
	t.Helper()
	cfg := config.Default()
	cfg.Server.ShutdownTimeout = time.Second
	cfg.Export.Timeout = time.Second

	l := applogger.NewWriter(buf)
	dash := usecase.NewDashboard(synth.MustNew(synth.HistoricalAnchors()), reducer.New(models.ChangeCAGR),
		append(opts, usecase.WithLogger(l))...)
	srv := xhttp.NewServer(l, nil,
		xhttp.WithHost("127.0.0.1"),
		xhttp.WithPort(0),
		xhttp.WithRegistry(prometheus.NewRegistry()),
	)
	return New(cfg, l, dash, srv)
}

func TestRunContextStopsOnCancel(t *testing.T) {
	var buf syncBuffer
	app := newApp(t, &buf)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, app.RunContext(ctx))
	assert.Contains(t, buf.String(), "shutdown complete")
	assert.Equal(t, 113, app.Dashboard().Snapshot().Len())
}

func TestExportOnStartWithoutSinksWarns(t *testing.T) {
	var buf syncBuffer
	app := newApp(t, &buf)

	app.exportOnStart(context.Background())
	assert.Contains(t, buf.String(), "no sink is enabled")
}

func TestShutdownWaitsForExportOnStart(t *testing.T) {
	var buf syncBuffer
	pub := &blockingPublisher{started: make(chan struct{})}
	app := newApp(t, &buf, usecase.WithPublisher(pub))
	app.cfg.Export.OnStart = true
	app.cfg.Export.Timeout = 5 * time.Second

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.RunContext(ctx) }()

	select {
	case <-pub.started:
	case <-time.After(5 * time.Second):
		t.Fatal("export did not start")
	}
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("run did not return")
	}
	assert.True(t, pub.closedOK, "sinks closed while an export was still running")
	assert.Contains(t, buf.String(), "export on start failed")
}
