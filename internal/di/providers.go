package di

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"Denominator/internal/domain/models"
	"Denominator/internal/domain/repository"
	"Denominator/internal/handler/api"
	internalrepo "Denominator/internal/repository"
	"Denominator/internal/service/ratelimit"
	"Denominator/internal/services/reducer"
	"Denominator/internal/services/synth"
	"Denominator/internal/usecase"
	"Denominator/pkg/cache"
	pkgch "Denominator/pkg/clickhouse"
	"Denominator/pkg/config"
	xhttp "Denominator/pkg/http"
	pkgkafka "Denominator/pkg/kafka"
	"Denominator/pkg/logger"
	"Denominator/pkg/metrics"
	"Denominator/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	l, err := logger.New(&logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.With(logger.String("env", cfg.Environment)), nil
}

// ProvideRegistry creates the Prometheus registry shared by the recorder and /metrics.
func ProvideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics(cfg *config.Config, reg *prometheus.Registry) repository.Metrics {
	if !cfg.Metrics.Enabled {
		return repository.NopMetrics{}
	}
	return metrics.NewWith(reg)
}

// ProvideSynthesizer builds the series synthesizer from the series section.
func ProvideSynthesizer(cfg *config.Config) (*synth.Synthesizer, error) {
	mode, err := synth.ParseMode(cfg.Series.Mode)
	if err != nil {
		return nil, err
	}
	opts := []synth.Option{synth.WithSeed(cfg.Series.Seed)}
	if cfg.Series.Assets {
		opts = append(opts, synth.WithAssets(synth.AssetAnchors()))
	}
	if mode == synth.ModeHybrid {
		opts = append(opts, synth.WithMonthlySimulation(synth.SimulationPhases(), cfg.Series.SimStart, cfg.Series.SimEnd))
	}
	s, err := synth.New(synth.HistoricalAnchors(), opts...)
	if err != nil {
		return nil, fmt.Errorf("synthesizer: %w", err)
	}
	return s, nil
}

// ProvideCache creates the metrics cache: in-memory, or memory in front of Redis.
func ProvideCache(cfg *config.Config) (cache.Service, func(), error) {
	if !cfg.Cache.Redis.Enabled {
		mc := cache.NewMemoryCache(cache.WithMemoryMaxSize(cfg.Cache.MemoryMaxSize), cache.WithMemoryDefaultTTL(cfg.Cache.TTL))
		return mc, func() { _ = mc.Close() }, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rc, err := cache.NewRedisCache(ctx,
		cache.WithRedisHost(cfg.Cache.Redis.Host),
		cache.WithRedisPort(cfg.Cache.Redis.Port),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
		cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("redis cache: %w", err)
	}
	lc := cache.NewLayeredCache(rc, cfg.Cache.MemoryMaxSize)
	return lc, func() { _ = lc.Close() }, nil
}

// ProvideReducer creates the memoizing metrics reducer.
func ProvideReducer(cfg *config.Config, c cache.Service, m repository.Metrics, l *logger.Logger) (*reducer.Reducer, error) {
	policy, err := models.ParseChangePolicy(cfg.Metrics.ChangePolicy)
	if err != nil {
		return nil, err
	}
	return reducer.New(policy,
		reducer.WithCache(c, cfg.Cache.TTL),
		reducer.WithMetrics(m),
		reducer.WithLogger(l),
	), nil
}

// ProvideClickHouseClient creates a ClickHouse client, or nil when the sink is disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, func(), error) {
	chc := cfg.Export.ClickHouse
	if !chc.Enabled {
		return nil, func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := pkgch.NewClient(ctx,
		pkgch.WithHost(chc.Host),
		pkgch.WithPort(chc.Port),
		pkgch.WithDatabase(chc.Database),
		pkgch.WithCredentials(chc.User, chc.Password),
		pkgch.WithHTTP(chc.UseHTTP),
		pkgch.WithAsyncInsert(chc.AsyncInsert),
		pkgch.WithTimeouts(chc.DialTimeout, chc.ReadTimeout),
		pkgch.WithMaxExecutionTime(chc.MaxExecutionTime),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, func() { _ = client.Close() }, nil
}

// ProvideSeriesExporter creates the ClickHouse series exporter. The table is
// created on the first export.
func ProvideSeriesExporter(cfg *config.Config, client *pkgch.Client) repository.SeriesExporter {
	if client == nil {
		return nil
	}
	return internalrepo.NewClickHouseSeriesExporter(client.DB(), cfg.Export.ClickHouse.Database+"."+cfg.Export.ClickHouse.Table)
}

// ProvideKafkaProducer creates a Kafka producer, or nil when the sink is disabled.
func ProvideKafkaProducer(cfg *config.Config, reg *prometheus.Registry) (*pkgkafka.Producer, error) {
	kc := cfg.Export.Kafka
	if !kc.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(kc.Brokers),
		pkgkafka.WithTopic(kc.Topic),
		pkgkafka.WithCompression(kc.Compression),
		pkgkafka.WithRequiredAcks(kc.RequiredAcks),
		pkgkafka.WithMaxAttempts(kc.MaxAttempts),
		pkgkafka.WithBatch(kc.BatchSize, 50*time.Millisecond),
		pkgkafka.WithWriteTimeout(kc.WriteTimeout),
		pkgkafka.WithRegisterer(reg),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideSeriesPublisher creates the Kafka series publisher. It owns the producer.
func ProvideSeriesPublisher(cfg *config.Config, producer *pkgkafka.Producer) repository.SeriesPublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaSeriesPublisher(producer, cfg.Export.Kafka.BatchSize)
}

// ProvideDashboard synthesizes the series and assembles the dashboard use case.
func ProvideDashboard(
	s *synth.Synthesizer,
	r *reducer.Reducer,
	exporter repository.SeriesExporter,
	publisher repository.SeriesPublisher,
	m repository.Metrics,
	l *logger.Logger,
) *usecase.Dashboard {
	return usecase.NewDashboard(s, r,
		usecase.WithExporter(exporter),
		usecase.WithPublisher(publisher),
		usecase.WithMetrics(m),
		usecase.WithLogger(l),
	)
}

// ProvideDashboardHandler creates the Echo handler.
func ProvideDashboardHandler(cfg *config.Config, l *logger.Logger, dash *usecase.Dashboard) *api.DashboardEchoHandler {
	var opts []api.HandlerOption
	if rl := cfg.Export.RateLimit; rl.Burst > 0 {
		opts = append(opts, api.WithExportLimiter(ratelimit.New(rl.Burst, rl.PerMinute/60)))
	}
	return api.NewDashboardEchoHandler(l, dash, opts...)
}

// ProvideHTTPServer creates the Echo server with every handler registered.
func ProvideHTTPServer(cfg *config.Config, l *logger.Logger, h *api.DashboardEchoHandler, reg *prometheus.Registry) *xhttp.Server {
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	return xhttp.NewServer(l, []xhttp.Handler{h},
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(cfg.Server.CORSOrigins),
		xhttp.WithMetricsPath(metricsPath),
		xhttp.WithRegistry(reg),
	)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, l *logger.Logger, dash *usecase.Dashboard, srv *xhttp.Server) *server.App {
	return server.New(cfg, l, dash, srv)
}
