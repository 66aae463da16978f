//go:build wireinject
// +build wireinject

package di

import (
	"Denominator/pkg/config"
	"Denominator/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, func(), error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideRegistry,
		ProvideMetrics,
		ProvideCache,

		// Series
		ProvideSynthesizer,
		ProvideReducer,

		// Export sinks
		ProvideClickHouseClient,
		ProvideSeriesExporter,
		ProvideKafkaProducer,
		ProvideSeriesPublisher,

		// Use cases and transport
		ProvideDashboard,
		ProvideDashboardHandler,
		ProvideHTTPServer,

		// Application server
		ProvideApp,
	)
	return nil, nil, nil
}
