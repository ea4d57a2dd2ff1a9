//go:build wireinject
// +build wireinject

package di

import (
	"SpanScreener/pkg/config"
	"SpanScreener/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideMetrics,

		// Upstream client and cache
		ProvideMarketData,
		ProvideCache,

		// Snapshot pipeline
		ProvideSnapshotFetcher,
		ProvideSnapshotSource,

		// Event publishing
		ProvidePublisher,

		// Use case and HTTP surface
		ProvideRecommendationPipeline,
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
