package di

import (
	"fmt"

	"SpanScreener/internal/domain/repository"
	"SpanScreener/internal/handler/api"
	internalrepo "SpanScreener/internal/repository"
	"SpanScreener/internal/service/massive"
	"SpanScreener/internal/service/snapshotstore"
	"SpanScreener/internal/usecase"
	"SpanScreener/pkg/cache"
	"SpanScreener/pkg/config"
	xhttp "SpanScreener/pkg/http"
	pkgkafka "SpanScreener/pkg/kafka"
	applogger "SpanScreener/pkg/logger"
	"SpanScreener/pkg/metrics"
	"SpanScreener/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideMarketData creates the Massive.com REST client.
func ProvideMarketData(cfg *config.Config, m repository.Metrics) repository.MarketData {
	return massive.New(cfg.Massive.BaseURL, cfg.Massive.APIKey, cfg.Massive.RequestTimeout, m)
}

// ProvideCache creates the snapshot cache. With Redis enabled the in-process
// cache fronts Redis as a read-through layer; otherwise snapshots live only
// in process memory.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Cache.Redis.Enabled {
		return cache.NewMemoryCache(cache.WithMemoryMaxSize(cfg.Cache.MaxEntries)), nil
	}

	redisCache, err := cache.NewRedisCache(
		cache.WithRedisHost(cfg.Cache.Redis.Host),
		cache.WithRedisPort(cfg.Cache.Redis.Port),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
		cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return cache.NewLayeredCache(redisCache, cfg.Cache.MaxEntries, cfg.Cache.TTL), nil
}

// ProvideSnapshotFetcher creates the concurrent five-call upstream fetcher.
func ProvideSnapshotFetcher(provider repository.MarketData, cfg *config.Config) *usecase.SnapshotFetcher {
	return usecase.NewSnapshotFetcher(provider, cfg.Massive.FetchTimeout)
}

// ProvideSnapshotSource creates the cached, single-flight snapshot store.
func ProvideSnapshotSource(
	c cache.Service,
	fetcher *usecase.SnapshotFetcher,
	cfg *config.Config,
	m repository.Metrics,
	logger *applogger.Logger,
) repository.SnapshotSource {
	return snapshotstore.New(c, fetcher.Fetch, cfg.Cache.TTL, m, logger)
}

// ProvidePublisher creates the Kafka recommendation publisher, or a no-op
// publisher when no brokers are configured.
func ProvidePublisher(cfg *config.Config) (repository.Publisher, error) {
	if len(cfg.Kafka.Brokers) == 0 {
		return internalrepo.NoopPublisher{}, nil
	}

	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithWriteTimeout(cfg.Kafka.WriteTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return internalrepo.NewKafkaRecommendationPublisher(producer, cfg.Kafka.Topic), nil
}

// ProvideRecommendationPipeline creates the snapshot-to-signal pipeline.
func ProvideRecommendationPipeline(
	snapshots repository.SnapshotSource,
	publisher repository.Publisher,
	m repository.Metrics,
	logger *applogger.Logger,
) *usecase.RecommendationPipeline {
	return usecase.NewRecommendationPipeline(snapshots, publisher, m, logger)
}

// ProvideHandler creates the HTTP route handler.
func ProvideHandler(logger *applogger.Logger, pipeline *usecase.RecommendationPipeline) xhttp.Handler {
	return api.NewRecommendationHandler(logger, pipeline)
}

// ProvideApp assembles the application.
func ProvideApp(
	cfg *config.Config,
	logger *applogger.Logger,
	handler xhttp.Handler,
	c cache.Service,
	publisher repository.Publisher,
) *server.App {
	return server.New(cfg, logger, handler, c, publisher)
}
