package di

import (
	"fmt"

	"GeoPrice/internal/domain/repository"
	"GeoPrice/internal/handler/api"
	internalrepo "GeoPrice/internal/repository"
	"GeoPrice/internal/service/currency"
	"GeoPrice/internal/service/geocode"
	"GeoPrice/internal/services/model"
	"GeoPrice/internal/usecase"
	"GeoPrice/pkg/cache"
	"GeoPrice/pkg/config"
	xhttp "GeoPrice/pkg/http"
	pkgkafka "GeoPrice/pkg/kafka"
	"GeoPrice/pkg/logger"
	"GeoPrice/pkg/metrics"
	"GeoPrice/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	l, err := logger.New(&logger.Config{
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

// ProvideArtifactStore creates the file-backed model artifact store.
func ProvideArtifactStore(cfg *config.Config) model.ArtifactStore {
	return internalrepo.NewFileArtifactStore(cfg.Model.ArtifactPath)
}

// ProvidePredictor creates the load-once model predictor.
func ProvidePredictor(store model.ArtifactStore) *usecase.Predictor {
	return usecase.NewPredictor(store)
}

// ProvideConverter creates the currency converter from the static rate table.
func ProvideConverter(cfg *config.Config) *currency.Converter {
	return currency.NewConverter(cfg)
}

// ProvideGeocodeCache creates the cache backend used for reverse geocode
// memoization. Returns nil when geocoding is disabled.
func ProvideGeocodeCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Geocode.Enabled {
		return nil, nil
	}
	switch cfg.Geocode.Cache.Backend {
	case "redis":
		c, err := cache.NewRedisCache(&cache.RedisConfig{
			Addr:     cfg.Geocode.Cache.Redis.Addr,
			Password: cfg.Geocode.Cache.Redis.Password,
			DB:       cfg.Geocode.Cache.Redis.DB,
			Prefix:   "geoprice:geocode",
		})
		if err != nil {
			return nil, fmt.Errorf("geocode cache: %w", err)
		}
		return c, nil
	default:
		return cache.NewMemoryCache(), nil
	}
}

// ProvideGeocoder creates the cached reverse geocoder. Returns nil when
// geocoding is disabled; the handler treats a nil geocoder as "never
// resolved".
func ProvideGeocoder(cfg *config.Config, c cache.Service, m repository.Metrics) repository.Geocoder {
	if !cfg.Geocode.Enabled || c == nil {
		return nil
	}
	return geocode.NewCachedGeocoder(geocode.NewNominatim(cfg), c, m)
}

// ProvideAuditPublisher creates the Kafka audit publisher, or a no-op one
// when the audit trail is disabled.
func ProvideAuditPublisher(cfg *config.Config) (repository.AuditPublisher, error) {
	if !cfg.Audit.Enabled {
		return internalrepo.NoopAuditPublisher{}, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Audit.Kafka.Brokers),
		pkgkafka.WithRequiredAcks(cfg.Audit.Kafka.RequiredAcks),
		pkgkafka.WithCompression(cfg.Audit.Kafka.Compression),
		pkgkafka.WithWriteTimeout(cfg.Audit.Kafka.WriteTimeout),
		pkgkafka.WithMaxAttempts(cfg.Audit.Kafka.MaxAttempts),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return internalrepo.NewKafkaAuditPublisher(producer, cfg.Audit.Topic), nil
}

// ProvideHandler creates the HTTP handler for the estimate API.
func ProvideHandler(
	l *logger.Logger,
	predictor *usecase.Predictor,
	converter *currency.Converter,
	geocoder repository.Geocoder,
	audit repository.AuditPublisher,
	m repository.Metrics,
) xhttp.Handler {
	return api.NewEstimateEchoHandler(l, predictor, converter, geocoder, audit, m)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *logger.Logger,
	handler xhttp.Handler,
	predictor *usecase.Predictor,
	audit repository.AuditPublisher,
	geoCache cache.Service,
) *server.App {
	return server.New(cfg, l, handler, predictor, audit, geoCache)
}
