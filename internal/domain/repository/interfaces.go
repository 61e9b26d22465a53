package repository

import (
	"context"

	"GeoPrice/internal/domain/models"
)

// ObservationSource provides the base geospatial dataset used for training.
type ObservationSource interface {
	Observations(ctx context.Context) ([]models.Observation, error)
}

// Geocoder resolves coordinates to a human-readable address. Implementations
// absorb lookup failures into the AddressLookup result; an error is reserved
// for transport-level problems that a caching wrapper may still absorb.
type Geocoder interface {
	Reverse(ctx context.Context, lat, lon float64, lang string) (models.AddressLookup, error)
}

// AuditPublisher records served estimates for later retraining. Publishing is
// best-effort: a failure degrades the audit trail, never the estimate.
type AuditPublisher interface {
	Publish(ctx context.Context, rec models.EstimateRecord) error
	Close() error
}

// Metrics abstracts operational metrics recording.
type Metrics interface {
	RecordEstimate(currency string, raw float64)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
	RecordGeocodeLookup(outcome string)
}
