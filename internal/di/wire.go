//go:build wireinject
// +build wireinject

package di

import (
	"GeoPrice/pkg/config"
	"GeoPrice/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Model serving
		ProvideArtifactStore,
		ProvidePredictor,

		// Collaborators
		ProvideConverter,
		ProvideGeocodeCache,
		ProvideGeocoder,
		ProvideAuditPublisher,

		// HTTP surface
		ProvideHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
