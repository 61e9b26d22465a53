package usecase

import (
	"context"
	"fmt"
	"time"

	"GeoPrice/internal/domain/repository"
	"GeoPrice/internal/services/model"
	"GeoPrice/internal/services/synth"
	applogger "GeoPrice/pkg/logger"
)

// Trainer runs one offline training batch: fetch base observations,
// synthesize structural features and the composite target, fit the pipeline
// and persist the artifact. Any failure aborts the run.
type Trainer struct {
	source repository.ObservationSource
	synth  *synth.Synthesizer
	params model.GBTParams
	store  model.ArtifactStore
	logger *applogger.Logger
}

func NewTrainer(
	source repository.ObservationSource,
	synthesizer *synth.Synthesizer,
	params model.GBTParams,
	store model.ArtifactStore,
	logger *applogger.Logger,
) *Trainer {
	return &Trainer{
		source: source,
		synth:  synthesizer,
		params: params,
		store:  store,
		logger: logger,
	}
}

// Run executes the batch and returns the persisted artifact.
func (t *Trainer) Run(ctx context.Context) (*model.Artifact, error) {
	start := time.Now()

	obs, err := t.source.Observations(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch observations: %w", err)
	}
	if len(obs) == 0 {
		return nil, fmt.Errorf("fetch observations: empty base dataset")
	}
	t.logger.Info("base dataset loaded", applogger.Int("rows", len(obs)))

	rows := t.synth.Augment(obs)

	pipe := model.NewPipeline(t.params)
	if err := pipe.Fit(rows); err != nil {
		return nil, fmt.Errorf("fit pipeline: %w", err)
	}
	t.logger.Info("pipeline fitted",
		applogger.Int("samples", len(rows)),
		applogger.Int("trees", len(pipe.Regressor.Trees)),
		applogger.Duration("duration_ms", time.Since(start)),
	)

	artifact := model.NewArtifact(pipe, len(rows))
	if err := t.store.Save(ctx, artifact); err != nil {
		return nil, fmt.Errorf("persist artifact: %w", err)
	}

	return artifact, nil
}
