package usecase

import (
	"context"
	"fmt"
	"sync"

	"GeoPrice/internal/domain/models"
	"GeoPrice/internal/services/model"
)

// Predictor serves point predictions from a model artifact deserialized at
// most once per process. After a successful load the pipeline is shared
// read-only state, so concurrent Predict calls need no locking. There is no
// fallback model: a failed load makes every call fail.
type Predictor struct {
	store model.ArtifactStore

	once sync.Once
	pipe *model.Pipeline
	err  error
}

func NewPredictor(store model.ArtifactStore) *Predictor {
	return &Predictor{store: store}
}

// Warm forces the one-time artifact load. Startup calls it so that a
// missing or corrupt artifact aborts the process before any request is
// served.
func (p *Predictor) Warm(ctx context.Context) error {
	return p.ensure(ctx)
}

// Predict returns the raw price estimate in $100,000 units. The caller is
// responsible for unit scaling and currency conversion.
func (p *Predictor) Predict(ctx context.Context, fv models.FeatureVector) (float64, error) {
	if err := p.ensure(ctx); err != nil {
		return 0, err
	}
	return p.pipe.Predict(fv)
}

func (p *Predictor) ensure(ctx context.Context) error {
	p.once.Do(func() {
		artifact, err := p.store.Load(ctx)
		if err != nil {
			p.err = fmt.Errorf("load artifact: %w", err)
			return
		}
		if err := artifact.Validate(); err != nil {
			p.err = fmt.Errorf("validate artifact: %w", err)
			return
		}
		p.pipe = artifact.Pipeline
	})
	return p.err
}
