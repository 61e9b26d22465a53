package model

import (
	"fmt"

	"GeoPrice/internal/domain/models"
)

// Pipeline couples the fitted scaler and regressor as one unit so that
// serving-time standardization parameters are exactly those produced at
// training time.
type Pipeline struct {
	Scaler    *StandardScaler
	Regressor *GBTRegressor
}

// NewPipeline assembles an unfitted two-stage pipeline.
func NewPipeline(params GBTParams) *Pipeline {
	return &Pipeline{
		Scaler:    &StandardScaler{},
		Regressor: &GBTRegressor{Params: params},
	}
}

// Fit trains both stages jointly on the augmented dataset.
func (p *Pipeline) Fit(rows []models.TrainingRow) error {
	if len(rows) == 0 {
		return fmt.Errorf("pipeline: empty training set")
	}

	x := make([][]float64, len(rows))
	y := make([]float64, len(rows))
	for i, r := range rows {
		x[i] = r.Features.Values()
		y[i] = r.Target
	}

	if err := p.Scaler.Fit(x); err != nil {
		return fmt.Errorf("fit scaler: %w", err)
	}
	xs, err := p.Scaler.TransformAll(x)
	if err != nil {
		return fmt.Errorf("transform training set: %w", err)
	}
	if err := p.Regressor.Fit(xs, y); err != nil {
		return fmt.Errorf("fit regressor: %w", err)
	}
	return nil
}

// Predict returns the raw price estimate in $100,000 units for one feature
// vector. Inputs outside the training ranges are extrapolated, not rejected.
func (p *Pipeline) Predict(fv models.FeatureVector) (float64, error) {
	if !p.Fitted() {
		return 0, fmt.Errorf("pipeline: not fitted")
	}
	row, err := p.Scaler.Transform(fv.Values())
	if err != nil {
		return 0, err
	}
	return p.Regressor.Predict(row), nil
}

// Fitted reports whether both stages carry trained state.
func (p *Pipeline) Fitted() bool {
	return p != nil &&
		p.Scaler != nil &&
		len(p.Scaler.Means) == models.NumFeatures &&
		len(p.Scaler.Stds) == models.NumFeatures &&
		p.Regressor != nil
}
