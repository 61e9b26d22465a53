package model

import (
	"context"
	"fmt"
	"time"

	"GeoPrice/internal/domain/models"
)

// CurrentSchemaVersion guards against loading artifacts written by an
// incompatible build.
const CurrentSchemaVersion = 1

// Artifact is the persisted, immutable bundle of a fitted pipeline. A new
// training run produces a new artifact; nothing mutates one in place.
type Artifact struct {
	SchemaVersion int
	FeatureNames  []string
	Pipeline      *Pipeline
	TrainedAt     time.Time
	Samples       int
}

// NewArtifact wraps a fitted pipeline for persistence.
func NewArtifact(p *Pipeline, samples int) *Artifact {
	return &Artifact{
		SchemaVersion: CurrentSchemaVersion,
		FeatureNames:  models.FeatureNames(),
		Pipeline:      p,
		TrainedAt:     time.Now().UTC(),
		Samples:       samples,
	}
}

// Validate rejects artifacts that do not match the schema this build was
// trained and served with. Any mismatch is fatal at load time.
func (a *Artifact) Validate() error {
	if a == nil {
		return fmt.Errorf("artifact: nil")
	}
	if a.SchemaVersion != CurrentSchemaVersion {
		return fmt.Errorf("artifact: schema version %d, want %d", a.SchemaVersion, CurrentSchemaVersion)
	}
	want := models.FeatureNames()
	if len(a.FeatureNames) != len(want) {
		return fmt.Errorf("artifact: %d feature columns, want %d", len(a.FeatureNames), len(want))
	}
	for i, name := range want {
		if a.FeatureNames[i] != name {
			return fmt.Errorf("artifact: feature column %d is %q, want %q", i, a.FeatureNames[i], name)
		}
	}
	if !a.Pipeline.Fitted() {
		return fmt.Errorf("artifact: pipeline is not fitted")
	}
	return nil
}

// ArtifactStore persists and retrieves fitted model artifacts.
type ArtifactStore interface {
	Save(ctx context.Context, a *Artifact) error
	Load(ctx context.Context) (*Artifact, error)
}
