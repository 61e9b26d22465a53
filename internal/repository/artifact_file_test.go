package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"GeoPrice/internal/domain/models"
	"GeoPrice/internal/services/model"
)

func fittedArtifact(t *testing.T) *model.Artifact {
	t.Helper()
	rows := []models.TrainingRow{
		{Features: models.FeatureVector{Latitude: 34, Longitude: -118, TotalArea: 1500, GarageCars: 1, Bedrooms: 2, HouseAge: 12}, Target: 2.1},
		{Features: models.FeatureVector{Latitude: 37, Longitude: -122, TotalArea: 2200, GarageCars: 2, Bedrooms: 4, HouseAge: 40}, Target: 4.8},
		{Features: models.FeatureVector{Latitude: 41, Longitude: -74, TotalArea: 900, GarageCars: 0, Bedrooms: 1, HouseAge: 70}, Target: 1.2},
		{Features: models.FeatureVector{Latitude: 26, Longitude: -80, TotalArea: 3100, GarageCars: 2, Bedrooms: 5, HouseAge: 8}, Target: 3.9},
	}
	params := model.DefaultGBTParams()
	params.Trees = 50
	pipe := model.NewPipeline(params)
	if err := pipe.Fit(rows); err != nil {
		t.Fatalf("fit: %v", err)
	}
	return model.NewArtifact(pipe, len(rows))
}

func TestFileArtifactStoreRoundTrip(t *testing.T) {
	store := NewFileArtifactStore(filepath.Join(t.TempDir(), "model.gob"))
	ctx := context.Background()

	saved := fittedArtifact(t)
	if err := store.Save(ctx, saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := loaded.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	if loaded.SchemaVersion != saved.SchemaVersion {
		t.Fatalf("schema version = %d, want %d", loaded.SchemaVersion, saved.SchemaVersion)
	}
	if loaded.Samples != saved.Samples {
		t.Fatalf("samples = %d, want %d", loaded.Samples, saved.Samples)
	}
	for j := range saved.Pipeline.Scaler.Means {
		if loaded.Pipeline.Scaler.Means[j] != saved.Pipeline.Scaler.Means[j] ||
			loaded.Pipeline.Scaler.Stds[j] != saved.Pipeline.Scaler.Stds[j] {
			t.Fatalf("scaler parameter %d not bit-exact after round trip", j)
		}
	}

	// Predictions must be bit-exact, not merely close.
	probes := []models.FeatureVector{
		{Latitude: 34, Longitude: -118, TotalArea: 1500, GarageCars: 1, Bedrooms: 2, HouseAge: 12},
		{Latitude: 30, Longitude: -90, TotalArea: 1800, GarageCars: 3, Bedrooms: 3, HouseAge: 25},
		{Latitude: 60, Longitude: 10, TotalArea: 7000, GarageCars: 4, Bedrooms: 9, HouseAge: 150},
	}
	for i, fv := range probes {
		want, err := saved.Pipeline.Predict(fv)
		if err != nil {
			t.Fatalf("predict saved %d: %v", i, err)
		}
		got, err := loaded.Pipeline.Predict(fv)
		if err != nil {
			t.Fatalf("predict loaded %d: %v", i, err)
		}
		if got != want {
			t.Fatalf("probe %d: loaded model predicts %v, saved predicts %v", i, got, want)
		}
	}
}

func TestFileArtifactStoreRejectsUnfitted(t *testing.T) {
	store := NewFileArtifactStore(filepath.Join(t.TempDir(), "model.gob"))
	empty := model.NewArtifact(model.NewPipeline(model.DefaultGBTParams()), 0)

	if err := store.Save(context.Background(), empty); err == nil {
		t.Fatalf("expected save to reject an unfitted pipeline")
	}
	if _, err := os.Stat(store.Path()); !os.IsNotExist(err) {
		t.Fatalf("rejected save must not leave a file behind")
	}
}

func TestFileArtifactStoreOverwriteIsAtomic(t *testing.T) {
	dir := t.TempDir()
	store := NewFileArtifactStore(filepath.Join(dir, "model.gob"))
	ctx := context.Background()

	a := fittedArtifact(t)
	if err := store.Save(ctx, a); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := store.Save(ctx, a); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %d entries in artifact dir", len(entries))
	}
	if _, err := store.Load(ctx); err != nil {
		t.Fatalf("load after overwrite: %v", err)
	}
}

func TestFileArtifactStoreLoadMissing(t *testing.T) {
	store := NewFileArtifactStore(filepath.Join(t.TempDir(), "absent.gob"))
	if _, err := store.Load(context.Background()); err == nil {
		t.Fatalf("expected error for missing artifact")
	}
}

func TestFileArtifactStoreLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.gob")
	if err := os.WriteFile(path, []byte("not a gob stream"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := NewFileArtifactStore(path).Load(context.Background()); err == nil {
		t.Fatalf("expected error for corrupt artifact")
	}
}
