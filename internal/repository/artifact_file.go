package repository

import (
	"context"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"GeoPrice/internal/services/model"
)

// FileArtifactStore persists the fitted pipeline as a single gob file.
// Writes go to a temp file in the target directory followed by rename, so a
// serving process never observes a partially written artifact. gob keeps
// float64 values bit-exact across the round trip.
type FileArtifactStore struct {
	path string
}

func NewFileArtifactStore(path string) *FileArtifactStore {
	return &FileArtifactStore{path: path}
}

// Path returns the configured artifact location.
func (s *FileArtifactStore) Path() string {
	return s.path
}

func (s *FileArtifactStore) Save(_ context.Context, a *model.Artifact) error {
	if err := a.Validate(); err != nil {
		return fmt.Errorf("refusing to persist invalid artifact: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := gob.NewEncoder(tmp).Encode(a); err != nil {
		tmp.Close()
		return fmt.Errorf("encode artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp artifact: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("publish artifact: %w", err)
	}
	return nil
}

func (s *FileArtifactStore) Load(_ context.Context) (*model.Artifact, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open artifact %s: %w", s.path, err)
	}
	defer f.Close()

	var a model.Artifact
	if err := gob.NewDecoder(f).Decode(&a); err != nil {
		return nil, fmt.Errorf("decode artifact %s: %w", s.path, err)
	}
	return &a, nil
}
