package model

import (
	"math"
	"testing"
)

func TestScalerFitTransform(t *testing.T) {
	x := [][]float64{
		{1, 10},
		{2, 10},
		{3, 10},
	}

	var s StandardScaler
	if err := s.Fit(x); err != nil {
		t.Fatalf("fit: %v", err)
	}

	if math.Abs(s.Means[0]-2) > 1e-12 {
		t.Fatalf("mean[0] = %v, want 2", s.Means[0])
	}
	wantStd := math.Sqrt(2.0 / 3.0)
	if math.Abs(s.Stds[0]-wantStd) > 1e-12 {
		t.Fatalf("std[0] = %v, want %v", s.Stds[0], wantStd)
	}

	// Zero-variance column keeps scale 1 and centers to zero.
	if s.Stds[1] != 1 {
		t.Fatalf("std[1] = %v, want 1 for constant column", s.Stds[1])
	}

	row, err := s.Transform([]float64{2, 10})
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	if row[0] != 0 || row[1] != 0 {
		t.Fatalf("transform of means = %v, want zeros", row)
	}
}

func TestScalerRejectsWidthMismatch(t *testing.T) {
	var s StandardScaler
	if err := s.Fit([][]float64{{1, 2}, {3, 4}}); err != nil {
		t.Fatalf("fit: %v", err)
	}
	if _, err := s.Transform([]float64{1}); err == nil {
		t.Fatalf("expected width mismatch error")
	}
}

func TestScalerNotFitted(t *testing.T) {
	var s StandardScaler
	if _, err := s.Transform([]float64{1, 2}); err == nil {
		t.Fatalf("expected not-fitted error")
	}
}
