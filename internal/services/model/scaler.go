package model

import (
	"fmt"
	"math"
)

// StandardScaler standardizes features to zero mean and unit variance using
// statistics captured at fit time. The fitted statistics travel with the
// artifact; serving never recomputes them.
type StandardScaler struct {
	Means []float64
	Stds  []float64
}

// Fit computes per-feature mean and population standard deviation.
// Zero-variance features keep a scale of 1 so they pass through centered.
func (s *StandardScaler) Fit(x [][]float64) error {
	if len(x) == 0 {
		return fmt.Errorf("scaler: empty training set")
	}
	width := len(x[0])
	n := float64(len(x))

	s.Means = make([]float64, width)
	s.Stds = make([]float64, width)

	for j := 0; j < width; j++ {
		sum := 0.0
		for i := range x {
			sum += x[i][j]
		}
		s.Means[j] = sum / n
	}

	for j := 0; j < width; j++ {
		ss := 0.0
		for i := range x {
			d := x[i][j] - s.Means[j]
			ss += d * d
		}
		std := math.Sqrt(ss / n)
		if std == 0 {
			std = 1
		}
		s.Stds[j] = std
	}
	return nil
}

// Transform standardizes one row with the fitted statistics.
func (s *StandardScaler) Transform(row []float64) ([]float64, error) {
	if len(s.Means) == 0 {
		return nil, fmt.Errorf("scaler: not fitted")
	}
	if len(row) != len(s.Means) {
		return nil, fmt.Errorf("scaler: expected %d features, got %d", len(s.Means), len(row))
	}
	out := make([]float64, len(row))
	for j, v := range row {
		out[j] = (v - s.Means[j]) / s.Stds[j]
	}
	return out, nil
}

// TransformAll standardizes a full matrix.
func (s *StandardScaler) TransformAll(x [][]float64) ([][]float64, error) {
	out := make([][]float64, len(x))
	for i := range x {
		row, err := s.Transform(x[i])
		if err != nil {
			return nil, err
		}
		out[i] = row
	}
	return out, nil
}
