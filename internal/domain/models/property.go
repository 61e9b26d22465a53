package models

import "time"

// Observation is one base dataset row: coordinates plus an externally
// supplied location value in $100,000 units, assumed to capture location
// premium only. HouseAge passes through unchanged to the feature vector.
type Observation struct {
	Latitude      float64
	Longitude     float64
	HouseAge      float64
	LocationValue float64
}

// StructuralAttributes are the synthetic per-property attributes added on
// top of a base observation during training-set construction.
type StructuralAttributes struct {
	TotalArea  int // clipped to [500, 5000]
	GarageCars int // one of {0, 1, 2, 3}
	Bedrooms   int // in [1, 5]
	HouseAge   float64
}

// FeatureVector is the fixed-order input consumed by the pricing model at
// both training and inference time. Values() is the only path into the
// model, so the column order is fixed at compile time and cannot drift
// between training and serving.
type FeatureVector struct {
	Latitude   float64
	Longitude  float64
	TotalArea  float64
	GarageCars float64
	Bedrooms   float64
	HouseAge   float64
}

// NumFeatures is the width of the model input.
const NumFeatures = 6

// Values returns the features in training column order.
func (v FeatureVector) Values() []float64 {
	return []float64{v.Latitude, v.Longitude, v.TotalArea, v.GarageCars, v.Bedrooms, v.HouseAge}
}

// FeatureNames lists the model columns in training order. Persisted with the
// artifact so a schema mismatch is detected at load time.
func FeatureNames() []string {
	return []string{"latitude", "longitude", "total_area", "garage_cars", "bedrooms", "house_age"}
}

// TrainingRow is one augmented sample: a feature vector and its composite
// price target in $100,000 units.
type TrainingRow struct {
	Features FeatureVector
	Target   float64
}

// EstimateRecord is the audit-trail form of one served estimate, published
// for later retraining.
type EstimateRecord struct {
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	TotalArea   float64   `json:"total_area"`
	GarageCars  float64   `json:"garage_cars"`
	Bedrooms    float64   `json:"bedrooms"`
	HouseAge    float64   `json:"house_age"`
	RawEstimate float64   `json:"raw_estimate"`
	Currency    string    `json:"currency"`
	At          time.Time `json:"at"`
}
