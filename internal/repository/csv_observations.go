package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"GeoPrice/internal/domain/models"
)

// CSVObservationSource reads the base geospatial dataset from a local CSV
// file. The header row must contain latitude, longitude, house_age and
// location_value columns, in any order. Row order is preserved so a fixed
// file plus a fixed synthesis seed yields a reproducible training set.
type CSVObservationSource struct {
	path string
}

func NewCSVObservationSource(path string) *CSVObservationSource {
	return &CSVObservationSource{path: path}
}

func (s *CSVObservationSource) Observations(_ context.Context) ([]models.Observation, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", s.path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("dataset %s has no data rows", s.path)
	}

	cols, err := headerIndex(records[0])
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", s.path, err)
	}

	out := make([]models.Observation, 0, len(records)-1)
	for n, rec := range records[1:] {
		obs, err := parseObservation(rec, cols)
		if err != nil {
			return nil, fmt.Errorf("dataset %s row %d: %w", s.path, n+2, err)
		}
		out = append(out, obs)
	}
	return out, nil
}

type columnIndex struct {
	latitude, longitude, houseAge, locationValue int
}

func headerIndex(header []string) (columnIndex, error) {
	idx := columnIndex{latitude: -1, longitude: -1, houseAge: -1, locationValue: -1}
	for i, name := range header {
		switch name {
		case "latitude":
			idx.latitude = i
		case "longitude":
			idx.longitude = i
		case "house_age":
			idx.houseAge = i
		case "location_value":
			idx.locationValue = i
		}
	}
	if idx.latitude < 0 || idx.longitude < 0 || idx.houseAge < 0 || idx.locationValue < 0 {
		return idx, fmt.Errorf("header must contain latitude, longitude, house_age, location_value")
	}
	return idx, nil
}

func parseObservation(rec []string, cols columnIndex) (models.Observation, error) {
	var obs models.Observation
	var err error

	if obs.Latitude, err = strconv.ParseFloat(rec[cols.latitude], 64); err != nil {
		return obs, fmt.Errorf("latitude: %w", err)
	}
	if obs.Longitude, err = strconv.ParseFloat(rec[cols.longitude], 64); err != nil {
		return obs, fmt.Errorf("longitude: %w", err)
	}
	if obs.HouseAge, err = strconv.ParseFloat(rec[cols.houseAge], 64); err != nil {
		return obs, fmt.Errorf("house_age: %w", err)
	}
	if obs.LocationValue, err = strconv.ParseFloat(rec[cols.locationValue], 64); err != nil {
		return obs, fmt.Errorf("location_value: %w", err)
	}
	return obs, nil
}
