package repository

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "observations.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return path
}

func TestCSVObservationsReadsRowsInOrder(t *testing.T) {
	path := writeDataset(t, "latitude,longitude,house_age,location_value\n"+
		"34.05,-118.25,10,2.0\n"+
		"37.77,-122.42,52,4.1\n")

	obs, err := NewCSVObservationSource(path).Observations(context.Background())
	if err != nil {
		t.Fatalf("observations: %v", err)
	}
	if len(obs) != 2 {
		t.Fatalf("rows = %d, want 2", len(obs))
	}
	if obs[0].Latitude != 34.05 || obs[0].LocationValue != 2.0 {
		t.Fatalf("first row parsed wrong: %+v", obs[0])
	}
	if obs[1].HouseAge != 52 {
		t.Fatalf("second row parsed wrong: %+v", obs[1])
	}
}

func TestCSVObservationsColumnOrderIndependent(t *testing.T) {
	path := writeDataset(t, "location_value,house_age,longitude,latitude\n"+
		"4.1,52,-122.42,37.77\n")

	obs, err := NewCSVObservationSource(path).Observations(context.Background())
	if err != nil {
		t.Fatalf("observations: %v", err)
	}
	got := obs[0]
	if got.Latitude != 37.77 || got.Longitude != -122.42 || got.HouseAge != 52 || got.LocationValue != 4.1 {
		t.Fatalf("columns mapped wrong: %+v", got)
	}
}

func TestCSVObservationsMissingColumn(t *testing.T) {
	path := writeDataset(t, "latitude,longitude,house_age\n34,-118,10\n")

	if _, err := NewCSVObservationSource(path).Observations(context.Background()); err == nil {
		t.Fatalf("expected error for missing location_value column")
	}
}

func TestCSVObservationsBadValueNamesRow(t *testing.T) {
	path := writeDataset(t, "latitude,longitude,house_age,location_value\n"+
		"34.05,-118.25,10,2.0\n"+
		"37.77,not-a-number,52,4.1\n")

	_, err := NewCSVObservationSource(path).Observations(context.Background())
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if want := "row 3"; !strings.Contains(err.Error(), want) {
		t.Fatalf("error %q should name %q", err.Error(), want)
	}
}

func TestCSVObservationsEmptyFile(t *testing.T) {
	path := writeDataset(t, "latitude,longitude,house_age,location_value\n")

	if _, err := NewCSVObservationSource(path).Observations(context.Background()); err == nil {
		t.Fatalf("expected error for header-only file")
	}
}
