package geocode

import (
	"context"
	"errors"
	"testing"

	"GeoPrice/internal/domain/models"
	"GeoPrice/pkg/cache"
)

type countingGeocoder struct {
	calls int
	addr  string
	err   error
}

func (c *countingGeocoder) Reverse(_ context.Context, _, _ float64, _ string) (models.AddressLookup, error) {
	c.calls++
	if c.err != nil {
		return models.AddressLookup{}, c.err
	}
	return models.AddressLookup{Address: c.addr, Resolved: true}, nil
}

func TestCachedGeocoderIdempotent(t *testing.T) {
	mc := cache.NewMemoryCache()
	defer mc.Close()

	inner := &countingGeocoder{addr: "1600 Amphitheatre Pkwy, Mountain View"}
	g := NewCachedGeocoder(inner, mc, nil)
	ctx := context.Background()

	first, err := g.Reverse(ctx, 37.42, -122.08, "en")
	if err != nil {
		t.Fatalf("first lookup: %v", err)
	}
	second, err := g.Reverse(ctx, 37.42, -122.08, "en")
	if err != nil {
		t.Fatalf("second lookup: %v", err)
	}

	if inner.calls != 1 {
		t.Fatalf("inner geocoder called %d times, want 1", inner.calls)
	}
	if first != second {
		t.Fatalf("cached result differs: %+v vs %+v", first, second)
	}
	if !first.Resolved || first.Address != inner.addr {
		t.Fatalf("unexpected lookup result: %+v", first)
	}
}

func TestCachedGeocoderKeyIncludesLanguage(t *testing.T) {
	mc := cache.NewMemoryCache()
	defer mc.Close()

	inner := &countingGeocoder{addr: "somewhere"}
	g := NewCachedGeocoder(inner, mc, nil)
	ctx := context.Background()

	if _, err := g.Reverse(ctx, 1, 2, "en"); err != nil {
		t.Fatalf("en lookup: %v", err)
	}
	if _, err := g.Reverse(ctx, 1, 2, "fr"); err != nil {
		t.Fatalf("fr lookup: %v", err)
	}

	if inner.calls != 2 {
		t.Fatalf("inner geocoder called %d times, want 2 for distinct languages", inner.calls)
	}
}

func TestCachedGeocoderAbsorbsFailures(t *testing.T) {
	mc := cache.NewMemoryCache()
	defer mc.Close()

	inner := &countingGeocoder{err: errors.New("timeout")}
	g := NewCachedGeocoder(inner, mc, nil)
	ctx := context.Background()

	lu, err := g.Reverse(ctx, 10, 20, "en")
	if err != nil {
		t.Fatalf("lookup error should be absorbed, got %v", err)
	}
	if lu.Resolved {
		t.Fatalf("expected unresolved lookup")
	}

	// The failure is memoized as well; no second external call.
	if _, err := g.Reverse(ctx, 10, 20, "en"); err != nil {
		t.Fatalf("second lookup: %v", err)
	}
	if inner.calls != 1 {
		t.Fatalf("inner geocoder called %d times, want 1", inner.calls)
	}
}
