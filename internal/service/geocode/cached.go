package geocode

import (
	"context"
	"encoding/json"
	"strconv"

	"GeoPrice/internal/domain/models"
	domrepo "GeoPrice/internal/domain/repository"
	"GeoPrice/pkg/cache"
)

// CachedGeocoder memoizes reverse lookups keyed by (lat, lon, lang) for the
// life of the cache. Entries are never invalidated; with the memory backend
// the cache grows without bound, a known limitation of this design. Failed
// lookups are cached too, matching the memoization of the display layer
// this collaborator serves.
type CachedGeocoder struct {
	inner   domrepo.Geocoder
	cache   cache.Service
	metrics domrepo.Metrics
}

func NewCachedGeocoder(inner domrepo.Geocoder, c cache.Service, m domrepo.Metrics) *CachedGeocoder {
	return &CachedGeocoder{inner: inner, cache: c, metrics: m}
}

// Reverse returns the memoized lookup when present and consults the inner
// geocoder otherwise. Transport errors are absorbed into an unresolved
// result; they never propagate to the caller.
func (g *CachedGeocoder) Reverse(ctx context.Context, lat, lon float64, lang string) (models.AddressLookup, error) {
	key := Key(lat, lon, lang)

	if raw, err := g.cache.Get(ctx, key); err == nil {
		var lu models.AddressLookup
		if json.Unmarshal([]byte(raw), &lu) == nil {
			g.record("hit")
			return lu, nil
		}
	}
	g.record("miss")

	lu, err := g.inner.Reverse(ctx, lat, lon, lang)
	if err != nil {
		g.record("failed")
		lu = models.AddressLookup{Resolved: false}
	}

	if b, err := json.Marshal(lu); err == nil {
		_ = g.cache.Set(ctx, key, string(b), 0) // process-lifetime entry
	}
	return lu, nil
}

// Key builds the cache key for a lookup.
func Key(lat, lon float64, lang string) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + ":" +
		strconv.FormatFloat(lon, 'f', -1, 64) + ":" + lang
}

func (g *CachedGeocoder) record(outcome string) {
	if g.metrics != nil {
		g.metrics.RecordGeocodeLookup(outcome)
	}
}

var _ domrepo.Geocoder = (*CachedGeocoder)(nil)
