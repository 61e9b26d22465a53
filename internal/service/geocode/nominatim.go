package geocode

import (
	"context"
	"fmt"
	"strconv"

	"GeoPrice/internal/domain/models"
	domrepo "GeoPrice/internal/domain/repository"
	"GeoPrice/pkg/config"
	xhttp "GeoPrice/pkg/http"
)

// Nominatim resolves coordinates to addresses via the OSM Nominatim reverse
// endpoint. The pricing core never depends on its result for correctness,
// only for display.
type Nominatim struct {
	baseURL   string
	userAgent string
	client    *xhttp.Client
}

func NewNominatim(cfg *config.Config) *Nominatim {
	return &Nominatim{
		baseURL:   cfg.Geocode.BaseURL,
		userAgent: cfg.Geocode.UserAgent,
		client:    xhttp.NewClient(xhttp.WithTimeout(cfg.Geocode.Timeout)),
	}
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
}

func (n *Nominatim) Reverse(ctx context.Context, lat, lon float64, lang string) (models.AddressLookup, error) {
	var rr reverseResponse
	err := n.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    n.baseURL + "/reverse",
		Headers: map[string]string{
			"User-Agent": n.userAgent,
		},
		QueryParams: map[string][]string{
			"lat":             {strconv.FormatFloat(lat, 'f', -1, 64)},
			"lon":             {strconv.FormatFloat(lon, 'f', -1, 64)},
			"format":          {"jsonv2"},
			"accept-language": {lang},
		},
	}, &rr)
	if err != nil {
		return models.AddressLookup{}, fmt.Errorf("reverse geocode: %w", err)
	}

	if rr.DisplayName == "" {
		return models.AddressLookup{Resolved: false}, nil
	}
	return models.AddressLookup{Address: rr.DisplayName, Resolved: true}, nil
}

var _ domrepo.Geocoder = (*Nominatim)(nil)
