package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"GeoPrice/internal/domain/models"
	domrepo "GeoPrice/internal/domain/repository"
	"GeoPrice/internal/service/currency"
	"GeoPrice/internal/services/model"
	"GeoPrice/internal/usecase"
	"GeoPrice/pkg/config"
	xlogger "GeoPrice/pkg/logger"
)

type memStore struct {
	artifact *model.Artifact
	err      error
}

func (s *memStore) Save(context.Context, *model.Artifact) error { return nil }
func (s *memStore) Load(context.Context) (*model.Artifact, error) {
	return s.artifact, s.err
}

type stubGeocoder struct {
	addr string
	err  error
}

func (g *stubGeocoder) Reverse(context.Context, float64, float64, string) (models.AddressLookup, error) {
	if g.err != nil {
		return models.AddressLookup{}, g.err
	}
	return models.AddressLookup{Address: g.addr, Resolved: true}, nil
}

type recordingAudit struct {
	records []models.EstimateRecord
}

func (a *recordingAudit) Publish(_ context.Context, rec models.EstimateRecord) error {
	a.records = append(a.records, rec)
	return nil
}
func (a *recordingAudit) Close() error { return nil }

type noopMetrics struct{}

func (noopMetrics) RecordEstimate(string, float64) {}
func (noopMetrics) RecordError(string)             {}
func (noopMetrics) RecordLatency(string, float64)  {}
func (noopMetrics) RecordGeocodeLookup(string)     {}

// constantModel builds an artifact whose pipeline predicts exactly target
// for any input: a single training row fits with zero residual, so the
// ensemble collapses to its base score.
func constantModel(t *testing.T, target float64) *model.Artifact {
	t.Helper()
	pipe := model.NewPipeline(model.DefaultGBTParams())
	row := models.TrainingRow{
		Features: models.FeatureVector{Latitude: 1, Longitude: 2, TotalArea: 3, GarageCars: 4, Bedrooms: 5, HouseAge: 6},
		Target:   target,
	}
	if err := pipe.Fit([]models.TrainingRow{row}); err != nil {
		t.Fatalf("fit: %v", err)
	}
	return model.NewArtifact(pipe, 1)
}

func testConverter() *currency.Converter {
	cfg := &config.Config{
		Currencies: map[string]config.Currency{
			"USD": {Rate: 1.0, Symbol: "$"},
			"INR": {Rate: 83.0, Symbol: "₹"},
		},
	}
	return currency.NewConverter(cfg)
}

func newTestHandler(t *testing.T, geocoder domrepo.Geocoder, audit *recordingAudit) *EstimateEchoHandler {
	t.Helper()
	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "console", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	predictor := usecase.NewPredictor(&memStore{artifact: constantModel(t, 3.0)})
	return NewEstimateEchoHandler(l, predictor, testConverter(), geocoder, audit, noopMetrics{})
}

func doEstimate(t *testing.T, h *EstimateEchoHandler, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	e := echo.New()
	h.RegisterRoutes(e)

	req := httptest.NewRequest(http.MethodPost, "/api/estimate", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var envelope map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return rec, envelope
}

func TestEstimateConvertsAndDisplays(t *testing.T) {
	audit := &recordingAudit{}
	h := newTestHandler(t, &stubGeocoder{addr: "Connaught Place, New Delhi"}, audit)

	rec, envelope := doEstimate(t, h, `{
		"latitude": 28.63, "longitude": 77.22,
		"total_area": 1800, "garage_cars": 1, "bedrooms": 3, "house_age": 10,
		"currency": "INR"
	}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("http status = %d", rec.Code)
	}
	if envelope["status"].(float64) != http.StatusOK {
		t.Fatalf("inner status = %v", envelope["status"])
	}

	data := envelope["data"].(map[string]interface{})
	// 3.0 x 100000 x 83.0, exact in decimal arithmetic
	if got := data["amount"].(string); got != "24900000" {
		t.Fatalf("amount = %q, want 24900000", got)
	}
	if got := data["display"].(string); got != "₹24,900,000" {
		t.Fatalf("display = %q", got)
	}
	if data["currency"].(string) != "INR" {
		t.Fatalf("currency = %v", data["currency"])
	}
	if data["address"].(string) != "Connaught Place, New Delhi" || data["address_resolved"].(bool) != true {
		t.Fatalf("address not resolved: %v / %v", data["address"], data["address_resolved"])
	}

	if len(audit.records) != 1 {
		t.Fatalf("audit records = %d, want 1", len(audit.records))
	}
	if audit.records[0].RawEstimate != 3.0 || audit.records[0].Currency != "INR" {
		t.Fatalf("audit record wrong: %+v", audit.records[0])
	}
}

func TestEstimateDefaultsToUSD(t *testing.T) {
	h := newTestHandler(t, nil, &recordingAudit{})

	_, envelope := doEstimate(t, h, `{
		"latitude": 34.05, "longitude": -118.25,
		"total_area": 1800, "bedrooms": 3
	}`)

	data := envelope["data"].(map[string]interface{})
	if data["currency"].(string) != "USD" {
		t.Fatalf("currency = %v, want USD", data["currency"])
	}
	if got := data["display"].(string); got != "$300,000" {
		t.Fatalf("display = %q", got)
	}
}

func TestEstimateMissingFieldRejected(t *testing.T) {
	h := newTestHandler(t, nil, &recordingAudit{})

	_, envelope := doEstimate(t, h, `{
		"longitude": -118.25, "total_area": 1800, "bedrooms": 3
	}`)

	if envelope["status"].(float64) != http.StatusBadRequest {
		t.Fatalf("inner status = %v, want 400", envelope["status"])
	}
}

func TestEstimateUnknownCurrencyRejected(t *testing.T) {
	h := newTestHandler(t, nil, &recordingAudit{})

	_, envelope := doEstimate(t, h, `{
		"latitude": 1, "longitude": 2, "total_area": 900, "bedrooms": 2,
		"currency": "XYZ"
	}`)

	if envelope["status"].(float64) != http.StatusBadRequest {
		t.Fatalf("inner status = %v, want 400", envelope["status"])
	}
}

func TestEstimateGeocodeFailureDoesNotFailRequest(t *testing.T) {
	h := newTestHandler(t, &stubGeocoder{err: errors.New("nominatim down")}, &recordingAudit{})

	_, envelope := doEstimate(t, h, `{
		"latitude": 1, "longitude": 2, "total_area": 900, "bedrooms": 2
	}`)

	if envelope["status"].(float64) != http.StatusOK {
		t.Fatalf("inner status = %v, want 200", envelope["status"])
	}
	data := envelope["data"].(map[string]interface{})
	if data["address_resolved"].(bool) {
		t.Fatalf("address should be unresolved")
	}
	if data["address"].(string) != addressUnavailable {
		t.Fatalf("address = %q, want placeholder", data["address"])
	}
}

func TestEstimateBrokenModelIsServerError(t *testing.T) {
	l, _ := xlogger.New(&xlogger.Config{Level: "error", Format: "console", Output: "stderr"})
	predictor := usecase.NewPredictor(&memStore{err: errors.New("artifact missing")})
	h := NewEstimateEchoHandler(l, predictor, testConverter(), nil, &recordingAudit{}, noopMetrics{})

	_, envelope := doEstimate(t, h, `{
		"latitude": 1, "longitude": 2, "total_area": 900, "bedrooms": 2
	}`)

	if envelope["status"].(float64) != http.StatusInternalServerError {
		t.Fatalf("inner status = %v, want 500", envelope["status"])
	}
}

func TestHealthEndpoint(t *testing.T) {
	h := newTestHandler(t, nil, &recordingAudit{})
	e := echo.New()
	h.RegisterRoutes(e)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("health status = %d", rec.Code)
	}
}
