package api

import (
	"time"

	"github.com/labstack/echo/v4"

	"GeoPrice/internal/domain/models"
	domrepo "GeoPrice/internal/domain/repository"
	"GeoPrice/internal/service/currency"
	"GeoPrice/internal/usecase"
	xhttp "GeoPrice/pkg/http"
	xlogger "GeoPrice/pkg/logger"
)

// addressUnavailable is shown when the reverse geocoder cannot resolve the
// coordinates. Lookup failures never fail the estimate.
const addressUnavailable = "Location lookup failed"

// EstimateRequest carries the structured feature input plus display options.
// Feature ranges are deliberately not validated: out-of-range inputs are
// extrapolated by the model, not rejected.
type EstimateRequest struct {
	Latitude   *float64 `json:"latitude" validate:"required"`
	Longitude  *float64 `json:"longitude" validate:"required"`
	TotalArea  *float64 `json:"total_area" validate:"required"`
	GarageCars float64  `json:"garage_cars"`
	Bedrooms   *float64 `json:"bedrooms" validate:"required"`
	HouseAge   float64  `json:"house_age"`
	Currency   string   `json:"currency" default:"USD"`
	Language   string   `json:"language" default:"en"`
}

// EstimateResponse is the converted estimate plus display context.
type EstimateResponse struct {
	RawEstimate     float64 `json:"raw_estimate"` // $100,000 units
	Currency        string  `json:"currency"`
	Symbol          string  `json:"symbol"`
	Amount          string  `json:"amount"`
	Display         string  `json:"display"`
	Address         string  `json:"address"`
	AddressResolved bool    `json:"address_resolved"`
}

// EstimateEchoHandler exposes the pricing core over HTTP.
type EstimateEchoHandler struct {
	logger    *xlogger.Logger
	predictor *usecase.Predictor
	converter *currency.Converter
	geocoder  domrepo.Geocoder
	audit     domrepo.AuditPublisher
	metrics   domrepo.Metrics
}

func NewEstimateEchoHandler(
	logger *xlogger.Logger,
	predictor *usecase.Predictor,
	converter *currency.Converter,
	geocoder domrepo.Geocoder,
	audit domrepo.AuditPublisher,
	metrics domrepo.Metrics,
) *EstimateEchoHandler {
	return &EstimateEchoHandler{
		logger:    logger,
		predictor: predictor,
		converter: converter,
		geocoder:  geocoder,
		audit:     audit,
		metrics:   metrics,
	}
}

func (h *EstimateEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/estimate", h.Estimate)
	e.GET("/healthz", h.Health)
}

func (h *EstimateEchoHandler) Estimate(c echo.Context) error {
	start := time.Now()
	req := &EstimateRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	fv := models.FeatureVector{
		Latitude:   *req.Latitude,
		Longitude:  *req.Longitude,
		TotalArea:  *req.TotalArea,
		GarageCars: req.GarageCars,
		Bedrooms:   *req.Bedrooms,
		HouseAge:   req.HouseAge,
	}

	ctx := c.Request().Context()
	raw, err := h.predictor.Predict(ctx, fv)
	if err != nil {
		h.logger.Error("prediction failed", xlogger.Error(err))
		h.metrics.RecordError("predict")
		return xhttp.AppErrorResponse(c, xhttp.InternalError("prediction failed").WithError(err))
	}

	amount, err := h.converter.Convert(raw, req.Currency)
	if err != nil {
		h.metrics.RecordError("currency")
		return xhttp.AppErrorResponse(c, xhttp.BadRequestErrorf("currency: %v", err))
	}

	address := addressUnavailable
	resolved := false
	if h.geocoder != nil {
		if lu, gerr := h.geocoder.Reverse(ctx, fv.Latitude, fv.Longitude, req.Language); gerr == nil && lu.Resolved {
			address = lu.Address
			resolved = true
		}
	}

	if h.audit != nil {
		rec := models.EstimateRecord{
			Latitude:    fv.Latitude,
			Longitude:   fv.Longitude,
			TotalArea:   fv.TotalArea,
			GarageCars:  fv.GarageCars,
			Bedrooms:    fv.Bedrooms,
			HouseAge:    fv.HouseAge,
			RawEstimate: raw,
			Currency:    amount.Currency,
			At:          time.Now().UTC(),
		}
		if aerr := h.audit.Publish(ctx, rec); aerr != nil {
			h.logger.Warn("audit publish failed", xlogger.Error(aerr))
			h.metrics.RecordError("audit")
		}
	}

	h.metrics.RecordEstimate(amount.Currency, raw)
	h.metrics.RecordLatency("estimate", time.Since(start).Seconds())

	return xhttp.SuccessResponse(c, &EstimateResponse{
		RawEstimate:     raw,
		Currency:        amount.Currency,
		Symbol:          amount.Symbol,
		Amount:          amount.Value.String(),
		Display:         amount.Display(),
		Address:         address,
		AddressResolved: resolved,
	})
}

func (h *EstimateEchoHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}
