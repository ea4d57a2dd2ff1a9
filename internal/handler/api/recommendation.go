package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"SpanScreener/internal/usecase"
	xhttp "SpanScreener/pkg/http"
	xlogger "SpanScreener/pkg/logger"
)

// RecommendationHandler serves the recommendation API and the HTML view.
type RecommendationHandler struct {
	logger   *xlogger.Logger
	pipeline *usecase.RecommendationPipeline
}

func NewRecommendationHandler(logger *xlogger.Logger, pipeline *usecase.RecommendationPipeline) *RecommendationHandler {
	return &RecommendationHandler{logger: logger, pipeline: pipeline}
}

func (h *RecommendationHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/v1/tickers/:symbol/recommendation", h.Recommend)
	e.GET("/view/:symbol", h.View)
	e.GET("/healthz", h.Health)
}

// tickerRequest binds and validates the path symbol. Length only: tickers
// like BRK.B carry a dot, so no alphanum constraint.
type tickerRequest struct {
	Symbol string `param:"symbol" validate:"required,min=1,max=10"`
}

func (r *tickerRequest) normalized() string {
	return strings.ToUpper(strings.TrimSpace(r.Symbol))
}

// Recommend returns the full JSON analysis for a ticker.
func (h *RecommendationHandler) Recommend(c echo.Context) error {
	req := &tickerRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	symbol := req.normalized()

	rec, err := h.pipeline.Recommend(c.Request().Context(), symbol)
	if err != nil {
		if errors.Is(err, usecase.ErrSymbolNotFound) {
			return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("unknown ticker %s", symbol))
		}
		if errors.Is(err, usecase.ErrUpstreamUnavailable) {
			h.logger.Warn("upstream unavailable", xlogger.String("symbol", symbol), xlogger.Error(err))
			return xhttp.AppErrorResponse(c, xhttp.UpstreamError("market data provider unavailable").WithError(err))
		}
		h.logger.Error("recommendation failed", xlogger.String("symbol", symbol), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	return xhttp.SuccessResponse(c, rec)
}

// View renders the same analysis as an HTML page.
func (h *RecommendationHandler) View(c echo.Context) error {
	req := &tickerRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	symbol := req.normalized()

	rec, err := h.pipeline.Recommend(c.Request().Context(), symbol)
	if err != nil {
		if errors.Is(err, usecase.ErrSymbolNotFound) {
			return c.HTML(http.StatusNotFound, "<h1>Unknown ticker</h1>")
		}
		if errors.Is(err, usecase.ErrUpstreamUnavailable) {
			return c.HTML(http.StatusBadGateway, "<h1>Market data provider unavailable</h1>")
		}
		return c.HTML(http.StatusInternalServerError, "<h1>Something went wrong</h1>")
	}

	return renderView(c, symbol, rec)
}

// Health reports liveness.
func (h *RecommendationHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
