package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"SpanScreener/internal/domain/models"
	"SpanScreener/internal/usecase"
	applogger "SpanScreener/pkg/logger"
)

type stubSource struct {
	snapshotFn func(ctx context.Context, symbol string) (*models.TickerSnapshot, error)
}

func (s *stubSource) Snapshot(ctx context.Context, symbol string) (*models.TickerSnapshot, error) {
	return s.snapshotFn(ctx, symbol)
}

type noMetrics struct{}

func (noMetrics) ObserveUpstreamLatency(string, time.Duration) {}
func (noMetrics) RecordUpstreamError(string)                   {}
func (noMetrics) RecordSnapshotLookup(string)                  {}
func (noMetrics) RecordRecommendation(models.Signal)           {}

func fp(v float64) *float64 { return &v }

func sp(v string) *string { return &v }

func newTestServer(t *testing.T, source *stubSource) *echo.Echo {
	t.Helper()
	logger, err := applogger.New(&applogger.Config{Level: "error", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	pipeline := usecase.NewRecommendationPipeline(source, nil, noMetrics{}, logger)
	e := echo.New()
	NewRecommendationHandler(logger, pipeline).RegisterRoutes(e)
	return e
}

func testSnapshot(symbol string) *models.TickerSnapshot {
	return &models.TickerSnapshot{
		Symbol:      symbol,
		CompanyName: sp("Acme Corp"),
		ClosePrice:  fp(110),
		SMA50:       fp(100),
		RSI14:       fp(55),
	}
}

func TestRecommendEndpoint(t *testing.T) {
	source := &stubSource{
		snapshotFn: func(_ context.Context, symbol string) (*models.TickerSnapshot, error) {
			if symbol != "ACME" {
				return nil, fmt.Errorf("unexpected symbol %q", symbol)
			}
			return testSnapshot(symbol), nil
		},
	}
	e := newTestServer(t, source)

	// Lowercase in the path; the handler normalizes before the pipeline runs.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tickers/acme/recommendation", nil)
	rr := httptest.NewRecorder()
	e.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}

	var body struct {
		Status  int                   `json:"status"`
		Message string                `json:"message"`
		Data    models.Recommendation `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != http.StatusOK || body.Message != "OK" {
		t.Errorf("envelope = %d %q", body.Status, body.Message)
	}
	if body.Data.Summary.Symbol != "ACME" {
		t.Errorf("symbol = %q", body.Data.Summary.Symbol)
	}
	if len(body.Data.Checks) != 5 {
		t.Errorf("checks = %d", len(body.Data.Checks))
	}
	// Only the technicals check has data: price above SMA50, neutral RSI.
	if body.Data.Signal != models.SignalBuy {
		t.Errorf("signal = %s", body.Data.Signal)
	}
}

func TestRecommendEndpointUpstreamFailure(t *testing.T) {
	source := &stubSource{
		snapshotFn: func(_ context.Context, _ string) (*models.TickerSnapshot, error) {
			return nil, fmt.Errorf("%w: ACME: boom", usecase.ErrUpstreamUnavailable)
		},
	}
	e := newTestServer(t, source)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tickers/ACME/recommendation", nil)
	rr := httptest.NewRecorder()
	e.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "ERR_UPSTREAM") {
		t.Errorf("body = %s", rr.Body.String())
	}
}

func TestRecommendEndpointUnknownSymbol(t *testing.T) {
	source := &stubSource{
		snapshotFn: func(_ context.Context, _ string) (*models.TickerSnapshot, error) {
			return nil, fmt.Errorf("%w: NOPE", usecase.ErrSymbolNotFound)
		},
	}
	e := newTestServer(t, source)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tickers/NOPE/recommendation", nil)
	rr := httptest.NewRecorder()
	e.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "ERR_NOT_FOUND") {
		t.Errorf("body = %s", rr.Body.String())
	}
}

func TestRecommendEndpointSymbolTooLong(t *testing.T) {
	e := newTestServer(t, &stubSource{
		snapshotFn: func(_ context.Context, _ string) (*models.TickerSnapshot, error) {
			t.Fatal("pipeline should not run on invalid input")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tickers/WAYTOOLONGSYMBOL/recommendation", nil)
	rr := httptest.NewRecorder()
	e.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "ERR_MAX") {
		t.Errorf("body = %s", rr.Body.String())
	}
}

func TestViewEndpoint(t *testing.T) {
	source := &stubSource{
		snapshotFn: func(_ context.Context, symbol string) (*models.TickerSnapshot, error) {
			return testSnapshot(symbol), nil
		},
	}
	e := newTestServer(t, source)

	req := httptest.NewRequest(http.MethodGet, "/view/ACME", nil)
	rr := httptest.NewRecorder()
	e.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	html := rr.Body.String()
	for _, want := range []string{"ACME", "Acme Corp", "BUY", "Technicals"} {
		if !strings.Contains(html, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestViewEndpointUpstreamFailure(t *testing.T) {
	source := &stubSource{
		snapshotFn: func(_ context.Context, _ string) (*models.TickerSnapshot, error) {
			return nil, fmt.Errorf("%w: boom", usecase.ErrUpstreamUnavailable)
		},
	}
	e := newTestServer(t, source)

	req := httptest.NewRequest(http.MethodGet, "/view/ACME", nil)
	rr := httptest.NewRecorder()
	e.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	e := newTestServer(t, &stubSource{
		snapshotFn: func(_ context.Context, _ string) (*models.TickerSnapshot, error) {
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	e.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s", rr.Body.String())
	}
}
