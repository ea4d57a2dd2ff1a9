package usecase

import (
	"context"
	"math"
	"testing"
	"time"

	"SpanScreener/internal/domain/models"
	applogger "SpanScreener/pkg/logger"
)

func fp(v float64) *float64 { return &v }

func sp(v string) *string { return &v }

// goldenSnapshot returns a fully populated snapshot with eight quarters.
// Derived figures: TTM revenue 400, TTM net income 100, gross margin 45%,
// profit margin 25%, FCF margin 25%, YoY growth 11.11%, EPS 2, P/E 15,
// P/S 3.75, cash/debt 0.5.
func goldenSnapshot() *models.TickerSnapshot {
	quarters := make([]models.QuarterlyFinancials, 0, 8)
	for i := 0; i < 4; i++ {
		quarters = append(quarters, models.QuarterlyFinancials{
			FiscalPeriod:        "Q",
			FiscalYear:          "2025",
			Revenues:            fp(100),
			GrossProfit:         fp(45),
			OperatingIncomeLoss: fp(30),
			NetIncomeLoss:       fp(25),
			OtherCurrentAssets:  fp(50),
			LongTermDebt:        fp(60),
			CurrentLiabilities:  fp(40),
			OperatingCashFlow:   fp(30),
			InvestingCashFlow:   fp(-5),
		})
	}
	for i := 0; i < 4; i++ {
		quarters = append(quarters, models.QuarterlyFinancials{
			FiscalPeriod:        "Q",
			FiscalYear:          "2024",
			Revenues:            fp(90),
			GrossProfit:         fp(40),
			OperatingIncomeLoss: fp(27),
			NetIncomeLoss:       fp(22),
			OtherCurrentAssets:  fp(45),
			LongTermDebt:        fp(60),
			CurrentLiabilities:  fp(38),
			OperatingCashFlow:   fp(27),
			InvestingCashFlow:   fp(-4),
		})
	}
	return &models.TickerSnapshot{
		Symbol:            "ACME",
		CompanyName:       sp("Acme Corp"),
		MarketCap:         fp(1500),
		SharesOutstanding: fp(50),
		ClosePrice:        fp(30),
		Quarters:          quarters,
		SMA50:             fp(32),
		RSI14:             fp(48.9),
	}
}

func wantFloat(t *testing.T, name string, got *float64, want float64) {
	t.Helper()
	if got == nil {
		t.Fatalf("%s: got nil, want %v", name, want)
	}
	if math.Abs(*got-want) > 1e-9 {
		t.Fatalf("%s: got %v, want %v", name, *got, want)
	}
}

func wantNil(t *testing.T, name string, got *float64) {
	t.Helper()
	if got != nil {
		t.Fatalf("%s: got %v, want nil", name, *got)
	}
}

func testLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

type nopMetrics struct{}

func (nopMetrics) ObserveUpstreamLatency(string, time.Duration) {}
func (nopMetrics) RecordUpstreamError(string)                   {}
func (nopMetrics) RecordSnapshotLookup(string)                  {}
func (nopMetrics) RecordRecommendation(models.Signal)           {}

type mockMarketData struct {
	detailsFn    func(ctx context.Context, symbol string) (*models.TickerDetails, error)
	prevCloseFn  func(ctx context.Context, symbol string) (*float64, error)
	financialsFn func(ctx context.Context, symbol string, limit int) ([]models.QuarterlyFinancials, error)
	smaFn        func(ctx context.Context, symbol string) (*float64, error)
	rsiFn        func(ctx context.Context, symbol string) (*float64, error)
}

func (m *mockMarketData) TickerDetails(ctx context.Context, symbol string) (*models.TickerDetails, error) {
	if m.detailsFn != nil {
		return m.detailsFn(ctx, symbol)
	}
	return nil, nil
}

func (m *mockMarketData) PreviousClose(ctx context.Context, symbol string) (*float64, error) {
	if m.prevCloseFn != nil {
		return m.prevCloseFn(ctx, symbol)
	}
	return nil, nil
}

func (m *mockMarketData) QuarterlyFinancials(ctx context.Context, symbol string, limit int) ([]models.QuarterlyFinancials, error) {
	if m.financialsFn != nil {
		return m.financialsFn(ctx, symbol, limit)
	}
	return nil, nil
}

func (m *mockMarketData) SMA50(ctx context.Context, symbol string) (*float64, error) {
	if m.smaFn != nil {
		return m.smaFn(ctx, symbol)
	}
	return nil, nil
}

func (m *mockMarketData) RSI14(ctx context.Context, symbol string) (*float64, error) {
	if m.rsiFn != nil {
		return m.rsiFn(ctx, symbol)
	}
	return nil, nil
}

type mockSnapshotSource struct {
	snapshotFn func(ctx context.Context, symbol string) (*models.TickerSnapshot, error)
}

func (m *mockSnapshotSource) Snapshot(ctx context.Context, symbol string) (*models.TickerSnapshot, error) {
	return m.snapshotFn(ctx, symbol)
}

type capturePublisher struct {
	published chan string
	err       error
}

func newCapturePublisher() *capturePublisher {
	return &capturePublisher{published: make(chan string, 1)}
}

func (p *capturePublisher) PublishRecommendation(_ context.Context, symbol string, _ *models.Recommendation) error {
	p.published <- symbol
	return p.err
}

func (p *capturePublisher) Close() error { return nil }
