package repository

import (
	"context"
	"time"

	"SpanScreener/internal/domain/models"
)

// MarketData is the upstream provider contract: the five read-only calls the
// pipeline fans out per ticker. Implementations return nil pointers for
// fields the provider omitted; call-level failures (transport, non-2xx,
// timeout) are returned as errors.
type MarketData interface {
	TickerDetails(ctx context.Context, symbol string) (*models.TickerDetails, error)
	PreviousClose(ctx context.Context, symbol string) (*float64, error)
	QuarterlyFinancials(ctx context.Context, symbol string, limit int) ([]models.QuarterlyFinancials, error)
	SMA50(ctx context.Context, symbol string) (*float64, error)
	RSI14(ctx context.Context, symbol string) (*float64, error)
}

// SnapshotSource yields a complete snapshot for a symbol, whatever the
// caching strategy behind it.
type SnapshotSource interface {
	Snapshot(ctx context.Context, symbol string) (*models.TickerSnapshot, error)
}

// Publisher emits served recommendations for downstream consumers.
type Publisher interface {
	PublishRecommendation(ctx context.Context, symbol string, rec *models.Recommendation) error
	Close() error
}

// Snapshot lookup results recorded by Metrics.
const (
	LookupHit       = "hit"
	LookupMiss      = "miss"
	LookupCoalesced = "coalesced"
)

// Metrics records operational measurements.
type Metrics interface {
	ObserveUpstreamLatency(endpoint string, d time.Duration)
	RecordUpstreamError(endpoint string)
	RecordSnapshotLookup(result string)
	RecordRecommendation(signal models.Signal)
}
