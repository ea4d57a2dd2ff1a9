package usecase

import (
	"context"
	"time"

	"SpanScreener/internal/domain/models"
	"SpanScreener/internal/domain/repository"
	applogger "SpanScreener/pkg/logger"
)

// RecommendationPipeline runs the full analysis for one ticker: snapshot
// acquisition, metric derivation, screening and aggregation. Every stage
// after acquisition is pure; only the snapshot source can fail.
type RecommendationPipeline struct {
	snapshots repository.SnapshotSource
	publisher repository.Publisher
	metrics   repository.Metrics
	logger    *applogger.Logger
}

func NewRecommendationPipeline(
	snapshots repository.SnapshotSource,
	publisher repository.Publisher,
	metrics repository.Metrics,
	logger *applogger.Logger,
) *RecommendationPipeline {
	return &RecommendationPipeline{
		snapshots: snapshots,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// Recommend produces a Recommendation for the symbol. Degraded results
// (fewer than five checks able to run) are still returned; only snapshot
// acquisition failures propagate.
func (p *RecommendationPipeline) Recommend(ctx context.Context, symbol string) (*models.Recommendation, error) {
	snap, err := p.snapshots.Snapshot(ctx, symbol)
	if err != nil {
		return nil, err
	}

	derived := DeriveMetrics(snap)
	checks := RunChecks(derived, snap)
	signal, confidence, tally := Aggregate(checks)

	rec := &models.Recommendation{
		Signal:        signal,
		Confidence:    confidence,
		Checks:        checks,
		Metrics:       derived,
		RevenueByYear: AnnualRevenues(snap.Quarters),
		Summary: models.SnapshotSummary{
			Symbol:      snap.Symbol,
			CompanyName: snap.CompanyName,
			Price:       snap.ClosePrice,
			MarketCap:   snap.MarketCap,
			SMA50:       snap.SMA50,
			RSI14:       snap.RSI14,
		},
		GeneratedAt: time.Now().UTC(),
	}

	p.metrics.RecordRecommendation(signal)
	p.logger.Info("recommendation served",
		applogger.String("symbol", symbol),
		applogger.String("signal", string(signal)),
		applogger.String("confidence", string(confidence)),
		applogger.Int("checks_ran", tally.Total),
	)

	if p.publisher != nil {
		go p.publish(symbol, rec)
	}
	return rec, nil
}

// publish emits the served recommendation on its own deadline so a slow
// broker never delays or fails the request.
func (p *RecommendationPipeline) publish(symbol string, rec *models.Recommendation) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.publisher.PublishRecommendation(ctx, symbol, rec); err != nil {
		p.logger.Warn("recommendation publish failed",
			applogger.String("symbol", symbol),
			applogger.Error(err),
		)
	}
}
