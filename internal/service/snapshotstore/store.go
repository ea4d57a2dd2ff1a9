// Package snapshotstore caches ticker snapshots with a fixed TTL and
// coalesces concurrent fetches for the same symbol into one upstream round
// trip.
package snapshotstore

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"

	"SpanScreener/internal/domain/models"
	"SpanScreener/internal/domain/repository"
	"SpanScreener/pkg/cache"
	applogger "SpanScreener/pkg/logger"
)

// FetchFunc loads a fresh snapshot from the upstream provider.
type FetchFunc func(ctx context.Context, symbol string) (*models.TickerSnapshot, error)

// Store implements repository.SnapshotSource over a TTL cache plus a
// per-symbol single-flight group. All waiters on one flight receive the
// same snapshot or the same error; a failed or timed-out fetch never
// populates the cache.
type Store struct {
	cache   cache.Service
	fetch   FetchFunc
	ttl     time.Duration
	group   singleflight.Group
	metrics repository.Metrics
	logger  *applogger.Logger
}

func New(c cache.Service, fetch FetchFunc, ttl time.Duration, metrics repository.Metrics, logger *applogger.Logger) *Store {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Store{
		cache:   c,
		fetch:   fetch,
		ttl:     ttl,
		metrics: metrics,
		logger:  logger,
	}
}

var _ repository.SnapshotSource = (*Store)(nil)

// Snapshot returns the cached snapshot for symbol, or fetches one. Expiry
// is evaluated on read by the cache layer.
func (s *Store) Snapshot(ctx context.Context, symbol string) (*models.TickerSnapshot, error) {
	if snap, ok := s.lookup(ctx, symbol); ok {
		s.record(repository.LookupHit)
		return snap, nil
	}

	v, err, shared := s.group.Do(symbol, func() (interface{}, error) {
		// A flight that just finished may have filled the cache between
		// our miss and joining the group.
		if snap, ok := s.lookup(ctx, symbol); ok {
			return snap, nil
		}

		snap, err := s.fetch(ctx, symbol)
		if err != nil {
			return nil, err
		}
		if cerr := s.cache.Set(ctx, s.key(symbol), snap, s.ttl); cerr != nil && s.logger != nil {
			s.logger.Warn("snapshot cache write failed",
				applogger.String("symbol", symbol),
				applogger.Error(cerr),
			)
		}
		return snap, nil
	})

	if shared {
		s.record(repository.LookupCoalesced)
	} else {
		s.record(repository.LookupMiss)
	}

	if err != nil {
		return nil, err
	}
	return v.(*models.TickerSnapshot), nil
}

func (s *Store) lookup(ctx context.Context, symbol string) (*models.TickerSnapshot, bool) {
	var snap models.TickerSnapshot
	err := s.cache.Get(ctx, s.key(symbol), &snap)
	if err == nil {
		return &snap, true
	}
	if !errors.Is(err, cache.ErrCacheMiss) && s.logger != nil {
		s.logger.Warn("snapshot cache read failed",
			applogger.String("symbol", symbol),
			applogger.Error(err),
		)
	}
	return nil, false
}

func (s *Store) key(symbol string) string {
	return "snapshot:" + symbol
}

func (s *Store) record(result string) {
	if s.metrics != nil {
		s.metrics.RecordSnapshotLookup(result)
	}
}
