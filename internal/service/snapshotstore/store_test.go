package snapshotstore

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"SpanScreener/internal/domain/models"
	"SpanScreener/pkg/cache"
)

func fp(v float64) *float64 { return &v }

func snapshotFor(symbol string) *models.TickerSnapshot {
	return &models.TickerSnapshot{Symbol: symbol, ClosePrice: fp(30)}
}

type countingMetrics struct {
	mu      sync.Mutex
	lookups map[string]int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{lookups: make(map[string]int)}
}

func (m *countingMetrics) ObserveUpstreamLatency(string, time.Duration) {}
func (m *countingMetrics) RecordUpstreamError(string)                   {}
func (m *countingMetrics) RecordRecommendation(models.Signal)           {}

func (m *countingMetrics) RecordSnapshotLookup(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookups[result]++
}

func (m *countingMetrics) count(result string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lookups[result]
}

func TestSnapshotCachesFetchResult(t *testing.T) {
	var calls int32
	fetch := func(_ context.Context, symbol string) (*models.TickerSnapshot, error) {
		atomic.AddInt32(&calls, 1)
		return snapshotFor(symbol), nil
	}
	metrics := newCountingMetrics()
	store := New(cache.NewMemoryCache(), fetch, time.Minute, metrics, nil)

	for i := 0; i < 3; i++ {
		snap, err := store.Snapshot(context.Background(), "ACME")
		if err != nil {
			t.Fatalf("snapshot: %v", err)
		}
		if snap.Symbol != "ACME" || snap.ClosePrice == nil || *snap.ClosePrice != 30 {
			t.Fatalf("snapshot = %+v", snap)
		}
	}

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("fetch ran %d times, want 1", got)
	}
	if metrics.count("miss") != 1 || metrics.count("hit") != 2 {
		t.Fatalf("lookups = %v", metrics.lookups)
	}
}

func TestSnapshotRefetchesAfterTTL(t *testing.T) {
	var calls int32
	fetch := func(_ context.Context, symbol string) (*models.TickerSnapshot, error) {
		atomic.AddInt32(&calls, 1)
		return snapshotFor(symbol), nil
	}
	store := New(cache.NewMemoryCache(), fetch, 10*time.Millisecond, newCountingMetrics(), nil)

	if _, err := store.Snapshot(context.Background(), "ACME"); err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	time.Sleep(30 * time.Millisecond)
	if _, err := store.Snapshot(context.Background(), "ACME"); err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("fetch ran %d times, want 2", got)
	}
}

func TestSnapshotCoalescesConcurrentFetches(t *testing.T) {
	var calls int32
	release := make(chan struct{})
	fetch := func(_ context.Context, symbol string) (*models.TickerSnapshot, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return snapshotFor(symbol), nil
	}
	store := New(cache.NewMemoryCache(), fetch, time.Minute, newCountingMetrics(), nil)

	const waiters = 8
	var wg sync.WaitGroup
	errs := make(chan error, waiters)
	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Snapshot(context.Background(), "ACME")
			errs <- err
		}()
	}

	// Let the goroutines pile up on the in-flight fetch before releasing it.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("snapshot: %v", err)
		}
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("fetch ran %d times, want 1", got)
	}
}

func TestSnapshotErrorIsNotCached(t *testing.T) {
	var calls int32
	boom := errors.New("upstream down")
	fetch := func(_ context.Context, symbol string) (*models.TickerSnapshot, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return nil, boom
		}
		return snapshotFor(symbol), nil
	}
	store := New(cache.NewMemoryCache(), fetch, time.Minute, newCountingMetrics(), nil)

	if _, err := store.Snapshot(context.Background(), "ACME"); !errors.Is(err, boom) {
		t.Fatalf("first call error = %v, want %v", err, boom)
	}
	snap, err := store.Snapshot(context.Background(), "ACME")
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if snap.Symbol != "ACME" {
		t.Fatalf("snapshot = %+v", snap)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("fetch ran %d times, want 2", got)
	}
}

func TestSnapshotKeysAreSymbolScoped(t *testing.T) {
	fetch := func(_ context.Context, symbol string) (*models.TickerSnapshot, error) {
		return snapshotFor(symbol), nil
	}
	store := New(cache.NewMemoryCache(), fetch, time.Minute, newCountingMetrics(), nil)

	a, _ := store.Snapshot(context.Background(), "ACME")
	b, _ := store.Snapshot(context.Background(), "OTHER")
	if a.Symbol == b.Symbol {
		t.Fatalf("symbols collided: %s", a.Symbol)
	}
}
