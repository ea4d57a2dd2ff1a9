package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"SpanScreener/internal/domain/models"
	"SpanScreener/internal/domain/repository"
	xhttp "SpanScreener/pkg/http"
)

// ErrUpstreamUnavailable marks a request-level failure of any of the five
// provider calls. Nothing is cached when it is returned.
var ErrUpstreamUnavailable = errors.New("upstream provider unavailable")

// ErrSymbolNotFound means the provider does not know the ticker at all.
var ErrSymbolNotFound = errors.New("symbol not found")

// quarterLimit is how many quarterly filings the fetcher requests: a TTM
// window plus a full prior-year baseline.
const quarterLimit = 8

// SnapshotFetcher assembles a TickerSnapshot by fanning out the five
// provider calls concurrently under one bounded timeout.
type SnapshotFetcher struct {
	provider repository.MarketData
	timeout  time.Duration
}

func NewSnapshotFetcher(provider repository.MarketData, timeout time.Duration) *SnapshotFetcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &SnapshotFetcher{provider: provider, timeout: timeout}
}

// Fetch issues all five calls concurrently and joins them. A failure of any
// call cancels the rest and surfaces as ErrUpstreamUnavailable, except an
// upstream 404 which surfaces as ErrSymbolNotFound; fields a successful call
// simply did not carry stay nil in the snapshot.
func (f *SnapshotFetcher) Fetch(ctx context.Context, symbol string) (*models.TickerSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	var (
		details  *models.TickerDetails
		close    *float64
		quarters []models.QuarterlyFinancials
		sma, rsi *float64
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		details, err = f.provider.TickerDetails(ctx, symbol)
		return err
	})
	g.Go(func() (err error) {
		close, err = f.provider.PreviousClose(ctx, symbol)
		return err
	})
	g.Go(func() (err error) {
		quarters, err = f.provider.QuarterlyFinancials(ctx, symbol, quarterLimit)
		return err
	})
	g.Go(func() (err error) {
		sma, err = f.provider.SMA50(ctx, symbol)
		return err
	})
	g.Go(func() (err error) {
		rsi, err = f.provider.RSI14(ctx, symbol)
		return err
	})

	if err := g.Wait(); err != nil {
		var se *xhttp.StatusError
		if errors.As(err, &se) && se.Status == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ErrSymbolNotFound, symbol)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrUpstreamUnavailable, symbol, err)
	}

	snap := &models.TickerSnapshot{
		Symbol:     symbol,
		ClosePrice: close,
		Quarters:   quarters,
		SMA50:      sma,
		RSI14:      rsi,
	}
	if details != nil {
		snap.CompanyName = details.Name
		snap.MarketCap = details.MarketCap
		snap.SharesOutstanding = details.SharesOutstanding
	}
	return snap, nil
}
