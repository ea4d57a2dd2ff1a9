// Package massive implements the MarketData provider against the
// Massive.com (Polygon-style) REST API.
package massive

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"SpanScreener/internal/domain/models"
	"SpanScreener/internal/domain/repository"
	xhttp "SpanScreener/pkg/http"
)

// Endpoint labels used for metrics.
const (
	endpointDetails    = "ticker_details"
	endpointPrevBar    = "previous_bar"
	endpointFinancials = "financials"
	endpointSMA        = "sma"
	endpointRSI        = "rsi"
)

// Client is a Bearer-authenticated Massive.com REST client.
type Client struct {
	baseURL string
	http    *xhttp.Client
	metrics repository.Metrics
}

// New creates a Massive.com MarketData client.
func New(baseURL, apiKey string, timeout time.Duration, metrics repository.Metrics) *Client {
	return &Client{
		baseURL: baseURL,
		http: xhttp.NewClient(
			xhttp.WithTimeout(timeout),
			xhttp.WithBearerToken(apiKey),
		),
		metrics: metrics,
	}
}

var _ repository.MarketData = (*Client)(nil)

// TickerDetails fetches company metadata.
func (c *Client) TickerDetails(ctx context.Context, symbol string) (*models.TickerDetails, error) {
	var body struct {
		Results struct {
			Name                      *string  `json:"name"`
			MarketCap                 optFloat `json:"market_cap"`
			WeightedSharesOutstanding optFloat `json:"weighted_shares_outstanding"`
		} `json:"results"`
	}

	u := fmt.Sprintf("%s/v3/reference/tickers/%s", c.baseURL, url.PathEscape(symbol))
	if err := c.get(ctx, endpointDetails, u, nil, &body); err != nil {
		return nil, err
	}

	return &models.TickerDetails{
		Name:              body.Results.Name,
		MarketCap:         body.Results.MarketCap.v,
		SharesOutstanding: body.Results.WeightedSharesOutstanding.v,
	}, nil
}

// PreviousClose fetches the previous trading day's closing price.
func (c *Client) PreviousClose(ctx context.Context, symbol string) (*float64, error) {
	var body struct {
		Results []struct {
			Close optFloat `json:"c"`
		} `json:"results"`
	}

	u := fmt.Sprintf("%s/v2/aggs/ticker/%s/prev", c.baseURL, url.PathEscape(symbol))
	if err := c.get(ctx, endpointPrevBar, u, nil, &body); err != nil {
		return nil, err
	}

	if len(body.Results) == 0 {
		return nil, nil
	}
	return body.Results[0].Close.v, nil
}

// QuarterlyFinancials fetches up to limit quarterly filings, most recent
// first, flattening the three statements into QuarterlyFinancials.
func (c *Client) QuarterlyFinancials(ctx context.Context, symbol string, limit int) ([]models.QuarterlyFinancials, error) {
	var body struct {
		Results []struct {
			FiscalPeriod string `json:"fiscal_period"`
			FiscalYear   string `json:"fiscal_year"`
			Financials   struct {
				IncomeStatement struct {
					Revenues            valueField `json:"revenues"`
					GrossProfit         valueField `json:"gross_profit"`
					OperatingIncomeLoss valueField `json:"operating_income_loss"`
					NetIncomeLoss       valueField `json:"net_income_loss"`
				} `json:"income_statement"`
				BalanceSheet struct {
					OtherCurrentAssets valueField `json:"other_current_assets"`
					LongTermDebt       valueField `json:"long_term_debt"`
					CurrentLiabilities valueField `json:"current_liabilities"`
				} `json:"balance_sheet"`
				CashFlowStatement struct {
					OperatingActivities valueField `json:"net_cash_flow_from_operating_activities"`
					InvestingActivities valueField `json:"net_cash_flow_from_investing_activities"`
				} `json:"cash_flow_statement"`
			} `json:"financials"`
		} `json:"results"`
	}

	u := c.baseURL + "/vX/reference/financials"
	params := map[string]string{
		"ticker":    symbol,
		"timeframe": "quarterly",
		"limit":     strconv.Itoa(limit),
	}
	if err := c.get(ctx, endpointFinancials, u, params, &body); err != nil {
		return nil, err
	}

	quarters := make([]models.QuarterlyFinancials, 0, len(body.Results))
	for _, r := range body.Results {
		quarters = append(quarters, models.QuarterlyFinancials{
			FiscalPeriod:        r.FiscalPeriod,
			FiscalYear:          r.FiscalYear,
			Revenues:            r.Financials.IncomeStatement.Revenues.Value.v,
			GrossProfit:         r.Financials.IncomeStatement.GrossProfit.Value.v,
			OperatingIncomeLoss: r.Financials.IncomeStatement.OperatingIncomeLoss.Value.v,
			NetIncomeLoss:       r.Financials.IncomeStatement.NetIncomeLoss.Value.v,
			OtherCurrentAssets:  r.Financials.BalanceSheet.OtherCurrentAssets.Value.v,
			LongTermDebt:        r.Financials.BalanceSheet.LongTermDebt.Value.v,
			CurrentLiabilities:  r.Financials.BalanceSheet.CurrentLiabilities.Value.v,
			OperatingCashFlow:   r.Financials.CashFlowStatement.OperatingActivities.Value.v,
			InvestingCashFlow:   r.Financials.CashFlowStatement.InvestingActivities.Value.v,
		})
	}
	return quarters, nil
}

// SMA50 fetches the latest 50-day simple moving average.
func (c *Client) SMA50(ctx context.Context, symbol string) (*float64, error) {
	return c.indicator(ctx, endpointSMA, "sma", symbol, "50")
}

// RSI14 fetches the latest 14-day relative strength index.
func (c *Client) RSI14(ctx context.Context, symbol string) (*float64, error) {
	return c.indicator(ctx, endpointRSI, "rsi", symbol, "14")
}

func (c *Client) indicator(ctx context.Context, endpoint, kind, symbol, window string) (*float64, error) {
	var body struct {
		Results struct {
			Values []struct {
				Value optFloat `json:"value"`
			} `json:"values"`
		} `json:"results"`
	}

	u := fmt.Sprintf("%s/v1/indicators/%s/%s", c.baseURL, kind, url.PathEscape(symbol))
	params := map[string]string{
		"timespan": "day",
		"window":   window,
		"limit":    "1",
	}
	if err := c.get(ctx, endpoint, u, params, &body); err != nil {
		return nil, err
	}

	if len(body.Results.Values) == 0 {
		return nil, nil
	}
	return body.Results.Values[0].Value.v, nil
}

func (c *Client) get(ctx context.Context, endpoint, url string, params map[string]string, dest interface{}) error {
	start := time.Now()
	err := c.http.GetJSON(ctx, &xhttp.RequestOptions{URL: url, QueryParams: params}, dest)
	if c.metrics != nil {
		c.metrics.ObserveUpstreamLatency(endpoint, time.Since(start))
		if err != nil {
			c.metrics.RecordUpstreamError(endpoint)
		}
	}
	if err != nil {
		return fmt.Errorf("massive %s: %w", endpoint, err)
	}
	return nil
}
