package massive

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, "test-key", 5*time.Second, nil)
}

func TestTickerDetails(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v3/reference/tickers/ACME" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization = %q", got)
		}
		w.Write([]byte(`{"results":{"name":"Acme Corp","market_cap":1500,"weighted_shares_outstanding":50}}`))
	})

	details, err := client.TickerDetails(context.Background(), "ACME")
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if details.Name == nil || *details.Name != "Acme Corp" {
		t.Errorf("name = %v", details.Name)
	}
	if details.MarketCap == nil || *details.MarketCap != 1500 {
		t.Errorf("market cap = %v", details.MarketCap)
	}
	if details.SharesOutstanding == nil || *details.SharesOutstanding != 50 {
		t.Errorf("shares = %v", details.SharesOutstanding)
	}
}

func TestTickerDetailsToleratesMalformedFields(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"results":{"name":"Acme Corp","market_cap":"garbage","weighted_shares_outstanding":null}}`))
	})

	details, err := client.TickerDetails(context.Background(), "ACME")
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if details.MarketCap != nil {
		t.Errorf("market cap = %v, want nil", *details.MarketCap)
	}
	if details.SharesOutstanding != nil {
		t.Errorf("shares = %v, want nil", *details.SharesOutstanding)
	}
}

func TestPreviousClose(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/aggs/ticker/ACME/prev" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"results":[{"c":30.25}]}`))
	})

	close, err := client.PreviousClose(context.Background(), "ACME")
	if err != nil {
		t.Fatalf("previous close: %v", err)
	}
	if close == nil || *close != 30.25 {
		t.Errorf("close = %v", close)
	}
}

func TestPreviousCloseEmptyResults(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"results":[]}`))
	})

	close, err := client.PreviousClose(context.Background(), "ACME")
	if err != nil {
		t.Fatalf("previous close: %v", err)
	}
	if close != nil {
		t.Errorf("close = %v, want nil", *close)
	}
}

func TestQuarterlyFinancials(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/vX/reference/financials" {
			t.Errorf("path = %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("ticker") != "ACME" || q.Get("timeframe") != "quarterly" || q.Get("limit") != "8" {
			t.Errorf("query = %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"results":[{
			"fiscal_period":"Q2","fiscal_year":"2026",
			"financials":{
				"income_statement":{
					"revenues":{"value":100,"unit":"USD"},
					"gross_profit":{"value":45},
					"operating_income_loss":{"value":null},
					"net_income_loss":{"value":"25"}
				},
				"balance_sheet":{
					"other_current_assets":{"value":50},
					"long_term_debt":{"value":60},
					"current_liabilities":{"value":40}
				},
				"cash_flow_statement":{
					"net_cash_flow_from_operating_activities":{"value":30},
					"net_cash_flow_from_investing_activities":{"value":-5}
				}
			}
		}]}`))
	})

	quarters, err := client.QuarterlyFinancials(context.Background(), "ACME", 8)
	if err != nil {
		t.Fatalf("financials: %v", err)
	}
	if len(quarters) != 1 {
		t.Fatalf("quarters = %d", len(quarters))
	}

	q := quarters[0]
	if q.FiscalPeriod != "Q2" || q.FiscalYear != "2026" {
		t.Errorf("fiscal = %s %s", q.FiscalPeriod, q.FiscalYear)
	}
	if q.Revenues == nil || *q.Revenues != 100 {
		t.Errorf("revenues = %v", q.Revenues)
	}
	if q.OperatingIncomeLoss != nil {
		t.Errorf("operating income = %v, want nil", *q.OperatingIncomeLoss)
	}
	// Quoted numbers decode too.
	if q.NetIncomeLoss == nil || *q.NetIncomeLoss != 25 {
		t.Errorf("net income = %v", q.NetIncomeLoss)
	}
	if q.InvestingCashFlow == nil || *q.InvestingCashFlow != -5 {
		t.Errorf("investing cash flow = %v", q.InvestingCashFlow)
	}
}

func TestIndicators(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case strings.HasPrefix(r.URL.Path, "/v1/indicators/sma/"):
			if q.Get("window") != "50" || q.Get("timespan") != "day" || q.Get("limit") != "1" {
				t.Errorf("sma query = %s", r.URL.RawQuery)
			}
			w.Write([]byte(`{"results":{"values":[{"value":32.1}]}}`))
		case strings.HasPrefix(r.URL.Path, "/v1/indicators/rsi/"):
			if q.Get("window") != "14" {
				t.Errorf("rsi query = %s", r.URL.RawQuery)
			}
			w.Write([]byte(`{"results":{"values":[{"value":48.9}]}}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	sma, err := client.SMA50(context.Background(), "ACME")
	if err != nil {
		t.Fatalf("sma: %v", err)
	}
	if sma == nil || *sma != 32.1 {
		t.Errorf("sma = %v", sma)
	}

	rsi, err := client.RSI14(context.Background(), "ACME")
	if err != nil {
		t.Fatalf("rsi: %v", err)
	}
	if rsi == nil || *rsi != 48.9 {
		t.Errorf("rsi = %v", rsi)
	}
}

func TestIndicatorEmptyValues(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"results":{"values":[]}}`))
	})

	sma, err := client.SMA50(context.Background(), "ACME")
	if err != nil {
		t.Fatalf("sma: %v", err)
	}
	if sma != nil {
		t.Errorf("sma = %v, want nil", *sma)
	}
}

func TestUpstreamErrorSurfaces(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})

	if _, err := client.TickerDetails(context.Background(), "ACME"); err == nil {
		t.Fatal("expected error on 429")
	} else if !strings.Contains(err.Error(), "ticker_details") {
		t.Errorf("error = %v", err)
	}
}
