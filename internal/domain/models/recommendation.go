package models

import "time"

// Light is the traffic-light outcome of a single screening check.
type Light string

const (
	LightGreen  Light = "GREEN"
	LightYellow Light = "YELLOW"
	LightRed    Light = "RED"
)

// Signal is the final recommendation.
type Signal string

const (
	SignalBuy  Signal = "BUY"
	SignalSell Signal = "SELL"
	SignalHold Signal = "HOLD"
)

// Confidence reflects how unanimous the screening checks were.
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

// CheckResult is the outcome of one screening check. Light is nil when the
// check was skipped because a metric it depends on was unavailable.
type CheckResult struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Light  *Light `json:"light"`
	Detail string `json:"detail"`
}

// Skipped reports whether the check produced no light.
func (r CheckResult) Skipped() bool { return r.Light == nil }

// AnnualRevenue is the summed reported revenue of one fiscal year.
type AnnualRevenue struct {
	FiscalYear string   `json:"fiscal_year"`
	Revenue    *float64 `json:"revenue"`
	Quarters   int      `json:"quarters"`
}

// SnapshotSummary carries the price/company context of a recommendation.
type SnapshotSummary struct {
	Symbol      string   `json:"symbol"`
	CompanyName *string  `json:"company_name"`
	Price       *float64 `json:"price"`
	MarketCap   *float64 `json:"market_cap"`
	SMA50       *float64 `json:"sma_50"`
	RSI14       *float64 `json:"rsi_14"`
}

// Recommendation is the full analysis returned for a ticker. Checks always
// has one entry per check, skipped ones included with a nil light.
type Recommendation struct {
	Signal        Signal          `json:"signal"`
	Confidence    Confidence      `json:"confidence"`
	Checks        []CheckResult   `json:"checks"`
	Metrics       DerivedMetrics  `json:"metrics"`
	RevenueByYear []AnnualRevenue `json:"revenue_by_year,omitempty"`
	Summary       SnapshotSummary `json:"snapshot_summary"`
	GeneratedAt   time.Time       `json:"generated_at"`
}
