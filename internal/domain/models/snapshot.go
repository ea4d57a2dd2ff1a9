package models

// QuarterlyFinancials holds one quarter of reported figures. Every value is
// optional: a nil pointer means the filing did not report the field, which is
// distinct from a reported zero.
type QuarterlyFinancials struct {
	FiscalPeriod string `json:"fiscal_period"`
	FiscalYear   string `json:"fiscal_year"`

	// Income statement
	Revenues            *float64 `json:"revenues"`
	GrossProfit         *float64 `json:"gross_profit"`
	OperatingIncomeLoss *float64 `json:"operating_income_loss"`
	NetIncomeLoss       *float64 `json:"net_income_loss"`

	// Balance sheet
	OtherCurrentAssets *float64 `json:"other_current_assets"`
	LongTermDebt       *float64 `json:"long_term_debt"`
	CurrentLiabilities *float64 `json:"current_liabilities"`

	// Cash flow statement
	OperatingCashFlow *float64 `json:"operating_cash_flow"`
	InvestingCashFlow *float64 `json:"investing_cash_flow"`
}

// TickerDetails is company metadata from the reference endpoint.
type TickerDetails struct {
	Name              *string  `json:"name"`
	MarketCap         *float64 `json:"market_cap"`
	SharesOutstanding *float64 `json:"shares_outstanding"`
}

// TickerSnapshot is the immutable raw-data bundle assembled from the five
// upstream calls. Quarters are ordered most recent first, at most 8 entries:
// the first 4 form the TTM window, the next 4 the YoY baseline.
type TickerSnapshot struct {
	Symbol            string                `json:"symbol"`
	CompanyName       *string               `json:"company_name"`
	MarketCap         *float64              `json:"market_cap"`
	SharesOutstanding *float64              `json:"shares_outstanding"`
	ClosePrice        *float64              `json:"close_price"`
	Quarters          []QuarterlyFinancials `json:"quarters"`
	SMA50             *float64              `json:"sma_50"`
	RSI14             *float64              `json:"rsi_14"`
}

// DerivedMetrics is the output of the metrics engine. A nil field means the
// metric could not be computed from the snapshot; consumers must treat nil as
// "no data", never as zero.
type DerivedMetrics struct {
	TTMRevenue         *float64 `json:"ttm_revenue"`
	TTMNetIncome       *float64 `json:"ttm_net_income"`
	EPS                *float64 `json:"eps"`
	PERatio            *float64 `json:"pe_ratio"`
	PSRatio            *float64 `json:"ps_ratio"`
	GrossMarginPct     *float64 `json:"gross_margin_pct"`
	OperatingMarginPct *float64 `json:"operating_margin_pct"`
	ProfitMarginPct    *float64 `json:"profit_margin_pct"`
	FCFMarginPct       *float64 `json:"fcf_margin_pct"`
	YoYGrowthPct       *float64 `json:"yoy_growth_pct"`
	Cash               *float64 `json:"cash"`
	TotalDebt          *float64 `json:"total_debt"`
	CashDebtRatio      *float64 `json:"cash_debt_ratio"`
}
