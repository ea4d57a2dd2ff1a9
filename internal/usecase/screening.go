package usecase

import (
	"fmt"

	"SpanScreener/internal/domain/models"
)

// Check ids are stable for presentation; evaluation order does not matter
// because aggregation only counts lights.
const (
	CheckMargins       = 1
	CheckPriceSales    = 2
	CheckRevenueGrowth = 3
	CheckCashDebt      = 4
	CheckTechnicals    = 5
)

var checkNames = map[int]string{
	CheckMargins:       "Margins",
	CheckPriceSales:    "Price/Sales",
	CheckRevenueGrowth: "Revenue Growth",
	CheckCashDebt:      "Cash/Debt Ratio",
	CheckTechnicals:    "Technicals",
}

// RunChecks evaluates the five screening checks against derived metrics and
// the snapshot's price/indicator context. The slice always has five entries
// in id order; a check whose inputs are unavailable keeps a nil light.
// Within each check the band rules are ordered and the first match wins, so
// boundary values resolve deterministically.
func RunChecks(m models.DerivedMetrics, s *models.TickerSnapshot) []models.CheckResult {
	return []models.CheckResult{
		checkMargins(m),
		checkPriceSales(m),
		checkRevenueGrowth(m),
		checkCashDebt(m),
		checkTechnicals(s),
	}
}

func checkMargins(m models.DerivedMetrics) models.CheckResult {
	r := models.CheckResult{ID: CheckMargins, Name: checkNames[CheckMargins]}
	if m.GrossMarginPct == nil || m.ProfitMarginPct == nil {
		r.Detail = "skipped: margin data unavailable"
		return r
	}
	gm, pm := *m.GrossMarginPct, *m.ProfitMarginPct
	switch {
	case gm >= 50:
		r.Light = lightPtr(models.LightGreen)
		r.Detail = fmt.Sprintf("Gross margin %.2f%% >= 50%%", gm)
	case gm >= 30 && pm > 10:
		r.Light = lightPtr(models.LightYellow)
		r.Detail = fmt.Sprintf("Gross margin %.2f%% (30-50%%), profit margin %.2f%%", gm, pm)
	default:
		r.Light = lightPtr(models.LightRed)
		r.Detail = fmt.Sprintf("Gross margin %.2f%%, profit margin %.2f%%", gm, pm)
	}
	return r
}

func checkPriceSales(m models.DerivedMetrics) models.CheckResult {
	r := models.CheckResult{ID: CheckPriceSales, Name: checkNames[CheckPriceSales]}
	if m.PSRatio == nil {
		r.Detail = "skipped: P/S ratio unavailable"
		return r
	}
	ps := *m.PSRatio
	switch {
	case ps <= 10:
		r.Light = lightPtr(models.LightGreen)
		r.Detail = fmt.Sprintf("P/S %.2f <= 10", ps)
	case ps >= 20:
		r.Light = lightPtr(models.LightRed)
		r.Detail = fmt.Sprintf("P/S %.2f >= 20", ps)
	default:
		// Elevated band: a Rule-of-40 style test decides whether the
		// valuation is earned. Both inputs must be known.
		if m.YoYGrowthPct == nil || m.FCFMarginPct == nil {
			r.Detail = fmt.Sprintf("skipped: P/S %.2f elevated but growth/FCF unavailable", ps)
			return r
		}
		score := *m.YoYGrowthPct + *m.FCFMarginPct
		if score > 30 {
			r.Light = lightPtr(models.LightGreen)
			r.Detail = fmt.Sprintf("P/S %.2f justified: growth+FCF %.2f%% > 30%%", ps, score)
		} else {
			r.Light = lightPtr(models.LightYellow)
			r.Detail = fmt.Sprintf("P/S %.2f elevated, growth+FCF %.2f%% <= 30%%", ps, score)
		}
	}
	return r
}

func checkRevenueGrowth(m models.DerivedMetrics) models.CheckResult {
	r := models.CheckResult{ID: CheckRevenueGrowth, Name: checkNames[CheckRevenueGrowth]}
	if m.YoYGrowthPct == nil {
		r.Detail = "skipped: YoY growth unavailable"
		return r
	}
	g := *m.YoYGrowthPct
	switch {
	case g >= 20:
		r.Light = lightPtr(models.LightGreen)
		r.Detail = fmt.Sprintf("Revenue growth %.2f%% >= 20%%", g)
	case g >= 10:
		r.Light = lightPtr(models.LightYellow)
		r.Detail = fmt.Sprintf("Revenue growth %.2f%% (10-20%%)", g)
	default:
		r.Light = lightPtr(models.LightRed)
		r.Detail = fmt.Sprintf("Revenue growth %.2f%% < 10%%", g)
	}
	return r
}

func checkCashDebt(m models.DerivedMetrics) models.CheckResult {
	r := models.CheckResult{ID: CheckCashDebt, Name: checkNames[CheckCashDebt]}
	if m.CashDebtRatio == nil {
		r.Detail = "skipped: cash/debt ratio unavailable"
		return r
	}
	ratio := *m.CashDebtRatio
	switch {
	case ratio >= 1.0:
		r.Light = lightPtr(models.LightGreen)
		r.Detail = fmt.Sprintf("Cash/Debt ratio %.2f >= 1.0", ratio)
	case ratio >= 0.5:
		r.Light = lightPtr(models.LightYellow)
		r.Detail = fmt.Sprintf("Cash/Debt ratio %.2f (0.5-1.0)", ratio)
	default:
		r.Light = lightPtr(models.LightRed)
		r.Detail = fmt.Sprintf("Cash/Debt ratio %.2f < 0.5", ratio)
	}
	return r
}

func checkTechnicals(s *models.TickerSnapshot) models.CheckResult {
	r := models.CheckResult{ID: CheckTechnicals, Name: checkNames[CheckTechnicals]}
	if s.ClosePrice == nil || s.SMA50 == nil || s.RSI14 == nil {
		r.Detail = "skipped: price, SMA50 or RSI14 unavailable"
		return r
	}
	price, sma, rsi := *s.ClosePrice, *s.SMA50, *s.RSI14
	uptrend := price > sma
	switch {
	case uptrend && rsi >= 30 && rsi <= 70:
		r.Light = lightPtr(models.LightGreen)
		r.Detail = fmt.Sprintf("Price above SMA50, RSI %.1f neutral", rsi)
	case uptrend && rsi > 70:
		r.Light = lightPtr(models.LightYellow)
		r.Detail = fmt.Sprintf("Price above SMA50 but RSI %.1f overbought", rsi)
	case !uptrend && rsi >= 30:
		r.Light = lightPtr(models.LightYellow)
		r.Detail = fmt.Sprintf("Price below SMA50, RSI %.1f", rsi)
	case !uptrend && rsi < 30:
		r.Light = lightPtr(models.LightRed)
		r.Detail = fmt.Sprintf("Price below SMA50 and RSI %.1f oversold", rsi)
	default:
		// Uptrend with RSI < 30: not covered by the documented bands.
		r.Light = lightPtr(models.LightYellow)
		r.Detail = fmt.Sprintf("Price above SMA50 but RSI %.1f oversold", rsi)
	}
	return r
}

func lightPtr(l models.Light) *models.Light { return &l }
