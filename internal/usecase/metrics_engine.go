package usecase

import "SpanScreener/internal/domain/models"

// ttmWindow is the number of quarters summed for trailing-twelve-month
// figures; the same count again forms the prior-year baseline.
const ttmWindow = 4

// DeriveMetrics computes every derived metric a snapshot supports. It is
// pure and never fails: any computation whose inputs are missing, or whose
// denominator is zero, yields a nil metric instead of an error.
func DeriveMetrics(s *models.TickerSnapshot) models.DerivedMetrics {
	var m models.DerivedMetrics

	recent := windowOf(s.Quarters, 0)
	prior := windowOf(s.Quarters, ttmWindow)

	m.TTMRevenue = windowSum(recent, func(q *models.QuarterlyFinancials) *float64 { return q.Revenues })
	m.TTMNetIncome = windowSum(recent, func(q *models.QuarterlyFinancials) *float64 { return q.NetIncomeLoss })

	m.EPS = divide(m.TTMNetIncome, s.SharesOutstanding)
	if m.EPS != nil && *m.EPS > 0 {
		// Loss-making companies carry no P/E rather than a negative one.
		m.PERatio = divide(s.ClosePrice, m.EPS)
	}
	m.PSRatio = divide(s.MarketCap, m.TTMRevenue)

	grossProfit := windowSum(recent, func(q *models.QuarterlyFinancials) *float64 { return q.GrossProfit })
	operatingIncome := windowSum(recent, func(q *models.QuarterlyFinancials) *float64 { return q.OperatingIncomeLoss })
	m.GrossMarginPct = pctOf(grossProfit, m.TTMRevenue)
	m.OperatingMarginPct = pctOf(operatingIncome, m.TTMRevenue)
	m.ProfitMarginPct = pctOf(m.TTMNetIncome, m.TTMRevenue)

	fcf := windowSum(recent, func(q *models.QuarterlyFinancials) *float64 {
		if q.OperatingCashFlow == nil || q.InvestingCashFlow == nil {
			return nil
		}
		v := *q.OperatingCashFlow + *q.InvestingCashFlow
		return &v
	})
	m.FCFMarginPct = pctOf(fcf, m.TTMRevenue)

	priorRevenue := windowSum(prior, func(q *models.QuarterlyFinancials) *float64 { return q.Revenues })
	if m.TTMRevenue != nil && priorRevenue != nil && *priorRevenue != 0 {
		growth := (*m.TTMRevenue - *priorRevenue) / *priorRevenue * 100
		m.YoYGrowthPct = &growth
	}

	if len(s.Quarters) > 0 {
		latest := s.Quarters[0]
		m.Cash = latest.OtherCurrentAssets
		if latest.LongTermDebt != nil && latest.CurrentLiabilities != nil {
			debt := *latest.LongTermDebt + *latest.CurrentLiabilities
			m.TotalDebt = &debt
		}
	}
	if m.TotalDebt != nil && *m.TotalDebt != 0 {
		m.CashDebtRatio = divide(m.Cash, m.TotalDebt)
	}

	return m
}

// AnnualRevenues groups the snapshot's quarters by fiscal year, most recent
// year first, summing the reported revenues. A quarter without a reported
// revenue still counts toward the year's quarter tally but not the sum; a
// year with no reported revenue at all carries nil.
func AnnualRevenues(qs []models.QuarterlyFinancials) []models.AnnualRevenue {
	var years []models.AnnualRevenue
	index := make(map[string]int)
	for i := range qs {
		y := qs[i].FiscalYear
		pos, ok := index[y]
		if !ok {
			pos = len(years)
			index[y] = pos
			years = append(years, models.AnnualRevenue{FiscalYear: y})
		}
		years[pos].Quarters++
		if r := qs[i].Revenues; r != nil {
			if years[pos].Revenue == nil {
				years[pos].Revenue = new(float64)
			}
			*years[pos].Revenue += *r
		}
	}
	return years
}

// windowOf returns the 4-quarter window starting at offset, or nil when the
// snapshot does not carry enough quarters to form it.
func windowOf(qs []models.QuarterlyFinancials, offset int) []models.QuarterlyFinancials {
	if len(qs) < offset+ttmWindow {
		return nil
	}
	return qs[offset : offset+ttmWindow]
}

// windowSum sums one field across a full window. Any absent value voids the
// whole sum: partial TTM figures would silently understate.
func windowSum(window []models.QuarterlyFinancials, field func(*models.QuarterlyFinancials) *float64) *float64 {
	if window == nil {
		return nil
	}
	var sum float64
	for i := range window {
		v := field(&window[i])
		if v == nil {
			return nil
		}
		sum += *v
	}
	return &sum
}

// divide returns num/den, or nil when either side is absent or den is zero.
func divide(num, den *float64) *float64 {
	if num == nil || den == nil || *den == 0 {
		return nil
	}
	v := *num / *den
	return &v
}

// pctOf returns num/den as a percentage under the same guards as divide.
func pctOf(num, den *float64) *float64 {
	r := divide(num, den)
	if r == nil {
		return nil
	}
	v := *r * 100
	return &v
}
