package usecase

import "SpanScreener/internal/domain/models"

// Tally counts the lights among the checks that actually ran.
type Tally struct {
	Total   int
	Greens  int
	Yellows int
	Reds    int
}

// Aggregate reduces check results to a signal and confidence level.
//
// The SELL condition is evaluated before BUY on purpose: when reds and
// greens both clear the half-total threshold the defensive answer wins.
// When no check ran at all there is nothing to act on, which is defined as
// HOLD with LOW confidence.
func Aggregate(checks []models.CheckResult) (models.Signal, models.Confidence, Tally) {
	var t Tally
	for _, c := range checks {
		if c.Light == nil {
			continue
		}
		t.Total++
		switch *c.Light {
		case models.LightGreen:
			t.Greens++
		case models.LightYellow:
			t.Yellows++
		case models.LightRed:
			t.Reds++
		}
	}

	if t.Total == 0 {
		return models.SignalHold, models.ConfidenceLow, t
	}

	signal := models.SignalHold
	switch {
	case 2*t.Reds >= t.Total:
		signal = models.SignalSell
	case 2*t.Greens >= t.Total:
		signal = models.SignalBuy
	}

	return signal, confidence(t), t
}

// confidence grades how decisively the checks back the signal. Only the
// decisive lights can anchor the grade: yellow is a caution, not a verdict,
// so a yellow wall reads as mixed results rather than consensus. Dissent is
// counted against the stronger of the green and red blocks; zero dissenters
// is HIGH, one is MEDIUM, anything more is LOW.
func confidence(t Tally) models.Confidence {
	majority := t.Greens
	if t.Reds > majority {
		majority = t.Reds
	}
	switch t.Total - majority {
	case 0:
		return models.ConfidenceHigh
	case 1:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}

// MajorityLight is the most common light among present results, ties broken
// by GREEN > YELLOW > RED.
func (t Tally) MajorityLight() (models.Light, bool) {
	if t.Total == 0 {
		return "", false
	}
	switch {
	case t.Greens >= t.Yellows && t.Greens >= t.Reds:
		return models.LightGreen, true
	case t.Yellows >= t.Reds:
		return models.LightYellow, true
	default:
		return models.LightRed, true
	}
}
