package risk

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
)

// tradingDays is the annualization basis: crypto markets trade every day.
const tradingDays = 365

// mean returns the arithmetic mean, 0 for an empty series.
func mean(xs []float64) float64 {
	m, err := stats.Mean(xs)
	if err != nil {
		return 0
	}
	return finite(m)
}

// stdDevP returns the population standard deviation, 0 for an empty series.
func stdDevP(xs []float64) float64 {
	sd, err := stats.StandardDeviationPopulation(xs)
	if err != nil {
		return 0
	}
	return finite(sd)
}

// percentile returns the p-quantile (p in [0,1]) of xs, linearly
// interpolating between order statistics at index p*(n-1).
func percentile(xs []float64, p float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	idx := p * float64(len(sorted)-1)
	lo := int(math.Floor(idx))
	hi := int(math.Ceil(idx))
	if lo < 0 {
		lo, hi = 0, 0
	}
	if hi >= len(sorted) {
		lo, hi = len(sorted)-1, len(sorted)-1
	}
	frac := idx - float64(lo)
	return finite(sorted[lo] + frac*(sorted[hi]-sorted[lo]))
}

// maxDrawdown tracks the cumulative product of (1+r) against its running
// maximum and returns the magnitude of the deepest trough. Zero when fewer
// than two returns exist.
func maxDrawdown(returns []float64) float64 {
	if len(returns) < 2 {
		return 0
	}

	cumulative := 1.0
	runningMax := 1.0
	worst := 0.0
	for _, r := range returns {
		cumulative *= 1 + r
		if cumulative > runningMax {
			runningMax = cumulative
		}
		if runningMax > 0 {
			if dd := (cumulative - runningMax) / runningMax; dd < worst {
				worst = dd
			}
		}
	}
	return finite(math.Abs(worst))
}

// sharpeRatio is the mean excess daily return over the full-series standard
// deviation; 0 when the deviation is 0.
func sharpeRatio(returns []float64, dailyRiskFree float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	sd := stdDevP(returns)
	if sd == 0 {
		return 0
	}
	return finite((mean(returns) - dailyRiskFree) / sd)
}

// sortinoRatio uses the same numerator as the Sharpe ratio but penalizes
// only downside volatility. When no negative returns exist, it falls back
// to the overall deviation; 0 when the resulting denominator is 0.
func sortinoRatio(returns []float64, dailyRiskFree float64) float64 {
	if len(returns) == 0 {
		return 0
	}

	downside := make([]float64, 0, len(returns))
	for _, r := range returns {
		if r < 0 {
			downside = append(downside, r)
		}
	}

	sd := stdDevP(downside)
	if len(downside) == 0 {
		sd = stdDevP(returns)
	}
	if sd == 0 {
		return 0
	}
	return finite((mean(returns) - dailyRiskFree) / sd)
}

// finite replaces NaN and infinities with 0 so every emitted numeric field
// is a finite float.
func finite(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x
}
