package risk

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPortfolioMetricsEmptySeries(t *testing.T) {
	metrics := PortfolioMetrics(nil, 0.02/tradingDays)
	assert.Equal(t, "no return data available", metrics.Error)
}

func TestPortfolioMetricsBasicStatistics(t *testing.T) {
	returns := []float64{0.10, -0.10, 0.10}
	metrics := PortfolioMetrics(returns, 0.02/tradingDays)

	assert.Empty(t, metrics.Error)
	assert.InDelta(t, 0.10/3, metrics.DailyReturnMean, 1e-9)
	assert.InDelta(t, stdDevP(returns), metrics.DailyVolatility, 1e-12)
	assert.InDelta(t, metrics.DailyVolatility*math.Sqrt(365), metrics.AnnualVolatility, 1e-9)
	assert.Greater(t, metrics.SharpeRatio, 0.0)
	assert.InDelta(t, 0.10, metrics.MaxDrawdown, 1e-9)
	assert.LessOrEqual(t, metrics.Var95, metrics.DailyReturnMean)
	assert.LessOrEqual(t, metrics.Var99, metrics.Var95)
}
