package risk

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/xplaincrypto/risk-engine/pkg/models"
)

// PortfolioMetrics computes distribution statistics over the weighted
// portfolio return series.
func PortfolioMetrics(returns []float64, dailyRiskFree float64) models.PortfolioRiskMetrics {
	if len(returns) == 0 {
		return models.PortfolioRiskMetrics{Error: "no return data available"}
	}

	dailyVolatility := stdDevP(returns)
	return models.PortfolioRiskMetrics{
		DailyReturnMean:  mean(returns),
		DailyVolatility:  dailyVolatility,
		AnnualVolatility: finite(dailyVolatility * math.Sqrt(tradingDays)),
		SharpeRatio:      sharpeRatio(returns, dailyRiskFree),
		SortinoRatio:     sortinoRatio(returns, dailyRiskFree),
		MaxDrawdown:      maxDrawdown(returns),
		Skewness:         finite(stat.Skew(returns, nil)),
		Kurtosis:         finite(stat.ExKurtosis(returns, nil)),
		Var95:            percentile(returns, 0.05),
		Var99:            percentile(returns, 0.01),
	}
}
