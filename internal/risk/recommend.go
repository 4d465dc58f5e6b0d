package risk

import (
	"math"
	"strings"

	"github.com/xplaincrypto/risk-engine/pkg/models"
)

// GenerateRecommendations derives human-readable guidance from a completed
// assessment. It is a pure function: every rule is independently
// triggerable, output order follows rule order, and the list is never empty.
func GenerateRecommendations(assessment *models.RiskAssessment) []string {
	var recommendations []string

	if assessment.RiskLevel == models.RiskLevelHigh || assessment.RiskLevel == models.RiskLevelVeryHigh {
		recommendations = append(recommendations,
			"Consider reducing position sizes to lower overall portfolio risk",
			"Implement stop-loss orders to limit downside exposure",
		)
	}

	if assessment.RiskMetrics.AnnualVolatility > 1.0 {
		recommendations = append(recommendations,
			"Portfolio exhibits very high volatility - consider diversification")
	}

	if assessment.Correlation.AverageCorrelation > 0.7 {
		recommendations = append(recommendations,
			"High correlation between assets - consider adding uncorrelated assets")
	}

	if estimate, ok := assessment.VaR.EstimateFor(0.95); ok {
		if math.Abs(estimate.Historical.Percentage) > 10 {
			recommendations = append(recommendations,
				"High Value at Risk detected - consider hedging strategies")
		}
	}

	if assessment.StressTest.Error == "" && assessment.StressTest.ResilienceScore < 30 {
		recommendations = append(recommendations,
			"Portfolio shows low resilience to stress scenarios")
	}

	// Iterate the valuation rather than the profile map for a stable order.
	var highRisk []string
	for _, asset := range assessment.Valuation.Assets {
		profile, ok := assessment.AssetRisks[asset.Symbol]
		if !ok {
			continue
		}
		if profile.RiskLevel == models.RiskLevelHigh || profile.RiskLevel == models.RiskLevelVeryHigh {
			highRisk = append(highRisk, asset.Symbol)
		}
	}
	if len(highRisk) > 0 {
		recommendations = append(recommendations,
			"High-risk assets detected: "+strings.Join(highRisk, ", "))
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations,
			"Portfolio risk appears to be within acceptable levels")
	}
	return recommendations
}
