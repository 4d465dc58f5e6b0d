package risk

import (
	"math"

	"github.com/xplaincrypto/risk-engine/pkg/models"
	"github.com/xplaincrypto/risk-engine/pkg/utils/logger"
)

// Scorer aggregates the sub-results of an assessment into a single 0-100
// composite risk score.
type Scorer struct {
	params Params
	log    *logger.Logger
}

// NewScorer creates a scorer with the given parameters.
func NewScorer(params Params) *Scorer {
	return &Scorer{
		params: params.withDefaults(),
		log:    logger.GetLogger("risk.score"),
	}
}

// Score computes the weighted composite over four independently-normalized
// sub-scores. Weights are renormalized over whichever sub-scores were
// actually computable; when none were, the score defaults to 50 ("unknown,
// assume medium risk") and the assessment is flagged low-confidence. The
// result is always clamped to [0, 100].
func (s *Scorer) Score(assessment *models.RiskAssessment) (float64, models.RiskLevel, bool) {
	weights := s.params.Weights
	weightedSum, totalWeight := 0.0, 0.0

	if assessment.RiskMetrics.Error == "" {
		volScore := math.Min(100, assessment.RiskMetrics.AnnualVolatility*100)
		weightedSum += volScore * weights.Volatility
		totalWeight += weights.Volatility
	}

	if assessment.VaR.Error == "" {
		if estimate, ok := assessment.VaR.EstimateFor(0.95); ok && estimate.Error == "" {
			varScore := math.Min(100, math.Abs(estimate.Historical.Percentage))
			weightedSum += varScore * weights.VaR
			totalWeight += weights.VaR
		}
	}

	if assessment.Correlation.Error == "" && assessment.Correlation.Message == "" {
		corrScore := math.Abs(assessment.Correlation.AverageCorrelation) * 100
		weightedSum += corrScore * weights.Correlation
		totalWeight += weights.Correlation
	}

	if assessment.StressTest.Error == "" {
		stressScore := 100 - assessment.StressTest.ResilienceScore
		weightedSum += stressScore * weights.Stress
		totalWeight += weights.Stress
	}

	if totalWeight == 0 {
		s.log.Warnf("no computable sub-scores for portfolio %s, defaulting to medium risk", assessment.PortfolioID)
		return 50, models.RiskLevelMedium, true
	}

	score := clamp(weightedSum/totalWeight, 0, 100)
	return score, models.RiskLevelForScore(score), false
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, finite(x)))
}
