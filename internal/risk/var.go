package risk

import (
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/xplaincrypto/risk-engine/pkg/models"
	"github.com/xplaincrypto/risk-engine/pkg/utils/logger"
)

// methodologyHistorical names the primary VaR methodology in reports.
const methodologyHistorical = "historical_simulation"

// VaREstimator computes historical-simulation and parametric Value at Risk,
// plus Expected Shortfall, for a portfolio return series.
type VaREstimator struct {
	params Params
	log    *logger.Logger
}

// NewVaREstimator creates an estimator with the given parameters.
func NewVaREstimator(params Params) *VaREstimator {
	return &VaREstimator{
		params: params.withDefaults(),
		log:    logger.GetLogger("risk.var"),
	}
}

// Estimate computes VaR figures for every requested confidence level. Each
// level is computed independently: an invalid level yields a per-level error
// marker and never blocks the others. Fewer than MinVaRObs observations
// yield an explicit insufficient-data report.
//
// The parametric figure mean + z*std assumes normally distributed returns
// and is known to understate tail risk for fat-tailed crypto distributions;
// it is exposed next to the historical figure, clearly labeled, rather than
// silently preferred.
func (e *VaREstimator) Estimate(returns []float64, portfolioValue float64, confidences []float64) models.VaRReport {
	if len(confidences) == 0 {
		confidences = e.params.ConfidenceLevels
	}

	report := models.VaRReport{
		ConfidenceLevels: confidences,
		Methodology:      methodologyHistorical,
		Observations:     len(returns),
	}

	if len(returns) < e.params.MinVaRObs {
		e.log.Debugf("VaR skipped: %d observations, need %d", len(returns), e.params.MinVaRObs)
		report.Error = "insufficient data for VaR calculation"
		return report
	}

	returnsMean := mean(returns)
	returnsStd := stdDevP(returns)

	for _, confidence := range confidences {
		report.Estimates = append(report.Estimates, e.estimateLevel(returns, returnsMean, returnsStd, portfolioValue, confidence))
	}
	return report
}

// estimateLevel computes the three figures for one confidence level.
func (e *VaREstimator) estimateLevel(returns []float64, returnsMean, returnsStd, portfolioValue, confidence float64) models.VaREstimate {
	estimate := models.VaREstimate{Confidence: confidence}
	if confidence <= 0 || confidence >= 1 {
		estimate.Error = "confidence level must be in (0, 1)"
		return estimate
	}

	// Historical VaR: the (1-c) quantile of the return distribution,
	// expressed as a (typically negative) fractional return.
	historicalVaR := percentile(returns, 1-confidence)
	estimate.Historical = varFigure(historicalVaR, portfolioValue)

	// Expected Shortfall: the mean of the tail at or below the VaR value,
	// falling back to the VaR value itself when the tail set is empty.
	tail := make([]float64, 0, len(returns))
	for _, r := range returns {
		if r <= historicalVaR {
			tail = append(tail, r)
		}
	}
	expectedShortfall := historicalVaR
	if len(tail) > 0 {
		expectedShortfall = mean(tail)
	}
	estimate.ExpectedShortfall = varFigure(expectedShortfall, portfolioValue)

	// Parametric VaR under a normal assumption, with the exact inverse
	// standard-normal CDF.
	z := distuv.UnitNormal.Quantile(1 - confidence)
	estimate.Parametric = varFigure(returnsMean+z*returnsStd, portfolioValue)

	return estimate
}

// varFigure expands a fractional loss into its percentage and currency forms.
func varFigure(fraction, portfolioValue float64) models.VaRFigure {
	fraction = finite(fraction)
	return models.VaRFigure{
		Fraction:   fraction,
		Percentage: fraction * 100,
		Currency:   finite(fraction * portfolioValue),
	}
}
