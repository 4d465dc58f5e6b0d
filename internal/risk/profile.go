package risk

import (
	"math"

	"github.com/xplaincrypto/risk-engine/pkg/models"
	"github.com/xplaincrypto/risk-engine/pkg/utils/logger"
)

// AssetProfiler computes single-asset risk metrics. Every sub-metric is
// independently computable and degrades to a documented default on short or
// missing series instead of failing.
type AssetProfiler struct {
	params Params
	log    *logger.Logger
}

// NewAssetProfiler creates a profiler with the given parameters.
func NewAssetProfiler(params Params) *AssetProfiler {
	return &AssetProfiler{
		params: params.withDefaults(),
		log:    logger.GetLogger("risk.profile"),
	}
}

// Profile computes the full risk profile for one asset from its return
// series. Weight is the asset's current portfolio weight (1 for standalone
// assessments).
func (p *AssetProfiler) Profile(symbol string, weight float64, returns []float64) models.AssetRiskProfile {
	dailyRiskFree := p.params.RiskFreeRate / tradingDays

	profile := models.AssetRiskProfile{
		Symbol:           symbol,
		Weight:           weight,
		Volatility:       p.Volatility(returns),
		MaxDrawdown:      maxDrawdown(returns),
		SharpeRatio:      sharpeRatio(returns, dailyRiskFree),
		SortinoRatio:     sortinoRatio(returns, dailyRiskFree),
		BetaProxy:        p.BetaProxy(returns),
		InsufficientData: len(returns) == 0,
	}
	profile.RiskContribution = finite(weight * profile.Volatility)
	profile.RiskScore = assetRiskScore(profile)
	profile.RiskLevel = models.RiskLevelForScore(profile.RiskScore)

	if profile.InsufficientData {
		p.log.Debugf("insufficient price history for %s, profile degraded to defaults", symbol)
	}
	return profile
}

// Volatility is the annualized population standard deviation of the last
// VolatilityWindow returns. It reports 0 when fewer returns exist; that is
// an explicit degraded mode, not an error.
func (p *AssetProfiler) Volatility(returns []float64) float64 {
	window := p.params.VolatilityWindow
	if len(returns) < window {
		return 0
	}
	return finite(stdDevP(returns[len(returns)-window:]) * math.Sqrt(tradingDays))
}

// BetaProxy approximates beta with no true market series available: the
// ratio of the asset's daily return deviation to the assumed market daily
// volatility. Defaults to 1 when fewer than 30 returns exist.
func (p *AssetProfiler) BetaProxy(returns []float64) float64 {
	if len(returns) < 30 {
		return 1.0
	}
	if p.params.MarketVolatility <= 0 {
		return 1.0
	}
	return finite(stdDevP(returns) / p.params.MarketVolatility)
}

// assetRiskScore condenses a profile into a 0-100 score: annualized
// volatility carries most of the signal, drawdown the rest.
func assetRiskScore(profile models.AssetRiskProfile) float64 {
	volScore := math.Min(100, profile.Volatility*100)
	ddScore := math.Min(100, profile.MaxDrawdown*100)
	return finite(0.6*volScore + 0.4*ddScore)
}
