package risk

import (
	"github.com/xplaincrypto/risk-engine/pkg/models"
)

// ScoreWeights are the relative weights of the composite risk score's
// sub-scores. They are renormalized over whichever sub-scores were actually
// computable.
type ScoreWeights struct {
	Volatility  float64
	VaR         float64
	Correlation float64
	Stress      float64
}

// Params carries every tunable the assessment pipeline uses. Thresholds are
// explicit configuration handed to the assessor at construction, not
// module-level state, so tests can override them deterministically.
type Params struct {
	// RiskFreeRate is the assumed annual risk-free rate.
	RiskFreeRate float64
	// MarketVolatility is the assumed market daily volatility used by the
	// beta proxy.
	MarketVolatility float64
	// VolatilityWindow is the number of trailing returns the annualized
	// volatility is computed over.
	VolatilityWindow int
	// MinCorrelationObs is the minimum aligned observations per asset for
	// correlation analysis.
	MinCorrelationObs int
	// MinVaRObs is the minimum portfolio return observations for VaR.
	MinVaRObs int
	// HighCorrelation is the |correlation| threshold for flagged pairs.
	HighCorrelation float64
	// ConfidenceLevels are the VaR confidence levels, each computed
	// independently.
	ConfidenceLevels []float64
	// Weights are the composite score weights.
	Weights ScoreWeights
	// Scenarios are the stress scenarios applied when the caller supplies
	// none.
	Scenarios []models.StressScenario
	// WorkerCount bounds the per-asset profiling fan-out.
	WorkerCount int
}

// DefaultParams returns the engine defaults.
func DefaultParams() Params {
	return Params{
		RiskFreeRate:      0.02,
		MarketVolatility:  0.02,
		VolatilityWindow:  30,
		MinCorrelationObs: 10,
		MinVaRObs:         30,
		HighCorrelation:   0.8,
		ConfidenceLevels:  []float64{0.95, 0.99},
		Weights: ScoreWeights{
			Volatility:  0.30,
			VaR:         0.25,
			Correlation: 0.20,
			Stress:      0.25,
		},
		Scenarios:   DefaultScenarios(),
		WorkerCount: 4,
	}
}

// withDefaults fills any unset field from DefaultParams.
func (p Params) withDefaults() Params {
	def := DefaultParams()
	if p.RiskFreeRate == 0 {
		p.RiskFreeRate = def.RiskFreeRate
	}
	if p.MarketVolatility <= 0 {
		p.MarketVolatility = def.MarketVolatility
	}
	if p.VolatilityWindow <= 0 {
		p.VolatilityWindow = def.VolatilityWindow
	}
	if p.MinCorrelationObs <= 0 {
		p.MinCorrelationObs = def.MinCorrelationObs
	}
	if p.MinVaRObs <= 0 {
		p.MinVaRObs = def.MinVaRObs
	}
	if p.HighCorrelation <= 0 {
		p.HighCorrelation = def.HighCorrelation
	}
	if len(p.ConfidenceLevels) == 0 {
		p.ConfidenceLevels = def.ConfidenceLevels
	}
	if p.Weights == (ScoreWeights{}) {
		p.Weights = def.Weights
	}
	if len(p.Scenarios) == 0 {
		p.Scenarios = def.Scenarios
	}
	if p.WorkerCount <= 0 {
		p.WorkerCount = def.WorkerCount
	}
	return p
}

// DefaultScenarios returns the built-in stress scenarios.
func DefaultScenarios() []models.StressScenario {
	return []models.StressScenario{
		{
			Name:        "market_crash",
			Description: "Severe market crash scenario",
			Shocks:      models.StressShocks{models.ShockAll: -0.5},
		},
		{
			Name:        "crypto_winter",
			Description: "Extended bear market",
			Shocks:      models.StressShocks{models.ShockAll: -0.8},
		},
		{
			Name:        "bitcoin_crash",
			Description: "Bitcoin-specific crash",
			Shocks:      models.StressShocks{"BTC": -0.6, models.ShockOthers: -0.3},
		},
		{
			Name:        "defi_collapse",
			Description: "DeFi sector collapse",
			Shocks:      models.StressShocks{"DeFi": -0.7, models.ShockOthers: -0.2},
		},
		{
			Name:        "regulatory_crackdown",
			Description: "Major regulatory restrictions",
			Shocks:      models.StressShocks{models.ShockAll: -0.4},
		},
	}
}
