package models

import (
	"time"
)

// RiskLevel is the five-bucket categorical risk label.
type RiskLevel string

const (
	RiskLevelVeryLow  RiskLevel = "very_low"
	RiskLevelLow      RiskLevel = "low"
	RiskLevelMedium   RiskLevel = "medium"
	RiskLevelHigh     RiskLevel = "high"
	RiskLevelVeryHigh RiskLevel = "very_high"
	RiskLevelUnknown  RiskLevel = "unknown"
)

// RiskLevelForScore buckets a 0-100 risk score into a RiskLevel.
func RiskLevelForScore(score float64) RiskLevel {
	switch {
	case score < 20:
		return RiskLevelVeryLow
	case score < 40:
		return RiskLevelLow
	case score < 60:
		return RiskLevelMedium
	case score < 80:
		return RiskLevelHigh
	default:
		return RiskLevelVeryHigh
	}
}

// DiversificationLevel categorizes how diversified a portfolio is.
type DiversificationLevel string

const (
	DiversificationExcellent DiversificationLevel = "excellent"
	DiversificationGood      DiversificationLevel = "good"
	DiversificationModerate  DiversificationLevel = "moderate"
	DiversificationPoor      DiversificationLevel = "poor"
	DiversificationVeryPoor  DiversificationLevel = "very_poor"
)

// DiversificationForCorrelation buckets an average pairwise correlation.
func DiversificationForCorrelation(avgCorrelation float64) DiversificationLevel {
	switch {
	case avgCorrelation < 0.2:
		return DiversificationExcellent
	case avgCorrelation < 0.4:
		return DiversificationGood
	case avgCorrelation < 0.6:
		return DiversificationModerate
	case avgCorrelation < 0.8:
		return DiversificationPoor
	default:
		return DiversificationVeryPoor
	}
}

// Holding is a single position within a portfolio. Tags carry sector labels
// (e.g. "DeFi") that stress scenarios can target.
type Holding struct {
	Symbol   string   `json:"symbol"`
	Quantity float64  `json:"quantity"`
	Tags     []string `json:"tags,omitempty"`
}

// Portfolio is a collection of holdings. Derived fields (value, weights) are
// never stored here; they are recomputed on every assessment.
type Portfolio struct {
	ID       string    `json:"id"`
	Name     string    `json:"name,omitempty"`
	Holdings []Holding `json:"holdings"`
	Created  time.Time `json:"created,omitempty"`
	Updated  time.Time `json:"updated,omitempty"`
}

// PricePoint is one observation in a price series.
type PricePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Price     float64   `json:"price"`
}

// PriceData holds the materialized series for one symbol. Prices are in
// chronological order. CurrentPrice is optional; valuation falls back to the
// last valid observation when it is zero.
type PriceData struct {
	CurrentPrice float64      `json:"current_price,omitempty"`
	Prices       []PricePoint `json:"prices"`
}

// AssetValuation is a holding valued at current prices.
type AssetValuation struct {
	Symbol       string   `json:"symbol"`
	Quantity     float64  `json:"quantity"`
	CurrentPrice float64  `json:"current_price"`
	Value        float64  `json:"value"`
	Weight       float64  `json:"weight"`
	Tags         []string `json:"tags,omitempty"`
}

// PortfolioValuation is the value snapshot an assessment is computed against.
type PortfolioValuation struct {
	Assets     []AssetValuation `json:"assets"`
	TotalValue float64          `json:"total_value"`
	AssetCount int              `json:"asset_count"`
}

// AssetRiskProfile contains per-symbol risk metrics. Volatility is annualized.
type AssetRiskProfile struct {
	Symbol           string    `json:"symbol"`
	Weight           float64   `json:"weight"`
	Volatility       float64   `json:"volatility"`
	MaxDrawdown      float64   `json:"max_drawdown"`
	SharpeRatio      float64   `json:"sharpe_ratio"`
	SortinoRatio     float64   `json:"sortino_ratio"`
	BetaProxy        float64   `json:"beta_proxy"`
	RiskContribution float64   `json:"risk_contribution"`
	RiskScore        float64   `json:"risk_score"`
	RiskLevel        RiskLevel `json:"risk_level"`
	InsufficientData bool      `json:"insufficient_data,omitempty"`
	Error            string    `json:"error,omitempty"`
}

// PortfolioRiskMetrics are distribution statistics of the weighted portfolio
// return series. Var95/Var99 are raw return percentiles (fractional).
type PortfolioRiskMetrics struct {
	DailyReturnMean  float64 `json:"daily_return_mean"`
	DailyVolatility  float64 `json:"daily_volatility"`
	AnnualVolatility float64 `json:"annual_volatility"`
	SharpeRatio      float64 `json:"sharpe_ratio"`
	SortinoRatio     float64 `json:"sortino_ratio"`
	MaxDrawdown      float64 `json:"max_drawdown"`
	Skewness         float64 `json:"skewness"`
	Kurtosis         float64 `json:"kurtosis"`
	Var95            float64 `json:"var_95"`
	Var99            float64 `json:"var_99"`
	Error            string  `json:"error,omitempty"`
}

// CorrelationPair is an unordered asset pair with its Pearson correlation.
type CorrelationPair struct {
	Asset1      string  `json:"asset1"`
	Asset2      string  `json:"asset2"`
	Correlation float64 `json:"correlation"`
}

// CorrelationReport describes pairwise correlation structure and the
// diversification benefit of the portfolio.
type CorrelationReport struct {
	Matrix                map[string]map[string]float64 `json:"correlation_matrix,omitempty"`
	AverageCorrelation    float64                       `json:"average_correlation"`
	MaxCorrelation        float64                       `json:"max_correlation"`
	MinCorrelation        float64                       `json:"min_correlation"`
	DiversificationRatio  float64                       `json:"diversification_ratio"`
	DiversificationLevel  DiversificationLevel          `json:"diversification_level,omitempty"`
	HighlyCorrelatedPairs []CorrelationPair             `json:"highly_correlated_pairs,omitempty"`
	Message               string                        `json:"message,omitempty"`
	Error                 string                        `json:"error,omitempty"`
}

// VaRFigure expresses one loss estimate as a fractional return, a percentage
// and a currency amount at the current portfolio value.
type VaRFigure struct {
	Fraction   float64 `json:"fraction"`
	Percentage float64 `json:"percentage"`
	Currency   float64 `json:"currency"`
}

// VaREstimate holds the figures for one confidence level. The parametric
// figure assumes normally distributed returns, which understates tail risk
// for fat-tailed crypto return distributions; it is reported alongside the
// historical figure rather than replacing it.
type VaREstimate struct {
	Confidence        float64   `json:"confidence"`
	Historical        VaRFigure `json:"historical_var"`
	ExpectedShortfall VaRFigure `json:"expected_shortfall"`
	Parametric        VaRFigure `json:"parametric_var"`
	Error             string    `json:"error,omitempty"`
}

// VaRReport is the full Value-at-Risk result across confidence levels.
type VaRReport struct {
	ConfidenceLevels []float64     `json:"confidence_levels"`
	Estimates        []VaREstimate `json:"estimates,omitempty"`
	Methodology      string        `json:"methodology"`
	Observations     int           `json:"observations"`
	Error            string        `json:"error,omitempty"`
}

// EstimateFor returns the estimate for a confidence level, if present.
func (r VaRReport) EstimateFor(confidence float64) (VaREstimate, bool) {
	for _, e := range r.Estimates {
		if e.Confidence == confidence {
			return e, true
		}
	}
	return VaREstimate{}, false
}

// StressShocks maps a symbol, a holding tag, or the wildcards "all"/"others"
// to a fractional price shock in [-1, +inf).
type StressShocks map[string]float64

// Wildcard shock keys.
const (
	ShockAll    = "all"
	ShockOthers = "others"
)

// StressScenario is a named set of price shocks.
type StressScenario struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Shocks      StressShocks `json:"shocks"`
}

// AssetImpact is the effect of one scenario on one holding.
type AssetImpact struct {
	OriginalPrice float64 `json:"original_price"`
	ShockedPrice  float64 `json:"new_price"`
	ShockApplied  float64 `json:"shock_applied"`
	ValueChange   float64 `json:"value_change"`
}

// ScenarioResult is the portfolio impact of one stress scenario.
type ScenarioResult struct {
	Name           string                 `json:"name"`
	Description    string                 `json:"description,omitempty"`
	ValueBefore    float64                `json:"portfolio_value_before"`
	ValueAfter     float64                `json:"portfolio_value_after"`
	AbsoluteLoss   float64                `json:"absolute_loss"`
	PercentageLoss float64                `json:"percentage_loss"`
	AssetImpacts   map[string]AssetImpact `json:"asset_impacts,omitempty"`
}

// StressReport aggregates all scenario results. ResilienceScore is
// max(0, 100 - mean percentage loss); higher means more resilient.
type StressReport struct {
	Scenarios       []ScenarioResult `json:"scenarios,omitempty"`
	WorstCase       *ScenarioResult  `json:"worst_case_scenario,omitempty"`
	ResilienceScore float64          `json:"portfolio_resilience_score"`
	Error           string           `json:"error,omitempty"`
}

// RiskAssessment is the root aggregate produced by one assessment call.
// It is fully immutable after construction and never persisted by the engine.
type RiskAssessment struct {
	PortfolioID     string                      `json:"portfolio_id"`
	Timestamp       time.Time                   `json:"timestamp"`
	TotalValueUSD   float64                     `json:"total_value_usd"`
	Valuation       PortfolioValuation          `json:"valuation"`
	RiskMetrics     PortfolioRiskMetrics        `json:"risk_metrics"`
	AssetRisks      map[string]AssetRiskProfile `json:"asset_risks"`
	Correlation     CorrelationReport           `json:"correlation_analysis"`
	VaR             VaRReport                   `json:"var_analysis"`
	StressTest      StressReport                `json:"stress_test_results"`
	RiskScore       float64                     `json:"risk_score"`
	RiskLevel       RiskLevel                   `json:"risk_level"`
	LowConfidence   bool                        `json:"low_confidence,omitempty"`
	Recommendations []string                    `json:"recommendations"`
	Error           string                      `json:"error,omitempty"`
}
