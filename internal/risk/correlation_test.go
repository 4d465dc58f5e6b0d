package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xplaincrypto/risk-engine/pkg/models"
)

func twoAssetValuation(w1, w2 float64) models.PortfolioValuation {
	return models.PortfolioValuation{
		Assets: []models.AssetValuation{
			{Symbol: "BTC", Weight: w1},
			{Symbol: "ETH", Weight: w2},
		},
		TotalValue: 100000,
		AssetCount: 2,
	}
}

func TestAnalyzeSingleAssetNoCorrelationBenefit(t *testing.T) {
	analyzer := NewCorrelationAnalyzer(DefaultParams())

	valuation := models.PortfolioValuation{
		Assets:     []models.AssetValuation{{Symbol: "BTC", Weight: 1.0}},
		TotalValue: 50000,
		AssetCount: 1,
	}
	returns := map[string][]float64{"BTC": {0.01, -0.02, 0.03}}

	report := analyzer.Analyze(valuation, returns)

	assert.Equal(t, 1.0, report.DiversificationRatio)
	assert.Equal(t, "need at least 2 assets for correlation analysis", report.Message)
	assert.Empty(t, report.Matrix)
	assert.Empty(t, report.Error)
}

func TestAnalyzeInsufficientObservations(t *testing.T) {
	analyzer := NewCorrelationAnalyzer(DefaultParams())

	returns := map[string][]float64{
		"BTC": {0.01, -0.02, 0.03, 0.01, -0.01},
		"ETH": {0.02, -0.01, 0.02, 0.00, -0.02},
	}

	report := analyzer.Analyze(twoAssetValuation(0.5, 0.5), returns)

	assert.Equal(t, 1.0, report.DiversificationRatio)
	assert.Equal(t, "insufficient data for correlation analysis", report.Error)
	assert.Empty(t, report.Matrix)
}

func TestAnalyzePerfectlyCorrelatedPair(t *testing.T) {
	analyzer := NewCorrelationAnalyzer(DefaultParams())

	base := []float64{0.01, -0.02, 0.03, 0.005, -0.015, 0.02, -0.01, 0.025, -0.005, 0.01, 0.015, -0.02}
	scaled := make([]float64, len(base))
	for i, r := range base {
		scaled[i] = 2 * r
	}
	returns := map[string][]float64{"BTC": base, "ETH": scaled}

	report := analyzer.Analyze(twoAssetValuation(0.5, 0.5), returns)

	require.Empty(t, report.Error)
	assert.InDelta(t, 1.0, report.Matrix["BTC"]["ETH"], 1e-9)
	assert.InDelta(t, 1.0, report.Matrix["ETH"]["BTC"], 1e-9)
	assert.Equal(t, 1.0, report.Matrix["BTC"]["BTC"])
	assert.InDelta(t, 1.0, report.AverageCorrelation, 1e-9)
	assert.Equal(t, models.DiversificationVeryPoor, report.DiversificationLevel)

	require.Len(t, report.HighlyCorrelatedPairs, 1)
	assert.InDelta(t, 1.0, report.HighlyCorrelatedPairs[0].Correlation, 1e-9)

	// Perfect positive correlation offers no diversification benefit.
	assert.InDelta(t, 1.0, report.DiversificationRatio, 1e-9)
}

func TestAnalyzeAntiCorrelatedPair(t *testing.T) {
	analyzer := NewCorrelationAnalyzer(DefaultParams())

	base := []float64{0.01, -0.02, 0.03, 0.005, -0.015, 0.02, -0.01, 0.025, -0.005, 0.01}
	inverse := make([]float64, len(base))
	for i, r := range base {
		inverse[i] = -r
	}
	returns := map[string][]float64{"BTC": base, "ETH": inverse}

	report := analyzer.Analyze(twoAssetValuation(0.5, 0.5), returns)

	require.Empty(t, report.Error)
	assert.InDelta(t, -1.0, report.AverageCorrelation, 1e-9)
	assert.Equal(t, models.DiversificationExcellent, report.DiversificationLevel)

	// |corr| still crosses the high-correlation threshold.
	require.Len(t, report.HighlyCorrelatedPairs, 1)

	// Equal weights on exact inverses cancel: portfolio variance degenerates
	// to 0 and the ratio falls back to 1.
	assert.Equal(t, 1.0, report.DiversificationRatio)
}

func TestAnalyzeUncorrelatedImprovesDiversification(t *testing.T) {
	analyzer := NewCorrelationAnalyzer(DefaultParams())

	returns := map[string][]float64{
		"BTC": {0.02, -0.02, 0.02, -0.02, 0.02, -0.02, 0.02, -0.02, 0.02, -0.02, 0.02, -0.02},
		"ETH": {0.02, 0.02, -0.02, -0.02, 0.02, 0.02, -0.02, -0.02, 0.02, 0.02, -0.02, -0.02},
	}

	report := analyzer.Analyze(twoAssetValuation(0.5, 0.5), returns)

	require.Empty(t, report.Error)
	assert.InDelta(t, 0.0, report.AverageCorrelation, 0.1)
	assert.Empty(t, report.HighlyCorrelatedPairs)
	assert.Greater(t, report.DiversificationRatio, 1.0)
}
