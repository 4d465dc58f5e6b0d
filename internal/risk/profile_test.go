package risk

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xplaincrypto/risk-engine/pkg/models"
)

func TestVolatilityZeroBelowWindow(t *testing.T) {
	profiler := NewAssetProfiler(DefaultParams())

	returns := make([]float64, 29)
	for i := range returns {
		returns[i] = 0.01
	}
	assert.Zero(t, profiler.Volatility(returns))
}

func TestVolatilityAnnualizesTrailingWindow(t *testing.T) {
	profiler := NewAssetProfiler(Params{VolatilityWindow: 2})

	// Window covers the last two returns only; their population deviation is
	// 0.05, annualized by sqrt(365).
	returns := []float64{1.0, 0.10, 0.20}
	assert.InDelta(t, 0.05*math.Sqrt(365), profiler.Volatility(returns), 1e-9)
}

func TestBetaProxyDefaultsOnShortSeries(t *testing.T) {
	profiler := NewAssetProfiler(DefaultParams())

	returns := make([]float64, 29)
	assert.Equal(t, 1.0, profiler.BetaProxy(returns))
}

func TestBetaProxyScalesWithDeviation(t *testing.T) {
	profiler := NewAssetProfiler(DefaultParams())

	// 30 alternating returns with population deviation 0.04, twice the
	// assumed market volatility of 0.02.
	returns := make([]float64, 30)
	for i := range returns {
		if i%2 == 0 {
			returns[i] = 0.04
		} else {
			returns[i] = -0.04
		}
	}
	assert.InDelta(t, 2.0, profiler.BetaProxy(returns), 1e-9)
}

func TestProfileEmptySeriesDegradesToDefaults(t *testing.T) {
	profiler := NewAssetProfiler(DefaultParams())

	profile := profiler.Profile("XYZ", 0.5, nil)

	assert.Equal(t, "XYZ", profile.Symbol)
	assert.True(t, profile.InsufficientData)
	assert.Zero(t, profile.Volatility)
	assert.Zero(t, profile.MaxDrawdown)
	assert.Zero(t, profile.SharpeRatio)
	assert.Zero(t, profile.SortinoRatio)
	assert.Equal(t, 1.0, profile.BetaProxy)
	assert.Zero(t, profile.RiskScore)
	assert.Equal(t, models.RiskLevelVeryLow, profile.RiskLevel)
}

func TestProfileRiskScoreAndLevel(t *testing.T) {
	profiler := NewAssetProfiler(Params{VolatilityWindow: 4})

	returns := []float64{0.20, -0.30, 0.25, -0.15}
	profile := profiler.Profile("BTC", 1.0, returns)

	require.False(t, profile.InsufficientData)
	assert.Greater(t, profile.Volatility, 1.0)
	assert.Greater(t, profile.MaxDrawdown, 0.0)
	// Both components saturate well past 100, so the score caps out.
	assert.InDelta(t, 0.6*100+0.4*math.Min(100, profile.MaxDrawdown*100), profile.RiskScore, 1e-9)
	assert.Equal(t, models.RiskLevelForScore(profile.RiskScore), profile.RiskLevel)
	assert.InDelta(t, profile.Volatility, profile.RiskContribution, 1e-9)
}
