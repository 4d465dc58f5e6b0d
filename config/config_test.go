package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "risk-engine", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, 8080, cfg.API.Port)

	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, "risk.assessments", cfg.Kafka.Topic)

	assert.Equal(t, 0.02, cfg.Risk.RiskFreeRate)
	assert.Equal(t, 30, cfg.Risk.VolatilityWindow)
	assert.Equal(t, 30, cfg.Risk.MinVarObs)
	assert.Equal(t, []float64{0.95, 0.99}, cfg.Risk.ConfidenceLevels)
	assert.InDelta(t, 1.0, cfg.Risk.VolatilityWeight+cfg.Risk.VarWeight+cfg.Risk.CorrelationWeight+cfg.Risk.StressWeight, 1e-9)
}
