package series

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xplaincrypto/risk-engine/pkg/models"
)

func pricePoints(prices ...float64) []models.PricePoint {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]models.PricePoint, len(prices))
	for i, p := range prices {
		points[i] = models.PricePoint{Timestamp: base.AddDate(0, 0, i), Price: p}
	}
	return points
}

func TestReturnsSimplePercentChanges(t *testing.T) {
	returns := Returns(pricePoints(100, 110, 99, 108.9))

	require.Len(t, returns, 3)
	assert.InDelta(t, 0.10, returns[0], 1e-9)
	assert.InDelta(t, -0.10, returns[1], 1e-9)
	assert.InDelta(t, 0.10, returns[2], 1e-9)
}

func TestReturnsExcludesInvalidPrices(t *testing.T) {
	returns := Returns(pricePoints(100, 0, -5, 110))

	require.Len(t, returns, 1)
	assert.InDelta(t, 0.10, returns[0], 1e-9)
}

func TestReturnsInsufficientData(t *testing.T) {
	assert.Nil(t, Returns(nil))
	assert.Nil(t, Returns(pricePoints(100)))
	assert.Nil(t, Returns(pricePoints(100, 0, -3)))
}

func TestAlignTruncatesToShortestKeepingMostRecent(t *testing.T) {
	aligned, n := Align(map[string][]float64{
		"BTC": {0.01, 0.02, 0.03, 0.04, 0.05},
		"ETH": {0.10, 0.20, 0.30},
	})

	assert.Equal(t, 3, n)
	assert.Equal(t, []float64{0.03, 0.04, 0.05}, aligned["BTC"])
	assert.Equal(t, []float64{0.10, 0.20, 0.30}, aligned["ETH"])
}

func TestAlignEmpty(t *testing.T) {
	aligned, n := Align(map[string][]float64{"BTC": {}})
	assert.Equal(t, 0, n)
	assert.Empty(t, aligned)
}

func TestValuateComputesWeights(t *testing.T) {
	portfolio := models.Portfolio{
		ID: "p1",
		Holdings: []models.Holding{
			{Symbol: "BTC", Quantity: 1},
			{Symbol: "ETH", Quantity: 10},
		},
	}
	priceData := map[string]models.PriceData{
		"BTC": {CurrentPrice: 50000},
		"ETH": {CurrentPrice: 3000},
	}

	valuation := Valuate(portfolio, priceData)

	assert.InDelta(t, 80000, valuation.TotalValue, 1e-9)
	require.Len(t, valuation.Assets, 2)
	assert.InDelta(t, 0.625, valuation.Assets[0].Weight, 1e-9)
	assert.InDelta(t, 0.375, valuation.Assets[1].Weight, 1e-9)
}

func TestValuateExcludesNegativeQuantities(t *testing.T) {
	portfolio := models.Portfolio{
		ID: "p1",
		Holdings: []models.Holding{
			{Symbol: "BTC", Quantity: 1},
			{Symbol: "ETH", Quantity: -3},
		},
	}
	priceData := map[string]models.PriceData{
		"BTC": {CurrentPrice: 100},
		"ETH": {CurrentPrice: 100},
	}

	valuation := Valuate(portfolio, priceData)

	require.Len(t, valuation.Assets, 1)
	assert.Equal(t, "BTC", valuation.Assets[0].Symbol)
	assert.InDelta(t, 100, valuation.TotalValue, 1e-9)
}

func TestValuateUnknownSymbolValuesZero(t *testing.T) {
	portfolio := models.Portfolio{
		ID:       "p1",
		Holdings: []models.Holding{{Symbol: "XYZ", Quantity: 5}},
	}

	valuation := Valuate(portfolio, map[string]models.PriceData{})

	require.Len(t, valuation.Assets, 1)
	assert.Zero(t, valuation.TotalValue)
	assert.Zero(t, valuation.Assets[0].Weight)
}

func TestCurrentPriceFallsBackToLastValidObservation(t *testing.T) {
	data := models.PriceData{Prices: pricePoints(100, 110, 0)}
	assert.InDelta(t, 110, CurrentPrice(data), 1e-9)

	data.CurrentPrice = 120
	assert.InDelta(t, 120, CurrentPrice(data), 1e-9)
}

func TestPortfolioReturnsFrozenWeights(t *testing.T) {
	portfolio := models.Portfolio{
		ID: "p1",
		Holdings: []models.Holding{
			{Symbol: "UP", Quantity: 1},
			{Symbol: "DOWN", Quantity: 1},
		},
	}
	// Equal current values, so the frozen weights are 0.5 each.
	priceData := map[string]models.PriceData{
		"UP":   {CurrentPrice: 100, Prices: pricePoints(100, 110, 121)},
		"DOWN": {CurrentPrice: 100, Prices: pricePoints(100, 90, 81)},
	}

	valuation := Valuate(portfolio, priceData)
	returns := PortfolioReturns(valuation, priceData)

	require.Len(t, returns, 2)
	// 0.5*0.10 + 0.5*(-0.10) = 0 at every index.
	assert.InDelta(t, 0, returns[0], 1e-9)
	assert.InDelta(t, 0, returns[1], 1e-9)
}

func TestPortfolioReturnsNoData(t *testing.T) {
	portfolio := models.Portfolio{
		ID:       "p1",
		Holdings: []models.Holding{{Symbol: "BTC", Quantity: 1}},
	}
	valuation := Valuate(portfolio, nil)

	assert.Nil(t, PortfolioReturns(valuation, nil))
}
