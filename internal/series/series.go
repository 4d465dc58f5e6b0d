// Package series normalizes raw price histories into the return series the
// risk engine computes on. All functions are pure; callers own the inputs.
package series

import (
	"github.com/xplaincrypto/risk-engine/pkg/models"
)

// Returns converts a price series into simple percentage returns
// r_i = (p_i - p_{i-1}) / p_{i-1}. Zero or negative prices are invalid
// records and are excluded before differencing. Fewer than two valid
// observations yield a nil series, which downstream stages treat as
// "insufficient data" rather than an error.
func Returns(points []models.PricePoint) []float64 {
	prices := make([]float64, 0, len(points))
	for _, p := range points {
		if p.Price > 0 {
			prices = append(prices, p.Price)
		}
	}
	if len(prices) < 2 {
		return nil
	}

	returns := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		returns[i-1] = (prices[i] - prices[i-1]) / prices[i-1]
	}
	return returns
}

// SymbolReturns computes return series for every symbol in priceData.
// Symbols without enough valid observations are omitted.
func SymbolReturns(priceData map[string]models.PriceData) map[string][]float64 {
	out := make(map[string][]float64, len(priceData))
	for symbol, data := range priceData {
		if r := Returns(data.Prices); len(r) > 0 {
			out[symbol] = r
		}
	}
	return out
}

// Align truncates every return series to the shortest available length,
// keeping the most recent observations. It returns the aligned series and
// the common length. This is the single alignment step shared by the
// correlation analyzer and the VaR estimator, so both consume identically
// aligned data.
func Align(returns map[string][]float64) (map[string][]float64, int) {
	minLen := 0
	for _, r := range returns {
		if len(r) == 0 {
			continue
		}
		if minLen == 0 || len(r) < minLen {
			minLen = len(r)
		}
	}
	if minLen == 0 {
		return map[string][]float64{}, 0
	}

	aligned := make(map[string][]float64, len(returns))
	for symbol, r := range returns {
		if len(r) == 0 {
			continue
		}
		aligned[symbol] = r[len(r)-minLen:]
	}
	return aligned, minLen
}

// CurrentPrice resolves the valuation price for a symbol: the provided
// current price when positive, otherwise the most recent valid observation.
func CurrentPrice(data models.PriceData) float64 {
	if data.CurrentPrice > 0 {
		return data.CurrentPrice
	}
	for i := len(data.Prices) - 1; i >= 0; i-- {
		if data.Prices[i].Price > 0 {
			return data.Prices[i].Price
		}
	}
	return 0
}

// Valuate computes the current value snapshot of a portfolio. Holdings with
// negative quantities are invalid records and excluded; holdings with no
// price resolve to zero value. Weights sum to 1 when the total value is
// positive and are zero otherwise.
func Valuate(portfolio models.Portfolio, priceData map[string]models.PriceData) models.PortfolioValuation {
	assets := make([]models.AssetValuation, 0, len(portfolio.Holdings))
	totalValue := 0.0

	for _, holding := range portfolio.Holdings {
		if holding.Quantity < 0 {
			continue
		}
		price := CurrentPrice(priceData[holding.Symbol])
		value := holding.Quantity * price
		totalValue += value

		assets = append(assets, models.AssetValuation{
			Symbol:       holding.Symbol,
			Quantity:     holding.Quantity,
			CurrentPrice: price,
			Value:        value,
			Tags:         holding.Tags,
		})
	}

	if totalValue > 0 {
		for i := range assets {
			assets[i].Weight = assets[i].Value / totalValue
		}
	}

	return models.PortfolioValuation{
		Assets:     assets,
		TotalValue: totalValue,
		AssetCount: len(assets),
	}
}

// PortfolioReturns builds the value-weighted portfolio return series: the
// per-index weighted sum of each asset's aligned returns, with weights
// frozen at the current valuation rather than re-weighted historically.
// Assets lacking return data contribute nothing.
func PortfolioReturns(valuation models.PortfolioValuation, priceData map[string]models.PriceData) []float64 {
	held := make(map[string][]float64, len(valuation.Assets))
	for _, asset := range valuation.Assets {
		if r := Returns(priceData[asset.Symbol].Prices); len(r) > 0 {
			held[asset.Symbol] = r
		}
	}

	aligned, n := Align(held)
	if n == 0 {
		return nil
	}

	portfolioReturns := make([]float64, n)
	for _, asset := range valuation.Assets {
		returns, ok := aligned[asset.Symbol]
		if !ok {
			continue
		}
		for i, r := range returns {
			portfolioReturns[i] += asset.Weight * r
		}
	}
	return portfolioReturns
}
