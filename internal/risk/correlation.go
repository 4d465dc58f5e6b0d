package risk

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/xplaincrypto/risk-engine/internal/series"
	"github.com/xplaincrypto/risk-engine/pkg/models"
	"github.com/xplaincrypto/risk-engine/pkg/utils/logger"
)

// CorrelationAnalyzer builds the pairwise Pearson correlation matrix across
// portfolio assets and derives diversification metrics from it.
type CorrelationAnalyzer struct {
	params Params
	log    *logger.Logger
}

// NewCorrelationAnalyzer creates an analyzer with the given parameters.
func NewCorrelationAnalyzer(params Params) *CorrelationAnalyzer {
	return &CorrelationAnalyzer{
		params: params.withDefaults(),
		log:    logger.GetLogger("risk.correlation"),
	}
}

// Analyze requires at least two assets with MinCorrelationObs aligned return
// observations each; anything less yields an explicit insufficient-data
// report rather than a fatal error. A single-asset portfolio reports a
// diversification ratio of exactly 1: no correlation benefit is possible.
func (a *CorrelationAnalyzer) Analyze(valuation models.PortfolioValuation, returns map[string][]float64) models.CorrelationReport {
	symbols := make([]string, 0, len(valuation.Assets))
	held := make(map[string][]float64, len(valuation.Assets))
	for _, asset := range valuation.Assets {
		if r, ok := returns[asset.Symbol]; ok && len(r) > 0 {
			symbols = append(symbols, asset.Symbol)
			held[asset.Symbol] = r
		}
	}

	if len(symbols) < 2 {
		return models.CorrelationReport{
			DiversificationRatio: 1.0,
			Message:              "need at least 2 assets for correlation analysis",
		}
	}

	aligned, n := series.Align(held)
	if n < a.params.MinCorrelationObs {
		a.log.Debugf("correlation analysis skipped: %d aligned observations, need %d", n, a.params.MinCorrelationObs)
		return models.CorrelationReport{
			DiversificationRatio: 1.0,
			Error:                "insufficient data for correlation analysis",
		}
	}

	matrix := make(map[string]map[string]float64, len(symbols))
	for _, s := range symbols {
		matrix[s] = make(map[string]float64, len(symbols))
		matrix[s][s] = 1.0
	}

	var pairs []models.CorrelationPair
	sum, count := 0.0, 0
	maxCorr, minCorr := math.Inf(-1), math.Inf(1)

	for i := 0; i < len(symbols); i++ {
		for j := i + 1; j < len(symbols); j++ {
			corr := finite(stat.Correlation(aligned[symbols[i]], aligned[symbols[j]], nil))
			matrix[symbols[i]][symbols[j]] = corr
			matrix[symbols[j]][symbols[i]] = corr

			sum += corr
			count++
			maxCorr = math.Max(maxCorr, corr)
			minCorr = math.Min(minCorr, corr)

			if math.Abs(corr) >= a.params.HighCorrelation {
				pairs = append(pairs, models.CorrelationPair{
					Asset1:      symbols[i],
					Asset2:      symbols[j],
					Correlation: corr,
				})
			}
		}
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		return math.Abs(pairs[i].Correlation) > math.Abs(pairs[j].Correlation)
	})

	avgCorr := finite(sum / float64(count))

	return models.CorrelationReport{
		Matrix:                matrix,
		AverageCorrelation:    avgCorr,
		MaxCorrelation:        finite(maxCorr),
		MinCorrelation:        finite(minCorr),
		DiversificationRatio:  a.diversificationRatio(valuation, symbols, aligned, n),
		DiversificationLevel:  models.DiversificationForCorrelation(avgCorr),
		HighlyCorrelatedPairs: pairs,
	}
}

// diversificationRatio is the weighted average of individual asset
// volatilities over the portfolio volatility sqrt(w' Sigma w), with Sigma
// the sample covariance matrix of the aligned returns. A ratio of 1 means
// no correlation benefit; it is also the degenerate default when the
// portfolio volatility is 0.
func (a *CorrelationAnalyzer) diversificationRatio(valuation models.PortfolioValuation, symbols []string, aligned map[string][]float64, n int) float64 {
	weights := make([]float64, len(symbols))
	byWeight := make(map[string]float64, len(valuation.Assets))
	for _, asset := range valuation.Assets {
		byWeight[asset.Symbol] = asset.Weight
	}
	for i, s := range symbols {
		weights[i] = byWeight[s]
	}

	data := mat.NewDense(n, len(symbols), nil)
	for j, s := range symbols {
		data.SetCol(j, aligned[s])
	}

	cov := mat.NewSymDense(len(symbols), nil)
	stat.CovarianceMatrix(cov, data, nil)

	w := mat.NewVecDense(len(symbols), weights)
	portfolioVariance := mat.Inner(w, cov, w)
	if portfolioVariance <= 0 {
		return 1.0
	}
	portfolioVolatility := math.Sqrt(portfolioVariance)

	weightedAvgVolatility := 0.0
	for i, s := range symbols {
		weightedAvgVolatility += weights[i] * stat.StdDev(aligned[s], nil)
	}

	return finite(weightedAvgVolatility / portfolioVolatility)
}
