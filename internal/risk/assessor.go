package risk

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/xplaincrypto/risk-engine/internal/series"
	"github.com/xplaincrypto/risk-engine/pkg/models"
	"github.com/xplaincrypto/risk-engine/pkg/utils/logger"
)

// Assessor composes the full risk-assessment pipeline. All stages are pure
// functions over immutable inputs; the assessor only sequences them and
// isolates their failures. A failed stage leaves an error marker on its own
// section of the result and never prevents sibling stages from running.
type Assessor struct {
	params       Params
	profiler     *AssetProfiler
	correlation  *CorrelationAnalyzer
	varEstimator *VaREstimator
	stress       *StressEngine
	scorer       *Scorer
	log          *logger.Logger
}

// NewAssessor creates an assessor. Zero-valued params fields fall back to
// the engine defaults.
func NewAssessor(params Params) *Assessor {
	params = params.withDefaults()
	return &Assessor{
		params:       params,
		profiler:     NewAssetProfiler(params),
		correlation:  NewCorrelationAnalyzer(params),
		varEstimator: NewVaREstimator(params),
		stress:       NewStressEngine(params),
		scorer:       NewScorer(params),
		log:          logger.GetLogger("risk.assessor"),
	}
}

// AssessPortfolioRisk runs the complete assessment for a portfolio against
// already-materialized price data. It always returns a usable aggregate:
// sections that could not be computed carry their own error markers, and
// the composite score degrades to the low-confidence default when nothing
// was computable.
func (a *Assessor) AssessPortfolioRisk(ctx context.Context, portfolio models.Portfolio, priceData map[string]models.PriceData) *models.RiskAssessment {
	start := time.Now()

	assessment := &models.RiskAssessment{
		PortfolioID: portfolio.ID,
		Timestamp:   time.Now().UTC(),
		AssetRisks:  make(map[string]models.AssetRiskProfile),
	}

	if msg := a.guard("valuation", func() {
		assessment.Valuation = series.Valuate(portfolio, priceData)
	}); msg != "" {
		assessment.Error = msg
	}
	assessment.TotalValueUSD = assessment.Valuation.TotalValue

	returns := series.SymbolReturns(priceData)
	a.profileAssets(ctx, assessment, returns)

	var portfolioReturns []float64
	if msg := a.guard("portfolio returns", func() {
		portfolioReturns = series.PortfolioReturns(assessment.Valuation, priceData)
	}); msg != "" {
		assessment.Error = msg
	}

	dailyRiskFree := a.params.RiskFreeRate / tradingDays
	if msg := a.guard("risk metrics", func() {
		assessment.RiskMetrics = PortfolioMetrics(portfolioReturns, dailyRiskFree)
	}); msg != "" {
		assessment.RiskMetrics = models.PortfolioRiskMetrics{Error: msg}
	}

	if msg := a.guard("correlation analysis", func() {
		assessment.Correlation = a.correlation.Analyze(assessment.Valuation, returns)
	}); msg != "" {
		assessment.Correlation = models.CorrelationReport{DiversificationRatio: 1.0, Error: msg}
	}

	if msg := a.guard("VaR estimation", func() {
		assessment.VaR = a.varEstimator.Estimate(portfolioReturns, assessment.Valuation.TotalValue, a.params.ConfidenceLevels)
	}); msg != "" {
		assessment.VaR = models.VaRReport{Methodology: methodologyHistorical, Error: msg}
	}

	if msg := a.guard("stress testing", func() {
		assessment.StressTest = a.stress.Run(assessment.Valuation, nil)
	}); msg != "" {
		assessment.StressTest = models.StressReport{Error: msg}
	}

	assessment.RiskScore, assessment.RiskLevel, assessment.LowConfidence = a.scorer.Score(assessment)
	assessment.Recommendations = GenerateRecommendations(assessment)

	a.log.Infof("assessed portfolio %s in %v: score=%.1f level=%s value=%.2f",
		portfolio.ID, time.Since(start), assessment.RiskScore, assessment.RiskLevel, assessment.TotalValueUSD)
	return assessment
}

// AssessAssetRisk profiles a single symbol independently of any portfolio.
func (a *Assessor) AssessAssetRisk(symbol string, data models.PriceData) models.AssetRiskProfile {
	var profile models.AssetRiskProfile
	if msg := a.guard("asset profiling", func() {
		profile = a.profiler.Profile(symbol, 1.0, series.Returns(data.Prices))
	}); msg != "" {
		profile = models.AssetRiskProfile{
			Symbol:    symbol,
			BetaProxy: 1.0,
			RiskLevel: models.RiskLevelUnknown,
			Error:     msg,
		}
	}
	return profile
}

// CalculateVaR is the standalone VaR entry point, usable without the full
// orchestration. A nil confidences slice selects the configured defaults.
func (a *Assessor) CalculateVaR(portfolio models.Portfolio, priceData map[string]models.PriceData, confidences []float64) models.VaRReport {
	var report models.VaRReport
	if msg := a.guard("VaR estimation", func() {
		valuation := series.Valuate(portfolio, priceData)
		portfolioReturns := series.PortfolioReturns(valuation, priceData)
		report = a.varEstimator.Estimate(portfolioReturns, valuation.TotalValue, confidences)
	}); msg != "" {
		report = models.VaRReport{Methodology: methodologyHistorical, Error: msg}
	}
	return report
}

// PerformStressTest is the standalone stress-test entry point. A nil
// scenarios slice selects the configured defaults.
func (a *Assessor) PerformStressTest(portfolio models.Portfolio, priceData map[string]models.PriceData, scenarios []models.StressScenario) models.StressReport {
	var report models.StressReport
	if msg := a.guard("stress testing", func() {
		valuation := series.Valuate(portfolio, priceData)
		report = a.stress.Run(valuation, scenarios)
	}); msg != "" {
		report = models.StressReport{Error: msg}
	}
	return report
}

// Params returns the parameters the assessor was constructed with.
func (a *Assessor) Params() Params {
	return a.params
}

// profileAssets fans per-asset profiling out across a bounded worker group.
// The computations are independent; the join barrier is the only
// synchronization and correctness does not depend on parallel execution.
func (a *Assessor) profileAssets(ctx context.Context, assessment *models.RiskAssessment, returns map[string][]float64) {
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(a.params.WorkerCount)

	var mu sync.Mutex
	for _, asset := range assessment.Valuation.Assets {
		asset := asset
		g.Go(func() error {
			var profile models.AssetRiskProfile
			if msg := a.guard("asset profiling", func() {
				profile = a.profiler.Profile(asset.Symbol, asset.Weight, returns[asset.Symbol])
			}); msg != "" {
				profile = models.AssetRiskProfile{
					Symbol:    asset.Symbol,
					Weight:    asset.Weight,
					BetaProxy: 1.0,
					RiskLevel: models.RiskLevelUnknown,
					Error:     msg,
				}
			}
			mu.Lock()
			assessment.AssetRisks[asset.Symbol] = profile
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
}

// guard runs one pipeline stage and converts a panic into an error marker so
// a failing stage cannot take its siblings down with it.
func (a *Assessor) guard(stage string, fn func()) (errMsg string) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Errorf("%s failed: %v", stage, r)
			errMsg = fmt.Sprintf("unexpected failure in %s: %v", stage, r)
		}
	}()
	fn()
	return ""
}
