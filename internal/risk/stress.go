package risk

import (
	"math"

	"github.com/xplaincrypto/risk-engine/pkg/models"
	"github.com/xplaincrypto/risk-engine/pkg/utils/logger"
)

// StressEngine applies named shock scenarios to a portfolio valuation and
// measures the impact on portfolio value.
type StressEngine struct {
	params Params
	log    *logger.Logger
}

// NewStressEngine creates a stress engine with the given parameters.
func NewStressEngine(params Params) *StressEngine {
	return &StressEngine{
		params: params.withDefaults(),
		log:    logger.GetLogger("risk.stress"),
	}
}

// Run applies every scenario to the valuation. When scenarios is empty the
// configured defaults are used. A zero starting portfolio value reports a
// percentage loss of 0 for every scenario rather than failing.
func (e *StressEngine) Run(valuation models.PortfolioValuation, scenarios []models.StressScenario) models.StressReport {
	if len(scenarios) == 0 {
		scenarios = e.params.Scenarios
	}

	report := models.StressReport{
		Scenarios: make([]models.ScenarioResult, 0, len(scenarios)),
	}
	if len(scenarios) == 0 {
		report.Error = "no stress scenarios to apply"
		report.ResilienceScore = 100
		return report
	}

	totalLoss := 0.0
	for _, scenario := range scenarios {
		result := e.apply(valuation, scenario)
		report.Scenarios = append(report.Scenarios, result)
		totalLoss += result.PercentageLoss

		// Worst case is the lowest resulting value; strict comparison keeps
		// the first-encountered scenario on ties.
		if report.WorstCase == nil || result.ValueAfter < report.WorstCase.ValueAfter {
			worst := result
			report.WorstCase = &worst
		}
	}

	avgLoss := totalLoss / float64(len(scenarios))
	report.ResilienceScore = finite(math.Max(0, 100-avgLoss))
	return report
}

// apply shocks every holding and totals the surviving value.
func (e *StressEngine) apply(valuation models.PortfolioValuation, scenario models.StressScenario) models.ScenarioResult {
	result := models.ScenarioResult{
		Name:         scenario.Name,
		Description:  scenario.Description,
		ValueBefore:  valuation.TotalValue,
		AssetImpacts: make(map[string]models.AssetImpact, len(valuation.Assets)),
	}

	for _, asset := range valuation.Assets {
		shock := ResolveShock(scenario.Shocks, asset.Symbol, asset.Tags)
		shockedPrice := asset.CurrentPrice * (1 + shock)
		shockedValue := asset.Quantity * shockedPrice
		result.ValueAfter += shockedValue

		result.AssetImpacts[asset.Symbol] = models.AssetImpact{
			OriginalPrice: asset.CurrentPrice,
			ShockedPrice:  shockedPrice,
			ShockApplied:  shock,
			ValueChange:   shockedValue - asset.Value,
		}
	}

	result.AbsoluteLoss = result.ValueBefore - result.ValueAfter
	if result.ValueBefore > 0 {
		result.PercentageLoss = finite(result.AbsoluteLoss / result.ValueBefore * 100)
	}
	return result
}

// ResolveShock returns the single shock that applies to a holding, using a
// fixed precedence: exact symbol, then any of the holding's tags, then the
// "all" wildcard, then "others", then no shock.
func ResolveShock(shocks models.StressShocks, symbol string, tags []string) float64 {
	if shock, ok := shocks[symbol]; ok {
		return shock
	}
	for _, tag := range tags {
		if tag == models.ShockAll || tag == models.ShockOthers {
			continue
		}
		if shock, ok := shocks[tag]; ok {
			return shock
		}
	}
	if shock, ok := shocks[models.ShockAll]; ok {
		return shock
	}
	if shock, ok := shocks[models.ShockOthers]; ok {
		return shock
	}
	return 0
}
