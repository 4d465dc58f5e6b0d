package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xplaincrypto/risk-engine/internal/risk"
	"github.com/xplaincrypto/risk-engine/internal/store"
	"github.com/xplaincrypto/risk-engine/pkg/metrics"
	"github.com/xplaincrypto/risk-engine/pkg/models"
	"github.com/xplaincrypto/risk-engine/pkg/utils/errors"
	"github.com/xplaincrypto/risk-engine/pkg/utils/logger"
)

// Handlers contains all HTTP handlers for the API.
type Handlers struct {
	assessor   *risk.Assessor
	portfolios *store.PortfolioStore
	prices     *store.PriceStore
	recorder   *metrics.Recorder
	log        *logger.Logger
}

// NewHandlers creates the API handlers.
func NewHandlers(assessor *risk.Assessor, portfolios *store.PortfolioStore, prices *store.PriceStore, recorder *metrics.Recorder) *Handlers {
	return &Handlers{
		assessor:   assessor,
		portfolios: portfolios,
		prices:     prices,
		recorder:   recorder,
		log:        logger.GetLogger("api.handlers"),
	}
}

// HealthHandler reports service liveness.
func (h *Handlers) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// AssessRequest is an inline assessment request: a portfolio plus the price
// data to assess it against.
type AssessRequest struct {
	Portfolio models.Portfolio            `json:"portfolio" binding:"required"`
	PriceData map[string]models.PriceData `json:"price_data" binding:"required"`
}

// AssessHandler runs a full assessment on an inline portfolio.
func (h *Handlers) AssessHandler(c *gin.Context) {
	var req AssessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assessment request: " + err.Error()})
		return
	}

	assessment := h.runAssessment(c, req.Portfolio, req.PriceData)
	c.JSON(http.StatusOK, assessment)
}

// AssessPortfolioHandler runs a full assessment on a stored portfolio using
// stored price histories.
func (h *Handlers) AssessPortfolioHandler(c *gin.Context) {
	portfolio, priceData, ok := h.storedPortfolio(c)
	if !ok {
		return
	}

	assessment := h.runAssessment(c, portfolio, priceData)
	c.JSON(http.StatusOK, assessment)
}

// VaRRequest selects confidence levels for a standalone VaR calculation.
type VaRRequest struct {
	ConfidenceLevels []float64 `json:"confidence_levels"`
}

// VaRHandler runs the standalone VaR calculation on a stored portfolio.
func (h *Handlers) VaRHandler(c *gin.Context) {
	portfolio, priceData, ok := h.storedPortfolio(c)
	if !ok {
		return
	}

	var req VaRRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid VaR request: " + err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, h.assessor.CalculateVaR(portfolio, priceData, req.ConfidenceLevels))
}

// StressTestRequest optionally overrides the default stress scenarios.
type StressTestRequest struct {
	Scenarios []models.StressScenario `json:"scenarios"`
}

// StressTestHandler runs the standalone stress test on a stored portfolio.
func (h *Handlers) StressTestHandler(c *gin.Context) {
	portfolio, priceData, ok := h.storedPortfolio(c)
	if !ok {
		return
	}

	var req StressTestRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid stress test request: " + err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, h.assessor.PerformStressTest(portfolio, priceData, req.Scenarios))
}

// AssetRiskHandler profiles a single symbol from stored price history.
func (h *Handlers) AssetRiskHandler(c *gin.Context) {
	symbol := c.Param("symbol")

	data, err := h.prices.Get(symbol)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.assessor.AssessAssetRisk(symbol, data))
}

// CreatePortfolioHandler stores or replaces a portfolio.
func (h *Handlers) CreatePortfolioHandler(c *gin.Context) {
	var portfolio models.Portfolio
	if err := c.ShouldBindJSON(&portfolio); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid portfolio: " + err.Error()})
		return
	}

	if err := h.portfolios.Save(portfolio); err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": portfolio.ID})
}

// ListPortfoliosHandler returns all stored portfolios.
func (h *Handlers) ListPortfoliosHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.portfolios.List())
}

// GetPortfolioHandler returns one stored portfolio.
func (h *Handlers) GetPortfolioHandler(c *gin.Context) {
	portfolio, err := h.portfolios.Get(c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, portfolio)
}

// DeletePortfolioHandler removes a stored portfolio.
func (h *Handlers) DeletePortfolioHandler(c *gin.Context) {
	if err := h.portfolios.Delete(c.Param("id")); err != nil {
		h.renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetPricesHandler loads a price history for one symbol into the store.
func (h *Handlers) SetPricesHandler(c *gin.Context) {
	symbol := c.Param("symbol")

	var data models.PriceData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price data: " + err.Error()})
		return
	}

	if err := h.prices.Set(symbol, data); err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"symbol": symbol, "points": len(data.Prices)})
}

func (h *Handlers) runAssessment(c *gin.Context, portfolio models.Portfolio, priceData map[string]models.PriceData) *models.RiskAssessment {
	start := time.Now()
	assessment := h.assessor.AssessPortfolioRisk(c.Request.Context(), portfolio, priceData)

	status := "ok"
	if assessment.Error != "" {
		status = "degraded"
	}
	h.recorder.RecordAssessment(assessment.PortfolioID, status, time.Since(start))
	h.recorder.RecordRiskScore(assessment.PortfolioID, assessment.RiskScore)
	h.recorder.RecordResilience(assessment.PortfolioID, assessment.StressTest.ResilienceScore)
	for _, estimate := range assessment.VaR.Estimates {
		if estimate.Error == "" {
			h.recorder.RecordVaR(assessment.PortfolioID, estimate.Confidence, estimate.Historical.Currency)
		}
	}
	return assessment
}

func (h *Handlers) storedPortfolio(c *gin.Context) (models.Portfolio, map[string]models.PriceData, bool) {
	portfolio, err := h.portfolios.Get(c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return models.Portfolio{}, nil, false
	}

	symbols := make([]string, 0, len(portfolio.Holdings))
	for _, holding := range portfolio.Holdings {
		symbols = append(symbols, holding.Symbol)
	}
	return portfolio, h.prices.ForSymbols(symbols), true
}

func (h *Handlers) renderError(c *gin.Context, err error) {
	switch errors.KindOf(err) {
	case errors.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.KindInvalidInput:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.log.Errorf("request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
