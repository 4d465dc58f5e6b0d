package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder registers and records the engine's Prometheus metrics.
type Recorder struct {
	// API metrics
	apiRequestCounter   *prometheus.CounterVec
	apiLatencyHistogram *prometheus.HistogramVec

	// Assessment metrics
	assessmentCounter *prometheus.CounterVec
	assessmentLatency *prometheus.HistogramVec

	// Risk result gauges
	riskScoreGauge  *prometheus.GaugeVec
	varGauge        *prometheus.GaugeVec
	resilienceGauge *prometheus.GaugeVec
}

// NewRecorder creates and registers all metrics on the default registry.
func NewRecorder() *Recorder {
	return &Recorder{
		apiRequestCounter: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "risk_api_requests_total",
				Help: "The total number of API requests",
			},
			[]string{"method", "path", "status"},
		),
		apiLatencyHistogram: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "risk_api_latency_seconds",
				Help:    "API request latency distribution",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 15),
			},
			[]string{"method", "path"},
		),
		assessmentCounter: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "risk_assessments_total",
				Help: "The total number of risk assessments performed",
			},
			[]string{"portfolio_id", "status"},
		),
		assessmentLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "risk_assessment_duration_seconds",
				Help:    "Time taken to assess a portfolio",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
			},
			[]string{"portfolio_id"},
		),
		riskScoreGauge: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "risk_portfolio_score",
				Help: "Latest composite risk score (0-100) per portfolio",
			},
			[]string{"portfolio_id"},
		),
		varGauge: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "risk_portfolio_var_currency",
				Help: "Latest historical VaR in currency units per portfolio and confidence level",
			},
			[]string{"portfolio_id", "confidence"},
		),
		resilienceGauge: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "risk_portfolio_resilience_score",
				Help: "Latest stress-test resilience score (0-100) per portfolio",
			},
			[]string{"portfolio_id"},
		),
	}
}

// RecordAPIRequest records one handled HTTP request.
func (r *Recorder) RecordAPIRequest(method, path string, status int, latency time.Duration) {
	r.apiRequestCounter.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	r.apiLatencyHistogram.WithLabelValues(method, path).Observe(latency.Seconds())
}

// RecordAssessment records one completed assessment.
func (r *Recorder) RecordAssessment(portfolioID, status string, latency time.Duration) {
	r.assessmentCounter.WithLabelValues(portfolioID, status).Inc()
	r.assessmentLatency.WithLabelValues(portfolioID).Observe(latency.Seconds())
}

// RecordRiskScore publishes the latest composite score for a portfolio.
func (r *Recorder) RecordRiskScore(portfolioID string, score float64) {
	r.riskScoreGauge.WithLabelValues(portfolioID).Set(score)
}

// RecordVaR publishes the latest VaR currency figure for a confidence level.
func (r *Recorder) RecordVaR(portfolioID string, confidence, value float64) {
	r.varGauge.WithLabelValues(portfolioID, strconv.FormatFloat(confidence, 'f', -1, 64)).Set(value)
}

// RecordResilience publishes the latest stress resilience score.
func (r *Recorder) RecordResilience(portfolioID string, score float64) {
	r.resilienceGauge.WithLabelValues(portfolioID).Set(score)
}
