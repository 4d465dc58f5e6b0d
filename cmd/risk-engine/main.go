package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xplaincrypto/risk-engine/config"
	"github.com/xplaincrypto/risk-engine/internal/kafka"
	"github.com/xplaincrypto/risk-engine/internal/risk"
	"github.com/xplaincrypto/risk-engine/internal/store"
	"github.com/xplaincrypto/risk-engine/pkg/api"
	"github.com/xplaincrypto/risk-engine/pkg/metrics"
	"github.com/xplaincrypto/risk-engine/pkg/utils/logger"
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.GetLogger("main").Fatalf("failed to load configuration: %v", err)
	}

	logger.Init(cfg.App.LogLevel, cfg.App.Environment)
	log := logger.GetLogger("risk-engine.main")
	log.Infof("starting %s", cfg.App.Name)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	recorder := metrics.NewRecorder()
	portfolios := store.NewPortfolioStore()
	prices := store.NewPriceStore()

	assessor := risk.NewAssessor(riskParams(cfg.Risk))

	var publisher *kafka.Publisher
	if cfg.Kafka.Enabled {
		publisher = kafka.NewPublisher(kafka.PublisherConfig{
			Brokers:      cfg.Kafka.Brokers,
			Topic:        cfg.Kafka.Topic,
			BatchTimeout: cfg.Kafka.BatchTimeout,
		})
		defer publisher.Close()
		log.Infof("publishing assessments to %s", cfg.Kafka.Topic)
	}

	handlers := api.NewHandlers(assessor, portfolios, prices, recorder)
	server := api.NewServer(api.Config{
		Host:         cfg.API.Host,
		Port:         cfg.API.Port,
		ReadTimeout:  cfg.API.ReadTimeout,
		WriteTimeout: cfg.API.WriteTimeout,
		Environment:  cfg.App.Environment,
	}, handlers, recorder)

	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("API server stopped: %v", err)
			cancel()
		}
	}()

	go reassessLoop(ctx, cfg, assessor, portfolios, prices, publisher, recorder, log)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case s := <-sig:
		log.Infof("received signal %v, shutting down", s)
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.API.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Stop(shutdownCtx); err != nil {
		log.Errorf("shutdown error: %v", err)
	}
	log.Info("risk engine stopped")
}

// reassessLoop periodically re-runs the assessment for every stored
// portfolio so gauges and downstream consumers stay current as price
// histories are refreshed.
func reassessLoop(
	ctx context.Context,
	cfg *config.Config,
	assessor *risk.Assessor,
	portfolios *store.PortfolioStore,
	prices *store.PriceStore,
	publisher *kafka.Publisher,
	recorder *metrics.Recorder,
	log *logger.Logger,
) {
	interval := cfg.Risk.ReassessmentInterval
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		for _, portfolio := range portfolios.List() {
			symbols := make([]string, 0, len(portfolio.Holdings))
			for _, holding := range portfolio.Holdings {
				symbols = append(symbols, holding.Symbol)
			}

			start := time.Now()
			assessment := assessor.AssessPortfolioRisk(ctx, portfolio, prices.ForSymbols(symbols))

			status := "ok"
			if assessment.Error != "" {
				status = "degraded"
			}
			recorder.RecordAssessment(assessment.PortfolioID, status, time.Since(start))
			recorder.RecordRiskScore(assessment.PortfolioID, assessment.RiskScore)
			recorder.RecordResilience(assessment.PortfolioID, assessment.StressTest.ResilienceScore)

			if publisher != nil && cfg.Risk.PublishAssessments {
				if err := publisher.PublishAssessment(ctx, assessment); err != nil {
					log.Warnf("failed to publish assessment for %s: %v", assessment.PortfolioID, err)
				}
			}
		}
	}
}

func riskParams(cfg config.RiskConfig) risk.Params {
	return risk.Params{
		RiskFreeRate:      cfg.RiskFreeRate,
		MarketVolatility:  cfg.MarketVolatility,
		VolatilityWindow:  cfg.VolatilityWindow,
		MinCorrelationObs: cfg.MinCorrelationObs,
		MinVaRObs:         cfg.MinVarObs,
		HighCorrelation:   cfg.HighCorrelation,
		ConfidenceLevels:  cfg.ConfidenceLevels,
		Weights: risk.ScoreWeights{
			Volatility:  cfg.VolatilityWeight,
			VaR:         cfg.VarWeight,
			Correlation: cfg.CorrelationWeight,
			Stress:      cfg.StressWeight,
		},
		Scenarios:   risk.DefaultScenarios(),
		WorkerCount: cfg.WorkerCount,
	}
}
