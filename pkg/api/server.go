package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xplaincrypto/risk-engine/pkg/metrics"
	"github.com/xplaincrypto/risk-engine/pkg/utils/logger"
)

// Config holds the configuration for the API server.
type Config struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Environment  string
}

// Server exposes the risk engine over HTTP.
type Server struct {
	config     Config
	engine     *gin.Engine
	httpServer *http.Server
	log        *logger.Logger
}

// NewServer creates the API server and wires all routes.
func NewServer(config Config, handlers *Handlers, recorder *metrics.Recorder) *Server {
	if config.ReadTimeout <= 0 {
		config.ReadTimeout = 10 * time.Second
	}
	if config.WriteTimeout <= 0 {
		config.WriteTimeout = 10 * time.Second
	}

	if config.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(LoggingMiddleware())
	engine.Use(MetricsMiddleware(recorder))
	engine.Use(RecoveryMiddleware())

	server := &Server{
		config: config,
		engine: engine,
		log:    logger.GetLogger("api.server"),
	}
	server.setupRoutes(handlers)
	return server
}

func (s *Server) setupRoutes(h *Handlers) {
	s.engine.GET("/health", h.HealthHandler)
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.engine.Group("/api/v1")

	portfolios := v1.Group("/portfolios")
	portfolios.GET("", h.ListPortfoliosHandler)
	portfolios.POST("", h.CreatePortfolioHandler)
	portfolios.GET("/:id", h.GetPortfolioHandler)
	portfolios.DELETE("/:id", h.DeletePortfolioHandler)

	v1.PUT("/prices/:symbol", h.SetPricesHandler)

	riskGroup := v1.Group("/risk")
	riskGroup.POST("/assess", h.AssessHandler)
	riskGroup.GET("/portfolios/:id", h.AssessPortfolioHandler)
	riskGroup.POST("/portfolios/:id/var", h.VaRHandler)
	riskGroup.POST("/portfolios/:id/stresstest", h.StressTestHandler)
	riskGroup.GET("/assets/:symbol", h.AssetRiskHandler)
}

// Start runs the HTTP server until it is shut down.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.log.Infof("starting API server on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	s.log.Info("stopping API server")
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the underlying handler for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}
