package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config for the whole application.
type Config struct {
	App     AppConfig
	API     APIConfig
	Kafka   KafkaConfig
	Risk    RiskConfig
	Metrics MetricsConfig
}

// General application configuration.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
}

// Configuration for the API server.
type APIConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Configuration for publishing completed assessments.
type KafkaConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Brokers      []string      `mapstructure:"brokers"`
	Topic        string        `mapstructure:"topic"`
	BatchTimeout time.Duration `mapstructure:"batch_timeout"`
}

// Configuration for the risk engine. All thresholds the assessment pipeline
// uses are set here so tests and deployments can override them.
type RiskConfig struct {
	RiskFreeRate         float64       `mapstructure:"risk_free_rate"`
	MarketVolatility     float64       `mapstructure:"market_volatility"`
	VolatilityWindow     int           `mapstructure:"volatility_window"`
	MinCorrelationObs    int           `mapstructure:"min_correlation_obs"`
	MinVarObs            int           `mapstructure:"min_var_obs"`
	HighCorrelation      float64       `mapstructure:"high_correlation"`
	ConfidenceLevels     []float64     `mapstructure:"confidence_levels"`
	VolatilityWeight     float64       `mapstructure:"volatility_weight"`
	VarWeight            float64       `mapstructure:"var_weight"`
	CorrelationWeight    float64       `mapstructure:"correlation_weight"`
	StressWeight         float64       `mapstructure:"stress_weight"`
	WorkerCount          int           `mapstructure:"worker_count"`
	ReassessmentInterval time.Duration `mapstructure:"reassessment_interval"`
	PublishAssessments   bool          `mapstructure:"publish_assessments"`
}

// Configuration for metrics exposure.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Load reads configuration from ./config/config.yaml (when present) and
// RISK_-prefixed environment variables, on top of built-in defaults.
func Load() (*Config, error) {
	setDefaults()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")

	if err := viper.ReadInConfig(); err != nil {
		// A missing file is fine; defaults and env cover everything.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	viper.SetEnvPrefix("RISK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	// App defaults
	viper.SetDefault("app.name", "risk-engine")
	viper.SetDefault("app.environment", "development")
	viper.SetDefault("app.log_level", "info")

	// API defaults
	viper.SetDefault("api.host", "0.0.0.0")
	viper.SetDefault("api.port", 8080)
	viper.SetDefault("api.read_timeout", "10s")
	viper.SetDefault("api.write_timeout", "10s")
	viper.SetDefault("api.shutdown_timeout", "30s")

	// Kafka defaults
	viper.SetDefault("kafka.enabled", false)
	viper.SetDefault("kafka.brokers", []string{"localhost:9092"})
	viper.SetDefault("kafka.topic", "risk.assessments")
	viper.SetDefault("kafka.batch_timeout", "100ms")

	// Risk defaults
	viper.SetDefault("risk.risk_free_rate", 0.02)
	viper.SetDefault("risk.market_volatility", 0.02)
	viper.SetDefault("risk.volatility_window", 30)
	viper.SetDefault("risk.min_correlation_obs", 10)
	viper.SetDefault("risk.min_var_obs", 30)
	viper.SetDefault("risk.high_correlation", 0.8)
	viper.SetDefault("risk.confidence_levels", []float64{0.95, 0.99})
	viper.SetDefault("risk.volatility_weight", 0.30)
	viper.SetDefault("risk.var_weight", 0.25)
	viper.SetDefault("risk.correlation_weight", 0.20)
	viper.SetDefault("risk.stress_weight", 0.25)
	viper.SetDefault("risk.worker_count", 4)
	viper.SetDefault("risk.reassessment_interval", "5m")
	viper.SetDefault("risk.publish_assessments", true)

	// Metrics defaults
	viper.SetDefault("metrics.enabled", true)
}
