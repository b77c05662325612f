// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	Server        ServerConfig
	Analysis      AnalysisConfig
	Observability ObservabilityConfig
	Profiling     ProfilingConfig
}

// ServerConfig configures the HTTP server
type ServerConfig struct {
	Host               string
	Port               int
	RateLimitPerSecond int
	RateLimitBurst     int
}

// AnalysisConfig configures the portfolio analysis policy.
// Risk thresholds default to the canonical policy (25000 outstanding,
// 30 days overdue) and are currency-agnostic; see the risk package for
// the known limitation around low-value currency units.
type AnalysisConfig struct {
	DefaultCurrency     string
	HighRiskOutstanding float64
	HighRiskOverdueDays int
}

// ObservabilityConfig toggles metrics exposure
type ObservabilityConfig struct {
	MetricsEnabled bool
}

// ProfilingConfig toggles the pprof server
type ProfilingConfig struct {
	Enabled bool
	Port    int
}

// Load reads configuration from environment variables with sane defaults
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:               getEnv("SERVER_HOST", "0.0.0.0"),
			RateLimitPerSecond: getEnvInt("RATE_LIMIT_PER_SECOND", 50),
			RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", 100),
		},
		Analysis: AnalysisConfig{
			DefaultCurrency:     getEnv("DEFAULT_CURRENCY", "USD"),
			HighRiskOverdueDays: getEnvInt("HIGH_RISK_OVERDUE_DAYS", 30),
		},
		Observability: ObservabilityConfig{
			MetricsEnabled: getEnvBool("METRICS_ENABLED", true),
		},
		Profiling: ProfilingConfig{
			Enabled: getEnvBool("PPROF_ENABLED", false),
			Port:    getEnvInt("PPROF_PORT", 6060),
		},
	}

	cfg.Server.Port = getEnvInt("SERVER_PORT", 8080)
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return nil, fmt.Errorf("invalid SERVER_PORT: %d", cfg.Server.Port)
	}

	cfg.Analysis.HighRiskOutstanding = getEnvFloat("HIGH_RISK_OUTSTANDING", 25000)
	if cfg.Analysis.HighRiskOutstanding < 0 {
		return nil, fmt.Errorf("invalid HIGH_RISK_OUTSTANDING: %f", cfg.Analysis.HighRiskOutstanding)
	}
	if cfg.Analysis.HighRiskOverdueDays < 0 {
		return nil, fmt.Errorf("invalid HIGH_RISK_OVERDUE_DAYS: %d", cfg.Analysis.HighRiskOverdueDays)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
