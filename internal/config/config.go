// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/carefinder.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Data file names, matching the bundled data dir
// --------------------------------------------------------------------------

const (
	ScotlandFile   = "scotland.csv"
	RQIAFile       = "rqia.xlsx"
	HIQAFile       = "hiqa.csv"
	TimestampsFile = "timestamps.json"
)

// StaleWarningDays is the data age beyond which freshness reports warn.
const StaleWarningDays = 60

// --------------------------------------------------------------------------
// Config struct, populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting (inbound)
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Upstream APIs
	CQCBaseURL         string
	CQCSubscriptionKey string
	CQCRequestsPerMin  int
	PostcodesBaseURL   string

	// Enrichment
	EnrichBatchSize int

	// Bundled datasets
	DataDir string

	// Cache
	CacheEnabled bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	return &Config{
		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 3000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{"*"}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		CQCBaseURL:         envOr("CQC_API_BASE", "https://api.service.cqc.org.uk/public/v1"),
		CQCSubscriptionKey: envOr("CQC_SUBSCRIPTION_KEY", ""),
		CQCRequestsPerMin:  envInt("CQC_REQUESTS_PER_MINUTE", 600),
		PostcodesBaseURL:   envOr("POSTCODES_API_BASE", "https://api.postcodes.io"),

		EnrichBatchSize: envInt("ENRICH_BATCH_SIZE", 10),

		DataDir: envOr("DATA_DIR", "data"),

		CacheEnabled: envBool("CACHE_ENABLED", true),
	}, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
