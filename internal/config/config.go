// internal/config/config.go
// Centralized configuration management
// Loads from environment variables with sensible defaults

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server
	Port        string
	Environment string
	BaseURL     string

	// Database
	DatabaseURL string
	RedisURL    string

	// Security
	JWTSecret         string
	AccessTokenExpiry time.Duration

	// Recommendation engine
	DefaultRecommendations int           // default list size when the caller omits a limit
	MaxRecommendations     int           // hard cap per request
	DiversityFactor        float64       // weight of the diversification pass
	MinInteractionsForCF   int           // collaborative filtering gate
	SimilarityTimeout      time.Duration // deadline on the item-similarity pass
	SimilarityCacheTTL     time.Duration // redis snapshot TTL
	SeedDemoData           bool          // preload the in-memory catalog with demo projects

	// Scheduler
	EnableScheduler    bool
	CacheWarmInterval  time.Duration
	AnalyticsLogHour   int
	AnalyticsLogMinute int
}

// Load reads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		// Server
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		BaseURL:     getEnv("BASE_URL", ""),

		// Database
		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", ""),

		// Security
		JWTSecret:         getEnv("JWT_SECRET", "change-this-in-production"),
		AccessTokenExpiry: getEnvDuration("ACCESS_TOKEN_EXPIRY", "1h"),

		// Recommendation engine
		DefaultRecommendations: getEnvInt("DEFAULT_RECOMMENDATIONS", 5),
		MaxRecommendations:     getEnvInt("MAX_RECOMMENDATIONS", 50),
		DiversityFactor:        getEnvFloat("DIVERSITY_FACTOR", 0.2),
		MinInteractionsForCF:   getEnvInt("MIN_INTERACTIONS_FOR_CF", 5),
		SimilarityTimeout:      getEnvDuration("SIMILARITY_TIMEOUT", "5s"),
		SimilarityCacheTTL:     getEnvDuration("SIMILARITY_CACHE_TTL", "10m"),
		SeedDemoData:           getEnvBool("SEED_DEMO_DATA", true),

		// Scheduler
		EnableScheduler:    getEnvBool("ENABLE_SCHEDULER", true),
		CacheWarmInterval:  getEnvDuration("CACHE_WARM_INTERVAL", "1h"),
		AnalyticsLogHour:   getEnvInt("ANALYTICS_LOG_HOUR", 2),
		AnalyticsLogMinute: getEnvInt("ANALYTICS_LOG_MINUTE", 0),
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = fmt.Sprintf("http://localhost:%s", cfg.Port)
	}

	return cfg
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWTSecret == "change-this-in-production" && c.Environment == "production" {
		return fmt.Errorf("JWT secret must be changed for production")
	}

	if c.DefaultRecommendations < 1 {
		return fmt.Errorf("DEFAULT_RECOMMENDATIONS must be at least 1")
	}

	if c.MaxRecommendations < c.DefaultRecommendations {
		return fmt.Errorf("MAX_RECOMMENDATIONS must be >= DEFAULT_RECOMMENDATIONS")
	}

	if c.DiversityFactor < 0 || c.DiversityFactor > 1 {
		return fmt.Errorf("DIVERSITY_FACTOR must be within [0,1]")
	}

	if c.MinInteractionsForCF < 0 {
		return fmt.Errorf("MIN_INTERACTIONS_FOR_CF must not be negative")
	}

	if c.DatabaseURL == "" && c.Environment == "production" {
		return fmt.Errorf("DATABASE_URL is required in production")
	}

	return nil
}

// IsDevelopment returns true when running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key, defaultValue string) time.Duration {
	value := getEnv(key, defaultValue)
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	d, _ := time.ParseDuration(defaultValue)
	return d
}
