package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Equal(t, 5, cfg.DefaultRecommendations)
	assert.Equal(t, 50, cfg.MaxRecommendations)
	assert.Equal(t, 0.2, cfg.DiversityFactor)
	assert.Equal(t, 5, cfg.MinInteractionsForCF)
	assert.Equal(t, 5*time.Second, cfg.SimilarityTimeout)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("DIVERSITY_FACTOR", "0.5")
	t.Setenv("MIN_INTERACTIONS_FOR_CF", "8")
	t.Setenv("SIMILARITY_TIMEOUT", "250ms")
	t.Setenv("SEED_DEMO_DATA", "false")

	cfg := Load()

	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, 0.5, cfg.DiversityFactor)
	assert.Equal(t, 8, cfg.MinInteractionsForCF)
	assert.Equal(t, 250*time.Millisecond, cfg.SimilarityTimeout)
	assert.False(t, cfg.SeedDemoData)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("MAX_RECOMMENDATIONS", "many")
	t.Setenv("SIMILARITY_TIMEOUT", "soon")

	cfg := Load()

	assert.Equal(t, 50, cfg.MaxRecommendations)
	assert.Equal(t, 5*time.Second, cfg.SimilarityTimeout)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := Load()
		cfg.Environment = "development"
		return cfg
	}

	t.Run("defaults pass", func(t *testing.T) {
		require.NoError(t, base().Validate())
	})

	t.Run("default secret rejected in production", func(t *testing.T) {
		cfg := base()
		cfg.Environment = "production"
		cfg.DatabaseURL = "postgres://localhost/app"
		require.Error(t, cfg.Validate())
	})

	t.Run("database required in production", func(t *testing.T) {
		cfg := base()
		cfg.Environment = "production"
		cfg.JWTSecret = "rotated"
		require.Error(t, cfg.Validate())
	})

	t.Run("diversity factor bounds", func(t *testing.T) {
		cfg := base()
		cfg.DiversityFactor = 1.5
		require.Error(t, cfg.Validate())
	})

	t.Run("list size sanity", func(t *testing.T) {
		cfg := base()
		cfg.MaxRecommendations = 2
		cfg.DefaultRecommendations = 5
		require.Error(t, cfg.Validate())
	})
}
