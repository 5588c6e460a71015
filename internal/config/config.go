package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata" // timezone resolution must not depend on the host

	"github.com/atelier-ops/content-engine/internal/balance"
	"github.com/atelier-ops/content-engine/internal/models"
	"github.com/atelier-ops/content-engine/internal/queue"
	"github.com/atelier-ops/content-engine/internal/scoring"
	"github.com/atelier-ops/content-engine/internal/similarity"
)

// Config holds all application configuration
type Config struct {
	// Engine tuning
	Engine EngineConfig

	// Snapshot source
	Snapshot SnapshotConfig

	// Logging configuration
	Log LogConfig

	// Timezone used to resolve "today" and calendar dates
	Timezone string
}

// EngineConfig holds the thresholds and vocabularies of every component
type EngineConfig struct {
	SimilarityThreshold float64
	GramSize            int
	BalanceWindow       int
	BalanceMaxShare     float64
	BalanceMinPosts     int
	MaxDerivatives      int
	WeeksAhead          int
	Vocabulary          scoring.Vocabulary
	Plans               map[models.AssetType]queue.TypePlan
}

// SnapshotConfig points at the caller's exported state document
type SnapshotConfig struct {
	Path string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			SimilarityThreshold: similarity.DefaultThreshold,
			GramSize:            similarity.DefaultGramSize,
			BalanceWindow:       balance.DefaultWindowSize,
			BalanceMaxShare:     balance.DefaultMaxShare,
			BalanceMinPosts:     balance.DefaultMinPosts,
			MaxDerivatives:      queue.DefaultMaxDerivatives,
			WeeksAhead:          4,
			Vocabulary:          scoring.DefaultVocabulary(),
			Plans:               queue.DefaultPlans(),
		},
		Snapshot: SnapshotConfig{Path: "./data/snapshot.json"},
		Log:      LogConfig{Level: "info", Format: "json"},
		Timezone: "Europe/Lisbon",
	}
}

// Load builds the configuration from defaults, then the optional tuning file
// named by ENGINE_TUNING_FILE, then environment variables.
func Load() (*Config, error) {
	return LoadWithTuning(os.Getenv("ENGINE_TUNING_FILE"))
}

// LoadWithTuning is Load with an explicit tuning file path ("" for none)
func LoadWithTuning(tuningPath string) (*Config, error) {
	cfg := Default()

	if tuningPath != "" {
		if err := applyTuningFile(cfg, tuningPath); err != nil {
			return nil, err
		}
	}

	e := &cfg.Engine
	e.SimilarityThreshold = getFloatEnv("SIMILARITY_THRESHOLD", e.SimilarityThreshold)
	e.GramSize = getIntEnv("SIMILARITY_GRAM_SIZE", e.GramSize)
	e.BalanceWindow = getIntEnv("BALANCE_WINDOW", e.BalanceWindow)
	e.BalanceMaxShare = getFloatEnv("BALANCE_MAX_SHARE", e.BalanceMaxShare)
	e.BalanceMinPosts = getIntEnv("BALANCE_MIN_POSTS", e.BalanceMinPosts)
	e.MaxDerivatives = getIntEnv("MAX_DERIVATIVES", e.MaxDerivatives)
	e.WeeksAhead = getIntEnv("WEEKS_AHEAD", e.WeeksAhead)

	cfg.Snapshot.Path = getEnv("SNAPSHOT_PATH", cfg.Snapshot.Path)
	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnv("LOG_FORMAT", cfg.Log.Format)
	cfg.Timezone = getEnv("ENGINE_TIMEZONE", cfg.Timezone)

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	e := c.Engine
	if e.SimilarityThreshold <= 0 || e.SimilarityThreshold > 1 {
		return fmt.Errorf("SIMILARITY_THRESHOLD must be in (0, 1], got %v", e.SimilarityThreshold)
	}
	if e.GramSize < 1 {
		return fmt.Errorf("SIMILARITY_GRAM_SIZE must be at least 1, got %d", e.GramSize)
	}
	if e.BalanceWindow < 1 {
		return fmt.Errorf("BALANCE_WINDOW must be at least 1, got %d", e.BalanceWindow)
	}
	if e.BalanceMaxShare <= 0 || e.BalanceMaxShare > 1 {
		return fmt.Errorf("BALANCE_MAX_SHARE must be in (0, 1], got %v", e.BalanceMaxShare)
	}
	if e.BalanceMinPosts < 1 {
		return fmt.Errorf("BALANCE_MIN_POSTS must be at least 1, got %d", e.BalanceMinPosts)
	}
	if e.MaxDerivatives < 1 {
		return fmt.Errorf("MAX_DERIVATIVES must be at least 1, got %d", e.MaxDerivatives)
	}
	if e.WeeksAhead < 1 || e.WeeksAhead > 52 {
		return fmt.Errorf("WEEKS_AHEAD must be between 1 and 52, got %d", e.WeeksAhead)
	}
	for assetType, plan := range e.Plans {
		if plan.Core.Channel == "" {
			return fmt.Errorf("plan for %s has no core channel", assetType)
		}
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid ENGINE_TIMEZONE %q: %w", c.Timezone, err)
	}
	return nil
}

// Location resolves the configured timezone
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
