// Package config loads application configuration from environment variables.
package config

import (
	"log/slog"
	"strings"
	"time"

	pkgconfig "crypto-news/pkg/config"
)

// Default major-news thresholds. Scores outside the (low, high) band mark an
// item as major news.
const (
	DefaultThresholdLow  = 0.2
	DefaultThresholdHigh = 0.8
)

// DefaultRetentionHours is how long items are kept before becoming eligible
// for retention cleanup.
const DefaultRetentionHours = 24

// ClassifierConfig holds configuration for the external LLM classifier.
type ClassifierConfig struct {
	// Provider selects the classifier implementation: "openai" (any
	// OpenAI-compatible API, DeepSeek by default) or "anthropic".
	Provider string

	// APIKey authenticates against the classifier API.
	APIKey string

	// APIBase is the base URL of the classifier API.
	// Default: "https://api.deepseek.com/v1"
	APIBase string

	// Model is the model identifier to request.
	// Default: "deepseek-chat"
	Model string

	// Timeout bounds a single classification call. Default: 60s
	Timeout time.Duration

	// RatePerSecond and RateBurst configure the token bucket pacing calls
	// against the classifier API. RatePerSecond <= 0 disables pacing.
	RatePerSecond float64
	RateBurst     int
}

// AppConfig is the process-wide configuration, read once at startup and
// treated as read-only afterwards.
type AppConfig struct {
	// AIEnabled toggles classification of incoming items. When false, the
	// ingestion pipeline uses the deterministic fallback annotation.
	AIEnabled bool

	// RetentionHours is the retention window; items older than this are
	// eligible for cleanup.
	RetentionHours int

	// ThresholdLow and ThresholdHigh delimit the neutral band used to
	// derive the major-news flag.
	ThresholdLow  float64
	ThresholdHigh float64

	Classifier ClassifierConfig
}

// RetentionWindow returns the retention window as a duration.
func (c *AppConfig) RetentionWindow() time.Duration {
	return time.Duration(c.RetentionHours) * time.Hour
}

// Load reads the application configuration from environment variables.
// Invalid values fall back to defaults with a warning; Load never fails.
func Load() *AppConfig {
	cfg := &AppConfig{
		AIEnabled:      ParseEnabledFlag("AI_ANALYSIS_ENABLED", true),
		RetentionHours: pkgconfig.GetEnvInt("NEWS_RETENTION_HOURS", DefaultRetentionHours),
		ThresholdLow:   pkgconfig.GetEnvFloat("MAJOR_NEWS_THRESHOLD_LOW", DefaultThresholdLow),
		ThresholdHigh:  pkgconfig.GetEnvFloat("MAJOR_NEWS_THRESHOLD_HIGH", DefaultThresholdHigh),
		Classifier: ClassifierConfig{
			Provider:      pkgconfig.GetEnvString("CLASSIFIER_PROVIDER", "openai"),
			APIKey:        pkgconfig.GetEnvString("CLASSIFIER_API_KEY", ""),
			APIBase:       pkgconfig.GetEnvString("CLASSIFIER_API_BASE", "https://api.deepseek.com/v1"),
			Model:         pkgconfig.GetEnvString("CLASSIFIER_MODEL", "deepseek-chat"),
			Timeout:       pkgconfig.GetEnvDuration("CLASSIFIER_TIMEOUT", 60*time.Second),
			RatePerSecond: pkgconfig.GetEnvFloat("CLASSIFIER_RATE_LIMIT", 0),
			RateBurst:     pkgconfig.GetEnvInt("CLASSIFIER_RATE_BURST", 1),
		},
	}

	if cfg.RetentionHours <= 0 {
		slog.Warn("NEWS_RETENTION_HOURS must be positive, using default",
			slog.Int("value", cfg.RetentionHours),
			slog.Int("default", DefaultRetentionHours))
		cfg.RetentionHours = DefaultRetentionHours
	}

	// A band where low >= high would mark everything (or nothing) major.
	if cfg.ThresholdLow >= cfg.ThresholdHigh ||
		cfg.ThresholdLow < 0 || cfg.ThresholdHigh > 1 {
		slog.Warn("invalid major-news thresholds, using defaults",
			slog.Float64("low", cfg.ThresholdLow),
			slog.Float64("high", cfg.ThresholdHigh),
			slog.Float64("default_low", DefaultThresholdLow),
			slog.Float64("default_high", DefaultThresholdHigh))
		cfg.ThresholdLow = DefaultThresholdLow
		cfg.ThresholdHigh = DefaultThresholdHigh
	}

	return cfg
}

// ParseEnabledFlag reads a feature toggle from the environment.
// Crawler deployments set this flag in several spellings, so in addition to
// the usual strconv forms it accepts "yes"/"on" (case-insensitive) as true.
// Any unrecognized value falls back to the default with a warning.
func ParseEnabledFlag(key string, defaultValue bool) bool {
	raw := pkgconfig.GetEnvString(key, "")
	if raw == "" {
		return defaultValue
	}

	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "t", "true", "yes", "y", "on":
		return true
	case "0", "f", "false", "no", "n", "off":
		return false
	default:
		slog.Warn("invalid toggle value for environment variable, using default",
			slog.String("key", key),
			slog.String("value", raw),
			slog.Bool("default", defaultValue))
		return defaultValue
	}
}
