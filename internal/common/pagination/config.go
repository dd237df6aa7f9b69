// Package pagination provides offset-based pagination helpers shared by the
// HTTP handlers and query services.
package pagination

import (
	"os"
	"strconv"
)

// Config holds pagination configuration settings.
type Config struct {
	DefaultPage     int // Default page number (typically 1)
	DefaultPageSize int // Default items per page (typically 20)
	MaxPageSize     int // Maximum allowed items per page (typically 100)
}

// DefaultConfig returns the default pagination configuration.
// Default values: page=1, page_size=20, max=100
func DefaultConfig() Config {
	return Config{
		DefaultPage:     1,
		DefaultPageSize: 20,
		MaxPageSize:     100,
	}
}

// LoadFromEnv loads pagination config from environment variables.
// Supported environment variables:
//   - PAGINATION_DEFAULT_PAGE: Default page number
//   - PAGINATION_DEFAULT_PAGE_SIZE: Default items per page
//   - PAGINATION_MAX_PAGE_SIZE: Maximum items per page
//
// Falls back to DefaultConfig() values for anything unset.
func LoadFromEnv() Config {
	return Config{
		DefaultPage:     getEnvAsInt("PAGINATION_DEFAULT_PAGE", 1),
		DefaultPageSize: getEnvAsInt("PAGINATION_DEFAULT_PAGE_SIZE", 20),
		MaxPageSize:     getEnvAsInt("PAGINATION_MAX_PAGE_SIZE", 100),
	}
}

func getEnvAsInt(key string, defaultValue int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultValue
	}
	return val
}
