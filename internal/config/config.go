// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/aristath/marketgate/internal/utils"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Config holds application configuration
type Config struct {
	Port               int
	LogLevel           string
	LogPretty          bool
	DevMode            bool
	AllowedAssets      []string // Asset identities the transfer gate applies to (empty = all)
	AssetAllowlistFile string   // Optional YAML file with more allowed assets
	StatusSchedule     string   // Cron spec (with seconds) for the market status job
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:               getEnvAsInt("GO_PORT", 8001),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogPretty:          getEnvAsBool("LOG_PRETTY", true),
		DevMode:            getEnvAsBool("DEV_MODE", false),
		AllowedAssets:      getEnvAsList("ALLOWED_ASSETS"),
		AssetAllowlistFile: getEnv("ASSET_ALLOWLIST_FILE", ""),
		StatusSchedule:     getEnv("STATUS_SCHEDULE", "0 * * * * *"),
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}

	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(c.StatusSchedule); err != nil {
		return fmt.Errorf("invalid STATUS_SCHEDULE %q: %w", c.StatusSchedule, err)
	}

	if c.AssetAllowlistFile != "" {
		if _, err := os.Stat(c.AssetAllowlistFile); err != nil {
			return fmt.Errorf("asset allow-list file: %w", err)
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsList(key string) []string {
	return utils.ParseCSV(os.Getenv(key))
}
