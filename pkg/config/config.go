// Package config provides configuration management for the accounts
// tooling. Paths and the current-date override come from environment
// variables and .env files; report settings come from a YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the application configuration.
type Config struct {
	Ledger LedgerConfig
	Debug  bool
}

// LedgerConfig locates the ledger input directories and report settings.
type LedgerConfig struct {
	Dir         string // main cash directory
	FutureDir   string // optional forecast directory
	ReportPath  string // YAML report configuration file
	CurrentDate string // optional YYYY-MM-DD override of "today"
}

// Load loads configuration from environment variables. It automatically
// loads a .env file from the current directory if available; a custom
// .env path may be given instead.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// Missing default .env is fine.
		_ = godotenv.Load()
	}

	config := &Config{
		Ledger: LedgerConfig{
			Dir:         getEnvOrDefault("LEDGER_DIR", "./cash"),
			FutureDir:   os.Getenv("LEDGER_FUTURE_DIR"),
			ReportPath:  os.Getenv("LEDGER_REPORT_CONFIG"),
			CurrentDate: os.Getenv("LEDGER_CURRENT_DATE"),
		},
		Debug: os.Getenv("DEBUG") == "true",
	}

	return config, nil
}

// Now returns the effective current date: the LEDGER_CURRENT_DATE
// override when set, otherwise the wall clock. Every current-month-
// relative computation goes through this single source so report output
// stays reproducible.
func (c *Config) Now() (time.Time, error) {
	if c.Ledger.CurrentDate == "" {
		return time.Now(), nil
	}
	now, err := time.Parse("2006-01-02", c.Ledger.CurrentDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid LEDGER_CURRENT_DATE: %w", err)
	}
	return now, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate(required ...string) error {
	var missing []string

	for _, field := range required {
		var value string
		switch field {
		case "dir":
			value = c.Ledger.Dir
		case "futureDir":
			value = c.Ledger.FutureDir
		case "reportConfig":
			value = c.Ledger.ReportPath
		}
		if value == "" {
			missing = append(missing, field)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v\nPlease check your .env file or environment variables", missing)
	}
	return nil
}

// getEnvOrDefault returns the value of the environment variable or a
// default value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
