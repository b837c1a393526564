package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP server
	Port string

	// Demo seed data directory (optional)
	DataDir string

	// KPI cost-per-km scaling factor (period vs lifetime distance ratio)
	DistanceFactor float64

	// Advisory AI service (Gemini-compatible generateContent endpoint)
	AdvisorAPIKey  string
	AdvisorModel   string
	AdvisorBaseURL string
	AdvisorTimeout time.Duration

	// AMQP expense-event pipeline (optional; empty URL disables publishing)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Expense archive (worker side)
	ArchiveDBPath string

	// Optional Google Sheets export sink (worker side)
	SheetsSpreadsheetID string
	SheetsSheetName     string
}

func Load() *Config {
	return &Config{
		Port:    getEnv("PORT", "8082"),
		DataDir: getEnv("DATA_DIR", "data"),

		DistanceFactor: getEnvFloat("DISTANCE_FACTOR", 0.1),

		AdvisorAPIKey:  getEnv("ADVISOR_API_KEY", ""),
		AdvisorModel:   getEnv("ADVISOR_MODEL", "gemini-2.5-flash"),
		AdvisorBaseURL: getEnv("ADVISOR_BASE_URL", "https://generativelanguage.googleapis.com"),
		AdvisorTimeout: getEnvDuration("ADVISOR_TIMEOUT", 8*time.Second),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "frota"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "expense_events"),

		ArchiveDBPath: getEnv("ARCHIVE_DB_PATH", "./data/frota-archive.db"),

		SheetsSpreadsheetID: getEnv("SHEETS_SPREADSHEET_ID", ""),
		SheetsSheetName:     getEnv("SHEETS_SHEET_NAME", "Despesas"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.DistanceFactor <= 0 || c.DistanceFactor > 1 {
		errs = append(errs, fmt.Sprintf("invalid distance factor %v: must be in (0, 1]", c.DistanceFactor))
	}

	if c.AdvisorTimeout < time.Second {
		errs = append(errs, fmt.Sprintf("invalid advisor timeout %v: must be at least 1 second", c.AdvisorTimeout))
	} else if c.AdvisorTimeout > time.Minute {
		errs = append(errs, fmt.Sprintf("invalid advisor timeout %v: must be at most 1 minute", c.AdvisorTimeout))
	}

	if c.AdvisorBaseURL != "" {
		if u, err := url.Parse(c.AdvisorBaseURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid advisor base URL '%s': %v", c.AdvisorBaseURL, err))
		} else if u.Scheme != "http" && u.Scheme != "https" {
			errs = append(errs, fmt.Sprintf("invalid advisor base URL scheme '%s': must be 'http' or 'https'", u.Scheme))
		}
	}

	if c.AMQPURL != "" {
		if u, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if u.Scheme != "amqp" && u.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", u.Scheme))
		}
		if c.AMQPExchange == "" {
			errs = append(errs, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errs = append(errs, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.ArchiveDBPath == "" {
		errs = append(errs, "archive database path cannot be empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// AdvisorEnabled reports whether the advisory client is configured.
func (c *Config) AdvisorEnabled() bool {
	return c.AdvisorAPIKey != ""
}

// SheetsExportEnabled reports whether the worker should export to Sheets.
func (c *Config) SheetsExportEnabled() bool {
	return c.SheetsSpreadsheetID != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
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

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
