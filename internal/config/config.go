// Package config loads application configuration from environment
// variables.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Message store
	MessageDBPath string

	// Local data files
	DataFile       string
	CategoriesFile string
	ArchiveDBPath  string

	// AMQP (optional; empty URL disables sync publishing)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Google Sheets (optional; empty spreadsheet ID disables sync)
	GoogleSpreadsheetID string
	GoogleSheetName     string

	// Worker
	SyncBatchSize int
	SyncInterval  time.Duration

	// Analytics: IANA zone for monthly bucketing.
	BucketTimeZone string
}

func Load() *Config {
	return &Config{
		MessageDBPath: getEnv("FILS_MESSAGE_DB_PATH", ""),

		DataFile:       getEnv("FILS_DATA_FILE", "transactions.json"),
		CategoriesFile: getEnv("FILS_CATEGORIES_FILE", ""),
		ArchiveDBPath:  getEnv("FILS_ARCHIVE_DB_PATH", "./data/fils.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "fils"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "sync_transactions"),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:     getEnv("GOOGLE_SHEET_NAME", "Transactions"),

		SyncBatchSize: getEnvInt("SYNC_BATCH_SIZE", 10),
		SyncInterval:  getEnvDuration("SYNC_INTERVAL", 30*time.Second),

		BucketTimeZone: getEnv("FILS_BUCKET_TIMEZONE", "UTC"),
	}
}

// Validate checks the configuration, collecting every problem into one
// error.
func (c *Config) Validate() error {
	var errs []string

	if c.ArchiveDBPath == "" {
		errs = append(errs, "archive database path cannot be empty")
	} else if dir := filepath.Dir(c.ArchiveDBPath); dir != "." && dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				errs = append(errs, fmt.Sprintf("cannot create archive directory '%s': %v", dir, err))
			}
		}
	}

	if c.AMQPURL != "" {
		if parsed, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsed.Scheme))
		}
		if c.AMQPExchange == "" {
			errs = append(errs, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errs = append(errs, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.GoogleSpreadsheetID != "" && c.GoogleSheetName == "" {
		errs = append(errs, "Google sheet name cannot be empty when a spreadsheet ID is provided")
	}

	if c.SyncBatchSize < 1 {
		errs = append(errs, fmt.Sprintf("invalid sync batch size %d: must be at least 1", c.SyncBatchSize))
	} else if c.SyncBatchSize > 1000 {
		errs = append(errs, fmt.Sprintf("invalid sync batch size %d: must be at most 1000", c.SyncBatchSize))
	}

	if c.SyncInterval < time.Second {
		errs = append(errs, fmt.Sprintf("invalid sync interval %v: must be at least 1 second", c.SyncInterval))
	}

	if _, err := time.LoadLocation(c.BucketTimeZone); err != nil {
		errs = append(errs, fmt.Sprintf("invalid bucket time zone '%s': %v", c.BucketTimeZone, err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// BucketLocation returns the configured monthly bucketing location.
// Call Validate first; an unloadable zone falls back to UTC here.
func (c *Config) BucketLocation() *time.Location {
	loc, err := time.LoadLocation(c.BucketTimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

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

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
