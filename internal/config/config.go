package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Ledger source kinds.
const (
	SourceFile   = "file"
	SourceSQLite = "sqlite"
	SourceSheets = "sheets"
)

type Config struct {
	// Ledger source
	LedgerSource string
	LedgerFile   string

	// Database
	SQLiteDBPath string

	// AMQP (optional, empty URL disables events)
	AMQPURL         string
	AMQPExchange    string
	AMQPQueue       string
	AMQPDialRetries int

	// Google Sheets
	GoogleSpreadsheetID string
	GoogleSheetName     string

	// Import
	ImportBatchSize int

	// Logging
	LogLevel string
}

func Load() *Config {
	return &Config{
		LedgerSource: getEnv("LEDGER_SOURCE", SourceFile),
		LedgerFile:   getEnv("LEDGER_FILE", "input.txt"),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/ledger.db"),

		AMQPURL:         getEnv("AMQP_URL", ""),
		AMQPExchange:    getEnv("AMQP_EXCHANGE", "accounting"),
		AMQPQueue:       getEnv("AMQP_QUEUE", "ledger_events"),
		AMQPDialRetries: getEnvInt("AMQP_DIAL_RETRIES", 3),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:     getEnv("GOOGLE_SHEET_NAME", "Transactions"),

		ImportBatchSize: getEnvInt("IMPORT_BATCH_SIZE", 500),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	validSources := []string{SourceFile, SourceSQLite, SourceSheets}
	isValidSource := false
	for _, s := range validSources {
		if c.LedgerSource == s {
			isValidSource = true
			break
		}
	}
	if !isValidSource {
		errors = append(errors, fmt.Sprintf("invalid ledger source '%s': must be one of %v", c.LedgerSource, validSources))
	}

	if c.LedgerSource == SourceFile && strings.TrimSpace(c.LedgerFile) == "" {
		errors = append(errors, "ledger file cannot be empty when using file source")
	}

	if c.LedgerSource == SourceSQLite {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite source")
		} else {
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	if c.LedgerSource == SourceSheets {
		if c.GoogleSpreadsheetID == "" {
			errors = append(errors, "Google Spreadsheet ID is required when using sheets source")
		}
		if c.GoogleSheetName == "" {
			errors = append(errors, "Google Sheet name is required when using sheets source")
		}
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.AMQPDialRetries < 0 || c.AMQPDialRetries > 20 {
		errors = append(errors, fmt.Sprintf("invalid AMQP dial retries %d: must be between 0 and 20", c.AMQPDialRetries))
	}

	if c.ImportBatchSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid import batch size %d: must be at least 1", c.ImportBatchSize))
	} else if c.ImportBatchSize > 10000 {
		errors = append(errors, fmt.Sprintf("invalid import batch size %d: must be at most 10000", c.ImportBatchSize))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
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
