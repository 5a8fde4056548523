package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	// Input
	SourceDir    string
	NameCol      int
	AmountCol    int
	DateCol      int
	MarkerPhrase string

	// Classification store
	ClassificationsFile    string
	ClassificationsBackend string // "file" or "sqlite"
	SQLiteDBPath           string

	// Output
	OutputDir       string
	SummaryTxtName  string
	SummaryXlsxName string

	// Merge tool
	MergeFile1      string
	MergeFile2      string
	MergeOutputFile string

	// AMQP (optional; empty URL disables publishing)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Google Sheets sync (optional; empty ID disables)
	GoogleSpreadsheetID string
	GoogleSheetName     string
}

func Load() *Config {
	return &Config{
		SourceDir:    getEnv("SOURCE_DIR", "./expenses"),
		NameCol:      getEnvInt("EXPENSE_NAME_COL", 2),
		AmountCol:    getEnvInt("AMOUNT_COL", 3),
		DateCol:      getEnvInt("DATE_COL", 1),
		MarkerPhrase: getEnv("MARKER_PHRASE", ""),

		ClassificationsFile:    getEnv("CLASSIFICATIONS_FILE", ""),
		ClassificationsBackend: getEnv("CLASSIFICATIONS_BACKEND", "file"),
		SQLiteDBPath:           getEnv("SQLITE_DB_PATH", "./data/hotzaot.db"),

		OutputDir:       getEnv("OUTPUT_DIR", "."),
		SummaryTxtName:  getEnv("SUMMARY_TXT_NAME", "expense_summary.txt"),
		SummaryXlsxName: getEnv("SUMMARY_XLSX_NAME", "expense_summary.xlsx"),

		MergeFile1:      getEnv("MERGE_FILE1", ""),
		MergeFile2:      getEnv("MERGE_FILE2", ""),
		MergeOutputFile: getEnv("MERGE_OUTPUT_FILE", ""),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "hotzaot"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "classifications"),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:     getEnv("GOOGLE_SHEET_NAME", ""),
	}
}

// Validate checks the configuration and returns one error listing every
// problem found.
func (c *Config) Validate() error {
	var errors []string

	for name, col := range map[string]int{
		"EXPENSE_NAME_COL": c.NameCol,
		"AMOUNT_COL":       c.AmountCol,
		"DATE_COL":         c.DateCol,
	} {
		if col < 1 {
			errors = append(errors, fmt.Sprintf("invalid %s %d: column indices are 1-based", name, col))
		}
	}

	switch c.ClassificationsBackend {
	case "file", "sqlite":
	default:
		errors = append(errors, fmt.Sprintf("invalid classifications backend '%s': must be 'file' or 'sqlite'", c.ClassificationsBackend))
	}

	if c.ClassificationsBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else if dir := filepath.Dir(c.SQLiteDBPath); dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
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

	if c.SummaryTxtName == "" {
		errors = append(errors, "summary text filename cannot be empty")
	}
	if c.SummaryXlsxName == "" {
		errors = append(errors, "summary spreadsheet filename cannot be empty")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

// ValidateMerge checks the options the merge tool needs on top of
// Validate.
func (c *Config) ValidateMerge() error {
	var errors []string
	if c.MergeFile1 == "" {
		errors = append(errors, "MERGE_FILE1 is required")
	}
	if c.MergeFile2 == "" {
		errors = append(errors, "MERGE_FILE2 is required")
	}
	if c.MergeOutputFile == "" {
		errors = append(errors, "MERGE_OUTPUT_FILE is required")
	}
	if len(errors) > 0 {
		return fmt.Errorf("merge configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
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
