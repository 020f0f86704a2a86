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
	// HTTP server
	Port string

	// Backend selection: memory, mongo, or sqlite
	DataBackend string

	// Memory backend (CSV-seeded)
	CSVPath string

	// MongoDB backend
	MongoURI string
	MongoDB  string

	// SQLite backend
	SQLiteDBPath string

	// AMQP export pipeline
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Export worker
	ExportTarget    string // csv or sheets
	ExportCSVPath   string
	ExportBatchSize int
	ExportInterval  time.Duration

	// Google Sheets export target
	GoogleSpreadsheetID string
	GoogleSheetName     string

	// Recurring schedules
	RecurringFile string
	RecurringCron string

	// Dashboard
	RecentLimit    int
	CalendarMonths int
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "5000"),
		DataBackend: getEnv("DATA_BACKEND", "memory"),

		CSVPath: getEnv("CSV_PATH", "./data/ledger.csv"),

		MongoURI: getEnv("MONGODB_URI", "mongodb://localhost:27017/money-tracker"),
		MongoDB:  getEnv("MONGODB_DB", "money-tracker"),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/moneytracker.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "moneytracker"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "export_transactions"),

		ExportTarget:    getEnv("EXPORT_TARGET", "csv"),
		ExportCSVPath:   getEnv("EXPORT_CSV_PATH", "./data/export.csv"),
		ExportBatchSize: getEnvInt("EXPORT_BATCH_SIZE", 10),
		ExportInterval:  getEnvDuration("EXPORT_INTERVAL", 30*time.Second),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:     getEnv("GOOGLE_SHEET_NAME", "Transactions"),

		RecurringFile: getEnv("RECURRING_FILE", "./data/recurring.json"),
		RecurringCron: getEnv("RECURRING_CRON", "0 6 * * *"),

		RecentLimit:    getEnvInt("RECENT_LIMIT", 10),
		CalendarMonths: getEnvInt("CALENDAR_MONTHS", 3),
	}
}

// Validate checks the configuration, collecting every problem at once.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case "memory", "mongo", "sqlite":
	default:
		errs = append(errs, fmt.Sprintf("invalid data backend '%s': must be one of [memory mongo sqlite]", c.DataBackend))
	}

	if c.DataBackend == "mongo" {
		if c.MongoURI == "" {
			errs = append(errs, "MongoDB URI cannot be empty when using mongo backend")
		} else if u, err := url.Parse(c.MongoURI); err != nil {
			errs = append(errs, fmt.Sprintf("invalid MongoDB URI '%s': %v", c.MongoURI, err))
		} else if u.Scheme != "mongodb" && u.Scheme != "mongodb+srv" {
			errs = append(errs, fmt.Sprintf("invalid MongoDB URI scheme '%s'", u.Scheme))
		}
		if c.MongoDB == "" {
			errs = append(errs, "MongoDB database name cannot be empty when using mongo backend")
		}
	}

	if c.DataBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errs = append(errs, "SQLite database path cannot be empty when using sqlite backend")
		} else if dir := filepath.Dir(c.SQLiteDBPath); dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errs = append(errs, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
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

	switch c.ExportTarget {
	case "csv", "sheets":
	default:
		errs = append(errs, fmt.Sprintf("invalid export target '%s': must be one of [csv sheets]", c.ExportTarget))
	}
	if c.ExportTarget == "sheets" {
		if c.GoogleSpreadsheetID == "" {
			errs = append(errs, "Google Spreadsheet ID is required when using sheets export target")
		}
		if c.GoogleSheetName == "" {
			errs = append(errs, "Google Sheet name is required when using sheets export target")
		}
	}

	if c.ExportBatchSize < 1 || c.ExportBatchSize > 1000 {
		errs = append(errs, fmt.Sprintf("invalid export batch size %d: must be between 1 and 1000", c.ExportBatchSize))
	}
	if c.ExportInterval < time.Second || c.ExportInterval > 24*time.Hour {
		errs = append(errs, fmt.Sprintf("invalid export interval %v: must be between 1s and 24h", c.ExportInterval))
	}

	if c.RecentLimit < 1 {
		errs = append(errs, fmt.Sprintf("invalid recent limit %d: must be at least 1", c.RecentLimit))
	}
	if c.CalendarMonths < 1 || c.CalendarMonths > 12 {
		errs = append(errs, fmt.Sprintf("invalid calendar months %d: must be between 1 and 12", c.CalendarMonths))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
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

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
