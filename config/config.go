package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"marketdash/internal/adapters/logger" // Import the logger package for LogLevel
	"marketdash/internal/domain"
)

// SourceKind selects the adapter used to load the snapshot.
type SourceKind string

const (
	SourceCSV    SourceKind = "csv"
	SourceSQLite SourceKind = "sqlite"
	SourceXLSX   SourceKind = "xlsx"
)

// Config holds all application configuration.
type Config struct {
	// Data source
	DataSource   string        // File path or http(s) URL
	SourceKind   SourceKind    // csv, sqlite or xlsx
	SQLiteTable  string        // Table read by the sqlite source
	XLSXSheet    string        // Sheet read by the xlsx source ("" = first sheet)
	FetchTimeout time.Duration // Timeout for the initial load

	// Dashboard
	Variant domain.Variant

	// Initial query
	Filter     domain.FilterSpec
	SearchTerm string

	// Export (cmd/export_view)
	ExportPath string

	// Logging
	LogLevel  logger.LogLevel
	LogFormat string // std or zap
}

// LoadConfig loads configuration from environment variables (.env file).
func LoadConfig() (*Config, error) {
	// Load .env file, but don't fail if it doesn't exist (allow pure env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	var err error
	var errs []string // Collect validation errors

	// Data source
	cfg.DataSource = getEnv("DATA_SOURCE", "./data/market_quotes.csv")
	if strings.TrimSpace(cfg.DataSource) == "" {
		errs = append(errs, "DATA_SOURCE must be set")
	}

	kind := strings.ToLower(getEnv("SOURCE_KIND", ""))
	if kind == "" {
		kind = string(inferSourceKind(cfg.DataSource))
	}
	switch SourceKind(kind) {
	case SourceCSV, SourceSQLite, SourceXLSX:
		cfg.SourceKind = SourceKind(kind)
	default:
		errs = append(errs, fmt.Sprintf("SOURCE_KIND must be one of csv, sqlite, xlsx (got %q)", kind))
	}

	cfg.SQLiteTable = getEnv("SQLITE_TABLE", "market_quotes")
	if !isIdentifier(cfg.SQLiteTable) {
		errs = append(errs, fmt.Sprintf("SQLITE_TABLE %q is not a valid table name", cfg.SQLiteTable))
	}
	cfg.XLSXSheet = getEnv("XLSX_SHEET", "")

	timeoutSeconds, err := getEnvAsIntRequired("FETCH_TIMEOUT_SECONDS", 30)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid FETCH_TIMEOUT_SECONDS: %v", err))
	} else if timeoutSeconds <= 0 {
		errs = append(errs, "FETCH_TIMEOUT_SECONDS must be positive")
	}
	cfg.FetchTimeout = time.Duration(timeoutSeconds) * time.Second

	// Dashboard
	cfg.Variant, err = domain.LookupVariant(getEnv("DASHBOARD_VARIANT", string(domain.VariantFinance)))
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid DASHBOARD_VARIANT: %v", err))
	}

	// Initial query
	cfg.Filter = domain.FilterSpec{
		MarketType:  strings.ToUpper(getEnv("FILTER_MARKET", domain.Wildcard)),
		AssetSymbol: getEnv("FILTER_ASSET", domain.Wildcard),
		TrendSignal: strings.ToUpper(getEnv("FILTER_TREND", domain.Wildcard)),
	}
	if strings.EqualFold(cfg.Filter.MarketType, domain.Wildcard) {
		cfg.Filter.MarketType = domain.Wildcard
	}
	if strings.EqualFold(cfg.Filter.TrendSignal, domain.Wildcard) {
		cfg.Filter.TrendSignal = domain.Wildcard
	}
	switch dr := strings.ToLower(getEnv("FILTER_DATE_RANGE", "")); dr {
	case "", domain.Wildcard:
		cfg.Filter.DateRange = domain.DateRangeAll
	case string(domain.DateRange7d), string(domain.DateRange30d), string(domain.DateRange90d):
		cfg.Filter.DateRange = domain.DateRange(dr)
	default:
		errs = append(errs, fmt.Sprintf("FILTER_DATE_RANGE must be one of all, 7d, 30d, 90d (got %q)", dr))
	}
	cfg.SearchTerm = getEnv("SEARCH_TERM", "")

	// Export
	cfg.ExportPath = getEnv("EXPORT_PATH", "./data/view_export.csv")

	// Logging
	logLevelStr := getEnv("LOG_LEVEL", "INFO")
	cfg.LogLevel = logger.ParseLevel(logLevelStr) // Use the parser from the logger package

	cfg.LogFormat = strings.ToLower(getEnv("LOG_FORMAT", "std"))
	if cfg.LogFormat != "std" && cfg.LogFormat != "zap" {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT must be std or zap (got %q)", cfg.LogFormat))
	}

	// Combine validation errors
	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}

	return cfg, nil
}

// inferSourceKind guesses the adapter from the file extension.
func inferSourceKind(source string) SourceKind {
	switch strings.ToLower(filepath.Ext(source)) {
	case ".db", ".sqlite", ".sqlite3":
		return SourceSQLite
	case ".xlsx":
		return SourceXLSX
	default:
		return SourceCSV
	}
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// --- Env Var Helpers ---

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsIntRequired(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		// Use default if env var is not set at all
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		// Return error if env var is set but invalid
		return 0, fmt.Errorf("invalid integer value '%s' for key %s: %w", valueStr, key, err)
	}
	return value, nil
}
