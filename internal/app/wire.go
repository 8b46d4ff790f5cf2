package app

import (
	"fmt"

	"marketdash/config"
	"marketdash/internal/adapters/csvsource"
	"marketdash/internal/adapters/logger"
	"marketdash/internal/adapters/sqlite"
	"marketdash/internal/adapters/xlsxsource"
	"marketdash/internal/ports"
)

// NewLogger builds the logger selected by LOG_FORMAT. The returned func flushes
// buffered entries and should be deferred by the caller.
func NewLogger(cfg *config.Config) (ports.Logger, func(), error) {
	if cfg.LogFormat == "zap" {
		zl, err := logger.NewZapLogger(cfg.LogLevel)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to build zap logger: %w", err)
		}
		return zl, func() { _ = zl.Sync() }, nil
	}
	return logger.NewStdLogger(cfg.LogLevel), func() {}, nil
}

// NewSource builds the row source for the configured data source. The returned
// func releases anything the source holds open.
func NewSource(cfg *config.Config, log ports.Logger) (ports.RowSource, func() error, error) {
	noop := func() error { return nil }

	switch cfg.SourceKind {
	case config.SourceSQLite:
		repo, err := sqlite.NewRepository(sqlite.Config{
			DBPath:   cfg.DataSource,
			Table:    cfg.SQLiteTable,
			Columns:  cfg.Variant.Schema.Header(),
			ReadOnly: true,
			Logger:   log,
		})
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	case config.SourceXLSX:
		src, err := xlsxsource.New(xlsxsource.Config{Path: cfg.DataSource, Sheet: cfg.XLSXSheet, Logger: log})
		if err != nil {
			return nil, nil, err
		}
		return src, noop, nil
	case config.SourceCSV, "":
		src, err := csvsource.New(csvsource.Config{Location: cfg.DataSource, Timeout: cfg.FetchTimeout, Logger: log})
		if err != nil {
			return nil, nil, err
		}
		return src, noop, nil
	default:
		return nil, nil, fmt.Errorf("unsupported source kind %q: %w", cfg.SourceKind, ports.ErrConfigurationError)
	}
}
