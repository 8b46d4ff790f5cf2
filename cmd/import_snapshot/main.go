package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"marketdash/config"
	"marketdash/internal/adapters/sqlite"
	"marketdash/internal/app"
)

var (
	dbFlag    = flag.String("db", "./data/market_quotes.db", "SQLite database to write")
	tableFlag = flag.String("table", "", "snapshot table (defaults to SQLITE_TABLE)")
)

func main() {
	flag.Parse()

	// 1. Load Configuration. DATA_SOURCE names the CSV or xlsx export to copy.
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}
	if cfg.SourceKind == config.SourceSQLite {
		log.Fatalf("FATAL: DATA_SOURCE must be a CSV or xlsx export, got %s", cfg.DataSource)
	}
	table := cfg.SQLiteTable
	if *tableFlag != "" {
		table = *tableFlag
	}

	// 2. Initialize Logger
	appLogger, flush, err := app.NewLogger(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize logger: %v", err)
	}
	defer flush()

	// 3. Read the export
	source, closeSource, err := app.NewSource(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize data source: %v", err)
	}
	defer closeSource()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.FetchTimeout)
	defer cancel()

	fmt.Printf("Reading %s...\n", source.Name())
	rows, err := source.FetchRows(ctx)
	if err != nil {
		appLogger.Error(ctx, err, "Error reading export")
		log.Fatalf("Error reading export: %v", err)
	}

	// 4. Store it
	repo, err := sqlite.NewRepository(sqlite.Config{
		DBPath:  *dbFlag,
		Table:   table,
		Columns: cfg.Variant.Schema.Header(),
		Logger:  appLogger,
	})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database repository: %v", err)
	}
	defer repo.Close()

	n, err := repo.ReplaceRows(ctx, rows)
	if err != nil {
		appLogger.Error(ctx, err, "Error storing snapshot")
		log.Fatalf("Error storing snapshot: %v", err)
	}
	appLogger.Info(ctx, "Saved to", map[string]interface{}{"db": *dbFlag, "table": table, "rows": n})
}
