package main

import (
	"context"
	"flag"
	"log"

	"marketdash/config"
	"marketdash/internal/app"
	"marketdash/internal/utils"
)

var outFlag = flag.String("out", "", "output CSV path (defaults to EXPORT_PATH)")

func main() {
	flag.Parse()

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}
	out := cfg.ExportPath
	if *outFlag != "" {
		out = *outFlag
	}

	// 2. Initialize Logger and Source
	appLogger, flush, err := app.NewLogger(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize logger: %v", err)
	}
	defer flush()

	source, closeSource, err := app.NewSource(cfg, appLogger)
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize data source")
		log.Fatalf("FATAL: Failed to initialize data source: %v", err)
	}
	defer closeSource()

	// 3. Load, filter and search
	session, err := app.NewSession(app.Config{Source: source, Variant: cfg.Variant, Logger: appLogger})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize session: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.FetchTimeout)
	defer cancel()
	if err := session.Load(ctx); err != nil {
		log.Fatalf("FATAL: Failed to load data: %v", err)
	}
	session.ApplyFilter(ctx, cfg.Filter)
	session.Search(ctx, cfg.SearchTerm)

	// 4. Write the view in the variant's column layout
	if err := utils.WriteViewToCSV(session.View(), cfg.Variant.Schema, out); err != nil {
		appLogger.Error(ctx, err, "Error writing CSV")
		log.Fatalf("Error writing CSV: %v", err)
	}
	appLogger.Info(ctx, "View exported", map[string]interface{}{"filename": out, "records": len(session.View())})
}
