package main

import (
	"context"
	"log" // Use standard log only for initial fatal errors before logger is set up
	"os"

	"marketdash/config"
	"marketdash/internal/app"
	"marketdash/internal/presentation"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	// 2. Initialize Logger
	appLogger, flush, err := app.NewLogger(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize logger: %v", err)
	}
	defer flush()
	appLogger.Info(context.Background(), "Logger initialized", map[string]interface{}{"level": cfg.LogLevel.String(), "format": cfg.LogFormat})

	// 3. Initialize Row Source
	source, closeSource, err := app.NewSource(cfg, appLogger)
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize data source")
		log.Fatalf("FATAL: Failed to initialize data source: %v", err)
	}
	defer func() {
		if err := closeSource(); err != nil {
			appLogger.Error(context.Background(), err, "Error closing data source")
		}
	}()

	// 4. Initialize Session
	renderer := presentation.NewTextRenderer(os.Stdout)
	session, err := app.NewSession(app.Config{
		Source:   source,
		Variant:  cfg.Variant,
		Renderer: renderer,
		Logger:   appLogger,
	})
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize session")
		log.Fatalf("FATAL: Failed to initialize session: %v", err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			appLogger.Error(context.Background(), err, "Error releasing charts")
		}
	}()
	appLogger.Info(context.Background(), "Session initialized", map[string]interface{}{"session": session.ID(), "variant": string(cfg.Variant.Name)})

	// 5. Load the snapshot. A failed load still renders an empty dashboard.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.FetchTimeout)
	if err := session.Load(ctx); err != nil {
		appLogger.Warn(context.Background(), "Rendering empty dashboard", map[string]interface{}{"error": err.Error()})
	}
	cancel()

	// 6. Apply the initial query and print
	session.ApplyFilter(context.Background(), cfg.Filter)
	session.Search(context.Background(), cfg.SearchTerm)
	if err := app.WriteReport(renderer, session); err != nil {
		appLogger.Error(context.Background(), err, "Failed to write dashboard")
		os.Exit(1)
	}
}
