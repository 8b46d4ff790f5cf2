package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"text/tabwriter"

	"marketdash/config"
	"marketdash/internal/app"
	"marketdash/internal/domain"
	"marketdash/internal/ports"
	"marketdash/internal/presentation"
)

var variantsFlag = flag.String("variants", "db,finance,index", "comma-separated dashboard variants to compute")

// variantResult is the dashboard of one variant over the configured snapshot.
type variantResult struct {
	variant   domain.Variant
	records   int
	dropped   int
	view      int
	dashboard app.Dashboard
	err       error
}

func main() {
	flag.Parse()

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	appLogger, flush, err := app.NewLogger(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize logger: %v", err)
	}
	defer flush()

	var variants []domain.Variant
	for _, name := range strings.Split(*variantsFlag, ",") {
		v, err := domain.LookupVariant(name)
		if err != nil {
			log.Fatalf("FATAL: %v", err)
		}
		variants = append(variants, v)
	}

	// 2. Compute every variant concurrently. Each goroutine owns its source and session.
	results := make([]variantResult, len(variants))
	var wg sync.WaitGroup
	for i, v := range variants {
		wg.Add(1)
		go func(i int, v domain.Variant) {
			defer wg.Done()
			results[i] = computeVariant(cfg, v, appLogger)
		}(i, v)
	}
	wg.Wait()

	// 3. Print a summary table followed by each variant's KPIs
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.AlignRight|tabwriter.Debug)
	fmt.Fprintln(w, "Variant\tSort\tRecords\tDropped\tView\tCharts\tStatus\t")
	for _, r := range results {
		status := "ok"
		if r.err != nil {
			status = "load failed"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%s\t\n",
			r.variant.Name, r.variant.Schema.Sort, r.records, r.dropped, r.view, len(r.dashboard.Charts), status)
	}
	w.Flush()

	for _, r := range results {
		fmt.Printf("\n## %s\n", r.variant.Name)
		if r.err != nil {
			fmt.Printf("error: %v\n", r.err)
			continue
		}
		kw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, k := range r.dashboard.KPIs {
			fmt.Fprintf(kw, "%s\t%s\n", k.Label, presentation.FormatKPI(k))
		}
		kw.Flush()
		if r.dashboard.Insights != nil {
			for _, line := range presentation.InsightNotes(*r.dashboard.Insights) {
				fmt.Println(line)
			}
		}
	}
}

func computeVariant(base *config.Config, v domain.Variant, logger ports.Logger) variantResult {
	res := variantResult{variant: v}

	cfg := *base
	cfg.Variant = v
	source, closeSource, err := app.NewSource(&cfg, logger)
	if err != nil {
		res.err = err
		return res
	}
	defer closeSource()

	session, err := app.NewSession(app.Config{Source: source, Variant: v, Logger: logger})
	if err != nil {
		res.err = err
		return res
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.FetchTimeout)
	defer cancel()
	if err := session.Load(ctx); err != nil {
		res.err = err
		return res
	}

	session.ApplyFilter(ctx, cfg.Filter)
	session.Search(ctx, cfg.SearchTerm)

	res.records = session.Dataset().Len()
	res.dropped = session.Dataset().Dropped()
	res.view = len(session.View())
	res.dashboard = session.Dashboard()
	return res
}
