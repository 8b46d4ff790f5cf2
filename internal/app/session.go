package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"marketdash/internal/domain"
	"marketdash/internal/pipeline"
	"marketdash/internal/ports"
	"marketdash/internal/presentation"
)

// Session owns one dashboard: the loaded dataset, the active query, the
// resulting view and the live chart handles. It is driven by a single caller
// and is not safe for concurrent use.
type Session struct {
	id       string
	source   ports.RowSource
	variant  domain.Variant
	logger   ports.Logger
	registry *presentation.Registry
	now      func() time.Time

	dataset *pipeline.Dataset
	filter  domain.FilterSpec
	term    string
	view    []*domain.Record
}

// scopedLogger is implemented by loggers that can attach fields to every entry.
type scopedLogger interface {
	With(fields map[string]interface{}) ports.Logger
}

// Config holds the dependencies of a Session.
type Config struct {
	Source   ports.RowSource
	Variant  domain.Variant
	Renderer ports.ChartRenderer // Optional; charts are only computed when nil
	Logger   ports.Logger
	Now      func() time.Time // Clock for date-range cutoffs; defaults to time.Now
}

// NewSession creates a session with an empty dataset and an all-wildcard query.
func NewSession(cfg Config) (*Session, error) {
	if cfg.Source == nil || cfg.Logger == nil {
		return nil, fmt.Errorf("missing required dependencies for Session: %w", ports.ErrConfigurationError)
	}
	if cfg.Variant.Name == "" {
		return nil, fmt.Errorf("dashboard variant is required: %w", ports.ErrConfigurationError)
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	id := uuid.NewString()
	log := cfg.Logger
	if sl, ok := log.(scopedLogger); ok {
		log = sl.With(map[string]interface{}{"session": id})
	}

	s := &Session{
		id:      id,
		source:  cfg.Source,
		variant: cfg.Variant,
		logger:  log,
		now:     now,
		dataset: pipeline.EmptyDataset(cfg.Variant.Schema),
		filter:  domain.AllFilter(),
	}
	if cfg.Renderer != nil {
		s.registry = presentation.NewRegistry(cfg.Renderer, log)
	}
	return s, nil
}

// ID returns the session identifier used in log fields.
func (s *Session) ID() string { return s.id }

// Variant returns the dashboard profile of the session.
func (s *Session) Variant() domain.Variant { return s.variant }

// Dataset returns the currently loaded dataset.
func (s *Session) Dataset() *pipeline.Dataset { return s.dataset }

// Filter returns the active filter, already restricted to the variant's controls.
func (s *Session) Filter() domain.FilterSpec { return s.filter }

// SearchTerm returns the active search term.
func (s *Session) SearchTerm() string { return s.term }

// View returns the records matching the active filter and search term.
func (s *Session) View() []*domain.Record { return s.view }

// Symbols returns the sorted distinct symbols of the dataset, for the asset selector.
func (s *Session) Symbols() []string { return s.dataset.Symbols() }

// Load fetches the source and replaces the dataset. On failure the previous
// dataset and view are kept and the error wraps ports.ErrSourceUnavailable.
func (s *Session) Load(ctx context.Context) error {
	start := time.Now()
	rows, err := s.source.FetchRows(ctx)
	if err != nil {
		if !errors.Is(err, ports.ErrSourceUnavailable) && !errors.Is(err, ports.ErrContextCanceled) {
			err = fmt.Errorf("%w: %w", ports.ErrSourceUnavailable, err)
		}
		s.logger.Error(ctx, err, "Failed to load market data", map[string]interface{}{"source": s.source.Name()})
		return fmt.Errorf("load %s: %w", s.source.Name(), err)
	}

	s.dataset = pipeline.BuildDatasetFromRows(rows, s.variant.Schema)
	s.logger.Info(ctx, "Market data loaded", map[string]interface{}{
		"source":   s.source.Name(),
		"records":  s.dataset.Len(),
		"dropped":  s.dataset.Dropped(),
		"symbols":  len(s.dataset.Symbols()),
		"sort":     s.variant.Schema.Sort.String(),
		"duration": time.Since(start).String(),
	})
	s.refresh(ctx)
	return nil
}

// ApplyFilter replaces the active filter and recomputes the view. Filters the
// variant does not expose are forced to the wildcard.
func (s *Session) ApplyFilter(ctx context.Context, spec domain.FilterSpec) {
	s.filter = s.variant.Restrict(spec)
	s.logger.Debug(ctx, "Filter applied", map[string]interface{}{
		"market":    s.filter.MarketType,
		"asset":     s.filter.AssetSymbol,
		"trend":     s.filter.TrendSignal,
		"dateRange": string(s.filter.DateRange),
	})
	s.refresh(ctx)
}

// Search replaces the active search term and recomputes the view.
func (s *Session) Search(ctx context.Context, term string) {
	s.term = term
	s.logger.Debug(ctx, "Search applied", map[string]interface{}{"term": term})
	s.refresh(ctx)
}

// Dashboard reduces the current view into the variant's dashboard.
func (s *Session) Dashboard() Dashboard {
	return BuildDashboard(s.view, s.variant)
}

// LiveCharts returns the number of chart handles currently held.
func (s *Session) LiveCharts() int {
	if s.registry == nil {
		return 0
	}
	return s.registry.Live()
}

// Close releases every chart handle held by the session.
func (s *Session) Close() error {
	if s.registry == nil {
		return nil
	}
	return s.registry.ReleaseAll()
}

// refresh recomputes the view from the dataset and redraws the charts.
// Rendering problems are logged and never interrupt the pipeline.
func (s *Session) refresh(ctx context.Context) {
	filtered := pipeline.Filter(s.dataset.Records(), s.filter, s.now())
	s.view = pipeline.Search(filtered, s.term, s.variant.SearchByName)
	s.logger.Debug(ctx, "View recomputed", map[string]interface{}{
		"filtered": len(filtered),
		"view":     len(s.view),
	})

	if s.registry == nil {
		return
	}
	for _, chart := range s.Dashboard().Charts {
		if err := s.registry.Update(ctx, chart); err != nil {
			s.logger.Warn(ctx, "Chart update failed", map[string]interface{}{"chart": chart.ID, "error": err.Error()})
		}
	}
}
