package presentation

import (
	"context"
	"errors"
	"fmt"

	"marketdash/internal/domain"
	"marketdash/internal/ports"
)

// Registry keeps at most one live chart handle per chart ID. Every update
// releases the previous handle before the replacement is rendered.
type Registry struct {
	renderer ports.ChartRenderer
	logger   ports.Logger
	handles  map[string]ports.ChartHandle
	order    []string // IDs in first-render order
}

// NewRegistry creates a registry drawing through renderer.
func NewRegistry(renderer ports.ChartRenderer, logger ports.Logger) *Registry {
	return &Registry{
		renderer: renderer,
		logger:   logger,
		handles:  make(map[string]ports.ChartHandle),
	}
}

// Update releases the handle currently held for chart.ID, renders chart and
// stores the new handle. A failed release is logged and does not block the render.
func (r *Registry) Update(ctx context.Context, chart domain.Chart) error {
	if prev, ok := r.handles[chart.ID]; ok {
		delete(r.handles, chart.ID)
		if err := prev.Release(); err != nil {
			r.logger.Warn(ctx, "Failed to release chart handle", map[string]interface{}{"chart": chart.ID, "error": err.Error()})
		}
	} else {
		r.order = append(r.order, chart.ID)
	}

	h, err := r.renderer.Render(ctx, chart)
	if err != nil {
		return fmt.Errorf("chart %s: %w: %w", chart.ID, ports.ErrRenderFailed, err)
	}
	r.handles[chart.ID] = h
	return nil
}

// Live returns the number of handles currently held.
func (r *Registry) Live() int {
	return len(r.handles)
}

// ReleaseAll releases every held handle and empties the registry.
func (r *Registry) ReleaseAll() error {
	var errs []error
	for _, id := range r.order {
		h, ok := r.handles[id]
		if !ok {
			continue
		}
		if err := h.Release(); err != nil {
			errs = append(errs, fmt.Errorf("chart %s: %w: %w", id, ports.ErrReleaseFailed, err))
		}
	}
	r.handles = make(map[string]ports.ChartHandle)
	r.order = nil
	return errors.Join(errs...)
}
