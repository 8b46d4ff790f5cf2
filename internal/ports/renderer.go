package ports

import (
	"context"

	"marketdash/internal/domain"
)

// ChartHandle is a live rendered chart owned by the presentation registry.
type ChartHandle interface {
	// Release frees the resources held by the rendered chart.
	Release() error
}

// ChartRenderer draws prepared chart payloads. It is the boundary to whatever
// charting technology consumes the dashboard.
type ChartRenderer interface {
	Render(ctx context.Context, chart domain.Chart) (ChartHandle, error)
}
