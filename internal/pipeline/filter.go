package pipeline

import (
	"fmt"
	"strings"
	"time"

	"marketdash/internal/domain"
	"marketdash/internal/ports"
)

// ParseDateRange validates a date range selector value.
func ParseDateRange(s string) (domain.DateRange, error) {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "", domain.Wildcard:
		return domain.DateRangeAll, nil
	case string(domain.DateRange7d), string(domain.DateRange30d), string(domain.DateRange90d):
		return domain.DateRange(v), nil
	default:
		return domain.DateRangeAll, fmt.Errorf("date range %q: %w", s, ports.ErrInvalidRequest)
	}
}

// Filter returns the records satisfying every predicate of spec, in input order.
// The input slice is never modified; the result is a new slice.
func Filter(records []*domain.Record, spec domain.FilterSpec, now time.Time) []*domain.Record {
	var cutoff time.Time
	hasCutoff := false
	if days := spec.DateRange.Days(); days > 0 {
		cutoff = now.Add(-time.Duration(days) * 24 * time.Hour)
		hasCutoff = true
	}

	out := make([]*domain.Record, 0, len(records))
	for _, r := range records {
		if !domain.IsWildcard(spec.MarketType) && string(r.MarketType) != spec.MarketType {
			continue
		}
		if !domain.IsWildcard(spec.AssetSymbol) && r.AssetSymbol != spec.AssetSymbol {
			continue
		}
		if !domain.IsWildcard(spec.TrendSignal) && string(r.TrendSignal) != spec.TrendSignal {
			continue
		}
		// Undated records never satisfy a date cutoff.
		if hasCutoff && (!r.HasDate || r.Date.Before(cutoff)) {
			continue
		}
		out = append(out, r)
	}
	return out
}
