package pipeline

import (
	"strings"

	"marketdash/internal/domain"
)

// Search keeps the records whose symbol (and, when byName is set, name) contains term,
// case-insensitively. An empty term returns the view unchanged.
func Search(view []*domain.Record, term string, byName bool) []*domain.Record {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return view
	}

	out := make([]*domain.Record, 0, len(view))
	for _, r := range view {
		if strings.Contains(strings.ToLower(r.AssetSymbol), term) ||
			(byName && strings.Contains(strings.ToLower(r.AssetName), term)) {
			out = append(out, r)
		}
	}
	return out
}
