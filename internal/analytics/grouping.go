package analytics

import (
	"sort"

	"marketdash/internal/domain"
)

// GroupValue is the aggregated value of one asset symbol.
type GroupValue struct {
	Symbol string
	Value  float64
	Record *domain.Record // Representative record (max or latest); nil for averages
}

// MaxCloseBySymbol returns, per symbol, the record with the highest close price.
// Groups are in first-encounter order; on ties the earliest record wins.
func MaxCloseBySymbol(view []*domain.Record) []GroupValue {
	return pickBySymbol(view, func(candidate, current *domain.Record) bool {
		return candidate.ClosePrice > current.ClosePrice
	}, func(r *domain.Record) float64 {
		return r.ClosePrice
	})
}

// LatestBySymbol returns, per symbol, the record with the most recent reference date,
// valued at its close price. An undated record never replaces a dated one.
func LatestBySymbol(view []*domain.Record) []GroupValue {
	return pickBySymbol(view, func(candidate, current *domain.Record) bool {
		if !candidate.HasDate {
			return false
		}
		return !current.HasDate || candidate.Date.After(current.Date)
	}, func(r *domain.Record) float64 {
		return r.ClosePrice
	})
}

func pickBySymbol(view []*domain.Record, better func(candidate, current *domain.Record) bool, value func(*domain.Record) float64) []GroupValue {
	index := make(map[string]int)
	groups := make([]GroupValue, 0)
	for _, r := range view {
		i, ok := index[r.AssetSymbol]
		if !ok {
			index[r.AssetSymbol] = len(groups)
			groups = append(groups, GroupValue{Symbol: r.AssetSymbol, Record: r})
			continue
		}
		if better(r, groups[i].Record) {
			groups[i].Record = r
		}
	}
	for i := range groups {
		groups[i].Value = value(groups[i].Record)
	}
	return groups
}

// AverageBySymbol returns, per symbol, the mean of the field over records passing the
// presence test. Symbols without any present value are left out.
func AverageBySymbol(view []*domain.Record, field Field, presence Presence) []GroupValue {
	index := make(map[string]int)
	symbols := make([]string, 0)
	values := make([][]float64, 0)
	for _, r := range view {
		v, ok := field.Present(r, presence)
		if !ok {
			continue
		}
		i, seen := index[r.AssetSymbol]
		if !seen {
			i = len(symbols)
			index[r.AssetSymbol] = i
			symbols = append(symbols, r.AssetSymbol)
			values = append(values, nil)
		}
		values[i] = append(values[i], v)
	}

	groups := make([]GroupValue, len(symbols))
	for i, s := range symbols {
		groups[i] = GroupValue{Symbol: s, Value: mean(values[i])}
	}
	return groups
}

// TopN sorts a copy of groups by value descending, keeping encounter order on ties,
// and returns at most the first n.
func TopN(groups []GroupValue, n int) []GroupValue {
	sorted := append([]GroupValue(nil), groups...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Value > sorted[j].Value
	})
	if n < 0 {
		n = 0
	}
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// GroupSeries converts group values into a chart series labelled by symbol.
func GroupSeries(groups []GroupValue) domain.Series {
	s := domain.Series{
		Labels: make([]string, len(groups)),
		Values: make([]float64, len(groups)),
	}
	for i, g := range groups {
		s.Labels[i] = g.Symbol
		s.Values[i] = g.Value
	}
	return s
}
