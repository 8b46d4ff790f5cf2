package analytics

import (
	"strconv"

	"github.com/montanaflynn/stats"

	"marketdash/internal/domain"
)

// PresentValues returns the field values passing the presence test, in view order.
func PresentValues(view []*domain.Record, field Field, presence Presence) []float64 {
	values := make([]float64, 0, len(view))
	for _, r := range view {
		if v, ok := field.Present(r, presence); ok {
			values = append(values, v)
		}
	}
	return values
}

// Mean returns the arithmetic mean of the field over records passing the presence test.
// No present value yields 0.
func Mean(view []*domain.Record, field Field, presence Presence) float64 {
	return mean(PresentValues(view, field, presence))
}

// mean is the zero-safe average used by every aggregation.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m, err := stats.Mean(values)
	if err != nil {
		return 0
	}
	return m
}

// UniqueSymbols returns the number of distinct asset symbols in the view.
func UniqueSymbols(view []*domain.Record) int {
	seen := make(map[string]struct{}, len(view))
	for _, r := range view {
		seen[r.AssetSymbol] = struct{}{}
	}
	return len(seen)
}

// CategoryKey selects the categorical field counted by CategoryCounts.
type CategoryKey int

const (
	ByMarketType CategoryKey = iota
	ByTrendSignal
)

// CategoryCount is the number of records sharing one category value.
type CategoryCount struct {
	Category string
	Count    int
}

// CategoryCounts counts records per distinct category value, in first-encounter order.
func CategoryCounts(view []*domain.Record, key CategoryKey) []CategoryCount {
	index := make(map[string]int)
	counts := make([]CategoryCount, 0)
	for _, r := range view {
		var cat string
		switch key {
		case ByTrendSignal:
			cat = string(r.TrendSignal)
		default:
			cat = string(r.MarketType)
		}
		i, ok := index[cat]
		if !ok {
			i = len(counts)
			index[cat] = i
			counts = append(counts, CategoryCount{Category: cat})
		}
		counts[i].Count++
	}
	return counts
}

// CountsSeries converts category counts into a chart series.
func CountsSeries(counts []CategoryCount) domain.Series {
	s := domain.Series{
		Labels: make([]string, len(counts)),
		Values: make([]float64, len(counts)),
	}
	for i, c := range counts {
		s.Labels[i] = c.Category
		s.Values[i] = float64(c.Count)
	}
	return s
}

// Split holds the STOCK vs CRYPTO allocation of a view.
type Split struct {
	Stock         int
	Crypto        int
	StockPercent  float64
	CryptoPercent float64
}

// MarketSplit counts STOCK and CRYPTO records. Other market types are ignored.
func MarketSplit(view []*domain.Record) Split {
	var s Split
	for _, r := range view {
		switch r.MarketType {
		case domain.MarketStock:
			s.Stock++
		case domain.MarketCrypto:
			s.Crypto++
		}
	}
	if total := s.Stock + s.Crypto; total > 0 {
		s.StockPercent = float64(s.Stock) / float64(total) * 100
		s.CryptoPercent = float64(s.Crypto) / float64(total) * 100
	}
	return s
}

// FirstN returns at most the first n values.
func FirstN(values []float64, n int) []float64 {
	if n < 0 {
		n = 0
	}
	if len(values) > n {
		values = values[:n]
	}
	return append([]float64(nil), values...)
}

// LastN returns at most the last n values, keeping their order.
func LastN(values []float64, n int) []float64 {
	if n < 0 {
		n = 0
	}
	if len(values) > n {
		values = values[len(values)-n:]
	}
	return append([]float64(nil), values...)
}

// IndexSeries labels values with their 1-based position ("Record 1", "Record 2", ...).
func IndexSeries(values []float64, prefix string) domain.Series {
	s := domain.Series{
		Labels: make([]string, len(values)),
		Values: append([]float64(nil), values...),
	}
	for i := range values {
		s.Labels[i] = prefix + " " + strconv.Itoa(i+1)
	}
	return s
}
