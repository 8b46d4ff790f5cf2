package analytics

import (
	"sort"

	"marketdash/internal/domain"
)

// Histogram bucket labels for the 14-day ROC distribution, lowest first.
const (
	BucketVeryNegative     = "Very negative (<-10%)"
	BucketNegative         = "Negative (-10% to -5%)"
	BucketSlightlyNegative = "Slightly negative (-5% to 0%)"
	BucketSlightlyPositive = "Slightly positive (0% to 5%)"
	BucketPositive         = "Positive (5% to 10%)"
	BucketVeryPositive     = "Very positive (>10%)"
)

// rocBoundaries are the upper bounds (exclusive) of the first five buckets.
var rocBoundaries = []float64{-10, -5, 0, 5, 10}

var rocBuckets = []string{
	BucketVeryNegative,
	BucketNegative,
	BucketSlightlyNegative,
	BucketSlightlyPositive,
	BucketPositive,
	BucketVeryPositive,
}

// ROCHistogram bins non-null ROC values into six fixed buckets. A value equal to a
// boundary falls in the bucket starting at that boundary (each test is "value < boundary").
func ROCHistogram(view []*domain.Record) domain.Series {
	counts := make([]float64, len(rocBuckets))
	for _, v := range PresentValues(view, ROC14dPct, NonNull) {
		bucket := len(rocBoundaries)
		for i, b := range rocBoundaries {
			if v < b {
				bucket = i
				break
			}
		}
		counts[bucket]++
	}
	return domain.Series{
		Labels: append([]string(nil), rocBuckets...),
		Values: counts,
	}
}

// DailyAverage groups the view by calendar date and averages the field per date.
// Every date seen in the view gets a point; dates without a present value average to 0.
// Labels are sorted ascending.
func DailyAverage(view []*domain.Record, field Field, presence Presence) domain.Series {
	groups := make(map[string][]float64)
	for _, r := range view {
		key := r.DateKey()
		if _, ok := groups[key]; !ok {
			groups[key] = nil
		}
		if v, ok := field.Present(r, presence); ok {
			groups[key] = append(groups[key], v)
		}
	}

	dates := sortedKeys(groups)
	s := domain.Series{
		Labels: dates,
		Values: make([]float64, len(dates)),
	}
	for i, d := range dates {
		s.Values[i] = mean(groups[d])
	}
	return s
}

// DailyAverageByMarket averages close price per date separately for STOCK and CRYPTO.
// A date with no record of a market has a nil value in that market's series.
func DailyAverageByMarket(view []*domain.Record) domain.MultiSeries {
	markets := []domain.MarketType{domain.MarketStock, domain.MarketCrypto}
	groups := make(map[string]map[domain.MarketType][]float64)
	for _, r := range view {
		key := r.DateKey()
		g, ok := groups[key]
		if !ok {
			g = make(map[domain.MarketType][]float64)
			groups[key] = g
		}
		if r.MarketType.IsKnown() {
			g[r.MarketType] = append(g[r.MarketType], r.ClosePrice)
		}
	}

	dates := make([]string, 0, len(groups))
	for d := range groups {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	ms := domain.MultiSeries{Labels: dates}
	for _, m := range markets {
		ns := domain.NamedSeries{Name: string(m), Values: make([]*float64, len(dates))}
		for i, d := range dates {
			if prices := groups[d][m]; len(prices) > 0 {
				ns.Values[i] = domain.Float(mean(prices))
			}
		}
		ms.Series = append(ms.Series, ns)
	}
	return ms
}

// TailSeries keeps the last n points of a series.
func TailSeries(s domain.Series, n int) domain.Series {
	if n < 0 {
		n = 0
	}
	if len(s.Labels) <= n {
		return s
	}
	start := len(s.Labels) - n
	return domain.Series{
		Labels: append([]string(nil), s.Labels[start:]...),
		Values: append([]float64(nil), s.Values[start:]...),
	}
}

// MaxCorrelationPoints caps the scatter chart to keep rendering cheap.
const MaxCorrelationPoints = 500

// CorrelationPairs emits (x, y) for records where both fields are > 0, taking the
// first max records in view order.
func CorrelationPairs(view []*domain.Record, x, y Field, max int) []domain.Point {
	points := make([]domain.Point, 0)
	for _, r := range view {
		if len(points) >= max {
			break
		}
		xv, okX := x.Present(r, Positive)
		yv, okY := y.Present(r, Positive)
		if okX && okY {
			points = append(points, domain.Point{X: xv, Y: yv})
		}
	}
	return points
}

func sortedKeys(m map[string][]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
