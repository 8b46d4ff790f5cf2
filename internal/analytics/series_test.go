package analytics

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketdash/internal/domain"
)

func TestROCHistogram(t *testing.T) {
	values := []float64{-25, -10, -7, -5, -0.1, 0, 4.99, 5, 9, 10, 42}
	view := make([]*domain.Record, 0, len(values)+2)
	for _, v := range values {
		view = append(view, withROC(rec(domain.MarketStock, "A", "", 1), v))
	}
	view = append(view, rec(domain.MarketStock, "B", "", 1), rec(domain.MarketStock, "C", "", 1))

	got := ROCHistogram(view)
	want := domain.Series{
		Labels: []string{
			BucketVeryNegative,
			BucketNegative,
			BucketSlightlyNegative,
			BucketSlightlyPositive,
			BucketPositive,
			BucketVeryPositive,
		},
		Values: []float64{1, 2, 2, 2, 2, 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ROCHistogram() mismatch (-want +got):\n%s", diff)
	}

	total := 0.0
	for _, c := range got.Values {
		total += c
	}
	assert.Equal(t, float64(len(values)), total, "bins add up to the non-null ROC count")
}

func TestROCHistogram_Empty(t *testing.T) {
	got := ROCHistogram(nil)
	assert.Len(t, got.Labels, 6)
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 0}, got.Values)
}

func TestDailyAverage(t *testing.T) {
	view := []*domain.Record{
		rec(domain.MarketStock, "A", "2024-01-02", 10),
		rec(domain.MarketStock, "B", "2024-01-01", 20),
		rec(domain.MarketStock, "C", "2024-01-02", 30),
		rec(domain.MarketStock, "D", "2024-01-03", 0),
	}
	view[0].Volatility7d = 0.5

	got := DailyAverage(view, ClosePrice, Any)
	want := domain.Series{
		Labels: []string{"2024-01-01", "2024-01-02", "2024-01-03"},
		Values: []float64{20, 20, 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DailyAverage() mismatch (-want +got):\n%s", diff)
	}

	vol := DailyAverage(view, Volatility7d, Positive)
	assert.Equal(t, []float64{0, 0.5, 0}, vol.Values, "dates without positive values average to 0")

	empty := DailyAverage(nil, ClosePrice, Any)
	assert.Empty(t, empty.Labels)
	assert.Empty(t, empty.Values)
}

func TestDailyAverage_TimestampAndRawKeys(t *testing.T) {
	a := rec(domain.MarketStock, "A", "", 10)
	a.RawDate = "2024-02-01T10:00:00"
	b := rec(domain.MarketStock, "B", "", 30)
	b.RawDate = "2024-02-01T22:00:00"
	c := rec(domain.MarketStock, "C", "", 50)
	c.RawDate = "2024-02-01T23:00:00-05:00"
	parsed, err := time.Parse(time.RFC3339, c.RawDate)
	require.NoError(t, err)
	c.Date, c.HasDate = parsed, true

	got := DailyAverage([]*domain.Record{a, b, c}, ClosePrice, Any)
	assert.Equal(t, []string{"2024-02-01"}, got.Labels)
	assert.Equal(t, []float64{30}, got.Values)
}

func TestDailyAverageByMarket(t *testing.T) {
	view := []*domain.Record{
		rec(domain.MarketStock, "A", "2024-01-01", 10),
		rec(domain.MarketStock, "B", "2024-01-01", 30),
		rec(domain.MarketCrypto, "X", "2024-01-02", 100),
		rec("FOREX", "F", "2024-01-03", 5),
	}

	got := DailyAverageByMarket(view)
	require.Equal(t, []string{"2024-01-01", "2024-01-02", "2024-01-03"}, got.Labels)
	require.Len(t, got.Series, 2)

	stock, crypto := got.Series[0], got.Series[1]
	assert.Equal(t, "STOCK", stock.Name)
	require.NotNil(t, stock.Values[0])
	assert.Equal(t, 20.0, *stock.Values[0])
	assert.Nil(t, stock.Values[1])
	assert.Nil(t, stock.Values[2])

	assert.Equal(t, "CRYPTO", crypto.Name)
	assert.Nil(t, crypto.Values[0])
	require.NotNil(t, crypto.Values[1])
	assert.Equal(t, 100.0, *crypto.Values[1])
}

func TestTailSeries(t *testing.T) {
	s := domain.Series{Labels: []string{"a", "b", "c"}, Values: []float64{1, 2, 3}}
	assert.Equal(t, domain.Series{Labels: []string{"b", "c"}, Values: []float64{2, 3}}, TailSeries(s, 2))
	assert.Equal(t, s, TailSeries(s, 30))
}

func TestCorrelationPairs(t *testing.T) {
	view := make([]*domain.Record, 0, 600)
	for i := 0; i < 600; i++ {
		r := rec(domain.MarketCrypto, "A", "", 1)
		r.Volatility7d = float64(i)
		r.VolumeRatio = 1.5
		view = append(view, r)
	}

	points := CorrelationPairs(view, Volatility7d, VolumeRatio, MaxCorrelationPoints)
	require.Len(t, points, MaxCorrelationPoints)
	assert.Equal(t, domain.Point{X: 1, Y: 1.5}, points[0], "zero volatility is skipped")
	assert.Equal(t, domain.Point{X: 500, Y: 1.5}, points[499], "truncation keeps view order")

	assert.Empty(t, CorrelationPairs(nil, Volatility7d, VolumeRatio, MaxCorrelationPoints))
}

func TestDailyAverage_Fractional(t *testing.T) {
	view := []*domain.Record{
		rec(domain.MarketCrypto, "A", "2024-02-01", 0.1),
		rec(domain.MarketCrypto, "B", "2024-02-01", 0.2),
		rec(domain.MarketCrypto, "C", "2024-02-01", 0.4),
	}

	got := DailyAverage(view, ClosePrice, Any)
	want := domain.Series{Labels: []string{"2024-02-01"}, Values: []float64{0.7 / 3}}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("DailyAverage() mismatch (-want +got):\n%s", diff)
	}
}
