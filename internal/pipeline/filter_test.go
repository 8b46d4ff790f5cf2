package pipeline

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketdash/internal/domain"
	"marketdash/internal/ports"
)

var filterNow = time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)

func filterFixture(t *testing.T) []*domain.Record {
	t.Helper()
	lines := []string{
		"header",
		"STOCK,PETR4,Petrobras,2024-06-29,38,1,,,,,,,UPTREND",
		"CRYPTO,BTC,Bitcoin,2024-06-25,62000,2,,,,,,,DOWNTREND",
		"STOCK,VALE3,Vale,2024-06-10,60,-1,,,,,,,NEUTRAL",
		"CRYPTO,ETH,Ethereum,2024-04-15,3400,0,,,,,,,UPTREND",
		"STOCK,ITUB4,Itau,2023-12-01,30,,,,,,,,",
		"CRYPTO,SOL,Solana,garbage,150,,,,,,,,UPTREND",
	}
	return BuildDataset(lines, indexSchema(t)).Records()
}

func TestFilter(t *testing.T) {
	records := filterFixture(t)

	tests := []struct {
		name     string
		spec     domain.FilterSpec
		expected []string
	}{
		{
			name:     "all wildcards",
			spec:     domain.AllFilter(),
			expected: []string{"PETR4", "BTC", "VALE3", "ETH", "ITUB4", "SOL"},
		},
		{
			name:     "zero value filter is all wildcards",
			spec:     domain.FilterSpec{},
			expected: []string{"PETR4", "BTC", "VALE3", "ETH", "ITUB4", "SOL"},
		},
		{
			name:     "market type",
			spec:     domain.FilterSpec{MarketType: "CRYPTO"},
			expected: []string{"BTC", "ETH", "SOL"},
		},
		{
			name:     "asset symbol",
			spec:     domain.FilterSpec{AssetSymbol: "VALE3"},
			expected: []string{"VALE3"},
		},
		{
			name:     "trend signal defaults to neutral",
			spec:     domain.FilterSpec{TrendSignal: "NEUTRAL"},
			expected: []string{"VALE3", "ITUB4"},
		},
		{
			name:     "7 days",
			spec:     domain.FilterSpec{DateRange: domain.DateRange7d},
			expected: []string{"PETR4", "BTC"},
		},
		{
			name:     "30 days",
			spec:     domain.FilterSpec{DateRange: domain.DateRange30d},
			expected: []string{"PETR4", "BTC", "VALE3"},
		},
		{
			name:     "90 days excludes undated",
			spec:     domain.FilterSpec{DateRange: domain.DateRange90d},
			expected: []string{"PETR4", "BTC", "VALE3", "ETH"},
		},
		{
			name:     "conjunction",
			spec:     domain.FilterSpec{MarketType: "CRYPTO", TrendSignal: "UPTREND", DateRange: domain.DateRange90d},
			expected: []string{"ETH"},
		},
		{
			name:     "no match",
			spec:     domain.FilterSpec{MarketType: "FOREX"},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(records, tt.spec, filterNow)
			symbols := make([]string, 0, len(got))
			for _, r := range got {
				symbols = append(symbols, r.AssetSymbol)
			}
			assert.Equal(t, tt.expected, symbols)
		})
	}
}

func TestFilter_EveryResultSatisfiesFilter(t *testing.T) {
	records := filterFixture(t)
	spec := domain.FilterSpec{MarketType: "STOCK", DateRange: domain.DateRange30d}
	cutoff := filterNow.Add(-30 * 24 * time.Hour)

	for _, r := range Filter(records, spec, filterNow) {
		assert.Equal(t, domain.MarketStock, r.MarketType)
		assert.True(t, r.HasDate)
		assert.False(t, r.Date.Before(cutoff))
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	records := filterFixture(t)
	before := append([]*domain.Record(nil), records...)

	_ = Filter(records, domain.FilterSpec{MarketType: "STOCK"}, filterNow)
	assert.Equal(t, before, records)
}

func TestFilter_Empty(t *testing.T) {
	assert.Empty(t, Filter(nil, domain.AllFilter(), filterNow))
}

func TestParseDateRange(t *testing.T) {
	for _, in := range []string{"", "all", "ALL"} {
		got, err := ParseDateRange(in)
		require.NoError(t, err)
		assert.Equal(t, domain.DateRangeAll, got)
	}
	got, err := ParseDateRange(" 30D ")
	require.NoError(t, err)
	assert.Equal(t, domain.DateRange30d, got)

	_, err = ParseDateRange("1y")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ports.ErrInvalidRequest))
}
