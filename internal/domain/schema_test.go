package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupVariant(t *testing.T) {
	tests := []struct {
		input    string
		want     VariantName
		columns  int
		sort     SortOrder
		trend    bool
		dateCtrl bool
	}{
		{"gold", VariantGold, 10, SortNone, true, false},
		{"V1", VariantGold, 10, SortNone, true, false},
		{"db", VariantDB, 13, SortDescending, true, true},
		{" finance ", VariantFinance, 13, SortAscending, false, true},
		{"v4", VariantIndex, 13, SortNone, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := LookupVariant(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.Name)
			assert.Equal(t, tt.columns, v.Schema.Columns)
			assert.Equal(t, tt.sort, v.Schema.Sort)
			assert.Equal(t, tt.trend, v.TrendFilter)
			assert.Equal(t, tt.dateCtrl, v.DateRangeFilter)
		})
	}

	_, err := LookupVariant("v9")
	assert.Error(t, err)
}

func TestVariant_Restrict(t *testing.T) {
	gold, err := LookupVariant("gold")
	require.NoError(t, err)
	finance, err := LookupVariant("finance")
	require.NoError(t, err)

	spec := FilterSpec{MarketType: "STOCK", AssetSymbol: "AAA", TrendSignal: "UPTREND", DateRange: DateRange7d}

	assert.Equal(t, FilterSpec{MarketType: "STOCK", AssetSymbol: "AAA", TrendSignal: "UPTREND", DateRange: DateRangeAll}, gold.Restrict(spec))
	assert.Equal(t, FilterSpec{MarketType: "STOCK", AssetSymbol: "AAA", TrendSignal: Wildcard, DateRange: DateRange7d}, finance.Restrict(spec))
}

func TestSchema_Header(t *testing.T) {
	gold, err := LookupVariant("gold")
	require.NoError(t, err)
	assert.Equal(t, []string{
		ColMarketType, ColAssetSymbol, ColRefDate, ColClosePrice, ColDailyReturnPct,
		ColSMA7d, ColSMA21d, ColVolatility7d, ColDrawdownPct, ColTrendSignal,
	}, gold.Schema.Header())

	index, err := LookupVariant("index")
	require.NoError(t, err)
	header := index.Schema.Header()
	require.Len(t, header, 13)
	assert.Equal(t, ColAssetName, header[2])
	assert.Equal(t, ColTrendSignal, header[12])
}

func TestRecord_DateKey(t *testing.T) {
	r := &Record{RawDate: "2024-05-01T10:00:00"}
	assert.Equal(t, "2024-05-01", r.DateKey())

	r = &Record{RawDate: "garbage"}
	assert.Equal(t, "garbage", r.DateKey())

	late, err := time.Parse(time.RFC3339, "2024-01-01T23:00:00-05:00")
	require.NoError(t, err)
	r = &Record{RawDate: "2024-01-01T23:00:00-05:00", Date: late, HasDate: true}
	assert.Equal(t, "2024-01-01", r.DateKey(), "offset dates keep their written calendar day")
}

func TestDateRange_Days(t *testing.T) {
	assert.Equal(t, 7, DateRange7d.Days())
	assert.Equal(t, 30, DateRange30d.Days())
	assert.Equal(t, 90, DateRange90d.Days())
	assert.Equal(t, 0, DateRangeAll.Days())
}

func TestMarketType_IsKnown(t *testing.T) {
	assert.True(t, MarketStock.IsKnown())
	assert.True(t, MarketCrypto.IsKnown())
	assert.False(t, MarketType("FOREX").IsKnown())
}
