package domain

import (
	"fmt"
	"strings"
)

// SortOrder defines how a dataset is ordered by reference date after loading.
type SortOrder int

const (
	SortNone SortOrder = iota // Keep input order
	SortAscending
	SortDescending
)

// String returns the string representation of the SortOrder.
func (s SortOrder) String() string {
	switch s {
	case SortAscending:
		return "ASC"
	case SortDescending:
		return "DESC"
	default:
		return "NONE"
	}
}

// NoColumn marks a field that is not present in a schema.
const NoColumn = -1

// Schema maps record fields to 0-based CSV column positions.
// A field set to NoColumn is absent from the export.
type Schema struct {
	Name    string
	Columns int

	MarketType     int
	AssetSymbol    int
	AssetName      int
	RefDate        int
	ClosePrice     int
	DailyReturnPct int
	SMA7d          int
	SMA21d         int
	Volatility7d   int
	ROC14dPct      int
	DrawdownPct    int
	VolumeRatio    int
	TrendSignal    int

	Sort SortOrder
}

// Has reports whether a column index is present in the schema.
func (s Schema) Has(col int) bool {
	return col != NoColumn
}

// Column names used for headers and database columns.
const (
	ColMarketType     = "market_type"
	ColAssetSymbol    = "asset_symbol"
	ColAssetName      = "asset_name"
	ColRefDate        = "ref_date"
	ColClosePrice     = "close_price"
	ColDailyReturnPct = "daily_return_pct"
	ColSMA7d          = "sma_7d"
	ColSMA21d         = "sma_21d"
	ColVolatility7d   = "volatility_7d"
	ColROC14dPct      = "roc_14d_pct"
	ColDrawdownPct    = "drawdown_pct"
	ColVolumeRatio    = "volume_ratio"
	ColTrendSignal    = "trend_signal"
)

// Header returns the column names of the export in positional order.
func (s Schema) Header() []string {
	header := make([]string, s.Columns)
	for name, idx := range map[string]int{
		ColMarketType:     s.MarketType,
		ColAssetSymbol:    s.AssetSymbol,
		ColAssetName:      s.AssetName,
		ColRefDate:        s.RefDate,
		ColClosePrice:     s.ClosePrice,
		ColDailyReturnPct: s.DailyReturnPct,
		ColSMA7d:          s.SMA7d,
		ColSMA21d:         s.SMA21d,
		ColVolatility7d:   s.Volatility7d,
		ColROC14dPct:      s.ROC14dPct,
		ColDrawdownPct:    s.DrawdownPct,
		ColVolumeRatio:    s.VolumeRatio,
		ColTrendSignal:    s.TrendSignal,
	} {
		if idx >= 0 && idx < s.Columns {
			header[idx] = name
		}
	}
	return header
}

// schemaGold is the 10-column export without asset name, ROC and volume ratio.
func schemaGold() Schema {
	return Schema{
		Name:           "gold",
		Columns:        10,
		MarketType:     0,
		AssetSymbol:    1,
		AssetName:      NoColumn,
		RefDate:        2,
		ClosePrice:     3,
		DailyReturnPct: 4,
		SMA7d:          5,
		SMA21d:         6,
		Volatility7d:   7,
		ROC14dPct:      NoColumn,
		DrawdownPct:    8,
		VolumeRatio:    NoColumn,
		TrendSignal:    9,
		Sort:           SortNone,
	}
}

// schemaFull is the 13-column export shared by the db, finance and index dashboards.
func schemaFull(name string, sort SortOrder) Schema {
	return Schema{
		Name:           name,
		Columns:        13,
		MarketType:     0,
		AssetSymbol:    1,
		AssetName:      2,
		RefDate:        3,
		ClosePrice:     4,
		DailyReturnPct: 5,
		SMA7d:          6,
		SMA21d:         7,
		Volatility7d:   8,
		ROC14dPct:      9,
		DrawdownPct:    10,
		VolumeRatio:    11,
		TrendSignal:    12,
		Sort:           sort,
	}
}

// VariantName identifies one of the dashboard profiles.
type VariantName string

const (
	VariantGold    VariantName = "gold"
	VariantDB      VariantName = "db"
	VariantFinance VariantName = "finance"
	VariantIndex   VariantName = "index"
)

// TableMode controls which slice of the view the data table shows.
type TableMode int

const (
	TableAll        TableMode = iota // Every row in view order
	TableFirst                       // First TableLimit rows
	TableLastNewest                  // Last TableLimit rows, newest first
)

// Variant describes one dashboard profile: its schema and which controls it exposes.
type Variant struct {
	Name   VariantName
	Schema Schema

	// Controls exposed by the dashboard. Hidden controls are forced to the wildcard.
	MarketFilter    bool
	AssetFilter     bool
	TrendFilter     bool
	DateRangeFilter bool
	SearchByName    bool // V1 matches the symbol only (it has no name column)

	Table      TableMode
	TableLimit int
}

// LookupVariant returns the Variant for the given name (case-insensitive).
func LookupVariant(name string) (Variant, error) {
	switch VariantName(strings.ToLower(strings.TrimSpace(name))) {
	case VariantGold, "v1":
		return Variant{
			Name:         VariantGold,
			Schema:       schemaGold(),
			MarketFilter: true,
			AssetFilter:  true,
			TrendFilter:  true,
			Table:        TableAll,
		}, nil
	case VariantDB, "v2":
		return Variant{
			Name:            VariantDB,
			Schema:          schemaFull(string(VariantDB), SortDescending),
			MarketFilter:    true,
			AssetFilter:     true,
			TrendFilter:     true,
			DateRangeFilter: true,
			SearchByName:    true,
			Table:           TableFirst,
			TableLimit:      1000,
		}, nil
	case VariantFinance, "v3":
		return Variant{
			Name:            VariantFinance,
			Schema:          schemaFull(string(VariantFinance), SortAscending),
			MarketFilter:    true,
			AssetFilter:     true,
			DateRangeFilter: true,
			SearchByName:    true,
			Table:           TableLastNewest,
			TableLimit:      1000,
		}, nil
	case VariantIndex, "v4":
		return Variant{
			Name:            VariantIndex,
			Schema:          schemaFull(string(VariantIndex), SortNone),
			MarketFilter:    true,
			AssetFilter:     true,
			TrendFilter:     true,
			DateRangeFilter: true,
			SearchByName:    true,
			Table:           TableFirst,
			TableLimit:      1000,
		}, nil
	default:
		return Variant{}, fmt.Errorf("unknown dashboard variant %q", name)
	}
}

// Restrict forces every filter the variant does not expose back to the wildcard.
func (v Variant) Restrict(spec FilterSpec) FilterSpec {
	if !v.MarketFilter {
		spec.MarketType = Wildcard
	}
	if !v.AssetFilter {
		spec.AssetSymbol = Wildcard
	}
	if !v.TrendFilter {
		spec.TrendSignal = Wildcard
	}
	if !v.DateRangeFilter {
		spec.DateRange = DateRangeAll
	}
	return spec
}
