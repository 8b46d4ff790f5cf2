package domain

import "strings"

// MarketType represents the market an asset trades in.
type MarketType string

const (
	MarketStock  MarketType = "STOCK"
	MarketCrypto MarketType = "CRYPTO"
)

// TrendSignal is the upstream trend classification attached to a record.
type TrendSignal string

const (
	TrendUp      TrendSignal = "UPTREND"
	TrendDown    TrendSignal = "DOWNTREND"
	TrendNeutral TrendSignal = "NEUTRAL"
)

// ParseTrendSignal maps a raw column value to a TrendSignal.
// Empty values default to NEUTRAL; unknown values pass through unchanged.
func ParseTrendSignal(s string) TrendSignal {
	s = strings.TrimSpace(s)
	if s == "" {
		return TrendNeutral
	}
	return TrendSignal(s)
}

// IsKnown reports whether the market type is one of the recognized values.
func (m MarketType) IsKnown() bool {
	return m == MarketStock || m == MarketCrypto
}

// Wildcard is the selector value meaning "no constraint".
const Wildcard = "all"

// DateRange is a relative date cutoff selectable in the dashboard.
type DateRange string

const (
	DateRangeAll DateRange = ""
	DateRange7d  DateRange = "7d"
	DateRange30d DateRange = "30d"
	DateRange90d DateRange = "90d"
)

// Days returns the length of the range in days, or 0 for no constraint.
func (d DateRange) Days() int {
	switch d {
	case DateRange7d:
		return 7
	case DateRange30d:
		return 30
	case DateRange90d:
		return 90
	default:
		return 0
	}
}

// FilterSpec holds the categorical and date predicates of a query.
// Empty strings and Wildcard both mean "match everything".
type FilterSpec struct {
	MarketType  string
	AssetSymbol string
	TrendSignal string
	DateRange   DateRange
}

// AllFilter returns a FilterSpec with every predicate set to the wildcard.
func AllFilter() FilterSpec {
	return FilterSpec{
		MarketType:  Wildcard,
		AssetSymbol: Wildcard,
		TrendSignal: Wildcard,
		DateRange:   DateRangeAll,
	}
}

// IsWildcard reports whether a selector value places no constraint.
func IsWildcard(v string) bool {
	return v == "" || v == Wildcard
}
