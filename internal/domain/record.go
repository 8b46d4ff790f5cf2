package domain

import "time"

// Record represents one normalized market observation (asset, date, price, indicators).
// Records are built once by the normalizer and never modified afterwards.
type Record struct {
	MarketType  MarketType // STOCK, CRYPTO or a raw pass-through value
	AssetSymbol string     // Primary identity key, never empty
	AssetName   string     // Defaults to AssetSymbol when the column is absent or empty

	RawDate string    // Reference date exactly as it appeared in the source
	Date    time.Time // Parsed reference date (zero value if HasDate is false)
	HasDate bool      // Whether RawDate could be parsed

	ClosePrice float64 // Closing price, 0 when unparseable

	// Nullable indicators: nil means "no signal", distinct from a computed 0.
	DailyReturnPct *float64
	ROC14dPct      *float64

	SMA7d        float64
	SMA21d       float64
	Volatility7d float64
	DrawdownPct  float64
	VolumeRatio  float64

	TrendSignal TrendSignal
}

// DateKey returns the calendar-date portion of the reference date used for daily bucketing.
// The date is taken as written, in the offset it was parsed with.
func (r *Record) DateKey() string {
	if r.HasDate {
		return r.Date.Format("2006-01-02")
	}
	for i := 0; i < len(r.RawDate); i++ {
		if r.RawDate[i] == 'T' {
			return r.RawDate[:i]
		}
	}
	return r.RawDate
}

// Float returns a pointer to v, used for nullable indicator fields.
func Float(v float64) *float64 {
	return &v
}
