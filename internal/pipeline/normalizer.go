package pipeline

import (
	"strconv"
	"strings"
	"time"

	"marketdash/internal/domain"
)

// nullToken is the literal the exports use for a missing indicator.
const nullToken = "NULL"

// dateLayouts are tried in order when parsing the reference date.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999 MST",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// Normalize converts the tokenized fields of one data line into a Record using the
// schema's column positions. The second return value is false when the row must be
// dropped (empty asset symbol).
//
// Numeric fields default to 0 when unparseable, except DailyReturnPct and ROC14dPct
// which become nil: "no signal" is kept distinct from a computed zero.
func Normalize(fields []string, schema domain.Schema) (*domain.Record, bool) {
	symbol := column(fields, schema.AssetSymbol)
	if symbol == "" {
		return nil, false
	}

	rec := &domain.Record{
		MarketType:     domain.MarketType(column(fields, schema.MarketType)),
		AssetSymbol:    symbol,
		AssetName:      column(fields, schema.AssetName),
		RawDate:        column(fields, schema.RefDate),
		ClosePrice:     parseZero(column(fields, schema.ClosePrice)),
		DailyReturnPct: parseNullable(column(fields, schema.DailyReturnPct)),
		SMA7d:          parseZero(column(fields, schema.SMA7d)),
		SMA21d:         parseZero(column(fields, schema.SMA21d)),
		Volatility7d:   parseZero(column(fields, schema.Volatility7d)),
		ROC14dPct:      parseNullable(column(fields, schema.ROC14dPct)),
		DrawdownPct:    parseZero(column(fields, schema.DrawdownPct)),
		VolumeRatio:    parseZero(column(fields, schema.VolumeRatio)),
		TrendSignal:    domain.ParseTrendSignal(column(fields, schema.TrendSignal)),
	}
	if rec.AssetName == "" {
		rec.AssetName = rec.AssetSymbol
	}
	rec.Date, rec.HasDate = ParseDate(rec.RawDate)
	return rec, true
}

// ParseDate parses an ISO-like reference date. Dates without a zone are taken as UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// column returns the trimmed field at idx, or "" when the column is absent or missing.
func column(fields []string, idx int) string {
	if idx < 0 || idx >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[idx])
}

func parseZero(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !isFinite(v) {
		return 0
	}
	return v
}

func parseNullable(s string) *float64 {
	if s == "" || s == nullToken {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !isFinite(v) {
		return nil
	}
	return &v
}

// isFinite rejects NaN and the infinities strconv accepts ("NaN", "Inf").
func isFinite(v float64) bool {
	return v == v && v-v == 0
}
