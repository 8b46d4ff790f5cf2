package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gocarina/gocsv"

	"marketdash/internal/domain"
)

// fullRow is one line of the 13-column export.
type fullRow struct {
	MarketType     string  `csv:"market_type"`
	AssetSymbol    string  `csv:"asset_symbol"`
	AssetName      string  `csv:"asset_name"`
	RefDate        string  `csv:"ref_date"`
	ClosePrice     float64 `csv:"close_price"`
	DailyReturnPct string  `csv:"daily_return_pct"`
	SMA7d          float64 `csv:"sma_7d"`
	SMA21d         float64 `csv:"sma_21d"`
	Volatility7d   float64 `csv:"volatility_7d"`
	ROC14dPct      string  `csv:"roc_14d_pct"`
	DrawdownPct    float64 `csv:"drawdown_pct"`
	VolumeRatio    float64 `csv:"volume_ratio"`
	TrendSignal    string  `csv:"trend_signal"`
}

// goldRow is one line of the 10-column export.
type goldRow struct {
	MarketType     string  `csv:"market_type"`
	AssetSymbol    string  `csv:"asset_symbol"`
	RefDate        string  `csv:"ref_date"`
	ClosePrice     float64 `csv:"close_price"`
	DailyReturnPct string  `csv:"daily_return_pct"`
	SMA7d          float64 `csv:"sma_7d"`
	SMA21d         float64 `csv:"sma_21d"`
	Volatility7d   float64 `csv:"volatility_7d"`
	DrawdownPct    float64 `csv:"drawdown_pct"`
	TrendSignal    string  `csv:"trend_signal"`
}

// nullable writes "no signal" as an empty cell so a reload maps it back to nil.
func nullable(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// WriteView writes records in the column layout of schema, header first.
// The output loads back with the same schema, except for text fields containing '"':
// those are written as "" escapes, which the line tokenizer drops.
func WriteView(w io.Writer, view []*domain.Record, schema domain.Schema) error {
	if schema.Has(schema.AssetName) {
		rows := make([]*fullRow, len(view))
		for i, r := range view {
			rows[i] = &fullRow{
				MarketType:     string(r.MarketType),
				AssetSymbol:    r.AssetSymbol,
				AssetName:      r.AssetName,
				RefDate:        r.RawDate,
				ClosePrice:     r.ClosePrice,
				DailyReturnPct: nullable(r.DailyReturnPct),
				SMA7d:          r.SMA7d,
				SMA21d:         r.SMA21d,
				Volatility7d:   r.Volatility7d,
				ROC14dPct:      nullable(r.ROC14dPct),
				DrawdownPct:    r.DrawdownPct,
				VolumeRatio:    r.VolumeRatio,
				TrendSignal:    string(r.TrendSignal),
			}
		}
		return gocsv.Marshal(rows, w)
	}

	rows := make([]*goldRow, len(view))
	for i, r := range view {
		rows[i] = &goldRow{
			MarketType:     string(r.MarketType),
			AssetSymbol:    r.AssetSymbol,
			RefDate:        r.RawDate,
			ClosePrice:     r.ClosePrice,
			DailyReturnPct: nullable(r.DailyReturnPct),
			SMA7d:          r.SMA7d,
			SMA21d:         r.SMA21d,
			Volatility7d:   r.Volatility7d,
			DrawdownPct:    r.DrawdownPct,
			TrendSignal:    string(r.TrendSignal),
		}
	}
	return gocsv.Marshal(rows, w)
}

// WriteViewToCSV writes the view to filename, creating parent directories as needed.
func WriteViewToCSV(view []*domain.Record, schema domain.Schema, filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create export file '%s': %w", filename, err)
	}
	defer file.Close()

	if err := WriteView(file, view, schema); err != nil {
		return fmt.Errorf("failed to write export '%s': %w", filename, err)
	}
	return nil
}
