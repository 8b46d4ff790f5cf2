package presentation

import (
	"fmt"

	"marketdash/internal/domain"
)

// TableView is the slice of a view shown in the data table.
type TableView struct {
	Rows  []*domain.Record
	Total int // Records in the view
}

// Info returns the "Showing X of Y" caption.
func (t TableView) Info() string {
	return fmt.Sprintf("Showing %d of %d records", len(t.Rows), t.Total)
}

// Table projects a view onto the rows a variant's table displays.
func Table(view []*domain.Record, v domain.Variant) TableView {
	t := TableView{Total: len(view)}
	switch v.Table {
	case domain.TableFirst:
		n := min(v.TableLimit, len(view))
		t.Rows = view[:n:n]
	case domain.TableLastNewest:
		n := min(v.TableLimit, len(view))
		t.Rows = make([]*domain.Record, n)
		for i := 0; i < n; i++ {
			t.Rows[i] = view[len(view)-1-i]
		}
	default:
		t.Rows = view
	}
	return t
}

// Column is one table column: a header and a cell formatter.
type Column struct {
	Header string
	Cell   func(r *domain.Record) string
}

// Columns returns the table columns for a schema. Fields the schema lacks are omitted.
func Columns(s domain.Schema) []Column {
	cols := []Column{
		{"Market", func(r *domain.Record) string { return string(r.MarketType) }},
		{"Symbol", func(r *domain.Record) string { return r.AssetSymbol }},
	}
	if s.Has(s.AssetName) {
		cols = append(cols, Column{"Name", func(r *domain.Record) string { return r.AssetName }})
	}
	cols = append(cols,
		Column{"Date", FormatDate},
		Column{"Close", func(r *domain.Record) string { return FormatCurrency(r.ClosePrice) }},
		Column{"Return", func(r *domain.Record) string { return FormatNullablePercent(r.DailyReturnPct) }},
	)
	if s.Has(s.ROC14dPct) {
		cols = append(cols, Column{"ROC 14d", func(r *domain.Record) string { return FormatNullablePercent(r.ROC14dPct) }})
	}
	cols = append(cols,
		Column{"SMA 7d", func(r *domain.Record) string { return FormatCurrency(r.SMA7d) }},
		Column{"SMA 21d", func(r *domain.Record) string { return FormatCurrency(r.SMA21d) }},
	)
	if s.Has(s.VolumeRatio) {
		cols = append(cols, Column{"Vol. ratio", func(r *domain.Record) string { return FormatFixed(r.VolumeRatio, 2) }})
	}
	cols = append(cols,
		Column{"Volatility", func(r *domain.Record) string { return FormatFixed(r.Volatility7d, 4) }},
		Column{"Drawdown", func(r *domain.Record) string { return FormatPercent(r.DrawdownPct) }},
		Column{"Trend", func(r *domain.Record) string { return string(r.TrendSignal) }},
	)
	return cols
}
