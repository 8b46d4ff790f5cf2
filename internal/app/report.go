package app

import (
	"marketdash/internal/presentation"
)

// WriteReport prints the session's current dashboard through tr. tr must be the
// renderer the session was created with so the live charts are the current ones.
func WriteReport(tr *presentation.TextRenderer, s *Session) error {
	d := s.Dashboard()
	if err := tr.RenderNotes("Dashboard", []string{
		"Variant: " + string(d.Variant),
		"Source: " + s.source.Name(),
		"Filter: market=" + orAll(s.filter.MarketType) + " asset=" + orAll(s.filter.AssetSymbol) +
			" trend=" + orAll(s.filter.TrendSignal) + " range=" + orAll(string(s.filter.DateRange)),
		"Search: " + s.term,
	}); err != nil {
		return err
	}
	if err := tr.RenderKPIs(d.KPIs); err != nil {
		return err
	}
	if err := tr.WriteCharts(); err != nil {
		return err
	}
	if d.Insights != nil {
		if err := tr.RenderNotes("Insights", presentation.InsightNotes(*d.Insights)); err != nil {
			return err
		}
	}
	return tr.RenderTable(d.Table, s.variant.Schema)
}

func orAll(v string) string {
	if v == "" {
		return "all"
	}
	return v
}
