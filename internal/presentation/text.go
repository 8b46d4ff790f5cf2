package presentation

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/number"

	"marketdash/internal/domain"
	"marketdash/internal/ports"
)

// TextRenderer writes dashboards as aligned plain-text blocks. As a
// ports.ChartRenderer it retains every live chart, the way a canvas keeps its
// drawing, and WriteCharts prints them in render order.
type TextRenderer struct {
	w    io.Writer
	live []*textHandle
}

// NewTextRenderer creates a renderer writing to w.
func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{w: w}
}

// Live returns the number of chart handles not yet released.
func (t *TextRenderer) Live() int {
	return len(t.live)
}

type textHandle struct {
	owner *TextRenderer
	chart domain.Chart
}

func (h *textHandle) Release() error {
	for i, l := range h.owner.live {
		if l == h {
			h.owner.live = append(h.owner.live[:i], h.owner.live[i+1:]...)
			break
		}
	}
	return nil
}

// Render retains chart until its handle is released.
func (t *TextRenderer) Render(ctx context.Context, chart domain.Chart) (ports.ChartHandle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	h := &textHandle{owner: t, chart: chart}
	t.live = append(t.live, h)
	return h, nil
}

// WriteCharts prints every live chart.
func (t *TextRenderer) WriteCharts() error {
	for _, h := range t.live {
		if err := t.writeChart(h.chart); err != nil {
			return fmt.Errorf("%w: chart %s: %w", ports.ErrRenderFailed, h.chart.ID, err)
		}
	}
	return nil
}

func (t *TextRenderer) writeChart(chart domain.Chart) error {
	tw := tabwriter.NewWriter(t.w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "== %s (%s) ==\n", chart.Title, chart.Kind)
	switch {
	case chart.Series != nil:
		for i, label := range chart.Series.Labels {
			fmt.Fprintf(tw, "%s\t%s\n", label, formatValue(chart.Series.Values[i]))
		}
	case chart.Multi != nil:
		header := []string{""}
		for _, s := range chart.Multi.Series {
			header = append(header, s.Name)
		}
		fmt.Fprintln(tw, strings.Join(header, "\t"))
		for i, label := range chart.Multi.Labels {
			cells := []string{label}
			for _, s := range chart.Multi.Series {
				if s.Values[i] == nil {
					cells = append(cells, "-")
				} else {
					cells = append(cells, formatValue(*s.Values[i]))
				}
			}
			fmt.Fprintln(tw, strings.Join(cells, "\t"))
		}
	default:
		fmt.Fprintln(tw, "x\ty")
		for _, p := range chart.Points {
			fmt.Fprintf(tw, "%s\t%s\n", formatValue(p.X), formatValue(p.Y))
		}
	}
	fmt.Fprintln(tw)
	return tw.Flush()
}

// RenderKPIs writes the KPI cards as a two-column block.
func (t *TextRenderer) RenderKPIs(kpis []domain.KPI) error {
	tw := tabwriter.NewWriter(t.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "== Indicators ==")
	for _, k := range kpis {
		fmt.Fprintf(tw, "%s\t%s\n", k.Label, FormatKPI(k))
	}
	fmt.Fprintln(tw)
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("%w: indicators: %w", ports.ErrRenderFailed, err)
	}
	return nil
}

// RenderTable writes the data table followed by its caption.
func (t *TextRenderer) RenderTable(tv TableView, schema domain.Schema) error {
	cols := Columns(schema)
	tw := tabwriter.NewWriter(t.w, 0, 0, 2, ' ', 0)

	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.Header
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))

	cells := make([]string, len(cols))
	for _, r := range tv.Rows {
		for i, c := range cols {
			cells[i] = c.Cell(r)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("%w: table: %w", ports.ErrRenderFailed, err)
	}
	if _, err := fmt.Fprintf(t.w, "%s\n\n", tv.Info()); err != nil {
		return fmt.Errorf("%w: table: %w", ports.ErrRenderFailed, err)
	}
	return nil
}

// RenderNotes writes a titled list of text lines.
func (t *TextRenderer) RenderNotes(title string, lines []string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "== %s ==\n", title)
	for _, l := range lines {
		fmt.Fprintf(&b, "- %s\n", l)
	}
	b.WriteString("\n")
	if _, err := io.WriteString(t.w, b.String()); err != nil {
		return fmt.Errorf("%w: %s: %w", ports.ErrRenderFailed, title, err)
	}
	return nil
}

func formatValue(v float64) string {
	return printer.Sprint(number.Decimal(v, number.MaxFractionDigits(4)))
}
