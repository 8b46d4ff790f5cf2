package presentation

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketdash/internal/analytics"
	"marketdash/internal/domain"
	"marketdash/internal/ports"
)

// mockLogger implements ports.Logger for testing
type mockLogger struct {
	warnMsgs []string
}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {}
func (m *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{}) {
	m.warnMsgs = append(m.warnMsgs, msg)
}
func (m *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
}

// countingRenderer tracks live handles and can be told to fail.
type countingRenderer struct {
	live       int
	renders    int
	failRender bool
	failRel    bool
}

type countingHandle struct {
	r    *countingRenderer
	fail bool
}

func (h *countingHandle) Release() error {
	h.r.live--
	if h.fail {
		return errors.New("boom")
	}
	return nil
}

func (c *countingRenderer) Render(ctx context.Context, chart domain.Chart) (ports.ChartHandle, error) {
	if c.failRender {
		return nil, errors.New("canvas missing")
	}
	c.renders++
	c.live++
	return &countingHandle{r: c, fail: c.failRel}, nil
}

func chart(id string) domain.Chart {
	return domain.Chart{ID: id, Title: id, Kind: domain.ChartBar, Series: &domain.Series{Labels: []string{"a"}, Values: []float64{1}}}
}

func TestRegistry_UpdateReleasesPrevious(t *testing.T) {
	r := &countingRenderer{}
	reg := NewRegistry(r, &mockLogger{})
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, reg.Update(ctx, chart("close")))
		require.NoError(t, reg.Update(ctx, chart("returns")))
	}

	assert.Equal(t, 10, r.renders)
	assert.Equal(t, 2, r.live, "one live handle per chart id")
	assert.Equal(t, 2, reg.Live())

	require.NoError(t, reg.ReleaseAll())
	assert.Equal(t, 0, r.live)
	assert.Equal(t, 0, reg.Live())
}

func TestRegistry_Failures(t *testing.T) {
	r := &countingRenderer{failRel: true}
	log := &mockLogger{}
	reg := NewRegistry(r, log)
	ctx := context.Background()

	require.NoError(t, reg.Update(ctx, chart("a")))
	require.NoError(t, reg.Update(ctx, chart("a")), "release failure does not block the update")
	assert.Len(t, log.warnMsgs, 1)

	err := reg.ReleaseAll()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ports.ErrReleaseFailed))

	r.failRender = true
	err = reg.Update(ctx, chart("b"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ports.ErrRenderFailed))
	assert.Equal(t, 0, reg.Live())
}

func records(n int) []*domain.Record {
	out := make([]*domain.Record, n)
	for i := range out {
		out[i] = &domain.Record{AssetSymbol: string(rune('A' + i%26)), ClosePrice: float64(i)}
	}
	return out
}

func TestTable(t *testing.T) {
	view := records(5)
	tests := []struct {
		name    string
		variant domain.Variant
		want    []float64
	}{
		{"all rows", domain.Variant{Table: domain.TableAll}, []float64{0, 1, 2, 3, 4}},
		{"first n", domain.Variant{Table: domain.TableFirst, TableLimit: 3}, []float64{0, 1, 2}},
		{"first n larger than view", domain.Variant{Table: domain.TableFirst, TableLimit: 10}, []float64{0, 1, 2, 3, 4}},
		{"last n newest first", domain.Variant{Table: domain.TableLastNewest, TableLimit: 2}, []float64{4, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tv := Table(view, tt.variant)
			got := make([]float64, len(tv.Rows))
			for i, r := range tv.Rows {
				got[i] = r.ClosePrice
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, 5, tv.Total)
		})
	}

	tv := Table(view, domain.Variant{Table: domain.TableFirst, TableLimit: 3})
	assert.Equal(t, "Showing 3 of 5 records", tv.Info())

	empty := Table(nil, domain.Variant{Table: domain.TableLastNewest, TableLimit: 1000})
	assert.Empty(t, empty.Rows)
	assert.Equal(t, "Showing 0 of 0 records", empty.Info())
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "R$ 1.234,50", FormatCurrency(1234.5))
	assert.Equal(t, "12,50", FormatCurrency(12.5))
	assert.Equal(t, "0,12345678", FormatCurrency(0.12345678))
	assert.Equal(t, "5,00%", FormatPercent(5))
	assert.Equal(t, "N/A", FormatNullablePercent(nil))
	assert.Equal(t, "1.234", FormatCount(1234))
	assert.Equal(t, "0.1235", FormatFixed(0.12345, 4))

	dated := &domain.Record{HasDate: true, Date: time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)}
	assert.Equal(t, "01/05/2024 09:30", FormatDate(dated))
	assert.Equal(t, "someday", FormatDate(&domain.Record{RawDate: "someday"}))
	assert.Equal(t, "N/A", FormatDate(&domain.Record{}))

	assert.Equal(t, "1,20", FormatKPI(domain.KPI{Value: 1.2, Unit: domain.UnitPercent})[:4])
	assert.Equal(t, "0.1234", FormatKPI(domain.KPI{Value: 0.12341, Unit: domain.UnitVolatility}))
	assert.Equal(t, "1.50", FormatKPI(domain.KPI{Value: 1.5, Unit: domain.UnitRatio}))
}

func TestTextRenderer(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTextRenderer(&buf)
	ctx := context.Background()

	h, err := tr.Render(ctx, domain.Chart{
		ID: "markets", Title: "Records by market", Kind: domain.ChartDoughnut,
		Series: &domain.Series{Labels: []string{"STOCK", "CRYPTO"}, Values: []float64{3, 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, tr.Live())

	v := 10.0
	_, err = tr.Render(ctx, domain.Chart{
		ID: "daily", Title: "Daily close by market", Kind: domain.ChartLine,
		Multi: &domain.MultiSeries{
			Labels: []string{"2024-05-01"},
			Series: []domain.NamedSeries{{Name: "STOCK", Values: []*float64{&v}}, {Name: "CRYPTO", Values: []*float64{nil}}},
		},
	})
	require.NoError(t, err)

	assert.Empty(t, buf.String(), "charts are retained, not printed")
	assert.Equal(t, 2, tr.Live())

	require.NoError(t, h.Release())
	require.NoError(t, h.Release(), "double release is a no-op")
	assert.Equal(t, 1, tr.Live())

	require.NoError(t, tr.WriteCharts())
	assert.NotContains(t, buf.String(), "Records by market", "released charts are not printed")
	assert.Contains(t, buf.String(), "== Daily close by market (line) ==")

	require.NoError(t, tr.RenderKPIs([]domain.KPI{{Label: "Total records", Value: 5, Unit: domain.UnitCount}}))
	require.NoError(t, tr.RenderNotes("Insights", InsightNotes(analytics.Insights{TotalRecords: 5, UniqueAssets: 2})))

	out := buf.String()
	assert.Contains(t, out, "STOCK")
	assert.Contains(t, out, "CRYPTO")
	assert.Contains(t, out, "Total records")
	assert.Contains(t, out, "5 records across 2 unique assets")
}

func TestTextRenderer_Table(t *testing.T) {
	gold, err := domain.LookupVariant("gold")
	require.NoError(t, err)
	index, err := domain.LookupVariant("index")
	require.NoError(t, err)

	var buf bytes.Buffer
	tr := NewTextRenderer(&buf)
	view := []*domain.Record{{MarketType: domain.MarketStock, AssetSymbol: "AAA", AssetName: "Alpha", TrendSignal: domain.TrendUp}}

	require.NoError(t, tr.RenderTable(Table(view, gold), gold.Schema))
	header := strings.SplitN(buf.String(), "\n", 2)[0]
	assert.NotContains(t, header, "Name")
	assert.NotContains(t, header, "ROC")

	buf.Reset()
	require.NoError(t, tr.RenderTable(Table(view, index), index.Schema))
	out := buf.String()
	assert.Contains(t, out, "Name")
	assert.Contains(t, out, "ROC 14d")
	assert.Contains(t, out, "Alpha")
	assert.Contains(t, out, "Showing 1 of 1 records")
}
