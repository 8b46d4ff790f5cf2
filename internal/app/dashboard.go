package app

import (
	"marketdash/internal/analytics"
	"marketdash/internal/domain"
	"marketdash/internal/presentation"
)

// Chart IDs. They stay stable across updates so the registry can replace handles.
const (
	ChartMarkets           = "markets"
	ChartTopClose          = "top_close"
	ChartReturns           = "returns"
	ChartVolatility        = "volatility"
	ChartDailyClose        = "daily_close"
	ChartROCHistogram      = "roc_histogram"
	ChartTopVolumeRatio    = "top_volume_ratio"
	ChartTopROC            = "top_roc"
	ChartCorrelation       = "volatility_volume"
	ChartTrends            = "trends"
	ChartAllocation        = "allocation"
	ChartDailyCloseMarket  = "daily_close_by_market"
	ChartTopLatestClose    = "top_latest_close"
	ChartDailyVolatility   = "daily_volatility"
	chartSampleLabelPrefix = "Record"
)

// Dashboard is everything the presentation layer needs for one view.
type Dashboard struct {
	Variant  domain.VariantName
	KPIs     []domain.KPI
	Charts   []domain.Chart
	Insights *analytics.Insights // db dashboard only
	Table    presentation.TableView
}

// BuildDashboard reduces a view into the KPIs, charts and table of a variant.
func BuildDashboard(view []*domain.Record, v domain.Variant) Dashboard {
	d := Dashboard{Variant: v.Name, Table: presentation.Table(view, v)}

	switch v.Name {
	case domain.VariantDB:
		d.KPIs = recordKPIs(view, false)
		d.Charts = dbCharts(view)
		in := analytics.ComputeInsights(view)
		d.Insights = &in
	case domain.VariantFinance:
		d.KPIs = append(assetKPIs(view), recordKPIs(view, true)...)
		d.Charts = financeCharts(view)
	default:
		d.KPIs = assetKPIs(view)
		d.Charts = overviewCharts(view)
	}
	return d
}

// Chart returns the chart with the given ID.
func (d Dashboard) Chart(id string) (domain.Chart, bool) {
	for _, c := range d.Charts {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Chart{}, false
}

// KPI returns the KPI with the given ID.
func (d Dashboard) KPI(id string) (domain.KPI, bool) {
	for _, k := range d.KPIs {
		if k.ID == id {
			return k, true
		}
	}
	return domain.KPI{}, false
}

// assetKPIs are the sidebar cards shared by the gold, finance and index dashboards.
func assetKPIs(view []*domain.Record) []domain.KPI {
	return []domain.KPI{
		{ID: "total_assets", Label: "Total assets", Value: float64(analytics.UniqueSymbols(view)), Unit: domain.UnitCount},
		{ID: "avg_price", Label: "Average price", Value: analytics.Mean(view, analytics.ClosePrice, analytics.Positive), Unit: domain.UnitCurrency},
		{ID: "avg_return", Label: "Average daily return", Value: analytics.Mean(view, analytics.DailyReturnPct, analytics.NonNull), Unit: domain.UnitPercent},
		{ID: "avg_volatility", Label: "Average 7d volatility", Value: analytics.Mean(view, analytics.Volatility7d, analytics.Positive), Unit: domain.UnitVolatility},
	}
}

// recordKPIs are the technical metrics of the db and finance dashboards.
func recordKPIs(view []*domain.Record, withDrawdown bool) []domain.KPI {
	kpis := []domain.KPI{
		{ID: "total_records", Label: "Total records", Value: float64(len(view)), Unit: domain.UnitCount},
		{ID: "unique_assets", Label: "Unique assets", Value: float64(analytics.UniqueSymbols(view)), Unit: domain.UnitCount},
		{ID: "avg_roc", Label: "Average ROC 14d", Value: analytics.Mean(view, analytics.ROC14dPct, analytics.NonNull), Unit: domain.UnitPercent},
		{ID: "avg_volume_ratio", Label: "Average volume ratio", Value: analytics.Mean(view, analytics.VolumeRatio, analytics.Positive), Unit: domain.UnitRatio},
	}
	if withDrawdown {
		kpis = append(kpis, domain.KPI{
			ID: "avg_drawdown", Label: "Average drawdown", Value: analytics.Mean(view, analytics.DrawdownPct, analytics.NonZero), Unit: domain.UnitPercent,
		})
	}
	return kpis
}

func seriesChart(id, title string, kind domain.ChartKind, s domain.Series) domain.Chart {
	return domain.Chart{ID: id, Title: title, Kind: kind, Series: &s}
}

func marketCountsChart(view []*domain.Record) domain.Chart {
	return seriesChart(ChartMarkets, "Records by market", domain.ChartDoughnut,
		analytics.CountsSeries(analytics.CategoryCounts(view, analytics.ByMarketType)))
}

func topCloseChart(view []*domain.Record) domain.Chart {
	return seriesChart(ChartTopClose, "Top 10 assets by close price", domain.ChartBar,
		analytics.GroupSeries(analytics.TopN(analytics.MaxCloseBySymbol(view), 10)))
}

// overviewCharts is the chart set of the gold and index dashboards.
func overviewCharts(view []*domain.Record) []domain.Chart {
	returns := analytics.FirstN(analytics.PresentValues(view, analytics.DailyReturnPct, analytics.NonNull), 20)
	vols := analytics.FirstN(analytics.PresentValues(view, analytics.Volatility7d, analytics.Positive), 20)
	return []domain.Chart{
		marketCountsChart(view),
		topCloseChart(view),
		seriesChart(ChartReturns, "Daily return (%)", domain.ChartLine, analytics.IndexSeries(returns, chartSampleLabelPrefix)),
		seriesChart(ChartVolatility, "7d volatility", domain.ChartBar, analytics.IndexSeries(vols, chartSampleLabelPrefix)),
	}
}

func dbCharts(view []*domain.Record) []domain.Chart {
	return []domain.Chart{
		seriesChart(ChartDailyClose, "Average close by date", domain.ChartLine,
			analytics.DailyAverage(view, analytics.ClosePrice, analytics.Any)),
		seriesChart(ChartROCHistogram, "ROC 14d distribution", domain.ChartBar, analytics.ROCHistogram(view)),
		seriesChart(ChartTopVolumeRatio, "Top 15 assets by volume ratio", domain.ChartBar,
			analytics.GroupSeries(analytics.TopN(analytics.AverageBySymbol(view, analytics.VolumeRatio, analytics.Positive), 15))),
		seriesChart(ChartTopROC, "Top 10 assets by ROC 14d", domain.ChartBar,
			analytics.GroupSeries(analytics.TopN(analytics.AverageBySymbol(view, analytics.ROC14dPct, analytics.NonNull), 10))),
		{
			ID:     ChartCorrelation,
			Title:  "Volatility vs volume ratio",
			Kind:   domain.ChartScatter,
			Points: analytics.CorrelationPairs(view, analytics.Volatility7d, analytics.VolumeRatio, analytics.MaxCorrelationPoints),
		},
		seriesChart(ChartTrends, "Trend signals", domain.ChartDoughnut,
			analytics.CountsSeries(analytics.CategoryCounts(view, analytics.ByTrendSignal))),
	}
}

func financeCharts(view []*domain.Record) []domain.Chart {
	split := analytics.MarketSplit(view)
	multi := analytics.DailyAverageByMarket(view)
	returns := analytics.LastN(analytics.PresentValues(view, analytics.DailyReturnPct, analytics.NonNull), 20)
	vols := analytics.LastN(analytics.PresentValues(view, analytics.Volatility7d, analytics.Positive), 20)

	return []domain.Chart{
		seriesChart(ChartAllocation, "Allocation", domain.ChartDoughnut, domain.Series{
			Labels: []string{string(domain.MarketStock), string(domain.MarketCrypto)},
			Values: []float64{float64(split.Stock), float64(split.Crypto)},
		}),
		marketCountsChart(view),
		topCloseChart(view),
		seriesChart(ChartReturns, "Daily return (%), last 20", domain.ChartLine, analytics.IndexSeries(returns, chartSampleLabelPrefix)),
		seriesChart(ChartVolatility, "7d volatility, last 20", domain.ChartBar, analytics.IndexSeries(vols, chartSampleLabelPrefix)),
		{ID: ChartDailyCloseMarket, Title: "Average close by date and market", Kind: domain.ChartLine, Multi: &multi},
		seriesChart(ChartTopLatestClose, "Top 20 assets by latest close", domain.ChartBar,
			analytics.GroupSeries(analytics.TopN(analytics.LatestBySymbol(view), 20))),
		seriesChart(ChartDailyVolatility, "Average volatility, last 30 dates", domain.ChartLine,
			analytics.TailSeries(analytics.DailyAverage(view, analytics.Volatility7d, analytics.Positive), 30)),
	}
}
