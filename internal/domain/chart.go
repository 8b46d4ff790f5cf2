package domain

// ChartKind identifies how a chart payload should be drawn.
type ChartKind string

const (
	ChartBar      ChartKind = "bar"
	ChartLine     ChartKind = "line"
	ChartPie      ChartKind = "pie"
	ChartDoughnut ChartKind = "doughnut"
	ChartScatter  ChartKind = "scatter"
)

// Series is a single labelled value sequence.
type Series struct {
	Labels []string
	Values []float64
}

// Len returns the number of points in the series.
func (s Series) Len() int {
	return len(s.Labels)
}

// Point is one (x, y) pair of a scatter chart.
type Point struct {
	X float64
	Y float64
}

// NamedSeries is one line of a multi-series chart. Nil values are gaps.
type NamedSeries struct {
	Name   string
	Values []*float64
}

// MultiSeries shares one label axis across several named series.
type MultiSeries struct {
	Labels []string
	Series []NamedSeries
}

// Chart is a presentation-ready chart. Exactly one of Series, Points or Multi is set.
type Chart struct {
	ID     string
	Title  string
	Kind   ChartKind
	Series *Series
	Points []Point
	Multi  *MultiSeries
}

// KPI is a scalar indicator shown on the dashboard.
type KPI struct {
	ID    string
	Label string
	Value float64
	Unit  KPIUnit
}

// KPIUnit tells the presentation layer how to format a KPI value.
type KPIUnit string

const (
	UnitCount      KPIUnit = "count"
	UnitCurrency   KPIUnit = "currency"
	UnitPercent    KPIUnit = "percent"
	UnitRatio      KPIUnit = "ratio"      // Two decimals
	UnitVolatility KPIUnit = "volatility" // Four decimals
)
