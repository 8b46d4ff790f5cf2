package analytics

import "marketdash/internal/domain"

// Insights summarises a view for the narrative cards of the db dashboard.
type Insights struct {
	TotalRecords int
	UniqueAssets int

	PositiveROC        int
	NegativeROC        int
	PositiveROCPercent float64
	NegativeROCPercent float64

	Uptrend   int
	Downtrend int
	Neutral   int

	HighVolumeRatio int // Records with volume ratio above 1.0
}

// ComputeInsights derives the insight counters. Percentages are 0 when the view has no ROC values.
func ComputeInsights(view []*domain.Record) Insights {
	in := Insights{
		TotalRecords: len(view),
		UniqueAssets: UniqueSymbols(view),
	}

	rocs := PresentValues(view, ROC14dPct, NonNull)
	for _, v := range rocs {
		if v > 0 {
			in.PositiveROC++
		} else if v < 0 {
			in.NegativeROC++
		}
	}
	if len(rocs) > 0 {
		in.PositiveROCPercent = float64(in.PositiveROC) / float64(len(rocs)) * 100
		in.NegativeROCPercent = float64(in.NegativeROC) / float64(len(rocs)) * 100
	}

	for _, c := range CategoryCounts(view, ByTrendSignal) {
		switch domain.TrendSignal(c.Category) {
		case domain.TrendUp:
			in.Uptrend = c.Count
		case domain.TrendDown:
			in.Downtrend = c.Count
		case domain.TrendNeutral:
			in.Neutral = c.Count
		}
	}

	for _, v := range PresentValues(view, VolumeRatio, Positive) {
		if v > 1.0 {
			in.HighVolumeRatio++
		}
	}
	return in
}
