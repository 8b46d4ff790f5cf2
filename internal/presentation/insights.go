package presentation

import (
	"fmt"

	"marketdash/internal/analytics"
)

// InsightNotes renders the insight counters as the narrative lines of the db dashboard.
func InsightNotes(in analytics.Insights) []string {
	return []string{
		fmt.Sprintf("Records: %s records across %d unique assets.", FormatCount(in.TotalRecords), in.UniqueAssets),
		fmt.Sprintf("ROC: %d records with positive ROC (%s%%) vs %d negative (%s%%).",
			in.PositiveROC, FormatFixed(in.PositiveROCPercent, 1), in.NegativeROC, FormatFixed(in.NegativeROCPercent, 1)),
		fmt.Sprintf("Trends: %d up, %d down, %d neutral.", in.Uptrend, in.Downtrend, in.Neutral),
		fmt.Sprintf("Volume: %d records with volume ratio above 1.0.", in.HighVolumeRatio),
	}
}
