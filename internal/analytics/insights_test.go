package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"marketdash/internal/domain"
)

func TestComputeInsights(t *testing.T) {
	view := []*domain.Record{
		withTrend(withROC(rec(domain.MarketStock, "A", "", 1), 3), domain.TrendUp),
		withTrend(withROC(rec(domain.MarketStock, "A", "", 1), -1), domain.TrendDown),
		withROC(rec(domain.MarketCrypto, "B", "", 1), 0),
		withTrend(rec(domain.MarketCrypto, "C", "", 1), domain.TrendUp),
	}
	view[0].VolumeRatio = 1.2
	view[1].VolumeRatio = 1.0
	view[3].VolumeRatio = 3

	in := ComputeInsights(view)
	assert.Equal(t, 4, in.TotalRecords)
	assert.Equal(t, 3, in.UniqueAssets)
	assert.Equal(t, 1, in.PositiveROC)
	assert.Equal(t, 1, in.NegativeROC)
	assert.InDelta(t, 100.0/3, in.PositiveROCPercent, 1e-9)
	assert.InDelta(t, 100.0/3, in.NegativeROCPercent, 1e-9)
	assert.Equal(t, 2, in.Uptrend)
	assert.Equal(t, 1, in.Downtrend)
	assert.Equal(t, 1, in.Neutral)
	assert.Equal(t, 2, in.HighVolumeRatio)
}

func TestComputeInsights_Empty(t *testing.T) {
	assert.Equal(t, Insights{}, ComputeInsights(nil))
}
