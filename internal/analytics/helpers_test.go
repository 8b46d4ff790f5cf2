package analytics

import (
	"time"

	"marketdash/internal/domain"
)

// rec builds a test record; date "" leaves the record undated.
func rec(market domain.MarketType, symbol, date string, closePrice float64) *domain.Record {
	r := &domain.Record{
		MarketType:  market,
		AssetSymbol: symbol,
		AssetName:   symbol,
		RawDate:     date,
		ClosePrice:  closePrice,
		TrendSignal: domain.TrendNeutral,
	}
	if t, err := time.Parse("2006-01-02", date); err == nil {
		r.Date, r.HasDate = t, true
	}
	return r
}

func withROC(r *domain.Record, v float64) *domain.Record {
	r.ROC14dPct = domain.Float(v)
	return r
}

func withReturn(r *domain.Record, v float64) *domain.Record {
	r.DailyReturnPct = domain.Float(v)
	return r
}

func withTrend(r *domain.Record, s domain.TrendSignal) *domain.Record {
	r.TrendSignal = s
	return r
}
