package analytics

import "marketdash/internal/domain"

// Field selects a numeric column of a Record.
type Field int

const (
	ClosePrice Field = iota
	DailyReturnPct
	ROC14dPct
	SMA7d
	SMA21d
	Volatility7d
	DrawdownPct
	VolumeRatio
)

// String returns the column name of the field.
func (f Field) String() string {
	switch f {
	case ClosePrice:
		return "close_price"
	case DailyReturnPct:
		return "daily_return_pct"
	case ROC14dPct:
		return "roc_14d_pct"
	case SMA7d:
		return "sma_7d"
	case SMA21d:
		return "sma_21d"
	case Volatility7d:
		return "volatility_7d"
	case DrawdownPct:
		return "drawdown_pct"
	case VolumeRatio:
		return "volume_ratio"
	default:
		return "unknown"
	}
}

// Nullable reports whether the field keeps a null distinct from zero.
func (f Field) Nullable() bool {
	return f == DailyReturnPct || f == ROC14dPct
}

// Presence is the test deciding whether a record "has a value" for a field.
//
// Nullable fields use NonNull. The zero-default fields (volatility, volume ratio,
// drawdown) can only approximate absence with Positive or NonZero, which also
// discards genuine zeros such as a 0% drawdown. That conflation is inherited from
// the exports and left as is.
type Presence int

const (
	Any      Presence = iota // Every record counts
	NonNull                  // Nullable field is not null
	Positive                 // Value > 0
	NonZero                  // Value != 0
)

// Value extracts the field from r. ok is false when a nullable field is null.
func (f Field) Value(r *domain.Record) (v float64, ok bool) {
	switch f {
	case ClosePrice:
		return r.ClosePrice, true
	case DailyReturnPct:
		return deref(r.DailyReturnPct)
	case ROC14dPct:
		return deref(r.ROC14dPct)
	case SMA7d:
		return r.SMA7d, true
	case SMA21d:
		return r.SMA21d, true
	case Volatility7d:
		return r.Volatility7d, true
	case DrawdownPct:
		return r.DrawdownPct, true
	case VolumeRatio:
		return r.VolumeRatio, true
	default:
		return 0, false
	}
}

// Present extracts the field and applies the presence test.
func (f Field) Present(r *domain.Record, p Presence) (float64, bool) {
	v, ok := f.Value(r)
	if !ok {
		return 0, false
	}
	switch p {
	case Positive:
		return v, v > 0
	case NonZero:
		return v, v != 0
	default:
		return v, true
	}
}

func deref(p *float64) (float64, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}
