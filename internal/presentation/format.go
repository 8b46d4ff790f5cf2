package presentation

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"marketdash/internal/domain"
)

// The dashboards are published for a Brazilian audience.
var printer = message.NewPrinter(language.BrazilianPortuguese)

const notAvailable = "N/A"

// FormatCurrency renders a price. Values of 1000 and above get the currency
// symbol and two decimals; smaller values keep up to eight decimals so
// fractional crypto prices stay readable.
func FormatCurrency(v float64) string {
	if v >= 1000 {
		return "R$ " + printer.Sprint(number.Decimal(v, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
	}
	return printer.Sprint(number.Decimal(v, number.MinFractionDigits(2), number.MaxFractionDigits(8)))
}

// FormatPercent renders a value already expressed in percent.
func FormatPercent(v float64) string {
	return printer.Sprint(number.Decimal(v, number.MinFractionDigits(2), number.MaxFractionDigits(2))) + "%"
}

// FormatNullablePercent renders a nullable percentage, N/A for no signal.
func FormatNullablePercent(v *float64) string {
	if v == nil {
		return notAvailable
	}
	return FormatPercent(*v)
}

// FormatCount renders an integer with thousands separators.
func FormatCount(n int) string {
	return printer.Sprint(number.Decimal(n))
}

// FormatFixed renders v with exactly the given number of decimals, no grouping.
func FormatFixed(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// FormatDate renders the reference date as day/month/year hour:minute.
// Unparseable dates are shown exactly as they appeared in the source.
func FormatDate(r *domain.Record) string {
	if r.HasDate {
		return r.Date.Format("02/01/2006 15:04")
	}
	if r.RawDate == "" {
		return notAvailable
	}
	return r.RawDate
}

// FormatKPI renders a KPI value according to its unit.
func FormatKPI(k domain.KPI) string {
	switch k.Unit {
	case domain.UnitCount:
		return FormatCount(int(k.Value))
	case domain.UnitCurrency:
		return FormatCurrency(k.Value)
	case domain.UnitPercent:
		return FormatPercent(k.Value)
	case domain.UnitVolatility:
		return FormatFixed(k.Value, 4)
	default:
		return FormatFixed(k.Value, 2)
	}
}
