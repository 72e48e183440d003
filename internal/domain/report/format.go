package report

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// All report money uses Indian digit grouping (12,34,567.89), which is what
// the business reads.
var enIN = message.NewPrinter(language.MustParse("en-IN"))

// FormatMoney renders a rupee amount with grouping and two decimals.
// Negative amounts keep the sign ahead of the currency mark.
func FormatMoney(d decimal.Decimal) string {
	prefix := "Rs "
	if d.IsNegative() {
		prefix = "-Rs "
		d = d.Neg()
	}
	f, _ := d.Float64()
	return prefix + enIN.Sprintf("%v",
		number.Decimal(f, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// FormatQuantity renders a tea quantity in kg with up to two decimals.
func FormatQuantity(d decimal.Decimal) string {
	f, _ := d.Float64()
	return enIN.Sprintf("%v kg", number.Decimal(f, number.MaxFractionDigits(2)))
}

// FormatDate renders a report date, "-" for unknown.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02 Jan 2006")
}

// FormatDatePtr is FormatDate for optional dates.
func FormatDatePtr(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return FormatDate(*t)
}

// FormatCount renders a plain integer cell.
func FormatCount(n int) string {
	return strconv.Itoa(n)
}
