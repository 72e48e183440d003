package handler

import (
	"time"

	"github.com/shopspring/decimal"
)

// dateLayout is the wire format for calendar dates in query and body fields.
const dateLayout = "2006-01-02"

// parseDate parses a YYYY-MM-DD request value.
func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// nextDay returns midnight of the following day. Ledger date filters are
// half-open, so an inclusive "to" date becomes an exclusive bound one day on.
func nextDay(t time.Time) time.Time {
	return t.AddDate(0, 0, 1)
}

// toDecimal converts a float64 request amount to a decimal.Decimal
func toDecimal(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// toDecimalPtr converts a float64 request amount to a *decimal.Decimal
func toDecimalPtr(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}
