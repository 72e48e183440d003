// Package numeric provides tolerant coercion of heterogeneous upstream
// values into finite decimals. Ledger records arrive from several sources
// (managed database rows, JSON exports, spreadsheet imports) and the same
// figure may be stored as a number, a numeric string, or be missing
// entirely. Every helper here degrades instead of failing: a value that
// cannot be read as a finite number is simply reported as absent.
package numeric

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Finite coerces v into a decimal. The second return is false when v is
// nil, non-numeric, or not finite (NaN, ±Inf). It never panics, whatever
// shape the upstream record had.
func Finite(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case nil:
		return decimal.Zero, false
	case decimal.Decimal:
		return n, true
	case *decimal.Decimal:
		if n == nil {
			return decimal.Zero, false
		}
		return *n, true
	case decimal.NullDecimal:
		if !n.Valid {
			return decimal.Zero, false
		}
		return n.Decimal, true
	case float64:
		return finiteFloat(n)
	case float32:
		return finiteFloat(float64(n))
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int8:
		return decimal.NewFromInt(int64(n)), true
	case int16:
		return decimal.NewFromInt(int64(n)), true
	case int32:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	case uint:
		return decimal.NewFromUint64(uint64(n)), true
	case uint8:
		return decimal.NewFromInt(int64(n)), true
	case uint16:
		return decimal.NewFromInt(int64(n)), true
	case uint32:
		return decimal.NewFromInt(int64(n)), true
	case uint64:
		return decimal.NewFromUint64(n), true
	case json.Number:
		return finiteString(n.String())
	case string:
		return finiteString(n)
	default:
		return decimal.Zero, false
	}
}

func finiteFloat(f float64) (decimal.Decimal, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(f), true
}

func finiteString(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// Pick returns the first candidate that coerces to a finite decimal, or nil
// when none does. Candidates are tried strictly in order, which is how
// field alias chains (amount, then sale_amount, then total) are resolved.
func Pick(candidates ...any) *decimal.Decimal {
	for _, c := range candidates {
		if d, ok := Finite(c); ok {
			return &d
		}
	}
	return nil
}

// PickOr is Pick with a fallback instead of a nil result.
func PickOr(fallback decimal.Decimal, candidates ...any) decimal.Decimal {
	if d := Pick(candidates...); d != nil {
		return *d
	}
	return fallback
}

// PickZero is PickOr with a zero fallback, the most common default for
// monetary fields.
func PickZero(candidates ...any) decimal.Decimal {
	return PickOr(decimal.Zero, candidates...)
}
