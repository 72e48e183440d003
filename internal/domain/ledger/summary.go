package ledger

import "github.com/shopspring/decimal"

// CustomerTotals accumulates one customer's position across the entry
// stream. The raw balance is kept unclamped so later payments can offset
// earlier sale balances; Outstanding applies the zero floor at read time.
type CustomerTotals struct {
	TotalSales       decimal.Decimal
	TotalCollections decimal.Decimal
	TransactionCount int

	balance decimal.Decimal
}

// Outstanding is the customer's dues figure: the accumulated balance
// floored at zero. A customer who overpaid owes nothing, not a negative
// amount.
func (t *CustomerTotals) Outstanding() decimal.Decimal {
	if t.balance.IsNegative() {
		return decimal.Zero
	}
	return t.balance
}

// Totals is the business-wide position.
type Totals struct {
	TotalSales       decimal.Decimal
	TotalCollections decimal.Decimal
	Outstanding      decimal.Decimal
}

// Summary is the reconciled per-customer view of the full entry stream.
// Entries without a resolvable customer land in the UnknownCustomerKey
// bucket so global totals stay complete.
type Summary struct {
	PerCustomer map[string]*CustomerTotals
}

// Customer returns the bucket for key, nil when the customer has no
// entries.
func (s *Summary) Customer(key string) *CustomerTotals {
	return s.PerCustomer[key]
}

// Totals sums the per-customer read values. Outstanding sums the clamped
// per-customer figures, so one overpaying customer never hides another's
// dues.
func (s *Summary) Totals() Totals {
	var t Totals
	for _, c := range s.PerCustomer {
		t.TotalSales = t.TotalSales.Add(c.TotalSales)
		t.TotalCollections = t.TotalCollections.Add(c.TotalCollections)
		t.Outstanding = t.Outstanding.Add(c.Outstanding())
	}
	return t
}

// ComputeSummary reconciles the entry stream into per-customer totals in a
// single pass. It is a pure function of its input: no I/O, no clock, and
// recomputing over the same entries yields the same summary. Defective
// records (missing fields, non-finite figures, unknown customers) degrade
// per the entry accessors and never fail the pass.
func ComputeSummary(entries []Entry) *Summary {
	s := &Summary{PerCustomer: make(map[string]*CustomerTotals)}

	for i := range entries {
		e := &entries[i]
		key := e.CustomerKey()
		c := s.PerCustomer[key]
		if c == nil {
			c = &CustomerTotals{}
			s.PerCustomer[key] = c
		}

		if e.IsPayment() {
			c.TotalCollections = c.TotalCollections.Add(e.CollectedAmount())
		} else {
			c.TotalSales = c.TotalSales.Add(e.SaleAmount())
		}
		c.balance = c.balance.Add(e.BalanceContribution())
		c.TransactionCount++
	}

	return s
}
