package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/teakhata/backend/internal/domain/ledger"
	"github.com/teakhata/backend/internal/domain/partner"
)

// OutstandingEntry is one customer in the dues list.
type OutstandingEntry struct {
	CustomerID       string          `json:"customer_id"`
	Name             string          `json:"name"`
	Phone            string          `json:"phone,omitempty"`
	Outstanding      decimal.Decimal `json:"outstanding"`
	TransactionCount int             `json:"transaction_count"`
	NextDue          *time.Time      `json:"next_due,omitempty"`
	NextDueAmount    decimal.Decimal `json:"next_due_amount"`
	LastActivity     time.Time       `json:"last_activity"`
}

// BuildOutstandingBreakdown derives the dues list from a reconciled
// summary. Customers whose derived balance is zero or negative are excluded
// entirely, as is the unknown-customer bucket (no one to remind). The
// customer row's cached balance hint can raise a listed amount when it says
// more is owed than the entries show, but it never resurrects a settled
// customer.
//
// Phone is the normalized delivery number (countryCode applied to bare
// national numbers); customers without a usable number keep an empty phone
// and stay listed. NextDue is the most urgent due date among the customer's
// entries that still carry a balance, overdue included; ties keep the first
// entry encountered. The result is ordered by outstanding, largest first,
// ties stable.
func BuildOutstandingBreakdown(summary *ledger.Summary, entries []ledger.Entry, customers []partner.Customer, countryCode string) []OutstandingEntry {
	if summary == nil {
		return nil
	}
	idx := partner.Index(customers)

	type perCustomer struct {
		hint          string
		lastActivity  time.Time
		nextDue       *time.Time
		nextDueAmount decimal.Decimal
	}
	derived := make(map[string]*perCustomer)

	for i := range entries {
		e := &entries[i]
		key := e.CustomerKey()
		d := derived[key]
		if d == nil {
			d = &perCustomer{}
			derived[key] = d
		}
		if d.hint == "" {
			d.hint = e.CustomerNameHint()
		}
		if e.CreatedAt.After(d.lastActivity) {
			d.lastActivity = e.CreatedAt
		}
		if due := e.DueOn(); due != nil && e.ResolvedBalance().IsPositive() {
			if d.nextDue == nil || due.Before(*d.nextDue) {
				d.nextDue = due
				d.nextDueAmount = e.ResolvedBalance()
			}
		}
	}

	// Walk customers in first-appearance order over the entry stream so
	// equal outstanding amounts keep a deterministic order.
	seen := make(map[string]bool)
	result := make([]OutstandingEntry, 0, len(summary.PerCustomer))
	for i := range entries {
		key := entries[i].CustomerKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		if key == ledger.UnknownCustomerKey {
			continue
		}

		totals := summary.Customer(key)
		if totals == nil {
			continue
		}
		outstanding := totals.Outstanding()
		if !outstanding.IsPositive() {
			continue
		}

		c := idx[key]
		d := derived[key]

		entry := OutstandingEntry{
			CustomerID:       key,
			Outstanding:      outstanding,
			TransactionCount: totals.TransactionCount,
		}
		entry.Name = resolveDisplayName(c, d.hint)
		if c != nil {
			if c.OutstandingHint.GreaterThan(entry.Outstanding) {
				entry.Outstanding = c.OutstandingHint
			}
			if phone, ok := c.ReachablePhone(countryCode); ok {
				entry.Phone = phone
			}
		}
		entry.LastActivity = d.lastActivity
		entry.NextDue = d.nextDue
		entry.NextDueAmount = d.nextDueAmount

		result = append(result, entry)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Outstanding.GreaterThan(result[j].Outstanding)
	})

	return result
}
