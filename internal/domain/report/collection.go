// Package report derives the read-side views of the tea ledger: collection
// and outstanding breakdowns, inventory profit and loss, per-customer
// statements, and the printable report documents assembled from them.
//
// Every builder here is pure and synchronous: it takes snapshot slices,
// returns a value, touches no I/O and reads no clock. Defective records
// degrade through the ledger entry accessors instead of failing the build.
package report

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/teakhata/backend/internal/domain/ledger"
	"github.com/teakhata/backend/internal/domain/partner"
)

// PaymentStatus labels how much of a sale the collected money covers.
// The strings are fixed display values carried through reports unchanged.
type PaymentStatus string

const (
	StatusFullPaid    PaymentStatus = "full paid"
	StatusPartialPaid PaymentStatus = "partial paid"
	StatusPartialLeft PaymentStatus = "partial left"
)

// PaymentRecord is one collected amount inside a customer's group.
type PaymentRecord struct {
	EntryID    string          `json:"entry_id"`
	Amount     decimal.Decimal `json:"amount"`
	SaleAmount decimal.Decimal `json:"sale_amount"`
	Balance    decimal.Decimal `json:"balance"`
	Status     PaymentStatus   `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
}

// CollectionEntry groups one customer's collected payments.
type CollectionEntry struct {
	CustomerID string          `json:"customer_id"`
	Name       string          `json:"name"`
	TotalPaid  decimal.Decimal `json:"total_paid"`
	Payments   []PaymentRecord `json:"payments"`
}

// CollectionSummary totals the whole breakdown.
type CollectionSummary struct {
	CustomerCount int             `json:"customer_count"`
	PaymentCount  int             `json:"payment_count"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// CollectionBreakdown is the "money received" view: who paid, how much,
// and how each receipt relates to its sale.
type CollectionBreakdown struct {
	Details []CollectionEntry `json:"details"`
	Summary CollectionSummary `json:"summary"`
}

// BuildCollectionBreakdown groups every entry that collected money by
// customer. Entries with zero or unreadable collected amounts are skipped,
// never fatal. Payments inside a group are ordered newest first with
// undated receipts last; groups are ordered by total collected, largest
// first, ties keeping first-seen order.
func BuildCollectionBreakdown(entries []ledger.Entry, customers []partner.Customer) *CollectionBreakdown {
	idx := partner.Index(customers)

	groups := make(map[string]*CollectionEntry)
	hints := make(map[string]string)
	order := make([]string, 0)

	for i := range entries {
		e := &entries[i]
		amountPaid := e.CollectedAmount()
		if !amountPaid.IsPositive() {
			continue
		}

		key := e.CustomerKey()
		g := groups[key]
		if g == nil {
			g = &CollectionEntry{CustomerID: key}
			groups[key] = g
			order = append(order, key)
		}

		saleAmount := e.SaleAmount()
		balance := e.ResolvedBalance()
		g.Payments = append(g.Payments, PaymentRecord{
			EntryID:    e.ID,
			Amount:     amountPaid,
			SaleAmount: saleAmount,
			Balance:    balance,
			Status:     derivePaymentStatus(e.PaymentTypeHint(), amountPaid, saleAmount, balance),
			CreatedAt:  e.CreatedAt,
		})
		g.TotalPaid = g.TotalPaid.Add(amountPaid)

		if hints[key] == "" {
			hints[key] = e.CustomerNameHint()
		}
	}

	breakdown := &CollectionBreakdown{Details: make([]CollectionEntry, 0, len(order))}
	for _, key := range order {
		g := groups[key]
		g.Name = resolveDisplayName(idx[key], hints[key])
		sort.SliceStable(g.Payments, func(i, j int) bool {
			return g.Payments[i].CreatedAt.After(g.Payments[j].CreatedAt)
		})
		breakdown.Details = append(breakdown.Details, *g)
		breakdown.Summary.PaymentCount += len(g.Payments)
		breakdown.Summary.TotalAmount = breakdown.Summary.TotalAmount.Add(g.TotalPaid)
	}
	breakdown.Summary.CustomerCount = len(breakdown.Details)

	sort.SliceStable(breakdown.Details, func(i, j int) bool {
		return breakdown.Details[i].TotalPaid.GreaterThan(breakdown.Details[j].TotalPaid)
	})

	return breakdown
}

// derivePaymentStatus applies the status priority chain. The first matching
// rule wins:
//  1. nothing left on the sale, fully paid
//  2. an explicit payment mode marker on the record
//  3. a record that moved no money at all
//  4. part of the sale covered
//  5. the whole sale covered
//  6. everything else still owes
func derivePaymentStatus(modeHint string, amountPaid, saleAmount, balance decimal.Decimal) PaymentStatus {
	if balance.Sign() <= 0 {
		return StatusFullPaid
	}
	switch modeHint {
	case "partial":
		return StatusPartialPaid
	case "full":
		return StatusFullPaid
	}
	switch {
	case saleAmount.IsZero() && amountPaid.IsZero():
		return StatusPartialLeft
	case amountPaid.IsPositive() && amountPaid.LessThan(saleAmount):
		return StatusPartialPaid
	case saleAmount.IsPositive() && amountPaid.GreaterThanOrEqual(saleAmount):
		return StatusFullPaid
	default:
		return StatusPartialLeft
	}
}

// resolveDisplayName picks the presentation name for a customer group:
// customer row fields first, then a name recorded on the entry itself, then
// the generic fallbacks depending on whether a customer row exists at all.
func resolveDisplayName(c *partner.Customer, entryHint string) string {
	if c != nil {
		if s := strings.TrimSpace(c.FullName); s != "" {
			return s
		}
		if s := strings.TrimSpace(c.ShopName); s != "" {
			return s
		}
	}
	if entryHint != "" {
		return entryHint
	}
	if c != nil {
		return partner.FallbackDisplayName
	}
	return partner.UnknownDisplayName
}
