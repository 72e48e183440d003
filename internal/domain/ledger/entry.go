// Package ledger models the transaction ledger of the tea business: sales
// on credit, payments against them, and the reconciliation rules that turn
// a messy append-only entry stream into consistent balances.
//
// Entries are never mutated or deleted upstream; corrections arrive as new
// entries. Rows originate from the managed database, older JSON exports and
// spreadsheet imports, so the same figure can appear under several field
// names and any field can be missing. Every accessor on Entry resolves one
// canonical figure through its alias chain and degrades to a harmless
// default instead of failing.
package ledger

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/teakhata/backend/internal/domain/shared/numeric"
)

// UnknownCustomerKey buckets entries whose customer identity cannot be
// resolved. Their money still counts toward global totals; they are only
// excluded from per-customer dues views.
const UnknownCustomerKey = "__unknown"

// PaymentType is the entry type value that marks a collection. Matching is
// case-insensitive; every other type is treated as a sale-like entry.
const PaymentType = "payment"

// Entry is one ledger row. Canonical typed fields cover the columns the
// managed database guarantees; Attrs carries the loosely named extras older
// sources used (qty, sale_amount, remaining_balance, profit, ...). Nil
// pointer fields mean the source row had no such figure.
type Entry struct {
	ID         string           `json:"id"`
	CustomerID string           `json:"customer_id"`
	Type       string           `json:"type"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	Quantity   *decimal.Decimal `json:"quantity,omitempty"`
	PaidAmount *decimal.Decimal `json:"paid_amount,omitempty"`
	Balance    *decimal.Decimal `json:"balance,omitempty"`
	BatchID    string           `json:"batch_id,omitempty"`
	TeaName    string           `json:"tea_name,omitempty"`
	DueDate    *time.Time       `json:"due_date,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	Attrs      map[string]any   `json:"attrs,omitempty"`
}

// IsPayment reports whether the entry records money coming in rather than
// tea going out.
func (e *Entry) IsPayment() bool {
	return strings.EqualFold(strings.TrimSpace(e.Type), PaymentType)
}

// CustomerKey resolves the bucket the entry belongs to: the customer id
// when one can be found, UnknownCustomerKey otherwise.
func (e *Entry) CustomerKey() string {
	if id := strings.TrimSpace(e.CustomerID); id != "" {
		return id
	}
	if id := e.attrString("customer_id", "customerId"); id != "" {
		return id
	}
	// Some exports store numeric customer ids.
	if d, ok := numeric.Finite(e.attr("customer_id")); ok {
		return d.String()
	}
	return UnknownCustomerKey
}

// SaleAmount resolves the sale value of the entry. For sale-like entries it
// is the entry's own amount; for payments it is the amount of the sale the
// payment belongs to, when the source recorded one.
func (e *Entry) SaleAmount() decimal.Decimal {
	if e.IsPayment() {
		return numeric.PickZero(e.attr("sale_amount"), e.attr("related_sale_amount"))
	}
	return numeric.PickZero(e.Amount, e.attr("sale_amount"), e.attr("total"))
}

// CollectedAmount resolves the money actually received on this entry: the
// full amount for payments, the paid-so-far portion for sales.
func (e *Entry) CollectedAmount() decimal.Decimal {
	if e.IsPayment() {
		return numeric.PickZero(e.Amount, e.PaidAmount, e.attr("paid_amount"), e.attr("amount_paid"))
	}
	return numeric.PickZero(e.PaidAmount, e.attr("paid_amount"), e.attr("amount_paid"), e.attr("paid"))
}

// ResolvedBalance resolves the remaining debt this entry reports. Sales
// fall back to amount minus paid; payments fall back to the
// remaining-after-payment aliases. Zero when nothing usable is recorded.
func (e *Entry) ResolvedBalance() decimal.Decimal {
	if e.IsPayment() {
		return numeric.PickZero(e.Balance, e.attr("remaining_balance"), e.attr("balance_after"))
	}
	if d := numeric.Pick(e.Balance, e.attr("balance")); d != nil {
		return *d
	}
	return e.SaleAmount().Sub(e.CollectedAmount())
}

// BalanceContribution is what the entry adds to its customer's running
// balance: sales push the unpaid remainder up, payments pull the collected
// amount down. The per-customer sum may go negative mid-stream; clamping to
// zero happens only when the total is read.
func (e *Entry) BalanceContribution() decimal.Decimal {
	if e.IsPayment() {
		return e.CollectedAmount().Neg()
	}
	if d := numeric.Pick(e.Balance, e.attr("balance")); d != nil {
		return *d
	}
	return e.SaleAmount().Sub(e.CollectedAmount())
}

// SaleQuantity resolves the quantity sold in kg, zero when unknown.
func (e *Entry) SaleQuantity() decimal.Decimal {
	return numeric.PickZero(e.Quantity, e.attr("qty"), e.attr("sold_quantity"))
}

// ExplicitProfit returns a directly recorded profit figure, nil when the
// source row had none. A recorded figure is trusted over any derivation.
func (e *Entry) ExplicitProfit() *decimal.Decimal {
	return numeric.Pick(e.attr("profit"), e.attr("pnl"))
}

// ExplicitPurchaseRate returns a per-entry buy rate override, nil when the
// row had none; callers fall back to the linked batch.
func (e *Entry) ExplicitPurchaseRate() *decimal.Decimal {
	return numeric.Pick(e.attr("purchase_rate"), e.attr("buy_rate"))
}

// ExplicitSaleRate returns a directly recorded per-kg sell rate, nil when
// the row had none; callers derive amount over quantity instead.
func (e *Entry) ExplicitSaleRate() *decimal.Decimal {
	return numeric.Pick(e.attr("rate"), e.attr("sale_rate"))
}

// ProductName resolves the tea label on the entry, empty when none.
func (e *Entry) ProductName() string {
	if s := strings.TrimSpace(e.TeaName); s != "" {
		return s
	}
	return e.attrString("tea_name", "product", "item")
}

// CustomerNameHint returns a customer name recorded on the entry itself,
// used when no customer row resolves for the entry's id.
func (e *Entry) CustomerNameHint() string {
	return e.attrString("customer_name", "customer")
}

// PaymentTypeHint returns the recorded payment mode marker
// ("full"/"partial"), empty when none.
func (e *Entry) PaymentTypeHint() string {
	return strings.ToLower(e.attrString("payment_type", "payment_mode"))
}

// DueOn resolves the due date: the typed column first, then string aliases
// from older exports.
func (e *Entry) DueOn() *time.Time {
	if e.DueDate != nil && !e.DueDate.IsZero() {
		return e.DueDate
	}
	return e.attrTime("due_date", "dueDate")
}

func (e *Entry) attr(key string) any {
	if e.Attrs == nil {
		return nil
	}
	return e.Attrs[key]
}

func (e *Entry) attrString(keys ...string) string {
	for _, key := range keys {
		if s, ok := e.attr(key).(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
	}
	return ""
}

var attrTimeLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

func (e *Entry) attrTime(keys ...string) *time.Time {
	raw := e.attrString(keys...)
	if raw == "" {
		return nil
	}
	for _, layout := range attrTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}
