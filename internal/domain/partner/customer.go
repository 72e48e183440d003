// Package partner holds the customer side of the tea ledger: the shops and
// individuals the business sells to on credit. Customer records live in the
// externally managed database; this package models the read-side snapshot
// the reconciliation core works on.
package partner

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/teakhata/backend/internal/domain/shared/contact"
)

// FallbackDisplayName is shown when a customer record exists but carries
// neither a full name nor a shop name.
const FallbackDisplayName = "Customer"

// UnknownDisplayName is shown when no customer record could be resolved at
// all for a ledger entry.
const UnknownDisplayName = "Unknown customer"

// Customer is a read-side snapshot of one customer row. IDs stay opaque
// strings because upstream sources disagree on their shape. OutstandingHint
// mirrors the cached outstanding_balance column, which may lag behind the
// ledger; the balance derived from entries decides inclusion in dues lists
// and the hint can only raise the displayed amount.
type Customer struct {
	ID              string          `json:"id"`
	FullName        string          `json:"full_name"`
	ShopName        string          `json:"shop_name"`
	Address         string          `json:"address"`
	Phone           string          `json:"phone"`
	WhatsappPhone   string          `json:"whatsapp_phone"`
	OutstandingHint decimal.Decimal `json:"outstanding_hint"`
	CreatedAt       time.Time       `json:"created_at"`
}

// DisplayName resolves the presentation name: full name, then shop name,
// then the generic fallback.
func (c *Customer) DisplayName() string {
	if s := strings.TrimSpace(c.FullName); s != "" {
		return s
	}
	if s := strings.TrimSpace(c.ShopName); s != "" {
		return s
	}
	return FallbackDisplayName
}

// BestPhone returns the preferred raw contact number: the WhatsApp number
// when present, the general phone otherwise. May be empty.
func (c *Customer) BestPhone() string {
	if s := strings.TrimSpace(c.WhatsappPhone); s != "" {
		return s
	}
	return strings.TrimSpace(c.Phone)
}

// ReachablePhone normalizes BestPhone for message delivery. The second
// return is false when the customer has no usable number; callers list such
// customers but skip them when dispatching reminders.
func (c *Customer) ReachablePhone(countryCode string) (string, bool) {
	raw := c.BestPhone()
	if raw == "" {
		return "", false
	}
	return contact.NormalizePhone(raw, countryCode)
}

// Index builds an ID keyed lookup over a customer slice. Later duplicates
// win, matching upstream export behavior where re-synced rows repeat.
func Index(customers []Customer) map[string]*Customer {
	idx := make(map[string]*Customer, len(customers))
	for i := range customers {
		if customers[i].ID == "" {
			continue
		}
		idx[customers[i].ID] = &customers[i]
	}
	return idx
}
