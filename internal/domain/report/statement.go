package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/teakhata/backend/internal/domain/ledger"
	"github.com/teakhata/backend/internal/domain/partner"
)

// StatementLine is one row of a customer's ledger statement.
type StatementLine struct {
	EntryID     string          `json:"entry_id"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
	Status      PaymentStatus   `json:"status"`
}

// Statement is the chronological khata view of one customer: every entry
// replayed oldest first with a running balance.
type Statement struct {
	CustomerID   string          `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	Lines        []StatementLine `json:"lines"`
	Closing      decimal.Decimal `json:"closing"`
}

// BuildStatement replays a customer's entries in chronological order.
// Debit is the sale value going out, credit the money coming in (a sale
// paid partly on the spot contributes both), and the running balance moves
// by debit minus credit. The per-line status is derived from the running
// balance, which keeps the statement self-consistent even when stored
// balance columns disagree with the replay: balance cleared means full
// paid, money received on the line means partial paid, otherwise the line
// still owes.
//
// Entries for other customers are ignored, so callers may pass an
// unfiltered snapshot. Undated entries sort before dated ones and keep
// their input order.
func BuildStatement(customer *partner.Customer, entries []ledger.Entry) *Statement {
	st := &Statement{}
	if customer != nil {
		st.CustomerID = customer.ID
		st.CustomerName = customer.DisplayName()
	}

	own := make([]ledger.Entry, 0, len(entries))
	for i := range entries {
		if customer == nil || entries[i].CustomerKey() != customer.ID {
			continue
		}
		own = append(own, entries[i])
	}
	sort.SliceStable(own, func(i, j int) bool {
		return own[i].CreatedAt.Before(own[j].CreatedAt)
	})

	running := decimal.Zero
	st.Lines = make([]StatementLine, 0, len(own))
	for i := range own {
		e := &own[i]

		var debit, credit decimal.Decimal
		if e.IsPayment() {
			credit = e.CollectedAmount()
		} else {
			debit = e.SaleAmount()
			credit = e.CollectedAmount()
		}
		running = running.Add(debit).Sub(credit)

		st.Lines = append(st.Lines, StatementLine{
			EntryID:     e.ID,
			Date:        e.CreatedAt,
			Description: describeEntry(e),
			Debit:       debit,
			Credit:      credit,
			Balance:     running,
			Status:      runningStatus(running, credit),
		})
	}
	st.Closing = running

	return st
}

// runningStatus mirrors the payment status chain, computed incrementally
// from the replayed balance.
func runningStatus(running, credit decimal.Decimal) PaymentStatus {
	switch {
	case running.Sign() <= 0:
		return StatusFullPaid
	case credit.IsPositive():
		return StatusPartialPaid
	default:
		return StatusPartialLeft
	}
}

func describeEntry(e *ledger.Entry) string {
	if e.IsPayment() {
		return "Payment received"
	}
	name := e.ProductName()
	qty := e.SaleQuantity()
	switch {
	case name != "" && qty.IsPositive():
		return fmt.Sprintf("Sale - %s (%s kg)", name, qty.String())
	case name != "":
		return fmt.Sprintf("Sale - %s", name)
	default:
		return "Sale"
	}
}
