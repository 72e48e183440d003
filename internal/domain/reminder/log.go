// Package reminder holds the payment reminder audit trail. Every dispatch
// attempt is logged, including the ones that were skipped, so the owner can
// see exactly which customers were nudged and when.
package reminder

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/teakhata/backend/internal/domain/shared"
)

// LogStatus is the outcome of one reminder attempt.
type LogStatus string

const (
	StatusSent    LogStatus = "SENT"
	StatusSkipped LogStatus = "SKIPPED"
	StatusFailed  LogStatus = "FAILED"
)

// Skip reasons recorded in Detail when a reminder is not dispatched.
const (
	SkipNoPhone      = "no_reachable_phone"
	SkipRecentlySent = "recently_sent"
)

// ChannelWhatsApp is the only dispatch channel currently supported.
const ChannelWhatsApp = "whatsapp"

// Log is one reminder attempt for one customer.
type Log struct {
	shared.BaseEntity
	CustomerID   string
	CustomerName string
	Phone        string          // Normalized phone the message was addressed to
	Amount       decimal.Decimal // Outstanding amount quoted in the message
	EntryID      string          // Latest unpaid ledger entry backing the reminder
	Channel      string
	Status       LogStatus
	Detail       string // Gateway message ID, skip reason, or failure detail
	Body         string // Message text as composed
}

// NewLog creates a reminder log in no particular outcome. Callers mark the
// outcome once the dispatch attempt resolves.
func NewLog(customerID, customerName, phone string, amount decimal.Decimal, entryID string) *Log {
	return &Log{
		BaseEntity:   shared.NewBaseEntity(),
		CustomerID:   customerID,
		CustomerName: customerName,
		Phone:        phone,
		Amount:       amount,
		EntryID:      entryID,
		Channel:      ChannelWhatsApp,
	}
}

// MarkSent records a successful dispatch
func (l *Log) MarkSent(messageID, body string) {
	l.Status = StatusSent
	l.Detail = messageID
	l.Body = body
	l.UpdatedAt = time.Now()
}

// MarkSkipped records that no message was dispatched and why
func (l *Log) MarkSkipped(reason string) {
	l.Status = StatusSkipped
	l.Detail = reason
	l.UpdatedAt = time.Now()
}

// MarkFailed records a dispatch failure
func (l *Log) MarkFailed(detail string) {
	l.Status = StatusFailed
	l.Detail = detail
	l.UpdatedAt = time.Now()
}

// WasSent returns true if the message reached the gateway
func (l *Log) WasSent() bool {
	return l.Status == StatusSent
}
