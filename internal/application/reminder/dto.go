package reminder

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/teakhata/backend/internal/domain/reminder"
)

// SendRequest scopes a reminder dispatch. The zero value reminds every
// owing customer.
type SendRequest struct {
	// CustomerID restricts the dispatch to one customer
	CustomerID string
	// MinAmount skips dues below the threshold
	MinAmount *decimal.Decimal
}

// Outcome is the result of one customer's reminder attempt.
type Outcome struct {
	CustomerID string          `json:"customer_id"`
	Name       string          `json:"name"`
	Phone      string          `json:"phone,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Status     string          `json:"status"`
	Detail     string          `json:"detail,omitempty"`
}

// DispatchSummary reports a whole reminder batch.
type DispatchSummary struct {
	StartedAt  time.Time `json:"started_at"`
	Considered int       `json:"considered"`
	Sent       int       `json:"sent"`
	Skipped    int       `json:"skipped"`
	Failed     int       `json:"failed"`
	Outcomes   []Outcome `json:"outcomes"`
}

func (d *DispatchSummary) add(o Outcome) {
	d.Outcomes = append(d.Outcomes, o)
	switch reminder.LogStatus(o.Status) {
	case reminder.StatusSent:
		d.Sent++
	case reminder.StatusSkipped:
		d.Skipped++
	default:
		d.Failed++
	}
}

// PreviewResponse is a composed reminder that has not been sent.
type PreviewResponse struct {
	CustomerID string          `json:"customer_id"`
	Name       string          `json:"name"`
	Phone      string          `json:"phone,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Body       string          `json:"body"`
	CanSend    bool            `json:"can_send"`
	Reason     string          `json:"reason,omitempty"`
}

// LogEntry is one past reminder attempt in the API listing.
type LogEntry struct {
	ID           string          `json:"id"`
	CustomerID   string          `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	Phone        string          `json:"phone,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Channel      string          `json:"channel"`
	Status       string          `json:"status"`
	Detail       string          `json:"detail,omitempty"`
	SentAt       time.Time       `json:"sent_at"`
}

func toLogEntry(l *reminder.Log) LogEntry {
	return LogEntry{
		ID:           l.ID.String(),
		CustomerID:   l.CustomerID,
		CustomerName: l.CustomerName,
		Phone:        l.Phone,
		Amount:       l.Amount,
		Channel:      l.Channel,
		Status:       string(l.Status),
		Detail:       l.Detail,
		SentAt:       l.CreatedAt,
	}
}
