// Package reminder dispatches WhatsApp payment reminders to customers with
// outstanding dues, with an idempotency window so nobody gets nagged twice
// for the same debt.
package reminder

import (
	"context"
	"fmt"
	"strings"
	"time"

	ledgerapp "github.com/teakhata/backend/internal/application/ledger"
	"github.com/teakhata/backend/internal/domain/ledger"
	"github.com/teakhata/backend/internal/domain/reminder"
	"github.com/teakhata/backend/internal/domain/report"
	"github.com/teakhata/backend/internal/domain/shared"
	"github.com/teakhata/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// reminderChannel labels metrics; WhatsApp is the only delivery channel.
const reminderChannel = "whatsapp"

// SnapshotLoader loads one consistent snapshot of the upstream data.
type SnapshotLoader interface {
	Load(ctx context.Context, q ledgerapp.SnapshotQuery) (*ledgerapp.Snapshot, error)
}

// Sender delivers one message and returns the gateway message ID.
type Sender interface {
	Send(ctx context.Context, to, body string) (string, error)
}

// Service composes and dispatches payment reminders.
type Service struct {
	snapshots    SnapshotLoader
	logs         reminder.LogRepository
	dedup        shared.IdempotencyStore
	sender       Sender
	businessName string
	countryCode  string
	dedupTTL     time.Duration
	logger       *zap.Logger
	appMetrics   *telemetry.AppMetrics
}

// NewService creates a new reminder Service. dedup may be nil to disable
// the repeat-send guard.
func NewService(
	snapshots SnapshotLoader,
	logs reminder.LogRepository,
	dedup shared.IdempotencyStore,
	sender Sender,
	businessName string,
	countryCode string,
	dedupTTL time.Duration,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if countryCode == "" {
		countryCode = "91"
	}
	if dedupTTL <= 0 {
		dedupTTL = 24 * time.Hour
	}
	return &Service{
		snapshots:    snapshots,
		logs:         logs,
		dedup:        dedup,
		sender:       sender,
		businessName: businessName,
		countryCode:  countryCode,
		dedupTTL:     dedupTTL,
		logger:       logger,
	}
}

// SetAppMetrics sets the application metrics collector
func (s *Service) SetAppMetrics(am *telemetry.AppMetrics) {
	s.appMetrics = am
}

// SendDue dispatches a reminder to every customer with outstanding dues.
// Customers without a reachable phone are skipped and logged, as are
// customers already reminded for the same unpaid entry within the dedup
// window. One bad customer never stops the batch.
func (s *Service) SendDue(ctx context.Context, req SendRequest) (*DispatchSummary, error) {
	snap, err := s.snapshots.Load(ctx, ledgerapp.SnapshotQuery{})
	if err != nil {
		return nil, err
	}

	summary := ledger.ComputeSummary(snap.Entries)
	dues := report.BuildOutstandingBreakdown(summary, snap.Entries, snap.Customers, s.countryCode)

	result := &DispatchSummary{StartedAt: time.Now()}
	for i := range dues {
		due := &dues[i]
		if req.CustomerID != "" && due.CustomerID != req.CustomerID {
			continue
		}
		if req.MinAmount != nil && due.Outstanding.LessThan(*req.MinAmount) {
			continue
		}
		result.Considered++
		outcome := s.dispatchOne(ctx, snap, due)
		result.add(outcome)
	}

	if req.CustomerID != "" && result.Considered == 0 {
		return nil, shared.NewDomainError("NOT_FOUND", "Customer has no outstanding balance")
	}

	s.logger.Info("reminders dispatched",
		zap.Int("considered", result.Considered),
		zap.Int("sent", result.Sent),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed))

	return result, nil
}

// Preview composes the reminder for one customer without sending it.
func (s *Service) Preview(ctx context.Context, customerID string) (*PreviewResponse, error) {
	if customerID == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Customer is required")
	}

	snap, err := s.snapshots.Load(ctx, ledgerapp.SnapshotQuery{})
	if err != nil {
		return nil, err
	}

	summary := ledger.ComputeSummary(snap.Entries)
	dues := report.BuildOutstandingBreakdown(summary, snap.Entries, snap.Customers, s.countryCode)

	for i := range dues {
		if dues[i].CustomerID != customerID {
			continue
		}
		due := &dues[i]
		resp := &PreviewResponse{
			CustomerID: due.CustomerID,
			Name:       due.Name,
			Phone:      due.Phone,
			Amount:     due.Outstanding,
			Body:       s.compose(due),
			CanSend:    due.Phone != "",
		}
		if !resp.CanSend {
			resp.Reason = reminder.SkipNoPhone
		}
		return resp, nil
	}

	return nil, shared.NewDomainError("NOT_FOUND", "Customer has no outstanding balance")
}

// ListLogs returns past reminder attempts, newest first.
func (s *Service) ListLogs(ctx context.Context, customerID string, limit int) ([]LogEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}

	var (
		logs []reminder.Log
		err  error
	)
	if customerID != "" {
		logs, err = s.logs.FindByCustomer(ctx, customerID, limit)
	} else {
		logs, err = s.logs.FindRecent(ctx, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list reminder logs: %w", err)
	}

	entries := make([]LogEntry, len(logs))
	for i := range logs {
		entries[i] = toLogEntry(&logs[i])
	}
	return entries, nil
}

func (s *Service) dispatchOne(ctx context.Context, snap *ledgerapp.Snapshot, due *report.OutstandingEntry) Outcome {
	entryID := latestUnpaidEntryID(snap.Entries, due.CustomerID)
	log := reminder.NewLog(due.CustomerID, due.Name, due.Phone, due.Outstanding, entryID)

	if due.Phone == "" {
		log.MarkSkipped(reminder.SkipNoPhone)
		return s.finish(ctx, log)
	}

	if s.dedup != nil {
		key := dedupKey(due.CustomerID, entryID)
		fresh, err := s.dedup.MarkProcessed(ctx, key, s.dedupTTL)
		if err != nil {
			// When the guard is down, not sending beats double-sending.
			log.MarkFailed("dedup check failed: " + err.Error())
			return s.finish(ctx, log)
		}
		if !fresh {
			log.MarkSkipped(reminder.SkipRecentlySent)
			return s.finish(ctx, log)
		}
	}

	body := s.compose(due)
	messageID, err := s.sender.Send(ctx, due.Phone, body)
	if err != nil {
		s.logger.Warn("reminder dispatch failed",
			zap.Error(err),
			zap.String("customerId", due.CustomerID))
		log.MarkFailed(err.Error())
	} else {
		log.MarkSent(messageID, body)
	}
	return s.finish(ctx, log)
}

// finish persists the attempt, records its metric, and folds the log into
// a dispatch outcome.
func (s *Service) finish(ctx context.Context, log *reminder.Log) Outcome {
	s.saveLog(ctx, log)
	if s.appMetrics != nil {
		s.appMetrics.RecordReminder(ctx, reminderChannel, strings.ToLower(string(log.Status)))
	}
	return outcomeFrom(log)
}

func (s *Service) compose(due *report.OutstandingEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Namaste %s, this is a payment reminder from %s. ", due.Name, s.businessName)
	fmt.Fprintf(&b, "Your outstanding balance is %s.", report.FormatMoney(due.Outstanding))
	if due.NextDue != nil {
		fmt.Fprintf(&b, " The due date is %s.", report.FormatDate(*due.NextDue))
	}
	b.WriteString(" Kindly arrange the payment. Thank you.")
	return b.String()
}

// Audit logging must not abort the batch.
func (s *Service) saveLog(ctx context.Context, log *reminder.Log) {
	if err := s.logs.Save(ctx, log); err != nil {
		s.logger.Error("failed to save reminder log",
			zap.Error(err),
			zap.String("customerId", log.CustomerID))
	}
}

// latestUnpaidEntryID finds the newest entry still carrying a balance for
// the customer. It anchors the dedup key: a new unpaid sale makes a fresh
// reminder legitimate even inside the dedup window.
func latestUnpaidEntryID(entries []ledger.Entry, customerID string) string {
	var (
		bestID string
		bestAt time.Time
		found  bool
	)
	for i := range entries {
		e := &entries[i]
		if e.CustomerKey() != customerID {
			continue
		}
		if !e.ResolvedBalance().IsPositive() {
			continue
		}
		if !found || e.CreatedAt.After(bestAt) {
			bestID = e.ID
			bestAt = e.CreatedAt
			found = true
		}
	}
	if !found {
		return "latest"
	}
	return bestID
}

func dedupKey(customerID, entryID string) string {
	return "reminder:" + customerID + ":" + entryID
}

func outcomeFrom(log *reminder.Log) Outcome {
	return Outcome{
		CustomerID: log.CustomerID,
		Name:       log.CustomerName,
		Phone:      log.Phone,
		Amount:     log.Amount,
		Status:     string(log.Status),
		Detail:     log.Detail,
	}
}
