package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/teakhata/backend/internal/domain/partner"
	"github.com/teakhata/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Payment mode hints accepted by RecordPayment. The hint is stored with
// the entry and only influences how the receipt is labelled in reports.
const (
	PaymentModeFull    = "full"
	PaymentModePartial = "partial"
)

// RecordSaleInput captures one sale to write through the bookkeeping
// procedure.
type RecordSaleInput struct {
	CustomerID string
	BatchID    string
	Quantity   decimal.Decimal
	Rate       decimal.Decimal
	PaidAmount decimal.Decimal
	DueDate    *time.Time
	Note       string
}

// Amount is the sale value, quantity times rate.
func (in RecordSaleInput) Amount() decimal.Decimal {
	return in.Quantity.Mul(in.Rate)
}

// RecordPaymentInput captures one standalone payment to write through the
// bookkeeping procedure.
type RecordPaymentInput struct {
	CustomerID    string
	Amount        decimal.Decimal
	Mode          string
	RelatedSaleID string
	Note          string
}

// RecordResult identifies the ledger entry the procedure created.
type RecordResult struct {
	EntryID string `json:"entry_id"`
}

// ProcedureCaller invokes the upstream bookkeeping procedures. The
// procedures own all balance arithmetic; this layer never writes ledger
// rows directly.
type ProcedureCaller interface {
	// RecordSale calls record_sale and returns the new entry ID
	RecordSale(ctx context.Context, in RecordSaleInput) (string, error)

	// RecordPayment calls record_payment and returns the new entry ID
	RecordPayment(ctx context.Context, in RecordPaymentInput) (string, error)
}

// SnapshotInvalidator drops cached snapshots after a write.
type SnapshotInvalidator interface {
	Invalidate(ctx context.Context) error
}

// RecordService validates and records sales and payments.
type RecordService struct {
	procs     ProcedureCaller
	customers partner.CustomerRepository
	snapshots SnapshotInvalidator
	logger    *zap.Logger
}

// NewRecordService creates a new RecordService
func NewRecordService(
	procs ProcedureCaller,
	customers partner.CustomerRepository,
	snapshots SnapshotInvalidator,
	logger *zap.Logger,
) *RecordService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordService{
		procs:     procs,
		customers: customers,
		snapshots: snapshots,
		logger:    logger,
	}
}

// RecordSale records a sale for a customer
func (s *RecordService) RecordSale(ctx context.Context, in RecordSaleInput) (*RecordResult, error) {
	if in.CustomerID == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Customer is required")
	}
	if !in.Quantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Quantity must be greater than zero")
	}
	if !in.Rate.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Rate must be greater than zero")
	}
	if in.PaidAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Paid amount cannot be negative")
	}

	if _, err := s.customers.FindByID(ctx, in.CustomerID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Customer not found")
		}
		return nil, fmt.Errorf("failed to look up customer: %w", err)
	}

	entryID, err := s.procs.RecordSale(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to record sale: %w", err)
	}

	s.invalidate(ctx)

	s.logger.Info("sale recorded",
		zap.String("entryId", entryID),
		zap.String("customerId", in.CustomerID),
		zap.String("amount", in.Amount().String()))

	return &RecordResult{EntryID: entryID}, nil
}

// RecordPayment records a standalone payment from a customer
func (s *RecordService) RecordPayment(ctx context.Context, in RecordPaymentInput) (*RecordResult, error) {
	if in.CustomerID == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Customer is required")
	}
	if !in.Amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment amount must be greater than zero")
	}

	in.Mode = strings.ToLower(strings.TrimSpace(in.Mode))
	switch in.Mode {
	case "", PaymentModeFull, PaymentModePartial:
	default:
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment mode must be full or partial")
	}

	if _, err := s.customers.FindByID(ctx, in.CustomerID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Customer not found")
		}
		return nil, fmt.Errorf("failed to look up customer: %w", err)
	}

	entryID, err := s.procs.RecordPayment(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	s.invalidate(ctx)

	s.logger.Info("payment recorded",
		zap.String("entryId", entryID),
		zap.String("customerId", in.CustomerID),
		zap.String("amount", in.Amount.String()))

	return &RecordResult{EntryID: entryID}, nil
}

// Cache invalidation is best effort; the listener will catch up anyway.
func (s *RecordService) invalidate(ctx context.Context) {
	if s.snapshots == nil {
		return
	}
	if err := s.snapshots.Invalidate(ctx); err != nil {
		s.logger.Warn("snapshot invalidation failed after write", zap.Error(err))
	}
}
