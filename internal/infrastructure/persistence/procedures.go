package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	ledgerapp "github.com/teakhata/backend/internal/application/ledger"
)

// StoredProcedureCaller implements ledger.ProcedureCaller against the
// upstream bookkeeping procedures. record_sale and record_payment own all
// balance arithmetic and stock drawdown inside the database; this type only
// marshals arguments and reads back the new entry ID.
type StoredProcedureCaller struct {
	db *gorm.DB
}

// NewStoredProcedureCaller creates a new StoredProcedureCaller
func NewStoredProcedureCaller(db *gorm.DB) *StoredProcedureCaller {
	return &StoredProcedureCaller{db: db}
}

// RecordSale calls record_sale and returns the new entry ID
func (c *StoredProcedureCaller) RecordSale(ctx context.Context, in ledgerapp.RecordSaleInput) (string, error) {
	var entryID string
	err := c.db.WithContext(ctx).
		Raw("SELECT record_sale(?, ?, ?, ?, ?, ?, ?)",
			in.CustomerID,
			nullIfEmpty(in.BatchID),
			in.Quantity,
			in.Rate,
			in.PaidAmount,
			in.DueDate,
			nullIfEmpty(in.Note)).
		Scan(&entryID).Error
	if err != nil {
		return "", fmt.Errorf("record_sale failed: %w", err)
	}
	if entryID == "" {
		return "", fmt.Errorf("record_sale returned no entry id")
	}
	return entryID, nil
}

// RecordPayment calls record_payment and returns the new entry ID
func (c *StoredProcedureCaller) RecordPayment(ctx context.Context, in ledgerapp.RecordPaymentInput) (string, error) {
	var entryID string
	err := c.db.WithContext(ctx).
		Raw("SELECT record_payment(?, ?, ?, ?, ?)",
			in.CustomerID,
			in.Amount,
			nullIfEmpty(in.Mode),
			nullIfEmpty(in.RelatedSaleID),
			nullIfEmpty(in.Note)).
		Scan(&entryID).Error
	if err != nil {
		return "", fmt.Errorf("record_payment failed: %w", err)
	}
	if entryID == "" {
		return "", fmt.Errorf("record_payment returned no entry id")
	}
	return entryID, nil
}

// nullIfEmpty sends optional text arguments as SQL NULL instead of ''.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Ensure StoredProcedureCaller implements ProcedureCaller
var _ ledgerapp.ProcedureCaller = (*StoredProcedureCaller)(nil)
