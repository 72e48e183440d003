package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/teakhata/backend/internal/domain/ledger"
	"github.com/teakhata/backend/internal/infrastructure/persistence/models"
)

// GormLedgerEntryRepository implements ledger.EntryRepository using GORM.
// The ledger_entries table is append-only and written exclusively by the
// bookkeeping procedures, so this repository only reads.
type GormLedgerEntryRepository struct {
	db *gorm.DB
}

// NewGormLedgerEntryRepository creates a new GormLedgerEntryRepository
func NewGormLedgerEntryRepository(db *gorm.DB) *GormLedgerEntryRepository {
	return &GormLedgerEntryRepository{db: db}
}

// List returns entries matching the filter, most recent first. The time
// range is half-open: From is inclusive, To is exclusive.
func (r *GormLedgerEntryRepository) List(ctx context.Context, filter ledger.EntryFilter) ([]ledger.Entry, error) {
	q := r.db.WithContext(ctx).Model(&models.LedgerEntryModel{}).
		Order("created_at DESC, id DESC")

	if filter.CustomerID != "" {
		q = q.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.From != nil {
		q = q.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("created_at < ?", *filter.To)
	}

	var rows []models.LedgerEntryModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]ledger.Entry, len(rows))
	for i := range rows {
		entries[i] = rows[i].ToDomain()
	}
	return entries, nil
}

// Ensure GormLedgerEntryRepository implements EntryRepository
var _ ledger.EntryRepository = (*GormLedgerEntryRepository)(nil)
