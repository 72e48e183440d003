package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/teakhata/backend/internal/domain/inventory"
	"github.com/teakhata/backend/internal/domain/shared"
	"github.com/teakhata/backend/internal/infrastructure/persistence/models"
)

// GormBatchRepository implements inventory.BatchRepository using GORM.
// Batch rows are written upstream when tea is purchased; the app reads them
// for stock reports.
type GormBatchRepository struct {
	db *gorm.DB
}

// NewGormBatchRepository creates a new GormBatchRepository
func NewGormBatchRepository(db *gorm.DB) *GormBatchRepository {
	return &GormBatchRepository{db: db}
}

// List returns all batches, most recently created first
func (r *GormBatchRepository) List(ctx context.Context) ([]inventory.Batch, error) {
	var rows []models.BatchModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	batches := make([]inventory.Batch, len(rows))
	for i := range rows {
		batches[i] = rows[i].ToDomain()
	}
	return batches, nil
}

// FindByID finds a batch by its ID
func (r *GormBatchRepository) FindByID(ctx context.Context, id string) (*inventory.Batch, error) {
	var row models.BatchModel
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	batch := row.ToDomain()
	return &batch, nil
}

// Ensure GormBatchRepository implements BatchRepository
var _ inventory.BatchRepository = (*GormBatchRepository)(nil)
