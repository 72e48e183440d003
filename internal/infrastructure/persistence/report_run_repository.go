package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/teakhata/backend/internal/domain/report"
	"github.com/teakhata/backend/internal/domain/shared"
	"github.com/teakhata/backend/internal/infrastructure/persistence/models"
)

// GormReportRunRepository implements report.RunRepository using GORM
type GormReportRunRepository struct {
	db *gorm.DB
}

// NewGormReportRunRepository creates a new GormReportRunRepository
func NewGormReportRunRepository(db *gorm.DB) *GormReportRunRepository {
	return &GormReportRunRepository{db: db}
}

// Save creates or updates a report run
func (r *GormReportRunRepository) Save(ctx context.Context, run *report.Run) error {
	model := models.ReportRunModelFromDomain(run)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds a report run by its ID
func (r *GormReportRunRepository) FindByID(ctx context.Context, id uuid.UUID) (*report.Run, error) {
	var model models.ReportRunModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindRecent returns the most recent runs, newest first
func (r *GormReportRunRepository) FindRecent(ctx context.Context, limit int) ([]report.Run, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var rows []models.ReportRunModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	runs := make([]report.Run, len(rows))
	for i := range rows {
		runs[i] = *rows[i].ToDomain()
	}
	return runs, nil
}

// Ensure GormReportRunRepository implements RunRepository
var _ report.RunRepository = (*GormReportRunRepository)(nil)
