package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/teakhata/backend/internal/domain/reminder"
	"github.com/teakhata/backend/internal/infrastructure/persistence/models"
)

// GormReminderLogRepository implements reminder.LogRepository using GORM
type GormReminderLogRepository struct {
	db *gorm.DB
}

// NewGormReminderLogRepository creates a new GormReminderLogRepository
func NewGormReminderLogRepository(db *gorm.DB) *GormReminderLogRepository {
	return &GormReminderLogRepository{db: db}
}

// Save inserts a reminder log
func (r *GormReminderLogRepository) Save(ctx context.Context, log *reminder.Log) error {
	model := models.ReminderLogModelFromDomain(log)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindRecent returns the most recent logs, newest first
func (r *GormReminderLogRepository) FindRecent(ctx context.Context, limit int) ([]reminder.Log, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var rows []models.ReminderLogModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return reminderLogsToDomain(rows), nil
}

// FindByCustomer returns logs for one customer, newest first
func (r *GormReminderLogRepository) FindByCustomer(ctx context.Context, customerID string, limit int) ([]reminder.Log, error) {
	q := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var rows []models.ReminderLogModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return reminderLogsToDomain(rows), nil
}

func reminderLogsToDomain(rows []models.ReminderLogModel) []reminder.Log {
	logs := make([]reminder.Log, len(rows))
	for i := range rows {
		logs[i] = *rows[i].ToDomain()
	}
	return logs
}

// Ensure GormReminderLogRepository implements LogRepository
var _ reminder.LogRepository = (*GormReminderLogRepository)(nil)
