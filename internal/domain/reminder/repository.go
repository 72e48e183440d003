package reminder

import "context"

// LogRepository persists reminder logs
type LogRepository interface {
	// Save inserts a reminder log
	Save(ctx context.Context, log *Log) error

	// FindRecent retrieves the most recent logs, newest first
	FindRecent(ctx context.Context, limit int) ([]Log, error)

	// FindByCustomer retrieves logs for one customer, newest first
	FindByCustomer(ctx context.Context, customerID string, limit int) ([]Log, error)
}
