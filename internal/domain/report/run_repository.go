package report

import (
	"context"

	"github.com/google/uuid"
)

// RunRepository persists report runs
type RunRepository interface {
	// Save inserts or updates a report run
	Save(ctx context.Context, run *Run) error

	// FindByID retrieves a run by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Run, error)

	// FindRecent retrieves the most recent runs, newest first
	FindRecent(ctx context.Context, limit int) ([]Run, error)
}
