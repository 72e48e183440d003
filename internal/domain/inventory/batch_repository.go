package inventory

import "context"

// BatchRepository reads tea batch rows from the managed database.
// Batch mutations (purchases, stock adjustments) happen upstream.
type BatchRepository interface {
	// List returns all batches, most recently created first.
	List(ctx context.Context) ([]Batch, error)

	// FindByID returns one batch or shared.ErrNotFound.
	FindByID(ctx context.Context, id string) (*Batch, error)
}
