package partner

import "context"

// CustomerRepository reads customer rows from the managed database. The
// table is externally owned, so the interface is read-only; customer
// mutations happen in the upstream system.
type CustomerRepository interface {
	// List returns all customers, most recently created first.
	List(ctx context.Context) ([]Customer, error)

	// FindByID returns one customer or shared.ErrNotFound.
	FindByID(ctx context.Context, id string) (*Customer, error)

	// Search filters by name, shop name or phone fragment.
	Search(ctx context.Context, query string, limit int) ([]Customer, error)
}
