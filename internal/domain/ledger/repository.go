package ledger

import (
	"context"
	"time"
)

// EntryFilter narrows an entry listing. Zero values mean "no constraint".
type EntryFilter struct {
	CustomerID string
	From       *time.Time
	To         *time.Time
}

// EntryRepository reads ledger entries from the managed database. The
// ledger is append-only and externally owned: new entries are recorded
// through stored procedures (see application/ledger), never through this
// interface.
type EntryRepository interface {
	// List returns entries matching the filter, most recent first.
	List(ctx context.Context, filter EntryFilter) ([]Entry, error)
}
