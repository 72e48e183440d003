// Package ledger provides the application services around the upstream
// khata database: loading consistent snapshots for the read side and
// recording new transactions through the bookkeeping procedures.
package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/teakhata/backend/internal/domain/inventory"
	"github.com/teakhata/backend/internal/domain/ledger"
	"github.com/teakhata/backend/internal/domain/partner"
	"github.com/teakhata/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// SnapshotQuery scopes a snapshot load. The zero value loads everything.
type SnapshotQuery struct {
	CustomerID string
	From       *time.Time
	To         *time.Time
}

// CacheKey returns a stable cache key for the query.
func (q SnapshotQuery) CacheKey() string {
	var b strings.Builder
	b.WriteString("snapshot:v1:")
	if q.CustomerID == "" {
		b.WriteString("all")
	} else {
		b.WriteString(q.CustomerID)
	}
	b.WriteByte(':')
	if q.From != nil {
		b.WriteString(q.From.UTC().Format(time.RFC3339))
	}
	b.WriteByte(':')
	if q.To != nil {
		b.WriteString(q.To.UTC().Format(time.RFC3339))
	}
	return b.String()
}

// Snapshot is one consistent read of the upstream data: every report and
// reminder derives from a snapshot, never from piecemeal queries.
type Snapshot struct {
	Customers []partner.Customer `json:"customers"`
	Entries   []ledger.Entry     `json:"entries"`
	Batches   []inventory.Batch  `json:"batches"`
	FetchedAt time.Time          `json:"fetched_at"`
}

// Age returns how long ago the snapshot was fetched
func (s *Snapshot) Age() time.Duration {
	return time.Since(s.FetchedAt)
}

// SnapshotCache caches assembled snapshots. Get returns (nil, nil) on a
// miss. Implementations keep entries past the service's freshness window
// so a stale copy can be served when the upstream database is down.
type SnapshotCache interface {
	Get(ctx context.Context, key string) (*Snapshot, error)
	Set(ctx context.Context, key string, snap *Snapshot) error
	Purge(ctx context.Context) error
}

// SnapshotService loads snapshots of the upstream data, caching them and
// falling back to a stale cached copy when the database is unreachable.
type SnapshotService struct {
	customers  partner.CustomerRepository
	entries    ledger.EntryRepository
	batches    inventory.BatchRepository
	cache      SnapshotCache
	freshFor   time.Duration
	logger     *zap.Logger
	appMetrics *telemetry.AppMetrics
}

// NewSnapshotService creates a new SnapshotService. cache may be nil to
// disable caching entirely.
func NewSnapshotService(
	customers partner.CustomerRepository,
	entries ledger.EntryRepository,
	batches inventory.BatchRepository,
	cache SnapshotCache,
	freshFor time.Duration,
	logger *zap.Logger,
) *SnapshotService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if freshFor <= 0 {
		freshFor = 30 * time.Second
	}
	return &SnapshotService{
		customers: customers,
		entries:   entries,
		batches:   batches,
		cache:     cache,
		freshFor:  freshFor,
		logger:    logger,
	}
}

// SetAppMetrics sets the application metrics collector
func (s *SnapshotService) SetAppMetrics(am *telemetry.AppMetrics) {
	s.appMetrics = am
}

// Load returns a snapshot for the query. A fresh cached copy is served
// directly; otherwise the upstream repositories are read and the result
// cached. If the upstream read fails and a stale copy exists, the stale
// copy is served instead of the error.
func (s *SnapshotService) Load(ctx context.Context, q SnapshotQuery) (*Snapshot, error) {
	key := q.CacheKey()

	var stale *Snapshot
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("snapshot cache read failed", zap.Error(err), zap.String("key", key))
		} else if cached != nil {
			if time.Since(cached.FetchedAt) < s.freshFor {
				if s.appMetrics != nil {
					s.appMetrics.RecordSnapshotCache(ctx, true)
				}
				return cached, nil
			}
			stale = cached
		}
		// Stale entries count as misses; they still cost a fetch.
		if s.appMetrics != nil {
			s.appMetrics.RecordSnapshotCache(ctx, false)
		}
	}

	start := time.Now()
	snap, err := s.fetch(ctx, q)
	if err != nil {
		if stale != nil {
			s.logger.Warn("serving stale snapshot, upstream fetch failed",
				zap.Error(err),
				zap.String("key", key),
				zap.Duration("age", stale.Age()))
			return stale, nil
		}
		return nil, err
	}

	if s.appMetrics != nil {
		scope := "all"
		if q.CustomerID != "" {
			scope = "customer"
		}
		s.appMetrics.RecordSnapshotFetch(ctx, scope, time.Since(start))
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, snap); err != nil {
			s.logger.Warn("snapshot cache write failed", zap.Error(err), zap.String("key", key))
		}
	}

	return snap, nil
}

// Invalidate drops every cached snapshot. Called after a transaction is
// recorded and by the change listener when the upstream database notifies.
func (s *SnapshotService) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Purge(ctx); err != nil {
		return fmt.Errorf("failed to purge snapshot cache: %w", err)
	}
	return nil
}

func (s *SnapshotService) fetch(ctx context.Context, q SnapshotQuery) (*Snapshot, error) {
	customers, err := s.customers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load customers: %w", err)
	}

	entries, err := s.entries.List(ctx, ledger.EntryFilter{
		CustomerID: q.CustomerID,
		From:       q.From,
		To:         q.To,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger entries: %w", err)
	}

	batches, err := s.batches.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load batches: %w", err)
	}

	return &Snapshot{
		Customers: customers,
		Entries:   entries,
		Batches:   batches,
		FetchedAt: time.Now(),
	}, nil
}
