package cache

import (
	"context"
	"sync"
	"time"

	ledgerapp "github.com/teakhata/backend/internal/application/ledger"
)

// snapshotEntry is a cached snapshot with its expiration
type snapshotEntry struct {
	snap      *ledgerapp.Snapshot
	expiresAt time.Time
}

// InMemorySnapshotCache implements the ledger SnapshotCache using an
// in-memory map. This is suitable for single-instance deployments and
// testing. Statement queries with arbitrary date ranges each get their own
// key, so a background goroutine evicts expired entries.
type InMemorySnapshotCache struct {
	mu        sync.RWMutex
	entries   map[string]snapshotEntry
	ttl       time.Duration
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemorySnapshotCache creates a new in-memory snapshot cache whose
// entries expire after ttl
func NewInMemorySnapshotCache(ttl time.Duration) *InMemorySnapshotCache {
	cache := &InMemorySnapshotCache{
		entries:  make(map[string]snapshotEntry),
		ttl:      ttl,
		stopChan: make(chan struct{}),
	}

	// Start cleanup goroutine
	cache.wg.Add(1)
	go cache.cleanupLoop()

	return cache
}

// Get retrieves a cached snapshot. It returns (nil, nil) on a miss.
func (c *InMemorySnapshotCache) Get(ctx context.Context, key string) (*ledgerapp.Snapshot, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, exists := c.entries[key]
	if !exists {
		return nil, nil
	}

	// Check if entry has expired
	if time.Now().After(e.expiresAt) {
		return nil, nil // Expired, treat as a miss
	}

	return e.snap, nil
}

// Set stores a snapshot with the retention TTL
func (c *InMemorySnapshotCache) Set(ctx context.Context, key string, snap *ledgerapp.Snapshot) error {
	if snap == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = snapshotEntry{
		snap:      snap,
		expiresAt: time.Now().Add(c.ttl),
	}
	return nil
}

// Purge removes every cached snapshot
func (c *InMemorySnapshotCache) Purge(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]snapshotEntry)
	return nil
}

// Close stops the cleanup goroutine and releases resources
// Safe to call multiple times
func (c *InMemorySnapshotCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopChan)
		c.wg.Wait()
	})
	return nil
}

// cleanupLoop periodically removes expired entries
func (c *InMemorySnapshotCache) cleanupLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

// cleanup removes expired entries from the cache
func (c *InMemorySnapshotCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}

// Size returns the number of entries in the cache (for testing/monitoring)
func (c *InMemorySnapshotCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Ensure InMemorySnapshotCache implements SnapshotCache
var _ ledgerapp.SnapshotCache = (*InMemorySnapshotCache)(nil)
