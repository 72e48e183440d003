// Package listener subscribes to the Postgres NOTIFY channel fired by the
// ledger trigger and drops cached snapshots when the khata changes. POS
// terminals and spreadsheet imports write to the same managed database, so
// this is the only way the app learns about rows it did not insert itself.
package listener

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// Constants for listener configuration
const (
	defaultChannel              = "ledger_changed"
	defaultMinReconnectInterval = 10 * time.Second
	defaultMaxReconnectInterval = time.Minute
	defaultPingInterval         = 90 * time.Second
	defaultInvalidateTimeout    = 10 * time.Second
	defaultCloseTimeout         = 5 * time.Second
)

// Invalidator drops cached state when the upstream ledger changes.
// SnapshotService satisfies this.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// LedgerListener holds a dedicated Postgres connection listening for
// ledger change notifications and purges the snapshot cache on each one.
// A nil notification from lib/pq means the connection was re-established,
// so the cache is purged then too because changes may have been missed.
type LedgerListener struct {
	pgListener   *pq.Listener
	channel      string
	target       Invalidator
	pingInterval time.Duration
	logger       *zap.Logger
	cancelFn     context.CancelFunc
	doneCh       chan struct{}
	doneOnce     sync.Once
	mu           sync.Mutex
	isRunning    bool
}

// LedgerListenerOption is a functional option for configuring the listener
type LedgerListenerOption func(*LedgerListener)

// WithChannel sets the NOTIFY channel name
func WithChannel(channel string) LedgerListenerOption {
	return func(l *LedgerListener) {
		l.channel = channel
	}
}

// WithPingInterval sets how often the dedicated connection is pinged
func WithPingInterval(interval time.Duration) LedgerListenerOption {
	return func(l *LedgerListener) {
		l.pingInterval = interval
	}
}

// WithListenerLogger sets the logger for the listener
func WithListenerLogger(logger *zap.Logger) LedgerListenerOption {
	return func(l *LedgerListener) {
		l.logger = logger
	}
}

// NewLedgerListener creates a listener on the given Postgres DSN. The
// connection is established in the background; Run subscribes and blocks.
func NewLedgerListener(dsn string, target Invalidator, opts ...LedgerListenerOption) *LedgerListener {
	l := &LedgerListener{
		channel:      defaultChannel,
		target:       target,
		pingInterval: defaultPingInterval,
		logger:       zap.NewNop(),
		doneCh:       make(chan struct{}),
	}

	for _, opt := range opts {
		opt(l)
	}

	l.pgListener = pq.NewListener(dsn, defaultMinReconnectInterval, defaultMaxReconnectInterval, l.handleEvent)

	return l
}

// Run subscribes to the channel and processes notifications until the
// context is cancelled or Close is called. It blocks and should be run in
// a goroutine.
func (l *LedgerListener) Run(ctx context.Context) error {
	l.mu.Lock()
	if l.isRunning {
		l.mu.Unlock()
		return fmt.Errorf("listener already running")
	}
	l.isRunning = true
	l.mu.Unlock()

	// Create a cancellable context
	runCtx, cancel := context.WithCancel(ctx)
	l.mu.Lock()
	l.cancelFn = cancel
	l.mu.Unlock()

	if err := l.pgListener.Listen(l.channel); err != nil {
		l.mu.Lock()
		l.isRunning = false
		l.mu.Unlock()
		l.markDone()
		return fmt.Errorf("failed to listen on channel %s: %w", l.channel, err)
	}

	l.logger.Info("Listening for ledger changes", zap.String("channel", l.channel))

	ticker := time.NewTicker(l.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-runCtx.Done():
			l.logger.Info("Ledger change listener stopped")
			l.mu.Lock()
			l.isRunning = false
			l.mu.Unlock()
			l.markDone()
			return runCtx.Err()
		case n := <-l.pgListener.Notify:
			if n == nil {
				// Connection was re-established, changes may have been missed
				l.logger.Info("Listener reconnected, dropping cached snapshots")
			} else {
				l.logger.Debug("Ledger change notification",
					zap.String("channel", n.Channel),
					zap.String("payload", n.Extra))
			}
			l.invalidate(runCtx)
		case <-ticker.C:
			if err := l.pgListener.Ping(); err != nil {
				l.logger.Warn("Ledger listener ping failed", zap.Error(err))
				l.invalidate(runCtx)
			}
		}
	}
}

// invalidate purges the snapshot cache, logging instead of failing the
// listen loop on error
func (l *LedgerListener) invalidate(ctx context.Context) {
	invCtx, cancel := context.WithTimeout(ctx, defaultInvalidateTimeout)
	defer cancel()

	if err := l.target.Invalidate(invCtx); err != nil {
		l.logger.Error("Failed to invalidate snapshot cache", zap.Error(err))
	}
}

// handleEvent logs connection state changes on the dedicated listen
// connection. Reconnection itself is handled by lib/pq.
func (l *LedgerListener) handleEvent(ev pq.ListenerEventType, err error) {
	switch ev {
	case pq.ListenerEventConnected:
		l.logger.Info("Ledger listener connected")
	case pq.ListenerEventDisconnected:
		l.logger.Warn("Ledger listener disconnected", zap.Error(err))
	case pq.ListenerEventReconnected:
		l.logger.Info("Ledger listener reconnected")
	case pq.ListenerEventConnectionAttemptFailed:
		l.logger.Warn("Ledger listener reconnect attempt failed", zap.Error(err))
	}
}

// markDone safely marks the listener as done
func (l *LedgerListener) markDone() {
	l.doneOnce.Do(func() {
		close(l.doneCh)
	})
}

// Close stops the run loop and closes the dedicated connection
func (l *LedgerListener) Close() error {
	l.mu.Lock()
	cancelFn := l.cancelFn
	l.mu.Unlock()

	if cancelFn != nil {
		cancelFn()
		// Wait for the run loop to stop with timeout
		select {
		case <-l.doneCh:
		case <-time.After(defaultCloseTimeout):
			l.logger.Warn("Timeout waiting for listener to stop")
		}
	}

	return l.pgListener.Close()
}
