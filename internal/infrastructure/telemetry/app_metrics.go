// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// AppMetrics tracks the reconciliation workload: snapshot fetches from
// the khata database, report rendering and reminder dispatch.
type AppMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	// Event metrics recorded at call sites
	snapshotFetchDuration *Histogram
	snapshotCacheTotal    *Counter
	renderDuration        *Histogram
	reportGeneratedTotal  *Counter
	reminderTotal         *Counter

	// Khata size gauges, collected periodically. The ledger tables are
	// written by external tools, so row counts are how we notice import
	// storms or a stalled POS sync.
	customerCount *Gauge
	entryCount    *Gauge

	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	statsProvider LedgerStatsProvider
}

// LedgerStatsProvider supplies khata table sizes for periodic gauge
// collection. This interface keeps the telemetry layer from depending on
// the persistence layer directly.
type LedgerStatsProvider interface {
	// CountCustomers returns the number of customer rows
	CountCustomers(ctx context.Context) (int64, error)

	// CountLedgerEntries returns the number of ledger entry rows
	CountLedgerEntries(ctx context.Context) (int64, error)
}

// AppMetricsConfig holds configuration for application metrics.
type AppMetricsConfig struct {
	Meter           metric.Meter
	Logger          *zap.Logger
	CollectInterval time.Duration // Default: 5 minutes
	StatsProvider   LedgerStatsProvider
}

// Histogram bucket boundaries in seconds. Snapshot fetches read several
// tables in one go; renders include headless Chrome startup.
var (
	snapshotFetchBuckets = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
	renderBuckets        = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}
)

// NewAppMetrics creates a new AppMetrics instance.
func NewAppMetrics(cfg AppMetricsConfig) (*AppMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	am := &AppMetrics{
		meter:         cfg.Meter,
		logger:        logger,
		stopChan:      make(chan struct{}),
		statsProvider: cfg.StatsProvider,
	}

	var err error

	am.snapshotFetchDuration, err = NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "khata_snapshot_fetch_seconds",
		Description: "Time to load a ledger snapshot from the khata database",
		Unit:        "s",
		Boundaries:  snapshotFetchBuckets,
	})
	if err != nil {
		return nil, err
	}

	am.snapshotCacheTotal, err = NewCounter(
		cfg.Meter,
		"khata_snapshot_cache_total",
		"Snapshot cache lookups by outcome",
		"{lookups}",
	)
	if err != nil {
		return nil, err
	}

	am.renderDuration, err = NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "khata_report_render_seconds",
		Description: "Time to render a report document into a file",
		Unit:        "s",
		Boundaries:  renderBuckets,
	})
	if err != nil {
		return nil, err
	}

	am.reportGeneratedTotal, err = NewCounter(
		cfg.Meter,
		"khata_report_generated_total",
		"Total number of report files generated",
		"{reports}",
	)
	if err != nil {
		return nil, err
	}

	am.reminderTotal, err = NewCounter(
		cfg.Meter,
		"khata_reminder_total",
		"Total number of payment reminder attempts by outcome",
		"{reminders}",
	)
	if err != nil {
		return nil, err
	}

	am.customerCount, err = NewGauge(
		cfg.Meter,
		"khata_customers",
		"Number of customer rows in the khata database",
		"{customers}",
	)
	if err != nil {
		return nil, err
	}

	am.entryCount, err = NewGauge(
		cfg.Meter,
		"khata_ledger_entries",
		"Number of ledger entry rows in the khata database",
		"{entries}",
	)
	if err != nil {
		return nil, err
	}

	return am, nil
}

// =============================================================================
// Snapshot Metrics
// =============================================================================

// RecordSnapshotFetch records the duration of one snapshot load from the
// database. Scope is "all" for whole-khata snapshots or "customer" for
// single-customer statements.
func (am *AppMetrics) RecordSnapshotFetch(ctx context.Context, scope string, d time.Duration) {
	am.snapshotFetchDuration.RecordDuration(ctx, d,
		AttrSnapshotScope.String(scope),
	)
}

// RecordSnapshotCache records one cache lookup outcome.
func (am *AppMetrics) RecordSnapshotCache(ctx context.Context, hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	am.snapshotCacheTotal.Inc(ctx, AttrCacheOutcome.String(outcome))
}

// =============================================================================
// Report Metrics
// =============================================================================

// RecordReportRender records how long one renderer took for a template
// and format.
func (am *AppMetrics) RecordReportRender(ctx context.Context, template, format string, d time.Duration) {
	am.renderDuration.RecordDuration(ctx, d,
		AttrReportTemplate.String(template),
		AttrReportFormat.String(format),
	)
}

// RecordReportGenerated counts one generated report file.
func (am *AppMetrics) RecordReportGenerated(ctx context.Context, template, format string) {
	am.reportGeneratedTotal.Inc(ctx,
		AttrReportTemplate.String(template),
		AttrReportFormat.String(format),
	)
}

// =============================================================================
// Reminder Metrics
// =============================================================================

// RecordReminder counts one reminder attempt. Status is the lowercased
// log outcome ("sent", "skipped", "failed").
func (am *AppMetrics) RecordReminder(ctx context.Context, channel, status string) {
	am.reminderTotal.Inc(ctx,
		AttrReminderChannel.String(channel),
		AttrReminderStatus.String(status),
	)
}

// =============================================================================
// Periodic Collection
// =============================================================================

// StartPeriodicCollection starts periodic collection of khata size
// gauges. This is non-blocking; use Stop() to stop collection.
func (am *AppMetrics) StartPeriodicCollection(ctx context.Context, interval time.Duration) {
	am.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}

		go am.runPeriodicCollection(ctx, interval)
	})
}

// runPeriodicCollection runs the periodic collection loop.
func (am *AppMetrics) runPeriodicCollection(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Collect immediately on start
	am.collectKhataGauges(ctx)

	for {
		select {
		case <-am.stopChan:
			am.logger.Info("Stopping periodic khata metrics collection")
			return
		case <-ctx.Done():
			am.logger.Info("Context cancelled, stopping periodic khata metrics collection")
			return
		case <-ticker.C:
			am.collectKhataGauges(ctx)
		}
	}
}

// collectKhataGauges records the current khata table sizes.
func (am *AppMetrics) collectKhataGauges(ctx context.Context) {
	if am.statsProvider == nil {
		am.logger.Debug("No stats provider configured, skipping khata gauge collection")
		return
	}

	customers, err := am.statsProvider.CountCustomers(ctx)
	if err != nil {
		am.logger.Warn("Failed to count customers for metrics", zap.Error(err))
	} else {
		am.customerCount.Record(ctx, customers)
	}

	entries, err := am.statsProvider.CountLedgerEntries(ctx)
	if err != nil {
		am.logger.Warn("Failed to count ledger entries for metrics", zap.Error(err))
	} else {
		am.entryCount.Record(ctx, entries)
	}
}

// Stop stops the periodic collection.
func (am *AppMetrics) Stop() {
	am.stopOnce.Do(func() {
		close(am.stopChan)
	})
}

// =============================================================================
// Error Types
// =============================================================================

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewAppMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
