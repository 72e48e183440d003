package telemetry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teakhata/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"
)

func TestNewAppMetrics(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")

	am, err := telemetry.NewAppMetrics(telemetry.AppMetricsConfig{
		Meter:  meter,
		Logger: zap.NewNop(),
	})

	require.NoError(t, err)
	require.NotNil(t, am)
}

func TestNewAppMetrics_NilMeter(t *testing.T) {
	am, err := telemetry.NewAppMetrics(telemetry.AppMetricsConfig{
		Meter:  nil,
		Logger: zap.NewNop(),
	})

	require.Error(t, err)
	assert.Nil(t, am)
	assert.Equal(t, "NewAppMetrics: meter cannot be nil", err.Error())
}

func TestAppMetrics_RecordSnapshotFetch(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	am, err := telemetry.NewAppMetrics(telemetry.AppMetricsConfig{
		Meter: meter,
	})
	require.NoError(t, err)

	ctx := context.Background()

	// Should not panic
	am.RecordSnapshotFetch(ctx, "all", 120*time.Millisecond)
	am.RecordSnapshotFetch(ctx, "customer", 15*time.Millisecond)
}

func TestAppMetrics_RecordSnapshotCache(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	am, err := telemetry.NewAppMetrics(telemetry.AppMetricsConfig{
		Meter: meter,
	})
	require.NoError(t, err)

	ctx := context.Background()

	// Should not panic
	am.RecordSnapshotCache(ctx, true)
	am.RecordSnapshotCache(ctx, false)
}

func TestAppMetrics_RecordReportRender(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	am, err := telemetry.NewAppMetrics(telemetry.AppMetricsConfig{
		Meter: meter,
	})
	require.NoError(t, err)

	ctx := context.Background()

	// Should not panic
	am.RecordReportRender(ctx, "comprehensive", "pdf", 2*time.Second)
	am.RecordReportRender(ctx, "daily_collections", "xlsx", 300*time.Millisecond)
}

func TestAppMetrics_RecordReportGenerated(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	am, err := telemetry.NewAppMetrics(telemetry.AppMetricsConfig{
		Meter: meter,
	})
	require.NoError(t, err)

	ctx := context.Background()

	// Should not panic
	am.RecordReportGenerated(ctx, "comprehensive", "pdf")
	am.RecordReportGenerated(ctx, "ledger", "csv")
}

func TestAppMetrics_RecordReminder(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	am, err := telemetry.NewAppMetrics(telemetry.AppMetricsConfig{
		Meter: meter,
	})
	require.NoError(t, err)

	ctx := context.Background()

	// Should not panic
	am.RecordReminder(ctx, "whatsapp", "sent")
	am.RecordReminder(ctx, "whatsapp", "skipped")
	am.RecordReminder(ctx, "whatsapp", "failed")
}

// Mock implementation for testing periodic collection

type mockLedgerStatsProvider struct {
	customers int64
	entries   int64
	err       error
}

func (m *mockLedgerStatsProvider) CountCustomers(ctx context.Context) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.customers, nil
}

func (m *mockLedgerStatsProvider) CountLedgerEntries(ctx context.Context) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.entries, nil
}

func TestAppMetrics_PeriodicCollection(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")

	statsProvider := &mockLedgerStatsProvider{
		customers: 42,
		entries:   1280,
	}

	am, err := telemetry.NewAppMetrics(telemetry.AppMetricsConfig{
		Meter:         meter,
		Logger:        zap.NewNop(),
		StatsProvider: statsProvider,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start periodic collection with short interval for testing
	am.StartPeriodicCollection(ctx, 100*time.Millisecond)

	// Wait for at least one collection cycle
	time.Sleep(150 * time.Millisecond)

	// Stop collection
	am.Stop()

	// Should complete without error
}

func TestAppMetrics_PeriodicCollection_NoProvider(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")

	am, err := telemetry.NewAppMetrics(telemetry.AppMetricsConfig{
		Meter:  meter,
		Logger: zap.NewNop(),
		// No stats provider
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Should not panic with no stats provider
	am.StartPeriodicCollection(ctx, 50*time.Millisecond)

	time.Sleep(100 * time.Millisecond)
	am.Stop()
}

func TestAppMetrics_PeriodicCollection_ProviderError(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")

	statsProvider := &mockLedgerStatsProvider{
		err: errors.New("connection refused"),
	}

	am, err := telemetry.NewAppMetrics(telemetry.AppMetricsConfig{
		Meter:         meter,
		Logger:        zap.NewNop(),
		StatsProvider: statsProvider,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Count failures are logged, not fatal
	am.StartPeriodicCollection(ctx, 50*time.Millisecond)

	time.Sleep(100 * time.Millisecond)
	am.Stop()
}

func TestAppMetrics_Stop_Idempotent(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	am, err := telemetry.NewAppMetrics(telemetry.AppMetricsConfig{
		Meter: meter,
	})
	require.NoError(t, err)

	// Calling Stop multiple times should not panic
	am.Stop()
	am.Stop()
	am.Stop()
}

func TestAppMetrics_StartPeriodicCollection_OnlyOnce(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	am, err := telemetry.NewAppMetrics(telemetry.AppMetricsConfig{
		Meter:  meter,
		Logger: zap.NewNop(),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Calling StartPeriodicCollection multiple times should only start once
	am.StartPeriodicCollection(ctx, time.Hour)
	am.StartPeriodicCollection(ctx, time.Minute)
	am.StartPeriodicCollection(ctx, time.Second)

	am.Stop()
}

func TestMetricsError_Error(t *testing.T) {
	err := &telemetry.MetricsError{
		Op:  "TestOperation",
		Err: "test error message",
	}

	assert.Equal(t, "TestOperation: test error message", err.Error())
}
