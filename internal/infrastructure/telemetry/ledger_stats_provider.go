// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"

	"gorm.io/gorm"
)

// GormLedgerStatsProvider implements LedgerStatsProvider using GORM.
// It counts rows in the khata tables directly.
type GormLedgerStatsProvider struct {
	db *gorm.DB
}

// NewGormLedgerStatsProvider creates a new GormLedgerStatsProvider.
func NewGormLedgerStatsProvider(db *gorm.DB) *GormLedgerStatsProvider {
	return &GormLedgerStatsProvider{db: db}
}

// CountCustomers returns the number of customer rows.
func (p *GormLedgerStatsProvider) CountCustomers(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("customers").
		Count(&count).Error

	return count, err
}

// CountLedgerEntries returns the number of ledger entry rows.
func (p *GormLedgerStatsProvider) CountLedgerEntries(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("ledger_entries").
		Count(&count).Error

	return count, err
}
