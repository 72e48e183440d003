package persistence

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/teakhata/backend/internal/domain/ledger"
)

// LedgerEntryModelSQLite is a SQLite-compatible mirror of the ledger_entries table for testing
type LedgerEntryModelSQLite struct {
	ID         string `gorm:"primaryKey"`
	CustomerID string `gorm:"index"`
	Type       string
	Amount     *decimal.Decimal
	Quantity   *decimal.Decimal
	PaidAmount *decimal.Decimal
	Balance    *decimal.Decimal
	BatchID    string
	TeaName    string
	DueDate    *time.Time
	CreatedAt  time.Time
	Attrs      *string
}

func (LedgerEntryModelSQLite) TableName() string {
	return "ledger_entries"
}

func setupLedgerEntryTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&LedgerEntryModelSQLite{})
	require.NoError(t, err)

	return db
}

func seedEntry(t *testing.T, db *gorm.DB, row LedgerEntryModelSQLite) {
	t.Helper()
	require.NoError(t, db.Create(&row).Error)
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func jsonAttrs(s string) *string {
	return &s
}

func TestGormLedgerEntryRepository_List(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	t.Run("returns entries newest first", func(t *testing.T) {
		db := setupLedgerEntryTestDB(t)
		repo := NewGormLedgerEntryRepository(db)

		seedEntry(t, db, LedgerEntryModelSQLite{ID: "e-1", CustomerID: "c-1", Type: "sale", CreatedAt: base})
		seedEntry(t, db, LedgerEntryModelSQLite{ID: "e-2", CustomerID: "c-1", Type: "payment", CreatedAt: base.Add(time.Hour)})
		seedEntry(t, db, LedgerEntryModelSQLite{ID: "e-3", CustomerID: "c-2", Type: "sale", CreatedAt: base.Add(2 * time.Hour)})

		entries, err := repo.List(ctx, ledger.EntryFilter{})

		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, "e-3", entries[0].ID)
		assert.Equal(t, "e-2", entries[1].ID)
		assert.Equal(t, "e-1", entries[2].ID)
	})

	t.Run("filters by customer", func(t *testing.T) {
		db := setupLedgerEntryTestDB(t)
		repo := NewGormLedgerEntryRepository(db)

		seedEntry(t, db, LedgerEntryModelSQLite{ID: "e-1", CustomerID: "c-1", Type: "sale", CreatedAt: base})
		seedEntry(t, db, LedgerEntryModelSQLite{ID: "e-2", CustomerID: "c-2", Type: "sale", CreatedAt: base.Add(time.Hour)})

		entries, err := repo.List(ctx, ledger.EntryFilter{CustomerID: "c-2"})

		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "e-2", entries[0].ID)
	})

	t.Run("applies a half-open time range", func(t *testing.T) {
		db := setupLedgerEntryTestDB(t)
		repo := NewGormLedgerEntryRepository(db)

		from := base
		to := base.Add(48 * time.Hour)

		seedEntry(t, db, LedgerEntryModelSQLite{ID: "before", CustomerID: "c-1", Type: "sale", CreatedAt: base.Add(-time.Minute)})
		seedEntry(t, db, LedgerEntryModelSQLite{ID: "at-from", CustomerID: "c-1", Type: "sale", CreatedAt: from})
		seedEntry(t, db, LedgerEntryModelSQLite{ID: "inside", CustomerID: "c-1", Type: "sale", CreatedAt: base.Add(24 * time.Hour)})
		seedEntry(t, db, LedgerEntryModelSQLite{ID: "at-to", CustomerID: "c-1", Type: "sale", CreatedAt: to})

		entries, err := repo.List(ctx, ledger.EntryFilter{From: &from, To: &to})

		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "inside", entries[0].ID)
		assert.Equal(t, "at-from", entries[1].ID)
	})

	t.Run("maps typed columns and loose attrs", func(t *testing.T) {
		db := setupLedgerEntryTestDB(t)
		repo := NewGormLedgerEntryRepository(db)

		due := base.Add(7 * 24 * time.Hour)
		seedEntry(t, db, LedgerEntryModelSQLite{
			ID:         "e-1",
			CustomerID: "c-1",
			Type:       "sale",
			Amount:     decPtr("450.50"),
			Quantity:   decPtr("12.5"),
			PaidAmount: decPtr("100"),
			Balance:    decPtr("350.50"),
			BatchID:    "b-1",
			TeaName:    "Assam CTC",
			DueDate:    &due,
			CreatedAt:  base,
			Attrs:      jsonAttrs(`{"qty": 12.5, "note": "first lot", "remaining_balance": "350.50"}`),
		})

		entries, err := repo.List(ctx, ledger.EntryFilter{})

		require.NoError(t, err)
		require.Len(t, entries, 1)
		got := entries[0]
		assert.Equal(t, "c-1", got.CustomerID)
		assert.Equal(t, "sale", got.Type)
		require.NotNil(t, got.Amount)
		assert.Equal(t, "450.5", got.Amount.String())
		assert.Equal(t, "Assam CTC", got.TeaName)
		assert.Equal(t, "b-1", got.BatchID)
		require.NotNil(t, got.DueDate)
		assert.True(t, got.DueDate.Equal(due))
		assert.Equal(t, json.Number("12.5"), got.Attrs["qty"])
		assert.Equal(t, "first lot", got.Attrs["note"])
		assert.Equal(t, "350.50", got.Attrs["remaining_balance"])
	})

	t.Run("keeps absent figures nil", func(t *testing.T) {
		db := setupLedgerEntryTestDB(t)
		repo := NewGormLedgerEntryRepository(db)

		seedEntry(t, db, LedgerEntryModelSQLite{ID: "e-1", CustomerID: "c-1", Type: "payment", Amount: decPtr("200"), CreatedAt: base})

		entries, err := repo.List(ctx, ledger.EntryFilter{})

		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Nil(t, entries[0].Quantity)
		assert.Nil(t, entries[0].PaidAmount)
		assert.Nil(t, entries[0].Balance)
		assert.Nil(t, entries[0].DueDate)
	})

	t.Run("returns empty slice for empty ledger", func(t *testing.T) {
		db := setupLedgerEntryTestDB(t)
		repo := NewGormLedgerEntryRepository(db)

		entries, err := repo.List(ctx, ledger.EntryFilter{})

		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
