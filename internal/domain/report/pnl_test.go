package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teakhata/backend/internal/domain/inventory"
	"github.com/teakhata/backend/internal/domain/ledger"
)

func TestPnlTransactionTier(t *testing.T) {
	// Mixed-case type, rate on the entry: 500/10 = 50 sell rate, 30 buy
	// rate, 20 profit per kg, 200 total.
	entries := []ledger.Entry{
		{ID: "t1", CustomerID: "c1", Type: "Sale", Amount: decPtr("500"),
			Quantity: decPtr("10"), CreatedAt: testBase,
			Attrs: map[string]any{"purchase_rate": 30.0}},
	}

	pb := BuildPnlBreakdown(nil, entries)

	assert.Equal(t, PnlFromTransactions, pb.Source)
	require.Len(t, pb.Rows, 1)
	r := pb.Rows[0]
	assert.True(t, r.SaleRate.Equal(dec("50")))
	assert.True(t, r.ProfitPerKg.Equal(dec("20")))
	assert.True(t, r.Profit.Equal(dec("200")))
	assert.True(t, pb.Totals.Profit.Equal(dec("200")))
	assert.True(t, pb.Totals.SoldQuantity.Equal(dec("10")))
	assert.True(t, pb.Totals.SaleValue.Equal(dec("500")))
}

func TestPnlBatchFallback(t *testing.T) {
	// No sale entries at all: per-batch tier with no NaN in sight.
	batches := []inventory.Batch{
		{ID: "b1", PurchaseRate: decPtr("100"), RemainingQuantity: decPtr("50"), CreatedAt: testBase},
	}

	pb := BuildPnlBreakdown(batches, nil)

	assert.Equal(t, PnlFromBatches, pb.Source)
	require.Len(t, pb.Rows, 1)
	r := pb.Rows[0]
	assert.True(t, r.Quantity.IsZero(), "nothing sold")
	assert.True(t, r.RemainingQuantity.Equal(dec("50")))
	assert.True(t, r.Profit.IsZero())
	assert.True(t, r.ProfitPerKg.IsZero())
	assert.True(t, pb.Totals.Profit.IsZero())
}

func TestPnlTierPrecedence(t *testing.T) {
	// One usable sale row makes the transaction tier authoritative even
	// though batches carry their own figures.
	batches := []inventory.Batch{
		{ID: "b1", TotalQuantity: decPtr("100"), RemainingQuantity: decPtr("0"),
			PurchaseRate: decPtr("100"), Attrs: map[string]any{"pnl": 9999.0}},
	}
	entries := []ledger.Entry{
		{ID: "t1", Type: "sale", Amount: decPtr("500"), Quantity: decPtr("5"),
			BatchID: "b1", CreatedAt: testBase},
	}

	pb := BuildPnlBreakdown(batches, entries)

	assert.Equal(t, PnlFromTransactions, pb.Source)
	require.Len(t, pb.Rows, 1)
	assert.Equal(t, "t1", pb.Rows[0].EntryID)
	// Purchase rate pulled from the linked batch: 500/5 - 100 = 0.
	assert.True(t, pb.Rows[0].ProfitPerKg.IsZero())
}

func TestPnlExplicitProfitTrusted(t *testing.T) {
	entries := []ledger.Entry{
		{ID: "t1", Type: "sale", Amount: decPtr("500"), Quantity: decPtr("10"),
			CreatedAt: testBase,
			Attrs:     map[string]any{"profit": 120.0, "purchase_rate": 30.0}},
	}

	pb := BuildPnlBreakdown(nil, entries)

	require.Len(t, pb.Rows, 1)
	assert.True(t, pb.Rows[0].Profit.Equal(dec("120")), "recorded figure beats derivation")
	assert.True(t, pb.Rows[0].ProfitPerKg.Equal(dec("12")))
}

func TestPnlDropsEmptyRows(t *testing.T) {
	entries := []ledger.Entry{
		// No quantity, no profit: carries nothing.
		{ID: "empty", Type: "sale", CreatedAt: testBase},
		// No quantity but explicit profit: kept.
		{ID: "adjustment", Type: "sale", CreatedAt: testBase,
			Attrs: map[string]any{"profit": -75.0}},
		// Payments never produce P&L rows.
		{ID: "pay", Type: "payment", Amount: decPtr("100"), CreatedAt: testBase},
	}

	pb := BuildPnlBreakdown(nil, entries)

	require.Len(t, pb.Rows, 1)
	assert.Equal(t, "adjustment", pb.Rows[0].EntryID)
	assert.True(t, pb.Totals.Profit.Equal(dec("-75")))
}

func TestPnlSorting(t *testing.T) {
	t.Run("transaction rows newest first", func(t *testing.T) {
		entries := []ledger.Entry{
			{ID: "old", Type: "sale", Amount: decPtr("100"), Quantity: decPtr("1"), CreatedAt: testBase},
			{ID: "new", Type: "sale", Amount: decPtr("100"), Quantity: decPtr("1"), CreatedAt: testBase.Add(time.Hour)},
		}
		pb := BuildPnlBreakdown(nil, entries)
		require.Len(t, pb.Rows, 2)
		assert.Equal(t, "new", pb.Rows[0].EntryID)
	})

	t.Run("batch rows by profit desc", func(t *testing.T) {
		batches := []inventory.Batch{
			{ID: "low", TotalQuantity: decPtr("10"), RemainingQuantity: decPtr("0"),
				PurchaseRate: decPtr("100"), Attrs: map[string]any{"total_sale_value": 1100.0}},
			{ID: "high", TotalQuantity: decPtr("10"), RemainingQuantity: decPtr("0"),
				PurchaseRate: decPtr("100"), Attrs: map[string]any{"total_sale_value": 2000.0}},
		}
		pb := BuildPnlBreakdown(batches, nil)
		require.Len(t, pb.Rows, 2)
		assert.Equal(t, "high", pb.Rows[0].BatchID)
		assert.True(t, pb.Rows[0].Profit.Equal(dec("1000")))
		assert.True(t, pb.Rows[1].Profit.Equal(dec("100")))
	})
}

func TestPnlDeterministic(t *testing.T) {
	entries := []ledger.Entry{
		{ID: "t1", Type: "sale", Amount: decPtr("500"), Quantity: decPtr("10"), CreatedAt: testBase},
		{ID: "t2", Type: "sale", Amount: decPtr("300"), Quantity: decPtr("5"), CreatedAt: testBase},
	}

	first := BuildPnlBreakdown(nil, entries)
	second := BuildPnlBreakdown(nil, entries)

	require.Equal(t, len(first.Rows), len(second.Rows))
	for i := range first.Rows {
		assert.Equal(t, first.Rows[i].EntryID, second.Rows[i].EntryID)
		assert.True(t, first.Rows[i].Profit.Equal(second.Rows[i].Profit))
	}
}
