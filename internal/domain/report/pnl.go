package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/teakhata/backend/internal/domain/inventory"
	"github.com/teakhata/backend/internal/domain/ledger"
)

// PnlSource records which tier produced the breakdown rows.
type PnlSource string

const (
	// PnlFromTransactions means per-sale rows were derived from ledger
	// entries, the authoritative tier.
	PnlFromTransactions PnlSource = "transactions"
	// PnlFromBatches means the breakdown fell back to per-batch rows
	// because no usable sale rows existed.
	PnlFromBatches PnlSource = "batches"
)

// PnlRow is one line of the profit and loss breakdown. Transaction-tier
// rows describe a single sale; batch-tier rows describe a whole purchase
// lot.
type PnlRow struct {
	EntryID           string          `json:"entry_id,omitempty"`
	BatchID           string          `json:"batch_id,omitempty"`
	TeaName           string          `json:"tea_name"`
	Quantity          decimal.Decimal `json:"quantity"`
	RemainingQuantity decimal.Decimal `json:"remaining_quantity"`
	PurchaseRate      decimal.Decimal `json:"purchase_rate"`
	SaleRate          decimal.Decimal `json:"sale_rate"`
	ProfitPerKg       decimal.Decimal `json:"profit_per_kg"`
	Profit            decimal.Decimal `json:"profit"`
	SaleValue         decimal.Decimal `json:"sale_value"`
	CreatedAt         time.Time       `json:"created_at"`
}

// PnlTotals sums the emitted rows.
type PnlTotals struct {
	Profit       decimal.Decimal `json:"pnl"`
	SoldQuantity decimal.Decimal `json:"sold_quantity"`
	SaleValue    decimal.Decimal `json:"sale_value"`
}

// PnlBreakdown is the inventory profit and loss view.
type PnlBreakdown struct {
	Rows   []PnlRow  `json:"rows"`
	Totals PnlTotals `json:"totals"`
	Source PnlSource `json:"source"`
}

// BuildPnlBreakdown derives profit per sale when the ledger carries usable
// sale rows, and falls back to per-batch figures when it does not. A single
// usable sale row makes the transaction tier authoritative; the batch tier
// is never mixed in alongside it.
func BuildPnlBreakdown(batches []inventory.Batch, entries []ledger.Entry) *PnlBreakdown {
	byID := make(map[string]*inventory.Batch, len(batches))
	for i := range batches {
		if batches[i].ID != "" {
			byID[batches[i].ID] = &batches[i]
		}
	}

	rows := transactionTier(byID, entries)
	if len(rows) > 0 {
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].CreatedAt.After(rows[j].CreatedAt)
		})
		return finishPnl(rows, PnlFromTransactions)
	}

	rows = batchTier(batches)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Profit.GreaterThan(rows[j].Profit)
	})
	return finishPnl(rows, PnlFromBatches)
}

func transactionTier(byID map[string]*inventory.Batch, entries []ledger.Entry) []PnlRow {
	rows := make([]PnlRow, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		if e.IsPayment() {
			continue
		}

		quantity := e.SaleQuantity()
		saleValue := e.SaleAmount()

		saleRate := decimal.Zero
		if quantity.IsPositive() {
			saleRate = saleValue.Div(quantity)
		} else if r := e.ExplicitSaleRate(); r != nil {
			saleRate = *r
		}

		purchaseRate := decimal.Zero
		if r := e.ExplicitPurchaseRate(); r != nil {
			purchaseRate = *r
		} else if b := byID[e.BatchID]; b != nil {
			purchaseRate = b.ResolvedPurchaseRate()
		}

		var profit, profitPerKg decimal.Decimal
		if explicit := e.ExplicitProfit(); explicit != nil {
			// A recorded profit figure is trusted over any derivation.
			profit = *explicit
			if quantity.IsPositive() {
				profitPerKg = profit.Div(quantity)
			}
		} else {
			profitPerKg = saleRate.Sub(purchaseRate)
			profit = profitPerKg.Mul(quantity)
		}

		// Rows that moved no tea and made no money carry no information.
		if !quantity.IsPositive() && profit.IsZero() {
			continue
		}

		teaName := e.ProductName()
		if teaName == "" {
			if b := byID[e.BatchID]; b != nil {
				teaName = b.DisplayName()
			}
		}

		rows = append(rows, PnlRow{
			EntryID:      e.ID,
			BatchID:      e.BatchID,
			TeaName:      teaName,
			Quantity:     quantity,
			PurchaseRate: purchaseRate,
			SaleRate:     saleRate,
			ProfitPerKg:  profitPerKg,
			Profit:       profit,
			SaleValue:    saleValue,
			CreatedAt:    e.CreatedAt,
		})
	}
	return rows
}

func batchTier(batches []inventory.Batch) []PnlRow {
	rows := make([]PnlRow, 0, len(batches))
	for i := range batches {
		b := &batches[i]

		sold := b.SoldQuantity()
		purchaseRate := b.ResolvedPurchaseRate()
		avgSellRate := b.AvgSellRate()

		saleValue := decimal.Zero
		if tv := b.TotalSaleValue(); tv != nil {
			saleValue = *tv
		} else {
			saleValue = avgSellRate.Mul(sold)
		}

		var profit, profitPerKg decimal.Decimal
		switch {
		case !sold.IsPositive():
			// Nothing sold from this lot yet: no realized profit.
		case b.ExplicitPnl() != nil:
			profit = *b.ExplicitPnl()
			profitPerKg = profit.Div(sold)
		default:
			profitPerKg = avgSellRate.Sub(purchaseRate)
			profit = profitPerKg.Mul(sold)
		}

		rows = append(rows, PnlRow{
			BatchID:           b.ID,
			TeaName:           b.DisplayName(),
			Quantity:          sold,
			RemainingQuantity: b.ResolvedRemainingQuantity(),
			PurchaseRate:      purchaseRate,
			SaleRate:          avgSellRate,
			ProfitPerKg:       profitPerKg,
			Profit:            profit,
			SaleValue:         saleValue,
			CreatedAt:         b.CreatedAt,
		})
	}
	return rows
}

func finishPnl(rows []PnlRow, source PnlSource) *PnlBreakdown {
	breakdown := &PnlBreakdown{Rows: rows, Source: source}
	for i := range rows {
		breakdown.Totals.Profit = breakdown.Totals.Profit.Add(rows[i].Profit)
		breakdown.Totals.SoldQuantity = breakdown.Totals.SoldQuantity.Add(rows[i].Quantity)
		breakdown.Totals.SaleValue = breakdown.Totals.SaleValue.Add(rows[i].SaleValue)
	}
	return breakdown
}
