// Package inventory models purchased tea batches. A batch is one wholesale
// purchase lot (a grade of tea bought at one rate); sales draw the lot down.
// Batch rows come from the managed database and older exports, so several
// figures exist both as typed columns and as loosely named extra fields.
package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/teakhata/backend/internal/domain/shared/numeric"
)

// Batch is a read-side snapshot of one tea batch. Optional figures are
// pointers; Attrs carries whatever loosely named fields the source row had
// (sold_quantity, total_sale_value, avg_sell_rate, pnl, ...). All alias
// resolution lives in the accessor methods so report builders reference one
// canonical name per figure.
type Batch struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	TotalQuantity     *decimal.Decimal `json:"total_quantity,omitempty"`
	RemainingQuantity *decimal.Decimal `json:"remaining_quantity,omitempty"`
	PurchaseRate      *decimal.Decimal `json:"purchase_rate,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	Attrs             map[string]any   `json:"attrs,omitempty"`
}

// DisplayName resolves the batch label for reports.
func (b *Batch) DisplayName() string {
	if s := strings.TrimSpace(b.Name); s != "" {
		return s
	}
	for _, key := range []string{"tea_name", "name", "grade"} {
		if s, ok := b.Attrs[key].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	if len(b.ID) >= 8 {
		return fmt.Sprintf("Batch %s", b.ID[:8])
	}
	return fmt.Sprintf("Batch %s", b.ID)
}

// ResolvedTotalQuantity is the purchased quantity in kg, 0 when unknown.
func (b *Batch) ResolvedTotalQuantity() decimal.Decimal {
	return numeric.PickZero(b.TotalQuantity, b.attr("total_quantity"), b.attr("quantity"))
}

// ResolvedRemainingQuantity is the unsold quantity in kg, 0 when unknown.
func (b *Batch) ResolvedRemainingQuantity() decimal.Decimal {
	return numeric.PickZero(b.RemainingQuantity, b.attr("remaining_quantity"), b.attr("remaining"))
}

// SoldQuantity prefers an explicitly recorded sold figure and otherwise
// derives total minus remaining, floored at zero so a batch recorded with
// only a remaining figure does not go negative.
func (b *Batch) SoldQuantity() decimal.Decimal {
	if d := numeric.Pick(b.attr("sold_quantity"), b.attr("sold")); d != nil {
		return *d
	}
	sold := b.ResolvedTotalQuantity().Sub(b.ResolvedRemainingQuantity())
	if sold.IsNegative() {
		return decimal.Zero
	}
	return sold
}

// ResolvedPurchaseRate is the buy rate per kg, 0 when unknown.
func (b *Batch) ResolvedPurchaseRate() decimal.Decimal {
	return numeric.PickZero(b.PurchaseRate, b.attr("purchase_rate"), b.attr("rate"))
}

// TotalSaleValue is the recorded revenue for the batch, nil when unknown.
func (b *Batch) TotalSaleValue() *decimal.Decimal {
	return numeric.Pick(b.attr("total_sale_value"), b.attr("sale_value"))
}

// AvgSellRate prefers an explicitly recorded average and otherwise derives
// totalSaleValue / soldQuantity. Zero when nothing sold or nothing recorded.
func (b *Batch) AvgSellRate() decimal.Decimal {
	if d := numeric.Pick(b.attr("avg_sell_rate"), b.attr("sell_rate")); d != nil {
		return *d
	}
	sold := b.SoldQuantity()
	if sold.IsPositive() {
		if tv := b.TotalSaleValue(); tv != nil {
			return tv.Div(sold)
		}
	}
	return decimal.Zero
}

// ExplicitPnl returns a directly recorded profit figure for the batch, nil
// when the source row had none.
func (b *Batch) ExplicitPnl() *decimal.Decimal {
	return numeric.Pick(b.attr("pnl"), b.attr("profit"))
}

// StockValue is remaining quantity at purchase rate, the cost of tea still
// on the shelf.
func (b *Batch) StockValue() decimal.Decimal {
	return b.ResolvedRemainingQuantity().Mul(b.ResolvedPurchaseRate())
}

func (b *Batch) attr(key string) any {
	if b.Attrs == nil {
		return nil
	}
	return b.Attrs[key]
}
