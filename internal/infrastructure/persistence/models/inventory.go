package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/teakhata/backend/internal/domain/inventory"
)

// BatchModel maps rows of the externally managed batches table. Purchases
// and stock adjustments happen upstream, so the model is read-only. Figures
// older exports recorded under loose names (sold_quantity, total_sale_value,
// avg_sell_rate, pnl) ride in the attrs jsonb column and surface through the
// domain accessors.
type BatchModel struct {
	ID                string            `gorm:"type:text;primary_key"`
	Name              string            `gorm:"type:text"`
	TotalQuantity     *decimal.Decimal  `gorm:"type:decimal(18,4);column:total_quantity"`
	RemainingQuantity *decimal.Decimal  `gorm:"type:decimal(18,4);column:remaining_quantity"`
	PurchaseRate      *decimal.Decimal  `gorm:"type:decimal(18,4);column:purchase_rate"`
	CreatedAt         time.Time         `gorm:"index"`
	Attrs             datatypes.JSONMap `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (BatchModel) TableName() string {
	return "batches"
}

// ToDomain converts the row to a domain Batch.
func (m *BatchModel) ToDomain() inventory.Batch {
	return inventory.Batch{
		ID:                m.ID,
		Name:              m.Name,
		TotalQuantity:     m.TotalQuantity,
		RemainingQuantity: m.RemainingQuantity,
		PurchaseRate:      m.PurchaseRate,
		CreatedAt:         m.CreatedAt,
		Attrs:             map[string]any(m.Attrs),
	}
}
