package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/teakhata/backend/internal/domain/ledger"
)

// LedgerEntryModel maps rows of the externally managed ledger_entries table.
// The ledger is append-only and written only by the record_sale and
// record_payment procedures, so this model converts one way, row to domain.
// Nullable numeric columns stay pointers; a NULL means the source row never
// carried that figure. Loosely named extras from older imports live in the
// attrs jsonb column.
type LedgerEntryModel struct {
	ID         string            `gorm:"type:text;primary_key"`
	CustomerID string            `gorm:"type:text;column:customer_id;index"`
	Type       string            `gorm:"type:text"`
	Amount     *decimal.Decimal  `gorm:"type:decimal(18,4)"`
	Quantity   *decimal.Decimal  `gorm:"type:decimal(18,4)"`
	PaidAmount *decimal.Decimal  `gorm:"type:decimal(18,4);column:paid_amount"`
	Balance    *decimal.Decimal  `gorm:"type:decimal(18,4)"`
	BatchID    string            `gorm:"type:text;column:batch_id;index"`
	TeaName    string            `gorm:"type:text;column:tea_name"`
	DueDate    *time.Time        `gorm:"column:due_date"`
	CreatedAt  time.Time         `gorm:"index"`
	Attrs      datatypes.JSONMap `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (LedgerEntryModel) TableName() string {
	return "ledger_entries"
}

// ToDomain converts the row to a domain Entry.
func (m *LedgerEntryModel) ToDomain() ledger.Entry {
	return ledger.Entry{
		ID:         m.ID,
		CustomerID: m.CustomerID,
		Type:       m.Type,
		Amount:     m.Amount,
		Quantity:   m.Quantity,
		PaidAmount: m.PaidAmount,
		Balance:    m.Balance,
		BatchID:    m.BatchID,
		TeaName:    m.TeaName,
		DueDate:    m.DueDate,
		CreatedAt:  m.CreatedAt,
		Attrs:      map[string]any(m.Attrs),
	}
}
