package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/teakhata/backend/internal/domain/partner"
)

// CustomerModel maps rows of the externally managed customers table. The
// upstream schema owns the table, so the model is read-only: it converts to
// a domain snapshot and is never written back.
type CustomerModel struct {
	ID                 string          `gorm:"type:text;primary_key"`
	FullName           string          `gorm:"type:text;column:full_name"`
	ShopName           string          `gorm:"type:text;column:shop_name"`
	Address            string          `gorm:"type:text"`
	Phone              string          `gorm:"type:text;index"`
	WhatsappPhone      string          `gorm:"type:text;column:whatsapp_phone"`
	OutstandingBalance decimal.Decimal `gorm:"type:decimal(18,4);column:outstanding_balance"`
	CreatedAt          time.Time       `gorm:"index"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the row to a domain Customer snapshot. The cached
// outstanding_balance column becomes the OutstandingHint; the ledger-derived
// balance stays authoritative.
func (m *CustomerModel) ToDomain() partner.Customer {
	return partner.Customer{
		ID:              m.ID,
		FullName:        m.FullName,
		ShopName:        m.ShopName,
		Address:         m.Address,
		Phone:           m.Phone,
		WhatsappPhone:   m.WhatsappPhone,
		OutstandingHint: m.OutstandingBalance,
		CreatedAt:       m.CreatedAt,
	}
}
