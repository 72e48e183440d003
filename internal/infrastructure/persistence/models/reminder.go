package models

import (
	"github.com/shopspring/decimal"

	"github.com/teakhata/backend/internal/domain/reminder"
)

// ReminderLogModel is the persistence model for the reminder Log entity.
type ReminderLogModel struct {
	BaseModel
	CustomerID   string          `gorm:"type:text;column:customer_id;index"`
	CustomerName string          `gorm:"type:text;column:customer_name"`
	Phone        string          `gorm:"type:text"`
	Amount       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	EntryID      string          `gorm:"type:text;column:entry_id"`
	Channel      string          `gorm:"type:varchar(20);not null"`
	Status       string          `gorm:"type:varchar(20);not null;index"`
	Detail       string          `gorm:"type:text"`
	Body         string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ReminderLogModel) TableName() string {
	return "reminder_logs"
}

// ToDomain converts the persistence model to a domain Log entity.
func (m *ReminderLogModel) ToDomain() *reminder.Log {
	return &reminder.Log{
		BaseEntity:   m.BaseModel.ToDomain(),
		CustomerID:   m.CustomerID,
		CustomerName: m.CustomerName,
		Phone:        m.Phone,
		Amount:       m.Amount,
		EntryID:      m.EntryID,
		Channel:      m.Channel,
		Status:       reminder.LogStatus(m.Status),
		Detail:       m.Detail,
		Body:         m.Body,
	}
}

// FromDomain populates the persistence model from a domain Log entity.
func (m *ReminderLogModel) FromDomain(l *reminder.Log) {
	m.FromDomainBaseEntity(l.BaseEntity)
	m.CustomerID = l.CustomerID
	m.CustomerName = l.CustomerName
	m.Phone = l.Phone
	m.Amount = l.Amount
	m.EntryID = l.EntryID
	m.Channel = l.Channel
	m.Status = string(l.Status)
	m.Detail = l.Detail
	m.Body = l.Body
}

// ReminderLogModelFromDomain creates a new persistence model from a domain Log entity.
func ReminderLogModelFromDomain(l *reminder.Log) *ReminderLogModel {
	m := &ReminderLogModel{}
	m.FromDomain(l)
	return m
}
