package models

import (
	"time"

	"github.com/teakhata/backend/internal/domain/report"
)

// ReportRunModel is the persistence model for the report Run entity.
type ReportRunModel struct {
	BaseModel
	Kind         string     `gorm:"type:varchar(50);not null;index"`
	Format       string     `gorm:"type:varchar(20);not null"`
	CustomerID   string     `gorm:"type:text;column:customer_id"`
	Status       string     `gorm:"type:varchar(20);not null;index"`
	ObjectKey    string     `gorm:"type:text;column:object_key"`
	FileName     string     `gorm:"type:text;column:file_name"`
	FileSize     int64      `gorm:"not null;default:0;column:file_size"`
	ErrorMessage string     `gorm:"type:text;column:error_message"`
	RequestedBy  string     `gorm:"type:text;column:requested_by"`
	CompletedAt  *time.Time `gorm:"column:completed_at"`
}

// TableName returns the table name for GORM
func (ReportRunModel) TableName() string {
	return "report_runs"
}

// ToDomain converts the persistence model to a domain Run entity.
func (m *ReportRunModel) ToDomain() *report.Run {
	return &report.Run{
		BaseEntity:   m.BaseModel.ToDomain(),
		Kind:         report.TemplateKind(m.Kind),
		Format:       m.Format,
		CustomerID:   m.CustomerID,
		Status:       report.RunStatus(m.Status),
		ObjectKey:    m.ObjectKey,
		FileName:     m.FileName,
		FileSize:     m.FileSize,
		ErrorMessage: m.ErrorMessage,
		RequestedBy:  m.RequestedBy,
		CompletedAt:  m.CompletedAt,
	}
}

// FromDomain populates the persistence model from a domain Run entity.
func (m *ReportRunModel) FromDomain(r *report.Run) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.Kind = string(r.Kind)
	m.Format = r.Format
	m.CustomerID = r.CustomerID
	m.Status = string(r.Status)
	m.ObjectKey = r.ObjectKey
	m.FileName = r.FileName
	m.FileSize = r.FileSize
	m.ErrorMessage = r.ErrorMessage
	m.RequestedBy = r.RequestedBy
	m.CompletedAt = r.CompletedAt
}

// ReportRunModelFromDomain creates a new persistence model from a domain Run entity.
func ReportRunModelFromDomain(r *report.Run) *ReportRunModel {
	m := &ReportRunModel{}
	m.FromDomain(r)
	return m
}
