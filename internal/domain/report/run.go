package report

import (
	"time"

	"github.com/teakhata/backend/internal/domain/shared"
)

// RunStatus represents the lifecycle state of a report run.
type RunStatus string

const (
	RunStatusPending   RunStatus = "PENDING"
	RunStatusCompleted RunStatus = "COMPLETED"
	RunStatusFailed    RunStatus = "FAILED"
)

// String returns the string representation of the status
func (s RunStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the run can no longer change state
func (s RunStatus) IsTerminal() bool {
	return s == RunStatusCompleted || s == RunStatusFailed
}

// Run records one export of a report document to a file. Runs are kept
// so users can re-download past exports without regenerating them.
type Run struct {
	shared.BaseEntity
	Kind         TemplateKind // Which report template was exported
	Format       string       // Output format (pdf, xlsx, csv, html)
	CustomerID   string       // Optional customer scope for ledger exports
	Status       RunStatus
	ObjectKey    string // Storage key of the generated file
	FileName     string // Suggested download file name
	FileSize     int64  // Size of the generated file in bytes
	ErrorMessage string // Failure detail when Status is FAILED
	RequestedBy  string // Subject of the user who requested the export
	CompletedAt  *time.Time
}

// NewRun creates a pending report run
func NewRun(kind TemplateKind, format, customerID, requestedBy string) (*Run, error) {
	if _, err := ParseTemplateKind(string(kind)); err != nil {
		return nil, err
	}
	if format == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Export format cannot be empty")
	}

	return &Run{
		BaseEntity:  shared.NewBaseEntity(),
		Kind:        kind,
		Format:      format,
		CustomerID:  customerID,
		Status:      RunStatusPending,
		RequestedBy: requestedBy,
	}, nil
}

// Complete marks the run as completed with the stored file details
func (r *Run) Complete(objectKey, fileName string, fileSize int64) error {
	if r.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot complete a run that is already "+r.Status.String())
	}
	if objectKey == "" {
		return shared.NewDomainError("INVALID_INPUT", "Object key cannot be empty")
	}

	now := time.Now()
	r.Status = RunStatusCompleted
	r.ObjectKey = objectKey
	r.FileName = fileName
	r.FileSize = fileSize
	r.CompletedAt = &now
	r.UpdatedAt = now

	return nil
}

// Fail marks the run as failed with an error message
func (r *Run) Fail(message string) error {
	if r.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot fail a run that is already "+r.Status.String())
	}

	r.Status = RunStatusFailed
	r.ErrorMessage = message
	r.UpdatedAt = time.Now()

	return nil
}

// IsCompleted returns true if the run finished successfully
func (r *Run) IsCompleted() bool {
	return r.Status == RunStatusCompleted
}

// IsFailed returns true if the run failed
func (r *Run) IsFailed() bool {
	return r.Status == RunStatusFailed
}

// HasFile returns true if a file was stored for this run
func (r *Run) HasFile() bool {
	return r.ObjectKey != ""
}
