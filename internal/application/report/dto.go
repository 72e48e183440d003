package report

import (
	"time"

	"github.com/shopspring/decimal"
	ledgerapp "github.com/teakhata/backend/internal/application/ledger"
	"github.com/teakhata/backend/internal/domain/report"
)

// AnalyticsQuery scopes the collection views.
type AnalyticsQuery struct {
	CustomerID string
	From       *time.Time
	To         *time.Time
}

func (q AnalyticsQuery) snapshotQuery() ledgerapp.SnapshotQuery {
	return ledgerapp.SnapshotQuery{
		CustomerID: q.CustomerID,
		From:       q.From,
		To:         q.To,
	}
}

// DashboardResponse is the landing-screen read model.
type DashboardResponse struct {
	BusinessName      string                    `json:"business_name"`
	GeneratedAt       time.Time                 `json:"generated_at"`
	DataAsOf          time.Time                 `json:"data_as_of"`
	TotalSales        decimal.Decimal           `json:"total_sales"`
	TotalCollections  decimal.Decimal           `json:"total_collections"`
	TotalOutstanding  decimal.Decimal           `json:"total_outstanding"`
	CustomerCount     int                       `json:"customer_count"`
	EntryCount        int                       `json:"entry_count"`
	BatchCount        int                       `json:"batch_count"`
	TopOutstanding    []report.OutstandingEntry `json:"top_outstanding"`
	RecentCollections []report.PaymentRecord    `json:"recent_collections"`
	DueSoon           *report.OutstandingEntry  `json:"due_soon,omitempty"`
}

// CustomerOverview is one customer with their reconciled totals.
type CustomerOverview struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	ShopName         string          `json:"shop_name,omitempty"`
	Address          string          `json:"address,omitempty"`
	Phone            string          `json:"phone,omitempty"`
	TotalSales       decimal.Decimal `json:"total_sales"`
	TotalCollections decimal.Decimal `json:"total_collections"`
	Outstanding      decimal.Decimal `json:"outstanding"`
	TransactionCount int             `json:"transaction_count"`
	CreatedAt        time.Time       `json:"created_at"`
}

// ExportRequest asks for one report file.
type ExportRequest struct {
	Template    string
	Format      string
	CustomerID  string
	RequestedBy string
}

// ExportResponse describes the generated file and where to download it.
type ExportResponse struct {
	RunID       string    `json:"run_id"`
	Template    string    `json:"template"`
	Format      string    `json:"format"`
	FileName    string    `json:"file_name"`
	FileSize    int64     `json:"file_size"`
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// RunSummary is one past export in the runs listing.
type RunSummary struct {
	ID          string     `json:"id"`
	Template    string     `json:"template"`
	Format      string     `json:"format"`
	Status      string     `json:"status"`
	FileName    string     `json:"file_name,omitempty"`
	FileSize    int64      `json:"file_size,omitempty"`
	Error       string     `json:"error,omitempty"`
	RequestedBy string     `json:"requested_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// DownloadResponse is a fresh download link for a past export.
type DownloadResponse struct {
	RunID     string    `json:"run_id"`
	FileName  string    `json:"file_name"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

func toRunSummary(r *report.Run) RunSummary {
	return RunSummary{
		ID:          r.ID.String(),
		Template:    string(r.Kind),
		Format:      r.Format,
		Status:      r.Status.String(),
		FileName:    r.FileName,
		FileSize:    r.FileSize,
		Error:       r.ErrorMessage,
		RequestedBy: r.RequestedBy,
		CreatedAt:   r.CreatedAt,
		CompletedAt: r.CompletedAt,
	}
}
