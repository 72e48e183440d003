package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/teakhata/backend/internal/domain/report"
	"github.com/teakhata/backend/internal/domain/shared"
	"github.com/teakhata/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Format is a supported export file format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
	FormatHTML Format = "html"
)

// ParseFormat validates a format name from the API.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatPDF, FormatXLSX, FormatCSV, FormatHTML:
		return Format(s), nil
	}
	return "", shared.NewDomainError("INVALID_INPUT", "Unknown export format: "+s)
}

// RenderOutput is one rendered report file.
type RenderOutput struct {
	Data        []byte
	ContentType string
	Extension   string
}

// Renderer turns an assembled document into file bytes. One renderer per
// format; implementations live in infrastructure/render.
type Renderer interface {
	Render(ctx context.Context, doc *report.Document) (*RenderOutput, error)
}

// ObjectStorage stores rendered files and hands out presigned download
// links.
type ObjectStorage interface {
	// Upload stores an object
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error

	// GenerateDownloadURL generates a presigned URL for downloading a file
	// Returns the download URL and expiration time
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
}

// DocumentAssembler assembles renderer-ready report documents.
type DocumentAssembler interface {
	Document(ctx context.Context, kind report.TemplateKind, customerID string) (*report.Document, error)
}

// ExportService renders report documents to files, stores them, and keeps
// a run history so past exports can be re-downloaded.
type ExportService struct {
	documents      DocumentAssembler
	renderers      map[Format]Renderer
	storage        ObjectStorage
	runs           report.RunRepository
	downloadExpiry time.Duration
	logger         *zap.Logger
	appMetrics     *telemetry.AppMetrics
}

// NewExportService creates a new ExportService
func NewExportService(
	documents DocumentAssembler,
	renderers map[Format]Renderer,
	storage ObjectStorage,
	runs report.RunRepository,
	downloadExpiry time.Duration,
	logger *zap.Logger,
) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if downloadExpiry <= 0 {
		downloadExpiry = time.Hour
	}
	return &ExportService{
		documents:      documents,
		renderers:      renderers,
		storage:        storage,
		runs:           runs,
		downloadExpiry: downloadExpiry,
		logger:         logger,
	}
}

// SetAppMetrics sets the application metrics collector
func (s *ExportService) SetAppMetrics(am *telemetry.AppMetrics) {
	s.appMetrics = am
}

// Export generates one report file and returns a download link for it
func (s *ExportService) Export(ctx context.Context, req ExportRequest) (*ExportResponse, error) {
	kind, err := report.ParseTemplateKind(req.Template)
	if err != nil {
		return nil, err
	}
	format, err := ParseFormat(req.Format)
	if err != nil {
		return nil, err
	}
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, shared.NewDomainError("INVALID_INPUT", "No renderer configured for format: "+string(format))
	}
	if kind == report.TemplateLedger && req.CustomerID == "" {
		// A full-khata ledger export is allowed, but flag the common
		// client mistake of forgetting the customer for a statement.
		s.logger.Debug("ledger export without customer scope, exporting every customer")
	}

	doc, err := s.documents.Document(ctx, kind, req.CustomerID)
	if err != nil {
		return nil, err
	}

	run, err := report.NewRun(kind, string(format), req.CustomerID, req.RequestedBy)
	if err != nil {
		return nil, err
	}
	if err := s.runs.Save(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to save report run: %w", err)
	}

	renderStart := time.Now()
	out, err := renderer.Render(ctx, doc)
	if err != nil {
		s.logger.Error("report rendering failed",
			zap.Error(err),
			zap.String("runId", run.ID.String()),
			zap.String("template", string(kind)))
		_ = run.Fail("Report rendering failed")
		_ = s.runs.Save(ctx, run)
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	// Record application metrics
	if s.appMetrics != nil {
		s.appMetrics.RecordReportRender(ctx, string(kind), string(format), time.Since(renderStart))
	}

	fileName := exportFileName(kind, doc.GeneratedAt, out.Extension)
	storageKey := fmt.Sprintf("reports/%s/%s", run.ID.String(), fileName)

	if err := s.storage.Upload(ctx, storageKey, out.Data, out.ContentType); err != nil {
		s.logger.Error("report upload failed",
			zap.Error(err),
			zap.String("runId", run.ID.String()),
			zap.String("key", storageKey))
		_ = run.Fail("Failed to store report file")
		_ = s.runs.Save(ctx, run)
		return nil, fmt.Errorf("failed to store report file: %w", err)
	}

	if err := run.Complete(storageKey, fileName, int64(len(out.Data))); err != nil {
		return nil, err
	}
	if err := s.runs.Save(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to update report run: %w", err)
	}

	url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, storageKey, s.downloadExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to presign download: %w", err)
	}

	if s.appMetrics != nil {
		s.appMetrics.RecordReportGenerated(ctx, string(kind), string(format))
	}

	s.logger.Info("report exported",
		zap.String("runId", run.ID.String()),
		zap.String("template", string(kind)),
		zap.String("format", string(format)),
		zap.Int("bytes", len(out.Data)))

	return &ExportResponse{
		RunID:       run.ID.String(),
		Template:    string(kind),
		Format:      string(format),
		FileName:    fileName,
		FileSize:    int64(len(out.Data)),
		DownloadURL: url,
		ExpiresAt:   expiresAt,
	}, nil
}

// ListRuns returns the most recent export runs
func (s *ExportService) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	runs, err := s.runs.FindRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list report runs: %w", err)
	}

	summaries := make([]RunSummary, len(runs))
	for i := range runs {
		summaries[i] = toRunSummary(&runs[i])
	}
	return summaries, nil
}

// DownloadURL returns a fresh presigned link for a past export
func (s *ExportService) DownloadURL(ctx context.Context, runID uuid.UUID) (*DownloadResponse, error) {
	run, err := s.runs.FindByID(ctx, runID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Report run not found")
		}
		return nil, fmt.Errorf("failed to load report run: %w", err)
	}

	if !run.IsCompleted() || !run.HasFile() {
		return nil, shared.NewDomainError("INVALID_STATE", "Report run has no downloadable file")
	}

	url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, run.ObjectKey, s.downloadExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to presign download: %w", err)
	}

	return &DownloadResponse{
		RunID:     run.ID.String(),
		FileName:  run.FileName,
		URL:       url,
		ExpiresAt: expiresAt,
	}, nil
}

func exportFileName(kind report.TemplateKind, at time.Time, ext string) string {
	if at.IsZero() {
		at = time.Now()
	}
	return fmt.Sprintf("%s-%s.%s", kind, at.Format("20060102-150405"), ext)
}
