package report_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/teakhata/backend/internal/application/report"
	domain "github.com/teakhata/backend/internal/domain/report"
	"github.com/teakhata/backend/internal/domain/shared"
)

type MockDocumentAssembler struct {
	mock.Mock
}

func (m *MockDocumentAssembler) Document(ctx context.Context, kind domain.TemplateKind, customerID string) (*domain.Document, error) {
	args := m.Called(ctx, kind, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Render(ctx context.Context, doc *domain.Document) (*report.RenderOutput, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.RenderOutput), args.Error(1)
}

type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Upload(ctx context.Context, storageKey string, data []byte, contentType string) error {
	args := m.Called(ctx, storageKey, data, contentType)
	return args.Error(0)
}

func (m *MockObjectStorage) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

type MockRunRepository struct {
	mock.Mock
}

func (m *MockRunRepository) Save(ctx context.Context, run *domain.Run) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockRunRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Run, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Run), args.Error(1)
}

func (m *MockRunRepository) FindRecent(ctx context.Context, limit int) ([]domain.Run, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Run), args.Error(1)
}

type exportFixture struct {
	documents *MockDocumentAssembler
	renderer  *MockRenderer
	storage   *MockObjectStorage
	runs      *MockRunRepository
	service   *report.ExportService
}

func newExportFixture() *exportFixture {
	f := &exportFixture{
		documents: new(MockDocumentAssembler),
		renderer:  new(MockRenderer),
		storage:   new(MockObjectStorage),
		runs:      new(MockRunRepository),
	}
	f.service = report.NewExportService(
		f.documents,
		map[report.Format]report.Renderer{report.FormatPDF: f.renderer},
		f.storage,
		f.runs,
		time.Hour,
		nil,
	)
	return f
}

func testDocument() *domain.Document {
	return &domain.Document{
		Kind:         domain.TemplateComprehensive,
		Title:        "Business Overview Report",
		BusinessName: "TeaKhata Traders",
		GeneratedAt:  time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestExport_Success(t *testing.T) {
	ctx := context.Background()
	f := newExportFixture()

	expiresAt := time.Now().Add(time.Hour)
	f.documents.On("Document", ctx, domain.TemplateComprehensive, "").Return(testDocument(), nil)
	f.runs.On("Save", ctx, mock.AnythingOfType("*report.Run")).Return(nil)
	f.renderer.On("Render", ctx, mock.AnythingOfType("*report.Document")).Return(&report.RenderOutput{
		Data:        []byte("%PDF-1.7 ..."),
		ContentType: "application/pdf",
		Extension:   "pdf",
	}, nil)
	f.storage.On("Upload", ctx, mock.AnythingOfType("string"), mock.Anything, "application/pdf").Return(nil)
	f.storage.On("GenerateDownloadURL", ctx, mock.AnythingOfType("string"), time.Hour).
		Return("https://files.example.com/report.pdf?sig=abc", expiresAt, nil)

	resp, err := f.service.Export(ctx, report.ExportRequest{
		Template:    "comprehensive",
		Format:      "pdf",
		RequestedBy: "owner",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.RunID)
	assert.Equal(t, "comprehensive", resp.Template)
	assert.Equal(t, "pdf", resp.Format)
	assert.Equal(t, "comprehensive-20240501-100000.pdf", resp.FileName)
	assert.Equal(t, int64(len("%PDF-1.7 ...")), resp.FileSize)
	assert.Equal(t, "https://files.example.com/report.pdf?sig=abc", resp.DownloadURL)
	assert.Equal(t, expiresAt, resp.ExpiresAt)

	// Saved once pending, once completed.
	f.runs.AssertNumberOfCalls(t, "Save", 2)
	f.storage.AssertExpectations(t)
}

func TestExport_UnknownTemplate(t *testing.T) {
	ctx := context.Background()
	f := newExportFixture()

	resp, err := f.service.Export(ctx, report.ExportRequest{Template: "weekly", Format: "pdf"})

	assert.Nil(t, resp)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_INPUT", domainErr.Code)
}

func TestExport_UnknownFormat(t *testing.T) {
	ctx := context.Background()
	f := newExportFixture()

	resp, err := f.service.Export(ctx, report.ExportRequest{Template: "comprehensive", Format: "docx"})

	assert.Nil(t, resp)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_INPUT", domainErr.Code)
}

func TestExport_NoRendererConfigured(t *testing.T) {
	ctx := context.Background()
	f := newExportFixture() // only pdf is registered

	resp, err := f.service.Export(ctx, report.ExportRequest{Template: "comprehensive", Format: "xlsx"})

	assert.Nil(t, resp)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_INPUT", domainErr.Code)
}

func TestExport_RenderFailureMarksRunFailed(t *testing.T) {
	ctx := context.Background()
	f := newExportFixture()

	var saved []*domain.Run
	f.documents.On("Document", ctx, domain.TemplateComprehensive, "").Return(testDocument(), nil)
	f.runs.On("Save", ctx, mock.AnythingOfType("*report.Run")).Run(func(args mock.Arguments) {
		saved = append(saved, args.Get(1).(*domain.Run))
	}).Return(nil)
	f.renderer.On("Render", ctx, mock.AnythingOfType("*report.Document")).Return(nil, errors.New("font missing"))

	resp, err := f.service.Export(ctx, report.ExportRequest{Template: "comprehensive", Format: "pdf"})

	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "failed to render report")
	require.Len(t, saved, 2)
	assert.True(t, saved[1].IsFailed())
	assert.Equal(t, "Report rendering failed", saved[1].ErrorMessage)
}

func TestExport_UploadFailureMarksRunFailed(t *testing.T) {
	ctx := context.Background()
	f := newExportFixture()

	var saved []*domain.Run
	f.documents.On("Document", ctx, domain.TemplateComprehensive, "").Return(testDocument(), nil)
	f.runs.On("Save", ctx, mock.AnythingOfType("*report.Run")).Run(func(args mock.Arguments) {
		saved = append(saved, args.Get(1).(*domain.Run))
	}).Return(nil)
	f.renderer.On("Render", ctx, mock.AnythingOfType("*report.Document")).Return(&report.RenderOutput{
		Data:        []byte("data"),
		ContentType: "application/pdf",
		Extension:   "pdf",
	}, nil)
	f.storage.On("Upload", ctx, mock.AnythingOfType("string"), mock.Anything, "application/pdf").
		Return(errors.New("bucket unavailable"))

	resp, err := f.service.Export(ctx, report.ExportRequest{Template: "comprehensive", Format: "pdf"})

	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "failed to store report file")
	require.Len(t, saved, 2)
	assert.True(t, saved[1].IsFailed())
}

func TestListRuns(t *testing.T) {
	ctx := context.Background()
	f := newExportFixture()

	run, err := domain.NewRun(domain.TemplateTeaStock, "xlsx", "", "owner")
	require.NoError(t, err)
	require.NoError(t, run.Complete("reports/x/stock.xlsx", "stock.xlsx", 512))

	f.runs.On("FindRecent", ctx, 20).Return([]domain.Run{*run}, nil)

	summaries, err := f.service.ListRuns(ctx, 0)

	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "teaStock", summaries[0].Template)
	assert.Equal(t, "COMPLETED", summaries[0].Status)
	assert.Equal(t, "stock.xlsx", summaries[0].FileName)
}

func TestListRunsCapsLimit(t *testing.T) {
	ctx := context.Background()
	f := newExportFixture()

	f.runs.On("FindRecent", ctx, 100).Return([]domain.Run{}, nil)

	_, err := f.service.ListRuns(ctx, 5000)

	require.NoError(t, err)
	f.runs.AssertExpectations(t)
}

func TestDownloadURL(t *testing.T) {
	ctx := context.Background()
	f := newExportFixture()

	run, err := domain.NewRun(domain.TemplateLedger, "pdf", "cust-1", "owner")
	require.NoError(t, err)
	require.NoError(t, run.Complete("reports/x/ledger.pdf", "ledger.pdf", 1024))

	expiresAt := time.Now().Add(time.Hour)
	f.runs.On("FindByID", ctx, run.ID).Return(run, nil)
	f.storage.On("GenerateDownloadURL", ctx, "reports/x/ledger.pdf", time.Hour).
		Return("https://files.example.com/ledger.pdf?sig=xyz", expiresAt, nil)

	resp, err := f.service.DownloadURL(ctx, run.ID)

	require.NoError(t, err)
	assert.Equal(t, "ledger.pdf", resp.FileName)
	assert.Equal(t, "https://files.example.com/ledger.pdf?sig=xyz", resp.URL)
}

func TestDownloadURL_NotFound(t *testing.T) {
	ctx := context.Background()
	f := newExportFixture()

	id := uuid.New()
	f.runs.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

	resp, err := f.service.DownloadURL(ctx, id)

	assert.Nil(t, resp)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestDownloadURL_PendingRun(t *testing.T) {
	ctx := context.Background()
	f := newExportFixture()

	run, err := domain.NewRun(domain.TemplateLedger, "pdf", "cust-1", "owner")
	require.NoError(t, err)

	f.runs.On("FindByID", ctx, run.ID).Return(run, nil)

	resp, err := f.service.DownloadURL(ctx, run.ID)

	assert.Nil(t, resp)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
}
