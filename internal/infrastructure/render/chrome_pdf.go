package render

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	reportapp "github.com/teakhata/backend/internal/application/report"
	"github.com/teakhata/backend/internal/domain/report"
	"github.com/teakhata/backend/internal/infrastructure/config"
)

// Ensure ChromePDFRenderer implements the Renderer interface
var _ reportapp.Renderer = (*ChromePDFRenderer)(nil)

const defaultChromeTimeout = 30 * time.Second

// Print margins in millimetres.
const (
	chromeMarginTopMM    = 10.0
	chromeMarginRightMM  = 10.0
	chromeMarginBottomMM = 12.0
	chromeMarginLeftMM   = 10.0
)

// chromeFooterTemplate numbers pages the way the gofpdf engine does, so
// switching engines does not change the document footer.
const chromeFooterTemplate = `<div style="font-size:8px;width:100%;text-align:center;color:#888;">Page <span class="pageNumber"></span> of <span class="totalPages"></span></div>`

// ChromePDFRenderer prints the HTML rendition of a document to PDF
// through headless Chrome. The browser process is launched lazily on the
// first render and reused afterwards; Close shuts it down.
type ChromePDFRenderer struct {
	html     *HTMLRenderer
	pageSize string
	timeout  time.Duration
	logger   *zap.Logger

	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewChromePDFRenderer prepares a Chrome allocator for PDF rendering.
// The browser binary is not started until the first Render call.
func NewChromePDFRenderer(html *HTMLRenderer, cfg config.RenderConfig, logger *zap.Logger) *ChromePDFRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.ChromeTimeout
	if timeout <= 0 {
		timeout = defaultChromeTimeout
	}
	pageSize := cfg.PageSize
	if pageSize == "" {
		pageSize = "A4"
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true), // containers usually mount a tiny /dev/shm
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &ChromePDFRenderer{
		html:        html,
		pageSize:    pageSize,
		timeout:     timeout,
		logger:      logger,
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
	}
}

// Render prints the document through Chrome.
func (r *ChromePDFRenderer) Render(ctx context.Context, doc *report.Document) (*reportapp.RenderOutput, error) {
	htmlOut, err := r.html.Render(ctx, doc)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	taskCtx, taskCancel := chromedp.NewContext(r.allocCtx)
	defer taskCancel()
	runCtx, runCancel := context.WithTimeout(taskCtx, r.timeout)
	defer runCancel()

	params := buildPrintParams(r.pageSize)

	start := time.Now()
	var pdfData []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, string(htmlOut.Data)).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := params.Do(ctx)
			if err != nil {
				return err
			}
			pdfData = data
			return nil
		}),
	)
	if err != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("pdf: chrome rendering timed out after %s: %w", r.timeout, err)
		}
		return nil, fmt.Errorf("pdf: chrome rendering failed: %w", err)
	}
	if len(pdfData) == 0 {
		return nil, fmt.Errorf("pdf: chrome produced an empty document")
	}

	r.logger.Debug("Rendered PDF through Chrome",
		zap.String("page_size", r.pageSize),
		zap.Int("bytes", len(pdfData)),
		zap.Duration("took", time.Since(start)))

	return &reportapp.RenderOutput{
		Data:        pdfData,
		ContentType: "application/pdf",
		Extension:   "pdf",
	}, nil
}

// Close shuts the shared browser process down.
func (r *ChromePDFRenderer) Close() error {
	r.allocCancel()
	return nil
}

// buildPrintParams assembles the PrintToPDF call for a page size.
func buildPrintParams(pageSize string) *page.PrintToPDFParams {
	width, height := paperDimensionsMM(pageSize)
	return page.PrintToPDF().
		WithPrintBackground(true).
		WithPaperWidth(mmToInches(width)).
		WithPaperHeight(mmToInches(height)).
		WithMarginTop(mmToInches(chromeMarginTopMM)).
		WithMarginRight(mmToInches(chromeMarginRightMM)).
		WithMarginBottom(mmToInches(chromeMarginBottomMM)).
		WithMarginLeft(mmToInches(chromeMarginLeftMM)).
		WithDisplayHeaderFooter(true).
		WithHeaderTemplate(`<span></span>`).
		WithFooterTemplate(chromeFooterTemplate)
}

// paperDimensionsMM returns page width and height in millimetres.
// Unknown sizes fall back to A4.
func paperDimensionsMM(pageSize string) (float64, float64) {
	switch pageSize {
	case "Letter":
		return 215.9, 279.4
	default:
		return 210, 297
	}
}

// mmToInches converts millimetres to inches, which is what the DevTools
// printing API expects.
func mmToInches(mm float64) float64 {
	return mm / 25.4
}
