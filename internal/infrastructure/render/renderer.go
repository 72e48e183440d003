package render

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	reportapp "github.com/teakhata/backend/internal/application/report"
	"github.com/teakhata/backend/internal/infrastructure/config"
)

// BuildRenderers wires one renderer per export format. The PDF slot is
// filled by headless Chrome when configured, by gofpdf otherwise.
//
// The Chrome renderer holds a browser allocator; callers should close
// any renderer that implements io.Closer on shutdown.
func BuildRenderers(cfg config.RenderConfig, logger *zap.Logger) (map[reportapp.Format]reportapp.Renderer, error) {
	htmlRenderer, err := NewHTMLRenderer()
	if err != nil {
		return nil, err
	}

	renderers := map[reportapp.Format]reportapp.Renderer{
		reportapp.FormatCSV:  NewCSVRenderer(),
		reportapp.FormatXLSX: NewExcelRenderer(),
		reportapp.FormatHTML: htmlRenderer,
	}

	switch cfg.PDFEngine {
	case "chromedp":
		renderers[reportapp.FormatPDF] = NewChromePDFRenderer(htmlRenderer, cfg, logger)
	default:
		renderers[reportapp.FormatPDF] = NewPDFRenderer(cfg.PageSize)
	}

	return renderers, nil
}

// bareNumber parses a cell that holds nothing but a number, such as a
// bag count. Formatted money and quantity cells do not qualify.
func bareNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// isFigure reports whether a cell carries a formatted figure (money,
// quantity or count). Figures read best right-aligned.
func isFigure(s string) bool {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "-")
	s = strings.TrimPrefix(s, "Rs ")
	s = strings.TrimSuffix(s, " kg")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
