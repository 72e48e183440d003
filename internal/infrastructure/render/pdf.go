package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	reportapp "github.com/teakhata/backend/internal/application/report"
	"github.com/teakhata/backend/internal/domain/report"
)

// Ensure PDFRenderer implements the Renderer interface
var _ reportapp.Renderer = (*PDFRenderer)(nil)

// Page layout in millimetres.
const (
	pdfMarginLeft   = 12.0
	pdfMarginTop    = 14.0
	pdfMarginRight  = 12.0
	pdfBreakMargin  = 16.0
	pdfMinColWeight = 6.0
)

// PDFRenderer draws the document with gofpdf. It needs no external
// binary, which keeps PDF export working on hosts without Chrome.
type PDFRenderer struct {
	pageSize string
}

// NewPDFRenderer creates a PDFRenderer for the given page size ("A4" or
// "Letter"; empty defaults to A4).
func NewPDFRenderer(pageSize string) *PDFRenderer {
	if pageSize == "" {
		pageSize = "A4"
	}
	return &PDFRenderer{pageSize: pageSize}
}

// Render draws the document into a PDF.
func (r *PDFRenderer) Render(_ context.Context, doc *report.Document) (*reportapp.RenderOutput, error) {
	if doc == nil {
		return nil, fmt.Errorf("pdf: document is nil")
	}

	pdf := gofpdf.New("P", "mm", r.pageSize, "")
	pdf.SetTitle(doc.Title, true)
	pdf.SetMargins(pdfMarginLeft, pdfMarginTop, pdfMarginRight)
	pdf.SetAutoPageBreak(true, pdfBreakMargin)
	pdf.AliasNbPages("")

	// Core fonts are cp1252 only; translate what they can represent
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 6, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 9, tr(doc.Title), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr(doc.BusinessName), "", 1, "L", false, 0, "")
	pdf.SetTextColor(110, 110, 110)
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, "Generated "+doc.GeneratedAt.Format("02 Jan 2006 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	for i := range doc.Sections {
		drawSection(pdf, tr, &doc.Sections[i])
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: failed to generate document: %w", err)
	}

	return &reportapp.RenderOutput{
		Data:        buf.Bytes(),
		ContentType: "application/pdf",
		Extension:   "pdf",
	}, nil
}

func drawSection(pdf *gofpdf.Fpdf, tr func(string) string, section *report.Section) {
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, tr(section.Title), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(90, 90, 90)
	for _, meta := range section.Meta {
		pdf.CellFormat(0, 5, tr(meta), "", 1, "L", false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)

	if len(section.Headers) == 0 {
		pdf.Ln(4)
		return
	}
	pdf.Ln(1)

	widths := columnWidths(pdf, section)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 236, 245)
	for i, header := range section.Headers {
		pdf.CellFormat(widths[i], 7, tr(header), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, row := range section.Rows {
		for i := range section.Headers {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			align := "L"
			// First column is a label even when it looks numeric
			if i > 0 && isFigure(cell) {
				align = "R"
			}
			pdf.CellFormat(widths[i], 6, tr(cell), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(6)
}

// columnWidths spreads the usable page width across the columns in
// proportion to their longest cell.
func columnWidths(pdf *gofpdf.Fpdf, section *report.Section) []float64 {
	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageWidth - left - right

	weights := make([]float64, len(section.Headers))
	total := 0.0
	for i, header := range section.Headers {
		w := float64(len(header))
		for _, row := range section.Rows {
			if i < len(row) && float64(len(row[i])) > w {
				w = float64(len(row[i]))
			}
		}
		if w < pdfMinColWeight {
			w = pdfMinColWeight
		}
		weights[i] = w
		total += w
	}

	widths := make([]float64, len(weights))
	for i, w := range weights {
		widths[i] = usable * w / total
	}
	return widths
}
