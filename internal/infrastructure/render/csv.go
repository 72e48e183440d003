package render

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	reportapp "github.com/teakhata/backend/internal/application/report"
	"github.com/teakhata/backend/internal/domain/report"
)

// Ensure CSVRenderer implements the Renderer interface
var _ reportapp.Renderer = (*CSVRenderer)(nil)

// CSVRenderer writes the whole document into a single comma-separated
// file. Sections are separated by a blank record so multi-section
// reports still open cleanly in spreadsheet applications.
type CSVRenderer struct{}

// NewCSVRenderer creates a new CSVRenderer.
func NewCSVRenderer() *CSVRenderer {
	return &CSVRenderer{}
}

// Render encodes the document as CSV.
func (r *CSVRenderer) Render(_ context.Context, doc *report.Document) (*reportapp.RenderOutput, error) {
	if doc == nil {
		return nil, fmt.Errorf("csv: document is nil")
	}

	records := make([][]string, 0, 16)
	records = append(records,
		[]string{doc.Title},
		[]string{doc.BusinessName},
		[]string{"Generated", doc.GeneratedAt.Format("02 Jan 2006 15:04")},
	)

	for _, section := range doc.Sections {
		records = append(records, []string{}, []string{section.Title})
		for _, meta := range section.Meta {
			records = append(records, []string{meta})
		}
		if len(section.Headers) > 0 {
			records = append(records, section.Headers)
		}
		records = append(records, section.Rows...)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("csv: failed to write records: %w", err)
	}

	return &reportapp.RenderOutput{
		Data:        buf.Bytes(),
		ContentType: "text/csv",
		Extension:   "csv",
	}, nil
}
