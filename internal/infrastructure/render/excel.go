package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	reportapp "github.com/teakhata/backend/internal/application/report"
	"github.com/teakhata/backend/internal/domain/report"
)

// Ensure ExcelRenderer implements the Renderer interface
var _ reportapp.Renderer = (*ExcelRenderer)(nil)

// Worksheet names are capped at 31 characters by the XLSX format.
const maxSheetNameLen = 31

// Column width bounds in Excel character units.
const (
	minColWidth = 10.0
	maxColWidth = 48.0
)

// invalidSheetChars replaces the characters the XLSX format forbids in
// worksheet names.
var invalidSheetChars = strings.NewReplacer(
	":", " ", "\\", " ", "/", " ", "?", " ", "*", " ", "[", "(", "]", ")",
)

// ExcelRenderer writes one worksheet per document section. Bare numeric
// cells (bag counts and the like) are stored as numbers so totals can be
// computed in the spreadsheet; formatted money and quantity cells stay
// as text.
type ExcelRenderer struct{}

// NewExcelRenderer creates a new ExcelRenderer.
func NewExcelRenderer() *ExcelRenderer {
	return &ExcelRenderer{}
}

// Render encodes the document as an XLSX workbook.
func (r *ExcelRenderer) Render(_ context.Context, doc *report.Document) (*reportapp.RenderOutput, error) {
	if doc == nil {
		return nil, fmt.Errorf("xlsx: document is nil")
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 13},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: failed to create title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DCE6F1"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "#9BB3CC", Style: 1},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: failed to create header style: %w", err)
	}

	if len(doc.Sections) == 0 {
		if err := f.SetSheetName("Sheet1", "Report"); err != nil {
			return nil, fmt.Errorf("xlsx: failed to name sheet: %w", err)
		}
		if err := f.SetCellValue("Report", "A1", doc.Title); err != nil {
			return nil, fmt.Errorf("xlsx: failed to write title: %w", err)
		}
		return r.encode(f)
	}

	used := make(map[string]int, len(doc.Sections))
	for i := range doc.Sections {
		section := &doc.Sections[i]
		sheet := sheetName(section.Title, i, used)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return nil, fmt.Errorf("xlsx: failed to name sheet %q: %w", sheet, err)
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return nil, fmt.Errorf("xlsx: failed to create sheet %q: %w", sheet, err)
			}
		}
		if err := writeSheet(f, sheet, section, titleStyle, headerStyle); err != nil {
			return nil, err
		}
	}
	f.SetActiveSheet(0)

	return r.encode(f)
}

func (r *ExcelRenderer) encode(f *excelize.File) (*reportapp.RenderOutput, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: failed to encode workbook: %w", err)
	}
	return &reportapp.RenderOutput{
		Data:        buf.Bytes(),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Extension:   "xlsx",
	}, nil
}

func writeSheet(f *excelize.File, sheet string, section *report.Section, titleStyle, headerStyle int) error {
	row := 1
	cell, _ := excelize.CoordinatesToCellName(1, row)
	if err := f.SetCellValue(sheet, cell, section.Title); err != nil {
		return fmt.Errorf("xlsx: failed to write section title: %w", err)
	}
	if err := f.SetCellStyle(sheet, cell, cell, titleStyle); err != nil {
		return fmt.Errorf("xlsx: failed to style section title: %w", err)
	}
	row++

	for _, meta := range section.Meta {
		cell, _ = excelize.CoordinatesToCellName(1, row)
		if err := f.SetCellValue(sheet, cell, meta); err != nil {
			return fmt.Errorf("xlsx: failed to write meta row: %w", err)
		}
		row++
	}
	row++ // blank spacer before the table

	if len(section.Headers) == 0 {
		return nil
	}

	widths := make([]float64, len(section.Headers))
	for col, header := range section.Headers {
		cell, _ = excelize.CoordinatesToCellName(col+1, row)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("xlsx: failed to write header: %w", err)
		}
		widths[col] = float64(len(header))
	}
	first, _ := excelize.CoordinatesToCellName(1, row)
	last, _ := excelize.CoordinatesToCellName(len(section.Headers), row)
	if err := f.SetCellStyle(sheet, first, last, headerStyle); err != nil {
		return fmt.Errorf("xlsx: failed to style header row: %w", err)
	}
	row++

	for _, dataRow := range section.Rows {
		for col, val := range dataRow {
			cell, _ = excelize.CoordinatesToCellName(col+1, row)
			var err error
			if n, ok := bareNumber(val); ok {
				err = f.SetCellValue(sheet, cell, n)
			} else {
				err = f.SetCellValue(sheet, cell, val)
			}
			if err != nil {
				return fmt.Errorf("xlsx: failed to write cell %s: %w", cell, err)
			}
			if col < len(widths) && float64(len(val)) > widths[col] {
				widths[col] = float64(len(val))
			}
		}
		row++
	}

	for col, w := range widths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return fmt.Errorf("xlsx: failed to resolve column name: %w", err)
		}
		width := w + 2
		if width < minColWidth {
			width = minColWidth
		}
		if width > maxColWidth {
			width = maxColWidth
		}
		if err := f.SetColWidth(sheet, name, name, width); err != nil {
			return fmt.Errorf("xlsx: failed to set column width: %w", err)
		}
	}
	return nil
}

// sheetName derives a unique, XLSX-legal worksheet name from a section
// title.
func sheetName(title string, index int, used map[string]int) string {
	name := strings.TrimSpace(invalidSheetChars.Replace(title))
	if name == "" {
		name = fmt.Sprintf("Sheet%d", index+1)
	}
	if len(name) > maxSheetNameLen {
		name = strings.TrimSpace(name[:maxSheetNameLen])
	}
	if n, ok := used[name]; ok {
		used[name] = n + 1
		suffix := fmt.Sprintf(" %d", n+1)
		if len(name)+len(suffix) > maxSheetNameLen {
			name = strings.TrimSpace(name[:maxSheetNameLen-len(suffix)])
		}
		return name + suffix
	}
	used[name] = 1
	return name
}
