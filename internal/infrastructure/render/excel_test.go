package render

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExcelRenderer_Render(t *testing.T) {
	out, err := NewExcelRenderer().Render(context.Background(), sampleDocument())
	require.NoError(t, err)

	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", out.ContentType)
	assert.Equal(t, "xlsx", out.Extension)

	f, err := excelize.OpenReader(bytes.NewReader(out.Data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Payments Received", "Summary"}, f.GetSheetList())

	// First sheet: title, meta, spacer, header row, then data
	val, err := f.GetCellValue("Payments Received", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Payments Received", val)

	val, _ = f.GetCellValue("Payments Received", "A2")
	assert.Equal(t, "Period: 01 Mar 2026 to 14 Mar 2026", val)

	val, _ = f.GetCellValue("Payments Received", "A4")
	assert.Equal(t, "Date", val)
	val, _ = f.GetCellValue("Payments Received", "D4")
	assert.Equal(t, "Amount", val)

	val, _ = f.GetCellValue("Payments Received", "B5")
	assert.Equal(t, "Asha Traders", val)
	val, _ = f.GetCellValue("Payments Received", "D6")
	assert.Equal(t, "Rs 3,20,000.00", val, "formatted money stays text")

	// Second sheet has no meta, so the table starts one row higher
	val, _ = f.GetCellValue("Summary", "A3")
	assert.Equal(t, "Metric", val)
	val, _ = f.GetCellValue("Summary", "B5")
	assert.Equal(t, "2", val, "bare counts are written as numbers")
}

func TestExcelRenderer_EmptyDocument(t *testing.T) {
	doc := sampleDocument()
	doc.Sections = nil

	out, err := NewExcelRenderer().Render(context.Background(), doc)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out.Data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Report"}, f.GetSheetList())
	val, _ := f.GetCellValue("Report", "A1")
	assert.Equal(t, "Daily Collections Report", val)
}

func TestExcelRenderer_NilDocument(t *testing.T) {
	_, err := NewExcelRenderer().Render(context.Background(), nil)
	assert.Error(t, err)
}

func TestSheetName(t *testing.T) {
	used := map[string]int{}

	assert.Equal(t, "Payments Received", sheetName("Payments Received", 0, used))
	assert.Equal(t, "Payments Received 2", sheetName("Payments Received", 1, used))
	assert.Equal(t, "Payments Received 3", sheetName("Payments Received", 2, used))

	assert.Equal(t, "Sales (Mar Apr)", sheetName("Sales [Mar/Apr]", 3, used))
	assert.Equal(t, "Sheet5", sheetName("   ", 4, used))

	long := sheetName("Customer Statement for the Financial Year", 5, used)
	assert.LessOrEqual(t, len(long), 31)
}

func TestSheetName_DistinctSectionsKeepTheirNames(t *testing.T) {
	used := map[string]int{}
	doc := sampleDocument()

	names := make([]string, 0, len(doc.Sections))
	for i, s := range doc.Sections {
		names = append(names, sheetName(s.Title, i, used))
	}
	assert.Equal(t, []string{"Payments Received", "Summary"}, names)
}
