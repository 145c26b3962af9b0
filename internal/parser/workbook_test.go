package parser_test

import (
	"bytes"
	"testing"

	"github.com/halebuild/takeoff-engine/internal/domain"
	"github.com/halebuild/takeoff-engine/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func TestOpenWorkbook(t *testing.T) {
	buf := buildWorkbook(t, [][]any{
		{"TakeoffID", "Item", "QTY"},
		{1001, "Drywall 1/2in", 120},
		{1002, "Paint Interior", 3.5},
	})

	wb, err := parser.OpenWorkbook(buf)
	require.NoError(t, err)

	assert.Equal(t, []string{"TakeoffID", "Item", "QTY"}, wb.Headers)
	rows := wb.Rows()
	require.Len(t, rows, 2)

	// Row numbering is 1-based and offset past the header row
	assert.Equal(t, 2, rows[0].Index)
	assert.Equal(t, 3, rows[1].Index)
	assert.Equal(t, "Drywall 1/2in", rows[0].Get("Item"))
	assert.Equal(t, "1001", rows[0].Get("TakeoffID"))
	assert.Equal(t, "3.5", rows[1].Get("QTY"))
	assert.Equal(t, "", rows[0].Get("NoSuchHeader"))
}

func TestOpenWorkbookSkipsEmptyRows(t *testing.T) {
	buf := buildWorkbook(t, [][]any{
		{"TakeoffID", "Item"},
		{1001, "Drywall 1/2in"},
		{nil, nil},
		{1003, "Trim"},
	})

	wb, err := parser.OpenWorkbook(buf)
	require.NoError(t, err)

	rows := wb.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].Index)
	assert.Equal(t, 4, rows[1].Index)
}

func TestOpenWorkbookEmpty(t *testing.T) {
	buf := buildWorkbook(t, [][]any{
		{"TakeoffID", "Item"},
	})

	_, err := parser.OpenWorkbook(buf)
	assert.ErrorIs(t, err, domain.ErrEmptyWorkbook)
}

func TestOpenWorkbookNotASpreadsheet(t *testing.T) {
	_, err := parser.OpenWorkbook(bytes.NewBufferString("not an xlsx file"))
	assert.Error(t, err)
}
