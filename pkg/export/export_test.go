package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sample() Dataset {
	return Dataset{
		Title:   "Attendance 2025-03-10",
		Headers: []string{"Child", "Check in", "Check out"},
		Rows: [][]string{
			{"Léa Martin", "08:01", "16:30"},
			{"Tom Petit", "08:15"},
		},
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseFormat(" XLSX ")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	_, err = ParseFormat("docx")
	assert.Error(t, err)
}

func TestRenderCSVPadsShortRows(t *testing.T) {
	file, err := Render(FormatCSV, sample(), "attendance-2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, "attendance-2025-03-10.csv", file.Name)
	assert.Equal(t, "text/csv; charset=utf-8", file.ContentType)

	lines := strings.Split(strings.TrimSpace(string(file.Data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Child,Check in,Check out", lines[0])
	assert.Equal(t, "Tom Petit,08:15,", lines[2])
}

func TestRenderPDF(t *testing.T) {
	file, err := Render(FormatPDF, sample(), "report")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(file.Data, []byte("%PDF")))
}

func TestRenderXLSX(t *testing.T) {
	file, err := Render(FormatXLSX, sample(), "report")
	require.NoError(t, err)

	wb, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer wb.Close()

	v, err := wb.GetCellValue(xlsxSheet, "A3")
	require.NoError(t, err)
	assert.Equal(t, "Child", v)
	v, err = wb.GetCellValue(xlsxSheet, "A5")
	require.NoError(t, err)
	assert.Equal(t, "Tom Petit", v)
}

func TestRenderRequiresHeaders(t *testing.T) {
	_, err := Render(FormatCSV, Dataset{}, "empty")
	assert.Error(t, err)
}
