package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/slicecut/internal/model"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter(t *testing.T) {
	tests := []struct {
		name string
		data string
		want rune
	}{
		{"comma", "3,5,1,6\nT,T,T,T,T\n", ','},
		{"semicolon", "3;5;1;6\nT;T;T;T;T\n", ';'},
		{"tab", "3\t5\t1\t6\nT\tT\tT\tT\tT\n", '\t'},
		{"pipe", "3|5|1|6\nT|T|T|T|T\n", '|'},
		{"row strings", "3;5;1;6\nTTTTT\nTMMMT\n", ';'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectCSVDelimiter([]byte(tt.data)))
		})
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Rows", "Cols", "Min", "Max"})

	assert.True(t, isHeader)
	assert.Equal(t, ColumnMapping{Rows: 0, Cols: 1, MinIngredients: 2, MaxCells: 3}, mapping)
}

func TestDetectColumns_ReorderedAliases(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"MAX CELLS", "Min Ingredients", "Columns", "R"})

	assert.True(t, isHeader)
	assert.Equal(t, ColumnMapping{Rows: 3, Cols: 2, MinIngredients: 1, MaxCells: 0}, mapping)
}

func TestDetectColumns_NoHeader(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"3", "5", "1", "6"})

	assert.False(t, isHeader)
	assert.Equal(t, ColumnMapping{Rows: 0, Cols: 1, MinIngredients: 2, MaxCells: 3}, mapping)
}

// ─── Text Format Tests ─────────────────────────────────────

func TestParseGrid_ContestFormat(t *testing.T) {
	data := "3 5 1 6\nTTTTT\nTMMMT\nTTTTT\n"
	result, err := ParseGrid(strings.NewReader(data))
	require.NoError(t, err)
	require.NotNil(t, result.Grid)

	g := result.Grid
	assert.Equal(t, 3, g.Rows)
	assert.Equal(t, 5, g.Cols)
	assert.Equal(t, 1, g.MinIngredients)
	assert.Equal(t, 6, g.MaxCells)
	assert.Equal(t, model.Mushroom, g.At(1, 1))
	assert.Equal(t, model.Tomato, g.At(2, 4))
	assert.Empty(t, result.Warnings)
}

func TestParseGrid_BodyLinesAreConcatenated(t *testing.T) {
	result, err := ParseGrid(strings.NewReader("2 3 1 2\nTTTM\nMM\r\n"))
	require.NoError(t, err)

	g := result.Grid
	assert.Equal(t, model.Tomato, g.At(0, 2))
	assert.Equal(t, model.Mushroom, g.At(1, 0))
}

func TestParseGrid_HeaderRow(t *testing.T) {
	result, err := ParseGrid(strings.NewReader("rows cols min max\n1 2 1 2\nMT\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Grid.Cols)
	assert.Contains(t, result.Warnings, "Detected header row, skipping")
}

func TestParseGrid_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		msg  string
	}{
		{"empty", "", "no data rows"},
		{"missing parameter", "2 2 1\nMMTT\n", "missing max cells"},
		{"non-numeric parameter", "2 x 1 4\nMMTT\n", "invalid cols 'x'"},
		{"bad cell", "2 2 1 4\nMMTX\n", "invalid cell 'X'"},
		{"short body", "2 2 1 4\nMMT\n", "expected 4 cells"},
		{"long body", "2 2 1 4\nMMTTM\n", "found 5"},
		{"zero rows", "0 2 1 4\n", "dimensions 0x2"},
		{"overflowing dimensions", "4294967296 4294967296 1 1\n", "overflow the cell count"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGrid(strings.NewReader(tt.data))
			require.ErrorIs(t, err, ErrLoad)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestParseGrid_WarnsWhenNoSliceCanBeValid(t *testing.T) {
	result, err := ParseGrid(strings.NewReader("1 4 2 3\nMTMT\n"))
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "No slice can be valid")
}

// ─── CSV Import Tests ──────────────────────────────────────

func TestImportCSVFromReader_CellPerField(t *testing.T) {
	data := "Rows,Cols,Min,Max\n2,3,1,2\nT,T,T\nM,M,M\n"
	result, err := ImportCSVFromReader(strings.NewReader(data), ',')
	require.NoError(t, err)

	assert.Equal(t, 2, result.Grid.Rows)
	assert.Equal(t, model.Mushroom, result.Grid.At(1, 2))
}

func TestImportCSVFromReader_WhitespaceInValues(t *testing.T) {
	data := " 1 ; 2 ; 1 ; 2 \n M ; T \n"
	result, err := ImportCSVFromReader(strings.NewReader(data), ';')
	require.NoError(t, err)
	assert.Equal(t, model.Tomato, result.Grid.At(0, 1))
}

func TestImportCSVFromReader_MissingRequiredColumnInHeader(t *testing.T) {
	data := "Rows,Cols,Max\n2,2,4\nMMTT\n"
	_, err := ImportCSVFromReader(strings.NewReader(data), ',')
	require.ErrorIs(t, err, ErrLoad)
	assert.Contains(t, err.Error(), "Min")
}

func TestImportCSV_SemicolonFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.csv")
	require.NoError(t, os.WriteFile(path, []byte("2;2;1;4\nM;M\nT;T\n"), 0644))

	result, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 4, result.Grid.Area())
	assert.Contains(t, result.Warnings, "Detected semicolon delimiter")
}

func TestImportCSV_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0644))

	_, err := ImportCSV(path)
	assert.ErrorIs(t, err, ErrLoad)
}

func TestLoadFile_NotFound(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.in"))
	assert.ErrorIs(t, err, ErrLoad)
}

func TestLoadFile_TextFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "example.in")
	require.NoError(t, os.WriteFile(path, []byte("2 2 1 4\nMM\nTT\n"), 0644))

	result, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []model.Ingredient{model.Mushroom, model.Mushroom, model.Tomato, model.Tomato}, result.Grid.Cells)
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "grid.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cellRef, cell))
		}
	}

	require.NoError(t, f.SaveAs(path))
	return path
}

func TestImportExcel_CellPerColumn(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Rows", "Cols", "Min", "Max"},
		{2, 3, 1, 2},
		{"T", "T", "T"},
		{"M", "M", "M"},
	})

	result, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Grid.Cols)
	assert.Equal(t, model.Tomato, result.Grid.At(0, 0))
	assert.Equal(t, model.Mushroom, result.Grid.At(1, 2))
}

func TestImportExcel_RowStrings(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{3, 5, 1, 6},
		{"TTTTT"},
		{"TMMMT"},
		{"TTTTT"},
	})

	result, err := ImportExcel(path)
	require.NoError(t, err)
	assert.Equal(t, 15, result.Grid.Area())
	assert.Equal(t, model.Mushroom, result.Grid.At(1, 3))
}

func TestImportExcel_InvalidData(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{2, 2, 1, 4},
		{"M", "P"},
		{"T", "T"},
	})

	_, err := ImportExcel(path)
	require.ErrorIs(t, err, ErrLoad)
	assert.Contains(t, err.Error(), "Row 2")
}

func TestImportExcel_FileNotFound(t *testing.T) {
	_, err := ImportExcel("/nonexistent/grid.xlsx")
	assert.ErrorIs(t, err, ErrLoad)
}
