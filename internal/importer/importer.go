// Package importer loads pizza grids from the plain text contest format,
// from CSV files and from Excel workbooks. It supports automatic delimiter
// detection and case-insensitive recognition of an optional header row.
package importer

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/piwi3910/slicecut/internal/model"
	"github.com/xuri/excelize/v2"
)

// ErrLoad is returned when an input source is unreadable or malformed.
var ErrLoad = errors.New("cannot load grid")

// ImportResult holds the loaded grid and any non-fatal findings.
type ImportResult struct {
	Grid     *model.Grid
	Warnings []string
}

// ColumnMapping maps the four grid parameters to their indices in the
// parameter row.
type ColumnMapping struct {
	Rows           int
	Cols           int
	MinIngredients int
	MaxCells       int
}

// headerAliases maps canonical parameter names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"rows": {"rows", "r", "row count", "height"},
	"cols": {"cols", "columns", "c", "column count", "width"},
	"min":  {"min", "l", "min ingredients", "minimum", "min per slice"},
	"max":  {"max", "h", "max cells", "maximum", "max per slice"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that splits the
// parameter line into the most fields wins, with consistency across lines as
// the tie-breaker.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) > 1 {
				score++
			}
		}

		weighted := firstCols*100 + score
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or the positional
// R C L H mapping and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Rows: -1, Cols: -1, MinIngredients: -1, MaxCells: -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "rows":
					if mapping.Rows == -1 {
						mapping.Rows = i
					}
				case "cols":
					if mapping.Cols == -1 {
						mapping.Cols = i
					}
				case "min":
					if mapping.MinIngredients == -1 {
						mapping.MinIngredients = i
					}
				case "max":
					if mapping.MaxCells == -1 {
						mapping.MaxCells = i
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Rows: 0, Cols: 1, MinIngredients: 2, MaxCells: 3}, false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ParseGrid reads the contest text format: a line with R C L H, followed by
// the grid body with one 'M' or 'T' per cell. Body lines are concatenated, so
// line breaks inside the body carry no meaning.
func ParseGrid(r io.Reader) (ImportResult, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var rows [][]string
	for scanner.Scan() {
		line := scanner.Text()
		if len(rows) == 0 {
			if strings.TrimSpace(line) == "" {
				continue
			}
			rows = append(rows, strings.Fields(line))
			continue
		}
		rows = append(rows, []string{line})
	}
	if err := scanner.Err(); err != nil {
		return ImportResult{}, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	return gridFromRows(rows, "Line")
}

// ImportText loads a grid in the contest text format from path.
func ImportText(path string) (ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImportResult{}, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	defer f.Close()
	return ParseGrid(f)
}

// ImportCSV loads a grid from a CSV file. The first record holds R, C, L and
// H (optionally preceded by a header record); each later record is one grid
// row, either one cell per field or the whole row in a single field.
func ImportCSV(path string) (ImportResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportResult{}, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return ImportResult{}, fmt.Errorf("%w: file is empty", ErrLoad)
	}

	delimiter := DetectCSVDelimiter(data)
	result, err := ImportCSVFromReader(bytes.NewReader(data), delimiter)
	if err != nil {
		return result, err
	}
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append([]string{fmt.Sprintf("Detected %s delimiter", delimName)}, result.Warnings...)
	}
	return result, nil
}

// ImportCSVFromReader loads a grid from a CSV reader with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) (ImportResult, error) {
	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return ImportResult{}, fmt.Errorf("%w: cannot read CSV: %v", ErrLoad, err)
	}
	return gridFromRows(records, "Line")
}

// ImportExcel loads a grid from the first sheet of an Excel workbook, laid
// out like the CSV form.
func ImportExcel(path string) (ImportResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return ImportResult{}, fmt.Errorf("%w: cannot open Excel file: %v", ErrLoad, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ImportResult{}, fmt.Errorf("%w: Excel file has no sheets", ErrLoad)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return ImportResult{}, fmt.Errorf("%w: cannot read Excel data: %v", ErrLoad, err)
	}
	return gridFromRows(rows, "Row")
}

// LoadFile picks a loader from the file extension. Anything that is not a
// spreadsheet or CSV file is read as contest text.
func LoadFile(path string) (ImportResult, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ImportExcel(path)
	case ".csv", ".tsv":
		return ImportCSV(path)
	default:
		return ImportText(path)
	}
}

// gridFromRows is the shared loading logic for text, CSV and Excel data.
func gridFromRows(rows [][]string, rowPrefix string) (ImportResult, error) {
	var result ImportResult

	start := 0
	for start < len(rows) && isEmptyRow(rows[start]) {
		start++
	}
	if start == len(rows) {
		return result, fmt.Errorf("%w: no data rows found", ErrLoad)
	}

	mapping, hasHeader := DetectColumns(rows[start])
	if hasHeader {
		var missing []string
		if mapping.Rows == -1 {
			missing = append(missing, "Rows")
		}
		if mapping.Cols == -1 {
			missing = append(missing, "Cols")
		}
		if mapping.MinIngredients == -1 {
			missing = append(missing, "Min")
		}
		if mapping.MaxCells == -1 {
			missing = append(missing, "Max")
		}
		if len(missing) > 0 {
			return result, fmt.Errorf("%w: required columns not found in header: %s", ErrLoad, strings.Join(missing, ", "))
		}
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
		start++
		if start == len(rows) {
			return result, fmt.Errorf("%w: header row without parameters", ErrLoad)
		}
	}

	params, err := parseParams(rows[start], mapping, fmt.Sprintf("%s %d", rowPrefix, start+1))
	if err != nil {
		return result, err
	}

	expected, err := model.CellCount(params[0], params[1])
	if err != nil {
		return result, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	cells := make([]model.Ingredient, 0, expected)
	for i := start + 1; i < len(rows); i++ {
		if isEmptyRow(rows[i]) {
			continue
		}
		col := 0
		for _, field := range rows[i] {
			for _, r := range field {
				if unicode.IsSpace(r) {
					continue
				}
				ing, ok := model.ParseIngredient(r)
				if !ok {
					return result, fmt.Errorf("%w: %s %d: invalid cell %q at column %d", ErrLoad, rowPrefix, i+1, r, col+1)
				}
				cells = append(cells, ing)
				col++
			}
		}
	}

	if len(cells) != expected {
		return result, fmt.Errorf("%w: expected %d cells for a %dx%d grid, found %d", ErrLoad, expected, params[0], params[1], len(cells))
	}

	g, err := model.NewGrid(params[0], params[1], params[2], params[3], cells)
	if err != nil {
		return result, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	if g.MinIngredients*2 > g.MaxCells {
		result.Warnings = append(result.Warnings, fmt.Sprintf("No slice can be valid: %d of each ingredient needs more than %d cells", g.MinIngredients, g.MaxCells))
	}
	result.Grid = g
	return result, nil
}

// parseParams extracts R, C, L and H from the parameter row.
func parseParams(row []string, mapping ColumnMapping, rowLabel string) ([4]int, error) {
	var out [4]int
	fields := []struct {
		name string
		idx  int
	}{
		{"rows", mapping.Rows},
		{"cols", mapping.Cols},
		{"min ingredients", mapping.MinIngredients},
		{"max cells", mapping.MaxCells},
	}
	for i, f := range fields {
		s := getCell(row, f.idx)
		if s == "" {
			return out, fmt.Errorf("%w: %s: missing %s value", ErrLoad, rowLabel, f.name)
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return out, fmt.Errorf("%w: %s: invalid %s '%s'", ErrLoad, rowLabel, f.name, s)
		}
		out[i] = v
	}
	return out, nil
}
