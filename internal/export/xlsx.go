package export

import (
	"fmt"

	"github.com/piwi3910/slicecut/internal/model"
	"github.com/xuri/excelize/v2"
)

// Workbook sheet names.
const (
	SheetSlices  = "Slices"
	SheetLayout  = "Layout"
	SheetSummary = "Summary"
)

// Grids above this many cells get no Layout sheet.
const maxLayoutCells = 250000

var sliceHeaders = []interface{}{"#", "ID", "Row 1", "Col 1", "Row 2", "Col 2", "Area", "Mushrooms", "Tomatoes", "Valid"}

// ExportXLSX writes a workbook with a slice table, a colored layout map of
// the grid and a summary sheet.
func ExportXLSX(path string, g *model.Grid, result model.SolveResult) error {
	if len(result.Slices) == 0 {
		return ErrNoSlices
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetSlices); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeSliceTable(f, result); err != nil {
		return err
	}
	if g.Area() <= maxLayoutCells {
		if err := writeLayout(f, g, result); err != nil {
			return err
		}
	}
	if err := writeSummary(f, result); err != nil {
		return err
	}

	return f.SaveAs(path)
}

func writeSliceTable(f *excelize.File, result model.SolveResult) error {
	if err := f.SetSheetRow(SheetSlices, "A1", &sliceHeaders); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(sliceHeaders), 1)
	if err := f.SetCellStyle(SheetSlices, "A1", last, bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, s := range result.Slices {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			i + 1, s.ID,
			s.Rect.Row, s.Rect.Col, s.Rect.LastRow(), s.Rect.LastCol(),
			s.Rect.Area(), s.Mushrooms, s.Tomatoes, s.Valid,
		}
		if err := f.SetSheetRow(SheetSlices, cell, &row); err != nil {
			return fmt.Errorf("write slice %d: %w", i+1, err)
		}
	}
	return nil
}

// writeLayout draws one spreadsheet cell per grid cell, holding the
// ingredient letter and filled with the color of the slice covering it.
func writeLayout(f *excelize.File, g *model.Grid, result model.SolveResult) error {
	if _, err := f.NewSheet(SheetLayout); err != nil {
		return fmt.Errorf("create layout sheet: %w", err)
	}

	styles := make([]int, len(sliceColors))
	for i, c := range sliceColors {
		id, err := f.NewStyle(&excelize.Style{
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)}},
			Alignment: &excelize.Alignment{Horizontal: "center"},
		})
		if err != nil {
			return fmt.Errorf("create style: %w", err)
		}
		styles[i] = id
	}
	invalid, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Pattern: 4, Color: []string{"#EF9A9A"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}

	lastCol, _ := excelize.ColumnNumberToName(g.Cols)
	if err := f.SetColWidth(SheetLayout, "A", lastCol, 3); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	for row := 0; row < g.Rows; row++ {
		values := make([]interface{}, g.Cols)
		for col := range values {
			values[col] = string(rune(g.At(row, col)))
		}
		cell, _ := excelize.CoordinatesToCellName(1, row+1)
		if err := f.SetSheetRow(SheetLayout, cell, &values); err != nil {
			return fmt.Errorf("write layout row %d: %w", row+1, err)
		}
	}

	for i, s := range result.Slices {
		style := styles[i%len(styles)]
		if !s.Valid {
			style = invalid
		}
		top, _ := excelize.CoordinatesToCellName(s.Rect.Col+1, s.Rect.Row+1)
		bottom, _ := excelize.CoordinatesToCellName(s.Rect.LastCol()+1, s.Rect.LastRow()+1)
		if err := f.SetCellStyle(SheetLayout, top, bottom, style); err != nil {
			return fmt.Errorf("style slice %d: %w", i+1, err)
		}
	}
	return nil
}

func writeSummary(f *excelize.File, result model.SolveResult) error {
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}
	rows := [][]interface{}{
		{"Method", string(result.Method)},
		{"Rows", result.Rows},
		{"Columns", result.Cols},
		{"Min ingredients", result.MinIngredients},
		{"Max cells", result.MaxCells},
		{"Cuts", result.Steps},
		{"Slices", len(result.Slices)},
		{"Valid slices", result.ValidCount()},
		{"Score", result.ValidArea()},
		{"Efficiency %", result.Efficiency()},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(SheetSummary, cell, &row); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}
	return nil
}
