// Package export writes slicing results to submission files, PDF reports,
// label sheets, Excel workbooks and DXF drawings.
package export

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/slicecut/internal/model"
)

// ErrNoSlices is returned when a result has nothing to export.
var ErrNoSlices = errors.New("no slices to export")

// sliceColor represents an RGB color for a slice outline.
type sliceColor struct {
	R, G, B int
}

// sliceColors is the palette cycled through for slice outlines.
var sliceColors = []sliceColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 121, G: 85, B: 72},  // brown
}

var (
	mushroomFill = sliceColor{R: 222, G: 205, B: 170}
	tomatoFill   = sliceColor{R: 239, G: 154, B: 154}
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0

	// Grids above this many cells are drawn without per-cell shading.
	maxShadedCells = 40000
	// Slice table rows per summary page.
	tableRowsPerPage = 22
)

// ExportPDF generates a PDF document with a layout page showing the grid, the
// slices and the cut lines, followed by summary pages listing every slice.
func ExportPDF(path string, g *model.Grid, result model.SolveResult) error {
	if len(result.Slices) == 0 {
		return ErrNoSlices
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderLayoutPage(pdf, g, result)

	pdf.AddPage()
	renderSummaryPage(pdf, result)

	return pdf.OutputFileAndClose(path)
}

// renderLayoutPage draws the grid with slice outlines on the current page.
func renderLayoutPage(pdf *fpdf.Fpdf, g *model.Grid, result model.SolveResult) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Pizza %d x %d (L=%d, H=%d)", g.Rows, g.Cols, g.MinIngredients, g.MaxCells)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Slices: %d | Valid: %d | Score: %d of %d cells | Efficiency: %.1f%%",
		len(result.Slices), result.ValidCount(), result.ValidArea(), result.GridArea(), result.Efficiency())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight

	scale := math.Min(drawWidth/float64(g.Cols), drawHeight/float64(g.Rows))
	canvasW := float64(g.Cols) * scale
	canvasH := float64(g.Rows) * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	pdf.SetFillColor(250, 250, 250)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	if g.Area() <= maxShadedCells {
		drawCells(pdf, g, scale, offsetX, offsetY)
	}

	for i, s := range result.Slices {
		col := sliceColors[i%len(sliceColors)]
		x := offsetX + float64(s.Rect.Col)*scale
		y := offsetY + float64(s.Rect.Row)*scale
		w := float64(s.Rect.Width) * scale
		h := float64(s.Rect.Height) * scale

		pdf.SetDrawColor(col.R, col.G, col.B)
		pdf.SetLineWidth(0.4)
		pdf.Rect(x, y, w, h, "D")
		if !s.Valid {
			drawHatchPattern(pdf, x, y, w, h)
		}

		if w > 10 && h > 6 {
			pdf.SetFont("Helvetica", "", labelFontSize(w, h))
			pdf.SetTextColor(0, 0, 0)
			label := fmt.Sprintf("%dM/%dT", s.Mushrooms, s.Tomatoes)
			labelW := pdf.GetStringWidth(label)
			if labelW < w-2 {
				pdf.SetXY(x+(w-labelW)/2, y+h/2-2)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
		}
	}

	pdf.SetDrawColor(60, 60, 60)
	pdf.SetLineWidth(0.2)
	pdf.SetDashPattern([]float64{1, 1}, 0)
	for _, c := range result.Cuts {
		x1, y1, x2, y2 := c.Line()
		pdf.Line(offsetX+x1*scale, offsetY+y1*scale, offsetX+x2*scale, offsetY+y2*scale)
	}
	pdf.SetDashPattern([]float64{}, 0)

	drawDimensionAnnotations(pdf, g, offsetX, offsetY, canvasW, canvasH)
	drawLegend(pdf, offsetY+canvasH+6)
}

// drawCells shades every cell by its ingredient.
func drawCells(pdf *fpdf.Fpdf, g *model.Grid, scale, offsetX, offsetY float64) {
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			fill := mushroomFill
			if g.At(row, col) == model.Tomato {
				fill = tomatoFill
			}
			pdf.SetFillColor(fill.R, fill.G, fill.B)
			pdf.Rect(offsetX+float64(col)*scale, offsetY+float64(row)*scale, scale, scale, "F")
		}
	}
}

// drawHatchPattern draws diagonal lines inside a rectangle to mark an invalid slice.
func drawHatchPattern(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(200, 0, 0)
	pdf.SetLineWidth(0.15)

	spacing := 3.0
	maxDist := w + h

	for d := spacing; d < maxDist; d += spacing {
		x1 := x + math.Max(0, d-h)
		y1 := y + math.Min(h, d)
		x2 := x + math.Min(w, d)
		y2 := y + math.Max(0, d-w)

		pdf.Line(x1, y1, x2, y2)
	}
}

// drawDimensionAnnotations adds column and row counts outside the grid rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, g *model.Grid, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%d columns", g.Cols)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%d rows", g.Rows)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawLegend explains the cell shading and the invalid-slice hatching.
func drawLegend(pdf *fpdf.Fpdf, startY float64) {
	items := []struct {
		fill  sliceColor
		label string
	}{
		{mushroomFill, "Mushroom"},
		{tomatoFill, "Tomato"},
		{sliceColor{R: 255, G: 255, B: 255}, "Hatched: invalid slice"},
	}

	pdf.SetFont("Helvetica", "", 7)
	x := marginLeft
	for _, item := range items {
		pdf.SetFillColor(item.fill.R, item.fill.G, item.fill.B)
		pdf.SetDrawColor(120, 120, 120)
		pdf.Rect(x, startY+0.5, 3, 3, "FD")
		pdf.SetXY(x+4, startY)
		w := pdf.GetStringWidth(item.label) + 2
		pdf.CellFormat(w, 4, item.label, "", 0, "L", false, 0, "")
		x += w + 8
	}
}

// renderSummaryPage draws overall statistics and the slice table, adding
// pages as the table grows.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.SolveResult) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Slicing Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	summaryItems := []struct {
		label string
		value string
	}{
		{"Method", string(result.Method)},
		{"Cuts", fmt.Sprintf("%d", result.Steps)},
		{"Slices", fmt.Sprintf("%d", len(result.Slices))},
		{"Valid Slices", fmt.Sprintf("%d", result.ValidCount())},
		{"Score", fmt.Sprintf("%d / %d", result.ValidArea(), result.GridArea())},
		{"Efficiency", fmt.Sprintf("%.1f%%", result.Efficiency())},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}
	y += 5

	colWidths := []float64{15, 30, 45, 45, 30, 30, 30, 40}
	headers := []string{"#", "ID", "Top-left", "Bottom-right", "Area", "Mushrooms", "Tomatoes", "Valid"}

	drawHeader := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		x := marginLeft
		for i, header := range headers {
			pdf.SetXY(x, y)
			pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
			x += colWidths[i]
		}
		y += 6
		pdf.SetFont("Helvetica", "", 9)
	}
	drawHeader()

	rowsOnPage := 0
	for i, s := range result.Slices {
		if rowsOnPage == tableRowsPerPage || y > pageHeight-marginBottom-10 {
			pdf.AddPage()
			y = marginTop
			rowsOnPage = 0
			drawHeader()
		}

		valid := "yes"
		if !s.Valid {
			valid = "no"
		}
		rowData := []string{
			fmt.Sprintf("%d", i+1),
			s.ID,
			fmt.Sprintf("(%d, %d)", s.Rect.Row, s.Rect.Col),
			fmt.Sprintf("(%d, %d)", s.Rect.LastRow(), s.Rect.LastCol()),
			fmt.Sprintf("%d", s.Rect.Area()),
			fmt.Sprintf("%d", s.Mushrooms),
			fmt.Sprintf("%d", s.Tomatoes),
			valid,
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		x := marginLeft
		for j, cell := range rowData {
			pdf.SetXY(x, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			x += colWidths[j]
		}
		y += 6
		rowsOnPage++
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by slicecut", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
