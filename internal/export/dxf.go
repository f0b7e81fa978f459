package export

import (
	"fmt"

	"github.com/piwi3910/slicecut/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
)

// DXF layer names.
const (
	LayerOutline = "PIZZA"
	LayerSlices  = "SLICES"
	LayerInvalid = "INVALID"
	LayerCuts    = "CUTS"
)

// ExportDXF writes the pizza outline, every slice outline and every cut line
// as LINE entities. Grid cells are scaled by cellSize and rows are flipped so
// row 0 is at the top of the drawing.
func ExportDXF(path string, result model.SolveResult, cellSize float64) error {
	if len(result.Slices) == 0 {
		return ErrNoSlices
	}
	if cellSize <= 0 {
		return fmt.Errorf("cell size must be positive, got %g", cellSize)
	}

	d := dxf.NewDrawing()
	height := float64(result.Rows) * cellSize

	// toDXF converts grid-edge coordinates to drawing units.
	toDXF := func(x, y float64) (float64, float64) {
		return x * cellSize, height - y*cellSize
	}
	line := func(x1, y1, x2, y2 float64) error {
		ax, ay := toDXF(x1, y1)
		bx, by := toDXF(x2, y2)
		_, err := d.Line(ax, ay, 0, bx, by, 0)
		return err
	}
	rect := func(r model.Rect) error {
		x1, y1 := float64(r.Col), float64(r.Row)
		x2, y2 := float64(r.Col+r.Width), float64(r.Row+r.Height)
		for _, seg := range [][4]float64{
			{x1, y1, x2, y1},
			{x2, y1, x2, y2},
			{x2, y2, x1, y2},
			{x1, y2, x1, y1},
		} {
			if err := line(seg[0], seg[1], seg[2], seg[3]); err != nil {
				return err
			}
		}
		return nil
	}

	if _, err := d.AddLayer(LayerOutline, color.White, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("add layer %s: %w", LayerOutline, err)
	}
	if err := rect(model.Rect{Width: result.Cols, Height: result.Rows}); err != nil {
		return fmt.Errorf("draw outline: %w", err)
	}

	for _, layer := range []struct {
		name  string
		color color.ColorNumber
		valid bool
	}{
		{LayerSlices, color.Green, true},
		{LayerInvalid, color.Red, false},
	} {
		if _, err := d.AddLayer(layer.name, layer.color, dxf.DefaultLineType, true); err != nil {
			return fmt.Errorf("add layer %s: %w", layer.name, err)
		}
		for _, s := range result.Slices {
			if s.Valid != layer.valid {
				continue
			}
			if err := rect(s.Rect); err != nil {
				return fmt.Errorf("draw slice %s: %w", s.ID, err)
			}
		}
	}

	if _, err := d.AddLayer(LayerCuts, color.Yellow, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("add layer %s: %w", LayerCuts, err)
	}
	for i, c := range result.Cuts {
		x1, y1, x2, y2 := c.Line()
		if err := line(x1, y1, x2, y2); err != nil {
			return fmt.Errorf("draw cut %d: %w", i+1, err)
		}
	}

	return d.SaveAs(path)
}
