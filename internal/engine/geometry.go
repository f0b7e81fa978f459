package engine

import "github.com/piwi3910/slicecut/internal/model"

// Centroid is a position in global cell coordinates. A cell at (col, row)
// contributes at its centre (col+0.5, row+0.5).
type Centroid struct {
	X float64
	Y float64
}

// CountIngredient returns the number of cells in r holding kind.
func CountIngredient(g *model.Grid, r model.Rect, kind model.Ingredient) int {
	c := 0
	for row := r.Row; row < r.Row+r.Height; row++ {
		base := row * g.Cols
		for col := r.Col; col < r.Col+r.Width; col++ {
			if g.Cells[base+col] == kind {
				c++
			}
		}
	}
	return c
}

// countBoth tallies both ingredients in one pass.
func countBoth(g *model.Grid, r model.Rect) (mushrooms, tomatoes int) {
	m := CountIngredient(g, r, model.Mushroom)
	return m, r.Area() - m
}

// WeightedCentroid returns the running-average centre of every cell of kind in r,
// scanning row-major. When r holds no such cell the geometric midpoint of r is
// returned with ok=false.
func WeightedCentroid(g *model.Grid, r model.Rect, kind model.Ingredient) (c Centroid, ok bool) {
	n := 0
	var xAvg, yAvg float64
	for row := r.Row; row < r.Row+r.Height; row++ {
		base := row * g.Cols
		for col := r.Col; col < r.Col+r.Width; col++ {
			if g.Cells[base+col] != kind {
				continue
			}
			fn := float64(n)
			xAvg = (xAvg*fn + float64(col) + 0.5) / (fn + 1)
			yAvg = (yAvg*fn + float64(row) + 0.5) / (fn + 1)
			n++
		}
	}
	if n == 0 {
		return midpoint(r), false
	}
	return Centroid{X: xAvg, Y: yAvg}, true
}

func midpoint(r model.Rect) Centroid {
	return Centroid{
		X: float64(r.Col) + float64(r.Width)/2,
		Y: float64(r.Row) + float64(r.Height)/2,
	}
}
