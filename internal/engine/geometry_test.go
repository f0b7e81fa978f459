package engine

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/slicecut/internal/model"
)

// buildGrid creates a grid from row strings of 'M' and 'T'.
func buildGrid(t *testing.T, minIngredients, maxCells int, rows ...string) *model.Grid {
	t.Helper()
	var cells []model.Ingredient
	for _, row := range rows {
		for _, r := range row {
			ing, ok := model.ParseIngredient(r)
			require.True(t, ok, "bad cell %q", r)
			cells = append(cells, ing)
		}
	}
	g, err := model.NewGrid(len(rows), len(rows[0]), minIngredients, maxCells, cells)
	require.NoError(t, err)
	return g
}

// randomGrid creates a reproducible random grid.
func randomGrid(t *testing.T, rng *rand.Rand, rows, cols, minIngredients, maxCells int) *model.Grid {
	t.Helper()
	cells := make([]model.Ingredient, rows*cols)
	for i := range cells {
		if rng.Intn(2) == 0 {
			cells[i] = model.Mushroom
		} else {
			cells[i] = model.Tomato
		}
	}
	g, err := model.NewGrid(rows, cols, minIngredients, maxCells, cells)
	require.NoError(t, err)
	return g
}

func TestCountIngredient_WholeGrid(t *testing.T) {
	g := buildGrid(t, 1, 4, "MM", "TT")

	assert.Equal(t, 2, CountIngredient(g, g.Bounds(), model.Mushroom))
	assert.Equal(t, 2, CountIngredient(g, g.Bounds(), model.Tomato))
}

func TestCountIngredient_SubRect(t *testing.T) {
	g := buildGrid(t, 1, 6, "TTT", "MMM")
	r := model.Rect{Row: 0, Col: 1, Width: 2, Height: 2}

	assert.Equal(t, 2, CountIngredient(g, r, model.Mushroom))
	assert.Equal(t, 2, CountIngredient(g, r, model.Tomato))
	assert.Equal(t, 0, CountIngredient(g, model.Rect{Row: 0, Col: 0, Width: 3, Height: 1}, model.Mushroom))
}

func TestCountIngredient_SumsToArea(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	g := randomGrid(t, rng, 9, 13, 1, 6)

	for i := 0; i < 200; i++ {
		row := rng.Intn(g.Rows)
		col := rng.Intn(g.Cols)
		r := model.Rect{
			Row:    row,
			Col:    col,
			Width:  1 + rng.Intn(g.Cols-col),
			Height: 1 + rng.Intn(g.Rows-row),
		}
		m := CountIngredient(g, r, model.Mushroom)
		tc := CountIngredient(g, r, model.Tomato)
		require.Equal(t, r.Area(), m+tc, "rect %v", r)
	}
}

func TestWeightedCentroid_GlobalCoordinates(t *testing.T) {
	g := buildGrid(t, 1, 6, "TTT", "MMM")

	c, ok := WeightedCentroid(g, g.Bounds(), model.Mushroom)
	require.True(t, ok)
	assert.InDelta(t, 1.5, c.X, 1e-9)
	assert.InDelta(t, 1.5, c.Y, 1e-9)

	// A sub-rectangle keeps global coordinates, not local ones.
	sub := model.Rect{Row: 0, Col: 2, Width: 1, Height: 2}
	c, ok = WeightedCentroid(g, sub, model.Tomato)
	require.True(t, ok)
	assert.InDelta(t, 2.5, c.X, 1e-9)
	assert.InDelta(t, 0.5, c.Y, 1e-9)
}

func TestWeightedCentroid_MissingIngredientUsesMidpoint(t *testing.T) {
	g := buildGrid(t, 1, 4, "MMMM")
	r := model.Rect{Row: 0, Col: 1, Width: 3, Height: 1}

	c, ok := WeightedCentroid(g, r, model.Tomato)
	assert.False(t, ok)
	assert.False(t, math.IsNaN(c.X) || math.IsNaN(c.Y), "centroid must not be NaN")
	assert.InDelta(t, 2.5, c.X, 1e-9)
	assert.InDelta(t, 0.5, c.Y, 1e-9)
}

func TestWeightedCentroid_Idempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	g := randomGrid(t, rng, 6, 8, 1, 6)
	r := model.Rect{Row: 1, Col: 2, Width: 5, Height: 4}

	for _, kind := range model.Ingredients {
		first, ok1 := WeightedCentroid(g, r, kind)
		second, ok2 := WeightedCentroid(g, r, kind)
		assert.Equal(t, first, second)
		assert.Equal(t, ok1, ok2)
	}
}
