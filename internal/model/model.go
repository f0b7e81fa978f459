package model

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidGrid is returned when grid dimensions, cell data or constraints are inconsistent.
var ErrInvalidGrid = errors.New("invalid grid")

// Ingredient is the content of a single grid cell.
type Ingredient byte

const (
	Mushroom Ingredient = 'M'
	Tomato   Ingredient = 'T'
)

// Ingredients lists every valid cell value in a fixed order.
var Ingredients = []Ingredient{Mushroom, Tomato}

// ParseIngredient maps an input character to an Ingredient.
func ParseIngredient(r rune) (Ingredient, bool) {
	switch r {
	case 'M':
		return Mushroom, true
	case 'T':
		return Tomato, true
	default:
		return 0, false
	}
}

func (i Ingredient) String() string {
	switch i {
	case Mushroom:
		return "Mushroom"
	case Tomato:
		return "Tomato"
	default:
		return "Unknown"
	}
}

// Other returns the opposite ingredient.
func (i Ingredient) Other() Ingredient {
	if i == Mushroom {
		return Tomato
	}
	return Mushroom
}

// Grid is the immutable ingredient map together with the slicing constraints.
// Cells are stored row-major.
type Grid struct {
	Rows           int          `json:"rows"`
	Cols           int          `json:"cols"`
	MinIngredients int          `json:"min_ingredients"` // L: minimum of each ingredient per slice
	MaxCells       int          `json:"max_cells"`       // H: maximum cells per slice
	Cells          []Ingredient `json:"-"`
}

// CellCount returns rows*cols, rejecting non-positive dimensions and
// products that do not fit in an int.
func CellCount(rows, cols int) (int, error) {
	if rows < 1 || cols < 1 {
		return 0, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidGrid, rows, cols)
	}
	if rows > math.MaxInt/cols {
		return 0, fmt.Errorf("%w: dimensions %dx%d overflow the cell count", ErrInvalidGrid, rows, cols)
	}
	return rows * cols, nil
}

// NewGrid builds a grid after checking that the cell data matches the dimensions.
func NewGrid(rows, cols, minIngredients, maxCells int, cells []Ingredient) (*Grid, error) {
	n, err := CellCount(rows, cols)
	if err != nil {
		return nil, err
	}
	if minIngredients < 0 {
		return nil, fmt.Errorf("%w: negative minimum ingredient count %d", ErrInvalidGrid, minIngredients)
	}
	if maxCells < 1 {
		return nil, fmt.Errorf("%w: maximum slice size %d must be at least 1", ErrInvalidGrid, maxCells)
	}
	if len(cells) != n {
		return nil, fmt.Errorf("%w: expected %d cells, got %d", ErrInvalidGrid, n, len(cells))
	}
	for i, c := range cells {
		if c != Mushroom && c != Tomato {
			return nil, fmt.Errorf("%w: cell %d has value %q", ErrInvalidGrid, i, rune(c))
		}
	}
	return &Grid{
		Rows:           rows,
		Cols:           cols,
		MinIngredients: minIngredients,
		MaxCells:       maxCells,
		Cells:          cells,
	}, nil
}

// At returns the ingredient at the given global position.
func (g *Grid) At(row, col int) Ingredient {
	return g.Cells[row*g.Cols+col]
}

// Bounds returns the rectangle covering the whole grid.
func (g *Grid) Bounds() Rect {
	return Rect{Row: 0, Col: 0, Width: g.Cols, Height: g.Rows}
}

// Area returns the total number of cells.
func (g *Grid) Area() int {
	return g.Rows * g.Cols
}

// Fits reports whether r is small enough to be a finished slice.
func (g *Grid) Fits(r Rect) bool {
	return r.Area() <= g.MaxCells
}

// Rect is an axis-aligned window into a Grid. Row/Col are the global origin.
type Rect struct {
	Row    int `json:"row"`
	Col    int `json:"col"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Area returns the number of cells covered.
func (r Rect) Area() int {
	return r.Width * r.Height
}

// Empty reports whether the rectangle covers no cells.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// LastRow returns the inclusive bottom row index.
func (r Rect) LastRow() int {
	return r.Row + r.Height - 1
}

// LastCol returns the inclusive right column index.
func (r Rect) LastCol() int {
	return r.Col + r.Width - 1
}

// Contains reports whether the global cell (row, col) lies inside r.
func (r Rect) Contains(row, col int) bool {
	return row >= r.Row && row < r.Row+r.Height && col >= r.Col && col < r.Col+r.Width
}

// Overlaps reports whether r and o share at least one cell.
func (r Rect) Overlaps(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.Col < o.Col+o.Width && o.Col < r.Col+r.Width &&
		r.Row < o.Row+o.Height && o.Row < r.Row+r.Height
}

// Within reports whether r lies entirely inside outer.
func (r Rect) Within(outer Rect) bool {
	return r.Row >= outer.Row && r.Col >= outer.Col &&
		r.Row+r.Height <= outer.Row+outer.Height &&
		r.Col+r.Width <= outer.Col+outer.Width
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.Row, r.Col, r.Width, r.Height)
}

// Axis selects the direction of a cut.
type Axis int

const (
	AxisUp    Axis = iota // Vertical cut line: left and right parts, driven by the x coordinate
	AxisRight             // Horizontal cut line: top and bottom parts, driven by the y coordinate
)

func (a Axis) String() string {
	switch a {
	case AxisUp:
		return "Up"
	case AxisRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// Cut records one executed split of a parent rectangle.
type Cut struct {
	Parent   Rect       `json:"parent"`
	Axis     Axis       `json:"axis"`
	Position int        `json:"position"` // Local boundary: the first child spans [0, Position)
	Offset   int        `json:"offset"`   // Offset the winning candidate was found at
	Score    int        `json:"score"`    // Validity score (0-2) of the children
	Minority Ingredient `json:"minority"` // Less frequent ingredient in the parent
}

// Line returns the global endpoints of the cut line in cell-edge coordinates (x, y).
func (c Cut) Line() (x1, y1, x2, y2 float64) {
	p := c.Parent
	if c.Axis == AxisUp {
		x := float64(p.Col + c.Position)
		return x, float64(p.Row), x, float64(p.Row + p.Height)
	}
	y := float64(p.Row + c.Position)
	return float64(p.Col), y, float64(p.Col + p.Width), y
}

// Slice is a finished rectangle with its ingredient tally.
type Slice struct {
	ID        string `json:"id"`
	Rect      Rect   `json:"rect"`
	Mushrooms int    `json:"mushrooms"`
	Tomatoes  int    `json:"tomatoes"`
	Valid     bool   `json:"valid"` // Meets the minimum for both ingredients and the size limit
}

// NewSlice wraps a rectangle with a fresh short ID.
func NewSlice(r Rect, mushrooms, tomatoes int, valid bool) Slice {
	return Slice{
		ID:        uuid.New().String()[:8],
		Rect:      r,
		Mushrooms: mushrooms,
		Tomatoes:  tomatoes,
		Valid:     valid,
	}
}

// Method selects the solving strategy.
type Method string

const (
	MethodCut         Method = "cut"          // Recursive greedy cutting
	MethodPointExpand Method = "point-expand" // Growth from seed cells (not implemented)
)

// Methods lists every known method name.
var Methods = []Method{MethodCut, MethodPointExpand}

// SolveSettings holds solver configuration.
type SolveSettings struct {
	Method      Method `json:"method"`
	MaxSteps    int    `json:"max_steps"`    // Cap on partitioner steps; 0 = grid area
	DropInvalid bool   `json:"drop_invalid"` // Remove slices below the ingredient minimum from the result
}

func DefaultSettings() SolveSettings {
	return SolveSettings{
		Method:      MethodCut,
		MaxSteps:    0,
		DropInvalid: false,
	}
}

// SolveResult holds the full solution.
type SolveResult struct {
	ID             string        `json:"id"`
	Method         Method        `json:"method"`
	Rows           int           `json:"rows"`
	Cols           int           `json:"cols"`
	MinIngredients int           `json:"min_ingredients"`
	MaxCells       int           `json:"max_cells"`
	Slices         []Slice       `json:"slices"`
	Cuts           []Cut         `json:"cuts"`
	Steps          int           `json:"steps"`
	Elapsed        time.Duration `json:"elapsed"`
}

// NewSolveResult creates an empty result describing the grid it was computed for.
func NewSolveResult(g *Grid, method Method) SolveResult {
	return SolveResult{
		ID:             uuid.New().String()[:8],
		Method:         method,
		Rows:           g.Rows,
		Cols:           g.Cols,
		MinIngredients: g.MinIngredients,
		MaxCells:       g.MaxCells,
		Slices:         []Slice{},
		Cuts:           []Cut{},
	}
}

// GridArea returns the area of the grid the result was computed for.
func (sr SolveResult) GridArea() int {
	return sr.Rows * sr.Cols
}

// CoveredArea returns the total area of all reported slices.
func (sr SolveResult) CoveredArea() int {
	total := 0
	for _, s := range sr.Slices {
		total += s.Rect.Area()
	}
	return total
}

// ValidCount returns the number of valid slices.
func (sr SolveResult) ValidCount() int {
	n := 0
	for _, s := range sr.Slices {
		if s.Valid {
			n++
		}
	}
	return n
}

// ValidArea returns the total area of valid slices. This is the contest score.
func (sr SolveResult) ValidArea() int {
	total := 0
	for _, s := range sr.Slices {
		if s.Valid {
			total += s.Rect.Area()
		}
	}
	return total
}

// ValidSlices returns only the slices that satisfy every constraint.
func (sr SolveResult) ValidSlices() []Slice {
	out := make([]Slice, 0, len(sr.Slices))
	for _, s := range sr.Slices {
		if s.Valid {
			out = append(out, s)
		}
	}
	return out
}

// Efficiency returns the valid area as a percentage of the grid area.
func (sr SolveResult) Efficiency() float64 {
	ga := sr.GridArea()
	if ga == 0 {
		return 0
	}
	return float64(sr.ValidArea()) / float64(ga) * 100.0
}
