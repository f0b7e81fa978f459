package engine

import (
	"fmt"

	"github.com/piwi3910/slicecut/internal/model"
)

// Violation describes why a submitted slice does not count.
type Violation struct {
	Index  int        `json:"index"`
	Rect   model.Rect `json:"rect"`
	Reason string     `json:"reason"`
}

// ScoreReport summarises a checked list of slices.
type ScoreReport struct {
	Score      int         `json:"score"`       // Total area of slices without violations
	Accepted   int         `json:"accepted"`    // Number of slices without violations
	Violations []Violation `json:"violations"`
}

// Valid reports whether every slice passed.
func (r ScoreReport) Valid() bool {
	return len(r.Violations) == 0
}

// Score checks rects against the grid bounds, the size limit, the ingredient
// minimum and each other. Only accepted slices claim cells, so a slice
// overlapping an earlier accepted one is rejected and the earlier one stays.
func Score(g *model.Grid, rects []model.Rect) ScoreReport {
	report := ScoreReport{Violations: []Violation{}}
	owner := make([]int, g.Area())
	for i := range owner {
		owner[i] = -1
	}

	bounds := g.Bounds()
	for i, r := range rects {
		reject := func(format string, args ...any) {
			report.Violations = append(report.Violations, Violation{Index: i, Rect: r, Reason: fmt.Sprintf(format, args...)})
		}

		if r.Empty() {
			reject("empty slice")
			continue
		}
		if !r.Within(bounds) {
			reject("outside the %dx%d grid", g.Rows, g.Cols)
			continue
		}
		if !g.Fits(r) {
			reject("area %d exceeds maximum %d", r.Area(), g.MaxCells)
			continue
		}
		m, t := countBoth(g, r)
		if m < g.MinIngredients || t < g.MinIngredients {
			reject("has %d mushrooms and %d tomatoes, needs %d of each", m, t, g.MinIngredients)
			continue
		}
		if overlap := claim(g, owner, r, i); overlap >= 0 {
			reject("overlaps slice %d", overlap)
			continue
		}

		report.Score += r.Area()
		report.Accepted++
	}
	return report
}

// claim marks the cells of r as owned by idx. If any cell is already owned the
// grid is left untouched and the existing owner is returned.
func claim(g *model.Grid, owner []int, r model.Rect, idx int) int {
	for row := r.Row; row <= r.LastRow(); row++ {
		for col := r.Col; col <= r.LastCol(); col++ {
			if o := owner[row*g.Cols+col]; o >= 0 {
				return o
			}
		}
	}
	for row := r.Row; row <= r.LastRow(); row++ {
		for col := r.Col; col <= r.LastCol(); col++ {
			owner[row*g.Cols+col] = idx
		}
	}
	return -1
}
