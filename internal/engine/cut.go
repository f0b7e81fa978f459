package engine

import (
	"math"

	"github.com/piwi3910/slicecut/internal/model"
)

// Split is the outcome of cutting a rectangle once.
type Split struct {
	Axis     model.Axis
	Position int // Local boundary: Parts[0] spans [0, Position) along the cut axis
	Offset   int
	Minority model.Ingredient
	Score    int // Validity score, set by ChooseBetterCut
	Parts    [2]model.Rect
}

// EvaluateCut places a single cut along axis. The cut position is the combined
// ingredient centroid, rounded in rectangle-local space, shifted by offset and
// clamped so that both parts keep at least one row or column.
// It returns ok=false when r is empty or too narrow to cut along axis.
func EvaluateCut(g *model.Grid, r model.Rect, axis model.Axis, offset int) (Split, bool) {
	extent := r.Width
	if axis == model.AxisRight {
		extent = r.Height
	}
	if r.Empty() || extent < 2 {
		return Split{}, false
	}

	mc, tc := countBoth(g, r)
	mCentroid, _ := WeightedCentroid(g, r, model.Mushroom)
	tCentroid, _ := WeightedCentroid(g, r, model.Tomato)

	// The minority ingredient only labels the cut; it does not move it.
	minority := model.Mushroom
	if mc > tc {
		minority = model.Tomato
	}

	total := float64(mc + tc)
	wc := Centroid{
		X: (mCentroid.X*float64(mc) + tCentroid.X*float64(tc)) / total,
		Y: (mCentroid.Y*float64(mc) + tCentroid.Y*float64(tc)) / total,
	}

	var local float64
	if axis == model.AxisUp {
		local = wc.X - float64(r.Col)
	} else {
		local = wc.Y - float64(r.Row)
	}
	// The first part ends one cell before the rounded centroid, so cp is
	// kept in [2, extent] to leave both parts non-empty.
	cp := clampInt(int(math.Round(local))+offset, 2, extent)
	boundary := cp - 1

	s := Split{Axis: axis, Position: boundary, Offset: offset, Minority: minority}
	if axis == model.AxisUp {
		s.Parts[0] = model.Rect{Row: r.Row, Col: r.Col, Width: boundary, Height: r.Height}
		s.Parts[1] = model.Rect{Row: r.Row, Col: r.Col + boundary, Width: r.Width - boundary, Height: r.Height}
	} else {
		s.Parts[0] = model.Rect{Row: r.Row, Col: r.Col, Width: r.Width, Height: boundary}
		s.Parts[1] = model.Rect{Row: r.Row + boundary, Col: r.Col, Width: r.Width, Height: r.Height - boundary}
	}
	return s, true
}

// candidate is a split together with the per-part tallies used to rank it.
type candidate struct {
	split     Split
	mushrooms [2]int
	tomatoes  [2]int
	score     int
}

func newCandidate(g *model.Grid, s Split) candidate {
	c := candidate{split: s}
	for i, part := range s.Parts {
		c.mushrooms[i], c.tomatoes[i] = countBoth(g, part)
		if c.mushrooms[i] >= g.MinIngredients && c.tomatoes[i] >= g.MinIngredients {
			c.score++
		}
	}
	return c
}

// quality measures how unevenly the ingredients are split between the two parts.
func (c candidate) quality() int {
	dm := c.mushrooms[0] - c.mushrooms[1]
	dt := c.tomatoes[0] - c.tomatoes[1]
	return dm*dm + dt*dt
}

// ChooseBetterCut evaluates both axes and returns the split whose parts satisfy
// the ingredient minimum most often. When both axes tie below a full score the
// search moves the cut position forward one step at a time, keeping a later
// split only if it scores strictly higher. Remaining ties go to the axis with
// the higher quality. It returns ok=false when r cannot be cut along either axis.
func ChooseBetterCut(g *model.Grid, r model.Rect, offset int) (Split, bool) {
	limit := max(r.Width, r.Height)
	offset = min(max(offset, 0), limit)

	var best candidate
	found := false
	for off := offset; off <= limit; off++ {
		cand, retry, ok := pickAxis(g, r, off)
		if !ok {
			break
		}
		if !found || cand.score > best.score {
			best = cand
			best.split.Score = cand.score
			found = true
		}
		if !retry {
			break
		}
	}
	return best.split, found
}

// pickAxis ranks the two axis candidates at a single offset. retry reports a
// tie below a full validity score.
func pickAxis(g *model.Grid, r model.Rect, offset int) (best candidate, retry, ok bool) {
	upSplit, upOK := EvaluateCut(g, r, model.AxisUp, offset)
	rightSplit, rightOK := EvaluateCut(g, r, model.AxisRight, offset)

	switch {
	case !upOK && !rightOK:
		return candidate{}, false, false
	case !rightOK:
		return newCandidate(g, upSplit), false, true
	case !upOK:
		return newCandidate(g, rightSplit), false, true
	}

	up := newCandidate(g, upSplit)
	right := newCandidate(g, rightSplit)

	if up.score > right.score {
		return up, false, true
	}
	if up.score < right.score {
		return right, false, true
	}

	retry = up.score < 2
	if up.quality() > right.quality() {
		return up, retry, true
	}
	return right, retry, true
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
