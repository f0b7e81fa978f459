package engine

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/piwi3910/slicecut/internal/model"
)

// partition is the raw output of the recursive cutter.
type partition struct {
	finished []model.Rect
	cuts     []model.Cut
	steps    int
}

// partitioner drains a FIFO queue of oversized rectangles, cutting each in two
// until every piece fits the maximum slice size or cannot be split further.
type partitioner struct {
	grid     *model.Grid
	maxSteps int
	logger   *log.Logger
}

func newPartitioner(g *model.Grid, maxSteps int, logger *log.Logger) *partitioner {
	if maxSteps <= 0 {
		// Each cut adds one piece, so a grid of area A needs at most A-1 cuts.
		maxSteps = g.Area()
	}
	return &partitioner{grid: g, maxSteps: maxSteps, logger: logger}
}

func (p *partitioner) run(ctx context.Context) (partition, error) {
	var out partition

	root := p.grid.Bounds()
	if p.grid.Fits(root) {
		out.finished = append(out.finished, root)
		return out, nil
	}

	queue := []model.Rect{root}
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		if out.steps >= p.maxSteps {
			return out, fmt.Errorf("%w: %d steps with %d rectangles pending", ErrNonConvergence, out.steps, len(queue))
		}

		current := queue[0]
		queue = queue[1:]

		split, ok := ChooseBetterCut(p.grid, current, 0)
		if !ok {
			p.logger.Warn("rectangle cannot be split further", "rect", current)
			out.finished = append(out.finished, current)
			continue
		}
		out.steps++

		cut := model.Cut{
			Parent:   current,
			Axis:     split.Axis,
			Position: split.Position,
			Offset:   split.Offset,
			Score:    split.Score,
			Minority: split.Minority,
		}
		out.cuts = append(out.cuts, cut)
		p.logger.Debug("cut", "rect", current, "axis", cut.Axis, "pos", cut.Position, "offset", cut.Offset, "score", cut.Score)

		for _, part := range split.Parts {
			if p.grid.Fits(part) {
				out.finished = append(out.finished, part)
			} else {
				queue = append(queue, part)
			}
		}
	}
	return out, nil
}
