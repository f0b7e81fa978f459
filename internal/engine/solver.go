package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/piwi3910/slicecut/internal/model"
)

// Solver partitions a grid into slices.
type Solver struct {
	Settings model.SolveSettings
	logger   *log.Logger
}

func New(settings model.SolveSettings) *Solver {
	return &Solver{Settings: settings, logger: log.Default()}
}

// WithLogger sets the logger used for cut decisions. A nil logger restores the default.
func (s *Solver) WithLogger(l *log.Logger) *Solver {
	if l == nil {
		l = log.Default()
	}
	s.logger = l
	return s
}

// ParseMethod resolves a method name, case-insensitively.
func ParseMethod(name string) (model.Method, error) {
	n := model.Method(strings.ToLower(strings.TrimSpace(name)))
	for _, m := range model.Methods {
		if n == m {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMethod, name)
}

// Solve runs the configured method over g. The grid is never modified.
func (s *Solver) Solve(ctx context.Context, g *model.Grid) (model.SolveResult, error) {
	switch s.Settings.Method {
	case model.MethodCut, "":
		return s.solveCut(ctx, g)
	case model.MethodPointExpand:
		return model.SolveResult{}, fmt.Errorf("%w: %s", ErrNotImplemented, s.Settings.Method)
	default:
		return model.SolveResult{}, fmt.Errorf("%w: %q", ErrUnknownMethod, s.Settings.Method)
	}
}

// solveCut runs the recursive partitioner and tallies every finished rectangle.
func (s *Solver) solveCut(ctx context.Context, g *model.Grid) (model.SolveResult, error) {
	start := time.Now()

	p := newPartitioner(g, s.Settings.MaxSteps, s.logger)
	part, err := p.run(ctx)
	if err != nil {
		return model.SolveResult{}, fmt.Errorf("cut method: %w", err)
	}

	result := model.NewSolveResult(g, model.MethodCut)
	result.Cuts = append(result.Cuts, part.cuts...)
	result.Steps = part.steps

	dropped := 0
	for _, r := range part.finished {
		sl := tally(g, r)
		if s.Settings.DropInvalid && !sl.Valid {
			dropped++
			continue
		}
		result.Slices = append(result.Slices, sl)
	}
	result.Elapsed = time.Since(start)

	s.logger.Debug("partition complete",
		"slices", len(result.Slices), "valid", result.ValidCount(),
		"dropped", dropped, "steps", result.Steps, "elapsed", result.Elapsed)
	return result, nil
}

// tally wraps a finished rectangle as a slice with its ingredient counts.
func tally(g *model.Grid, r model.Rect) model.Slice {
	m, t := countBoth(g, r)
	valid := m >= g.MinIngredients && t >= g.MinIngredients && g.Fits(r)
	return model.NewSlice(r, m, t, valid)
}
