package engine

import (
	"context"
	"fmt"

	"github.com/piwi3910/slicecut/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.SolveSettings
}

// ComparisonResult holds the solve result and computed statistics
// for a single scenario. Err is set when the scenario could not run.
type ComparisonResult struct {
	Scenario   ComparisonScenario
	Result     model.SolveResult
	SliceCount int
	ValidCount int
	ValidArea  int
	Efficiency float64
	Err        error
}

// CompareScenarios solves g once per scenario, in scenario order. A failing
// scenario is reported in its result rather than aborting the comparison;
// only context cancellation stops the run.
func CompareScenarios(ctx context.Context, scenarios []ComparisonScenario, g *model.Grid) ([]ComparisonResult, error) {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		res, err := New(scenario.Settings).Solve(ctx, g)
		cr := ComparisonResult{Scenario: scenario, Err: err}
		if err == nil {
			cr.Result = res
			cr.SliceCount = len(res.Slices)
			cr.ValidCount = res.ValidCount()
			cr.ValidArea = res.ValidArea()
			cr.Efficiency = res.Efficiency()
		}
		results = append(results, cr)
	}

	return results, nil
}

// BuildDefaultScenarios generates a set of comparison scenarios based on
// the current settings, varying key parameters to show what-if alternatives.
func BuildDefaultScenarios(base model.SolveSettings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{Name: "Current Settings", Settings: base},
	}

	toggled := base
	toggled.DropInvalid = !base.DropInvalid
	name := "Keep Invalid Slices"
	if toggled.DropInvalid {
		name = "Drop Invalid Slices"
	}
	scenarios = append(scenarios, ComparisonScenario{Name: name, Settings: toggled})

	for _, m := range model.Methods {
		if m == base.Method {
			continue
		}
		alt := base
		alt.Method = m
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Method %s", m),
			Settings: alt,
		})
	}

	return scenarios
}
