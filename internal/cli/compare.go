package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/piwi3910/slicecut/internal/engine"
)

func newCompareCmd(root *rootOptions) *cobra.Command {
	var flags solveFlags

	cmd := &cobra.Command{
		Use:   "compare <input>",
		Short: "Solve a grid under several settings variants",
		Long: `Compare solves the grid with the current settings, with the invalid-slice
policy flipped and with every other method, then tabulates the results.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			in, err := loadInput(args[0], logger)
			if err != nil {
				return err
			}
			base, err := flags.settings(cmd, cfg, in.settings)
			if err != nil {
				return err
			}

			prog := newProgress(logger)
			results, err := engine.CompareScenarios(ctx, engine.BuildDefaultScenarios(base), in.grid)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Compared %d scenarios", len(results)))

			rows := make([][]string, 0, len(results))
			for _, r := range results {
				if r.Err != nil {
					rows = append(rows, []string{r.Scenario.Name, "-", "-", "-", "-", r.Err.Error()})
					continue
				}
				rows = append(rows, []string{
					r.Scenario.Name,
					fmt.Sprint(r.SliceCount),
					fmt.Sprint(r.ValidCount),
					fmt.Sprint(r.ValidArea),
					fmt.Sprintf("%.1f%%", r.Efficiency),
					"",
				})
			}

			headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
				Headers("Scenario", "Slices", "Valid", "Score", "Efficiency", "Note").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == -1 {
						return headerStyle
					}
					if row < len(results) && results[row].Err != nil {
						return lipgloss.NewStyle().Foreground(colorDim)
					}
					return lipgloss.NewStyle().Padding(0, 1)
				})

			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
