package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/slicecut/internal/cache"
	"github.com/piwi3910/slicecut/internal/engine"
	"github.com/piwi3910/slicecut/internal/model"
)

func newShowCmd(root *rootOptions) *cobra.Command {
	var (
		flags   solveFlags
		solve   bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "show <input>",
		Short: "Preview a grid in the terminal",
		Long: `Show prints the grid one character per cell. With --solve, or when the
input is a project holding a result, each valid slice is coloured and
invalid slices are drawn in red.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			out := cmd.OutOrStdout()

			in, err := loadInput(args[0], logger)
			if err != nil {
				return err
			}
			g := in.grid

			result := in.result
			if solve {
				cfg, err := root.loadConfig()
				if err != nil {
					return err
				}
				settings, err := flags.settings(cmd, cfg, in.settings)
				if err != nil {
					return err
				}
				c := openCache(cfg, noCache, logger)
				defer c.Close()

				res, ok, err := cache.GetResult(ctx, c, g, settings)
				if err != nil {
					logger.Warn("cache read failed", "err", err)
				}
				if !ok {
					if res, err = engine.New(settings).WithLogger(logger).Solve(ctx, g); err != nil {
						return err
					}
					if err := cache.PutResult(ctx, c, g, settings, res); err != nil {
						logger.Warn("cache write failed", "err", err)
					}
				}
				result = &res
			}

			fmt.Fprintln(out, StyleTitle.Render(fmt.Sprintf("%d x %d grid", g.Rows, g.Cols))+
				StyleDim.Render(fmt.Sprintf("  min %d of each, max %d cells", g.MinIngredients, g.MaxCells)))

			if g.Area() > maxPreviewCells {
				printWarning(out, "Grid has %d cells, preview is limited to %d", g.Area(), maxPreviewCells)
			} else {
				fmt.Fprint(out, renderGrid(g, result))
			}

			printKeyValue(out, "Mushrooms", fmt.Sprint(engine.CountIngredient(g, g.Bounds(), model.Mushroom)))
			printKeyValue(out, "Tomatoes", fmt.Sprint(engine.CountIngredient(g, g.Bounds(), model.Tomato)))
			if result != nil {
				printKeyValue(out, "Score", fmt.Sprintf("%d (%.1f%%)", result.ValidArea(), result.Efficiency()))
				printResultStats(out, *result, false)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&solve, "solve", false, "solve the grid and colour its slices")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "ignore the result cache")
	return cmd
}
