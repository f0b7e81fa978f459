package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/piwi3910/slicecut/internal/engine"
	"github.com/piwi3910/slicecut/internal/export"
)

// ErrRejectedSlices is returned by score --strict when any slice fails.
var ErrRejectedSlices = errors.New("submission has rejected slices")

func newScoreCmd(root *rootOptions) *cobra.Command {
	var (
		strict bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "score <grid> <submission>",
		Short: "Check a submission against a grid",
		Long: `Score reads a submission (slice count, then one "r1 c1 r2 c2" line per slice)
and reports every slice that is out of bounds, too large, short of an
ingredient or overlapping an earlier slice, plus the total accepted area.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			in, err := loadInput(args[0], logger)
			if err != nil {
				return err
			}
			f, err := os.Open(args[1])
			if err != nil {
				return err
			}
			rects, err := export.ReadSubmission(f)
			f.Close()
			if err != nil {
				return fmt.Errorf("read %s: %w", args[1], err)
			}

			report := engine.Score(in.grid, rects)
			out := cmd.OutOrStdout()

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else {
				for _, v := range report.Violations {
					printError(out, "slice #%d %s: %s", v.Index, v.Rect, v.Reason)
				}
				if report.Valid() {
					printSuccess(out, "All %d slices accepted", report.Accepted)
				} else {
					printWarning(out, "%d of %d slices rejected", len(report.Violations), len(rects))
				}
				printKeyValue(out, "Score", fmt.Sprintf("%d / %d", report.Score, in.grid.Area()))
			}

			if strict && !report.Valid() {
				return ErrRejectedSlices
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "exit with an error when any slice is rejected")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}
