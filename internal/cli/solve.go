package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/slicecut/internal/cache"
	"github.com/piwi3910/slicecut/internal/engine"
	"github.com/piwi3910/slicecut/internal/export"
	"github.com/piwi3910/slicecut/internal/gcode"
	"github.com/piwi3910/slicecut/internal/model"
	"github.com/piwi3910/slicecut/internal/project"
)

type solveOptions struct {
	solveFlags
	out       string
	validOnly bool
	pdf       string
	xlsx      string
	dxf       string
	labels    string
	gcode     string
	profile   string
	cellSize  float64
	project   string
	noCache   bool
}

func newSolveCmd(root *rootOptions) *cobra.Command {
	opts := &solveOptions{}

	cmd := &cobra.Command{
		Use:   "solve <input>",
		Short: "Cut a pizza grid into slices",
		Long: `Solve reads a grid (contest text, CSV, XLSX or a saved .slicecut project),
cuts it into slices and writes the submission plus any requested reports.

Examples:
  slicecut solve example.in
  slicecut solve big.in --out big.out --pdf big.pdf --gcode big.nc --profile Grbl
  slicecut solve medium.in --drop-invalid --project medium.slicecut`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd, root, opts, args[0])
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "submission output file (default stdout)")
	cmd.Flags().BoolVar(&opts.validOnly, "valid-only", false, "write only valid slices to the submission and labels")
	cmd.Flags().StringVar(&opts.pdf, "pdf", "", "write a PDF layout report")
	cmd.Flags().StringVar(&opts.xlsx, "xlsx", "", "write an XLSX workbook")
	cmd.Flags().StringVar(&opts.dxf, "dxf", "", "write a DXF drawing")
	cmd.Flags().StringVar(&opts.labels, "labels", "", "write a PDF sheet of QR slice labels")
	cmd.Flags().StringVar(&opts.gcode, "gcode", "", "write a knife toolpath")
	cmd.Flags().StringVar(&opts.profile, "profile", "", "GCode profile name (default from config)")
	cmd.Flags().Float64Var(&opts.cellSize, "cell-size", 0, "mm per grid cell for DXF and GCode (default from config)")
	cmd.Flags().StringVar(&opts.project, "project", "", "save a .slicecut project file")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "ignore the result cache")

	return cmd
}

func runSolve(cmd *cobra.Command, root *rootOptions, opts *solveOptions, input string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	in, err := loadInput(input, logger)
	if err != nil {
		return err
	}
	g := in.grid
	settings, err := opts.settings(cmd, cfg, in.settings)
	if err != nil {
		return err
	}
	logger.Debug("solving", "rows", g.Rows, "cols", g.Cols, "min", g.MinIngredients, "max", g.MaxCells, "method", settings.Method)

	c := openCache(cfg, opts.noCache, logger)
	defer c.Close()

	result, cached, err := cache.GetResult(ctx, c, g, settings)
	if err != nil {
		logger.Warn("cache read failed", "err", err)
	}
	if !cached {
		prog := newProgress(logger)
		result, err = engine.New(settings).WithLogger(logger).Solve(ctx, g)
		if err != nil {
			return fmt.Errorf("solve %s: %w", input, err)
		}
		prog.done(fmt.Sprintf("Solved %dx%d grid in %d steps", g.Rows, g.Cols, result.Steps))
		if err := cache.PutResult(ctx, c, g, settings, result); err != nil {
			logger.Warn("cache write failed", "err", err)
		}
	} else {
		logger.Debug("using cached result", "id", result.ID)
	}

	// The summary shares stdout with the submission only when the
	// submission goes to a file.
	summary := cmd.OutOrStdout()
	if opts.out == "" {
		summary = cmd.ErrOrStderr()
		if err := export.WriteSubmission(cmd.OutOrStdout(), result.Slices, opts.validOnly); err != nil {
			return err
		}
	} else if err := writeFile(opts.out, func(w io.Writer) error {
		return export.WriteSubmission(w, result.Slices, opts.validOnly)
	}); err != nil {
		return err
	}

	printSuccess(summary, "Score %s of %s cells (%.1f%%)",
		StyleNumber.Render(fmt.Sprint(result.ValidArea())), fmt.Sprint(result.GridArea()), result.Efficiency())
	printResultStats(summary, result, cached)
	if opts.out != "" {
		printFile(summary, opts.out)
	}

	written, err := writeReports(opts, cfg, g, result, logger)
	for _, path := range written {
		printFile(summary, path)
	}
	if err != nil {
		return err
	}

	if opts.project != "" {
		p := project.New(input, g, settings, &result)
		if err := project.SaveProject(opts.project, p); err != nil {
			return err
		}
		printFile(summary, opts.project)
	}

	if abs, err := filepath.Abs(input); err == nil {
		cfg.AddRecentInput(abs)
		if err := project.SaveAppConfig(root.configPath, cfg); err != nil {
			logger.Debug("could not update recent inputs", "err", err)
		}
	}
	return nil
}

// writeReports produces every report requested by flags and returns the
// paths it wrote. Slice-based reports are skipped with a warning when the
// result has no slices.
func writeReports(opts *solveOptions, cfg model.AppConfig, g *model.Grid, result model.SolveResult, logger *log.Logger) ([]string, error) {
	knife := cfg.Knife
	if opts.profile != "" {
		knife.Profile = opts.profile
	}
	if opts.cellSize > 0 {
		knife.CellSize = opts.cellSize
	}

	var written []string
	report := func(path, kind string, fn func() error) error {
		if path == "" {
			return nil
		}
		if err := fn(); err != nil {
			if errors.Is(err, export.ErrNoSlices) {
				logger.Warn("skipping report, no slices", "kind", kind)
				return nil
			}
			return fmt.Errorf("write %s %s: %w", kind, path, err)
		}
		written = append(written, path)
		return nil
	}

	steps := []struct {
		path, kind string
		fn         func() error
	}{
		{opts.pdf, "PDF", func() error { return export.ExportPDF(opts.pdf, g, result) }},
		{opts.xlsx, "XLSX", func() error { return export.ExportXLSX(opts.xlsx, g, result) }},
		{opts.dxf, "DXF", func() error { return export.ExportDXF(opts.dxf, result, knife.CellSize) }},
		{opts.labels, "labels", func() error { return export.ExportLabels(opts.labels, result, opts.validOnly) }},
		{opts.gcode, "GCode", func() error { return writeToolpath(opts.gcode, knife, result, logger) }},
	}
	for _, s := range steps {
		if err := report(s.path, s.kind, s.fn); err != nil {
			return written, err
		}
	}
	return written, nil
}

// writeToolpath generates the knife program, checks it by parsing it back
// and writes it to path.
func writeToolpath(path string, knife model.KnifeSettings, result model.SolveResult, logger *log.Logger) error {
	if err := knife.Validate(); err != nil {
		return err
	}
	custom, err := project.LoadCustomProfiles(project.DefaultProfilesPath())
	if err != nil {
		logger.Warn("ignoring custom profiles", "err", err)
	}
	profile := project.ResolveProfile(custom, knife.Profile)
	if profile.Name != knife.Profile {
		logger.Warn("unknown GCode profile, using fallback", "requested", knife.Profile, "using", profile.Name)
	}

	code := gcode.New(knife).WithProfile(profile).Generate(result)
	stats := gcode.Analyze(gcode.ParseGCode(code))
	if stats.Plunges != len(result.Cuts) {
		return fmt.Errorf("toolpath has %d plunges for %d cuts", stats.Plunges, len(result.Cuts))
	}
	logger.Debug("toolpath", "profile", profile.Name, "plunges", stats.Plunges,
		"cut_mm", fmt.Sprintf("%.1f", stats.CutLength), "rapid_mm", fmt.Sprintf("%.1f", stats.RapidLength))

	return writeFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, code)
		return err
	})
}

// writeFile creates path and hands it to fn, closing it afterwards.
func writeFile(path string, fn func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
