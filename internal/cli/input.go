package cli

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/slicecut/internal/cache"
	"github.com/piwi3910/slicecut/internal/engine"
	"github.com/piwi3910/slicecut/internal/importer"
	"github.com/piwi3910/slicecut/internal/model"
	"github.com/piwi3910/slicecut/internal/project"
)

// loadedInput is a grid read from a puzzle file or a saved project.
type loadedInput struct {
	grid     *model.Grid
	settings *model.SolveSettings // Stored settings, for project files only
	result   *model.SolveResult   // Stored result, for project files only
}

// loadInput reads path as a project file when it has the project extension
// and as a grid file otherwise. Loader warnings are logged.
func loadInput(path string, logger *log.Logger) (loadedInput, error) {
	if strings.HasSuffix(strings.ToLower(path), project.FileExtension) {
		p, err := project.LoadProject(path)
		if err != nil {
			return loadedInput{}, err
		}
		g, err := p.LoadGrid()
		if err != nil {
			return loadedInput{}, err
		}
		logger.Debug("loaded project", "path", path, "version", p.Version, "created", p.CreatedAt)
		return loadedInput{grid: g, settings: &p.Settings, result: p.Result}, nil
	}

	res, err := importer.LoadFile(path)
	if err != nil {
		return loadedInput{}, err
	}
	for _, w := range res.Warnings {
		logger.Warn(w, "path", path)
	}
	return loadedInput{grid: res.Grid}, nil
}

// solveFlags are the settings overrides shared by solve, show and compare.
type solveFlags struct {
	method      string
	maxSteps    int
	dropInvalid bool
}

func (f *solveFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.method, "method", "m", "", "solving method: cut or point-expand (default from config)")
	cmd.Flags().IntVar(&f.maxSteps, "max-steps", 0, "cap on partitioner steps, 0 for the grid area")
	cmd.Flags().BoolVar(&f.dropInvalid, "drop-invalid", false, "remove slices below the ingredient minimum")
}

// settings builds solve settings from the config, then a stored project's
// settings, then any flags the user set explicitly.
func (f *solveFlags) settings(cmd *cobra.Command, cfg model.AppConfig, stored *model.SolveSettings) (model.SolveSettings, error) {
	s := model.DefaultSettings()
	cfg.ApplyToSettings(&s)
	if stored != nil {
		s = *stored
	}
	if cmd.Flags().Changed("method") {
		m, err := engine.ParseMethod(f.method)
		if err != nil {
			return s, err
		}
		s.Method = m
	}
	if cmd.Flags().Changed("max-steps") {
		s.MaxSteps = f.maxSteps
	}
	if cmd.Flags().Changed("drop-invalid") {
		s.DropInvalid = f.dropInvalid
	}
	return s, nil
}

// openCache returns the result cache selected by the config, or a null
// cache when caching is off.
func openCache(cfg model.AppConfig, noCache bool, logger *log.Logger) cache.Cache {
	if noCache || !cfg.CacheEnabled {
		return cache.NewNullCache()
	}
	dir := cfg.CacheDir
	if dir == "" {
		dir = project.DefaultCacheDir()
	}
	c, err := cache.NewFileCache(dir)
	if err != nil {
		logger.Warn("cache unavailable, continuing without it", "dir", dir, "err", err)
		return cache.NewNullCache()
	}
	return c
}
