// Package cli implements the slicecut command-line interface.
//
// Commands:
//   - solve: cut a pizza grid into slices and write the submission and reports
//   - score: check a submission against a grid
//   - show: preview a grid, optionally with its solved slices, in the terminal
//   - compare: solve one grid under several settings variants
//   - cache, config, profiles: housekeeping
//
// All commands support --verbose (-v) for debug-level logging. The logger
// travels through the command context.
package cli

import (
	"context"
	"fmt"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/slicecut/internal/model"
	"github.com/piwi3910/slicecut/internal/project"
)

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	verbose    bool
	configPath string
}

// loadConfig reads the application config named by --config.
func (o *rootOptions) loadConfig() (model.AppConfig, error) {
	return project.LoadAppConfig(o.configPath)
}

// Execute runs the slicecut CLI with args and returns the first command error.
func Execute(ctx context.Context, args []string) error {
	root := newRootCmd()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "slicecut",
		Short:        "slicecut cuts pizza grids into valid slices",
		Long:         `slicecut partitions a grid of mushroom and tomato cells into rectangular slices that respect a minimum ingredient count and a maximum slice size, using recursive greedy cutting.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if opts.verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("slicecut %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&opts.configPath, "config", project.DefaultConfigPath(), "path to the TOML config file")

	root.AddCommand(newSolveCmd(opts))
	root.AddCommand(newScoreCmd(opts))
	root.AddCommand(newShowCmd(opts))
	root.AddCommand(newCompareCmd(opts))
	root.AddCommand(newCacheCmd(opts))
	root.AddCommand(newConfigCmd(opts))
	root.AddCommand(newProfilesCmd(opts))

	return root
}
