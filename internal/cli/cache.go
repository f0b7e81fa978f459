package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/slicecut/internal/cache"
	"github.com/piwi3910/slicecut/internal/project"
)

func newCacheCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the solve result cache",
	}

	cacheDir := func() (string, error) {
		cfg, err := root.loadConfig()
		if err != nil {
			return "", err
		}
		if cfg.CacheDir != "" {
			return cfg.CacheDir, nil
		}
		return project.DefaultCacheDir(), nil
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove all cached results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return err
			}
			c, err := cache.NewFileCache(dir)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer c.Close()

			n, err := c.(*cache.FileCache).Clear()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printSuccess(out, "Cleared %d cached results", n)
			printDetail(out, "Directory: %s", dir)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "info",
		Short: "Show how many results are cached",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return err
			}
			c, err := cache.NewFileCache(dir)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer c.Close()

			st, err := c.(*cache.FileCache).Stat()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printInfo(out, "%d cached results, %d stale, %d bytes", st.Entries, st.Expired, st.Bytes)
			printDetail(out, "Directory: %s", dir)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	})

	return cmd
}
