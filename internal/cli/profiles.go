package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/slicecut/internal/model"
	"github.com/piwi3910/slicecut/internal/project"
)

func newProfilesCmd(root *rootOptions) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List GCode post-processor profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			custom, err := project.LoadCustomProfiles(path)
			if err != nil {
				return err
			}

			current := func(name string) string {
				if name == cfg.Knife.Profile {
					return name + " " + StyleNumber.Render("(default)")
				}
				return name
			}

			printInfo(out, "%s", StyleTitle.Render("Built-in"))
			for _, p := range model.GCodeProfiles {
				fmt.Fprintln(out, "  "+StyleValue.Render(current(p.Name))+"  "+StyleDim.Render(p.Description))
			}
			if len(custom) > 0 {
				printInfo(out, "%s", StyleTitle.Render("Custom")+" "+StyleDim.Render(path))
				for _, p := range custom {
					fmt.Fprintln(out, "  "+StyleValue.Render(current(p.Name))+"  "+StyleDim.Render(p.Description))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "file", project.DefaultProfilesPath(), "custom profiles JSON file")
	return cmd
}
