package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jamjar/jamjar-editor/internal/controller"
)

// parseCmd represents the parse command.
var parseCmd = newParseCmd()
var parseProjectFlag string
var parseFormatFlag string

const parseLongDescription = `Parse component source files and list the constructor parameters of
each default-exported component class.

Arguments are files or directories; a trailing /... scans a directory
recursively. Bare imports resolve under the project's node_modules, where
the project is --project or the nearest directory holding a package.json.`

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <component.ts>...",
		Short: "Describe the constructor parameters of components",
		Long:  parseLongDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch parseFormatFlag {
			case controller.FormatTable, controller.FormatJSON, controller.FormatYAML:
			default:
				return fmt.Errorf("unsupported output format %q", parseFormatFlag)
			}

			sources, err := app.FS.Get(parsePaths(args))
			if err != nil {
				return err
			}

			if len(sources) == 0 {
				return fmt.Errorf("no component sources found in %v", args)
			}

			root, err := projectRootFor(parseProjectFlag, sources[0])
			if err != nil {
				return err
			}

			specs, err := app.NewSession(root).ImportComponents(cmd.Context(), sources...)

			if parseFormatFlag != controller.FormatTable {
				if err != nil {
					return err
				}

				return controller.EncodeSpecs(cmd.OutOrStdout(), parseFormatFlag, specs)
			}

			return reported(ui.DisplaySpecs(specs, err), err)
		},
	}
	cmd.Flags().StringVarP(&parseProjectFlag, "project", "p", "", "project root used to resolve bare imports")
	cmd.Flags().StringVarP(&parseFormatFlag, "format", "f", controller.FormatTable, "output format: table, json or yaml")

	return cmd
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
