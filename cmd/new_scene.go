package cmd

import (
	"github.com/spf13/cobra"

	m "github.com/jamjar/jamjar-editor/internal/model"
)

// newSceneCmd represents the new-scene command.
var newSceneCmd = newNewSceneCmd()

func newNewSceneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new-scene <path>",
		Short: "Create a scene file with an empty generated method",
		Long: `Create a scene source file whose class extends the engine's Scene type and
holds an empty generated method. The class name is derived from the file
name (level_one.ts becomes LevelOne) and .ts is appended when the path has
no extension. Existing files are never overwritten.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path, err := app.FS.AbsPath(m.Path(args[0]))
			if err != nil {
				return err
			}

			scene, err := app.NewSession("").NewScene(path)
			if err == nil {
				path = scene.Path
			}

			return reported(ui.DisplayCreated(path, err), err)
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(newSceneCmd)
}
