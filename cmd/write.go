package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/jamjar/jamjar-editor/internal/domain"
	m "github.com/jamjar/jamjar-editor/internal/model"
)

// writeCmd represents the write command.
var writeCmd = newWriteCmd()
var writeModelFlag string
var writeSpecsFlag string
var writeComponentFlags []string
var writeProjectFlag string
var writeDryRunFlag bool

const writeLongDescription = `Regenerate the entity-loading method of a scene file from a JSON scene
model.

Component specs come from a JSON spec list (--specs), from component sources
parsed on the fly (--component), or both. Re-parsed components keep the
identifiers of the listed specs with the same path.`

func newWriteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "write <scene.ts>",
		Short: "Regenerate a scene file from its model",
		Long:  writeLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenePath, err := app.FS.AbsPath(m.Path(args[0]))
			if err != nil {
				return err
			}

			source, err := writeScene(cmd.Context(), scenePath)

			return reported(ui.DisplayWrite(scenePath, source, writeDryRunFlag, err), err)
		},
	}
	cmd.Flags().StringVarP(&writeModelFlag, "model", "m", "", "JSON scene model")
	cmd.Flags().StringVarP(&writeSpecsFlag, "specs", "s", "", "JSON component spec list")
	cmd.Flags().StringArrayVarP(&writeComponentFlags, "component", "c", nil, "component source to parse (can be repeated)")
	cmd.Flags().StringVarP(&writeProjectFlag, "project", "p", "", "project root used to resolve bare imports")
	cmd.Flags().BoolVar(&writeDryRunFlag, "dry-run", false, "print the regenerated scene instead of writing it")
	_ = cmd.MarkFlagRequired("model")

	return cmd
}

func writeScene(ctx context.Context, scenePath m.Path) ([]byte, error) {
	session, err := openSession(ctx, scenePath, writeProjectFlag, writeSpecsFlag, writeComponentFlags)
	if err != nil {
		return nil, err
	}

	scene, err := session.OpenScene(m.Path(writeModelFlag))
	if err != nil {
		return nil, err
	}

	scene.Path = scenePath
	session.State().SetScene(scene)

	if !writeDryRunFlag {
		return session.SaveScene(ctx)
	}

	source, err := app.FS.ReadFile(scenePath)
	if err != nil {
		return nil, err
	}

	state := session.State()

	return app.Writer.Generate(ctx, scenePath, source, state.GetScene(), state.GetSpecs())
}

// openSession starts a session for scenePath seeded with the spec list at
// specsPath and the parsed component sources. A missing project root is
// only fatal when there are components to parse now.
func openSession(ctx context.Context, scenePath m.Path, project, specsPath string, components []string) (*domain.Session, error) {
	sources, err := app.FS.Get(parsePaths(components))
	if err != nil {
		return nil, err
	}

	root, err := projectRootFor(project, scenePath)
	if err != nil && (len(sources) > 0 || project != "") {
		return nil, err
	}

	session := app.NewSession(root)

	if specsPath != "" {
		if _, err := session.OpenSpecs(m.Path(specsPath)); err != nil {
			return nil, err
		}
	}

	if len(components) > 0 && len(sources) == 0 {
		return nil, errors.New("no component sources found in --component")
	}

	if _, err := session.ImportComponents(ctx, sources...); err != nil {
		return nil, err
	}

	return session, nil
}

func init() {
	rootCmd.AddCommand(writeCmd)
}
