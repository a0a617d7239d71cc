package cmd

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jamjar/jamjar-editor/internal/domain"
	m "github.com/jamjar/jamjar-editor/internal/model"
)

// watchCmd represents the watch command.
var watchCmd = newWatchCmd()
var watchModelFlag string
var watchSpecsFlag string
var watchComponentFlags []string
var watchProjectFlag string
var watchDebounceFlag time.Duration

const watchLongDescription = `Regenerate a scene file whenever its JSON model or one of its component
sources changes, until interrupted.

Watched components are the --component sources plus the sources of every
listed spec found on disk. Failed regenerations are reported and the watch
goes on.`

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <scene.ts>",
		Short: "Regenerate a scene file on every change",
		Long:  watchLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenePath, err := app.FS.AbsPath(m.Path(args[0]))
			if err != nil {
				return err
			}

			session, err := openSession(cmd.Context(), scenePath, watchProjectFlag, watchSpecsFlag, watchComponentFlags)
			if err != nil {
				return err
			}

			components := componentSources(session.State().GetSpecs())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			watcher := domain.NewWatcher(session, domain.WatchOptions{
				ModelPath:  m.Path(watchModelFlag),
				ScenePath:  scenePath,
				Components: components,
				Debounce:   watchDebounceFlag,
				OnSave: func(result domain.SaveResult) {
					_ = ui.DisplayWrite(result.Path, result.Source, false, result.Err)
				},
			}, app.Logger)

			app.Logger.Info("watching scene",
				zap.String("scene", string(scenePath)),
				zap.String("model", watchModelFlag),
				zap.Int("components", len(components)),
			)

			return watcher.Run(ctx)
		},
	}
	cmd.Flags().StringVarP(&watchModelFlag, "model", "m", "", "JSON scene model")
	cmd.Flags().StringVarP(&watchSpecsFlag, "specs", "s", "", "JSON component spec list")
	cmd.Flags().StringArrayVarP(&watchComponentFlags, "component", "c", nil, "component source to watch (can be repeated)")
	cmd.Flags().StringVarP(&watchProjectFlag, "project", "p", "", "project root used to resolve bare imports")
	cmd.Flags().DurationVar(&watchDebounceFlag, "debounce", 100*time.Millisecond, "quiet period before regenerating")
	_ = cmd.MarkFlagRequired("model")

	return cmd
}

// componentSources returns the source files of specs that live in the
// project, skipping specs declared by dependencies.
func componentSources(specs []m.ComponentSpec) []m.Path {
	var sources []m.Path

	for _, spec := range specs {
		path := filepath.FromSlash(spec.Path)
		if !filepath.IsAbs(path) {
			continue
		}

		source := m.Path(path + ".ts")
		if app.FS.Exists(source) {
			sources = append(sources, source)
		}
	}

	return sources
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
