// Package cmd provides the root command and CLI setup for jamjar-editor.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jamjar/jamjar-editor/internal/config"
	"github.com/jamjar/jamjar-editor/internal/controller"
	"github.com/jamjar/jamjar-editor/internal/injector"
	"github.com/jamjar/jamjar-editor/internal/logs"
	m "github.com/jamjar/jamjar-editor/internal/model"
)

const appName = "jamjar-editor"

// app is built from the configuration before any subcommand runs.
var app *injector.App
var ui controller.UI

func init() {
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
}

var configFlag string
var logLevelFlag string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   appName,
		Short: "Component and scene tooling for JamJar games",
		Long: `jamjar-editor reads the constructor parameters of JamJar components and
regenerates the entity-loading method of scene files from an editor model.

Only the generated method and the imports it needs are rewritten; everything
else in a scene file is left as written.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if app != nil {
				return nil
			}

			return setup()
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			logs.Sync()
		},
	}
	cmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file (default: nearest "+config.FileName+")")
	cmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level override (debug, info, warn, error)")

	return cmd
}

func setup() error {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return err
	}

	if logLevelFlag != "" {
		cfg.Log.Level = logLevelFlag
	}

	if err := logs.Init(appName, cfg.Log); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	app, err = injector.InitializeApp(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		var shown displayedError
		if !errors.As(err, &shown) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}

		os.Exit(1)
	}
}

// displayedError is a failure the UI has already reported.
type displayedError struct {
	error
}

func (e displayedError) Unwrap() error {
	return e.error
}

// reported returns err marked as displayed, or the display failure itself.
func reported(displayErr, err error) error {
	if displayErr != nil {
		return displayErr
	}

	if err != nil {
		return displayedError{err}
	}

	return nil
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

// projectRootFor returns the --project directory when given, otherwise the
// nearest directory above source holding a package.json.
func projectRootFor(project string, source m.Path) (m.Path, error) {
	if project != "" {
		return app.FS.AbsPath(m.Path(project))
	}

	abs, err := app.FS.AbsPath(source)
	if err != nil {
		return "", err
	}

	root, err := app.FS.FindProjectRoot(abs)
	if err != nil {
		return "", fmt.Errorf("failed to find project root (set --project): %w", err)
	}

	return root, nil
}
