package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamjar/jamjar-editor/internal/config"
	"github.com/jamjar/jamjar-editor/internal/controller"
	controllermocks "github.com/jamjar/jamjar-editor/internal/controller/mocks"
	"github.com/jamjar/jamjar-editor/internal/injector"
	m "github.com/jamjar/jamjar-editor/internal/model"
)

func TestRootCmd_Subcommands(t *testing.T) {
	var names []string
	for _, sub := range rootCmd.Commands() {
		names = append(names, sub.Name())
	}

	assert.Subset(t, names, []string{"parse", "write", "new-scene", "watch"})
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	cmd := newRootCmd()

	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("log-level"))
}

func TestRootCmd_RunsSubcommandWithPreparedApp(t *testing.T) {
	useApp(t, newTestApp(t))
	mockUI := controllermocks.NewMockUI(t)
	useUI(t, mockUI)

	dir := t.TempDir()
	want := m.Path(filepath.Join(dir, "intro.ts"))
	mockUI.On("DisplayCreated", want, nil).Return(nil)

	cmd := newRootCmd()
	cmd.AddCommand(newNewSceneCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"new-scene", filepath.Join(dir, "intro")})

	require.NoError(t, cmd.Execute())
	assert.FileExists(t, string(want))
}

func TestSetup(t *testing.T) {
	t.Run("config file and log level flag", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), config.FileName)
		require.NoError(t, os.WriteFile(path, []byte("generator:\n  methodName: buildLevel\nlog:\n  level: warn\n"), 0o644))

		useApp(t, nil)
		useFlags(t, path, "debug")

		require.NoError(t, setup())
		require.NotNil(t, app)

		assert.Equal(t, "buildLevel", app.Config.Generator.MethodName)
		assert.Equal(t, "debug", app.Config.Log.Level)
		assert.NotNil(t, app.Parser)
		assert.NotNil(t, app.Writer)
	})

	t.Run("missing config file", func(t *testing.T) {
		useApp(t, nil)
		useFlags(t, filepath.Join(t.TempDir(), "missing.yaml"), "")

		assert.Error(t, setup())
		assert.Nil(t, app)
	})
}

func TestReported(t *testing.T) {
	failure := errors.New("failed")
	displayFailure := errors.New("display failed")

	tests := []struct {
		name       string
		displayErr error
		err        error
		want       error
		shown      bool
	}{
		{name: "success", want: nil},
		{name: "displayed failure", err: failure, want: failure, shown: true},
		{name: "display failure wins", displayErr: displayFailure, err: failure, want: displayFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reported(tt.displayErr, tt.err)

			if tt.want == nil {
				assert.NoError(t, got)
				return
			}

			assert.ErrorIs(t, got, tt.want)

			var shown displayedError
			assert.Equal(t, tt.shown, errors.As(got, &shown))
		})
	}
}

func useApp(t *testing.T, a *injector.App) {
	t.Helper()

	original := app
	app = a
	t.Cleanup(func() { app = original })
}

func useUI(t *testing.T, u controller.UI) {
	t.Helper()

	original := ui
	ui = u
	t.Cleanup(func() { ui = original })
}

func useFlags(t *testing.T, configPath, logLevel string) {
	t.Helper()

	originalConfig, originalLevel := configFlag, logLevelFlag
	configFlag, logLevelFlag = configPath, logLevel
	t.Cleanup(func() { configFlag, logLevelFlag = originalConfig, originalLevel })
}

func newTestApp(t *testing.T) *injector.App {
	t.Helper()

	a, err := injector.InitializeApp(config.Config{})
	require.NoError(t, err)

	return a
}

// execute runs cmd with args and returns what it printed.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

func newPlatformer(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	if err := copyDir("../examples/platformer", root); err != nil {
		t.Fatalf("failed to copy example project: %v", err)
	}

	return root
}

func copyDir(src, dst string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dst, 0o755); err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := copyDir(srcPath, dstPath); err != nil {
				return err
			}

			continue
		}

		content, err := os.ReadFile(srcPath)
		if err != nil {
			return err
		}

		if err := os.WriteFile(dstPath, content, 0o644); err != nil {
			return err
		}
	}

	return nil
}
