package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	controllermocks "github.com/jamjar/jamjar-editor/internal/controller/mocks"
	m "github.com/jamjar/jamjar-editor/internal/model"
)

func TestNewSceneCmd(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "level_one.ts")

	t.Run("creates the scene", func(t *testing.T) {
		useApp(t, newTestApp(t))
		mockUI := controllermocks.NewMockUI(t)
		useUI(t, mockUI)

		mockUI.On("DisplayCreated", m.Path(path), nil).Return(nil)

		_, err := execute(t, newNewSceneCmd(), filepath.Join(dir, "level_one"))
		require.NoError(t, err)

		source, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(source), "class LevelOne extends Scene")
		assert.Contains(t, string(source), "private loadEditorEntities(): void {")
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		useApp(t, newTestApp(t))
		mockUI := controllermocks.NewMockUI(t)
		useUI(t, mockUI)

		mockUI.On("DisplayCreated", m.Path(path), mock.MatchedBy(func(err error) bool {
			return err != nil
		})).Return(nil)

		_, err := execute(t, newNewSceneCmd(), path)
		assert.ErrorContains(t, err, "already exists")
	})

	t.Run("requires a path", func(t *testing.T) {
		useApp(t, newTestApp(t))

		_, err := execute(t, newNewSceneCmd())
		assert.Error(t, err)
	})
}
