package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	controllermocks "github.com/jamjar/jamjar-editor/internal/controller/mocks"
	"github.com/jamjar/jamjar-editor/internal/domain"
	m "github.com/jamjar/jamjar-editor/internal/model"
)

const generatedPlayer = `        const Player: Entity = new Entity(this.messageBus);
        Player.Add(new Health(10, undefined));
        this.AddEntity(Player);`

// sceneInputs writes a spec list holding Health and a model with one Player
// entity using it. It returns the spec list and model paths.
func sceneInputs(t *testing.T, root string) (string, string) {
	t.Helper()

	session := newTestApp(t).NewSession(m.Path(root))
	health, err := session.ImportComponent(context.Background(), m.Path(filepath.Join(root, "src/components/health.ts")))
	require.NoError(t, err)

	ids := m.NewIDAllocator()
	ids.ObserveSpecs([]m.ComponentSpec{health})

	component := health.GenerateComponent(ids)
	component.Properties[0].Value = m.NumberValue(10)

	entity := m.NewEntity(ids, "Player")
	entity.Components = append(entity.Components, component)

	specs, err := json.Marshal([]m.ComponentSpec{health})
	require.NoError(t, err)

	model, err := json.Marshal(m.Scene{Entities: []m.Entity{entity}})
	require.NoError(t, err)

	specsPath := filepath.Join(root, "specs.json")
	modelPath := filepath.Join(root, "level.json")
	require.NoError(t, os.WriteFile(specsPath, specs, 0o644))
	require.NoError(t, os.WriteFile(modelPath, model, 0o644))

	return specsPath, modelPath
}

func TestWriteCmd(t *testing.T) {
	root := newPlatformer(t)
	specsPath, modelPath := sceneInputs(t, root)
	scenePath := filepath.Join(root, "src/scenes/level.ts")

	original, err := os.ReadFile(scenePath)
	require.NoError(t, err)

	t.Run("dry run prints without writing", func(t *testing.T) {
		useApp(t, newTestApp(t))
		mockUI := controllermocks.NewMockUI(t)
		useUI(t, mockUI)

		mockUI.On("DisplayWrite", m.Path(scenePath), mock.MatchedBy(func(source []byte) bool {
			return strings.Contains(string(source), generatedPlayer)
		}), true, nil).Return(nil)

		_, err := execute(t, newWriteCmd(), scenePath, "--model", modelPath, "--specs", specsPath, "--dry-run")
		require.NoError(t, err)

		unchanged, err := os.ReadFile(scenePath)
		require.NoError(t, err)
		assert.Equal(t, string(original), string(unchanged))
	})

	t.Run("writes the scene", func(t *testing.T) {
		useApp(t, newTestApp(t))
		mockUI := controllermocks.NewMockUI(t)
		useUI(t, mockUI)

		var displayed []byte
		mockUI.On("DisplayWrite", m.Path(scenePath), mock.Anything, false, nil).
			Run(func(args mock.Arguments) { displayed = args.Get(1).([]byte) }).
			Return(nil)

		_, err := execute(t, newWriteCmd(), scenePath, "-m", modelPath, "-s", specsPath)
		require.NoError(t, err)

		written, err := os.ReadFile(scenePath)
		require.NoError(t, err)

		assert.Equal(t, string(displayed), string(written))
		assert.Contains(t, string(written), `import Health from "../components/health";`)
		assert.Contains(t, string(written), generatedPlayer)
		assert.Contains(t, string(written), "// Level is hand-written; only the generated method below is rewritten.")
	})

	t.Run("components parsed on the fly keep listed ids", func(t *testing.T) {
		useApp(t, newTestApp(t))
		mockUI := controllermocks.NewMockUI(t)
		useUI(t, mockUI)

		mockUI.On("DisplayWrite", m.Path(scenePath), mock.MatchedBy(func(source []byte) bool {
			return strings.Contains(string(source), generatedPlayer)
		}), true, nil).Return(nil)

		_, err := execute(t, newWriteCmd(), scenePath,
			"--model", modelPath,
			"--specs", specsPath,
			"--component", filepath.Join(root, "src/components/health.ts"),
			"--dry-run",
		)
		require.NoError(t, err)
	})
}

func TestWriteCmd_Failures(t *testing.T) {
	root := newPlatformer(t)
	_, modelPath := sceneInputs(t, root)
	scenePath := filepath.Join(root, "src/scenes/level.ts")

	t.Run("unknown spec", func(t *testing.T) {
		useApp(t, newTestApp(t))
		mockUI := controllermocks.NewMockUI(t)
		useUI(t, mockUI)

		mockUI.On("DisplayWrite", m.Path(scenePath), mock.Anything, false, mock.MatchedBy(func(err error) bool {
			return errors.Is(err, domain.ErrMissingSpec)
		})).Return(nil)

		_, err := execute(t, newWriteCmd(), scenePath, "--model", modelPath)
		assert.ErrorIs(t, err, domain.ErrMissingSpec)
	})

	t.Run("model is required", func(t *testing.T) {
		useApp(t, newTestApp(t))

		_, err := execute(t, newWriteCmd(), scenePath)
		assert.ErrorContains(t, err, "model")
	})

	t.Run("component flag without sources", func(t *testing.T) {
		useApp(t, newTestApp(t))
		mockUI := controllermocks.NewMockUI(t)
		useUI(t, mockUI)

		mockUI.On("DisplayWrite", m.Path(scenePath), mock.Anything, false, mock.Anything).Return(nil)

		_, err := execute(t, newWriteCmd(), scenePath, "--model", modelPath, "--component", t.TempDir())
		assert.ErrorContains(t, err, "no component sources")
	})
}
