package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	controllermocks "github.com/jamjar/jamjar-editor/internal/controller/mocks"
	m "github.com/jamjar/jamjar-editor/internal/model"
)

func TestWatchCmd(t *testing.T) {
	root := newPlatformer(t)
	specsPath, modelPath := sceneInputs(t, root)
	scenePath := filepath.Join(root, "src/scenes/level.ts")

	useApp(t, newTestApp(t))
	mockUI := controllermocks.NewMockUI(t)
	useUI(t, mockUI)

	saves := make(chan []byte, 8)
	mockUI.On("DisplayWrite", m.Path(scenePath), mock.Anything, false, nil).
		Run(func(args mock.Arguments) {
			select {
			case saves <- args.Get(1).([]byte):
			default:
			}
		}).
		Return(nil)

	cmd := newWatchCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{scenePath, "--model", modelPath, "--specs", specsPath, "--debounce", "20ms"})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- cmd.ExecuteContext(ctx) }()

	select {
	case source := <-saves:
		assert.True(t, strings.Contains(string(source), generatedPlayer), "unexpected scene:\n%s", source)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the initial regeneration")
	}

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancellation")
	}
}

func TestComponentSources(t *testing.T) {
	root := newPlatformer(t)
	useApp(t, newTestApp(t))

	health := filepath.ToSlash(filepath.Join(root, "src/components/health"))

	got := componentSources([]m.ComponentSpec{
		{Name: "Health", Path: health},
		{Name: "Gone", Path: filepath.ToSlash(filepath.Join(root, "src/components/gone"))},
		{Name: "Body", Path: "physics/index"},
	})

	assert.Equal(t, []m.Path{m.Path(filepath.Join(root, "src/components/health.ts"))}, got)
}
