package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jamjar/jamjar-editor/internal/adapter"
	controllermocks "github.com/jamjar/jamjar-editor/internal/controller/mocks"
	"github.com/jamjar/jamjar-editor/internal/domain"
	domainmocks "github.com/jamjar/jamjar-editor/internal/domain/mocks"
	"github.com/jamjar/jamjar-editor/internal/injector"
	m "github.com/jamjar/jamjar-editor/internal/model"
)

func TestParseCmd_DisplaysSpecs(t *testing.T) {
	root := newPlatformer(t)
	useApp(t, newTestApp(t))
	mockUI := controllermocks.NewMockUI(t)
	useUI(t, mockUI)

	mockUI.On("DisplaySpecs", mock.MatchedBy(func(specs []m.ComponentSpec) bool {
		return len(specs) == 2 &&
			specs[0].Name == "Health" &&
			specs[1].Name == "Transform"
	}), nil).Return(nil)

	_, err := execute(t, newParseCmd(),
		filepath.Join(root, "src/components/health.ts"),
		filepath.Join(root, "src/components/transform.ts"),
	)
	require.NoError(t, err)
}

func TestParseCmd_ParserError(t *testing.T) {
	root := newPlatformer(t)
	healthPath := m.Path(filepath.Join(root, "src/components/health.ts"))

	mockParser := domainmocks.NewMockComponentParser(t)
	useApp(t, &injector.App{
		FS:     adapter.NewLocalSourceFSAdapter(),
		IDs:    m.NewIDAllocator(),
		Parser: mockParser,
		Logger: zap.NewNop(),
	})
	mockUI := controllermocks.NewMockUI(t)
	useUI(t, mockUI)

	failure := fmt.Errorf("%w: unexpected token", domain.ErrSyntax)
	mockParser.On("Parse", mock.Anything, healthPath, m.Path(root)).Return(m.ComponentSpec{}, failure)
	mockUI.On("DisplaySpecs", mock.Anything, mock.MatchedBy(func(err error) bool {
		return errors.Is(err, domain.ErrSyntax)
	})).Return(nil)

	_, err := execute(t, newParseCmd(), string(healthPath), "--project", root)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSyntax)

	var shown displayedError
	assert.True(t, errors.As(err, &shown), "failure was already displayed")
}

func TestParseCmd_Formats(t *testing.T) {
	root := newPlatformer(t)
	healthPath := filepath.Join(root, "src/components/health.ts")

	t.Run("json", func(t *testing.T) {
		useApp(t, newTestApp(t))

		out, err := execute(t, newParseCmd(), healthPath, "--format", "json")
		require.NoError(t, err)

		var specs []struct {
			Name       string `json:"name"`
			Path       string `json:"path"`
			Definition []struct {
				Name string `json:"name"`
			} `json:"definition"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &specs))
		require.Len(t, specs, 1)

		assert.Equal(t, "Health", specs[0].Name)
		assert.Equal(t, filepath.ToSlash(filepath.Join(root, "src/components/health")), specs[0].Path)
		require.Len(t, specs[0].Definition, 2)
		assert.Equal(t, "shield", specs[0].Definition[1].Name)
	})

	t.Run("yaml", func(t *testing.T) {
		useApp(t, newTestApp(t))

		out, err := execute(t, newParseCmd(), healthPath, "-f", "yaml")
		require.NoError(t, err)

		assert.Contains(t, out, "name: Health")
		assert.Contains(t, out, "name: hp")
	})

	t.Run("unsupported", func(t *testing.T) {
		useApp(t, newTestApp(t))

		_, err := execute(t, newParseCmd(), healthPath, "--format", "xml")
		assert.ErrorContains(t, err, "unsupported output format")
	})
}

func TestParseCmd_NoSources(t *testing.T) {
	useApp(t, newTestApp(t))

	dir := t.TempDir()

	_, err := execute(t, newParseCmd(), dir)
	assert.ErrorContains(t, err, "no component sources")
}

func TestParseCmd_NotComponent(t *testing.T) {
	root := newPlatformer(t)
	useApp(t, newTestApp(t))
	mockUI := controllermocks.NewMockUI(t)
	useUI(t, mockUI)

	mockUI.On("DisplaySpecs", mock.Anything, mock.MatchedBy(func(err error) bool {
		return errors.Is(err, domain.ErrNotComponent)
	})).Return(nil)

	_, err := execute(t, newParseCmd(), filepath.Join(root, "src/components/not_component.ts"))
	assert.ErrorIs(t, err, domain.ErrNotComponent)
}
