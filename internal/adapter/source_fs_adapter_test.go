package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/jamjar/jamjar-editor/internal/model"
)

func TestLocalSourceFSAdapter_Walk(t *testing.T) {
	t.Run("non recursive skips nested files", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "health.ts"), "export default class Health {}\n")

		nestedDir := filepath.Join(root, "nested")
		mustMkdir(t, nestedDir)
		writeTestFile(t, filepath.Join(nestedDir, "child.ts"), "export default class Child {}\n")

		var visited []string
		err := adapter.Walk(m.Path(root), false, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			visited = append(visited, path)
			return nil
		})
		require.NoError(t, err)

		assert.False(t, containsPath(visited, filepath.Join(nestedDir, "child.ts")))
		assert.True(t, containsPath(visited, filepath.Join(root, "health.ts")))
	})

	t.Run("recursive visits nested files but not dependencies", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		nestedDir := filepath.Join(root, "nested")
		mustMkdir(t, nestedDir)
		child := filepath.Join(nestedDir, "child.ts")
		writeTestFile(t, child, "export default class Child {}\n")

		deps := filepath.Join(root, "node_modules")
		mustMkdir(t, deps)
		writeTestFile(t, filepath.Join(deps, "lib.ts"), "export default class Lib {}\n")

		var visited []string
		err := adapter.Walk(m.Path(root), true, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			visited = append(visited, path)
			return nil
		})
		require.NoError(t, err)

		assert.True(t, containsPath(visited, child))
		assert.False(t, containsPath(visited, filepath.Join(deps, "lib.ts")))
	})
}

func TestLocalSourceFSAdapter_ReadWriteFile(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	path := filepath.Join(root, "scene.ts")
	writeTestFile(t, path, "old\n")

	require.NoError(t, adapter.WriteFile(m.Path(path), []byte("new\n"), 0o644))

	got, err := adapter.ReadFile(m.Path(path))
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(got))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")

	_, err = adapter.ReadFile(m.Path(filepath.Join(root, "missing.ts")))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalSourceFSAdapter_Exists(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	file := filepath.Join(root, "vector.d.ts")
	writeTestFile(t, file, "export default class Vector {}\n")

	assert.True(t, adapter.Exists(m.Path(file)))
	assert.False(t, adapter.Exists(m.Path(filepath.Join(root, "vector.ts"))))
	assert.False(t, adapter.Exists(m.Path(root)), "directories are not files")
}

func TestLocalSourceFSAdapter_HashFile(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	path := filepath.Join(root, "health.ts")
	content := []byte("export default class Health {}\n")
	writeTestBytes(t, path, content)

	got, err := adapter.HashFile(m.Path(path))
	require.NoError(t, err)
	assert.Equal(t, xxhash.Sum64(content), got)

	_, err = adapter.HashFile(m.Path(filepath.Join(root, "missing.ts")))
	assert.Error(t, err)
}

func TestLocalSourceFSAdapter_FindProjectRoot(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	projectDir := filepath.Join(root, "project")
	mustMkdir(t, projectDir)
	writeTestFile(t, filepath.Join(projectDir, "package.json"), "{}\n")

	subDir := filepath.Join(projectDir, "src", "components")
	require.NoError(t, os.MkdirAll(subDir, 0o755))

	got, err := adapter.FindProjectRoot(m.Path(filepath.Join(subDir, "health.ts")))
	require.NoError(t, err)
	assert.Equal(t, m.Path(projectDir), got)

	got, err = adapter.FindProjectRoot(m.Path(subDir))
	require.NoError(t, err)
	assert.Equal(t, m.Path(projectDir), got)

	_, err = adapter.FindProjectRoot(m.Path(filepath.Join(root, "health.ts")))
	assert.Error(t, err)
}

func TestLocalSourceFSAdapter_PathHelpers(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	rel, err := adapter.RelPath("/tmp/project", "/tmp/project/src/scenes/level.ts")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("src", "scenes", "level.ts"), string(rel))

	abs, err := adapter.AbsPath("relative/../file.ts")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(string(abs)))
	assert.Equal(t, "file.ts", filepath.Base(string(abs)))
}

func TestLocalSourceFSAdapter_Get(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	newTree := func(t *testing.T) string {
		t.Helper()

		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "health.ts"), "export default class Health {}\n")
		writeTestFile(t, filepath.Join(root, "health.test.ts"), "test\n")
		writeTestFile(t, filepath.Join(root, "types.d.ts"), "declare class X {}\n")
		writeTestFile(t, filepath.Join(root, "notes.md"), "notes\n")

		nested := filepath.Join(root, "physics")
		mustMkdir(t, nested)
		writeTestFile(t, filepath.Join(nested, "body.ts"), "export default class Body {}\n")

		return root
	}

	t.Run("directory is scanned non-recursively", func(t *testing.T) {
		root := newTree(t)

		sources, err := adapter.Get([]m.Path{m.Path(root)})
		require.NoError(t, err)

		assert.Equal(t, []m.Path{m.Path(filepath.Join(root, "health.ts"))}, sources)
	})

	t.Run("ellipsis suffix scans recursively", func(t *testing.T) {
		root := newTree(t)

		sources, err := adapter.Get([]m.Path{m.Path(root + "/...")})
		require.NoError(t, err)

		assert.ElementsMatch(t, []m.Path{
			m.Path(filepath.Join(root, "health.ts")),
			m.Path(filepath.Join(root, "physics", "body.ts")),
		}, sources)
	})

	t.Run("files are deduplicated across roots", func(t *testing.T) {
		root := newTree(t)
		file := m.Path(filepath.Join(root, "health.ts"))

		sources, err := adapter.Get([]m.Path{file, m.Path(root), file})
		require.NoError(t, err)

		assert.Equal(t, []m.Path{file}, sources)
	})

	t.Run("tilde expands home directory", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		writeTestFile(t, filepath.Join(home, "home.ts"), "export default class Home {}\n")

		sources, err := adapter.Get([]m.Path{"~"})
		require.NoError(t, err)

		assert.Equal(t, []m.Path{m.Path(filepath.Join(home, "home.ts"))}, sources)
	})

	t.Run("missing root fails", func(t *testing.T) {
		_, err := adapter.Get([]m.Path{m.Path(filepath.Join(t.TempDir(), "missing"))})
		assert.Error(t, err)
	})

	t.Run("no roots", func(t *testing.T) {
		sources, err := adapter.Get(nil)
		require.NoError(t, err)
		assert.Empty(t, sources)
	})
}

func writeTestFile(t *testing.T, path, contents string) {
	t.Helper()
	writeTestBytes(t, path, []byte(contents))
}

func writeTestBytes(t *testing.T, path string, contents []byte) {
	t.Helper()
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatalf("failed to create dir %s: %v", path, err)
	}
}

func containsPath(paths []string, target string) bool {
	for _, p := range paths {
		if p == target {
			return true
		}
	}

	return false
}
