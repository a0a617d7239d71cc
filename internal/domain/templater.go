package domain

import (
	"bytes"
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"

	"github.com/jamjar/jamjar-editor/internal/adapter"
	m "github.com/jamjar/jamjar-editor/internal/model"
)

//go:embed templates/scene.ts.tmpl
var sceneTemplateText string

var sceneTemplate = template.Must(template.New("scene").Parse(sceneTemplateText))

// Templater creates new scene source files.
type Templater interface {
	// Template renders scene source whose class name derives from path's
	// base name.
	Template(path m.Path) ([]byte, error)
	// NewScene writes a templated scene to path, adding the .ts extension
	// when missing, and returns the path written.
	NewScene(path m.Path) (m.Path, []byte, error)
}

type templater struct {
	fsAdapter adapter.SourceFSAdapter
	opts      Options
}

// NewTemplater creates a Templater.
func NewTemplater(fsAdapter adapter.SourceFSAdapter, opts Options) Templater {
	return &templater{fsAdapter: fsAdapter, opts: opts.withDefaults()}
}

func (t *templater) Template(path m.Path) ([]byte, error) {
	base := filepath.Base(string(path))
	name := className(strings.TrimSuffix(base, filepath.Ext(base)))

	if !isIdentifier(name) {
		return nil, fmt.Errorf("cannot derive a class name from %s", path)
	}

	var out bytes.Buffer

	err := sceneTemplate.Execute(&out, struct {
		Name       string
		ScenePath  string
		MethodName string
	}{
		Name:       name,
		ScenePath:  t.opts.ScenePath,
		MethodName: t.opts.MethodName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to template %s: %w", path, err)
	}

	return out.Bytes(), nil
}

func (t *templater) NewScene(path m.Path) (m.Path, []byte, error) {
	if filepath.Ext(string(path)) == "" {
		path += ".ts"
	}

	if t.fsAdapter.Exists(path) {
		return "", nil, fmt.Errorf("scene %s already exists", path)
	}

	source, err := t.Template(path)
	if err != nil {
		return "", nil, err
	}

	if err := t.fsAdapter.WriteFile(path, source, 0o644); err != nil {
		return "", nil, fmt.Errorf("failed to write scene %s: %w", path, err)
	}

	return path, source, nil
}

// className converts a snake_case file name to PascalCase.
func className(snake string) string {
	var b strings.Builder

	for _, part := range strings.Split(snake, "_") {
		if part == "" {
			continue
		}

		r, size := utf8.DecodeRuneInString(part)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(part[size:])
	}

	return b.String()
}

func isIdentifier(name string) bool {
	if name == "" {
		return false
	}

	for i, r := range name {
		if r == '$' || r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}

		return false
	}

	return true
}
