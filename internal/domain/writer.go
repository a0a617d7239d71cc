package domain

import (
	"context"
	"fmt"
	"path/filepath"

	sitter "github.com/smacker/go-tree-sitter"
	"go.uber.org/zap"

	"github.com/jamjar/jamjar-editor/internal/adapter"
	m "github.com/jamjar/jamjar-editor/internal/model"
)

// SceneWriter regenerates the entity-loading method of a scene source file.
type SceneWriter interface {
	// Generate returns source with the generated method rebuilt from scene
	// and the imports adjusted to match. Nothing is written.
	Generate(ctx context.Context, filePath m.Path, source []byte, scene m.Scene, specs []m.ComponentSpec) ([]byte, error)
	// Write reads filePath, generates and writes the result back.
	Write(ctx context.Context, filePath m.Path, scene m.Scene, specs []m.ComponentSpec) ([]byte, error)
}

type sceneGenerator struct {
	fsAdapter adapter.SourceFSAdapter
	tsAdapter adapter.TSFileAdapter
	opts      Options
	logger    *zap.Logger
}

// NewSceneWriter creates a SceneWriter.
func NewSceneWriter(
	fsAdapter adapter.SourceFSAdapter,
	tsAdapter adapter.TSFileAdapter,
	opts Options,
	logger *zap.Logger,
) SceneWriter {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &sceneGenerator{
		fsAdapter: fsAdapter,
		tsAdapter: tsAdapter,
		opts:      opts.withDefaults(),
		logger:    logger,
	}
}

func (g *sceneGenerator) Write(ctx context.Context, filePath m.Path, scene m.Scene, specs []m.ComponentSpec) ([]byte, error) {
	source, err := g.fsAdapter.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene %s: %w", filePath, err)
	}

	out, err := g.Generate(ctx, filePath, source, scene, specs)
	if err != nil {
		return nil, err
	}

	if err := g.fsAdapter.WriteFile(filePath, out, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write scene %s: %w", filePath, err)
	}

	g.logger.Info("wrote scene",
		zap.String("path", string(filePath)),
		zap.Int("entities", len(scene.Entities)),
		zap.Int("bytes", len(out)),
	)

	return out, nil
}

func (g *sceneGenerator) Generate(
	ctx context.Context,
	filePath m.Path,
	source []byte,
	scene m.Scene,
	specs []m.ComponentSpec,
) ([]byte, error) {
	specMap := m.SpecMap(specs)

	for _, entity := range scene.Entities {
		for _, component := range entity.Components {
			if _, ok := specMap[component.SpecID]; !ok {
				return nil, fmt.Errorf("%w: entity %s component %d spec %d",
					ErrMissingSpec, entity.Name, component.ID, component.SpecID)
			}
		}
	}

	absPath, err := g.fsAdapter.AbsPath(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", filePath, err)
	}

	path := string(absPath)

	r := newResolver(ctx, g.fsAdapter, g.tsAdapter, g.opts, g.projectRoot(absPath), g.logger)
	defer r.close()

	file, err := r.parse(path, source)
	if err != nil {
		return nil, err
	}

	cls, err := g.sceneClass(r, file)
	if err != nil {
		return nil, err
	}

	statements, err := g.entityStatements(scene.Entities, specMap)
	if err != nil {
		return nil, err
	}

	edits := []edit{g.methodEdit(file, cls, statements)}

	imports, err := g.requiredImports(path, file.boundNames(), scene.Entities, specMap)
	if err != nil {
		return nil, err
	}

	if len(imports) > 0 {
		edits = append(edits, importEdit(file, imports))
	}

	generated, err := applyEdits(file.Source, edits)
	if err != nil {
		return nil, fmt.Errorf("failed to apply generated code to %s: %w", path, err)
	}

	return g.prune(ctx, absPath, generated)
}

func (g *sceneGenerator) projectRoot(path m.Path) string {
	root, err := g.fsAdapter.FindProjectRoot(path)
	if err != nil {
		return filepath.Dir(string(path))
	}

	return string(root)
}

// sceneClass finds the one default-exported class deriving from the scene type.
func (g *sceneGenerator) sceneClass(r *resolver, file *sourceFile) (classDecl, error) {
	var found []classDecl

	for _, name := range file.defaults {
		cls, ok := file.classes[name]
		if !ok {
			continue
		}

		isScene, err := r.extends(file, cls, g.opts.ScenePath)
		if err != nil {
			return classDecl{}, fmt.Errorf("failed to check base type of %s: %w", cls.name, err)
		}

		if isScene {
			found = append(found, cls)
		}
	}

	if len(found) != 1 {
		return classDecl{}, fmt.Errorf("%w: %s has %d", ErrSceneNotFound, file.Path, len(found))
	}

	return found[0], nil
}

// methodEdit replaces the generated method in place, or appends it as the
// last member of the class.
func (g *sceneGenerator) methodEdit(file *sourceFile, cls classDecl, statements []statement) edit {
	src := file.Source

	if existing := cls.method(src, g.opts.MethodName); existing != nil {
		start, end := int(existing.StartByte()), int(existing.EndByte())

		return edit{start: start, end: end, text: g.renderMethod(statements, indentAt(src, start))}
	}

	classIndent := indentAt(src, int(cls.node.StartByte()))
	indent := memberIndent(cls.body, src)
	if indent == "" {
		indent = classIndent + indentUnit(classIndent)
	}

	method := g.renderMethod(statements, indent)
	closing := int(cls.body.EndByte()) - 1

	if lineStart := lineStartOf(src, closing); isBlank(src[lineStart:closing]) {
		text := indent + method + "\n"
		if cls.body.NamedChildCount() > 0 {
			text = "\n" + text
		}

		return edit{start: lineStart, end: lineStart, text: text}
	}

	return edit{start: closing, end: closing, text: "\n" + indent + method + "\n" + classIndent}
}

// memberIndent returns the indentation of the first member that opens a line.
func memberIndent(body *sitter.Node, src []byte) string {
	for i := 0; i < int(body.NamedChildCount()); i++ {
		start := int(body.NamedChild(i).StartByte())
		if lineStart := lineStartOf(src, start); isBlank(src[lineStart:start]) && start > lineStart {
			return string(src[lineStart:start])
		}
	}

	return ""
}

// importEdit prepends imports ahead of the first statement of the file.
func importEdit(file *sourceFile, imports []generatedImport) edit {
	var text string
	for _, imp := range imports {
		text += imp.render()
	}

	root := file.Root()
	for i := 0; i < int(root.NamedChildCount()); i++ {
		if node := root.NamedChild(i); node.Type() != "comment" {
			offset := int(node.StartByte())

			return edit{start: offset, end: offset, text: text}
		}
	}

	offset := len(file.Source)
	if offset > 0 && file.Source[offset-1] != '\n' {
		text = "\n" + text
	}

	return edit{start: offset, end: offset, text: text}
}

// prune reparses generated text and removes imports it no longer references.
func (g *sceneGenerator) prune(ctx context.Context, path m.Path, generated []byte) ([]byte, error) {
	tree, err := g.tsAdapter.Parse(ctx, path, generated)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	if tree.HasError() {
		return nil, fmt.Errorf("%w: generated source for %s", ErrSyntax, path)
	}

	out, err := applyEdits(generated, pruneImports(indexSource(tree)))
	if err != nil {
		return nil, fmt.Errorf("failed to prune imports of %s: %w", path, err)
	}

	return out, nil
}

// Compiler keeps a scene's source in memory and regenerates it on each
// entity change, for callers that write the result themselves.
type Compiler struct {
	writer SceneWriter
	path   m.Path
	source []byte
	specs  []m.ComponentSpec
}

// NewCompiler creates a Compiler over the current text of the scene at filePath.
func NewCompiler(writer SceneWriter, filePath m.Path, source []byte) *Compiler {
	return &Compiler{writer: writer, path: filePath, source: append([]byte(nil), source...)}
}

// SetSpecs replaces the specs components are generated from.
func (c *Compiler) SetSpecs(specs []m.ComponentSpec) {
	c.specs = make([]m.ComponentSpec, 0, len(specs))
	for _, spec := range specs {
		c.specs = append(c.specs, spec.Copy())
	}
}

// ModifyEntities regenerates the scene source from entities. On failure the
// previous source is kept.
func (c *Compiler) ModifyEntities(ctx context.Context, entities []m.Entity) error {
	scene := m.Scene{Path: c.path, Entities: entities}

	out, err := c.writer.Generate(ctx, c.path, c.source, scene, c.specs)
	if err != nil {
		return err
	}

	c.source = out

	return nil
}

// Compile returns the current source text.
func (c *Compiler) Compile() []byte {
	return append([]byte(nil), c.source...)
}
