package domain

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"go.uber.org/zap"

	"github.com/jamjar/jamjar-editor/internal/adapter"
	m "github.com/jamjar/jamjar-editor/internal/model"
)

// resolver loads TypeScript files on demand and answers heritage, constructor
// and type questions across module boundaries. One resolver serves a single
// parse or write invocation; its file cache dies with it.
type resolver struct {
	ctx         context.Context
	fsAdapter   adapter.SourceFSAdapter
	tsAdapter   adapter.TSFileAdapter
	opts        Options
	projectRoot string
	logger      *zap.Logger

	files    map[string]*sourceFile
	visiting map[string]bool
}

func newResolver(
	ctx context.Context,
	fsAdapter adapter.SourceFSAdapter,
	tsAdapter adapter.TSFileAdapter,
	opts Options,
	projectRoot string,
	logger *zap.Logger,
) *resolver {
	return &resolver{
		ctx:         ctx,
		fsAdapter:   fsAdapter,
		tsAdapter:   tsAdapter,
		opts:        opts,
		projectRoot: projectRoot,
		logger:      logger,
		files:       map[string]*sourceFile{},
		visiting:    map[string]bool{},
	}
}

func (r *resolver) close() {
	for _, file := range r.files {
		file.Close()
	}
}

// load reads and parses path, reusing an earlier parse of the same file.
func (r *resolver) load(path string) (*sourceFile, error) {
	if file, ok := r.files[path]; ok {
		return file, nil
	}

	content, err := r.fsAdapter.ReadFile(m.Path(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	r.logger.Debug("loaded source", zap.String("path", path), zap.Int("bytes", len(content)))

	return r.parse(path, content)
}

// parse indexes content as the file at path.
func (r *resolver) parse(path string, content []byte) (*sourceFile, error) {
	tree, err := r.tsAdapter.Parse(r.ctx, m.Path(path), content)
	if err != nil {
		return nil, err
	}

	if tree.HasError() {
		tree.Close()

		return nil, fmt.Errorf("%w: %s", ErrSyntax, path)
	}

	file := indexSource(tree)
	r.files[path] = file

	return file, nil
}

// resolveModule maps an import specifier to the file it names. Relative
// specifiers resolve against the importing file; bare ones against the
// project's dependency directory.
func (r *resolver) resolveModule(from *sourceFile, specifier string) (string, error) {
	var base string

	switch {
	case isRelative(specifier):
		base = filepath.Join(filepath.Dir(string(from.Path)), filepath.FromSlash(specifier))
	case filepath.IsAbs(specifier):
		base = specifier
	default:
		base = filepath.Join(r.projectRoot, r.opts.DependencyDir, filepath.FromSlash(specifier))
	}

	candidates := []string{
		base + ".ts",
		base + ".d.ts",
		filepath.Join(base, "index.ts"),
		filepath.Join(base, "index.d.ts"),
	}
	if strings.HasSuffix(base, ".ts") {
		candidates = append([]string{base}, candidates...)
	}

	for _, candidate := range candidates {
		if r.fsAdapter.Exists(m.Path(candidate)) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: %q imported from %s", ErrModuleNotFound, specifier, from.Path)
}

// isMarker reports whether specifier, as seen from file, names the module
// carrying marker (one of the engine base types).
func (r *resolver) isMarker(from *sourceFile, specifier, marker string) bool {
	target := specifier
	if isRelative(specifier) {
		target = filepath.Join(filepath.Dir(string(from.Path)), filepath.FromSlash(specifier))
	}

	return strings.Contains(filepath.ToSlash(target), marker)
}

// enter guards a recursive step keyed by kind, file and class.
func (r *resolver) enter(kind string, file *sourceFile, name string) (func(), error) {
	key := kind + "\x00" + string(file.Path) + "\x00" + name
	if r.visiting[key] {
		return nil, fmt.Errorf("%w: %s %s in %s", ErrResolutionCycle, kind, name, file.Path)
	}

	r.visiting[key] = true

	return func() { delete(r.visiting, key) }, nil
}

// classRef finds the declaration of the class bound to name in file,
// following imports and re-exports.
func (r *resolver) classRef(file *sourceFile, name string) (*sourceFile, classDecl, error) {
	if cls, ok := file.classes[name]; ok {
		return file, cls, nil
	}

	if local, ok := file.exports[name]; ok && local != name {
		leave, err := r.enter("class", file, name)
		if err != nil {
			return nil, classDecl{}, err
		}
		defer leave()

		return r.classRef(file, local)
	}

	decl, imported, ok := file.binding(name)
	if !ok {
		return r.reexportedClass(file, name)
	}

	if imported == importedNamespace {
		return nil, classDecl{}, fmt.Errorf("%w: class %s not found in %s", ErrUnresolvedType, name, file.Path)
	}

	leave, err := r.enter("class", file, name)
	if err != nil {
		return nil, classDecl{}, err
	}
	defer leave()

	path, err := r.resolveModule(file, decl.source)
	if err != nil {
		return nil, classDecl{}, err
	}

	target, err := r.load(path)
	if err != nil {
		return nil, classDecl{}, err
	}

	return r.exportedClass(target, imported)
}

// exportedClass finds the class file exports as name.
func (r *resolver) exportedClass(file *sourceFile, name string) (*sourceFile, classDecl, error) {
	if name != importedDefault {
		return r.classRef(file, name)
	}

	if len(file.defaults) > 0 {
		return r.classRef(file, file.defaults[0])
	}

	for _, re := range file.reexports {
		if _, ok := re.names[importedDefault]; ok {
			return r.reexportedClass(file, importedDefault)
		}
	}

	return nil, classDecl{}, fmt.Errorf("%w: %s", ErrNoExportedClass, file.Path)
}

// reexportedClass follows the `export ... from` clauses of file that can
// provide name. Wildcard clauses that do not export it are skipped.
func (r *resolver) reexportedClass(file *sourceFile, name string) (*sourceFile, classDecl, error) {
	leave, err := r.enter("class", file, name)
	if err != nil {
		return nil, classDecl{}, err
	}
	defer leave()

	for _, re := range file.reexports {
		original := name

		if re.names != nil {
			mapped, ok := re.names[name]
			if !ok {
				continue
			}

			original = mapped
		} else if name == importedDefault {
			continue
		}

		path, err := r.resolveModule(file, re.source)
		if err != nil {
			return nil, classDecl{}, err
		}

		target, err := r.load(path)
		if err != nil {
			return nil, classDecl{}, err
		}

		targetFile, cls, err := r.exportedClass(target, original)
		if err != nil && re.names == nil && errors.Is(err, ErrUnresolvedType) {
			continue
		}

		return targetFile, cls, err
	}

	return nil, classDecl{}, fmt.Errorf("%w: class %s not found in %s", ErrUnresolvedType, name, file.Path)
}

// extends reports whether cls, declared in file, derives from the engine
// type whose import path contains marker.
func (r *resolver) extends(file *sourceFile, cls classDecl, marker string) (bool, error) {
	leave, err := r.enter("extends", file, cls.name)
	if err != nil {
		return false, err
	}
	defer leave()

	for _, base := range cls.heritage {
		decl, _, imported := file.binding(base)
		if imported && r.isMarker(file, decl.source, marker) {
			return true, nil
		}

		if !imported {
			if _, local := file.classes[base]; !local {
				continue
			}
		}

		r.logger.Debug("following heritage", zap.String("class", cls.name), zap.String("base", base))

		baseFile, baseClass, err := r.classRef(file, base)
		if err != nil {
			return false, err
		}

		ok, err := r.extends(baseFile, baseClass, marker)
		if err != nil {
			return false, err
		}

		if ok {
			return true, nil
		}
	}

	return false, nil
}

// constructorOf returns the effective constructor of cls and the file it is
// declared in, walking up the heritage chain when cls declares none.
func (r *resolver) constructorOf(file *sourceFile, cls classDecl) (*sourceFile, *sitter.Node, error) {
	if ctor := cls.constructor(file.Source); ctor != nil {
		return file, ctor, nil
	}

	leave, err := r.enter("constructor", file, cls.name)
	if err != nil {
		return nil, nil, err
	}
	defer leave()

	for _, base := range cls.heritage {
		decl, _, imported := file.binding(base)
		if imported && r.isMarker(file, decl.source, r.opts.ComponentPath) {
			continue
		}

		if !imported {
			if _, local := file.classes[base]; !local {
				continue
			}
		}

		baseFile, baseClass, err := r.classRef(file, base)
		if err != nil {
			return nil, nil, err
		}

		ctorFile, ctor, err := r.constructorOf(baseFile, baseClass)
		if errors.Is(err, ErrConstructorNotFound) {
			continue
		}

		if err != nil {
			return nil, nil, err
		}

		return ctorFile, ctor, nil
	}

	return nil, nil, fmt.Errorf("%w: class %s in %s", ErrConstructorNotFound, cls.name, file.Path)
}

// properties builds one template property per constructor parameter. Types
// are resolved against the imports of the file declaring the constructor.
func (r *resolver) properties(ids *m.IDAllocator, file *sourceFile, cls classDecl) ([]m.Property, error) {
	ctorFile, ctor, err := r.constructorOf(file, cls)
	if err != nil {
		return nil, err
	}

	params := ctor.ChildByFieldName("parameters")
	if params == nil {
		return []m.Property{}, nil
	}

	properties := []m.Property{}

	for i := 0; i < int(params.NamedChildCount()); i++ {
		param := params.NamedChild(i)
		if param.Type() != "required_parameter" && param.Type() != "optional_parameter" {
			continue
		}

		pattern := param.ChildByFieldName("pattern")
		if pattern == nil || pattern.Type() != "identifier" {
			return nil, fmt.Errorf("%w: unsupported parameter %q of %s in %s",
				ErrUnresolvedType, ctorFile.Text(param), cls.name, ctorFile.Path)
		}

		name := ctorFile.Text(pattern)

		annotation := param.ChildByFieldName("type")
		if annotation == nil || annotation.NamedChildCount() == 0 {
			return nil, fmt.Errorf("%w: parameter %s of %s has no type", ErrUnresolvedType, name, cls.name)
		}

		value, err := r.valueOf(ids, ctorFile, annotation.NamedChild(0))
		if err != nil {
			return nil, fmt.Errorf("parameter %s of %s: %w", name, cls.name, err)
		}

		properties = append(properties, m.NewProperty(ids, name, param.Type() == "optional_parameter", false, value))
	}

	return properties, nil
}

// valueOf maps a declared parameter type to a default value.
func (r *resolver) valueOf(ids *m.IDAllocator, file *sourceFile, node *sitter.Node) (m.Value, error) {
	switch node.Type() {
	case "predefined_type":
		switch file.Text(node) {
		case m.TypeNumber:
			return m.NumberValue(0), nil
		case m.TypeString:
			return m.StringValue(""), nil
		case m.TypeBoolean:
			return m.BooleanValue(true), nil
		}
	case "parenthesized_type":
		if node.NamedChildCount() > 0 {
			return r.valueOf(ids, file, node.NamedChild(0))
		}
	case "array_type":
		if node.NamedChildCount() > 0 {
			return r.arrayOf(ids, file, node.NamedChild(0))
		}
	case "generic_type":
		name := node.ChildByFieldName("name")
		if name == nil {
			break
		}

		if file.Text(name) == "Array" {
			args := node.ChildByFieldName("type_arguments")
			if args != nil && args.NamedChildCount() == 1 {
				return r.arrayOf(ids, file, args.NamedChild(0))
			}

			break
		}

		return r.nestedOf(ids, file, file.Text(name))
	case "type_identifier":
		return r.nestedOf(ids, file, file.Text(node))
	}

	return m.Value{}, fmt.Errorf("%w: %s in %s", ErrUnresolvedType, file.Text(node), file.Path)
}

func (r *resolver) arrayOf(ids *m.IDAllocator, file *sourceFile, element *sitter.Node) (m.Value, error) {
	def, err := r.valueOf(ids, file, element)
	if err != nil {
		return m.Value{}, err
	}

	return m.ArrayValue(def)
}

// nestedOf resolves a custom type to the shape of its constructor. Types
// declared in the same file carry no import path.
func (r *resolver) nestedOf(ids *m.IDAllocator, file *sourceFile, name string) (m.Value, error) {
	leave, err := r.enter("type", file, name)
	if err != nil {
		return m.Value{}, err
	}
	defer leave()

	if cls, ok := file.classes[name]; ok {
		properties, err := r.properties(ids, file, cls)
		if err != nil {
			return m.Value{}, err
		}

		return m.NestedValue(name, "", properties), nil
	}

	if _, _, ok := file.binding(name); !ok {
		return m.Value{}, fmt.Errorf("%w: %s in %s", ErrUnresolvedType, name, file.Path)
	}

	typeFile, cls, err := r.classRef(file, name)
	if err != nil {
		return m.Value{}, fmt.Errorf("%w: %s: %w", ErrUnresolvedType, name, err)
	}

	properties, err := r.properties(ids, typeFile, cls)
	if err != nil {
		return m.Value{}, err
	}

	return m.NestedValue(name, normalizeImportPath(string(typeFile.Path), r.opts.DependencyDir), properties), nil
}

// defaultClass returns the single default-exported class of file.
func (r *resolver) defaultClass(file *sourceFile) (*sourceFile, classDecl, error) {
	target, cls, err := r.exportedClass(file, importedDefault)
	if errors.Is(err, ErrNoExportedClass) {
		return nil, classDecl{}, err
	}

	if err != nil {
		return nil, classDecl{}, fmt.Errorf("%w: %s: %w", ErrNoExportedClass, file.Path, err)
	}

	return target, cls, nil
}

// normalizeImportPath turns a resolved file path into the path generated
// code imports it by: package-relative below the dependency directory,
// without source or declaration suffix.
func normalizeImportPath(path, dependencyDir string) string {
	importPath := filepath.ToSlash(path)

	marker := dependencyDir + "/"
	if i := strings.LastIndex(importPath, marker); i >= 0 {
		importPath = importPath[i+len(marker):]
	}

	if trimmed, ok := strings.CutSuffix(importPath, ".d.ts"); ok {
		return trimmed
	}

	return strings.TrimSuffix(importPath, ".ts")
}

func isRelative(specifier string) bool {
	return specifier == "." || specifier == ".." ||
		strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../")
}
