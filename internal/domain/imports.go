package domain

import (
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	m "github.com/jamjar/jamjar-editor/internal/model"
)

// generatedImport is a default import the generated method needs.
type generatedImport struct {
	name string
	path string
}

func (i generatedImport) render() string {
	return fmt.Sprintf("import %s from %s;\n", i.name, quoteJS(i.path))
}

// requiredImports lists the imports the generated method needs and the file
// does not bind yet: the entity type, each referenced component, then each
// custom value type reachable through provided properties. Two modules asking
// for the same name is an ErrImportConflict.
func (g *sceneGenerator) requiredImports(
	scenePath string,
	bound map[string]bool,
	entities []m.Entity,
	specs map[uint64]m.ComponentSpec,
) ([]generatedImport, error) {
	var out []generatedImport
	var conflict error

	paths := map[string]string{}

	add := func(name, path string) {
		if name == "" || path == "" || conflict != nil {
			return
		}

		if previous, ok := paths[name]; ok {
			if previous != path {
				conflict = fmt.Errorf("%w: %s from %s and %s", ErrImportConflict, name, previous, path)
			}

			return
		}

		paths[name] = path
		if bound[name] {
			return
		}

		out = append(out, generatedImport{name: name, path: relativeImportPath(scenePath, path)})
	}

	if len(entities) > 0 {
		add(g.opts.EntityName, g.opts.EntityPath)
	}

	for _, entity := range entities {
		for _, component := range entity.Components {
			if spec, ok := specs[component.SpecID]; ok {
				add(spec.Name, spec.Path)
			}
		}
	}

	for _, entity := range entities {
		for _, component := range entity.Components {
			walkImportedValues(component.Properties, add)
		}
	}

	if conflict != nil {
		return nil, conflict
	}

	return out, nil
}

func walkImportedValues(properties []m.Property, visit func(name, path string)) {
	for _, property := range properties {
		if property.Skipped() {
			continue
		}

		walkImportedValue(property.Value, visit)
	}
}

func walkImportedValue(value m.Value, visit func(name, path string)) {
	switch data := value.Data.(type) {
	case m.Nested:
		visit(data.Name, value.Path)
		walkImportedValues(data.Properties, visit)
	case m.ValueList:
		for _, item := range data.Items {
			walkImportedValue(item, visit)
		}
	}
}

// relativeImportPath rewrites an absolute module path relative to the
// scene's directory; package paths are kept as they are.
func relativeImportPath(scenePath, importPath string) string {
	if !filepath.IsAbs(importPath) {
		return importPath
	}

	rel, err := filepath.Rel(filepath.Dir(scenePath), importPath)
	if err != nil {
		return filepath.ToSlash(importPath)
	}

	rel = filepath.ToSlash(rel)
	if !strings.HasPrefix(rel, ".") {
		rel = "./" + rel
	}

	return rel
}

// identifierUses counts references to each name outside import statements.
func identifierUses(root *sitter.Node, src []byte) map[string]int {
	uses := map[string]int{}

	var walk func(node *sitter.Node)
	walk = func(node *sitter.Node) {
		switch node.Type() {
		case "import_statement":
			return
		case "identifier", "type_identifier", "property_identifier",
			"shorthand_property_identifier", "shorthand_property_identifier_pattern":
			uses[node.Content(src)]++

			return
		}

		for i := 0; i < int(node.NamedChildCount()); i++ {
			walk(node.NamedChild(i))
		}
	}

	walk(root)

	return uses
}

// pruneImports drops import bindings nothing references. Fully used and
// side-effect imports are left untouched byte for byte; partly used ones are
// rebuilt with their surviving bindings.
func pruneImports(file *sourceFile) []edit {
	uses := identifierUses(file.Root(), file.Source)

	var edits []edit

	for _, decl := range file.imports {
		locals := decl.locals()
		if len(locals) == 0 {
			continue
		}

		used := 0
		for _, name := range locals {
			if uses[name] > 0 {
				used++
			}
		}

		start, end := int(decl.node.StartByte()), int(decl.node.EndByte())

		switch used {
		case len(locals):
			continue
		case 0:
			start, end = statementRange(file.Source, start, end)
			edits = append(edits, edit{start: start, end: end})
		default:
			edits = append(edits, edit{start: start, end: end, text: decl.rebuild(uses)})
		}
	}

	return edits
}

// rebuild prints the import keeping only the bindings present in uses.
func (d importDecl) rebuild(uses map[string]int) string {
	var clauses []string

	if d.defaultID != "" && uses[d.defaultID] > 0 {
		clauses = append(clauses, d.defaultID)
	}

	if d.namespace != "" && uses[d.namespace] > 0 {
		clauses = append(clauses, "* as "+d.namespace)
	}

	var named []string

	for _, spec := range d.named {
		if uses[spec.local] > 0 {
			named = append(named, spec.text)
		}
	}

	if len(named) > 0 {
		clauses = append(clauses, "{ "+strings.Join(named, ", ")+" }")
	}

	keyword := "import "
	if hasToken(d.node, "type") {
		keyword = "import type "
	}

	return keyword + strings.Join(clauses, ", ") + " from " + d.sourceText + ";"
}
