package domain

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jamjar/jamjar-editor/internal/adapter"
)

// sourceFile is a parsed TypeScript file with its top-level imports and
// classes indexed by bound name.
type sourceFile struct {
	*adapter.SyntaxTree

	imports   []importDecl
	classes   map[string]classDecl
	defaults  []string
	exports   map[string]string
	reexports []reexportDecl
}

// reexportDecl is an `export ... from` clause. names maps exported names to
// their names in source; nil names re-export everything but the default.
type reexportDecl struct {
	source string
	names  map[string]string
}

type importDecl struct {
	node       *sitter.Node
	source     string
	sourceText string
	defaultID  string
	namespace  string
	named      []namedImport
}

type namedImport struct {
	name  string
	local string
	text  string
}

// importedDefault and importedNamespace stand in for the exported name of
// default and namespace bindings.
const (
	importedDefault   = "default"
	importedNamespace = "*"
)

type classDecl struct {
	node     *sitter.Node
	name     string
	heritage []string
	body     *sitter.Node
}

func indexSource(tree *adapter.SyntaxTree) *sourceFile {
	file := &sourceFile{SyntaxTree: tree, classes: map[string]classDecl{}, exports: map[string]string{}}
	root := tree.Root()

	for i := 0; i < int(root.NamedChildCount()); i++ {
		node := root.NamedChild(i)

		switch node.Type() {
		case "import_statement":
			file.imports = append(file.imports, parseImport(node, tree.Source))
		case "export_statement":
			file.indexExport(node)
		default:
			if cls, ok := classFrom(node, tree.Source); ok {
				file.classes[cls.name] = cls
			}
		}
	}

	return file
}

func (f *sourceFile) indexExport(node *sitter.Node) {
	isDefault := hasToken(node, "default")

	if decl := node.ChildByFieldName("declaration"); decl != nil {
		if cls, ok := classFrom(decl, f.Source); ok {
			f.classes[cls.name] = cls
			if isDefault {
				f.defaults = append(f.defaults, cls.name)
			}
		}

		return
	}

	source := exportSource(node, f.Source)

	if clause := childOfType(node, "export_clause"); clause != nil {
		names := exportNames(clause, f.Source)

		if source != "" {
			f.reexports = append(f.reexports, reexportDecl{source: source, names: names})

			return
		}

		for exported, local := range names {
			if exported == importedDefault {
				f.defaults = append(f.defaults, local)
			} else {
				f.exports[exported] = local
			}
		}

		return
	}

	if source != "" {
		if hasToken(node, "*") && childOfType(node, "namespace_export") == nil {
			f.reexports = append(f.reexports, reexportDecl{source: source})
		}

		return
	}

	if !isDefault {
		return
	}

	if value := node.ChildByFieldName("value"); value != nil && value.Type() == "identifier" {
		f.defaults = append(f.defaults, f.Text(value))
	}
}

func exportSource(node *sitter.Node, src []byte) string {
	if source := node.ChildByFieldName("source"); source != nil {
		return stringContent(source, src)
	}

	if str := childOfType(node, "string"); str != nil {
		return stringContent(str, src)
	}

	return ""
}

// exportNames maps the exported names of an export clause to the names they
// have before renaming.
func exportNames(clause *sitter.Node, src []byte) map[string]string {
	names := map[string]string{}

	for i := 0; i < int(clause.NamedChildCount()); i++ {
		spec := clause.NamedChild(i)
		if spec.Type() != "export_specifier" {
			continue
		}

		var parts []string

		for j := 0; j < int(spec.ChildCount()); j++ {
			child := spec.Child(j)

			switch child.Type() {
			case "as", "type", "comment":
				if !child.IsNamed() || child.Type() == "comment" {
					continue
				}
			}

			parts = append(parts, strings.Trim(child.Content(src), `"'`))
		}

		if len(parts) == 0 {
			continue
		}

		names[parts[len(parts)-1]] = parts[0]
	}

	return names
}

func childOfType(node *sitter.Node, kind string) *sitter.Node {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if child := node.NamedChild(i); child.Type() == kind {
			return child
		}
	}

	return nil
}

// binding finds the import that binds local and the name it imports.
func (f *sourceFile) binding(local string) (importDecl, string, bool) {
	for _, decl := range f.imports {
		if decl.defaultID == local {
			return decl, importedDefault, true
		}

		if decl.namespace == local {
			return decl, importedNamespace, true
		}

		for _, spec := range decl.named {
			if spec.local == local {
				return decl, spec.name, true
			}
		}
	}

	return importDecl{}, "", false
}

// boundNames lists every identifier bound by the file's imports.
func (f *sourceFile) boundNames() map[string]bool {
	names := map[string]bool{}

	for _, decl := range f.imports {
		for _, name := range decl.locals() {
			names[name] = true
		}
	}

	return names
}

func (d importDecl) locals() []string {
	var out []string

	if d.defaultID != "" {
		out = append(out, d.defaultID)
	}

	if d.namespace != "" {
		out = append(out, d.namespace)
	}

	for _, spec := range d.named {
		out = append(out, spec.local)
	}

	return out
}

func parseImport(node *sitter.Node, src []byte) importDecl {
	decl := importDecl{node: node}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)

		switch child.Type() {
		case "import_clause":
			parseImportClause(child, src, &decl)
		case "string":
			decl.source = stringContent(child, src)
			decl.sourceText = child.Content(src)
		}
	}

	return decl
}

func parseImportClause(node *sitter.Node, src []byte, decl *importDecl) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)

		switch child.Type() {
		case "identifier":
			decl.defaultID = child.Content(src)
		case "namespace_import":
			for j := 0; j < int(child.NamedChildCount()); j++ {
				if gc := child.NamedChild(j); gc.Type() == "identifier" {
					decl.namespace = gc.Content(src)
				}
			}
		case "named_imports":
			for j := 0; j < int(child.NamedChildCount()); j++ {
				spec := child.NamedChild(j)
				if spec.Type() != "import_specifier" {
					continue
				}

				name := spec.ChildByFieldName("name")
				if name == nil {
					continue
				}

				named := namedImport{name: name.Content(src), text: spec.Content(src)}
				named.local = named.name

				if alias := spec.ChildByFieldName("alias"); alias != nil {
					named.local = alias.Content(src)
				}

				decl.named = append(decl.named, named)
			}
		}
	}
}

// classFrom recognizes plain, abstract and ambient class declarations.
func classFrom(node *sitter.Node, src []byte) (classDecl, bool) {
	switch node.Type() {
	case "class_declaration", "abstract_class_declaration":
	case "ambient_declaration":
		for i := 0; i < int(node.NamedChildCount()); i++ {
			if cls, ok := classFrom(node.NamedChild(i), src); ok {
				return cls, true
			}
		}

		return classDecl{}, false
	default:
		return classDecl{}, false
	}

	name := node.ChildByFieldName("name")
	if name == nil {
		return classDecl{}, false
	}

	cls := classDecl{node: node, name: name.Content(src), body: node.ChildByFieldName("body")}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() != "class_heritage" {
			continue
		}

		for j := 0; j < int(child.NamedChildCount()); j++ {
			clause := child.NamedChild(j)
			if clause.Type() != "extends_clause" {
				continue
			}

			for k := 0; k < int(clause.NamedChildCount()); k++ {
				if base := clause.NamedChild(k); base.Type() == "identifier" {
					cls.heritage = append(cls.heritage, base.Content(src))
				}
			}
		}
	}

	return cls, true
}

// constructor returns the class's own constructor, preferring an
// implementation over overload signatures.
func (c classDecl) constructor(src []byte) *sitter.Node {
	if c.body == nil {
		return nil
	}

	var found *sitter.Node

	for i := 0; i < int(c.body.NamedChildCount()); i++ {
		member := c.body.NamedChild(i)
		if member.Type() != "method_definition" && member.Type() != "method_signature" {
			continue
		}

		name := member.ChildByFieldName("name")
		if name == nil || name.Content(src) != "constructor" {
			continue
		}

		if found == nil || member.Type() == "method_definition" {
			found = member
		}
	}

	return found
}

// method returns the class member named name, if any.
func (c classDecl) method(src []byte, name string) *sitter.Node {
	if c.body == nil {
		return nil
	}

	for i := 0; i < int(c.body.NamedChildCount()); i++ {
		member := c.body.NamedChild(i)
		if member.Type() != "method_definition" {
			continue
		}

		if id := member.ChildByFieldName("name"); id != nil && id.Content(src) == name {
			return member
		}
	}

	return nil
}

func hasToken(node *sitter.Node, token string) bool {
	for i := 0; i < int(node.ChildCount()); i++ {
		if child := node.Child(i); !child.IsNamed() && child.Type() == token {
			return true
		}
	}

	return false
}

func stringContent(node *sitter.Node, src []byte) string {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if child := node.NamedChild(i); child.Type() == "string_fragment" {
			return child.Content(src)
		}
	}

	return strings.Trim(node.Content(src), `"'`)
}
