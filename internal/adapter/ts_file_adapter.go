package adapter

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	m "github.com/jamjar/jamjar-editor/internal/model"
)

// TSFileAdapter encapsulates TypeScript parsing so the domain layer can focus
// on spec extraction and scene generation while delegating the grammar to an
// infrastructure component.
type TSFileAdapter interface {
	// Parse builds a concrete syntax tree for the provided source bytes.
	Parse(ctx context.Context, path m.Path, src []byte) (*SyntaxTree, error)
}

// SyntaxTree is a parsed TypeScript file. Nodes returned by Root are only
// valid until Close is called.
type SyntaxTree struct {
	Path   m.Path
	Source []byte

	tree *sitter.Tree
}

// Root returns the program node.
func (s *SyntaxTree) Root() *sitter.Node {
	return s.tree.RootNode()
}

// HasError reports whether tree-sitter had to recover from invalid syntax.
func (s *SyntaxTree) HasError() bool {
	return s.tree.RootNode().HasError()
}

// Text returns the source text covered by node.
func (s *SyntaxTree) Text(node *sitter.Node) string {
	return node.Content(s.Source)
}

// Close releases the underlying tree.
func (s *SyntaxTree) Close() {
	if s.tree != nil {
		s.tree.Close()
		s.tree = nil
	}
}

// LocalTSFileAdapter provides a TSFileAdapter backed by tree-sitter.
type LocalTSFileAdapter struct{}

// NewLocalTSFileAdapter constructs a LocalTSFileAdapter.
func NewLocalTSFileAdapter() *LocalTSFileAdapter {
	return &LocalTSFileAdapter{}
}

// Parse builds a syntax tree for the provided path/source pair. A new parser
// is created per call so the adapter is safe for concurrent use.
func (a *LocalTSFileAdapter) Parse(ctx context.Context, path m.Path, src []byte) (*SyntaxTree, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(typescript.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &SyntaxTree{Path: path, Source: src, tree: tree}, nil
}
