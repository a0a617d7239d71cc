package domain

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jamjar/jamjar-editor/internal/adapter"
	m "github.com/jamjar/jamjar-editor/internal/model"
)

// ComponentParser extracts component specs from TypeScript sources without
// executing them.
type ComponentParser interface {
	// Parse reads the component file at filePath and returns the shape of its
	// default-exported component class. Bare imports resolve under
	// projectRoot's dependency directory.
	Parse(ctx context.Context, filePath, projectRoot m.Path) (m.ComponentSpec, error)
}

type componentParser struct {
	fsAdapter adapter.SourceFSAdapter
	tsAdapter adapter.TSFileAdapter
	ids       *m.IDAllocator
	opts      Options
	logger    *zap.Logger
}

// NewComponentParser creates a ComponentParser allocating identifiers from ids.
func NewComponentParser(
	fsAdapter adapter.SourceFSAdapter,
	tsAdapter adapter.TSFileAdapter,
	ids *m.IDAllocator,
	opts Options,
	logger *zap.Logger,
) ComponentParser {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &componentParser{
		fsAdapter: fsAdapter,
		tsAdapter: tsAdapter,
		ids:       ids,
		opts:      opts.withDefaults(),
		logger:    logger,
	}
}

func (p *componentParser) Parse(ctx context.Context, filePath, projectRoot m.Path) (m.ComponentSpec, error) {
	absPath, err := p.fsAdapter.AbsPath(filePath)
	if err != nil {
		return m.ComponentSpec{}, fmt.Errorf("failed to resolve %s: %w", filePath, err)
	}

	absRoot, err := p.fsAdapter.AbsPath(projectRoot)
	if err != nil {
		return m.ComponentSpec{}, fmt.Errorf("failed to resolve %s: %w", projectRoot, err)
	}

	r := newResolver(ctx, p.fsAdapter, p.tsAdapter, p.opts, string(absRoot), p.logger)
	defer r.close()

	file, err := r.load(string(absPath))
	if err != nil {
		return m.ComponentSpec{}, err
	}

	classFile, cls, err := r.defaultClass(file)
	if err != nil {
		return m.ComponentSpec{}, err
	}

	ok, err := r.extends(classFile, cls, p.opts.ComponentPath)
	if err != nil {
		return m.ComponentSpec{}, fmt.Errorf("failed to check base type of %s: %w", cls.name, err)
	}

	if !ok {
		return m.ComponentSpec{}, fmt.Errorf("%w: %s in %s", ErrNotComponent, cls.name, absPath)
	}

	properties, err := r.properties(p.ids, classFile, cls)
	if err != nil {
		return m.ComponentSpec{}, fmt.Errorf("failed to extract properties of %s: %w", cls.name, err)
	}

	spec := m.NewComponentSpec(p.ids, cls.name, normalizeImportPath(string(absPath), p.opts.DependencyDir), properties)

	p.logger.Info("parsed component",
		zap.String("name", spec.Name),
		zap.String("path", spec.Path),
		zap.Int("properties", len(spec.Definition)),
	)

	return spec, nil
}
