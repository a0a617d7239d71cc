package domain

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jamjar/jamjar-editor/internal/adapter"
	m "github.com/jamjar/jamjar-editor/internal/model"
)

// Session is one editor session over a project. It owns the identifier
// allocator, caches parsed specs by file fingerprint and serializes writes
// per scene path.
type Session struct {
	ID uuid.UUID

	fsAdapter   adapter.SourceFSAdapter
	parser      ComponentParser
	writer      SceneWriter
	templater   Templater
	ids         *m.IDAllocator
	state       *SceneState
	projectRoot m.Path
	logger      *zap.Logger

	mu         sync.Mutex
	cache      map[m.Path]cachedSpec
	writeLocks map[m.Path]*sync.Mutex
}

type cachedSpec struct {
	fingerprint uint64
	spec        m.ComponentSpec
}

// NewSession creates a session rooted at projectRoot. parser must allocate
// from ids.
func NewSession(
	fsAdapter adapter.SourceFSAdapter,
	parser ComponentParser,
	writer SceneWriter,
	templater Templater,
	ids *m.IDAllocator,
	projectRoot m.Path,
	logger *zap.Logger,
) *Session {
	id := uuid.New()

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Session{
		ID:          id,
		fsAdapter:   fsAdapter,
		parser:      parser,
		writer:      writer,
		templater:   templater,
		ids:         ids,
		state:       NewSceneState(),
		projectRoot: projectRoot,
		logger:      logger.With(zap.String("session", id.String())),
		cache:       map[m.Path]cachedSpec{},
		writeLocks:  map[m.Path]*sync.Mutex{},
	}
}

// State exposes the session's scene state.
func (s *Session) State() *SceneState {
	return s.state
}

// ImportComponent parses the component at path, reusing the cached spec while
// the file is unchanged. A re-parsed spec keeps the identifier it had.
func (s *Session) ImportComponent(ctx context.Context, path m.Path) (m.ComponentSpec, error) {
	absPath, err := s.fsAdapter.AbsPath(path)
	if err != nil {
		return m.ComponentSpec{}, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	fingerprint, err := s.fsAdapter.HashFile(absPath)
	if err != nil {
		return m.ComponentSpec{}, fmt.Errorf("failed to read component %s: %w", absPath, err)
	}

	s.mu.Lock()
	cached, ok := s.cache[absPath]
	s.mu.Unlock()

	if ok && cached.fingerprint == fingerprint {
		return cached.spec.Copy(), nil
	}

	spec, err := s.parser.Parse(ctx, absPath, s.projectRoot)
	if err != nil {
		return m.ComponentSpec{}, err
	}

	s.mu.Lock()
	if previous, ok := s.cache[absPath]; ok {
		spec.ID = previous.spec.ID
	} else if known, ok := s.knownSpec(spec.Path); ok {
		spec.ID = known.ID
	}
	s.cache[absPath] = cachedSpec{fingerprint: fingerprint, spec: spec}
	s.mu.Unlock()

	s.state.PutSpec(spec)

	s.logger.Debug("imported component",
		zap.String("path", string(absPath)),
		zap.Uint64("spec", spec.ID),
		zap.Bool("reparsed", ok),
	)

	return spec.Copy(), nil
}

func (s *Session) knownSpec(path string) (m.ComponentSpec, bool) {
	for _, spec := range s.state.GetSpecs() {
		if spec.Path == path {
			return spec, true
		}
	}

	return m.ComponentSpec{}, false
}

// ImportComponents imports paths concurrently and returns their specs in
// argument order. The first failure cancels the rest.
func (s *Session) ImportComponents(ctx context.Context, paths ...m.Path) ([]m.ComponentSpec, error) {
	specs := make([]m.ComponentSpec, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range paths {
		g.Go(func() error {
			spec, err := s.ImportComponent(ctx, path)
			if err != nil {
				return err
			}

			specs[i] = spec

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return specs, nil
}

// LoadSpecs seeds the session with persisted specs. Later allocations never
// collide with their identifiers.
func (s *Session) LoadSpecs(specs []m.ComponentSpec) {
	s.ids.ObserveSpecs(specs)

	for _, spec := range specs {
		s.state.PutSpec(spec)
	}
}

// OpenSpecs loads a persisted spec list from a JSON file.
func (s *Session) OpenSpecs(path m.Path) ([]m.ComponentSpec, error) {
	data, err := s.fsAdapter.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read specs %s: %w", path, err)
	}

	specs, err := m.UnmarshalSpecs(data)
	if err != nil {
		return nil, err
	}

	s.LoadSpecs(specs)

	return specs, nil
}

// LoadScene makes scene the open scene. Later allocations never collide with
// its identifiers.
func (s *Session) LoadScene(scene m.Scene) {
	s.ids.ObserveScene(scene)
	s.state.SetScene(scene)
}

// OpenScene loads a persisted scene model from a JSON file and opens it.
func (s *Session) OpenScene(modelPath m.Path) (m.Scene, error) {
	data, err := s.fsAdapter.ReadFile(modelPath)
	if err != nil {
		return m.Scene{}, fmt.Errorf("failed to read scene model %s: %w", modelPath, err)
	}

	scene, err := m.UnmarshalScene(data)
	if err != nil {
		return m.Scene{}, err
	}

	s.LoadScene(scene)

	s.logger.Debug("opened scene",
		zap.String("model", string(modelPath)),
		zap.String("path", string(scene.Path)),
		zap.Int("entities", len(scene.Entities)),
	)

	return scene, nil
}

// NewScene templates a scene file at path and opens it empty.
func (s *Session) NewScene(path m.Path) (m.Scene, error) {
	written, _, err := s.templater.NewScene(path)
	if err != nil {
		return m.Scene{}, err
	}

	scene := m.Scene{Path: written, Entities: []m.Entity{}}
	s.state.SetScene(scene)

	s.logger.Info("created scene", zap.String("path", string(written)))

	return scene, nil
}

// NewEntity adds an empty entity to the open scene.
func (s *Session) NewEntity(name string) m.Entity {
	entity := m.NewEntity(s.ids, name)
	s.state.UpdateEntity(entity)

	return entity
}

// AddComponent attaches a fresh component generated from spec specID to the
// entity entityID.
func (s *Session) AddComponent(entityID, specID uint64) (m.Component, error) {
	spec, ok := s.state.GetSpecMap()[specID]
	if !ok {
		return m.Component{}, fmt.Errorf("%w: %d", ErrMissingSpec, specID)
	}

	scene := s.state.GetScene()
	for _, entity := range scene.Entities {
		if entity.ID != entityID {
			continue
		}

		component := spec.GenerateComponent(s.ids)
		entity.Components = append(entity.Components, component)
		s.state.UpdateEntity(entity)

		return component.Copy(), nil
	}

	return m.Component{}, fmt.Errorf("entity %d not found in scene %s", entityID, scene.Path)
}

// SaveScene regenerates the open scene's source file. Saves of the same
// path never interleave.
func (s *Session) SaveScene(ctx context.Context) ([]byte, error) {
	scene := s.state.GetScene()
	if scene.Path == "" {
		return nil, fmt.Errorf("no scene is open")
	}

	lock := s.writeLock(scene.Path)
	lock.Lock()
	defer lock.Unlock()

	return s.writer.Write(ctx, scene.Path, scene, s.state.GetSpecs())
}

func (s *Session) writeLock(path m.Path) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.writeLocks[path]
	if !ok {
		lock = &sync.Mutex{}
		s.writeLocks[path] = lock
	}

	return lock
}
