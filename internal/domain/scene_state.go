package domain

import (
	"sync"

	m "github.com/jamjar/jamjar-editor/internal/model"
)

// SceneState holds the open scene and the known component specs. Values
// cross the boundary as deep copies in both directions so editors never
// share mutable state with it.
type SceneState struct {
	mu    sync.RWMutex
	scene m.Scene
	specs []m.ComponentSpec
}

// NewSceneState returns an empty state.
func NewSceneState() *SceneState {
	return &SceneState{specs: []m.ComponentSpec{}}
}

// SetScene replaces the open scene.
func (s *SceneState) SetScene(scene m.Scene) {
	copied := scene.Copy()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.scene = copied
}

// GetScene returns a copy of the open scene.
func (s *SceneState) GetScene() m.Scene {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.scene.Copy()
}

// UpdateEntity replaces the entity with the same ID, or appends it.
func (s *SceneState) UpdateEntity(entity m.Entity) {
	copied := entity.Copy()

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.scene.Entities {
		if s.scene.Entities[i].ID == copied.ID {
			s.scene.Entities[i] = copied

			return
		}
	}

	s.scene.Entities = append(s.scene.Entities, copied)
}

// SetSpecs replaces the known specs.
func (s *SceneState) SetSpecs(specs []m.ComponentSpec) {
	copied := make([]m.ComponentSpec, 0, len(specs))
	for _, spec := range specs {
		copied = append(copied, spec.Copy())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.specs = copied
}

// PutSpec replaces the spec with the same ID, or appends it.
func (s *SceneState) PutSpec(spec m.ComponentSpec) {
	copied := spec.Copy()

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.specs {
		if s.specs[i].ID == copied.ID {
			s.specs[i] = copied

			return
		}
	}

	s.specs = append(s.specs, copied)
}

// GetSpecs returns copies of the known specs.
func (s *SceneState) GetSpecs() []m.ComponentSpec {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]m.ComponentSpec, 0, len(s.specs))
	for _, spec := range s.specs {
		out = append(out, spec.Copy())
	}

	return out
}

// GetSpecMap returns copies of the known specs indexed by ID.
func (s *SceneState) GetSpecMap() map[uint64]m.ComponentSpec {
	return m.SpecMap(s.GetSpecs())
}
