package model

import (
	"encoding/json"
	"fmt"
)

// Scene is the entity list of one scene source file.
type Scene struct {
	Path     Path     `json:"path" yaml:"path"`
	Entities []Entity `json:"entities" yaml:"entities"`
}

// Copy returns a deep copy of the scene.
func (s Scene) Copy() Scene {
	entities := make([]Entity, 0, len(s.Entities))
	for _, entity := range s.Entities {
		entities = append(entities, entity.Copy())
	}

	return Scene{Path: s.Path, Entities: entities}
}

// MarshalJSON always encodes entities as an array.
func (s Scene) MarshalJSON() ([]byte, error) {
	type plain Scene

	out := plain(s)
	out.Entities = orEmpty(s.Entities)

	return json.Marshal(out)
}

// UnmarshalScene decodes a persisted scene.
func UnmarshalScene(data []byte) (Scene, error) {
	var scene Scene
	if err := json.Unmarshal(data, &scene); err != nil {
		return Scene{}, fmt.Errorf("failed to decode scene: %w", err)
	}

	scene.Entities = orEmpty(scene.Entities)

	return scene, nil
}
