package model

import "encoding/json"

// Entity is a named bag of components placed in a scene.
type Entity struct {
	ID         uint64      `json:"id" yaml:"id"`
	Name       string      `json:"name" yaml:"name"`
	Components []Component `json:"components" yaml:"components"`
}

// NewEntity creates an empty entity with a fresh identifier.
func NewEntity(ids *IDAllocator, name string) Entity {
	return Entity{ID: ids.EntityID(), Name: name, Components: []Component{}}
}

// Copy returns a deep copy of the entity.
func (e Entity) Copy() Entity {
	components := make([]Component, 0, len(e.Components))
	for _, component := range e.Components {
		components = append(components, component.Copy())
	}

	return Entity{ID: e.ID, Name: e.Name, Components: components}
}

// MarshalJSON always encodes components as an array.
func (e Entity) MarshalJSON() ([]byte, error) {
	type plain Entity

	out := plain(e)
	out.Components = orEmpty(e.Components)

	return json.Marshal(out)
}
