package model

import (
	"encoding/json"
	"fmt"
)

// ComponentSpec is the declared shape of a component type: its class name,
// import path and one template property per constructor parameter.
type ComponentSpec struct {
	ID         uint64     `json:"id" yaml:"id"`
	Name       string     `json:"name" yaml:"name"`
	Path       string     `json:"path" yaml:"path"`
	Definition []Property `json:"definition" yaml:"definition"`
}

// NewComponentSpec builds a spec with a fresh identifier from ids.
func NewComponentSpec(ids *IDAllocator, name, path string, definition []Property) ComponentSpec {
	return ComponentSpec{
		ID:         ids.SpecID(),
		Name:       name,
		Path:       path,
		Definition: orEmpty(definition),
	}
}

// GenerateComponent creates a component instance from the spec. The
// definition is deep copied and every copied property gets a new identifier.
func (s ComponentSpec) GenerateComponent(ids *IDAllocator) Component {
	properties := make([]Property, 0, len(s.Definition))
	for _, property := range s.Definition {
		properties = append(properties, property.instantiate(ids))
	}

	return Component{ID: ids.ComponentID(), SpecID: s.ID, Properties: properties}
}

// Copy returns a deep copy of the spec.
func (s ComponentSpec) Copy() ComponentSpec {
	return ComponentSpec{ID: s.ID, Name: s.Name, Path: s.Path, Definition: copyProperties(s.Definition)}
}

// MarshalJSON always encodes the definition as an array.
func (s ComponentSpec) MarshalJSON() ([]byte, error) {
	type plain ComponentSpec

	out := plain(s)
	out.Definition = orEmpty(s.Definition)

	return json.Marshal(out)
}

// UnmarshalSpecs decodes a persisted list of specs.
func UnmarshalSpecs(data []byte) ([]ComponentSpec, error) {
	var specs []ComponentSpec
	if err := json.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("failed to decode component specs: %w", err)
	}

	for i := range specs {
		specs[i].Definition = orEmpty(specs[i].Definition)
	}

	return orEmpty(specs), nil
}

// SpecMap indexes specs by identifier.
func SpecMap(specs []ComponentSpec) map[uint64]ComponentSpec {
	out := make(map[uint64]ComponentSpec, len(specs))
	for _, spec := range specs {
		out[spec.ID] = spec
	}

	return out
}
