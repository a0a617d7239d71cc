package model

// Property is one named constructor parameter occurrence. An optional
// property the user did not provide is skipped by code generation.
type Property struct {
	ID       uint64 `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Optional bool   `json:"optional" yaml:"optional"`
	Provided bool   `json:"provided" yaml:"provided"`
	Value    Value  `json:"value" yaml:"value"`
}

// NewProperty builds a property with a fresh identifier from ids.
func NewProperty(ids *IDAllocator, name string, optional, provided bool, value Value) Property {
	return Property{
		ID:       ids.PropertyID(),
		Name:     name,
		Optional: optional,
		Provided: provided,
		Value:    value,
	}
}

// Skipped reports whether generation must treat the property as undefined.
func (p Property) Skipped() bool {
	return p.Optional && !p.Provided
}

// Copy returns a deep copy of the property, identifier included.
func (p Property) Copy() Property {
	out := p
	out.Value = p.Value.Copy()

	return out
}

func (p Property) instantiate(ids *IDAllocator) Property {
	out := p
	out.ID = ids.PropertyID()
	out.Value = p.Value.instantiate(ids)

	return out
}

func copyProperties(properties []Property) []Property {
	out := make([]Property, 0, len(properties))
	for _, property := range properties {
		out = append(out, property.Copy())
	}

	return out
}
