package model

import "encoding/json"

// Component is a concrete component instance attached to an entity. SpecID
// refers to the ComponentSpec it was generated from.
type Component struct {
	ID         uint64     `json:"id" yaml:"id"`
	SpecID     uint64     `json:"specID" yaml:"specID"`
	Properties []Property `json:"properties" yaml:"properties"`
}

// Copy returns a deep copy of the component.
func (c Component) Copy() Component {
	return Component{ID: c.ID, SpecID: c.SpecID, Properties: copyProperties(c.Properties)}
}

// MarshalJSON always encodes properties as an array.
func (c Component) MarshalJSON() ([]byte, error) {
	type plain Component

	out := plain(c)
	out.Properties = orEmpty(c.Properties)

	return json.Marshal(out)
}
