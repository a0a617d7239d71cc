package model

import (
	"encoding/json"
	"fmt"
)

// ValueList is the payload of an array value: its current items and the
// template used to create a new element.
type ValueList struct {
	Items        []Value `json:"items" yaml:"items"`
	DefaultValue Value   `json:"defaultValue" yaml:"defaultValue"`
}

func (ValueList) typeName() string { return TypeArray }

func (l ValueList) clone() Payload {
	return l.Copy()
}

// Copy returns a deep copy of the list.
func (l ValueList) Copy() ValueList {
	items := make([]Value, 0, len(l.Items))
	for _, item := range l.Items {
		items = append(items, item.Copy())
	}

	return ValueList{Items: items, DefaultValue: l.DefaultValue.Copy()}
}

// Append returns a copy of the list with a fresh copy of the default value
// appended.
func (l ValueList) Append() ValueList {
	out := l.Copy()
	out.Items = append(out.Items, l.DefaultValue.Copy())

	return out
}

// Validate checks that every item has the default value's type.
func (l ValueList) Validate() error {
	want := l.DefaultValue.Type()
	if want == "" {
		return fmt.Errorf("%w: array has no default value", ErrTypeMismatch)
	}

	for i, item := range l.Items {
		if item.Type() != want {
			return fmt.Errorf("%w: array item %d is %q, want %q", ErrTypeMismatch, i, item.Type(), want)
		}
	}

	return nil
}

// MarshalJSON always encodes items as an array, never null.
func (l ValueList) MarshalJSON() ([]byte, error) {
	type plain ValueList

	return json.Marshal(plain{Items: orEmpty(l.Items), DefaultValue: l.DefaultValue})
}

// UnmarshalJSON decodes the list and validates item types.
func (l *ValueList) UnmarshalJSON(data []byte) error {
	type plain ValueList

	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	list := ValueList(decoded)
	list.Items = orEmpty(list.Items)

	if err := list.Validate(); err != nil {
		return err
	}

	*l = list

	return nil
}
