package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Type tags of the built-in value shapes. Any other tag names a custom type.
const (
	TypeNumber  = "number"
	TypeString  = "string"
	TypeBoolean = "boolean"
	TypeArray   = "array"
)

// ErrTypeMismatch reports a value whose type tag disagrees with its payload.
var ErrTypeMismatch = errors.New("value type mismatch")

// Payload is the closed set of shapes a Value can carry:
// Number, String, Boolean, ValueList and Nested.
type Payload interface {
	typeName() string
	clone() Payload
}

// Number is a numeric payload.
type Number float64

// String is a string payload.
type String string

// Boolean is a boolean payload.
type Boolean bool

// Nested is the payload of a custom type: the type name and the properties
// of its constructor, in declaration order.
type Nested struct {
	Name       string
	Properties []Property
}

func (Number) typeName() string  { return TypeNumber }
func (Number) clone() Payload    { return nil }
func (String) typeName() string  { return TypeString }
func (String) clone() Payload    { return nil }
func (Boolean) typeName() string { return TypeBoolean }
func (Boolean) clone() Payload   { return nil }

func (n Nested) typeName() string { return n.Name }

func (n Nested) clone() Payload {
	return Nested{Name: n.Name, Properties: copyProperties(n.Properties)}
}

// Value is one typed slot of a component. Path is the import path of the
// file declaring a custom type; it is empty for primitives, arrays and types
// declared in the same file as their user.
type Value struct {
	Data Payload
	Path string
}

// NumberValue returns a number value.
func NumberValue(v float64) Value {
	return Value{Data: Number(v)}
}

// StringValue returns a string value.
func StringValue(v string) Value {
	return Value{Data: String(v)}
}

// BooleanValue returns a boolean value.
func BooleanValue(v bool) Value {
	return Value{Data: Boolean(v)}
}

// NestedValue returns a custom-type value built from the type's constructor properties.
func NestedValue(name, path string, properties []Property) Value {
	return Value{Data: Nested{Name: name, Properties: orEmpty(properties)}, Path: path}
}

// ArrayValue returns an array value whose new elements are copies of
// defaultValue. Every item must share the default's type.
func ArrayValue(defaultValue Value, items ...Value) (Value, error) {
	list := ValueList{Items: orEmpty(items), DefaultValue: defaultValue}
	if err := list.Validate(); err != nil {
		return Value{}, err
	}

	return Value{Data: list}, nil
}

// Type returns the value's type tag.
func (v Value) Type() string {
	if v.Data == nil {
		return ""
	}

	return v.Data.typeName()
}

// Copy returns a deep copy sharing no mutable state with v.
func (v Value) Copy() Value {
	if v.Data == nil {
		return v
	}

	out := Value{Data: v.Data, Path: v.Path}
	if cloned := v.Data.clone(); cloned != nil {
		out.Data = cloned
	}

	return out
}

func (v Value) instantiate(ids *IDAllocator) Value {
	switch data := v.Data.(type) {
	case Nested:
		properties := make([]Property, 0, len(data.Properties))
		for _, property := range data.Properties {
			properties = append(properties, property.instantiate(ids))
		}

		return Value{Data: Nested{Name: data.Name, Properties: properties}, Path: v.Path}
	case ValueList:
		items := make([]Value, 0, len(data.Items))
		for _, item := range data.Items {
			items = append(items, item.instantiate(ids))
		}

		return Value{Data: ValueList{Items: items, DefaultValue: data.DefaultValue.instantiate(ids)}, Path: v.Path}
	}

	return v.Copy()
}

type valueJSON struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
	Path  string          `json:"path,omitempty"`
}

// MarshalJSON encodes the value as {type, value, path?}.
func (v Value) MarshalJSON() ([]byte, error) {
	var payload any

	switch data := v.Data.(type) {
	case Number:
		payload = float64(data)
	case String:
		payload = string(data)
	case Boolean:
		payload = bool(data)
	case ValueList:
		payload = data
	case Nested:
		payload = orEmpty(data.Properties)
	case nil:
		return []byte("null"), nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return json.Marshal(valueJSON{Type: v.Type(), Value: raw, Path: v.Path})
}

// UnmarshalJSON decodes {type, value, path?}, rejecting payloads whose JSON
// kind does not match the type tag.
func (v *Value) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*v = Value{}

		return nil
	}

	var doc valueJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	if doc.Type == "" {
		return fmt.Errorf("%w: missing type tag", ErrTypeMismatch)
	}

	payload, err := decodePayload(doc.Type, doc.Value)
	if err != nil {
		return err
	}

	v.Data = payload
	v.Path = doc.Path

	return nil
}

func decodePayload(typeName string, raw json.RawMessage) (Payload, error) {
	raw = bytes.TrimSpace(raw)

	switch typeName {
	case TypeNumber, TypeString, TypeBoolean:
		var scalar any
		if err := json.Unmarshal(raw, &scalar); err != nil {
			return nil, err
		}

		switch typed := scalar.(type) {
		case float64:
			if typeName == TypeNumber {
				return Number(typed), nil
			}
		case string:
			if typeName == TypeString {
				return String(typed), nil
			}
		case bool:
			if typeName == TypeBoolean {
				return Boolean(typed), nil
			}
		}

		return nil, fmt.Errorf("%w: expected %s, got %s", ErrTypeMismatch, typeName, string(raw))
	case TypeArray:
		if len(raw) == 0 || raw[0] != '{' {
			return nil, fmt.Errorf("%w: expected value list for array, got %s", ErrTypeMismatch, string(raw))
		}

		var list ValueList
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, err
		}

		return list, nil
	default:
		if len(raw) == 0 || raw[0] != '[' {
			return nil, fmt.Errorf("%w: expected property list for %s, got %s", ErrTypeMismatch, typeName, string(raw))
		}

		var properties []Property
		if err := json.Unmarshal(raw, &properties); err != nil {
			return nil, err
		}

		return Nested{Name: typeName, Properties: orEmpty(properties)}, nil
	}
}

type valueYAML struct {
	Type  string `yaml:"type"`
	Value any    `yaml:"value"`
	Path  string `yaml:"path,omitempty"`
}

// MarshalYAML mirrors the JSON layout for YAML output.
func (v Value) MarshalYAML() (any, error) {
	doc := valueYAML{Type: v.Type(), Path: v.Path}

	switch data := v.Data.(type) {
	case Number:
		doc.Value = float64(data)
	case String:
		doc.Value = string(data)
	case Boolean:
		doc.Value = bool(data)
	case ValueList:
		doc.Value = data
	case Nested:
		doc.Value = orEmpty(data.Properties)
	default:
		return nil, nil
	}

	return doc, nil
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}

	return items
}
