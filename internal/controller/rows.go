package controller

import (
	"fmt"
	"strconv"

	m "github.com/jamjar/jamjar-editor/internal/model"
)

// propertyRow is one displayed property. Nested properties are flattened
// under a dotted name.
type propertyRow struct {
	spec     string
	name     string
	typeName string
	optional bool
	value    string
}

func specRows(specs []m.ComponentSpec) []propertyRow {
	var rows []propertyRow

	for _, spec := range specs {
		if len(spec.Definition) == 0 {
			rows = append(rows, propertyRow{spec: spec.Name, name: "-"})

			continue
		}

		rows = appendPropertyRows(rows, spec.Name, "", spec.Definition)
	}

	return rows
}

func appendPropertyRows(rows []propertyRow, spec, prefix string, properties []m.Property) []propertyRow {
	for _, property := range properties {
		name := prefix + property.Name

		rows = append(rows, propertyRow{
			spec:     spec,
			name:     name,
			typeName: typeLabel(property.Value),
			optional: property.Optional,
			value:    defaultLabel(property.Value),
		})

		if nested, ok := elementOf(property.Value).Data.(m.Nested); ok {
			rows = appendPropertyRows(rows, spec, name+".", nested.Properties)
		}
	}

	return rows
}

// elementOf unwraps arrays down to their element template.
func elementOf(value m.Value) m.Value {
	for {
		list, ok := value.Data.(m.ValueList)
		if !ok {
			return value
		}

		value = list.DefaultValue
	}
}

func typeLabel(value m.Value) string {
	if list, ok := value.Data.(m.ValueList); ok {
		return typeLabel(list.DefaultValue) + "[]"
	}

	if value.Path != "" {
		return fmt.Sprintf("%s (%s)", value.Type(), value.Path)
	}

	return value.Type()
}

func defaultLabel(value m.Value) string {
	switch data := value.Data.(type) {
	case m.Number:
		return strconv.FormatFloat(float64(data), 'g', -1, 64)
	case m.String:
		return strconv.Quote(string(data))
	case m.Boolean:
		return strconv.FormatBool(bool(data))
	case m.ValueList:
		return fmt.Sprintf("%d items", len(data.Items))
	}

	return ""
}

func countSpecs(rows []propertyRow) int {
	seen := map[string]bool{}
	for _, row := range rows {
		seen[row.spec] = true
	}

	return len(seen)
}
