package controller

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	m "github.com/jamjar/jamjar-editor/internal/model"
)

// Output formats accepted by EncodeSpecs.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// EncodeSpecs writes specs to w as JSON or YAML.
func EncodeSpecs(w io.Writer, format string, specs []m.ComponentSpec) error {
	if specs == nil {
		specs = []m.ComponentSpec{}
	}

	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		if err := encoder.Encode(specs); err != nil {
			return fmt.Errorf("failed to encode specs: %w", err)
		}
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)

		if err := encoder.Encode(specs); err != nil {
			return fmt.Errorf("failed to encode specs: %w", err)
		}

		if err := encoder.Close(); err != nil {
			return fmt.Errorf("failed to encode specs: %w", err)
		}
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}

	return nil
}
