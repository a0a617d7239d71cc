package controller

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	m "github.com/jamjar/jamjar-editor/internal/model"
)

func TestEncodeSpecs(t *testing.T) {
	specs := testSpecs(t)

	t.Run("json decodes back", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, EncodeSpecs(&buf, FormatJSON, specs))

		decoded, err := m.UnmarshalSpecs(buf.Bytes())
		require.NoError(t, err)
		assert.Equal(t, specs, decoded)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, EncodeSpecs(&buf, FormatYAML, specs))

		var doc []map[string]any
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
		require.Len(t, doc, 3)
		assert.Equal(t, "Health", doc[0]["name"])
		assert.Contains(t, buf.String(), "type: number")
	})

	t.Run("nil specs encode as empty list", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, EncodeSpecs(&buf, FormatJSON, nil))
		assert.Equal(t, "[]\n", buf.String())
	})

	t.Run("unknown format", func(t *testing.T) {
		assert.Error(t, EncodeSpecs(&bytes.Buffer{}, "xml", specs))
	})
}
