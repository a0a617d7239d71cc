package controller

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStyledUI_DisplaySpecs(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewStyledUI(&buf).DisplaySpecs(testSpecs(t), nil))

	output := buf.String()
	for _, want := range []string{"3 component(s)", "Health", "shield?", "Frame[]", "frames.index", "no parameters", "= 0"} {
		assert.Contains(t, output, want)
	}
}

func TestStyledUI_DisplayWrite(t *testing.T) {
	var buf bytes.Buffer
	ui := NewStyledUI(&buf)

	require.NoError(t, ui.DisplayWrite("level.ts", []byte("source;\n"), true, nil))
	assert.Contains(t, buf.String(), "// level.ts")
	assert.Contains(t, buf.String(), "source;\n")

	buf.Reset()
	require.NoError(t, ui.DisplayWrite("level.ts", []byte("source;\n"), false, nil))
	assert.Contains(t, buf.String(), "wrote level.ts")

	buf.Reset()
	boom := errors.New("boom")
	assert.ErrorIs(t, ui.DisplayWrite("level.ts", nil, false, boom), boom)
	assert.Contains(t, buf.String(), "boom")
}

func TestStyledUI_DisplayCreated(t *testing.T) {
	var buf bytes.Buffer
	ui := NewStyledUI(&buf)

	require.NoError(t, ui.DisplayCreated("main_menu.ts", nil))
	assert.Contains(t, buf.String(), "created main_menu.ts")

	assert.Error(t, ui.DisplayCreated("", errors.New("exists")))
	assert.Contains(t, buf.String(), "exists")
}
