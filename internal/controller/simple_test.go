package controller

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/jamjar/jamjar-editor/internal/model"
)

func testSpecs(t *testing.T) []m.ComponentSpec {
	t.Helper()

	ids := m.NewIDAllocator()

	frame := m.NestedValue("Frame", "", []m.Property{
		m.NewProperty(ids, "index", false, false, m.NumberValue(0)),
	})
	frames, err := m.ArrayValue(frame)
	require.NoError(t, err)

	return []m.ComponentSpec{
		m.NewComponentSpec(ids, "Health", "/project/src/health", []m.Property{
			m.NewProperty(ids, "hp", false, false, m.NumberValue(0)),
			m.NewProperty(ids, "shield", true, false, m.NumberValue(0)),
		}),
		m.NewComponentSpec(ids, "Sprite", "/project/src/sprite", []m.Property{
			m.NewProperty(ids, "texture", false, false, m.StringValue("")),
			m.NewProperty(ids, "frames", false, false, frames),
			m.NewProperty(ids, "position", false, false, m.NestedValue("Vector", "jamjar/lib/geometry/vector", []m.Property{
				m.NewProperty(ids, "x", false, false, m.NumberValue(0)),
			})),
		}),
		m.NewComponentSpec(ids, "Tag", "/project/src/tag", nil),
	}
}

func TestSimpleUI_DisplaySpecs_PrintsTable(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	ui := NewSimpleUI(cmd)

	if err := ui.DisplaySpecs(testSpecs(t), nil); err != nil {
		t.Fatalf("DisplaySpecs() error = %v", err)
	}

	output := buf.String()

	for _, want := range []string{
		"Health",
		"shield",
		"yes",
		"frames",
		"Frame[]",
		"frames.index",
		"Vector (jamjar/lib/geometry/vector)",
		"position.x",
		`""`,
		"Tag",
		"TOTAL COMPONENTS 3",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("output missing %q\noutput:\n%s", want, output)
		}
	}
}

func TestSimpleUI_DisplaySpecs_Error(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	ui := NewSimpleUI(cmd)
	boom := errors.New("boom")

	err := ui.DisplaySpecs(nil, boom)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, buf.String(), "parse error: boom")
}

func TestSimpleUI_DisplayWrite(t *testing.T) {
	tests := []struct {
		name    string
		dryRun  bool
		err     error
		want    string
		wantErr bool
	}{
		{name: "summary", want: "wrote level.ts (8 bytes)\n"},
		{name: "dry run prints source", dryRun: true, want: "source;\n"},
		{name: "error", err: errors.New("boom"), want: "write error: level.ts: boom\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			cmd := &cobra.Command{}
			cmd.SetOut(&buf)

			err := NewSimpleUI(cmd).DisplayWrite("level.ts", []byte("source;\n"), tt.dryRun, tt.err)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestSimpleUI_DisplayCreated(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	ui := NewSimpleUI(cmd)

	require.NoError(t, ui.DisplayCreated("main_menu.ts", nil))
	assert.Error(t, ui.DisplayCreated("", errors.New("exists")))

	assert.Equal(t, "created main_menu.ts\ncreate error: exists\n", buf.String())
}
