package adapter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalTSFileAdapter_Parse(t *testing.T) {
	adapter := NewLocalTSFileAdapter()

	src := []byte(`import Component from "jamjar/lib/component/component";

export default class Health extends Component {
    constructor(hp: number) {
        super();
    }
}
`)

	tree, err := adapter.Parse(context.Background(), "health.ts", src)
	require.NoError(t, err)
	defer tree.Close()

	root := tree.Root()
	assert.Equal(t, "program", root.Type())
	assert.False(t, tree.HasError())

	require.Equal(t, uint32(2), root.NamedChildCount())
	assert.Equal(t, "import_statement", root.NamedChild(0).Type())
	assert.Equal(t, "export_statement", root.NamedChild(1).Type())
	assert.Equal(t, `import Component from "jamjar/lib/component/component";`, tree.Text(root.NamedChild(0)))
}

func TestLocalTSFileAdapter_Parse_InvalidSource(t *testing.T) {
	adapter := NewLocalTSFileAdapter()

	tree, err := adapter.Parse(context.Background(), "broken.ts", []byte("export default class {{ constructor("))
	require.NoError(t, err)
	defer tree.Close()

	assert.True(t, tree.HasError())
}

func TestSyntaxTree_CloseTwice(t *testing.T) {
	tree, err := NewLocalTSFileAdapter().Parse(context.Background(), "empty.ts", []byte("const a = 1;\n"))
	require.NoError(t, err)

	tree.Close()
	tree.Close()
}
