package templates

import (
	"bytes"
	"testing"

	"github.com/delaneyj/bindparty/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDot(t *testing.T) {
	b := binding.NewTypeBuilder("Person")
	binding.DefineProperty[string](b, "first")
	binding.DefineComputed(b, "full_name", func(*binding.Model) string { return "" }, "first")
	binding.DefineCommandWithArg(b, "rename", func(*binding.Model, any) error { return nil }, binding.DependsOn("full_name"))
	typ, err := b.Build()
	require.NoError(t, err)

	dg := NewDotGraph(typ.Name(), typ.Graph())
	assert.Equal(t, []DotNode{
		{Name: "first", Shape: "ellipse", Label: "first: string"},
		{Name: "full_name", Shape: "doublecircle", Label: "full_name: string"},
		{Name: "rename", Shape: "box", Label: "rename(arg)"},
	}, dg.Nodes)
	assert.Equal(t, []DotEdge{
		{From: "first", To: "full_name"},
		{From: "full_name", To: "rename", Command: true},
	}, dg.Edges)

	out := Dot(dg)
	assert.Contains(t, out, `digraph "Person" {`)
	assert.Contains(t, out, `"first" [shape=ellipse, label="first: string"];`)
	assert.Contains(t, out, `"full_name" [shape=doublecircle, label="full_name: string"];`)
	assert.Contains(t, out, `"rename" [shape=box, label="rename(arg)"];`)
	assert.Contains(t, out, `"first" -> "full_name";`)
	assert.Contains(t, out, `"full_name" -> "rename" [style=dashed];`)

	var buf bytes.Buffer
	WriteDot(&buf, dg)
	assert.Equal(t, out, buf.String())
}
