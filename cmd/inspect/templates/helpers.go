package templates

import (
	"strings"

	"github.com/delaneyj/bindparty/binding"
)

//go:generate qtc -file=dot.qtpl -skipLineComments

type DotNode struct {
	Name  string
	Shape string
	Label string
}

// DotEdge points from a dependency to the node it notifies.
type DotEdge struct {
	From    string
	To      string
	Command bool
}

type DotGraph struct {
	Name  string
	Nodes []DotNode
	Edges []DotEdge
}

// NewDotGraph lays out g for the Dot template. Writable properties are
// ellipses and read-only ones doublecircles. Commands are boxes with dashed
// incoming edges.
func NewDotGraph(name string, g *binding.Graph) DotGraph {
	dg := DotGraph{Name: name}
	for _, n := range g.Nodes() {
		node := DotNode{Name: n.Name, Shape: "ellipse", Label: nodeLabel(n)}
		switch {
		case n.Kind == binding.CommandNode:
			node.Shape = "box"
		case n.ReadOnly:
			node.Shape = "doublecircle"
		}
		dg.Nodes = append(dg.Nodes, node)
	}
	for _, name := range g.Properties() {
		for _, to := range g.RelatedProperties(name) {
			dg.Edges = append(dg.Edges, DotEdge{From: name, To: to})
		}
		for _, to := range g.RelatedCommands(name) {
			dg.Edges = append(dg.Edges, DotEdge{From: name, To: to, Command: true})
		}
	}
	return dg
}

func nodeLabel(n binding.Node) string {
	var sb strings.Builder
	sb.WriteString(n.Name)
	switch {
	case n.Kind == binding.CommandNode && n.TakesArgument:
		sb.WriteString("(arg)")
	case n.Kind == binding.CommandNode:
		sb.WriteString("()")
	default:
		sb.WriteString(": ")
		sb.WriteString(n.ValueType)
	}
	return sb.String()
}
