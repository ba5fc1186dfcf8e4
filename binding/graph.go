package binding

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
	mapset "github.com/deckarep/golang-set/v2"
)

type NodeKind uint8

const (
	PropertyNode NodeKind = iota
	CommandNode
)

func (k NodeKind) String() string {
	if k == CommandNode {
		return "command"
	}
	return "property"
}

// Node describes one declared property or command.
type Node struct {
	Name          string
	Kind          NodeKind
	ReadOnly      bool
	TakesArgument bool
	ValueType     string
	DependsOn     []string
}

// Graph is the dependency graph of one model type: for every property, the
// properties and commands that must be notified when it changes. It is built
// once by TypeBuilder.Build and never changes afterwards.
type Graph struct {
	typ               string
	properties        []string
	commands          []string
	nodes             map[string]Node
	relatedProperties map[string][]string
	relatedCommands   map[string][]string
	fingerprint       uint64
}

func (g *Graph) Properties() []string { return cloneStrings(g.properties) }

func (g *Graph) Commands() []string { return cloneStrings(g.commands) }

func (g *Graph) Node(name string) (Node, bool) {
	n, ok := g.nodes[name]
	n.DependsOn = cloneStrings(n.DependsOn)
	return n, ok
}

// Nodes returns properties then commands, each in declaration order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, 0, len(g.nodes))
	for _, name := range g.properties {
		n, _ := g.Node(name)
		out = append(out, n)
	}
	for _, name := range g.commands {
		n, _ := g.Node(name)
		out = append(out, n)
	}
	return out
}

func (g *Graph) DependsOn(name string) []string {
	return cloneStrings(g.nodes[name].DependsOn)
}

func (g *Graph) RelatedProperties(name string) []string {
	return cloneStrings(g.relatedProperties[name])
}

func (g *Graph) RelatedCommands(name string) []string {
	return cloneStrings(g.relatedCommands[name])
}

// Cascade lists, in notification order, the properties a write to name
// notifies after name itself and the commands whose enablement is rechecked.
// It is what a write on a model with no other write in progress produces.
func (g *Graph) Cascade(name string) (properties, commands []string) {
	seen := mapset.NewThreadUnsafeSet(name)
	seenCommands := mapset.NewThreadUnsafeSet[string]()
	collect := func(n string) {
		for _, c := range g.relatedCommands[n] {
			if seenCommands.Add(c) {
				commands = append(commands, c)
			}
		}
	}
	collect(name)

	var walk func(n string)
	walk = func(n string) {
		for _, r := range g.relatedProperties[n] {
			if !seen.Add(r) {
				continue
			}
			properties = append(properties, r)
			collect(r)
			walk(r)
		}
	}
	walk(name)
	return properties, commands
}

// Fingerprint identifies the declaration the graph was built from: type name,
// node kinds, arity and edges. Two builders declaring the same names and
// dependencies in the same order produce the same fingerprint.
func (g *Graph) Fingerprint() uint64 { return g.fingerprint }

func fingerprint(g *Graph) uint64 {
	d := xxhash.New()
	write := func(s string) {
		d.WriteString(s)
		d.WriteString("\x00")
	}
	write(g.typ)
	for _, n := range g.Nodes() {
		write(n.Kind.String())
		write(n.Name)
		write(strconv.FormatBool(n.ReadOnly))
		write(strconv.FormatBool(n.TakesArgument))
		write(n.ValueType)
		for _, dep := range n.DependsOn {
			write(dep)
		}
		write("\x01")
	}
	return d.Sum64()
}
