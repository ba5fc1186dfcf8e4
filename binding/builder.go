package binding

import (
	"errors"
	"fmt"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
)

// TypeBuilder collects the property and command declarations of one model
// type. Build turns them into an immutable Type exactly once.
//
// Declarations must happen on one goroutine. Once declared, a builder may be
// built or registered from any number of goroutines.
type TypeBuilder struct {
	mu         sync.Mutex
	name       string
	properties []*propertyDescriptor
	commands   []*CommandDescriptor
	names      mapset.Set[string]
	errs       []error
	built      *Type
	buildErr   error
}

func NewTypeBuilder(name string) *TypeBuilder {
	return &TypeBuilder{
		name:  name,
		names: mapset.NewThreadUnsafeSet[string](),
	}
}

func (b *TypeBuilder) Name() string { return b.name }

func (b *TypeBuilder) fail(err error) {
	b.errs = append(b.errs, err)
}

func (b *TypeBuilder) sealed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.built != nil || b.buildErr != nil
}

func (b *TypeBuilder) declare(name string) {
	if b.sealed() {
		panic(configErrorf(b.name, name, ErrSealed, "declare before Build"))
	}
	if name == "" {
		b.fail(configErrorf(b.name, name, ErrEmptyName, ""))
		return
	}
	if !b.names.Add(name) {
		b.fail(configErrorf(b.name, name, ErrDuplicateName, ""))
	}
}

func (b *TypeBuilder) addProperty(d *propertyDescriptor) {
	b.declare(d.name)
	b.properties = append(b.properties, d)
}

func (b *TypeBuilder) addCommand(d *CommandDescriptor) {
	b.declare(d.name)
	b.commands = append(b.commands, d)
}

// Build validates the declarations, computes the reverse dependency edges
// and checks that no property can reach itself through them. It runs once:
// later calls return the first result, and declaring on a built builder
// panics.
func (b *TypeBuilder) Build() (*Type, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.built != nil || b.buildErr != nil {
		return b.built, b.buildErr
	}
	t, err := b.build()
	if err != nil {
		b.buildErr = err
		return nil, err
	}
	b.built = t
	return t, nil
}

// MustBuild is Build for package-level declarations.
func (b *TypeBuilder) MustBuild() *Type {
	t, err := b.Build()
	if err != nil {
		panic(err)
	}
	return t
}

func (b *TypeBuilder) build() (*Type, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}

	t := &Type{
		name:       b.name,
		properties: make(map[string]*propertyDescriptor, len(b.properties)),
		commands:   make(map[string]*CommandDescriptor, len(b.commands)),
	}
	for _, d := range b.properties {
		t.properties[d.name] = d
	}
	for _, d := range b.commands {
		t.commands[d.name] = d
	}

	g, err := buildGraph(b.name, b.properties, b.commands)
	if err != nil {
		return nil, err
	}
	t.graph = g

	for _, d := range b.properties {
		d.typ = t
	}
	for _, d := range b.commands {
		d.typ = t
	}
	return t, nil
}

// buildGraph adds, for every descriptor D and every name P D depends on, D
// to P's related properties or related commands. Edges keep declaration
// order.
func buildGraph(typ string, properties []*propertyDescriptor, commands []*CommandDescriptor) (*Graph, error) {
	g := &Graph{
		typ:               typ,
		nodes:             make(map[string]Node, len(properties)+len(commands)),
		relatedProperties: map[string][]string{},
		relatedCommands:   map[string][]string{},
	}
	for _, d := range properties {
		n := Node{
			Name:      d.name,
			Kind:      PropertyNode,
			ReadOnly:  d.readOnly,
			ValueType: d.valueType.String(),
			DependsOn: dedupe(d.dependsOn),
		}
		g.nodes[d.name] = n
		g.properties = append(g.properties, d.name)
	}
	for _, d := range commands {
		n := Node{
			Name:          d.name,
			Kind:          CommandNode,
			TakesArgument: d.takesArg,
			DependsOn:     dedupe(d.dependsOn),
		}
		g.nodes[d.name] = n
		g.commands = append(g.commands, d.name)
	}

	var errs []error
	checkDependency := func(owner, dep string) bool {
		n, ok := g.nodes[dep]
		switch {
		case !ok:
			errs = append(errs, configErrorf(typ, owner, ErrUnknownDependency, "%q", dep))
		case n.Kind == CommandNode:
			errs = append(errs, configErrorf(typ, owner, ErrCommandDependency, "%q", dep))
		default:
			return true
		}
		return false
	}

	for _, name := range g.properties {
		for _, dep := range g.nodes[name].DependsOn {
			if dep == name {
				errs = append(errs, configErrorf(typ, name, ErrSelfDependency, ""))
				continue
			}
			if checkDependency(name, dep) {
				g.relatedProperties[dep] = append(g.relatedProperties[dep], name)
			}
		}
	}
	for _, name := range g.commands {
		for _, dep := range g.nodes[name].DependsOn {
			if checkDependency(name, dep) {
				g.relatedCommands[dep] = append(g.relatedCommands[dep], name)
			}
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	for _, name := range g.properties {
		if len(g.relatedProperties[name]) == 0 {
			continue
		}
		if path := g.findCycle(name); path != nil {
			return nil, &ConfigError{
				Type: typ,
				Name: name,
				Kind: ErrCyclicDependency,
				Path: path,
			}
		}
	}

	g.fingerprint = fingerprint(g)
	return g, nil
}

// findCycle searches depth-first from start over related-property edges and
// returns the first path leading back to start, or nil.
func (g *Graph) findCycle(start string) []string {
	visited := mapset.NewThreadUnsafeSet[string]()
	var path []string

	var dfs func(name string) bool
	dfs = func(name string) bool {
		path = append(path, name)
		for _, next := range g.relatedProperties[name] {
			if next == start {
				path = append(path, next)
				return true
			}
			if !visited.Add(next) {
				continue
			}
			if dfs(next) {
				return true
			}
		}
		path = path[:len(path)-1]
		return false
	}

	visited.Add(start)
	if dfs(start) {
		return path
	}
	return nil
}

func dedupe(names []string) []string {
	seen := mapset.NewThreadUnsafeSet[string]()
	var out []string
	for _, n := range names {
		if seen.Add(n) {
			out = append(out, n)
		}
	}
	return out
}

func (b *TypeBuilder) String() string {
	return fmt.Sprintf("TypeBuilder(%s, %d properties, %d commands)", b.name, len(b.properties), len(b.commands))
}
