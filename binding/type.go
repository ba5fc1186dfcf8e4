package binding

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/delaneyj/bindparty/event"
)

// Type is a registered model type. Its descriptors and graph are shared by
// all instances.
type Type struct {
	name       string
	properties map[string]*propertyDescriptor
	commands   map[string]*CommandDescriptor
	graph      *Graph
}

func (t *Type) Name() string { return t.name }

func (t *Type) Graph() *Graph { return t.graph }

func (t *Type) Fingerprint() uint64 { return t.graph.fingerprint }

func (t *Type) Command(name string) (*CommandDescriptor, bool) {
	d, ok := t.commands[name]
	return d, ok
}

// New creates the per-instance state for owner, the struct the model is
// embedded in or attached to. Computed getters reach it through Owner.
func (t *Type) New(owner any) *Model {
	return &Model{
		typ:     t,
		owner:   owner,
		active:  mapset.NewThreadUnsafeSet[string](),
		changed: event.New[PropertyChange](),
	}
}
