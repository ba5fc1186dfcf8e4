package binding

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/delaneyj/bindparty/event"
)

// PropertyChange is the payload of a model-wide change notification.
type PropertyChange struct {
	Model *Model
	Name  string
}

// Model is the state of one instance of a Type: the backing store, the set
// of properties currently mid-cascade, the per-property change channels and
// the lazily created commands.
//
// A Model is not safe for concurrent use. Writes to one instance have to be
// serialized by the caller.
type Model struct {
	typ      *Type
	owner    any
	values   map[string]any
	active   mapset.Set[string]
	changed  *event.Notifier[PropertyChange]
	channels map[string]*event.Notifier[string]
	commands map[string]*Command
}

func (m *Model) Type() *Type { return m.typ }

func (m *Model) Owner() any { return m.owner }

// PropertyChanged fires for every notified property after that property's
// own channel.
func (m *Model) PropertyChanged() *event.Notifier[PropertyChange] {
	return m.changed
}

// Changed returns the change channel of one property. It fires with the
// property's name.
func (m *Model) Changed(name string) (*event.Notifier[string], error) {
	if _, ok := m.typ.properties[name]; !ok {
		return nil, &PropertyError{Op: "subscribe", Type: m.typ.name, Property: name, Err: ErrUnknownProperty}
	}
	n, ok := m.channels[name]
	if !ok {
		if m.channels == nil {
			m.channels = map[string]*event.Notifier[string]{}
		}
		n = event.New[string]()
		m.channels[name] = n
	}
	return n, nil
}

// Active reports whether name is part of a cascade that is still running.
func (m *Model) Active(name string) bool {
	return m.active.Contains(name)
}

func (m *Model) Get(name string) (any, error) {
	d, ok := m.typ.properties[name]
	if !ok {
		return nil, &PropertyError{Op: "get", Type: m.typ.name, Property: name, Err: ErrUnknownProperty}
	}
	return d.value(m), nil
}

// Set writes a property by name. v must be assignable to the property's
// declared type.
func (m *Model) Set(name string, v any) error {
	d, ok := m.typ.properties[name]
	if !ok {
		return &PropertyError{Op: "set", Type: m.typ.name, Property: name, Err: ErrUnknownProperty}
	}
	if d.readOnly {
		return &PropertyError{Op: "set", Type: m.typ.name, Property: name, Err: ErrImmutableProperty}
	}
	cv, err := d.coerce(v)
	if err != nil {
		return &PropertyError{Op: "set", Type: m.typ.name, Property: name, Err: err}
	}
	return m.write(d, cv)
}

// Notify runs the cascade of name without writing it, for computed
// properties whose inputs live outside the model.
func (m *Model) Notify(name string) error {
	if _, ok := m.typ.properties[name]; !ok {
		return &PropertyError{Op: "notify", Type: m.typ.name, Property: name, Err: ErrUnknownProperty}
	}
	return m.propagate(name)
}

// Command returns the command instance for name, creating it on first use.
func (m *Model) Command(name string) (*Command, error) {
	d, ok := m.typ.commands[name]
	if !ok {
		return nil, &PropertyError{Op: "command", Type: m.typ.name, Property: name, Err: ErrUnknownCommand}
	}
	return m.command(d), nil
}

func (m *Model) command(d *CommandDescriptor) *Command {
	if c, ok := m.commands[d.name]; ok {
		return c
	}
	if m.commands == nil {
		m.commands = map[string]*Command{}
	}
	c := &Command{
		d:       d,
		model:   m,
		changed: event.New[struct{}](),
	}
	m.commands[d.name] = c
	return c
}

func (m *Model) owns(d *propertyDescriptor) error {
	if m.typ != d.typ {
		return &PropertyError{Op: "access", Type: m.typ.name, Property: d.name, Err: ErrForeignModel}
	}
	return nil
}

func (m *Model) write(d *propertyDescriptor, v any) error {
	if d.readOnly {
		return &PropertyError{Op: "set", Type: m.typ.name, Property: d.name, Err: ErrImmutableProperty}
	}
	if err := d.store(m, v); err != nil {
		return &PropertyError{Op: "set", Type: m.typ.name, Property: d.name, Err: err}
	}
	return m.propagate(d.name)
}

// propagate notifies name, then every property reachable from it over the
// related-property edges that is not already mid-cascade, then the commands
// related to any notified property, each once. Names marked active here are
// released on every exit path.
func (m *Model) propagate(name string) error {
	var marked []string
	defer func() {
		for _, n := range marked {
			m.active.Remove(n)
		}
	}()

	if m.active.Add(name) {
		marked = append(marked, name)
	}
	if err := m.notify(name); err != nil {
		return err
	}

	g := m.typ.graph
	seenCommands := mapset.NewThreadUnsafeSet[string]()
	var commands []string
	collect := func(n string) {
		for _, c := range g.relatedCommands[n] {
			if seenCommands.Add(c) {
				commands = append(commands, c)
			}
		}
	}
	collect(name)

	var walk func(n string) error
	walk = func(n string) error {
		for _, r := range g.relatedProperties[n] {
			if !m.active.Add(r) {
				continue
			}
			marked = append(marked, r)
			if err := m.notify(r); err != nil {
				return err
			}
			collect(r)
			if err := walk(r); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(name); err != nil {
		return err
	}

	for _, cn := range commands {
		c := m.command(m.typ.commands[cn])
		if err := c.changed.Fire(struct{}{}); err != nil {
			return err
		}
	}
	return nil
}

func (m *Model) notify(name string) error {
	if n, ok := m.channels[name]; ok {
		if err := n.Fire(name); err != nil {
			return err
		}
	}
	return m.changed.Fire(PropertyChange{Model: m, Name: name})
}
