package binding

import "github.com/delaneyj/bindparty/event"

// CommandDescriptor is a command declared on a TypeBuilder: an action, an
// optional enablement predicate and the properties the predicate reads.
// Whether the action takes an argument is fixed by the constructor used.
type CommandDescriptor struct {
	typ        *Type
	name       string
	takesArg   bool
	dependsOn  []string
	execute    func(m *Model, arg any) error
	canExecute func(m *Model, arg any) bool
	// nil until a predicate option is applied
	predicateTakesArg *bool
}

func (d *CommandDescriptor) Name() string { return d.name }

func (d *CommandDescriptor) TakesArgument() bool { return d.takesArg }

func (d *CommandDescriptor) DependsOn() []string { return cloneStrings(d.dependsOn) }

// Bind returns the command instance for m, creating it on first use.
func (d *CommandDescriptor) Bind(m *Model) (*Command, error) {
	if m.typ != d.typ {
		return nil, &PropertyError{Op: "bind", Type: m.typ.name, Property: d.name, Err: ErrForeignModel}
	}
	return m.command(d), nil
}

type CommandOption interface {
	applyCommand(d *CommandDescriptor)
}

type commandOptionFunc func(d *CommandDescriptor)

func (f commandOptionFunc) applyCommand(d *CommandDescriptor) { f(d) }

// CanExecute sets the enablement predicate of a command without argument.
func CanExecute(fn func(m *Model) bool) CommandOption {
	return commandOptionFunc(func(d *CommandDescriptor) {
		if fn == nil {
			return
		}
		takesArg := false
		d.predicateTakesArg = &takesArg
		d.canExecute = func(m *Model, _ any) bool { return fn(m) }
	})
}

// CanExecuteWithArg sets the enablement predicate of a command that takes
// an argument.
func CanExecuteWithArg(fn func(m *Model, arg any) bool) CommandOption {
	return commandOptionFunc(func(d *CommandDescriptor) {
		if fn == nil {
			return
		}
		takesArg := true
		d.predicateTakesArg = &takesArg
		d.canExecute = fn
	})
}

func DefineCommand(b *TypeBuilder, name string, execute func(m *Model) error, opts ...CommandOption) *CommandDescriptor {
	var fn func(*Model, any) error
	if execute != nil {
		fn = func(m *Model, _ any) error { return execute(m) }
	}
	return defineCommand(b, name, false, fn, opts)
}

func DefineCommandWithArg(b *TypeBuilder, name string, execute func(m *Model, arg any) error, opts ...CommandOption) *CommandDescriptor {
	return defineCommand(b, name, true, execute, opts)
}

func defineCommand(b *TypeBuilder, name string, takesArg bool, execute func(*Model, any) error, opts []CommandOption) *CommandDescriptor {
	d := &CommandDescriptor{
		name:     name,
		takesArg: takesArg,
		execute:  execute,
	}
	for _, opt := range opts {
		opt.applyCommand(d)
	}
	if execute == nil {
		b.fail(configErrorf(b.name, name, ErrNilAction, "command needs an action"))
	}
	if d.predicateTakesArg != nil && *d.predicateTakesArg != takesArg {
		b.fail(configErrorf(b.name, name, ErrArityMismatch, "command takes argument: %t", takesArg))
	}
	d.predicateTakesArg = nil
	b.addCommand(d)
	return d
}

// Command is a CommandDescriptor bound to one model instance.
//
// Execute does not consult CanExecute; enablement is advice for the
// presentation layer, which decides whether to invoke the action.
type Command struct {
	d       *CommandDescriptor
	model   *Model
	changed *event.Notifier[struct{}]
}

func (c *Command) Name() string { return c.d.name }

func (c *Command) Model() *Model { return c.model }

func (c *Command) TakesArgument() bool { return c.d.takesArg }

// Execute runs the action. arg is passed through only when the command takes
// an argument.
func (c *Command) Execute(arg any) error {
	if !c.d.takesArg {
		arg = nil
	}
	return c.d.execute(c.model, arg)
}

func (c *Command) CanExecute(arg any) bool {
	if c.d.canExecute == nil {
		return true
	}
	if !c.d.takesArg {
		arg = nil
	}
	return c.d.canExecute(c.model, arg)
}

// CanExecuteChanged fires after a write to any property the command depends
// on, directly or through a computed property.
func (c *Command) CanExecuteChanged() *event.Notifier[struct{}] {
	return c.changed
}
