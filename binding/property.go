package binding

import (
	"fmt"
	"reflect"
)

type propertyDescriptor struct {
	typ          *Type
	name         string
	valueType    reflect.Type
	readOnly     bool
	dependsOn    []string
	defaultValue any

	// nil get/set means the model's backing store is used.
	get    func(m *Model) any
	set    func(m *Model, v any) error
	coerce func(v any) (any, error)

	// option values whose type has to match the property's
	optionTypes map[string]reflect.Type
}

func (d *propertyDescriptor) value(m *Model) any {
	if d.get != nil {
		return d.get(m)
	}
	if v, ok := m.values[d.name]; ok {
		return v
	}
	return d.defaultValue
}

func (d *propertyDescriptor) store(m *Model, v any) error {
	if d.set != nil {
		return d.set(m, v)
	}
	if m.values == nil {
		m.values = map[string]any{}
	}
	m.values[d.name] = v
	return nil
}

// Property is a typed handle to a property declared on a TypeBuilder. It is
// shared by every instance of the type and holds no instance data.
type Property[T any] struct {
	d *propertyDescriptor
}

func (p *Property[T]) Name() string { return p.d.name }

func (p *Property[T]) ReadOnly() bool { return p.d.readOnly }

func (p *Property[T]) DependsOn() []string { return cloneStrings(p.d.dependsOn) }

// Get returns the property's value on m, or its declared default when it has
// never been written. It panics if m is not an instance of the declaring type.
func (p *Property[T]) Get(m *Model) T {
	if err := m.owns(p.d); err != nil {
		panic(err)
	}
	v, _ := p.d.value(m).(T)
	return v
}

// Set stores v and runs the change cascade. See Model.Set.
func (p *Property[T]) Set(m *Model, v T) error {
	if err := m.owns(p.d); err != nil {
		return err
	}
	return m.write(p.d, v)
}

type PropertyOption interface {
	applyProperty(d *propertyDescriptor)
}

type propertyOptionFunc func(d *propertyDescriptor)

func (f propertyOptionFunc) applyProperty(d *propertyDescriptor) { f(d) }

// Dependencies lists the property names a property or command is computed
// from. It is accepted by both DefineProperty and DefineCommand.
type Dependencies []string

func DependsOn(names ...string) Dependencies { return Dependencies(names) }

func (deps Dependencies) applyProperty(d *propertyDescriptor) {
	d.dependsOn = append(d.dependsOn, deps...)
}

func (deps Dependencies) applyCommand(d *CommandDescriptor) {
	d.dependsOn = append(d.dependsOn, deps...)
}

func ReadOnly() PropertyOption {
	return propertyOptionFunc(func(d *propertyDescriptor) {
		d.readOnly = true
	})
}

// Default sets the value returned before the property is first written.
func Default[T any](v T) PropertyOption {
	return propertyOptionFunc(func(d *propertyDescriptor) {
		d.defaultValue = v
		d.optionTypes["default"] = reflect.TypeFor[T]()
	})
}

// WithGetter replaces the backing store read with fn.
func WithGetter[T any](fn func(m *Model) T) PropertyOption {
	return propertyOptionFunc(func(d *propertyDescriptor) {
		if fn == nil {
			return
		}
		d.get = func(m *Model) any { return fn(m) }
		d.optionTypes["getter"] = reflect.TypeFor[T]()
	})
}

// WithSetter replaces the backing store write with fn. fn receives the raw
// value and is responsible for storing it wherever the getter reads from.
// An error from fn aborts the write before any notification fires.
func WithSetter[T any](fn func(m *Model, v T) error) PropertyOption {
	return propertyOptionFunc(func(d *propertyDescriptor) {
		if fn == nil {
			return
		}
		d.set = func(m *Model, v any) error {
			t, _ := v.(T)
			return fn(m, t)
		}
		d.optionTypes["setter"] = reflect.TypeFor[T]()
	})
}

// DefineProperty declares a read-write property stored in each instance's
// backing store unless WithGetter/WithSetter say otherwise.
func DefineProperty[T any](b *TypeBuilder, name string, opts ...PropertyOption) *Property[T] {
	d := &propertyDescriptor{
		name:        name,
		valueType:   reflect.TypeFor[T](),
		optionTypes: map[string]reflect.Type{},
	}
	var zero T
	d.defaultValue = zero
	for _, opt := range opts {
		opt.applyProperty(d)
	}
	for what, typ := range d.optionTypes {
		ok := fits(typ, d.valueType)
		if what == "setter" {
			ok = fits(d.valueType, typ)
		}
		if !ok {
			b.fail(configErrorf(b.name, name, ErrTypeMismatch, "%s is %s, property is %s", what, typ, d.valueType))
		}
	}
	d.optionTypes = nil
	d.coerce = func(v any) (any, error) {
		if t, ok := v.(T); ok {
			return t, nil
		}
		if v == nil && nillable(d.valueType) {
			return zero, nil
		}
		return nil, fmt.Errorf("%w: got %T, want %s", ErrTypeMismatch, v, d.valueType)
	}
	b.addProperty(d)
	return &Property[T]{d: d}
}

// DefineComputed declares a read-only property whose value is always
// produced by get. deps names the properties get reads so that writes to
// them notify this property too.
func DefineComputed[T any](b *TypeBuilder, name string, get func(m *Model) T, deps ...string) *Property[T] {
	if get == nil {
		b.fail(configErrorf(b.name, name, ErrNilAction, "computed property needs a getter"))
	}
	return DefineProperty[T](b, name, WithGetter(get), ReadOnly(), DependsOn(deps...))
}

// fits reports whether a value of type from can be stored as, and asserted
// back to, type to.
func fits(from, to reflect.Type) bool {
	return from == to || (to.Kind() == reflect.Interface && from.Implements(to))
}

func nillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	}
	return false
}

func cloneStrings(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
