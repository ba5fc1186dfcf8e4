package binding

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration matches every *ConfigError.
	ErrConfiguration = errors.New("invalid model type")

	ErrCyclicDependency  = errors.New("cyclic property dependency")
	ErrSelfDependency    = errors.New("property depends on itself")
	ErrUnknownDependency = errors.New("unknown dependency")
	ErrCommandDependency = errors.New("commands cannot be dependency targets")
	ErrDuplicateName     = errors.New("duplicate name")
	ErrEmptyName         = errors.New("empty name")
	ErrTypeMismatch      = errors.New("type mismatch")
	ErrArityMismatch     = errors.New("predicate arity does not match command")
	ErrNilAction         = errors.New("nil accessor or action")
	ErrSealed            = errors.New("type already built")
	ErrDuplicateType     = errors.New("type name already registered with a different declaration")

	ErrImmutableProperty = errors.New("property is read-only")
	ErrForeignModel      = errors.New("descriptor belongs to another type")
	ErrUnknownProperty   = errors.New("unknown property")
	ErrUnknownCommand    = errors.New("unknown command")
)

// ConfigError reports a declaration that cannot be registered. Kind is one of
// the sentinel errors above; Path holds the cycle witness for
// ErrCyclicDependency, starting and ending at Name.
type ConfigError struct {
	Type string
	Name string
	Kind error
	Msg  string
	Path []string
}

func (e *ConfigError) Error() string {
	if e == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(e.Type)
	if e.Name != "" {
		sb.WriteString(".")
		sb.WriteString(e.Name)
	}
	sb.WriteString(": ")
	sb.WriteString(e.Kind.Error())
	if len(e.Path) > 0 {
		sb.WriteString(": ")
		sb.WriteString(strings.Join(e.Path, " -> "))
	}
	if e.Msg != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Msg)
	}
	return sb.String()
}

func (e *ConfigError) Unwrap() error { return e.Kind }

func (e *ConfigError) Is(target error) bool {
	return target == ErrConfiguration
}

func configErrorf(typ, name string, kind error, format string, args ...any) *ConfigError {
	return &ConfigError{Type: typ, Name: name, Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// PropertyError reports a failed property access on a model instance.
type PropertyError struct {
	Op       string
	Type     string
	Property string
	Err      error
}

func (e *PropertyError) Error() string {
	return fmt.Sprintf("%s %s.%s: %v", e.Op, e.Type, e.Property, e.Err)
}

func (e *PropertyError) Unwrap() error { return e.Err }
