package binding

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// Registry keeps the registered model types by name.
type Registry struct {
	mu     sync.RWMutex
	types  map[string]*Type
	logger *slog.Logger
}

type RegistryOption func(r *Registry)

func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		types:  map[string]*Type{},
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register builds b and records the resulting type. Registering the same
// declaration twice returns the type from the first registration; a
// different declaration under a taken name fails with ErrDuplicateType.
func (r *Registry) Register(b *TypeBuilder) (*Type, error) {
	t, err := b.Build()
	if err != nil {
		r.logger.Debug("type rejected", "type", b.Name(), "error", err)
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.types[t.name]; ok {
		if existing.Fingerprint() == t.Fingerprint() {
			return existing, nil
		}
		return nil, &ConfigError{
			Type: t.name,
			Kind: ErrDuplicateType,
			Msg:  fmt.Sprintf("fingerprint %016x, registered %016x", t.Fingerprint(), existing.Fingerprint()),
		}
	}
	r.types[t.name] = t
	r.logger.Debug("type registered",
		"type", t.name,
		"properties", len(t.graph.properties),
		"commands", len(t.graph.commands),
		"fingerprint", fmt.Sprintf("%016x", t.Fingerprint()),
	)
	return t, nil
}

func (r *Registry) MustRegister(b *TypeBuilder) *Type {
	t, err := r.Register(b)
	if err != nil {
		panic(err)
	}
	return t
}

func (r *Registry) Lookup(name string) (*Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[name]
	return t, ok
}

// Types returns the registered type names in sorted order.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
