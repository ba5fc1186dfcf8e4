// Package binding implements bindable model types.
//
// A model type is declared on a TypeBuilder as a table of named properties
// and commands, each listing the properties it depends on:
//
//	b := binding.NewTypeBuilder("Person")
//	first := binding.DefineProperty[string](b, "first")
//	last := binding.DefineProperty[string](b, "last")
//	fullName := binding.DefineComputed(b, "full_name", func(m *binding.Model) string {
//		return first.Get(m) + " " + last.Get(m)
//	}, "first", "last")
//	personType, err := b.Build()
//
// Build inverts the dependencies into a Graph and rejects cycles, so a type
// that could notify a property from its own cascade never gets an instance.
//
// Writing a property on a Model fires the property's change notification,
// then that of every property that transitively depends on it, each once,
// then the CanExecuteChanged notification of every dependent command. All
// notifications run synchronously before the write returns.
package binding
