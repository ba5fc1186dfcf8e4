package binding_test

import (
	"errors"
	"testing"

	"github.com/delaneyj/bindparty/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct{ name string }

func TestRenameCommandScenario(t *testing.T) {
	b := binding.NewTypeBuilder("Window")
	selected := binding.DefineProperty[*item](b, "selected")
	rename := binding.DefineCommandWithArg(b, "rename",
		func(m *binding.Model, arg any) error {
			selected.Get(m).name = arg.(string)
			return nil
		},
		binding.CanExecuteWithArg(func(m *binding.Model, _ any) bool {
			return selected.Get(m) != nil
		}),
		binding.DependsOn("selected"),
	)
	typ, err := b.Build()
	require.NoError(t, err)
	m := typ.New(nil)

	cmd, err := rename.Bind(m)
	require.NoError(t, err)
	assert.False(t, cmd.CanExecute(nil))

	fired := 0
	_, err = cmd.CanExecuteChanged().SubscribeFunc(func(struct{}) { fired++ })
	require.NoError(t, err)

	it := &item{name: "A"}
	require.NoError(t, selected.Set(m, it))
	assert.Equal(t, 1, fired)
	assert.True(t, cmd.CanExecute(nil))

	require.NoError(t, cmd.Execute("renamed"))
	assert.Equal(t, "renamed", it.name)
	assert.Equal(t, 1, fired, "executing does not fire enablement changes")
}

func TestCommandsAreCachedPerInstance(t *testing.T) {
	b := binding.NewTypeBuilder("Cache")
	run := binding.DefineCommand(b, "run", noop)
	typ := b.MustBuild()
	m1, m2 := typ.New(nil), typ.New(nil)

	c1, err := m1.Command("run")
	require.NoError(t, err)
	again, err := run.Bind(m1)
	require.NoError(t, err)
	assert.Same(t, c1, again)

	c2, err := m2.Command("run")
	require.NoError(t, err)
	assert.NotSame(t, c1, c2)
	assert.Same(t, m2, c2.Model())

	_, err = m1.Command("missing")
	assert.ErrorIs(t, err, binding.ErrUnknownCommand)

	desc, ok := typ.Command("run")
	require.True(t, ok)
	assert.Same(t, run, desc)
}

func TestCommandArity(t *testing.T) {
	b := binding.NewTypeBuilder("Arity")
	var gotNoArg, gotArg []any
	var predicateArgs []any
	binding.DefineCommand(b, "plain", func(*binding.Model) error {
		gotNoArg = append(gotNoArg, "called")
		return nil
	}, binding.CanExecute(func(*binding.Model) bool { return false }))
	binding.DefineCommandWithArg(b, "with_arg", func(_ *binding.Model, arg any) error {
		gotArg = append(gotArg, arg)
		return nil
	}, binding.CanExecuteWithArg(func(_ *binding.Model, arg any) bool {
		predicateArgs = append(predicateArgs, arg)
		return arg == "ok"
	}))
	binding.DefineCommand(b, "always", noop)
	m := b.MustBuild().New(nil)

	plain, err := m.Command("plain")
	require.NoError(t, err)
	assert.False(t, plain.TakesArgument())
	require.NoError(t, plain.Execute("ignored"))
	assert.Equal(t, []any{"called"}, gotNoArg)
	assert.False(t, plain.CanExecute("ignored"))
	// Execute does not consult the predicate.
	require.NoError(t, plain.Execute(nil))
	assert.Len(t, gotNoArg, 2)

	withArg, err := m.Command("with_arg")
	require.NoError(t, err)
	assert.True(t, withArg.TakesArgument())
	require.NoError(t, withArg.Execute(42))
	assert.Equal(t, []any{42}, gotArg)
	assert.True(t, withArg.CanExecute("ok"))
	assert.False(t, withArg.CanExecute("no"))
	assert.Equal(t, []any{"ok", "no"}, predicateArgs)

	always, err := m.Command("always")
	require.NoError(t, err)
	assert.True(t, always.CanExecute(nil))
}

func TestCommandExecuteError(t *testing.T) {
	boom := errors.New("boom")
	b := binding.NewTypeBuilder("Failing")
	binding.DefineCommand(b, "run", func(*binding.Model) error { return boom })
	m := b.MustBuild().New(nil)

	c, err := m.Command("run")
	require.NoError(t, err)
	assert.ErrorIs(t, c.Execute(nil), boom)
}

func TestCommandFiresOncePerWrite(t *testing.T) {
	// "save" depends on "name" directly and through "label".
	b := binding.NewTypeBuilder("Form")
	name := binding.DefineProperty[string](b, "name")
	binding.DefineComputed(b, "label", func(m *binding.Model) string { return "> " + name.Get(m) }, "name")
	binding.DefineCommand(b, "save", noop, binding.DependsOn("name", "label"))
	binding.DefineCommand(b, "preview", noop, binding.DependsOn("label"))
	binding.DefineCommand(b, "unrelated", noop)
	m := b.MustBuild().New(nil)

	var log []string
	for _, cmdName := range []string{"save", "preview", "unrelated"} {
		c, err := m.Command(cmdName)
		require.NoError(t, err)
		_, err = c.CanExecuteChanged().SubscribeFunc(func(struct{}) { log = append(log, cmdName) })
		require.NoError(t, err)
	}
	_, err := m.PropertyChanged().SubscribeFunc(func(pc binding.PropertyChange) {
		log = append(log, "property:"+pc.Name)
	})
	require.NoError(t, err)

	require.NoError(t, name.Set(m, "x"))
	assert.Equal(t, []string{"property:name", "property:label", "save", "preview"}, log)

	log = nil
	require.NoError(t, name.Set(m, "y"))
	assert.Equal(t, []string{"property:name", "property:label", "save", "preview"}, log)
}

func TestCommandEnablementHandlerFailure(t *testing.T) {
	b := binding.NewTypeBuilder("Enablement")
	sel := binding.DefineProperty[int](b, "sel")
	binding.DefineCommand(b, "first", noop, binding.DependsOn("sel"))
	binding.DefineCommand(b, "second", noop, binding.DependsOn("sel"))
	m := b.MustBuild().New(nil)

	first, err := m.Command("first")
	require.NoError(t, err)
	second, err := m.Command("second")
	require.NoError(t, err)

	_, err = first.CanExecuteChanged().SubscribeFunc(func(struct{}) { panic("enablement") })
	require.NoError(t, err)
	secondFired := false
	_, err = second.CanExecuteChanged().SubscribeFunc(func(struct{}) { secondFired = true })
	require.NoError(t, err)

	assert.PanicsWithValue(t, "enablement", func() { _ = sel.Set(m, 1) })
	assert.False(t, secondFired)
	assert.False(t, m.Active("sel"))
}

func TestBindForeignModel(t *testing.T) {
	b1 := binding.NewTypeBuilder("One")
	run := binding.DefineCommand(b1, "run", noop)
	b1.MustBuild()

	b2 := binding.NewTypeBuilder("Two")
	binding.DefineCommand(b2, "run", noop)
	other := b2.MustBuild().New(nil)

	_, err := run.Bind(other)
	assert.ErrorIs(t, err, binding.ErrForeignModel)
}
