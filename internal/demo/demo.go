// Package demo holds small view models used by the command line tools to
// exercise the binding runtime end to end.
package demo

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/delaneyj/bindparty/binding"
	"github.com/delaneyj/bindparty/collection"
)

// Item is a named entry in a Window's list.
type Item struct {
	*binding.Model
}

var (
	itemBuilder = binding.NewTypeBuilder("Item")
	ItemName    = binding.DefineProperty[string](itemBuilder, "name")
)

func NewItem(r *binding.Registry, name string) (*Item, error) {
	typ, err := r.Register(itemBuilder)
	if err != nil {
		return nil, err
	}
	it := &Item{}
	it.Model = typ.New(it)
	if err := ItemName.Set(it.Model, name); err != nil {
		return nil, err
	}
	return it, nil
}

func (it *Item) String() string {
	return ItemName.Get(it.Model)
}

// Window is a list of items with a selection, a message that mentions the
// selected index and commands to edit the list.
type Window struct {
	*binding.Model
	Items    *collection.List[*Item]
	registry *binding.Registry
}

var (
	windowBuilder  = binding.NewTypeBuilder("Window")
	Message        = binding.DefineProperty[string](windowBuilder, "message", binding.Default("Hello"))
	SelectedItem   = binding.DefineProperty[*Item](windowBuilder, "selected_item")
	RelatedMessage = binding.DefineComputed(windowBuilder, "related_message", relatedMessage, "message", "selected_item")

	RenameItem = binding.DefineCommandWithArg(windowBuilder, "rename_item",
		func(m *binding.Model, arg any) error {
			selected := SelectedItem.Get(m)
			if selected == nil {
				return nil
			}
			name, ok := arg.(string)
			if !ok {
				return fmt.Errorf("rename_item: want string argument, got %T", arg)
			}
			return ItemName.Set(selected.Model, name)
		},
		binding.CanExecuteWithArg(func(m *binding.Model, _ any) bool {
			return SelectedItem.Get(m) != nil
		}),
		binding.DependsOn("selected_item"),
	)
	AddItem = binding.DefineCommand(windowBuilder, "add_item", func(m *binding.Model) error {
		w := m.Owner().(*Window)
		it, err := NewItem(w.registry, fmt.Sprintf("New item #%d", w.Items.Len()+1))
		if err != nil {
			return err
		}
		return w.Items.Append(it)
	})
	DeleteItem = binding.DefineCommand(windowBuilder, "delete_item",
		func(m *binding.Model) error {
			return m.Owner().(*Window).Items.Remove(SelectedItem.Get(m))
		},
		binding.CanExecute(func(m *binding.Model) bool {
			return SelectedItem.Get(m) != nil
		}),
		binding.DependsOn("selected_item"),
	)
	SortItems = binding.DefineCommand(windowBuilder, "sort_items", func(m *binding.Model) error {
		return m.Owner().(*Window).Items.Sort(func(a, b *Item) int {
			return cmp.Compare(a.String(), b.String())
		})
	})
)

func relatedMessage(m *binding.Model) string {
	w := m.Owner().(*Window)
	index := -1
	if selected := SelectedItem.Get(m); selected != nil {
		index = w.Items.IndexOf(selected)
	}
	return fmt.Sprintf("%s! (%d)", Message.Get(m), index)
}

// NewWindow registers the demo types on r and returns a window holding
// items named after names.
func NewWindow(r *binding.Registry, names ...string) (*Window, error) {
	typ, err := r.Register(windowBuilder)
	if err != nil {
		return nil, err
	}
	w := &Window{
		Items:    collection.NewList[*Item](),
		registry: r,
	}
	w.Model = typ.New(w)

	items := make([]*Item, 0, len(names))
	for _, name := range names {
		it, err := NewItem(r, name)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := w.Items.Extend(items...); err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if err := SelectedItem.Set(w.Model, items[0]); err != nil {
			return nil, err
		}
	}
	return w, nil
}

func (w *Window) ItemNames() string {
	names := make([]string, 0, w.Items.Len())
	for _, it := range w.Items.All() {
		names = append(names, it.String())
	}
	return strings.Join(names, ", ")
}

var (
	personBuilder = binding.NewTypeBuilder("Person")
	First         = binding.DefineProperty[string](personBuilder, "first")
	Last          = binding.DefineProperty[string](personBuilder, "last")
	FullName      = binding.DefineComputed(personBuilder, "full_name", func(m *binding.Model) string {
		return strings.TrimSpace(First.Get(m) + " " + Last.Get(m))
	}, "first", "last")
	Greeting = binding.DefineComputed(personBuilder, "greeting", func(m *binding.Model) string {
		return "Hello, " + FullName.Get(m)
	}, "full_name")
	Clear = binding.DefineCommand(personBuilder, "clear",
		func(m *binding.Model) error {
			if err := First.Set(m, ""); err != nil {
				return err
			}
			return Last.Set(m, "")
		},
		binding.CanExecute(func(m *binding.Model) bool {
			return FullName.Get(m) != ""
		}),
		binding.DependsOn("full_name"),
	)
)

func NewPerson(r *binding.Registry, first, last string) (*binding.Model, error) {
	typ, err := r.Register(personBuilder)
	if err != nil {
		return nil, err
	}
	m := typ.New(nil)
	if err := First.Set(m, first); err != nil {
		return nil, err
	}
	if err := Last.Set(m, last); err != nil {
		return nil, err
	}
	return m, nil
}

// Register adds every demo type to r.
func Register(r *binding.Registry) error {
	for _, b := range []*binding.TypeBuilder{itemBuilder, windowBuilder, personBuilder} {
		if _, err := r.Register(b); err != nil {
			return err
		}
	}
	return nil
}
