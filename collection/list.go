package collection

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/delaneyj/bindparty/event"
)

var (
	ErrNotFound        = errors.New("item not found")
	ErrIndexOutOfRange = errors.New("index out of range")
)

type Action uint8

const (
	Reset Action = iota
	Add
	Remove
	Replace
	// Move is part of the action vocabulary but List never emits it.
	Move
)

func (a Action) String() string {
	switch a {
	case Reset:
		return "reset"
	case Add:
		return "add"
	case Remove:
		return "remove"
	case Replace:
		return "replace"
	case Move:
		return "move"
	default:
		return fmt.Sprintf("action(%d)", uint8(a))
	}
}

// ChangeEvent describes one structural mutation. Index is the position the
// added items now start at, or the position the removed items started at.
// Reset carries no index or items.
type ChangeEvent[T any] struct {
	Action   Action
	Index    int
	NewItems []T
	OldItems []T
}

// List is an ordered container that fires exactly one ChangeEvent for every
// successful mutation. Failed mutations leave the list untouched and fire
// nothing. The zero value is an empty list ready to use.
type List[T comparable] struct {
	items   []T
	changed *event.Notifier[ChangeEvent[T]]
}

func NewList[T comparable](items ...T) *List[T] {
	return &List[T]{
		items:   slices.Clone(items),
		changed: event.New[ChangeEvent[T]](),
	}
}

func (l *List[T]) Changed() *event.Notifier[ChangeEvent[T]] {
	if l.changed == nil {
		l.changed = event.New[ChangeEvent[T]]()
	}
	return l.changed
}

func (l *List[T]) Len() int {
	return len(l.items)
}

func (l *List[T]) At(i int) (T, error) {
	var zero T
	if err := l.checkIndex(i); err != nil {
		return zero, err
	}
	return l.items[i], nil
}

// IndexOf returns the position of the first occurrence of item or -1.
func (l *List[T]) IndexOf(item T) int {
	return slices.Index(l.items, item)
}

func (l *List[T]) Contains(item T) bool {
	return l.IndexOf(item) >= 0
}

func (l *List[T]) Items() []T {
	return slices.Clone(l.items)
}

func (l *List[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, item := range l.items {
			if !yield(i, item) {
				return
			}
		}
	}
}

func (l *List[T]) Append(item T) error {
	index := len(l.items)
	l.items = append(l.items, item)
	return l.fire(ChangeEvent[T]{Action: Add, Index: index, NewItems: []T{item}})
}

func (l *List[T]) Extend(items ...T) error {
	index := len(l.items)
	added := slices.Clone(items)
	l.items = append(l.items, added...)
	return l.fire(ChangeEvent[T]{Action: Add, Index: index, NewItems: added})
}

// Insert places item before position i. Positions past either end are
// clamped, so Insert never fails on its index.
func (l *List[T]) Insert(i int, item T) error {
	i = max(0, min(i, len(l.items)))
	l.items = slices.Insert(l.items, i, item)
	return l.fire(ChangeEvent[T]{Action: Add, Index: i, NewItems: []T{item}})
}

// Pop removes and returns the last item.
func (l *List[T]) Pop() (T, error) {
	return l.PopAt(len(l.items) - 1)
}

func (l *List[T]) PopAt(i int) (T, error) {
	var zero T
	if err := l.checkIndex(i); err != nil {
		return zero, err
	}
	item := l.items[i]
	l.items = slices.Delete(l.items, i, i+1)
	return item, l.fire(ChangeEvent[T]{Action: Remove, Index: i, OldItems: []T{item}})
}

// Remove deletes the first occurrence of item. The index is located first so
// a missing item fails with ErrNotFound before anything changes.
func (l *List[T]) Remove(item T) error {
	i := l.IndexOf(item)
	if i < 0 {
		return fmt.Errorf("remove %v: %w", item, ErrNotFound)
	}
	l.items = slices.Delete(l.items, i, i+1)
	return l.fire(ChangeEvent[T]{Action: Remove, Index: i, OldItems: []T{item}})
}

func (l *List[T]) DeleteAt(i int) error {
	_, err := l.PopAt(i)
	return err
}

// DeleteRange removes items[i:j].
func (l *List[T]) DeleteRange(i, j int) error {
	if err := l.checkRange(i, j); err != nil {
		return err
	}
	removed := slices.Clone(l.items[i:j])
	l.items = slices.Delete(l.items, i, j)
	return l.fire(ChangeEvent[T]{Action: Remove, Index: i, OldItems: removed})
}

func (l *List[T]) Set(i int, item T) error {
	if err := l.checkIndex(i); err != nil {
		return err
	}
	old := l.items[i]
	l.items[i] = item
	return l.fire(ChangeEvent[T]{Action: Replace, Index: i, NewItems: []T{item}, OldItems: []T{old}})
}

// SetRange replaces items[i:j] with items. The replacement may differ in
// length from the range it replaces.
func (l *List[T]) SetRange(i, j int, items ...T) error {
	if err := l.checkRange(i, j); err != nil {
		return err
	}
	old := slices.Clone(l.items[i:j])
	added := slices.Clone(items)
	l.items = slices.Replace(l.items, i, j, added...)
	return l.fire(ChangeEvent[T]{Action: Replace, Index: i, NewItems: added, OldItems: old})
}

// Sort orders the list in place with a stable sort.
func (l *List[T]) Sort(cmp func(a, b T) int) error {
	slices.SortStableFunc(l.items, cmp)
	return l.fire(ChangeEvent[T]{Action: Reset})
}

func (l *List[T]) Reverse() error {
	slices.Reverse(l.items)
	return l.fire(ChangeEvent[T]{Action: Reset})
}

// Repeat replaces the contents with n back-to-back copies of themselves.
// n <= 0 empties the list.
func (l *List[T]) Repeat(n int) error {
	if n <= 0 {
		l.items = l.items[:0]
	} else {
		l.items = slices.Repeat(l.items, n)
	}
	return l.fire(ChangeEvent[T]{Action: Reset})
}

func (l *List[T]) Clear() error {
	clear(l.items)
	l.items = l.items[:0]
	return l.fire(ChangeEvent[T]{Action: Reset})
}

func (l *List[T]) fire(evt ChangeEvent[T]) error {
	return l.changed.Fire(evt)
}

func (l *List[T]) checkIndex(i int) error {
	if i < 0 || i >= len(l.items) {
		return fmt.Errorf("index %d with length %d: %w", i, len(l.items), ErrIndexOutOfRange)
	}
	return nil
}

func (l *List[T]) checkRange(i, j int) error {
	if i < 0 || j > len(l.items) || i > j {
		return fmt.Errorf("range [%d:%d] with length %d: %w", i, j, len(l.items), ErrIndexOutOfRange)
	}
	return nil
}
