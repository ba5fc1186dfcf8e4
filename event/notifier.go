package event

import (
	"errors"
	"reflect"
)

var ErrInvalidSubscriber = errors.New("cannot register a nil handler")

// Handler receives values fired on a Notifier.
type Handler[T any] interface {
	Handle(v T)
}

// ErrHandler is a Handler that can fail. Fire stops at the first error.
type ErrHandler[T any] interface {
	Handler[T]
	HandleErr(v T) error
}

type HandlerFunc[T any] func(v T)

func (f HandlerFunc[T]) Handle(v T) { f(v) }

type ErrHandlerFunc[T any] func(v T) error

// Handle panics with the error when called outside Fire, which uses
// HandleErr instead.
func (f ErrHandlerFunc[T]) Handle(v T) {
	if err := f(v); err != nil {
		panic(err)
	}
}

func (f ErrHandlerFunc[T]) HandleErr(v T) error { return f(v) }

type entry[T any] struct {
	h Handler[T]
}

// Notifier is an ordered multicast dispatcher. Handlers run in subscription
// order on the caller's stack. The same handler may be subscribed more than
// once and then runs once per subscription.
//
// A Notifier is not safe for concurrent use.
type Notifier[T any] struct {
	entries []*entry[T]
}

func New[T any]() *Notifier[T] {
	return &Notifier[T]{}
}

// Subscription identifies one registration on a Notifier.
type Subscription struct {
	cancel func()
}

// Cancel removes the registration. Calling it more than once is a no-op.
func (s Subscription) Cancel() {
	if s.cancel != nil {
		s.cancel()
	}
}

func (n *Notifier[T]) Subscribe(h Handler[T]) (Subscription, error) {
	if isNil(h) {
		return Subscription{}, ErrInvalidSubscriber
	}
	e := &entry[T]{h: h}
	n.entries = append(n.entries, e)
	return Subscription{cancel: func() { n.remove(e) }}, nil
}

func (n *Notifier[T]) SubscribeFunc(fn func(v T)) (Subscription, error) {
	if fn == nil {
		return Subscription{}, ErrInvalidSubscriber
	}
	return n.Subscribe(HandlerFunc[T](fn))
}

// Unsubscribe removes the first registration of h. Handlers whose value
// cannot be compared, such as HandlerFunc or a struct holding a func, never
// match and must be removed through their Subscription instead.
func (n *Notifier[T]) Unsubscribe(h Handler[T]) {
	if isNil(h) || !reflect.ValueOf(h).Comparable() {
		return
	}
	typ := reflect.TypeOf(h)
	for i, e := range n.entries {
		if reflect.TypeOf(e.h) != typ || !reflect.ValueOf(e.h).Comparable() {
			continue
		}
		if e.h == h {
			n.entries = append(n.entries[:i:i], n.entries[i+1:]...)
			return
		}
	}
}

func (n *Notifier[T]) remove(target *entry[T]) {
	for i, e := range n.entries {
		if e == target {
			n.entries = append(n.entries[:i:i], n.entries[i+1:]...)
			return
		}
	}
}

func (n *Notifier[T]) Len() int {
	return len(n.entries)
}

// Fire delivers v to every subscriber in order. Delivery stops at the first
// subscriber that fails: an ErrHandler error is returned, a panic keeps
// unwinding through the caller. Later subscribers do not see v.
func (n *Notifier[T]) Fire(v T) error {
	if n == nil || len(n.entries) == 0 {
		return nil
	}
	snapshot := make([]*entry[T], len(n.entries))
	copy(snapshot, n.entries)
	for _, e := range snapshot {
		if eh, ok := e.h.(ErrHandler[T]); ok {
			if err := eh.HandleErr(v); err != nil {
				return err
			}
			continue
		}
		e.h.Handle(v)
	}
	return nil
}

func isNil(h any) bool {
	if h == nil {
		return true
	}
	v := reflect.ValueOf(h)
	switch v.Kind() {
	case reflect.Func, reflect.Pointer, reflect.Map, reflect.Chan, reflect.Interface, reflect.Slice:
		return v.IsNil()
	}
	return false
}
