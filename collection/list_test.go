package collection_test

import (
	"cmp"
	"testing"

	"github.com/delaneyj/bindparty/collection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record[T comparable](t *testing.T, l *collection.List[T]) *[]collection.ChangeEvent[T] {
	t.Helper()
	events := &[]collection.ChangeEvent[T]{}
	_, err := l.Changed().SubscribeFunc(func(evt collection.ChangeEvent[T]) {
		*events = append(*events, evt)
	})
	require.NoError(t, err)
	return events
}

func TestAppendEmitsAddAtLength(t *testing.T) {
	l := collection.NewList("a", "b", "c")
	events := record(t, l)

	require.NoError(t, l.Append("x"))
	require.Len(t, *events, 1)
	assert.Equal(t, collection.ChangeEvent[string]{
		Action:   collection.Add,
		Index:    3,
		NewItems: []string{"x"},
	}, (*events)[0])
	assert.Equal(t, []string{"a", "b", "c", "x"}, l.Items())
}

func TestZeroValueList(t *testing.T) {
	var l collection.List[int]
	require.NoError(t, l.Append(1), "mutating before anyone subscribed")

	events := record(t, &l)
	require.NoError(t, l.Append(2))
	assert.Equal(t, []collection.ChangeEvent[int]{
		{Action: collection.Add, Index: 1, NewItems: []int{2}},
	}, *events)
	assert.Equal(t, []int{1, 2}, l.Items())
}

func TestAddOperations(t *testing.T) {
	t.Run("extend", func(t *testing.T) {
		l := collection.NewList(1, 2)
		events := record(t, l)

		require.NoError(t, l.Extend(3, 4))
		assert.Equal(t, []collection.ChangeEvent[int]{
			{Action: collection.Add, Index: 2, NewItems: []int{3, 4}},
		}, *events)
		assert.Equal(t, []int{1, 2, 3, 4}, l.Items())
	})

	t.Run("insert", func(t *testing.T) {
		l := collection.NewList(1, 3)
		events := record(t, l)

		require.NoError(t, l.Insert(1, 2))
		require.NoError(t, l.Insert(99, 4))
		require.NoError(t, l.Insert(-5, 0))
		assert.Equal(t, []int{0, 1, 2, 3, 4}, l.Items())
		assert.Equal(t, []collection.ChangeEvent[int]{
			{Action: collection.Add, Index: 1, NewItems: []int{2}},
			{Action: collection.Add, Index: 3, NewItems: []int{4}},
			{Action: collection.Add, Index: 0, NewItems: []int{0}},
		}, *events)
	})
}

func TestRemove(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		l := collection.NewList("a", "b", "c", "b")
		events := record(t, l)

		require.NoError(t, l.Remove("b"))
		assert.Equal(t, []collection.ChangeEvent[string]{
			{Action: collection.Remove, Index: 1, OldItems: []string{"b"}},
		}, *events)
		assert.Equal(t, []string{"a", "c", "b"}, l.Items())
	})

	t.Run("absent", func(t *testing.T) {
		l := collection.NewList("a", "b")
		events := record(t, l)

		err := l.Remove("z")
		assert.ErrorIs(t, err, collection.ErrNotFound)
		assert.Empty(t, *events)
		assert.Equal(t, []string{"a", "b"}, l.Items())
	})
}

func TestPop(t *testing.T) {
	l := collection.NewList(10, 20, 30)
	events := record(t, l)

	v, err := l.Pop()
	require.NoError(t, err)
	assert.Equal(t, 30, v)

	v, err = l.PopAt(0)
	require.NoError(t, err)
	assert.Equal(t, 10, v)

	assert.Equal(t, []collection.ChangeEvent[int]{
		{Action: collection.Remove, Index: 2, OldItems: []int{30}},
		{Action: collection.Remove, Index: 0, OldItems: []int{10}},
	}, *events)

	_, err = l.PopAt(5)
	assert.ErrorIs(t, err, collection.ErrIndexOutOfRange)

	empty := collection.NewList[int]()
	emptyEvents := record(t, empty)
	_, err = empty.Pop()
	assert.ErrorIs(t, err, collection.ErrIndexOutOfRange)
	assert.Empty(t, *emptyEvents)
	assert.Len(t, *events, 2)
}

func TestDelete(t *testing.T) {
	l := collection.NewList(0, 1, 2, 3, 4, 5)
	events := record(t, l)

	require.NoError(t, l.DeleteAt(1))
	require.NoError(t, l.DeleteRange(1, 3))
	assert.Equal(t, []int{0, 4, 5}, l.Items())
	assert.Equal(t, []collection.ChangeEvent[int]{
		{Action: collection.Remove, Index: 1, OldItems: []int{1}},
		{Action: collection.Remove, Index: 1, OldItems: []int{2, 3}},
	}, *events)

	assert.ErrorIs(t, l.DeleteAt(-1), collection.ErrIndexOutOfRange)
	assert.ErrorIs(t, l.DeleteRange(2, 1), collection.ErrIndexOutOfRange)
	assert.ErrorIs(t, l.DeleteRange(0, 4), collection.ErrIndexOutOfRange)
	assert.Len(t, *events, 2)
}

func TestReplace(t *testing.T) {
	l := collection.NewList("a", "b", "c", "d")
	events := record(t, l)

	require.NoError(t, l.Set(0, "A"))
	require.NoError(t, l.SetRange(1, 3, "x", "y", "z"))
	assert.Equal(t, []string{"A", "x", "y", "z", "d"}, l.Items())
	assert.Equal(t, []collection.ChangeEvent[string]{
		{Action: collection.Replace, Index: 0, NewItems: []string{"A"}, OldItems: []string{"a"}},
		{Action: collection.Replace, Index: 1, NewItems: []string{"x", "y", "z"}, OldItems: []string{"b", "c"}},
	}, *events)

	assert.ErrorIs(t, l.Set(10, "q"), collection.ErrIndexOutOfRange)
	assert.Len(t, *events, 2)
}

func TestResetOperations(t *testing.T) {
	reset := collection.ChangeEvent[int]{Action: collection.Reset}

	t.Run("sort emits one reset", func(t *testing.T) {
		l := collection.NewList(5, 3, 9, 1, 7)
		events := record(t, l)
		require.NoError(t, l.Sort(cmp.Compare[int]))
		assert.Equal(t, []int{1, 3, 5, 7, 9}, l.Items())
		assert.Equal(t, []collection.ChangeEvent[int]{reset}, *events)
	})

	t.Run("reverse", func(t *testing.T) {
		l := collection.NewList(1, 2, 3)
		events := record(t, l)
		require.NoError(t, l.Reverse())
		assert.Equal(t, []int{3, 2, 1}, l.Items())
		assert.Equal(t, []collection.ChangeEvent[int]{reset}, *events)
	})

	t.Run("repeat", func(t *testing.T) {
		l := collection.NewList(1, 2)
		events := record(t, l)
		require.NoError(t, l.Repeat(3))
		assert.Equal(t, []int{1, 2, 1, 2, 1, 2}, l.Items())
		require.NoError(t, l.Repeat(0))
		assert.Equal(t, 0, l.Len())
		assert.Equal(t, []collection.ChangeEvent[int]{reset, reset}, *events)
	})

	t.Run("clear", func(t *testing.T) {
		l := collection.NewList(1, 2)
		events := record(t, l)
		require.NoError(t, l.Clear())
		assert.Equal(t, 0, l.Len())
		assert.Equal(t, []collection.ChangeEvent[int]{reset}, *events)
	})
}

func TestReadAccess(t *testing.T) {
	l := collection.NewList("a", "b")

	v, err := l.At(1)
	require.NoError(t, err)
	assert.Equal(t, "b", v)
	_, err = l.At(2)
	assert.ErrorIs(t, err, collection.ErrIndexOutOfRange)

	assert.True(t, l.Contains("a"))
	assert.Equal(t, -1, l.IndexOf("z"))

	items := l.Items()
	items[0] = "mutated"
	assert.Equal(t, "a", l.Items()[0])

	var seen []string
	for i, item := range l.All() {
		seen = append(seen, item)
		if i == 0 {
			break
		}
	}
	assert.Equal(t, []string{"a"}, seen)
}

func TestSubscriberSeesPostMutationState(t *testing.T) {
	l := collection.NewList[int]()
	var lengths []int
	_, err := l.Changed().SubscribeFunc(func(collection.ChangeEvent[int]) {
		lengths = append(lengths, l.Len())
	})
	require.NoError(t, err)

	require.NoError(t, l.Append(1))
	require.NoError(t, l.Extend(2, 3))
	_, err = l.Pop()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 2}, lengths)
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "add", collection.Add.String())
	assert.Equal(t, "reset", collection.Reset.String())
	assert.Equal(t, "action(42)", collection.Action(42).String())
}
