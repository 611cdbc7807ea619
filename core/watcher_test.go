package core

import (
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/require"
	"go.dedis.ch/gamenews/testing/fake"
)

func TestWatcher_Attach(t *testing.T) {
	watcher := NewWatcher[int]()

	watcher.Attach(fake.NewObserver[int]("a", nil))
	require.Equal(t, 1, watcher.Len())

	obs := fake.NewObserver[int]("b", nil)
	watcher.Attach(obs)
	require.Equal(t, 2, watcher.Len())

	// Duplicates are kept.
	watcher.Attach(obs)
	require.Equal(t, 3, watcher.Len())
	require.Equal(t, Observer[int](obs), watcher.Observers()[2])
}

func TestWatcher_Detach(t *testing.T) {
	watcher := NewWatcher[int]()

	other := fake.NewObserver[int]("a", nil)
	obs := fake.NewObserver[int]("b", nil)

	watcher.Attach(obs)
	watcher.Attach(other)
	watcher.Attach(obs)
	require.Equal(t, 3, watcher.Len())

	require.Equal(t, 2, watcher.Detach(obs))
	require.Equal(t, []Observer[int]{other}, watcher.Observers())

	require.Equal(t, 0, watcher.Detach(obs))
	require.Equal(t, []Observer[int]{other}, watcher.Observers())

	require.Equal(t, 0, watcher.Detach(fake.NewObserver[int]("unknown", nil)))
	require.Equal(t, 1, watcher.Len())
}

func TestWatcher_DetachNotComparable(t *testing.T) {
	watcher := NewWatcher[int]()

	calls := &fake.Call{}
	first := sliceObserver{calls: calls}
	watcher.Attach(first)

	other := fake.NewObserver[int]("other", calls)
	watcher.Attach(other)

	require.NotPanics(t, func() {
		require.Equal(t, 0, watcher.Detach(sliceObserver{calls: calls}))
	})
	require.NotPanics(t, func() {
		require.Equal(t, 0, watcher.Detach(first))
	})
	require.Equal(t, 2, watcher.Len())

	require.Equal(t, 1, watcher.Detach(other))
	require.Equal(t, 1, watcher.Len())

	require.NoError(t, watcher.Notify(3))
	require.Equal(t, 1, calls.Len())
	require.Equal(t, "slice", calls.Get(0, 0))
}

func TestWatcher_Observers(t *testing.T) {
	watcher := NewWatcher[int]()
	watcher.Attach(fake.NewObserver[int]("a", nil))

	observers := watcher.Observers()
	observers[0] = nil

	require.NotNil(t, watcher.Observers()[0])
}

func TestWatcher_Notify(t *testing.T) {
	watcher := NewWatcher[int]()

	calls := &fake.Call{}
	first := fake.NewObserver[int]("first", calls)
	second := fake.NewObserver[int]("second", calls)
	third := fake.NewObserver[int]("third", calls)

	watcher.Attach(first)
	watcher.Attach(second)
	watcher.Attach(third)
	watcher.Detach(second)

	err := watcher.Notify(42)
	require.NoError(t, err)
	require.Equal(t, 2, calls.Len())
	require.Equal(t, "first", calls.Get(0, 0))
	require.Equal(t, 42, calls.Get(0, 1))
	require.Equal(t, "third", calls.Get(1, 0))
	require.Equal(t, 42, calls.Get(1, 1))
}

func TestWatcher_NotifyEmpty(t *testing.T) {
	watcher := NewWatcher[int]()

	require.NoError(t, watcher.Notify(1))
}

func TestWatcher_NotifyAbort(t *testing.T) {
	watcher := NewWatcher[int]()

	calls := &fake.Call{}
	watcher.Attach(fake.NewObserver[int]("first", calls))
	watcher.Attach(fake.NewBadObserver[int]("bad", calls))
	watcher.Attach(fake.NewObserver[int]("last", calls))

	err := watcher.Notify(1)
	require.EqualError(t, err, fake.Err("observer 1 failed"))
	require.Equal(t, 2, calls.Len())
	require.Equal(t, "bad", calls.Get(1, 0))
}

func TestWatcher_NotifyIsolation(t *testing.T) {
	watcher := NewWatcher[int](WithIsolation())

	calls := &fake.Call{}
	watcher.Attach(fake.NewBadObserver[int]("bad", calls))
	watcher.Attach(fake.NewObserver[int]("good", calls))
	watcher.Attach(fake.NewBadObserver[int]("worse", calls))

	err := watcher.Notify(1)
	require.Error(t, err)
	require.Equal(t, 3, calls.Len())

	merr, ok := err.(*multierror.Error)
	require.True(t, ok)
	require.Len(t, merr.Errors, 2)
	require.EqualError(t, merr.Errors[0], fake.Err("observer 0 failed"))
	require.EqualError(t, merr.Errors[1], fake.Err("observer 2 failed"))
}

func TestWatcher_DetachDuringNotify(t *testing.T) {
	watcher := NewWatcher[int]()

	calls := &fake.Call{}
	last := fake.NewObserver[int]("last", calls)

	watcher.Attach(detachingObserver{watcher: watcher, target: last})
	watcher.Attach(last)

	err := watcher.Notify(1)
	require.NoError(t, err)

	// The notification in progress uses the list as it was when it started.
	require.Equal(t, 1, calls.Len())
	require.Equal(t, 1, watcher.Len())

	calls.Clear()

	err = watcher.Notify(2)
	require.NoError(t, err)
	require.Equal(t, 0, calls.Len())
}

// -----------------------------------------------------------------------------
// Utility functions

type detachingObserver struct {
	watcher *Watcher[int]
	target  Observer[int]
}

func (o detachingObserver) Update(int) error {
	o.watcher.Detach(o.target)
	return nil
}

// sliceObserver has a dynamic type that does not support the equality
// operator.
type sliceObserver struct {
	calls  *fake.Call
	states []int
}

func (o sliceObserver) Update(state int) error {
	o.calls.Add("slice", state)
	return nil
}
