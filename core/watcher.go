// Package core defines the observer capabilities and a reusable list of
// observers that a subject can delegate its bookkeeping to.
//
// A subject notifies its observers synchronously, one after each other, in the
// order they were attached. The observer receives a view of the subject of type
// S which is expected to be read-only.
package core

import (
	"reflect"
	"sync"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/xerrors"
)

// Observer is the interface to implement to watch a subject.
type Observer[S any] interface {
	// Update is called by the subject when its state changes.
	Update(subject S) error
}

// Subject provides primitives to attach and detach observers and to notify
// them of a change.
type Subject[S any] interface {
	// Attach appends the observer to the list of observers that will be
	// notified of the next changes.
	Attach(observer Observer[S])

	// Detach removes the observer from the list thus stopping it from
	// receiving new notifications. It is a no-op if the observer is unknown.
	Detach(observer Observer[S])

	// Notify notifies every attached observer.
	Notify() error
}

// Policy defines how the watcher behaves when an observer fails.
type Policy int

const (
	// AbortOnError stops the notification at the first observer that fails.
	AbortOnError Policy = iota

	// IsolateErrors notifies every observer and returns the aggregated
	// failures.
	IsolateErrors
)

// WatcherOption is the type of option to set some fields of a watcher.
type WatcherOption func(*watcherTemplate)

type watcherTemplate struct {
	policy Policy
}

// WithIsolation is an option to keep notifying the remaining observers when
// one of them fails.
func WithIsolation() WatcherOption {
	return func(tmpl *watcherTemplate) {
		tmpl.policy = IsolateErrors
	}
}

// Watcher is an ordered list of observers. The same observer can be attached
// multiple times in which case it is notified as many times.
//
// Observers are compared with the equality operator. An observer whose dynamic
// type is not comparable can be attached and notified, but never matches on
// detach. Pointers are the usual choice.
type Watcher[S any] struct {
	sync.RWMutex

	observers []Observer[S]
	policy    Policy
}

// NewWatcher creates a new empty watcher.
func NewWatcher[S any](opts ...WatcherOption) *Watcher[S] {
	tmpl := watcherTemplate{
		policy: AbortOnError,
	}

	for _, opt := range opts {
		opt(&tmpl)
	}

	return &Watcher[S]{
		observers: make([]Observer[S], 0),
		policy:    tmpl.policy,
	}
}

// Attach appends the observer at the end of the list.
func (w *Watcher[S]) Attach(observer Observer[S]) {
	w.Lock()
	w.observers = append(w.observers, observer)
	w.Unlock()
}

// Detach removes every occurrence of the observer. It returns the number of
// entries removed.
func (w *Watcher[S]) Detach(observer Observer[S]) int {
	w.Lock()
	defer w.Unlock()

	kept := w.observers[:0]
	for _, obs := range w.observers {
		if !sameObserver(obs, observer) {
			kept = append(kept, obs)
		}
	}

	removed := len(w.observers) - len(kept)

	// Clear the tail so that detached observers are not retained.
	for i := len(kept); i < len(w.observers); i++ {
		w.observers[i] = nil
	}

	w.observers = kept

	return removed
}

// sameObserver compares two observers without panicking on dynamic types that
// do not support the equality operator.
func sameObserver[S any](a, b Observer[S]) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}

	if ta != nil && !ta.Comparable() {
		return false
	}

	return a == b
}

// Len returns the number of entries in the list.
func (w *Watcher[S]) Len() int {
	w.RLock()
	defer w.RUnlock()

	return len(w.observers)
}

// Observers returns a copy of the list in registration order.
func (w *Watcher[S]) Observers() []Observer[S] {
	w.RLock()
	defer w.RUnlock()

	observers := make([]Observer[S], len(w.observers))
	copy(observers, w.observers)

	return observers
}

// Notify calls the observers one after each other with the given subject. The
// list is copied beforehand so that an observer can attach or detach during the
// notification without affecting it.
func (w *Watcher[S]) Notify(subject S) error {
	var errs error

	for i, obs := range w.Observers() {
		err := obs.Update(subject)
		if err == nil {
			continue
		}

		if w.policy == AbortOnError {
			return xerrors.Errorf("observer %d failed: %v", i, err)
		}

		errs = multierror.Append(errs, xerrors.Errorf("observer %d failed: %v", i, err))
	}

	return errs
}
