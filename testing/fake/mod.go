// Package fake provides fake implementations for interfaces commonly used in
// the tests of the module.
//
// The implementations can be configured to return errors when it is needed by
// the unit test and they record the calls they receive.
package fake

import (
	"sync"

	"golang.org/x/xerrors"
)

// fakeErr is the error returned by the fakes configured to fail.
var fakeErr = xerrors.New("fake error")

// GetError returns the fake error.
func GetError() error {
	return fakeErr
}

// Err returns the message of an error wrapping the fake error with the given
// prefix.
func Err(msg string) string {
	return msg + ": " + fakeErr.Error()
}

// Call is a tool to keep track of a function calls.
type Call struct {
	sync.Mutex
	calls [][]interface{}
}

// Get returns the nth call ith parameter.
func (c *Call) Get(n, i int) interface{} {
	c.Lock()
	defer c.Unlock()

	return c.calls[n][i]
}

// Len returns the number of calls.
func (c *Call) Len() int {
	c.Lock()
	defer c.Unlock()

	return len(c.calls)
}

// Add adds a call to the list.
func (c *Call) Add(args ...interface{}) {
	c.Lock()
	c.calls = append(c.calls, args)
	c.Unlock()
}

// Clear removes the recorded calls.
func (c *Call) Clear() {
	c.Lock()
	c.calls = nil
	c.Unlock()
}

// Observer is a fake implementation of core.Observer. Each update is recorded
// in the call tracker as (name, subject).
//
// - implements core.Observer
type Observer[S any] struct {
	name  string
	calls *Call
	err   error
}

// NewObserver returns an observer that records its updates.
func NewObserver[S any](name string, calls *Call) *Observer[S] {
	return &Observer[S]{
		name:  name,
		calls: calls,
	}
}

// NewBadObserver returns an observer that records its updates and then fails.
func NewBadObserver[S any](name string, calls *Call) *Observer[S] {
	return &Observer[S]{
		name:  name,
		calls: calls,
		err:   fakeErr,
	}
}

// Update implements core.Observer.
func (o *Observer[S]) Update(subject S) error {
	if o.calls != nil {
		o.calls.Add(o.name, subject)
	}

	return o.err
}
