// Package async adapts callback-style calls, where the last argument is a
// completion callback receiving (result, error), into single-result futures.
package async

import (
	"context"
	"sync"
)

// Callback is the completion convention of callback-style APIs. It must be
// invoked exactly once per call.
type Callback[T any] func(result T, err error)

// Future is a deferred single result. It settles exactly once, either
// resolved with a value or rejected with an error.
type Future[T any] struct {
	once  sync.Once
	done  chan struct{}
	value T
	err   error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Resolved returns an already settled future.
func Resolved[T any](value T, err error) *Future[T] {
	f := newFuture[T]()
	f.settle(value, err)
	return f
}

// settle reports whether this call was the one that settled the future.
func (f *Future[T]) settle(value T, err error) bool {
	settled := false
	f.once.Do(func() {
		f.value = value
		f.err = err
		settled = true
		close(f.done)
	})
	return settled
}

// Done is closed once the future has settled.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the future settles or ctx is done. A ctx error does not
// settle the future.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Call invokes fn with a synthetic callback and returns a future mirroring
// the first invocation of that callback. Later invocations are dropped.
func Call[T any](fn func(cb Callback[T])) *Future[T] {
	f := newFuture[T]()
	fn(func(result T, err error) {
		if err != nil {
			var zero T
			f.settle(zero, err)
			return
		}
		f.settle(result, nil)
	})
	return f
}

// Go runs fn on a new goroutine and hands its outcome to cb exactly once.
func Go[T any](fn func() (T, error), cb Callback[T]) {
	go func() {
		cb(fn())
	}()
}
