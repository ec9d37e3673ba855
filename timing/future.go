package timing

import (
	"context"
	"fmt"

	"github.com/mlebl/timekit/format"
)

// Future is the eventual result of an asynchronous computation. A Future is
// created with Go, Resolved or Failed, completes exactly once, and can be
// observed by any number of goroutines via Wait or Done.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Go starts fn on its own goroutine and returns a Future that completes with
// fn's results.
func Go[T any](fn func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.val, f.err = fn()
	}()
	return f
}

// Resolved returns an already-completed Future holding v.
func Resolved[T any](v T) *Future[T] {
	f := &Future[T]{done: make(chan struct{}), val: v}
	close(f.done)
	return f
}

// Failed returns an already-completed Future holding err.
func Failed[T any](err error) *Future[T] {
	f := &Future[T]{done: make(chan struct{}), err: err}
	close(f.done)
	return f
}

// Done returns a channel that is closed when the computation has completed.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the computation completes or ctx is canceled, whichever
// comes first. Cancellation abandons the wait, not the computation.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// onComplete schedules fn to run on its own goroutine once the future has
// completed. The outcome passed to fn is shared, never copied back, so
// observers cannot alter what other consumers see.
func (f *Future[T]) onComplete(fn func(T, error)) {
	go func() {
		<-f.done
		fn(f.val, f.err)
	}()
}

// TimeFuture obtains a future from produce and reports the elapsed
// nanoseconds once it completes. The measured interval starts before produce
// runs, so the cost of constructing the future is included.
//
// The same future is returned immediately, without blocking, and its outcome
// is not altered or delayed beyond goroutine scheduling. The reporter is
// invoked exactly once per call, on completion, whether the future succeeds
// or fails. That differs deliberately from Time, which skips the report when
// the body fails.
func TimeFuture[T any](report Reporter, produce func() *Future[T]) *Future[T] {
	start := active.Nanos()
	f := produce()
	f.onComplete(func(T, error) {
		report(active.Nanos() - start)
	})
	return f
}

// TimeFuturePretty is TimeFuture with the elapsed duration rendered through
// format.Pretty before being handed to the reporter.
func TimeFuturePretty[T any](report StringReporter, produce func() *Future[T]) *Future[T] {
	return TimeFuture(func(ns int64) { report(format.Pretty(ns)) }, produce)
}

// TimeFuturePrettyFormat is TimeFuturePretty with the rendered duration
// substituted into template at its %s placeholder.
func TimeFuturePrettyFormat[T any](template string, report StringReporter, produce func() *Future[T]) *Future[T] {
	return TimeFuture(func(ns int64) { report(fmt.Sprintf(template, format.Pretty(ns))) }, produce)
}
