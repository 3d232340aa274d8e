package scopez

import (
	"context"
	"errors"
)

// ErrNoThread is returned when a context carries no logical thread.
var ErrNoThread = errors.New("scopez: context has no logical thread, call Begin first")

// Store holds the current TraceContext of each logical thread.
type Store interface {
	// Current returns the most recently activated context that has not been
	// closed yet. The boolean is false when nothing is active.
	Current(ctx context.Context) (TraceContext, bool)

	// Activate makes tc current until the returned Scope is closed.
	// Activating an invalid context, such as None, clears the current one.
	Activate(ctx context.Context, tc TraceContext) (Scope, error)
}

// Scope marks an activation as live. Close restores the state that was
// current before the activation. Scopes must be closed in reverse order of
// creation, on the goroutine that owns the logical thread.
type Scope interface {
	Close() error
}

// ScopeFunc adapts an ordinary function to a Scope.
type ScopeFunc func() error

// Close calls f.
func (f ScopeFunc) Close() error {
	return f()
}

// NewThreadLocalStore returns the base Store, keeping the current context
// in the logical thread attached by Begin.
func NewThreadLocalStore() Store {
	return threadLocalStore{}
}

type threadLocalStore struct{}

func (threadLocalStore) Current(ctx context.Context) (TraceContext, bool) {
	t := ThreadFromContext(ctx)
	if t == nil || !t.current.IsValid() {
		return None, false
	}
	return t.current, true
}

func (threadLocalStore) Activate(ctx context.Context, tc TraceContext) (Scope, error) {
	t := ThreadFromContext(ctx)
	if t == nil {
		return nil, ErrNoThread
	}
	if !tc.IsValid() {
		tc = None
	}

	previous := t.current
	t.current = tc
	return &threadScope{thread: t, previous: previous}, nil
}

// threadScope restores the slot of its thread on Close.
type threadScope struct {
	thread   *Thread
	previous TraceContext
	closed   bool
}

// Close restores the previous context. Subsequent calls are no-ops.
func (s *threadScope) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.thread.current = s.previous
	return nil
}

// Within activates tc on store, runs fn and closes the scope on every exit
// path. A close error is joined with the error returned by fn.
func Within(ctx context.Context, store Store, tc TraceContext, fn func(context.Context) error) (err error) {
	scope, err := store.Activate(ctx, tc)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := scope.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()
	return fn(ctx)
}
