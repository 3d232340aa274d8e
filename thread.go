package scopez

import (
	"context"

	"github.com/oklog/ulid/v2"
)

// threadKeyType is a private type for context keys to avoid collisions.
type threadKeyType string

const (
	threadKey threadKeyType = "scopez"
)

// Thread is the per-logical-thread state behind the thread-local Store.
// It is NOT safe for concurrent use; a logical thread belongs to one
// goroutine at a time.
type Thread struct {
	id      ulid.ULID
	current TraceContext
}

// Begin returns a context carrying a new logical thread with no active
// TraceContext. Any thread already in ctx is shadowed, not modified.
func Begin(ctx context.Context) context.Context {
	// Handle nil context by creating a new one.
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, threadKey, &Thread{id: ulid.Make()})
}

// ThreadFromContext returns the logical thread carried by ctx.
// Returns nil if Begin was never called on ctx or its parents.
func ThreadFromContext(ctx context.Context) *Thread {
	if ctx == nil {
		return nil
	}
	if t, ok := ctx.Value(threadKey).(*Thread); ok {
		return t
	}
	return nil
}

// ID returns the identifier assigned to the thread by Begin.
func (t *Thread) ID() ulid.ULID {
	return t.id
}
