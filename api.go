// Package scopez propagates the active trace context through a logical
// thread of execution and mirrors it into a diagnostic log context.
//
// scopez does not create, sample or export spans. A tracer hands it a
// TraceContext, and scopez makes that context current for the duration of a
// Scope so that any code on the same logical thread can ask which trace it
// is in, and every log line written meanwhile can carry the trace ids.
//
// Core Components:.
//   - Store: reads and activates the current TraceContext.
//   - Scope: returned by Activate, Close restores the previous state.
//   - MirrorStore: decorates a Store and mirrors activations into Diagnostics.
//   - Provider: the composition root publishing the decorated Store.
//
// Basic Usage:.
//
//	provider, err := scopez.New(scopez.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//
//	ctx = provider.Begin(ctx)
//	scope, err := provider.Store().Activate(ctx, tc)
//	if err != nil {
//		return err
//	}
//	defer scope.Close()
//
//	provider.Logger(ctx).Info("handling request") // carries traceId and spanId
//
// Logical Threads:.
//
// Go has no thread-local storage, so a logical thread is a context.Context
// carrying per-thread state attached by Begin. Contexts derived from it share
// the thread. A goroutine that needs its own thread calls Begin again.
//
// Thread Safety:.
//
// Store implementations and Provider are safe for concurrent use. The state
// of a single logical thread is NOT: activate and close its scopes from one
// goroutine only, in last-in-first-out order.
package scopez

// Diagnostic keys written by MirrorStore.
const (
	TraceIDKey  = "traceId"
	SpanIDKey   = "spanId"
	ParentIDKey = "parentId"
)

// mirroredKeys lists the keys snapshotted and restored by every activation.
var mirroredKeys = [...]string{TraceIDKey, SpanIDKey, ParentIDKey}
