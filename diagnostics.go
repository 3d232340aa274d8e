package scopez

import "context"

//go:generate mockgen -destination=mock_diagnostics_test.go -package=scopez . Diagnostics

// Diagnostics is a per-logical-thread key/value side-channel read by log
// infrastructure, such as the mdc package. Errors from any method are
// returned to the caller of Activate or Close unchanged.
type Diagnostics interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// entry is the state of one diagnostic key at snapshot time.
type entry struct {
	value   string
	present bool
}

func (e entry) restore(ctx context.Context, diag Diagnostics, key string) error {
	if e.present {
		return diag.Put(ctx, key, e.value)
	}
	return diag.Remove(ctx, key)
}

// snapshot holds one entry per mirrored key, in mirroredKeys order.
type snapshot [len(mirroredKeys)]entry
