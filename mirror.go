package scopez

import (
	"context"
	"errors"
	"fmt"
)

// ErrConfiguration is returned when a required collaborator is missing.
var ErrConfiguration = errors.New("scopez: invalid configuration")

// MirrorStore decorates a Store, copying the ids of every activated context
// into Diagnostics and restoring the previous entries when the scope closes.
//
// A context without a parent leaves an existing parentId entry in place,
// while traceId and spanId are always overwritten.
type MirrorStore struct {
	delegate Store
	diag     Diagnostics
}

// NewMirrorStore wraps delegate. Both collaborators are required.
func NewMirrorStore(delegate Store, diag Diagnostics) (*MirrorStore, error) {
	if delegate == nil {
		return nil, fmt.Errorf("%w: delegate store is nil", ErrConfiguration)
	}
	if diag == nil {
		return nil, fmt.Errorf("%w: diagnostics is nil", ErrConfiguration)
	}
	return &MirrorStore{delegate: delegate, diag: diag}, nil
}

// Current implements Store.
func (m *MirrorStore) Current(ctx context.Context) (TraceContext, bool) {
	return m.delegate.Current(ctx)
}

// Activate implements Store. When it fails, the entries it already changed
// are put back before the error is returned.
func (m *MirrorStore) Activate(ctx context.Context, tc TraceContext) (Scope, error) {
	var previous snapshot
	for i, key := range mirroredKeys {
		value, ok, err := m.diag.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		previous[i] = entry{value: value, present: ok}
	}

	if err := m.mirror(ctx, tc); err != nil {
		return nil, m.undo(ctx, previous, err)
	}

	inner, err := m.delegate.Activate(ctx, tc)
	if err != nil {
		return nil, m.undo(ctx, previous, err)
	}

	return &mirrorScope{
		ctx:      ctx,
		store:    m,
		inner:    inner,
		previous: previous,
	}, nil
}

// mirror writes the ids of tc, or clears every key when tc is not valid.
func (m *MirrorStore) mirror(ctx context.Context, tc TraceContext) error {
	if !tc.IsValid() {
		for _, key := range mirroredKeys {
			if err := m.diag.Remove(ctx, key); err != nil {
				return err
			}
		}
		return nil
	}

	if err := m.diag.Put(ctx, TraceIDKey, tc.TraceIDString()); err != nil {
		return err
	}
	if err := m.diag.Put(ctx, SpanIDKey, tc.SpanID.String()); err != nil {
		return err
	}
	if tc.HasParent() {
		return m.diag.Put(ctx, ParentIDKey, tc.ParentID.String())
	}
	return nil
}

// undo restores previous after a failed activation. err is returned as is
// unless the restore fails too.
func (m *MirrorStore) undo(ctx context.Context, previous snapshot, err error) error {
	if restoreErr := m.restore(ctx, previous); restoreErr != nil {
		return errors.Join(err, restoreErr)
	}
	return err
}

// restore puts every key back to its snapshot. Each key is restored even if
// an earlier one fails.
func (m *MirrorStore) restore(ctx context.Context, previous snapshot) error {
	var errs []error
	for i, key := range mirroredKeys {
		if err := previous[i].restore(ctx, m.diag, key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// mirrorScope owns the delegate's scope and the diagnostic snapshot taken
// before the activation.
//
//nolint:containedctx // Close takes no arguments, the logical thread lives in ctx
type mirrorScope struct {
	ctx      context.Context
	store    *MirrorStore
	inner    Scope
	previous snapshot
	closed   bool
}

// Close closes the delegate's scope, then restores the diagnostic entries.
// Subsequent calls are no-ops.
func (s *mirrorScope) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	if err := s.inner.Close(); err != nil {
		return err
	}
	return s.store.restore(s.ctx, s.previous)
}
