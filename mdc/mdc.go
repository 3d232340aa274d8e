// Package mdc is a mapped diagnostic context: a per-logical-thread map of
// strings that loggers attach to every record.
//
// The map travels in a context.Context. Attach starts a fresh map for a new
// logical thread; Put and Remove mutate it in place, so every context
// derived from the attached one sees the change. A map must only be used
// from one goroutine at a time.
package mdc

import (
	"context"
	"errors"
)

// ErrNotAttached is returned when a context carries no diagnostic map.
var ErrNotAttached = errors.New("mdc: no diagnostic map attached to context")

type mapKeyType struct{}

var mapKey = mapKeyType{}

type diagnosticMap struct {
	entries map[string]string
}

// Attach returns a context carrying a new, empty diagnostic map.
func Attach(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, mapKey, &diagnosticMap{entries: make(map[string]string)})
}

func from(ctx context.Context) *diagnosticMap {
	if ctx == nil {
		return nil
	}
	m, _ := ctx.Value(mapKey).(*diagnosticMap)
	return m
}

// Attached reports whether ctx carries a diagnostic map.
func Attached(ctx context.Context) bool {
	return from(ctx) != nil
}

// Get returns the value stored under key.
func Get(ctx context.Context, key string) (string, bool) {
	m := from(ctx)
	if m == nil {
		return "", false
	}
	value, ok := m.entries[key]
	return value, ok
}

// Put stores value under key.
func Put(ctx context.Context, key, value string) error {
	m := from(ctx)
	if m == nil {
		return ErrNotAttached
	}
	m.entries[key] = value
	return nil
}

// Remove deletes key. Removing a missing key is not an error.
func Remove(ctx context.Context, key string) error {
	m := from(ctx)
	if m == nil {
		return ErrNotAttached
	}
	delete(m.entries, key)
	return nil
}

// Copy returns a copy of every entry, or nil if no map is attached.
func Copy(ctx context.Context) map[string]string {
	m := from(ctx)
	if m == nil {
		return nil
	}
	result := make(map[string]string, len(m.entries))
	for k, v := range m.entries {
		result[k] = v
	}
	return result
}

// Channel exposes the diagnostic map of a context as the side-channel
// consumed by scopez.MirrorStore.
type Channel struct{}

// Get returns ErrNotAttached when ctx has no map.
func (Channel) Get(ctx context.Context, key string) (string, bool, error) {
	m := from(ctx)
	if m == nil {
		return "", false, ErrNotAttached
	}
	value, ok := m.entries[key]
	return value, ok, nil
}

// Put stores value under key.
func (Channel) Put(ctx context.Context, key, value string) error {
	return Put(ctx, key, value)
}

// Remove deletes key.
func (Channel) Remove(ctx context.Context, key string) error {
	return Remove(ctx, key)
}
