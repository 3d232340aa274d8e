package mdc

import (
	"context"
	"sort"

	"go.uber.org/zap"
)

// Fields returns the entries of the diagnostic map as zap string fields,
// sorted by key.
func Fields(ctx context.Context) []zap.Field {
	m := from(ctx)
	if m == nil || len(m.entries) == 0 {
		return nil
	}

	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, zap.String(k, m.entries[k]))
	}
	return fields
}

// Logger returns logger annotated with the current diagnostic entries.
// The fields are captured now; later changes to the map are not reflected.
func Logger(ctx context.Context, logger *zap.Logger) *zap.Logger {
	fields := Fields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}
