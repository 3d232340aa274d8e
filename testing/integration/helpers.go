package integration

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/zoobzio/scopez"
	"github.com/zoobzio/scopez/mdc"
)

// ObservedProvider bundles a provider with the log entries it produced.
type ObservedProvider struct {
	*scopez.Provider
	Logs *observer.ObservedLogs
	IDs  *scopez.IDGenerator
}

// NewObservedProvider creates a provider logging into an in-memory observer.
func NewObservedProvider(t *testing.T) *ObservedProvider {
	t.Helper()
	core, logs := observer.New(zapcore.InfoLevel)
	p, err := scopez.New(scopez.WithLogger(zap.New(core)))
	if err != nil {
		t.Fatalf("scopez.New: %v", err)
	}
	ids := scopez.NewIDGenerator()
	t.Cleanup(ids.Close)
	return &ObservedProvider{Provider: p, Logs: logs, IDs: ids}
}

// ExpectedMDC returns the diagnostic entries an active tc must produce.
func ExpectedMDC(tc scopez.TraceContext) map[string]string {
	want := map[string]string{
		scopez.TraceIDKey: tc.TraceIDString(),
		scopez.SpanIDKey:  tc.SpanID.String(),
	}
	if tc.HasParent() {
		want[scopez.ParentIDKey] = tc.ParentID.String()
	}
	return want
}

// AssertMDC fails the test when the diagnostic map of ctx differs from want.
func AssertMDC(t *testing.T, ctx context.Context, want map[string]string) {
	t.Helper()
	if diff := cmp.Diff(want, mdc.Copy(ctx), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Unexpected diagnostics (-want +have):\n%s", diff)
	}
}
