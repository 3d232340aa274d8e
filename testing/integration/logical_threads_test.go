package integration

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/zoobzio/scopez"
)

// TestConcurrentLogicalThreads verifies that goroutines with their own
// logical thread never observe each other's context or diagnostics.
func TestConcurrentLogicalThreads(t *testing.T) {
	p := NewObservedProvider(t)
	store := p.Store()

	var wg sync.WaitGroup
	threadCount := 20
	depth := 5

	for i := 0; i < threadCount; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			ctx := p.Begin(context.Background())

			var descend func(ctx context.Context, tc scopez.TraceContext, level int) error
			descend = func(ctx context.Context, tc scopez.TraceContext, level int) error {
				return scopez.Within(ctx, store, tc, func(ctx context.Context) error {
					AssertMDC(t, ctx, ExpectedMDC(tc))
					if got, _ := store.Current(ctx); got != tc {
						return fmt.Errorf("thread %d level %d: expected %v, got %v", idx, level, tc, got)
					}

					// Yield so other threads interleave.
					runtime.Gosched()

					if level < depth {
						if err := descend(ctx, p.IDs.NewChild(tc), level+1); err != nil {
							return err
						}
					}

					// Inner scopes must have restored this level.
					AssertMDC(t, ctx, ExpectedMDC(tc))
					return nil
				})
			}

			if err := descend(ctx, p.IDs.NewRoot(), 1); err != nil {
				t.Error(err)
			}
			AssertMDC(t, ctx, map[string]string{})
		}(i)
	}

	wg.Wait()
}

// TestLogCorrelationAcrossGoroutines verifies that every log line carries the
// ids of the context active on its own logical thread.
func TestLogCorrelationAcrossGoroutines(t *testing.T) {
	p := NewObservedProvider(t)
	store := p.Store()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		expected = make(map[string]scopez.TraceContext)
	)
	workers := 10

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			ctx := p.Begin(context.Background())
			tc := p.IDs.NewRoot()
			name := fmt.Sprintf("worker-%d", idx)

			mu.Lock()
			expected[name] = tc
			mu.Unlock()

			err := scopez.Within(ctx, store, tc, func(ctx context.Context) error {
				time.Sleep(time.Millisecond)
				p.Logger(ctx).Info(name)
				return nil
			})
			if err != nil {
				t.Error(err)
			}
		}(i)
	}

	wg.Wait()

	entries := p.Logs.All()
	if len(entries) != workers {
		t.Fatalf("Expected %d log entries, got %d", workers, len(entries))
	}
	for _, entry := range entries {
		tc := expected[entry.Message]
		fields := entry.ContextMap()
		if fields[scopez.TraceIDKey] != tc.TraceIDString() {
			t.Errorf("%s: expected traceId %s, got %v", entry.Message, tc.TraceIDString(), fields[scopez.TraceIDKey])
		}
		if fields[scopez.SpanIDKey] != tc.SpanID.String() {
			t.Errorf("%s: expected spanId %s, got %v", entry.Message, tc.SpanID, fields[scopez.SpanIDKey])
		}
		if _, ok := fields[scopez.ParentIDKey]; ok {
			t.Errorf("%s: unexpected parentId on a root span", entry.Message)
		}
	}
}

// TestStaleParentSurvivesChildlessActivation pins the parentId behavior: a
// context without a parent does not clear a parentId left by an outer scope.
func TestStaleParentSurvivesChildlessActivation(t *testing.T) {
	p := NewObservedProvider(t)
	store := p.Store()
	ctx := p.Begin(context.Background())

	outer := p.IDs.NewChild(p.IDs.NewRoot())
	unrelated := p.IDs.NewRoot()

	err := scopez.Within(ctx, store, outer, func(ctx context.Context) error {
		return scopez.Within(ctx, store, unrelated, func(ctx context.Context) error {
			want := ExpectedMDC(unrelated)
			want[scopez.ParentIDKey] = outer.ParentID.String()
			AssertMDC(t, ctx, want)
			return nil
		})
	})
	if err != nil {
		t.Fatal(err)
	}
	AssertMDC(t, ctx, map[string]string{})
}
