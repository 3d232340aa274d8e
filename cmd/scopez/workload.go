package main

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/zoobzio/scopez"
)

type workload struct {
	provider *scopez.Provider
	ids      *scopez.IDGenerator
	threads  int
	depth    int
	detach   bool
}

// run starts one logical thread per goroutine and waits for all of them.
func (w *workload) run(ctx context.Context) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for i := 0; i < w.threads; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			tctx := w.provider.Begin(ctx)
			if err := w.descend(tctx, w.ids.NewRoot(), 1); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			w.provider.Logger(tctx).Debug("thread finished", zap.Int("n", n))
		}(i)
	}
	wg.Wait()
	return errors.Join(errs...)
}

func (w *workload) descend(ctx context.Context, tc scopez.TraceContext, level int) error {
	store := w.provider.Store()
	return scopez.Within(ctx, store, tc, func(ctx context.Context) error {
		w.provider.Logger(ctx).Info("entered span", zap.Int("level", level))
		if err := ctx.Err(); err != nil {
			return err
		}

		if level < w.depth {
			return w.descend(ctx, w.ids.NewChild(tc), level+1)
		}

		if w.detach {
			return scopez.Within(ctx, store, scopez.None, func(ctx context.Context) error {
				w.provider.Logger(ctx).Info("detached from trace")
				return nil
			})
		}
		return nil
	})
}
