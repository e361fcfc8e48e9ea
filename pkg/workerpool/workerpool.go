// Package workerpool provides simple concurrent processing utilities.
package workerpool

import (
	"context"
	"sync"
)

// Process runs a worker pool over the provided work items, invoking process for each.
// If process returns an error, the pool cancels the context and stops further work.
func Process[T any](
	ctx context.Context,
	workerCount int,
	items []T,
	process func(context.Context, T) error,
	onCancel func(),
) error {
	if workerCount <= 0 {
		workerCount = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	tasks := make(chan T, workerCount)
	errs := make(chan error, workerCount)
	wg := sync.WaitGroup{}
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case item, ok := <-tasks:
					if !ok {
						return
					}
					if err := process(ctx, item); err != nil {
						select {
						case errs <- err:
						default:
						}
						if onCancel != nil {
							onCancel()
						}
						cancel()
						return
					}
				}
			}
		}()
	}

	go func() {
		for _, item := range items {
			select {
			case <-ctx.Done():
				close(tasks)
				return
			case tasks <- item:
			}
		}
		close(tasks)
	}()

	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			return err
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return nil
}

// Result is the outcome of one item processed by Map.
type Result[R any] struct {
	Value R
	Err   error
}

type indexed[T any] struct {
	idx  int
	item T
}

// Map applies fn to every item with at most workerCount concurrent calls and returns the results
// in input order. Per-item errors are collected in the results and do not stop the pool; only
// cancellation of ctx does.
func Map[T, R any](
	ctx context.Context,
	workerCount int,
	items []T,
	fn func(context.Context, T) (R, error),
) ([]Result[R], error) {
	results := make([]Result[R], len(items))
	work := make([]indexed[T], len(items))
	for i, item := range items {
		work[i] = indexed[T]{idx: i, item: item}
	}

	err := Process(ctx, workerCount, work, func(ctx context.Context, w indexed[T]) error {
		value, err := fn(ctx, w.item)
		results[w.idx] = Result[R]{Value: value, Err: err}
		return nil
	}, nil)
	if err != nil {
		return results, err
	}
	return results, nil
}
