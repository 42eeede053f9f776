package solver

import (
	"context"
	"runtime"
	"sync"
)

// Parallel runs n independent jobs across a bounded worker pool and
// returns the first error encountered. Jobs must not share mutable
// state; each simulation in a sweep owns its parameters and system.
func Parallel(ctx context.Context, n, workers int, job func(ctx context.Context, idx int) error) error {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}

	errs := make([]error, n)
	idxCh := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range idxCh {
				errs[idx] = job(ctx, idx)
			}
		}()
	}

	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			close(idxCh)
			wg.Wait()
			return ctx.Err()
		case idxCh <- i:
		}
	}
	close(idxCh)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
