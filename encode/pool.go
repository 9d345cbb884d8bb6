package encode

import (
	"context"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// runItems applies fn to every item and returns the results in item order.
// With workers > 1 items run on an ants pool; each result slot is written by
// exactly one task. Scheduling stops when ctx is canceled.
func runItems(ctx context.Context, workers int, items []item, fn func(item) itemResult) ([]itemResult, error) {
	results := make([]itemResult, len(items))

	if workers <= 1 {
		for i, it := range items {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results[i] = fn(it)
		}
		return results, ctx.Err()
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i, it := range items {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}

		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			results[i] = fn(it)
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return nil, err
		}
	}
	wg.Wait()

	return results, ctx.Err()
}
