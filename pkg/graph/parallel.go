package graph

import (
	"runtime"
	"sync"
)

// forEachIndex runs fn(i) for every i in [0, n) across runtime.NumCPU()
// worker goroutines and blocks until all have returned. Callers must ensure
// distinct calls to fn touch disjoint memory; under that condition no
// synchronization between calls is needed.
func forEachIndex(n int, fn func(i int)) {
	if n == 0 {
		return
	}

	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		if start >= n {
			break
		}
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(i)
			}
		}(start, end)
	}
	wg.Wait()
}
