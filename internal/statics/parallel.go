package statics

import "sync"

// Chunks returns how many contiguous chunks ParallelFor will split [0, n)
// into for the given settings, together with the chunk size.
func Chunks(n, minChunk, workers int) (count, size int) {
	if n <= 0 {
		return 1, 0
	}
	if minChunk < 1 {
		minChunk = 1
	}
	if n <= minChunk || workers <= 1 {
		return 1, n
	}

	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	size = (n + workers - 1) / workers
	count = (n + size - 1) / size
	return count, size
}

// ParallelFor runs fn over [0, n) in contiguous chunks, one goroutine per
// chunk. Chunk k always covers lower indices than chunk k+1, so callers can
// merge per-chunk results in chunk order to recover sequential order.
func ParallelFor(n, minChunk, workers int, fn func(chunk, start, end int)) {
	count, size := Chunks(n, minChunk, workers)
	if count == 1 {
		fn(0, 0, n)
		return
	}

	var wg sync.WaitGroup
	wg.Add(count)

	for w := 0; w < count; w++ {
		start := w * size
		end := start + size
		if end > n {
			end = n
		}

		go func(k, s, e int) {
			defer wg.Done()
			fn(k, s, e)
		}(w, start, end)
	}

	wg.Wait()
}
