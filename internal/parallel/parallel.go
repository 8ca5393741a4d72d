// Package parallel provides data-parallel sharding for training workers.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per worker to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 1,
	}
}

// Workers returns the number of shards Shard will use for n items.
func (c Config) Workers(n int) int {
	if n <= 0 {
		return 0
	}
	if !c.Enabled || c.NumWorkers <= 1 {
		return 1
	}
	minChunk := max(c.MinChunkSize, 1)
	w := min(c.NumWorkers, (n+minChunk-1)/minChunk)
	return max(w, 1)
}

// Bounds returns the half-open item range [start, end) assigned to worker w
// out of workers for n items. Ranges are contiguous, cover [0, n) exactly once
// and differ in length by at most one.
func Bounds(n, workers, w int) (start, end int) {
	base, extra := n/workers, n%workers
	start = w*base + min(w, extra)
	end = start + base
	if w < extra {
		end++
	}
	return start, end
}

// Shard splits [0, n) into contiguous ranges and runs f(worker, start, end)
// for each, concurrently when cfg allows it. Worker indices are dense in
// [0, cfg.Workers(n)).
//
// Returns the error of the lowest-indexed worker that failed, or nil.
func Shard(n int, f func(worker, start, end int) error, cfg Config) error {
	workers := cfg.Workers(n)
	if workers == 0 {
		return nil
	}
	if workers == 1 {
		// Sequential fallback.
		return f(0, 0, n)
	}

	errs := make([]error, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start, end := Bounds(n, workers, w)
		wg.Add(1)
		go func(w, s, e int) {
			defer wg.Done()
			errs[w] = f(w, s, e)
		}(w, start, end)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
