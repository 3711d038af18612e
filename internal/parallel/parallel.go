// Package parallel provides the goroutine fan-out helpers shared by the CPU
// matmul kernels and the GPU engine's remainder computation.
package parallel

import (
	"runtime"
	"sync"

	"github.com/born-ml/ndarray/internal/envconfig"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns defaults based on CPU count, capped by ND_NUM_THREADS.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	if limit := int(envconfig.NumThreads()); limit > 0 {
		n = min(n, limit)
	}
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 64, // Typical cache line aware chunk.
	}
}

// WithMinChunk returns a copy of cfg using the given minimum chunk size.
// Coarse work items (whole output rows, whole batches) want a small minimum.
func (cfg Config) WithMinChunk(size int) Config {
	cfg.MinChunkSize = max(size, 1)
	return cfg
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is too small.
func For(n int, f func(i int), cfg Config) {
	if !cfg.Enabled || n < cfg.MinChunkSize || cfg.NumWorkers < 2 {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	var wg sync.WaitGroup
	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize)

	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// ForBatch iterates the batch*rows grid of a batched matmul.
func ForBatch(batch, rows int, f func(b, r int), cfg Config) {
	n := batch * rows
	if rows == 0 {
		return
	}
	For(n, func(k int) {
		f(k/rows, k%rows)
	}, cfg)
}
