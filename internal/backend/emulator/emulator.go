// Package emulator implements compute.Backend on goroutines.
//
// The emulated device honours the same contract as the WebGPU kernel: a
// dispatch writes exactly the full 32x16 tiles of its grid, runs
// asynchronously behind a fence, and released buffers stay allocated until
// Reclaim. It backs ND_GPU_BACKEND=emulator and the engine tests.
package emulator

import (
	"fmt"
	"sync"

	"github.com/born-ml/ndarray/internal/backend/cpu"
	"github.com/born-ml/ndarray/internal/compute"
	"github.com/born-ml/ndarray/internal/parallel"
)

// Stats counts device activity.
type Stats struct {
	Uploads    int // Buffers created from host data.
	Zeroed     int // Zero-initialized buffers.
	Compiles   int // CompileMatMul calls that succeeded.
	Dispatches int // Submitted dispatches.
	Retired    int // Released buffers awaiting Reclaim.
	Reclaimed  int // Buffers destroyed by Reclaim.
	Reclaims   int // Reclaim calls.
}

// Live returns the number of buffers not yet destroyed.
func (s Stats) Live() int {
	return s.Uploads + s.Zeroed - s.Reclaimed
}

// Option configures an emulated device.
type Option func(*Backend)

// WithoutShader makes CompileMatMul fail, as a device whose driver rejects
// the kernel would.
func WithoutShader() Option {
	return func(b *Backend) { b.noShader = true }
}

// Backend is an emulated compute device.
type Backend struct {
	cfg      parallel.Config
	noShader bool

	mu       sync.Mutex
	retired  []*buffer
	stats    Stats
	released bool
}

var _ compute.Backend = (*Backend)(nil)

// New creates an emulated device.
func New(opts ...Option) *Backend {
	b := &Backend{cfg: cpu.RowConfig()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Open creates an emulated device as a compute.Backend.
func Open() (compute.Backend, error) {
	return New(), nil
}

// Name returns the device name.
func (b *Backend) Name() string {
	return "emulator"
}

// Stats returns a snapshot of the activity counters.
func (b *Backend) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := b.stats
	s.Retired = len(b.retired)
	return s
}

// Upload copies data into a new buffer.
func (b *Backend) Upload(data []float32) (compute.Buffer, error) {
	buf, err := b.alloc(len(data), func(s *Stats) { s.Uploads++ })
	if err != nil {
		return nil, err
	}
	copy(buf.data, data)
	return buf, nil
}

// Zeros allocates a zeroed buffer of n elements.
func (b *Backend) Zeros(n int) (compute.Buffer, error) {
	return b.alloc(n, func(s *Stats) { s.Zeroed++ })
}

func (b *Backend) alloc(n int, count func(*Stats)) (*buffer, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: emulator: invalid buffer size %d", compute.ErrNoExecutor, n)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.released {
		return nil, fmt.Errorf("%w: emulator: device released", compute.ErrNoExecutor)
	}
	count(&b.stats)
	return &buffer{owner: b, data: make([]float32, n)}, nil
}

// CompileMatMul returns the emulated pipeline.
func (b *Backend) CompileMatMul() (compute.Pipeline, error) {
	if b.noShader {
		return nil, fmt.Errorf("%w: emulator: shader disabled", compute.ErrNoShader)
	}

	b.mu.Lock()
	b.stats.Compiles++
	b.mu.Unlock()
	return pipeline{}, nil
}

// Dispatch computes the full tiles of the (x, y) grid on a background goroutine.
func (b *Backend) Dispatch(p compute.Pipeline, x, y uint32, dims compute.Dims, a, bb, c compute.Buffer) (compute.Fence, error) {
	if _, ok := p.(pipeline); !ok {
		return nil, fmt.Errorf("%w: emulator: foreign pipeline %T", compute.ErrNoShader, p)
	}
	ab, okA := a.(*buffer)
	bbuf, okB := bb.(*buffer)
	cb, okC := c.(*buffer)
	if !okA || !okB || !okC {
		return nil, fmt.Errorf("%w: emulator: foreign buffer", compute.ErrNoExecutor)
	}

	m, k, n := int(dims.M), int(dims.K), int(dims.N)
	if ab.Len() < m*k || bbuf.Len() < k*n || cb.Len() < m*n {
		return nil, fmt.Errorf("%w: emulator: buffers too small for %s", compute.ErrNoExecutor, dims)
	}
	rows, cols := int(x)*compute.LocalSizeX, int(y)*compute.LocalSizeY
	if rows > m || cols > n {
		return nil, fmt.Errorf("%w: emulator: grid %dx%d exceeds %s", compute.ErrNoExecutor, x, y, dims)
	}

	b.mu.Lock()
	b.stats.Dispatches++
	b.mu.Unlock()

	f := &fence{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		cpu.MatMulRegion(cb.data, ab.data, bbuf.data, m, k, n,
			cpu.Region{Row0: 0, Row1: rows, Col0: 0, Col1: cols}, b.cfg)
	}()
	return f, nil
}

// Reclaim drops every retired buffer.
func (b *Backend) Reclaim() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, buf := range b.retired {
		buf.data = nil
	}
	b.stats.Reclaimed += len(b.retired)
	b.stats.Reclaims++
	b.retired = b.retired[:0]
}

// Release marks the device unusable.
func (b *Backend) Release() {
	b.Reclaim()

	b.mu.Lock()
	b.released = true
	b.mu.Unlock()
}

func (b *Backend) retire(buf *buffer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.retired = append(b.retired, buf)
}

type buffer struct {
	owner *Backend
	data  []float32
	once  sync.Once
}

func (buf *buffer) Len() int {
	return len(buf.data)
}

func (buf *buffer) Read(dst []float32) error {
	if len(dst) > len(buf.data) {
		return fmt.Errorf("%w: emulator: read of %d elements from buffer of %d", compute.ErrNoExecutor, len(dst), len(buf.data))
	}
	copy(dst, buf.data)
	return nil
}

func (buf *buffer) Release() {
	buf.once.Do(func() { buf.owner.retire(buf) })
}

type pipeline struct{}

func (pipeline) Release() {}

type fence struct {
	done chan struct{}
}

func (f *fence) Wait() error {
	<-f.done
	return nil
}
