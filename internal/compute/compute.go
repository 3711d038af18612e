// Package compute defines the capability interface a GPU matmul engine needs
// from a device: host-visible buffers, one compiled tiled-matmul pipeline and
// asynchronous dispatch with a completion fence.
//
// Implementations:
//   - backend/webgpu: WebGPU via go-webgpu
//   - backend/emulator: goroutine-backed device with identical tile coverage
package compute

import (
	"errors"
	"fmt"
)

// Tile sizes of the matmul kernel. A workgroup at grid position (x, y) writes
// rows [x*LocalSizeX, (x+1)*LocalSizeX) and columns [y*LocalSizeY, (y+1)*LocalSizeY).
const (
	LocalSizeX = 32
	LocalSizeY = 16
)

var (
	// ErrNoExecutor reports that no usable compute device is available, or that
	// the device failed while executing a request.
	ErrNoExecutor = errors.New("no gpu executor available")

	// ErrNoShader reports that the matmul pipeline could not be built.
	ErrNoShader = errors.New("matmul shader unavailable")
)

// Dims are the operand dimensions of one dispatch: A is [M,K], B is [K,N], C is [M,N].
type Dims struct {
	M, K, N uint32
}

// Grid returns the workgroup counts that cover only full tiles.
// Rows >= M - M%LocalSizeX and columns >= N - N%LocalSizeY are never reached.
func (d Dims) Grid() (x, y uint32) {
	return d.M / LocalSizeX, d.N / LocalSizeY
}

func (d Dims) String() string {
	return fmt.Sprintf("[%d,%d]@[%d,%d]", d.M, d.K, d.K, d.N)
}

// Backend is a compute device with a submission queue.
// All methods must be safe for concurrent use.
type Backend interface {
	// Name identifies the device for logs.
	Name() string

	// Upload creates a host-visible storage buffer holding a copy of data.
	Upload(data []float32) (Buffer, error)

	// Zeros creates a host-visible storage buffer of n zeroed elements.
	Zeros(n int) (Buffer, error)

	// CompileMatMul builds the tiled matmul pipeline.
	CompileMatMul() (Pipeline, error)

	// Dispatch submits the matmul over a (x, y) workgroup grid without waiting
	// for it. Only c is written.
	Dispatch(p Pipeline, x, y uint32, dims Dims, a, b, c Buffer) (Fence, error)

	// Reclaim destroys resources retired by Buffer.Release whose work is done.
	Reclaim()

	// Release tears the device down.
	Release()
}

// Buffer is a device buffer of float32 elements.
type Buffer interface {
	// Len returns the element count.
	Len() int

	// Read copies the contents of an output buffer into dst. It is valid only
	// after the fence of the dispatch writing the buffer has resolved; devices
	// may fail reads of input buffers.
	Read(dst []float32) error

	// Release retires the buffer. Memory is returned at the next Reclaim.
	Release()
}

// Pipeline is a compiled compute pipeline. It is immutable once built.
type Pipeline interface {
	Release()
}

// Fence resolves when a dispatched command finishes on the device.
type Fence interface {
	Wait() error
}
