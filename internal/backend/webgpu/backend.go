//go:build windows || linux || darwin

// Package webgpu implements compute.Backend on WebGPU.
// Uses go-webgpu (github.com/go-webgpu/webgpu) for zero-CGO WebGPU bindings;
// the wgpu-native library is loaded at runtime.
package webgpu

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"github.com/born-ml/ndarray/internal/compute"
	"github.com/go-webgpu/webgpu/wgpu"
)

// Backend owns one WebGPU device and its queue.
type Backend struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	adapterInfo *wgpu.AdapterInfoGo

	// Buffers released by finished calls, destroyed on Reclaim.
	retired []*wgpu.Buffer
	mu      sync.Mutex
}

var _ compute.Backend = (*Backend)(nil)

// Open creates a WebGPU device as a compute.Backend.
func Open() (compute.Backend, error) {
	b, err := New()
	if err != nil {
		return nil, err
	}
	return b, nil
}

// New creates a WebGPU backend on the high-performance adapter.
//
// Returns an error wrapping compute.ErrNoExecutor if WebGPU is not available.
// When the native library cannot be loaded the error also wraps
// errors.ErrUnsupported.
func New() (backend *Backend, err error) {
	// The Windows loader panics when wgpu_native.dll is missing.
	defer func() {
		if r := recover(); r != nil {
			backend = nil
			err = fmt.Errorf("%w: webgpu: native library not available: %v: %w", compute.ErrNoExecutor, r, errors.ErrUnsupported)
		}
	}()

	instance, err := wgpu.CreateInstance(nil)
	if err != nil {
		return nil, fmt.Errorf("%w: webgpu: %v: %w", compute.ErrNoExecutor, err, errors.ErrUnsupported)
	}

	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		instance.Release()
		return nil, fmt.Errorf("%w: webgpu: failed to request adapter: %v", compute.ErrNoExecutor, err)
	}

	// Missing adapter info only affects Name.
	adapterInfo, _ := adapter.GetInfo()

	device, err := adapter.RequestDevice(nil)
	if err != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("%w: webgpu: failed to request device: %v", compute.ErrNoExecutor, err)
	}

	queue := device.GetQueue()
	if queue == nil {
		device.Release()
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("%w: webgpu: failed to get queue", compute.ErrNoExecutor)
	}

	return &Backend{
		instance:    instance,
		adapter:     adapter,
		device:      device,
		queue:       queue,
		adapterInfo: adapterInfo,
	}, nil
}

// IsAvailable checks if a WebGPU adapter can be acquired on this system.
func IsAvailable() (available bool) {
	defer func() {
		if r := recover(); r != nil {
			available = false
		}
	}()

	instance, err := wgpu.CreateInstance(nil)
	if err != nil {
		return false
	}
	defer instance.Release()

	adapter, err := instance.RequestAdapter(nil)
	if err != nil {
		return false
	}
	adapter.Release()

	return true
}

// Name returns the backend name.
func (b *Backend) Name() string {
	if b.adapterInfo != nil && b.adapterInfo.Device != "" {
		return fmt.Sprintf("WebGPU (%s %s)", b.adapterInfo.Vendor, b.adapterInfo.Device)
	}
	return "WebGPU"
}

// Upload creates a storage buffer initialized with data.
func (b *Backend) Upload(data []float32) (compute.Buffer, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: webgpu: empty upload", compute.ErrNoExecutor)
	}

	var buf *buffer
	err := guard(compute.ErrNoExecutor, "upload", func() {
		buf = &buffer{owner: b, n: len(data)}
		buf.gpu = b.createMapped(uint64(len(data))*4, func(dst []float32) {
			copy(dst, data)
		})
	})
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// Zeros creates a zero-filled storage buffer of n elements.
func (b *Backend) Zeros(n int) (compute.Buffer, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: webgpu: invalid buffer size %d", compute.ErrNoExecutor, n)
	}

	var buf *buffer
	err := guard(compute.ErrNoExecutor, "zeros", func() {
		buf = &buffer{owner: b, n: n}
		buf.gpu = b.createMapped(uint64(n)*4, func(dst []float32) {
			clear(dst)
		})
	})
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// createMapped creates a host-writable storage buffer and lets init fill it
// before it is handed to the device.
func (b *Backend) createMapped(size uint64, init func(dst []float32)) *wgpu.Buffer {
	buffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst,
		Size:             size,
		MappedAtCreation: wgpu.True,
	})
	if buffer == nil {
		panic(fmt.Sprintf("CreateBuffer returned nil for %d bytes", size))
	}

	mappedPtr := buffer.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	init(unsafe.Slice((*float32)(mappedPtr), size/4))
	buffer.Unmap()

	return buffer
}

// createUniformBuffer creates a uniform buffer with proper alignment.
// Uniform buffers require 16-byte alignment for struct fields.
func (b *Backend) createUniformBuffer(data []byte) *wgpu.Buffer {
	size := uint64(len(data))
	alignedSize := (size + 15) &^ 15

	buffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		Size:             alignedSize,
		MappedAtCreation: wgpu.True,
	})
	if buffer == nil {
		panic("CreateBuffer returned nil for uniform buffer")
	}

	mappedPtr := buffer.GetMappedRange(0, alignedSize)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	copy(unsafe.Slice((*byte)(mappedPtr), alignedSize), data)
	buffer.Unmap()

	return buffer
}

// CompileMatMul compiles the tiled matmul shader and builds its pipeline.
func (b *Backend) CompileMatMul() (compute.Pipeline, error) {
	var p *pipeline
	err := guard(compute.ErrNoShader, "compile matmul", func() {
		shader := b.device.CreateShaderModuleWGSL(matmulShader)
		if shader == nil {
			panic("shader module is nil")
		}
		cp := b.device.CreateComputePipelineSimple(nil, shader, "main")
		if cp == nil {
			shader.Release()
			panic("compute pipeline is nil")
		}
		p = &pipeline{shader: shader, pipeline: cp}
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Dispatch records the matmul pass plus a copy of C into a staging buffer and
// submits both without waiting.
func (b *Backend) Dispatch(p compute.Pipeline, x, y uint32, dims compute.Dims, a, other, c compute.Buffer) (compute.Fence, error) {
	pipe, ok := p.(*pipeline)
	if !ok {
		return nil, fmt.Errorf("%w: webgpu: foreign pipeline %T", compute.ErrNoShader, p)
	}
	bufA, okA := a.(*buffer)
	bufB, okB := other.(*buffer)
	bufC, okC := c.(*buffer)
	if !okA || !okB || !okC {
		return nil, fmt.Errorf("%w: webgpu: foreign buffer", compute.ErrNoExecutor)
	}

	// Params: M, K, N as u32, padded to 16 bytes.
	params := make([]byte, 16)
	binary.LittleEndian.PutUint32(params[0:4], dims.M)
	binary.LittleEndian.PutUint32(params[4:8], dims.K)
	binary.LittleEndian.PutUint32(params[8:12], dims.N)

	var f *fence
	err := guard(compute.ErrNoExecutor, "dispatch", func() {
		bufferParams := b.createUniformBuffer(params)
		defer b.retire(bufferParams)

		resultSize := uint64(bufC.n) * 4
		bindGroupLayout := pipe.pipeline.GetBindGroupLayout(0)
		defer bindGroupLayout.Release()
		bindGroup := b.device.CreateBindGroupSimple(bindGroupLayout, []wgpu.BindGroupEntry{
			wgpu.BufferBindingEntry(0, bufA.gpu, 0, uint64(bufA.n)*4),
			wgpu.BufferBindingEntry(1, bufB.gpu, 0, uint64(bufB.n)*4),
			wgpu.BufferBindingEntry(2, bufC.gpu, 0, resultSize),
			wgpu.BufferBindingEntry(3, bufferParams, 0, 16),
		})
		defer bindGroup.Release()

		staging := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
			Size:  resultSize,
		})
		if staging == nil {
			panic("CreateBuffer returned nil for staging buffer")
		}
		// Without a fence nothing else will retire staging.
		defer func() {
			if f == nil {
				b.retire(staging)
			}
		}()

		encoder := b.device.CreateCommandEncoder(nil)
		defer encoder.Release()
		computePass := encoder.BeginComputePass(nil)
		computePass.SetPipeline(pipe.pipeline)
		computePass.SetBindGroup(0, bindGroup, nil)
		computePass.DispatchWorkgroups(x, y, 1)
		computePass.End()
		computePass.Release()
		encoder.CopyBufferToBuffer(bufC.gpu, 0, staging, 0, resultSize)

		cmdBuffer := encoder.Finish(nil)
		defer cmdBuffer.Release()
		b.queue.Submit(cmdBuffer)

		f = &fence{owner: b, staging: staging, size: resultSize, out: bufC}
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Reclaim releases every retired buffer.
func (b *Backend) Reclaim() {
	b.mu.Lock()
	retired := b.retired
	b.retired = nil
	b.mu.Unlock()

	for _, buf := range retired {
		buf.Release()
	}
}

// Release releases all WebGPU resources.
func (b *Backend) Release() {
	b.Reclaim()

	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}

func (b *Backend) retire(buf *wgpu.Buffer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.retired = append(b.retired, buf)
}

// guard runs fn and converts a panic from the native layer into kind.
func guard(kind error, op string, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: webgpu: %s: %v", kind, op, r)
		}
	}()
	fn()
	return nil
}

type buffer struct {
	owner *Backend
	gpu   *wgpu.Buffer
	n     int

	// host holds the readback of an output buffer once its fence resolved.
	// Input buffers never get one.
	host []float32
	once sync.Once
}

func (buf *buffer) Len() int {
	return buf.n
}

func (buf *buffer) Read(dst []float32) error {
	if len(dst) > buf.n {
		return fmt.Errorf("%w: webgpu: read of %d elements from buffer of %d", compute.ErrNoExecutor, len(dst), buf.n)
	}
	if buf.host == nil {
		return fmt.Errorf("%w: webgpu: buffer has no resolved readback", compute.ErrNoExecutor)
	}
	copy(dst, buf.host)
	return nil
}

func (buf *buffer) Release() {
	buf.once.Do(func() {
		buf.host = nil
		buf.owner.retire(buf.gpu)
	})
}

type pipeline struct {
	shader   *wgpu.ShaderModule
	pipeline *wgpu.ComputePipeline
}

func (p *pipeline) Release() {
	p.pipeline.Release()
	p.shader.Release()
}

// fence resolves once the staging copy recorded after the dispatch can be mapped.
type fence struct {
	owner   *Backend
	staging *wgpu.Buffer
	size    uint64
	out     *buffer

	once sync.Once
	err  error
}

func (f *fence) Wait() error {
	f.once.Do(func() { f.err = f.wait() })
	return f.err
}

func (f *fence) wait() (err error) {
	defer f.owner.retire(f.staging)
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: webgpu: wait: %v", compute.ErrNoExecutor, r)
		}
	}()

	// MapAsync blocks until the submitted pass and copy have completed.
	if err := f.staging.MapAsync(f.owner.device, wgpu.MapModeRead, 0, f.size); err != nil {
		return fmt.Errorf("%w: webgpu: map readback: %v", compute.ErrNoExecutor, err)
	}
	mappedPtr := f.staging.GetMappedRange(0, f.size)
	host := make([]float32, f.out.n)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	copy(host, unsafe.Slice((*float32)(mappedPtr), f.out.n))
	f.staging.Unmap()
	f.out.host = host

	return nil
}
