// Package gpu runs float32 matrix multiplication on a compute device,
// overlapping the device with CPU work on the cells its kernel cannot reach.
package gpu

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/born-ml/ndarray/internal/backend/cpu"
	"github.com/born-ml/ndarray/internal/backend/emulator"
	"github.com/born-ml/ndarray/internal/backend/webgpu"
	"github.com/born-ml/ndarray/internal/compute"
	"github.com/born-ml/ndarray/internal/envconfig"
	"github.com/born-ml/ndarray/internal/parallel"
)

// DefaultRowSplit is the row-chunk size used when ND_ROW_SPLIT is unset or zero.
const DefaultRowSplit = 512

// Opener creates a compute device.
type Opener func() (compute.Backend, error)

// Executor owns a compute device and the matmul pipeline compiled for it.
// It is safe for concurrent use; nothing in it changes after the pipeline is built.
type Executor struct {
	backend  compute.Backend
	rowSplit int
	cfg      parallel.Config

	pipelineOnce sync.Once
	pipeline     compute.Pipeline
	pipelineErr  error
}

// Open creates an executor on the device returned by open.
// Failures are reported as compute.ErrNoExecutor.
func Open(open Opener) (*Executor, error) {
	backend, err := open()
	if err != nil {
		if !errors.Is(err, compute.ErrNoExecutor) {
			err = fmt.Errorf("%w: %v", compute.ErrNoExecutor, err)
		}
		return nil, err
	}
	if backend == nil {
		return nil, fmt.Errorf("%w: opener returned no device", compute.ErrNoExecutor)
	}

	rowSplit := int(envconfig.RowSplit())
	if rowSplit <= 0 {
		rowSplit = DefaultRowSplit
	}

	return &Executor{
		backend:  backend,
		rowSplit: rowSplit,
		cfg:      cpu.RowConfig(),
	}, nil
}

// defaultExecutor initializes the process-wide executor at most once. A
// failed initialization is cached and never retried.
var defaultExecutor = sync.OnceValues(func() (*Executor, error) {
	name := envconfig.GPUBackend()
	open, err := openerFor(name)
	if err != nil {
		slog.Debug("gpu executor disabled", "backend", name, "error", err)
		return nil, err
	}

	e, err := Open(open)
	if err != nil {
		logUnavailable(name, err)
		return nil, err
	}
	slog.Debug("gpu executor ready", "device", e.Name(), "row_split", e.rowSplit)
	return e, nil
})

// Default returns the process-wide executor selected by ND_GPU_BACKEND.
func Default() (*Executor, error) {
	return defaultExecutor()
}

// logUnavailable reports a device that failed to open. Hosts that cannot
// run the backend at all are expected and logged at debug level.
func logUnavailable(name string, err error) {
	level := slog.LevelWarn
	if errors.Is(err, errors.ErrUnsupported) {
		level = slog.LevelDebug
	}
	slog.Log(context.Background(), level, "gpu executor unavailable, matmul will run on the cpu", "backend", name, "error", err)
}

func openerFor(name string) (Opener, error) {
	switch name {
	case "webgpu":
		return webgpu.Open, nil
	case "emulator":
		return emulator.Open, nil
	case "none", "off", "cpu":
		return nil, fmt.Errorf("%w: disabled by ND_GPU_BACKEND=%s", compute.ErrNoExecutor, name)
	default:
		return nil, fmt.Errorf("%w: unknown ND_GPU_BACKEND %q", compute.ErrNoExecutor, name)
	}
}

// Name returns the device name.
func (e *Executor) Name() string {
	if e == nil {
		return "none"
	}
	return e.backend.Name()
}

// RowSplit returns the row-chunk size.
func (e *Executor) RowSplit() int {
	return e.rowSplit
}

// matmulPipeline compiles the matmul pipeline on first use.
func (e *Executor) matmulPipeline() (compute.Pipeline, error) {
	e.pipelineOnce.Do(func() {
		e.pipeline, e.pipelineErr = e.backend.CompileMatMul()
		if e.pipelineErr != nil {
			if !errors.Is(e.pipelineErr, compute.ErrNoShader) {
				e.pipelineErr = fmt.Errorf("%w: %v", compute.ErrNoShader, e.pipelineErr)
			}
			slog.Warn("gpu matmul pipeline failed", "device", e.backend.Name(), "error", e.pipelineErr)
		}
	})
	return e.pipeline, e.pipelineErr
}

// Release frees the pipeline and the device. Only for executors created with
// Open; the default executor lives for the whole process. Multiplications
// started after Release fail with ErrNoExecutor.
func (e *Executor) Release() {
	if e == nil {
		return
	}
	e.pipelineOnce.Do(func() {
		e.pipelineErr = fmt.Errorf("%w: executor released", compute.ErrNoExecutor)
	})
	if e.pipeline != nil {
		e.pipeline.Release()
	}
	e.backend.Release()
}
