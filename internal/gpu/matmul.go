package gpu

import (
	"fmt"
	"log/slog"

	"github.com/born-ml/ndarray/internal/backend/cpu"
	"github.com/born-ml/ndarray/internal/compute"
	"github.com/born-ml/ndarray/internal/parallel"
	"golang.org/x/sync/errgroup"
)

// MatMul multiplies on the default executor. See Executor.MatMul.
func MatMul(m, k, n int, a, b, out []float32) error {
	e, err := Default()
	if err != nil {
		return err
	}
	return e.MatMul(m, k, n, a, b, out)
}

// MatMul computes out = A @ B for row-major A [m,k], B [k,n], out [m,n].
//
// Operands shorter than their dimensions are a programming error and panic.
// Device failures are returned as compute.ErrNoExecutor or compute.ErrNoShader;
// out is then unspecified.
func (e *Executor) MatMul(m, k, n int, a, b, out []float32) error {
	if e == nil {
		return fmt.Errorf("%w: nil executor", compute.ErrNoExecutor)
	}
	if m < 0 || k < 0 || n < 0 {
		panic(fmt.Sprintf("gpu: negative matmul dimension [%d,%d,%d]", m, k, n))
	}
	if len(a) < m*k || len(b) < k*n || len(out) < m*n {
		panic(fmt.Sprintf("gpu: operands too short for [%d,%d] @ [%d,%d]: len(a)=%d len(b)=%d len(out)=%d",
			m, k, k, n, len(a), len(b), len(out)))
	}
	if m == 0 || n == 0 {
		return nil
	}
	if k == 0 {
		clear(out[:m*n])
		return nil
	}

	pipe, err := e.matmulPipeline()
	if err != nil {
		return err
	}
	// Retired buffers are reclaimed once per call rather than per chunk.
	defer e.backend.Reclaim()

	if m <= e.rowSplit {
		return e.gepp(pipe, m, k, n, a, b, out)
	}

	chunks := (m + e.rowSplit - 1) / e.rowSplit
	slog.Debug("gpu matmul split", "m", m, "k", k, "n", n, "chunks", chunks, "row_split", e.rowSplit)

	var g errgroup.Group
	g.SetLimit(max(e.cfg.NumWorkers, 1))
	for row0 := 0; row0 < m; row0 += e.rowSplit {
		rows := min(e.rowSplit, m-row0)
		g.Go(func() error {
			return e.gepp(pipe, rows, k, n,
				a[row0*k:(row0+rows)*k], b, out[row0*n:(row0+rows)*n])
		})
	}
	return g.Wait()
}

// gepp multiplies one chunk of at most rowSplit rows.
//
// The device computes the full 32x16 tiles while the CPU fills the trailing
// row band and column band. Both bands include the bottom-right corner, so
// those cells are computed twice. The device result is then added, which is
// exact because the device buffer starts zeroed and the kernel never writes
// the band cells.
func (e *Executor) gepp(pipe compute.Pipeline, m, k, n int, a, b, out []float32) error {
	a, b, out = a[:m*k], b[:k*n], out[:m*n]
	dims := compute.Dims{M: uint32(m), K: uint32(k), N: uint32(n)}
	x, y := dims.Grid()

	var (
		fence compute.Fence
		bufC  compute.Buffer
	)
	if x > 0 && y > 0 {
		bufA, bufB, c, err := e.allocate(a, b, m*n)
		if err != nil {
			return err
		}
		defer bufA.Release()
		defer bufB.Release()
		defer c.Release()
		bufC = c

		fence, err = e.backend.Dispatch(pipe, x, y, dims, bufA, bufB, bufC)
		if err != nil {
			return err
		}
	}

	// out may hold stale values from a previous use.
	clear(out)

	rowBand := cpu.Region{Row0: m - m%compute.LocalSizeX, Row1: m, Col0: 0, Col1: n}
	colBand := cpu.Region{Row0: 0, Row1: m, Col0: n - n%compute.LocalSizeY, Col1: n}
	cpu.MatMulRegion(out, a, b, m, k, n, rowBand, e.cfg)
	cpu.MatMulRegion(out, a, b, m, k, n, colBand, e.cfg)

	if fence == nil {
		return nil
	}
	if err := fence.Wait(); err != nil {
		return err
	}

	result := make([]float32, m*n)
	if err := bufC.Read(result); err != nil {
		return err
	}
	parallel.For(m, func(i int) {
		row := out[i*n : (i+1)*n]
		for j, v := range result[i*n : (i+1)*n] {
			row[j] += v
		}
	}, e.cfg)

	return nil
}

// allocate creates the chunk's three device buffers. The two uploads run
// concurrently with each other and, as a pair, with the output allocation.
func (e *Executor) allocate(a, b []float32, outLen int) (bufA, bufB, bufC compute.Buffer, err error) {
	var g errgroup.Group
	g.Go(func() error {
		var inputs errgroup.Group
		inputs.Go(func() (err error) {
			bufA, err = e.backend.Upload(a)
			return err
		})
		inputs.Go(func() (err error) {
			bufB, err = e.backend.Upload(b)
			return err
		})
		return inputs.Wait()
	})
	g.Go(func() (err error) {
		bufC, err = e.backend.Zeros(outLen)
		return err
	})

	if err := g.Wait(); err != nil {
		for _, buf := range []compute.Buffer{bufA, bufB, bufC} {
			if buf != nil {
				buf.Release()
			}
		}
		return nil, nil, nil, err
	}
	return bufA, bufB, bufC, nil
}
