//go:build !windows && !linux && !darwin

package webgpu

import (
	"errors"
	"fmt"

	"github.com/born-ml/ndarray/internal/compute"
)

// Open reports that the WebGPU bindings are not built for this platform.
func Open() (compute.Backend, error) {
	return nil, fmt.Errorf("%w: webgpu: %w on this platform", compute.ErrNoExecutor, errors.ErrUnsupported)
}

// IsAvailable reports whether a WebGPU adapter can be acquired.
func IsAvailable() bool {
	return false
}
