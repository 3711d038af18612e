// Package envconfig reads ndarray settings from the process environment.
//
// Getters re-read the environment on every call so tests can override
// values with t.Setenv.
package envconfig

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

var (
	// GPUBackend selects the compute backend behind the default GPU executor.
	// Values: webgpu (default), emulator, none.
	GPUBackend = StringWithDefault("ND_GPU_BACKEND", "webgpu")

	// RowSplit is the number of left-operand rows above which a GPU matmul is
	// partitioned into independent row chunks.
	RowSplit = Uint("ND_ROW_SPLIT", 512)

	// GPUMinWork is the smallest m*k*n for which MatMul prefers the GPU.
	GPUMinWork = Uint("ND_GPU_MIN_WORK", 1<<15)

	// NumThreads caps the CPU worker count. Zero means runtime.NumCPU().
	NumThreads = Uint("ND_NUM_THREADS", 0)
)

// LogLevel returns the log level.
// ND_DEBUG: 0/false = INFO (default), 1/true = DEBUG, 2 = TRACE.
func LogLevel() slog.Level {
	level := slog.LevelInfo
	if s := Var("ND_DEBUG"); s != "" {
		if b, _ := strconv.ParseBool(s); b {
			level = slog.LevelDebug
		} else if i, _ := strconv.ParseInt(s, 10, 64); i != 0 {
			level = slog.Level(i * -4)
		}
	}

	return level
}

// Var returns an environment variable stripped of surrounding quotes and whitespace.
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}

// StringWithDefault returns a getter for a lower-cased string variable.
func StringWithDefault(k, defaultValue string) func() string {
	return func() string {
		if s := Var(k); s != "" {
			return strings.ToLower(s)
		}
		return defaultValue
	}
}

// Uint returns a getter for an unsigned integer variable.
func Uint(key string, defaultValue uint) func() uint {
	return func() uint {
		if s := Var(key); s != "" {
			if n, err := strconv.ParseUint(s, 10, 64); err != nil {
				slog.Warn("invalid environment variable, using default", "key", key, "value", s, "default", defaultValue)
			} else {
				return uint(n)
			}
		}
		return defaultValue
	}
}
