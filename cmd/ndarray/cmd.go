package main

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/born-ml/ndarray/internal/envconfig"
	"github.com/born-ml/ndarray/tensor"
)

const version = "v0.1.0-dev"

// NewCLI builds the root command.
func NewCLI() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ndarray",
		Short:         "n-dimensional arrays with a hybrid CPU/GPU matmul",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: envconfig.LogLevel(),
			})))
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ndarray %s\n", version)
		},
	}

	probeCmd := &cobra.Command{
		Use:   "probe",
		Short: "Check the GPU executor against the CPU path",
		Args:  cobra.ExactArgs(0),
		RunE:  ProbeHandler,
	}
	probeCmd.Flags().String("backend", "", "Override ND_GPU_BACKEND (webgpu, emulator, none)")
	probeCmd.Flags().IntP("rows", "m", 1000, "Rows of the left operand")
	probeCmd.Flags().IntP("inner", "k", 64, "Shared dimension")
	probeCmd.Flags().IntP("cols", "n", 48, "Columns of the right operand")

	rootCmd.AddCommand(versionCmd, probeCmd)
	return rootCmd
}

// probeResult is one line of the probe report.
type probeResult struct {
	path    string
	device  string
	elapsed time.Duration
	maxDiff float64
	err     error
}

// ProbeHandler multiplies random float32 matrices on the selected executor
// and on the CPU and reports timings and the largest difference.
func ProbeHandler(cmd *cobra.Command, _ []string) error {
	if backend, _ := cmd.Flags().GetString("backend"); backend != "" {
		if err := os.Setenv("ND_GPU_BACKEND", backend); err != nil {
			return err
		}
	}
	m, _ := cmd.Flags().GetInt("rows")
	k, _ := cmd.Flags().GetInt("inner")
	n, _ := cmd.Flags().GetInt("cols")

	a, err := randomArray(m, k)
	if err != nil {
		return err
	}
	b, err := randomArray(k, n)
	if err != nil {
		return err
	}

	want := new(tensor.Array[float32])
	start := time.Now()
	if err := tensor.MatMulCPU(a, b, want); err != nil {
		return err
	}
	results := []probeResult{{path: "cpu", device: "cpu", elapsed: time.Since(start)}}

	gpuResult := probeResult{path: "gpu"}
	exec, err := tensor.DefaultExecutor()
	if err == nil {
		gpuResult.device = exec.Name()
		slog.Debug("probe", "device", exec.Name(), "row_split", exec.RowSplit(), "m", m, "k", k, "n", n)

		got := new(tensor.Array[float32])
		start = time.Now()
		err = tensor.MatMulOn(exec, a, b, got)
		gpuResult.elapsed = time.Since(start)
		if err == nil {
			gpuResult.maxDiff = maxAbsDiff(want.Data(), got.Data())
		}
	}
	gpuResult.err = err
	results = append(results, gpuResult)

	renderProbe(cmd.OutOrStdout(), fmt.Sprintf("[%d,%d]@[%d,%d]", m, k, k, n), results)
	return gpuResult.err
}

func randomArray(rows, cols int) (*tensor.Array[float32], error) {
	values := make([]float32, rows*cols)
	for i := range values {
		values[i] = rand.Float32()*2 - 1
	}
	return tensor.NewWithValues([]int{rows, cols}, values)
}

func maxAbsDiff(a, b []float32) float64 {
	var d float64
	for i := range a {
		d = math.Max(d, math.Abs(float64(a[i]-b[i])))
	}
	return d
}

func renderProbe(w io.Writer, shape string, results []probeResult) {
	data := make([][]string, 0, len(results))
	for _, r := range results {
		status, elapsed, diff := "ok", r.elapsed.Round(time.Microsecond).String(), fmt.Sprintf("%.2e", r.maxDiff)
		if r.err != nil {
			status, elapsed, diff = r.err.Error(), "-", "-"
		}
		if r.device == "" {
			r.device = "none"
		}
		data = append(data, []string{r.path, r.device, shape, elapsed, diff, status})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"PATH", "DEVICE", "SHAPE", "TIME", "MAX DIFF", "STATUS"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()
}
