// Package report renders the outcome of a benchmark run.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/goodnatureofminers/txbench/internal/txbench/harness"
	"github.com/goodnatureofminers/txbench/internal/txbench/stats"
)

// Report is the final, printable view of a run.
type Report struct {
	Transactions int           `json:"transactions"`
	Workers      int           `json:"workers"`
	Iterations   int           `json:"iterations"`
	MeanCPU      time.Duration `json:"mean_cpu_ns"`
	StdErrCPU    time.Duration `json:"stderr_cpu_ns"`
	WorkerCPU    time.Duration `json:"worker_cpu_ns"`
	ProcessCPU   time.Duration `json:"process_cpu_ns"`
	WallClock    time.Duration `json:"wall_clock_ns"`
}

// New combines a harness result and its summary. Wall clock time is measured
// from the start of the run to finished.
func New(result harness.Result, summary stats.Summary, finished time.Time) Report {
	var wall time.Duration
	if !result.Started.IsZero() && finished.After(result.Started) {
		wall = finished.Sub(result.Started)
	}
	return Report{
		Transactions: result.TransactionCount(),
		Workers:      result.WorkerCount,
		Iterations:   result.Iterations,
		MeanCPU:      summary.Mean,
		StdErrCPU:    summary.StdErr,
		WorkerCPU:    summary.Sum,
		ProcessCPU:   result.ProcessCPU,
		WallClock:    wall,
	}
}

// Throughput is transactions per wall clock second, zero when nothing ran.
func (r Report) Throughput() float64 {
	if r.WallClock <= 0 {
		return 0
	}
	return float64(r.Transactions) / r.WallClock.Seconds()
}

func Write(w io.Writer, r Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	rows := []struct {
		name  string
		value any
	}{
		{"transactions", r.Transactions},
		{"workers", r.Workers},
		{"iterations", r.Iterations},
		{"mean cpu per tx", fmt.Sprintf("%v (± %v)", r.MeanCPU, r.StdErrCPU)},
		{"worker cpu total", r.WorkerCPU},
		{"process cpu total", r.ProcessCPU},
		{"wall clock", r.WallClock},
		{"throughput", fmt.Sprintf("%.1f tx/s", r.Throughput())},
	}
	for _, row := range rows {
		if _, err := fmt.Fprintf(tw, "%s:\t%v\n", row.name, row.value); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}
