package harness

import "time"

// Result holds everything a finished run produced.
type Result struct {
	Samples     []time.Duration
	WorkerCount int
	Iterations  int
	// ProcessCPU is the CPU time consumed by the whole process during the run.
	ProcessCPU time.Duration
	Started    time.Time
}

// TransactionCount is the number of transactions built and signed.
func (r Result) TransactionCount() int {
	return r.WorkerCount * r.Iterations
}
