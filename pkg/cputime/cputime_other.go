//go:build !linux && !darwin

package cputime

import (
	"fmt"
	"os"
	"time"

	"github.com/shirou/gopsutil/v4/process"
)

// Thread falls back to the process clock where per-thread CPU clocks are not
// available, so samples include time spent by concurrently running workers.
func Thread() (time.Duration, error) {
	return Process()
}

func Process() (time.Duration, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0, fmt.Errorf("open current process: %w", err)
	}
	times, err := p.Times()
	if err != nil {
		return 0, fmt.Errorf("read process cpu times: %w", err)
	}
	return time.Duration((times.User + times.System) * float64(time.Second)), nil
}
