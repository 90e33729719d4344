//go:build linux || darwin

package cputime

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

func Thread() (time.Duration, error) {
	return read(unix.CLOCK_THREAD_CPUTIME_ID, "thread")
}

func Process() (time.Duration, error) {
	return read(unix.CLOCK_PROCESS_CPUTIME_ID, "process")
}

func read(clock int32, name string) (time.Duration, error) {
	var ts unix.Timespec
	if err := unix.ClockGettime(clock, &ts); err != nil {
		return 0, fmt.Errorf("read %s cpu clock: %w", name, err)
	}
	return time.Duration(ts.Nano()), nil
}
