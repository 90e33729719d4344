// Package cputime reads the CPU time consumed by the calling OS thread and by
// the whole process.
//
// Thread time is only meaningful while the calling goroutine is locked to its
// OS thread with runtime.LockOSThread.
package cputime

import "time"

// Clock reads CPU clocks of the current process.
type Clock struct{}

// Thread returns the CPU time consumed so far by the calling OS thread.
func (Clock) Thread() (time.Duration, error) {
	return Thread()
}

// Process returns the CPU time consumed so far by all threads of the process.
func (Clock) Process() (time.Duration, error) {
	return Process()
}
