package cputime

import (
	"crypto/sha256"
	"runtime"
	"testing"
)

func burn() {
	sum := sha256.Sum256(nil)
	for i := 0; i < 200_000; i++ {
		sum = sha256.Sum256(sum[:])
	}
	_ = sum
}

func TestThread_Advances(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	before, err := Thread()
	if err != nil {
		t.Fatalf("Thread() unexpected error: %v", err)
	}
	burn()
	after, err := Thread()
	if err != nil {
		t.Fatalf("Thread() unexpected error: %v", err)
	}
	if after <= before {
		t.Fatalf("thread cpu time did not advance: before %v, after %v", before, after)
	}
}

func TestProcess_NotBelowThread(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	burn()
	var c Clock
	thread, err := c.Thread()
	if err != nil {
		t.Fatalf("Thread() unexpected error: %v", err)
	}
	process, err := c.Process()
	if err != nil {
		t.Fatalf("Process() unexpected error: %v", err)
	}
	if process < thread {
		t.Fatalf("process cpu time %v is below thread cpu time %v", process, thread)
	}
}
