// Package workerpool provides scoped groups of OS-thread-bound goroutines.
package workerpool

import (
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
)

// PanicError carries a value recovered from a panicking task.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("task panicked: %v", e.Value)
}

// Group spawns tasks and joins them. A Group must not be reused after Wait.
type Group struct {
	wg   sync.WaitGroup
	mu   sync.Mutex
	errs []error
}

// Go runs task on a new goroutine that is locked to its own OS thread for its
// whole life. The lock is never released, so the runtime terminates the
// thread when the task returns and no thread outlives its task.
func (g *Group) Go(task func() error) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		runtime.LockOSThread()
		defer func() {
			if r := recover(); r != nil {
				g.record(&PanicError{Value: r, Stack: debug.Stack()})
			}
		}()
		if err := task(); err != nil {
			g.record(err)
		}
	}()
}

// Wait blocks until every task has returned and reports all task failures.
func (g *Group) Wait() error {
	g.wg.Wait()

	g.mu.Lock()
	defer g.mu.Unlock()
	return errors.Join(g.errs...)
}

func (g *Group) record(err error) {
	g.mu.Lock()
	g.errs = append(g.errs, err)
	g.mu.Unlock()
}
