// Package harness runs the concurrent transaction signing benchmark.
package harness

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/goodnatureofminers/txbench/internal/txbench/model"
	"github.com/goodnatureofminers/txbench/pkg/cputime"
	"github.com/goodnatureofminers/txbench/pkg/workerpool"
	"go.uber.org/zap"
)

// Harness runs iterations sequentially. Every iteration spawns a wave of
// workerCount workers, each building and signing its own transaction, and
// does not return before all of them have reported and terminated.
type Harness struct {
	logger      *zap.Logger
	builder     TransactionBuilder
	signer      TransactionSigner
	clock       CPUClock
	metrics     Metrics
	workerCount int
	iterations  int
	state       atomic.Int32
}

func New(
	builder TransactionBuilder,
	signer TransactionSigner,
	metrics Metrics,
	workerCount int,
	iterations int,
	logger *zap.Logger,
) (*Harness, error) {
	if builder == nil {
		return nil, errors.New("harness transaction builder is required")
	}
	if signer == nil {
		return nil, errors.New("harness transaction signer is required")
	}
	if metrics == nil {
		return nil, errors.New("harness metrics is required")
	}
	if workerCount < 1 {
		return nil, fmt.Errorf("%w: worker count %d must be at least 1", model.ErrConcurrency, workerCount)
	}
	if iterations < 0 {
		return nil, fmt.Errorf("%w: iteration count %d is negative", model.ErrConfig, iterations)
	}

	return &Harness{
		logger: logger.With(
			zap.Int("workers", workerCount),
			zap.Int("iterations", iterations),
		),
		builder:     builder,
		signer:      signer,
		clock:       cputime.Clock{},
		metrics:     metrics,
		workerCount: workerCount,
		iterations:  iterations,
	}, nil
}

func (h *Harness) State() State {
	return State(h.state.Load())
}

// Run executes all iterations. Any failure aborts the run and no partial
// result is returned. The context is only consulted between waves; a wave
// that has started always runs to completion.
func (h *Harness) Run(ctx context.Context) (Result, error) {
	started := time.Now()
	cpuStarted, err := h.clock.Process()
	if err != nil {
		return Result{}, h.fail(-1, fmt.Errorf("%w: %w", model.ErrConcurrency, err))
	}

	samples := make([]time.Duration, 0, h.workerCount*h.iterations)
	for i := 0; i < h.iterations; i++ {
		if err := ctx.Err(); err != nil {
			return Result{}, h.fail(i, err)
		}

		waveStarted := time.Now()
		wave, err := h.runWave(i)
		h.metrics.ObserveWave(h.workerCount, err, waveStarted)
		if err != nil {
			return Result{}, h.fail(i, fmt.Errorf("iteration %d: %w", i, err))
		}
		samples = append(samples, wave...)
		h.transition(StateIdle, i)
	}

	cpuFinished, err := h.clock.Process()
	if err != nil {
		return Result{}, h.fail(-1, fmt.Errorf("%w: %w", model.ErrConcurrency, err))
	}
	h.transition(StateCompleted, h.iterations)
	h.logger.Info("benchmark completed",
		zap.Int("samples", len(samples)),
		zap.Duration("elapsed", time.Since(started)),
	)

	return Result{
		Samples:     samples,
		WorkerCount: h.workerCount,
		Iterations:  h.iterations,
		ProcessCPU:  cpuFinished - cpuStarted,
		Started:     started,
	}, nil
}

func (h *Harness) runWave(iteration int) ([]time.Duration, error) {
	h.transition(StateRunning, iteration)

	results := make(chan time.Duration, h.workerCount)
	group := &workerpool.Group{}
	for w := 0; w < h.workerCount; w++ {
		group.Go(func() error {
			sample, err := h.cycle()
			if err != nil {
				return fmt.Errorf("worker %d: %w", w, err)
			}
			results <- sample
			return nil
		})
	}

	joined := make(chan error, 1)
	go func() {
		err := group.Wait()
		close(results)
		joined <- err
	}()

	h.transition(StateDraining, iteration)
	wave := make([]time.Duration, 0, h.workerCount)
	for len(wave) < h.workerCount {
		sample, ok := <-results
		if !ok {
			break
		}
		wave = append(wave, sample)
		h.metrics.ObserveSample(sample)
	}
	joinErr := <-joined

	var panicErr *workerpool.PanicError
	switch {
	case errors.As(joinErr, &panicErr):
		return nil, fmt.Errorf("%w: %w", model.ErrConcurrency, joinErr)
	case joinErr != nil:
		return nil, joinErr
	case len(wave) != h.workerCount:
		return nil, fmt.Errorf("%w: sample channel closed after %d of %d samples", model.ErrConcurrency, len(wave), h.workerCount)
	}
	if _, extra := <-results; extra {
		return nil, fmt.Errorf("%w: more than %d samples sent", model.ErrConcurrency, h.workerCount)
	}
	return wave, nil
}

// cycle builds and signs one transaction and returns the CPU time the
// calling thread spent on it.
func (h *Harness) cycle() (time.Duration, error) {
	started, err := h.clock.Thread()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", model.ErrConcurrency, err)
	}

	tx := h.builder.Build()
	if err := h.signer.SignInput(tx, 0); err != nil {
		return 0, err
	}

	finished, err := h.clock.Thread()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", model.ErrConcurrency, err)
	}
	if finished < started {
		return 0, fmt.Errorf("%w: thread cpu clock went backwards from %v to %v", model.ErrConcurrency, started, finished)
	}
	return finished - started, nil
}

func (h *Harness) transition(s State, iteration int) {
	h.state.Store(int32(s))
	h.logger.Debug("harness state", zap.Stringer("state", s), zap.Int("iteration", iteration))
}

func (h *Harness) fail(iteration int, err error) error {
	h.transition(StateFatal, iteration)
	h.logger.Error("benchmark failed", zap.Int("iteration", iteration), zap.Error(err))
	return err
}
