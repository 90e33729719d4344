package harness

import (
	"fmt"
	"runtime"

	"github.com/goodnatureofminers/txbench/internal/txbench/model"
	"github.com/shirou/gopsutil/v4/cpu"
	"go.uber.org/zap"
)

// CoreCounter reports the number of physical cores of the host.
type CoreCounter func() (int, error)

func PhysicalCores() (int, error) {
	return cpu.Counts(false)
}

// ResolveWorkerCount returns configured when it is positive. Zero selects the
// physical core count, falling back to the logical CPU count when the
// physical count cannot be determined. The result is always at least one.
func ResolveWorkerCount(configured int, cores CoreCounter, logger *zap.Logger) (int, error) {
	if configured < 0 {
		return 0, fmt.Errorf("%w: thread count %d is negative", model.ErrConfig, configured)
	}
	if configured > 0 {
		return configured, nil
	}

	n, err := cores()
	if err != nil || n < 1 {
		fallback := runtime.NumCPU()
		logger.Warn("physical core count unavailable, using logical cpu count",
			zap.Int("physical", n),
			zap.Int("logical", fallback),
			zap.Error(err),
		)
		n = fallback
	}
	return max(n, 1), nil
}
