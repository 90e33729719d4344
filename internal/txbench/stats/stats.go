// Package stats reduces benchmark timing samples to summary statistics.
package stats

import (
	"math"
	"time"

	moremath "github.com/aclements/go-moremath/stats"
)

// Summary describes a complete set of timing samples.
type Summary struct {
	Count  int           `json:"count"`
	Mean   time.Duration `json:"mean_ns"`
	StdErr time.Duration `json:"stderr_ns"`
	Sum    time.Duration `json:"sum_ns"`
}

// Aggregate computes the mean, the standard error of the mean and the sum of
// samples. Sample order is irrelevant. An empty set yields a zero Summary.
// The mean is derived from the exact integer sum and rounds half up.
func Aggregate(samples []time.Duration) Summary {
	if len(samples) == 0 {
		return Summary{}
	}

	xs := make([]float64, len(samples))
	var sum time.Duration
	for i, s := range samples {
		xs[i] = float64(s)
		sum += s
	}
	sample := moremath.Sample{Xs: xs}

	var stderr float64
	if len(xs) > 1 {
		stderr = sample.StdDev() / math.Sqrt(float64(len(xs)))
	}

	n := time.Duration(len(samples))
	return Summary{
		Count:  len(samples),
		Mean:   (sum + n/2) / n,
		StdErr: time.Duration(math.Round(stderr)),
		Sum:    sum,
	}
}
