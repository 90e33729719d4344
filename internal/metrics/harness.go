// Package metrics exposes application metrics collectors.
package metrics

import (
	"strconv"
	"time"

	"github.com/goodnatureofminers/txbench/internal/txbench/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	harnessWavesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "txbench",
		Subsystem: "harness",
		Name:      "waves_total",
		Help:      "Count of completed worker waves.",
	}, []string{"network", "workers", "status"})

	harnessWaveDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "txbench",
		Subsystem: "harness",
		Name:      "wave_duration_seconds",
		Help:      "Wall clock duration of a worker wave from spawn to join.",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 16), // 100µs..3.2s
	}, []string{"network", "workers", "status"})

	harnessSampleDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "txbench",
		Subsystem: "harness",
		Name:      "sample_cpu_seconds",
		Help:      "Thread CPU time spent building and signing one transaction.",
		Buckets:   prometheus.ExponentialBuckets(0.00001, 2, 14), // 10µs..82ms
	}, []string{"network"})
)

// Harness tracks metrics for benchmark waves and their samples.
type Harness struct {
	network model.Network
}

// NewHarness constructs a Harness collector.
func NewHarness(network model.Network) *Harness {
	if network == "" {
		network = "unknown"
	}
	return &Harness{network: network}
}

// ObserveWave records the outcome and duration of one wave.
func (m Harness) ObserveWave(workers int, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	w := strconv.Itoa(workers)

	harnessWavesTotal.WithLabelValues(string(m.network), w, status).Inc()
	harnessWaveDuration.WithLabelValues(string(m.network), w, status).Observe(time.Since(started).Seconds())
}

func (m Harness) ObserveSample(sample time.Duration) {
	harnessSampleDuration.WithLabelValues(string(m.network)).Observe(sample.Seconds())
}
