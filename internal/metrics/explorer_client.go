package metrics

import (
	"time"

	"github.com/goodnatureofminers/txbench/internal/txbench/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	explorerRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "txbench",
		Subsystem: "explorer_client",
		Name:      "operations_total",
		Help:      "Count of block explorer API operations.",
	}, []string{"operation", "network", "status"})
	explorerRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "txbench",
		Subsystem: "explorer_client",
		Name:      "operation_duration_seconds",
		Help:      "Duration of block explorer API operations.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 15, 20, 30},
	}, []string{"operation", "network", "status"})
)

// ExplorerClient tracks metrics for calls to the block explorer API.
type ExplorerClient struct {
	network model.Network
}

// NewExplorerClient constructs a metrics collector for explorer calls.
func NewExplorerClient(network model.Network) *ExplorerClient {
	if network == "" {
		network = "unknown"
	}
	return &ExplorerClient{network: network}
}

// Observe records a single API call outcome and duration.
func (m ExplorerClient) Observe(operation string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	explorerRequestsTotal.WithLabelValues(operation, string(m.network), status).Inc()
	explorerRequestDuration.WithLabelValues(operation, string(m.network), status).Observe(time.Since(started).Seconds())
}
