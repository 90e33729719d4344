// Package main runs the transaction signing benchmark.
package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/txbench/internal/metrics"
	"github.com/goodnatureofminers/txbench/internal/txbench/bench"
	"github.com/goodnatureofminers/txbench/internal/txbench/config"
	"github.com/goodnatureofminers/txbench/internal/txbench/harness"
	"github.com/goodnatureofminers/txbench/internal/txbench/report"
	"github.com/goodnatureofminers/txbench/internal/txbench/stats"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

type options struct {
	Config      string `long:"config" env:"TXBENCH_CONFIG" description:"path to the benchmark config file" default:"data/config.yaml"`
	Threads     int    `long:"threads" env:"TXBENCH_THREADS" description:"override testparams.thread_count, 0 selects the physical core count" default:"-1"`
	Iterations  int    `long:"iterations" env:"TXBENCH_ITERATIONS" description:"override testparams.iteration_count" default:"-1"`
	Output      string `long:"output" env:"TXBENCH_OUTPUT" description:"report format" choice:"text" choice:"json" default:"text"`
	Verify      bool   `long:"verify" env:"TXBENCH_VERIFY" description:"sign and verify one transaction before measuring"`
	PrintTx     bool   `long:"print-tx" env:"TXBENCH_PRINT_TX" description:"log the hex of one signed transaction"`
	MetricsAddr string `long:"metrics-addr" env:"TXBENCH_METRICS_ADDR" description:"serve prometheus metrics on this address"`
}

func main() {
	os.Exit(execute(os.Args))
}

// execute returns the process exit status so that deferred cleanup runs on
// every path.
func execute(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	var opts options
	if _, err := flags.ParseArgs(&opts, args); err != nil {
		if flags.WroteHelp(err) {
			return 0
		}
		logger.Error("Failed to parse arguments", zap.Error(err))
		return 2
	}

	if opts.MetricsAddr != "" {
		srv := startMetricsServer(opts.MetricsAddr, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("Failed to shutdown metrics server", zap.Error(err))
			}
		}()
	}

	if err := run(ctx, opts, os.Stdout, logger); err != nil {
		logger.Error("Benchmark failed", zap.Error(err))
		return 1
	}
	return 0
}

func run(ctx context.Context, opts options, out io.Writer, logger *zap.Logger) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return err
	}
	cfg.Override(opts.Threads, opts.Iterations)

	b, err := bench.Prepare(cfg)
	if err != nil {
		return err
	}
	if fee, err := b.Template.Fee(); err != nil {
		logger.Warn("Transaction does not pay a fee", zap.Error(err))
	} else {
		logger.Info("Transaction prepared",
			zap.String("network", string(cfg.Network())),
			zap.Stringer("prev_out", b.Template.PrevOut()),
			zap.Uint64("fee", fee),
		)
	}

	if opts.Verify || opts.PrintTx {
		tx, err := b.SignOne()
		if err != nil {
			return err
		}
		logger.Info("Preflight transaction verified", zap.Stringer("txid", tx.TxHash()))
		if opts.PrintTx {
			raw, err := bench.EncodeHex(tx)
			if err != nil {
				return err
			}
			logger.Info("Preflight transaction", zap.String("hex", raw))
		}
	}

	workers, err := harness.ResolveWorkerCount(cfg.TestParams.ThreadCount, harness.PhysicalCores, logger)
	if err != nil {
		return err
	}
	h, err := harness.New(
		b.Template,
		b.Pipeline,
		metrics.NewHarness(cfg.Network()),
		workers,
		cfg.TestParams.IterationCount,
		logger.Named("harness"),
	)
	if err != nil {
		return err
	}

	result, err := h.Run(ctx)
	if err != nil {
		return err
	}
	r := report.New(result, stats.Aggregate(result.Samples), time.Now())

	if opts.Output == "json" {
		return report.WriteJSON(out, r)
	}
	return report.Write(out, r)
}

func startMetricsServer(addr string, logger *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	s := &http.Server{
		Addr:              addr,
		Handler:           cors.Default().Handler(mux),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
	go func() {
		logger.Info("Starting metrics server", zap.String("addr", addr))
		if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Failed to listen and serve", zap.Error(err))
		}
	}()
	return s
}
