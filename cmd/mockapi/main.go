// Command mockapi serves a deterministic stand-in for the prediction
// inference API, for local development and demos of the degraded paths.
//
// Usage:
//
//	go run ./cmd/mockapi -addr :8000 -shape flat
//	go run ./cmd/mockapi -fail shape     # answers the dashboard cannot read
//	go run ./cmd/mockapi -delay 3s       # slow answers, to watch stale results get dropped
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/couchcryptid/predict-dashboard-service/internal/observability"
)

func main() {
	addr := flag.String("addr", ":8000", "listen address")
	var opts options
	flag.StringVar(&opts.shape, "shape", shapeNested, "response shape: nested | flat")
	flag.StringVar(&opts.fail, "fail", failNone, "failure mode: error | malformed | shape")
	flag.DurationVar(&opts.delay, "delay", 0, "delay before each prediction")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Parse()

	logger := observability.NewTextLogger(os.Stderr, *logLevel)
	if err := opts.validate(); err != nil {
		logger.Error("invalid flags", "error", err)
		flag.Usage()
		os.Exit(2)
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           newHandler(opts, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("mock inference api starting", "addr", *addr, "shape", opts.shape, "fail", opts.fail, "delay", opts.delay)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
}
