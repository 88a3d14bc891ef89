package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Tap30/beacon-go/internal/collector"
	"github.com/Tap30/beacon-go/internal/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Log, os.Stdout)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	schema, err := collector.NewSchema()
	if err != nil {
		logger.Error("failed to load message schema", "error", err)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	sink := collector.NewMemorySink()
	handler := collector.NewHandler(collector.Config{
		APIKey:       cfg.Collector.APIKey,
		APIKeyHeader: cfg.Collector.APIKeyHeader,
		ProjectID:    cfg.Collector.ProjectID,
		MaxBodyBytes: cfg.Collector.MaxBodyBytes,
		RateLimit:    cfg.Collector.RateLimit,
		Burst:        cfg.Collector.Burst,
	}, schema, sink, collector.NewMetrics(reg), logger)

	srv := &http.Server{
		Addr:              cfg.Collector.Addr,
		Handler:           collector.NewRouter(handler, reg),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("Collector starting", "addr", cfg.Collector.Addr, "endpoint", "/v1/batch")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("listen failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down collector...", "records", sink.Len())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Collector forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("Collector exiting")
}
