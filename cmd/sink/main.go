package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"revenew/internal/platform/config"
	"revenew/internal/platform/httpserver"
	"revenew/internal/platform/logger"
	"revenew/internal/sink"
)

// main wires the reference backend: record store, HTTP surface, metrics.
// Business logic lives in internal/sink.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store sink.RecordStore
	if cfg.DatabaseURL != "" {
		pg, err := sink.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("connecting record store failed", "error", err)
			os.Exit(1)
		}
		defer pg.Close()
		store = pg
		log.Info("using postgres record store")
	} else {
		store = sink.NewMemoryStore()
		log.Info("using in-memory record store")
	}

	registry := prometheus.NewRegistry()
	handler := sink.NewHandler(store, log, sink.NewMetrics(registry))

	srv := httpserver.New(cfg.Addr, handler.Router())

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	metricsSrv := httpserver.New(cfg.MetricsAddr, metricsMux)

	log.Info("starting revenew sink", "addr", cfg.Addr, "metrics_addr", cfg.MetricsAddr)

	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server error", "error", err)
		}
	}()
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	_ = metricsSrv.Shutdown(shutdownCtx)
}
