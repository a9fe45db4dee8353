// Command graphkernel serves the graph kernel REST and streaming API.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/persistorai/graphkernel/internal/api"
	"github.com/persistorai/graphkernel/internal/config"
	"github.com/persistorai/graphkernel/internal/service"
	"github.com/persistorai/graphkernel/internal/ws"
)

const (
	shutdownTimeout = 15 * time.Second
	statsCacheTTL   = 5 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "graphkernel: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := newLogger(cfg.LogLevel)
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := initTracing(ctx, cfg.OTelEndpoint, log)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer shutdownTracing(context.Background())

	b, err := openBackend(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer b.close()

	stats := service.NewStatsService(b.stats, statsCacheTTL, log)
	hub := ws.NewHub(cfg.PathMaxStreams, log)

	handler := api.NewRouter(ctx, &api.RouterDeps{
		Log:     log,
		Storage: b.pinger,
		Hub:     hub,
		Nodes:   service.NewNodeService(b.nodes, stats, log),
		Edges:   service.NewEdgeService(b.edges, stats, log),
		Bulk:    service.NewBulkService(b.bulk, stats, log),
		Graph: service.NewGraphService(b.graph, service.Limits{
			MaxDepth:   cfg.PathMaxDepth,
			MaxResults: cfg.PathMaxResults,
			Timeout:    cfg.PathSearchTimeout,
		}, log),
		Stats:       stats,
		CORSOrigins: cfg.CORSOrigins,
		Version:     config.Version,
		Backend:     cfg.Backend,
	})

	// Path streams are long-lived, so there is no write timeout.
	apiServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())

	metricsServer := &http.Server{
		Addr:              cfg.MetricsAddr(),
		Handler:           metricsMux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.WithFields(logrus.Fields{
			"addr":    apiServer.Addr,
			"backend": cfg.Backend,
			"version": config.Version,
		}).Info("graphkernel listening")

		return serve(apiServer)
	})

	g.Go(func() error {
		log.WithField("addr", metricsServer.Addr).Info("metrics listening")

		return serve(metricsServer)
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		hub.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return errors.Join(apiServer.Shutdown(shutdownCtx), metricsServer.Shutdown(shutdownCtx))
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server: %w", err)
	}

	log.Info("graphkernel stopped")

	return nil
}

func serve(srv *http.Server) error {
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listening on %s: %w", srv.Addr, err)
	}

	return nil
}

func newLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}

	log.SetLevel(lvl)

	return log
}
