// Command outlookd serves rendered SPC outlook maps over HTTP and runs the
// advisory feed monitor in the background.
package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/joho/godotenv"

	httpadapter "github.com/couchcryptid/storm-outlook-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/storm-outlook-service/internal/adapter/kafka"
	"github.com/couchcryptid/storm-outlook-service/internal/adapter/notify"
	"github.com/couchcryptid/storm-outlook-service/internal/adapter/spc"
	"github.com/couchcryptid/storm-outlook-service/internal/app"
	"github.com/couchcryptid/storm-outlook-service/internal/config"
	"github.com/couchcryptid/storm-outlook-service/internal/domain"
	"github.com/couchcryptid/storm-outlook-service/internal/monitor"
	"github.com/couchcryptid/storm-outlook-service/internal/observability"
)

func main() {
	// A local .env is optional; real environment variables take precedence.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	svc, fetcher, err := app.NewRenderService(cfg, logger, metrics)
	if err != nil {
		logger.Error("failed to build render service", "error", err)
		os.Exit(1)
	}

	ready := httpadapter.ReadinessGroup{}
	var closers []io.Closer

	var mon *monitor.Monitor
	if cfg.MonitorEnabled {
		sinks := []domain.Notifier{notify.NewLog(logger)}
		if cfg.DesktopNotify {
			sinks = append(sinks, notify.NewDesktop(""))
		}
		if cfg.KafkaEnabled() {
			publisher := kafkaadapter.NewNotifier(cfg, logger)
			sinks = append(sinks, publisher)
			closers = append(closers, publisher)
			logger.Info("kafka advisory publishing enabled", "topic", cfg.KafkaNotifyTopic)
		}

		mon, err = monitor.New(
			spc.NewFeedClient(fetcher, cfg.AdvisoryFeedURL),
			notify.NewMulti(sinks...),
			cfg.AdvisoryPollInterval,
			logger,
			metrics,
			monitor.WithSeenCapacity(cfg.AdvisorySeenCapacity),
			monitor.WithTitleMax(cfg.AdvisoryTitleMax),
		)
		if err != nil {
			logger.Error("failed to build advisory monitor", "error", err)
			os.Exit(1)
		}
		ready = append(ready, mon)
	} else {
		logger.Info("advisory monitor disabled")
	}

	var checker sharedobs.ReadinessChecker = ready
	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, checker, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start advisory monitor.
	if mon != nil {
		go func() {
			if err := mon.Run(ctx); err != nil {
				logger.Error("advisory monitor error", "error", err)
			}
		}()
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	for _, c := range closers {
		if err := c.Close(); err != nil {
			logger.Error("close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
