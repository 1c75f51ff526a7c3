package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/light-bringer/cartsync-service/internal/config"
	"github.com/light-bringer/cartsync-service/internal/services"
)

func main() {
	app := &cli.App{
		Name:  "cartsync-server",
		Usage: "Cart synchronization and catalog API server",
		Action: func(c *cli.Context) error {
			return run()
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("Server exited")
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := newLogger(cfg.LogLevel)
	logger.WithFields(logrus.Fields{
		"spanner_db": cfg.SpannerDB,
		"http_port":  cfg.HTTPPort,
		"redis_addr": cfg.RedisAddr,
	}).Info("Starting cart sync service")

	serviceOpts, err := services.NewServiceOptions(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer serviceOpts.Close()

	httpServer := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: serviceOpts.Router,
	}

	go func() {
		logger.WithField("addr", httpServer.Addr).Info("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("HTTP server error")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("HTTP server shutdown error")
	}

	return nil
}

func newLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)
	return logger
}
