package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"opportunity-insights-go/internal/actionable"
	"opportunity-insights-go/internal/api"
	"opportunity-insights-go/internal/config"
	"opportunity-insights-go/internal/dataset"
	"opportunity-insights-go/internal/logger"
)

func main() {
	cfg := config.Load() // loads .env

	log := logger.New()
	log.WithField("service", "opportunity-insights-go").
		WithField("environment", cfg.Environment).
		WithField("log_level", cfg.LogLevel).
		Info("starting service")

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("server terminated")
	}
	log.Info("server stopped")
}

// run owns every resource opened at startup, so deferred cleanup completes
// before main exits on error.
func run(cfg config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, closeSrc, err := openSource(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("open data source: %w", err)
	}
	defer closeSrc()

	playbook := actionable.DefaultPlaybook()
	if cfg.PlaybookPath != "" {
		playbook, err = actionable.LoadPlaybook(cfg.PlaybookPath)
		if err != nil {
			return fmt.Errorf("load playbook: %w", err)
		}
		log.WithField("playbook_path", cfg.PlaybookPath).Info("playbook override loaded")
	}

	server := api.NewServer(api.Options{
		Loader:       dataset.NewLoader(src, log),
		Narrator:     actionable.New(playbook),
		DefaultTopN:  cfg.DefaultTopN,
		FetchTimeout: cfg.FetchTimeout,
		Log:          log,
	})

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("shutdown incomplete")
		}
	}()

	log.WithField("addr", addr).WithField("data_source", cfg.DataSource).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func openSource(ctx context.Context, cfg config.Config, log *logger.Logger) (dataset.Source, func(), error) {
	if cfg.DataSource != config.SourceGCS {
		log.WithField("data_dir", cfg.DataDir).Info("reading weeks from local directory")
		return dataset.LocalSource{Root: cfg.DataDir}, func() {}, nil
	}
	gcs, err := dataset.NewGCSSource(ctx, cfg.GCSBucket, cfg.GCSPrefix, cfg.GCSCredentials, cfg.FetchMaxRetry, log)
	if err != nil {
		return nil, nil, err
	}
	log.WithField("bucket", cfg.GCSBucket).WithField("prefix", cfg.GCSPrefix).Info("reading weeks from gcs")
	return gcs, func() {
		if err := gcs.Close(); err != nil {
			log.WithError(err).Warn("gcs client close failed")
		}
	}, nil
}
