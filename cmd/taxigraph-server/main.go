package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dd0wney/taxigraph/pkg/api"
	"github.com/dd0wney/taxigraph/pkg/config"
	"github.com/dd0wney/taxigraph/pkg/graph"
	"github.com/dd0wney/taxigraph/pkg/logging"
	"github.com/dd0wney/taxigraph/pkg/metrics"
	"github.com/dd0wney/taxigraph/pkg/store"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = *loaded
	}

	logger := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(cfg.LogLevel))
	registry := metrics.NewRegistry()

	st := store.NewMemoryStore()
	if cfg.SnapshotPath != "" {
		if _, err := os.Stat(cfg.SnapshotPath); err == nil {
			if err := st.LoadSnapshot(cfg.SnapshotPath); err != nil {
				log.Fatalf("Failed to load snapshot: %v", err)
			}
			logger.Info("snapshot loaded", logging.String("path", cfg.SnapshotPath))
		}
	}

	service := graph.NewService(st,
		graph.WithLogger(logger),
		graph.WithMetrics(registry),
		graph.WithRetries(cfg.RetryAttempts),
	)

	server := api.NewServer(service, cfg.ListenAddr, logger, registry)

	// Shut down on SIGINT/SIGTERM, saving the snapshot first.
	done := make(chan struct{})
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		if cfg.SnapshotPath != "" {
			if err := st.SaveSnapshot(cfg.SnapshotPath); err != nil {
				logger.Error("snapshot save failed", logging.Error(err))
			} else {
				logger.Info("snapshot saved", logging.String("path", cfg.SnapshotPath))
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("shutdown error", logging.Error(err))
		}
		close(done)
	}()

	if err := server.Start(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
	<-done
}
