package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/duetcal/duetcal-api/internal/config"
	"github.com/duetcal/duetcal-api/internal/logger"
	"github.com/duetcal/duetcal-api/internal/scheduler"
	"github.com/duetcal/duetcal-api/internal/server"
	"github.com/duetcal/duetcal-api/internal/storage"
	"github.com/duetcal/duetcal-api/internal/storage/memory"
	"github.com/duetcal/duetcal-api/internal/storage/objects"
	"github.com/duetcal/duetcal-api/internal/storage/postgres"
)

func main() {
	cfg := config.Load()

	logger.Initialize(cfg.Server.LogLevel)
	log := logger.Get()

	backend, err := storage.ValidateBackend(cfg.Storage.Backend)
	if err != nil {
		log.Fatal("Invalid storage backend", "error", err)
	}

	var repos storage.RepositoryContainer
	switch backend {
	case storage.BackendMemory:
		log.Warn("Using in-memory storage, all data is lost on shutdown")
		repos = memory.NewContainer()
	default:
		container, err := postgres.NewContainer(cfg)
		if err != nil {
			log.Fatal("Failed to initialize storage", "error", err)
		}
		repos = container
	}
	defer repos.Close()

	var avatars *objects.AvatarStore
	if cfg.Objects.Endpoint != "" {
		store, err := objects.NewAvatarStore(context.Background(), cfg.Objects)
		if err != nil {
			log.Fatal("Failed to initialize object storage", "error", err)
		}
		avatars = store
	} else {
		log.Info("Object storage not configured, avatar uploads disabled")
	}

	if cfg.Sync.Enabled {
		stamper := scheduler.NewSyncStamper(repos, cfg.Sync.Schedule)
		if err := stamper.Start(); err != nil {
			log.Fatal("Failed to start sync stamper", "error", err)
		}
		defer stamper.Stop()
	}

	srv := server.New(cfg, repos, avatars)

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal("Server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		log.Error("Forced shutdown", "error", err)
	}

	log.Info("Server stopped")
}
