package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fhuszti/portfolio-medias-go/internal/config"
	workerHandler "github.com/fhuszti/portfolio-medias-go/internal/handler/worker"
	"github.com/fhuszti/portfolio-medias-go/internal/logger"
	"github.com/fhuszti/portfolio-medias-go/internal/storage"
	"github.com/fhuszti/portfolio-medias-go/internal/task"
	mediaSvc "github.com/fhuszti/portfolio-medias-go/internal/usecase/media"
	"github.com/hibiken/asynq"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}
	if cfg.RedisAddr == "" {
		logger.Error(ctx, "⚠️  REDIS_ADDR must be set to run the worker")
		os.Exit(1)
	}

	logger.Init()

	primary, err := storage.NewLocalTree("primary", cfg.UploadsRoot)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize uploads tree: %v", err)
		os.Exit(1)
	}
	mirror, err := storage.NewMirrorTree(ctx, storage.MirrorOptions{
		Backend:        cfg.MirrorBackend,
		Root:           cfg.MirrorRoot,
		MinioEndpoint:  cfg.MinioEndpoint,
		MinioAccessKey: cfg.MinioAccessKey,
		MinioSecretKey: cfg.MinioSecretKey,
		MinioUseSSL:    cfg.MinioUseSSL,
		Bucket:         cfg.MirrorBucket,
	})
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize mirror tree: %v", err)
		os.Exit(1)
	}
	if mirror == nil {
		logger.Warn(ctx, "⚠️  No mirror configured, mirror sync tasks will be acknowledged without effect")
	}

	syncSvc := mediaSvc.NewMirrorSyncer(primary, mirror)

	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypeMirrorSync, func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParseMirrorSyncPayload(t)
		if err != nil {
			return err
		}
		return workerHandler.MirrorSyncHandler(ctx, p, syncSvc)
	})

	runWorker(ctx, mux, cfg)
}

func runWorker(ctx context.Context, mux *asynq.ServeMux, cfg *config.Settings) {
	srv := asynq.NewServer(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}, asynq.Config{Concurrency: 10})

	// Run server in background
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Errorf(context.Background(), "❌  Worker failed: %v", err)
			os.Exit(1)
		}
	}()
	logger.Info(ctx, "🚀 Worker started")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	done := make(chan struct{})
	go func() {
		srv.Shutdown() // stop accepting new tasks, finish in-flight
		close(done)
	}()

	select {
	case <-done:
		logger.Info(ctx, "✅  Worker gracefully stopped")
	case <-time.After(30 * time.Second):
		logger.Warn(ctx, "⚠️  Worker shutdown timed out")
	}
}
