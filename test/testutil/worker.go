package testutil

import (
	"context"

	workerHandler "github.com/fhuszti/portfolio-medias-go/internal/handler/worker"
	"github.com/fhuszti/portfolio-medias-go/internal/logger"
	"github.com/fhuszti/portfolio-medias-go/internal/port"
	"github.com/fhuszti/portfolio-medias-go/internal/task"
	mediaSvc "github.com/fhuszti/portfolio-medias-go/internal/usecase/media"
	"github.com/hibiken/asynq"
)

// StartWorker starts an asynq worker processing mirror sync tasks.
// It returns a function to gracefully shut down the worker.
func StartWorker(primary, mirror port.Tree, redisAddr string) func() {
	syncSvc := mediaSvc.NewMirrorSyncer(primary, mirror)

	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypeMirrorSync, func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParseMirrorSyncPayload(t)
		if err != nil {
			return err
		}
		return workerHandler.MirrorSyncHandler(ctx, p, syncSvc)
	})

	srv := asynq.NewServer(asynq.RedisClientOpt{Addr: redisAddr}, asynq.Config{Concurrency: 5})
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Errorf(context.Background(), "worker stopped: %v", err)
		}
	}()

	return func() {
		srv.Shutdown()
	}
}
