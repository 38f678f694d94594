package task

import (
	"context"

	"github.com/fhuszti/portfolio-medias-go/internal/logger"
	"github.com/fhuszti/portfolio-medias-go/internal/port"
)

// NoopDispatcher is used when no Redis is configured. Stale mirror copies
// are only logged and left to `mediactl reconcile`.
type NoopDispatcher struct{}

var _ port.TaskDispatcher = (*NoopDispatcher)(nil)

func NewNoopDispatcher() *NoopDispatcher { return &NoopDispatcher{} }

func (d *NoopDispatcher) EnqueueMirrorSync(ctx context.Context, path string) error {
	logger.Warnf(ctx, "⚠️  Mirror copy of %q is stale, no task queue configured", path)
	return nil
}
