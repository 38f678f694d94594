package port

import "context"

// TaskDispatcher enqueues asynchronous maintenance tasks.
type TaskDispatcher interface {
	EnqueueMirrorSync(ctx context.Context, path string) error
}
