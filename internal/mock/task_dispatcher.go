package mock

import "context"

// Dispatcher implements port.TaskDispatcher for tests.
type Dispatcher struct {
	MirrorSyncCalled bool
	MirrorSyncPaths  []string
	MirrorSyncErr    error
}

func (m *Dispatcher) EnqueueMirrorSync(ctx context.Context, path string) error {
	m.MirrorSyncCalled = true
	m.MirrorSyncPaths = append(m.MirrorSyncPaths, path)
	return m.MirrorSyncErr
}
