package worker

import (
	"context"
	"log"

	"github.com/fhuszti/portfolio-medias-go/internal/port"
	"github.com/fhuszti/portfolio-medias-go/internal/task"
)

// MirrorSyncHandler handles a mirror-sync task by delegating to the
// port.MirrorSyncer service.
func MirrorSyncHandler(ctx context.Context, p task.MirrorSyncPayload, svc port.MirrorSyncer) error {
	if err := svc.SyncMirror(ctx, p.Path); err != nil {
		log.Printf("❌  Failed to sync mirror copy of %q: %v", p.Path, err)
		return err
	}

	log.Printf("✅  Successfully synced mirror copy of %q", p.Path)
	return nil
}
