package media

import (
	"context"
	"errors"

	"github.com/fhuszti/portfolio-medias-go/internal/logger"
	"github.com/fhuszti/portfolio-medias-go/internal/port"
)

type mirrorBacklogSrv struct {
	catalog port.AssetCatalog
	syncer  port.MirrorSyncer
}

// compile-time check: *mirrorBacklogSrv must satisfy port.MirrorBacklog
var _ port.MirrorBacklog = (*mirrorBacklogSrv)(nil)

func NewMirrorBacklog(catalog port.AssetCatalog, syncer port.MirrorSyncer) port.MirrorBacklog {
	return &mirrorBacklogSrv{catalog, syncer}
}

// SyncAll syncs the mirror copy of every catalogued asset and returns how
// many succeeded. Failures do not stop the walk.
func (s *mirrorBacklogSrv) SyncAll(ctx context.Context) (int, error) {
	assets, err := s.catalog.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(assets) == 0 {
		logger.Info(ctx, "no medias found to reconcile")
		return 0, nil
	}

	var errs []error
	synced := 0
	for _, a := range assets {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := s.syncer.SyncMirror(ctx, a.Path); err != nil {
			logger.Warnf(ctx, "⚠️  Failed to reconcile media #%s: %v", a.ID, err)
			errs = append(errs, err)
			continue
		}
		synced++
	}
	return synced, errors.Join(errs...)
}
