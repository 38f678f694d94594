package media

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/fhuszti/portfolio-medias-go/internal/logger"
	"github.com/fhuszti/portfolio-medias-go/internal/model"
	"github.com/fhuszti/portfolio-medias-go/internal/port"
)

type mediaLibrarySrv struct {
	uploader port.MediaUploader
	mover    port.MediaMover
	deleter  port.MediaDeleter
	catalog  port.AssetCatalog
	cache    port.Cache
	tasks    port.TaskDispatcher
	timeouts Timeouts
}

// compile-time check: *mediaLibrarySrv must satisfy port.MediaLibrary
var _ port.MediaLibrary = (*mediaLibrarySrv)(nil)

// NewMediaLibrary binds the file handlers to the catalog. Mirror writes that
// fail are handed to tasks for a later retry.
func NewMediaLibrary(
	uploader port.MediaUploader,
	mover port.MediaMover,
	deleter port.MediaDeleter,
	catalog port.AssetCatalog,
	cache port.Cache,
	tasks port.TaskDispatcher,
	timeouts Timeouts,
) port.MediaLibrary {
	return &mediaLibrarySrv{
		uploader: uploader,
		mover:    mover,
		deleter:  deleter,
		catalog:  catalog,
		cache:    cache,
		tasks:    tasks,
		timeouts: timeouts,
	}
}

// Register stores a new upload and records it in the catalog.
func (l *mediaLibrarySrv) Register(ctx context.Context, in port.UploadMediaInput) (port.UploadMediaOutput, error) {
	opCtx, cancel := l.withTimeout(ctx, len(in.Data))
	defer cancel()

	out, err := l.uploader.UploadMedia(opCtx, in)
	if err != nil {
		return port.UploadMediaOutput{}, err
	}

	// the files are written; the catalog entry must not be lost to the deadline
	if err := l.catalog.Insert(ctx, out.Asset); err != nil {
		logger.Errorf(ctx, "❌  Media #%s stored at %q but not catalogued: %v", out.Asset.ID, out.Asset.Path, err)
		return port.UploadMediaOutput{}, asIOErr(err)
	}
	logger.Infof(ctx, "✅  Media #%s registered at %q", out.Asset.ID, out.Asset.Path)

	if out.MirrorStale {
		l.scheduleMirrorSync(ctx, out.Asset.Path)
	}
	return out, nil
}

// Relocate moves an asset to another project and updates its catalog entry.
func (l *mediaLibrarySrv) Relocate(ctx context.Context, in port.RelocateMediaInput) (port.MoveMediaOutput, error) {
	asset, err := l.catalog.Get(ctx, in.ID)
	if err != nil {
		return port.MoveMediaOutput{}, err
	}
	oldProject := asset.Project
	if in.OldProject != nil {
		oldProject = *in.OldProject
	}

	opCtx, cancel := l.withTimeout(ctx, 0)
	defer cancel()
	out, err := l.mover.MoveMedia(opCtx, port.MoveMediaInput{
		ID:         asset.ID,
		OldProject: oldProject,
		NewProject: in.NewProject,
		Filename:   path.Base(asset.Path),
	})
	if err != nil {
		return port.MoveMediaOutput{}, err
	}

	if _, err := l.catalog.Update(ctx, asset.ID, func(a *model.MediaAsset) error {
		a.Project = in.NewProject
		a.Path = out.NewPath
		return nil
	}); err != nil {
		logger.Errorf(ctx, "❌  Media #%s moved to %q but catalog not updated: %v", asset.ID, out.NewPath, err)
		if errors.Is(err, ErrAssetNotFound) {
			return port.MoveMediaOutput{}, err
		}
		return port.MoveMediaOutput{}, asIOErr(err)
	}
	l.invalidate(ctx, asset.ID)

	if out.MirrorStale {
		l.scheduleMirrorSync(ctx, out.NewPath)
		// the old location may still hold a copy in the mirror
		if asset.Path != out.NewPath {
			l.scheduleMirrorSync(ctx, asset.Path)
		}
	}
	return out, nil
}

// Remove deletes the files of an asset and its catalog entry. Files that are
// already gone only produce warnings.
func (l *mediaLibrarySrv) Remove(ctx context.Context, id string) (port.DeleteMediaOutput, error) {
	asset, err := l.catalog.Get(ctx, id)
	if err != nil {
		return port.DeleteMediaOutput{}, err
	}

	opCtx, cancel := l.withTimeout(ctx, 0)
	defer cancel()
	out, err := l.deleter.DeleteMedia(opCtx, port.DeleteMediaInput{ID: asset.ID, Path: asset.Path})
	switch {
	case errors.Is(err, ErrValidation):
		logger.Warnf(ctx, "⚠️  Media #%s has an invalid path %q, dropping the entry only", asset.ID, asset.Path)
		out.Warnings = append(out.Warnings, fmt.Sprintf("catalog path %q is invalid, no file removed", asset.Path))
	case err != nil:
		return port.DeleteMediaOutput{}, err
	}

	if _, err := l.catalog.Remove(ctx, asset.ID); err != nil {
		if errors.Is(err, ErrAssetNotFound) {
			return port.DeleteMediaOutput{}, err
		}
		return port.DeleteMediaOutput{}, asIOErr(err)
	}
	l.invalidate(ctx, asset.ID)
	logger.Infof(ctx, "🗑️  Media #%s removed", asset.ID)

	// the catalog no longer lists the path, so the backlog sweep will not find it
	if out.MirrorStale {
		l.scheduleMirrorSync(ctx, asset.Path)
	}
	return out, nil
}

func (l *mediaLibrarySrv) withTimeout(ctx context.Context, size int) (context.Context, context.CancelFunc) {
	d := l.timeouts.For(size)
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

func (l *mediaLibrarySrv) invalidate(ctx context.Context, id string) {
	if err := l.cache.DeleteMediaDetails(ctx, id); err != nil {
		logger.Warnf(ctx, "⚠️  Failed deleting cache for media #%s: %v", id, err)
	}
	if err := l.cache.DeleteEtagMediaDetails(ctx, id); err != nil {
		logger.Warnf(ctx, "⚠️  Failed deleting etag cache for media #%s: %v", id, err)
	}
}

func (l *mediaLibrarySrv) scheduleMirrorSync(ctx context.Context, publicPath string) {
	if err := l.tasks.EnqueueMirrorSync(ctx, publicPath); err != nil {
		logger.Warnf(ctx, "⚠️  Failed to enqueue mirror sync for %q: %v", publicPath, err)
	}
}
