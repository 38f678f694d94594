package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/fhuszti/portfolio-medias-go/internal/logger"
	"github.com/fhuszti/portfolio-medias-go/internal/port"
)

type mirrorSyncerSrv struct {
	primary port.Tree
	mirror  port.Tree
}

// compile-time check: *mirrorSyncerSrv must satisfy port.MirrorSyncer
var _ port.MirrorSyncer = (*mirrorSyncerSrv)(nil)

// NewMirrorSyncer constructs a MirrorSyncer. With a nil mirror every sync is a no-op.
func NewMirrorSyncer(primary, mirror port.Tree) port.MirrorSyncer {
	return &mirrorSyncerSrv{primary, mirror}
}

// SyncMirror makes the mirror copy at publicPath match the primary tree:
// copied when the primary file exists, removed when it does not.
func (s *mirrorSyncerSrv) SyncMirror(ctx context.Context, publicPath string) error {
	if s.mirror == nil {
		return nil
	}
	key, err := KeyFromPublicPath(publicPath)
	if err != nil {
		return err
	}

	info, err := s.primary.StatFile(ctx, key)
	if errors.Is(err, ErrFileNotFound) {
		if err := s.mirror.RemoveFile(ctx, key); err != nil && !errors.Is(err, ErrFileNotFound) {
			return fmt.Errorf("%s: removing stale %q: %w", s.mirror.Name(), key, err)
		}
		logger.Infof(ctx, "mirror copy of %q dropped, no primary file", key)
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: stat %q: %w", s.primary.Name(), key, err)
	}

	rc, err := s.primary.GetFile(ctx, key)
	if err != nil {
		return fmt.Errorf("%s: reading %q: %w", s.primary.Name(), key, err)
	}
	defer func(rc io.ReadCloser) {
		_ = rc.Close()
	}(rc)

	if err := s.mirror.EnsureDir(ctx, path.Dir(key)); err != nil {
		return fmt.Errorf("%s: ensuring %q: %w", s.mirror.Name(), path.Dir(key), err)
	}
	opts := map[string]string{}
	if info.ContentType != "" {
		opts["Content-Type"] = info.ContentType
	}
	if err := s.mirror.SaveFile(ctx, key, rc, info.SizeBytes, opts); err != nil {
		return fmt.Errorf("%s: saving %q: %w", s.mirror.Name(), key, err)
	}
	logger.Infof(ctx, "✅  Mirror copy of %q refreshed", key)
	return nil
}
