package media

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/fhuszti/portfolio-medias-go/internal/logger"
	"github.com/fhuszti/portfolio-medias-go/internal/port"
)

type mediaMoverSrv struct {
	primary port.Tree
	mirror  port.Tree
}

// compile-time check: *mediaMoverSrv must satisfy port.MediaMover
var _ port.MediaMover = (*mediaMoverSrv)(nil)

// NewMediaMover constructs a MediaMover. mirror may be nil.
func NewMediaMover(primary, mirror port.Tree) port.MediaMover {
	return &mediaMoverSrv{primary, mirror}
}

// MoveMedia renames the file from the old project directory to the new one in
// each tree. When the file is missing at the old location it is recovered
// from the interim directory. Only the primary tree can fail the move.
func (s *mediaMoverSrv) MoveMedia(ctx context.Context, in port.MoveMediaInput) (port.MoveMediaOutput, error) {
	oldKey, err := FileKey(in.OldProject, in.Filename)
	if err != nil {
		return port.MoveMediaOutput{}, err
	}
	newKey, err := FileKey(in.NewProject, in.Filename)
	if err != nil {
		return port.MoveMediaOutput{}, err
	}
	interimKey, _ := FileKey("", in.Filename)

	out := port.MoveMediaOutput{NewPath: PublicPath(newKey)}
	if oldKey == newKey {
		return out, nil
	}

	if err := relocate(ctx, s.primary, oldKey, newKey, interimKey); err != nil {
		if errors.Is(err, ErrFileNotFound) || errors.Is(err, ErrValidation) {
			return port.MoveMediaOutput{}, err
		}
		return port.MoveMediaOutput{}, asIOErr(err)
	}
	logger.Infof(ctx, "media #%s moved to %q", in.ID, newKey)

	if s.mirror != nil {
		if err := relocate(ctx, s.mirror, oldKey, newKey, interimKey); err != nil {
			logger.Warnf(ctx, "⚠️  Mirror move failed for media #%s: %v", in.ID, err)
			out.Warnings = append(out.Warnings, fmt.Errorf("%w: %s: %v", ErrPartialWrite, s.mirror.Name(), err).Error())
			out.MirrorStale = true
		}
	}
	return out, nil
}

// relocate renames oldKey to newKey inside tree, falling back to a copy of
// interimKey when oldKey does not exist.
func relocate(ctx context.Context, tree port.Tree, oldKey, newKey, interimKey string) error {
	if err := tree.EnsureDir(ctx, path.Dir(newKey)); err != nil {
		return fmt.Errorf("%s: ensuring %q: %w", tree.Name(), path.Dir(newKey), err)
	}

	err := tree.RenameFile(ctx, oldKey, newKey)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrFileNotFound) {
		return fmt.Errorf("%s: renaming %q to %q: %w", tree.Name(), oldKey, newKey, err)
	}
	if oldKey == interimKey {
		return fmt.Errorf("%s: %q: %w", tree.Name(), oldKey, ErrFileNotFound)
	}

	logger.Warnf(ctx, "⚠️  %q missing from %s, recovering from %q", oldKey, tree.Name(), interimKey)
	if err := tree.CopyFile(ctx, interimKey, newKey); err != nil {
		if errors.Is(err, ErrFileNotFound) {
			return fmt.Errorf("%s: neither %q nor %q exists: %w", tree.Name(), oldKey, interimKey, ErrFileNotFound)
		}
		return fmt.Errorf("%s: copying %q to %q: %w", tree.Name(), interimKey, newKey, err)
	}
	return nil
}
