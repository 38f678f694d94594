package media

import (
	"context"
	"errors"
	"fmt"

	"github.com/fhuszti/portfolio-medias-go/internal/logger"
	"github.com/fhuszti/portfolio-medias-go/internal/port"
)

type mediaDeleterSrv struct {
	primary port.Tree
	mirror  port.Tree
}

// compile-time check: *mediaDeleterSrv must satisfy port.MediaDeleter
var _ port.MediaDeleter = (*mediaDeleterSrv)(nil)

// NewMediaDeleter constructs a MediaDeleter. mirror may be nil.
func NewMediaDeleter(primary, mirror port.Tree) port.MediaDeleter {
	return &mediaDeleterSrv{primary, mirror}
}

// DeleteMedia removes the file behind the catalog path from both trees.
// Missing files are reported as warnings.
func (s *mediaDeleterSrv) DeleteMedia(ctx context.Context, in port.DeleteMediaInput) (port.DeleteMediaOutput, error) {
	key, err := KeyFromPublicPath(in.Path)
	if err != nil {
		return port.DeleteMediaOutput{}, err
	}

	var out port.DeleteMediaOutput
	if err := s.primary.RemoveFile(ctx, key); err != nil {
		if !errors.Is(err, ErrFileNotFound) {
			return port.DeleteMediaOutput{}, asIOErr(fmt.Errorf("%s: removing %q: %w", s.primary.Name(), key, err))
		}
		logger.Warnf(ctx, "⚠️  File %q of media #%s was already gone from %s", key, in.ID, s.primary.Name())
		out.Warnings = append(out.Warnings, fmt.Sprintf("%s: file %q not found", s.primary.Name(), key))
	}

	if s.mirror != nil {
		if err := s.mirror.RemoveFile(ctx, key); err != nil {
			logger.Warnf(ctx, "⚠️  Mirror delete failed for media #%s: %v", in.ID, err)
			if errors.Is(err, ErrFileNotFound) {
				out.Warnings = append(out.Warnings, fmt.Sprintf("%s: file %q not found", s.mirror.Name(), key))
			} else {
				out.Warnings = append(out.Warnings, fmt.Errorf("%w: %s: %v", ErrPartialWrite, s.mirror.Name(), err).Error())
				out.MirrorStale = true
			}
		}
	}
	return out, nil
}
