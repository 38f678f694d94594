package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/fhuszti/portfolio-medias-go/internal/usecase/media"
	"github.com/minio/minio-go/v7"
)

func mapMinioErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey":
		return fmt.Errorf("%w: %v", media.ErrFileNotFound, err)
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return fmt.Errorf("%w: %v", media.ErrUnauthorized, err)
	default:
		// catch everything else
		return fmt.Errorf("%w: %w: %v", media.ErrIO, media.ErrInternal, err)
	}
}

func mapFSErr(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %v", media.ErrFileNotFound, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %w: %v", media.ErrIO, media.ErrUnauthorized, err)
	default:
		return fmt.Errorf("%w: %v", media.ErrIO, err)
	}
}
