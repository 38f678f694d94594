package storage

import (
	"context"
	"fmt"

	"github.com/fhuszti/portfolio-medias-go/internal/port"
)

const (
	MirrorBackendFS    = "fs"
	MirrorBackendMinio = "minio"
	MirrorBackendNone  = "none"
)

type MirrorOptions struct {
	Backend        string
	Root           string
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	Bucket         string
}

// NewMirrorTree builds the mirror tree for the configured backend.
// The "none" backend yields a nil tree, which disables mirroring.
func NewMirrorTree(ctx context.Context, opts MirrorOptions) (port.Tree, error) {
	switch opts.Backend {
	case MirrorBackendNone, "":
		return nil, nil
	case MirrorBackendFS:
		tree, err := NewLocalTree("mirror", opts.Root)
		if err != nil {
			return nil, err
		}
		return tree, nil
	case MirrorBackendMinio:
		strg, err := NewMinioClient(opts.MinioEndpoint, opts.MinioAccessKey, opts.MinioSecretKey, opts.MinioUseSSL)
		if err != nil {
			return nil, err
		}
		tree, err := strg.WithBucket(ctx, opts.Bucket)
		if err != nil {
			return nil, err
		}
		return tree, nil
	default:
		return nil, fmt.Errorf("unknown mirror backend %q", opts.Backend)
	}
}
