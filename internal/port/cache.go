package port

import (
	"context"
	"time"
)

// Cache provides caching capabilities for media retrieval.
type Cache interface {
	GetMediaDetails(ctx context.Context, id string) ([]byte, error)
	GetEtagMediaDetails(ctx context.Context, id string) (string, error)
	SetMediaDetails(ctx context.Context, id string, data []byte, validUntil time.Time)
	SetEtagMediaDetails(ctx context.Context, id string, etag string, validUntil time.Time)
	DeleteMediaDetails(ctx context.Context, id string) error
	DeleteEtagMediaDetails(ctx context.Context, id string) error
}
