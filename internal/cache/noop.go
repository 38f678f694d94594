package cache

import (
	"context"
	"time"

	"github.com/fhuszti/portfolio-medias-go/internal/port"
)

// NoopCache is used when no Redis address is configured.
type NoopCache struct{}

// compile-time check: *NoopCache must satisfy port.Cache
var _ port.Cache = (*NoopCache)(nil)

func NewNoopCache() *NoopCache {
	return &NoopCache{}
}

func (n *NoopCache) GetMediaDetails(ctx context.Context, id string) ([]byte, error) {
	return nil, nil // always cache miss
}

func (n *NoopCache) GetEtagMediaDetails(ctx context.Context, id string) (string, error) {
	return "", nil
}

func (n *NoopCache) SetMediaDetails(ctx context.Context, id string, data []byte, validUntil time.Time) {
}

func (n *NoopCache) SetEtagMediaDetails(ctx context.Context, id string, etag string, validUntil time.Time) {
}

func (n *NoopCache) DeleteMediaDetails(ctx context.Context, id string) error { return nil }

func (n *NoopCache) DeleteEtagMediaDetails(ctx context.Context, id string) error {
	return nil
}
