package renderer

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"time"

	"github.com/fhuszti/portfolio-medias-go/internal/port"
)

const DefaultTTL = 5 * time.Minute

type httpRenderer struct {
	cache port.Cache
	ttl   time.Duration
	now   func() time.Time
}

// compile-time check: *httpRenderer must satisfy port.HTTPRenderer
var _ port.HTTPRenderer = (*httpRenderer)(nil)

// NewHTTPRenderer creates a new HTTPRenderer implementation. Entries stay
// cached for ttl, or DefaultTTL when ttl is not positive.
func NewHTTPRenderer(cache port.Cache, ttl time.Duration) port.HTTPRenderer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &httpRenderer{cache: cache, ttl: ttl, now: time.Now}
}

// RenderGetMedia fetches media details either from cache or from the wrapped use
// case. It returns the JSON encoded output and a quoted ETag string.
func (r *httpRenderer) RenderGetMedia(ctx context.Context, getter port.MediaGetter, id string) ([]byte, string, error) {
	raw, err := r.cache.GetMediaDetails(ctx, id)
	etag, errEtag := r.cache.GetEtagMediaDetails(ctx, id)
	if err == nil && errEtag == nil && raw != nil && etag != "" {
		return raw, etag, nil
	}

	out, err := getter.GetMedia(ctx, id)
	if err != nil {
		return nil, "", err
	}

	raw, err = json.Marshal(out)
	if err != nil {
		return nil, "", fmt.Errorf("json marshal: %w", err)
	}

	etag = fmt.Sprintf("\"%08x\"", crc32.ChecksumIEEE(raw))
	validUntil := r.now().Add(r.ttl)
	r.cache.SetMediaDetails(ctx, id, raw, validUntil)
	r.cache.SetEtagMediaDetails(ctx, id, etag, validUntil)

	return raw, etag, nil
}
