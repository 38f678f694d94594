package mock

import (
	"context"

	"github.com/fhuszti/portfolio-medias-go/internal/port"
)

// HTTPRenderer implements port.HTTPRenderer for tests.
type HTTPRenderer struct {
	// stored values
	MediaOut []byte

	// etag values
	EtagMedia string

	// captured inputs
	GotMediaID string
	GotGetter  port.MediaGetter

	// errors
	GetMediaErr error

	// call flags
	GetMediaCalled bool
}

func (m *HTTPRenderer) RenderGetMedia(ctx context.Context, getter port.MediaGetter, id string) ([]byte, string, error) {
	m.GetMediaCalled = true
	m.GotMediaID = id
	m.GotGetter = getter
	return m.MediaOut, m.EtagMedia, m.GetMediaErr
}
