package integrity

import (
	"context"

	"github.com/fhuszti/portfolio-medias-go/internal/model"
	"github.com/fhuszti/portfolio-medias-go/internal/port"
)

type checkerSrv struct {
	dataDir string
	media   port.MediaLister
}

// compile-time check: *checkerSrv must satisfy port.IntegrityChecker
var _ port.IntegrityChecker = (*checkerSrv)(nil)

// NewChecker validates the catalogs under dataDir against the live media catalog.
func NewChecker(dataDir string, media port.MediaLister) port.IntegrityChecker {
	return &checkerSrv{dataDir: dataDir, media: media}
}

func (s *checkerSrv) CheckIntegrity(ctx context.Context) (model.Report, error) {
	c, err := LoadCatalogs(s.dataDir)
	if err != nil {
		return model.Report{}, err
	}
	c.Media, err = s.media.ListMedia(ctx)
	if err != nil {
		return model.Report{}, err
	}
	return Validate(c), nil
}
