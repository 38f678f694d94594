package media

import (
	"context"

	"github.com/fhuszti/portfolio-medias-go/internal/model"
	"github.com/fhuszti/portfolio-medias-go/internal/port"
)

type mediaGetterSrv struct {
	catalog port.AssetCatalog
}

// compile-time checks: *mediaGetterSrv must satisfy port.MediaGetter and port.MediaLister
var (
	_ port.MediaGetter = (*mediaGetterSrv)(nil)
	_ port.MediaLister = (*mediaGetterSrv)(nil)
)

func NewMediaGetter(catalog port.AssetCatalog) port.MediaGetter {
	return &mediaGetterSrv{catalog}
}

func NewMediaLister(catalog port.AssetCatalog) port.MediaLister {
	return &mediaGetterSrv{catalog}
}

func (s *mediaGetterSrv) GetMedia(ctx context.Context, id string) (*model.MediaAsset, error) {
	asset, err := s.catalog.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

func (s *mediaGetterSrv) ListMedia(ctx context.Context) ([]model.MediaAsset, error) {
	return s.catalog.List(ctx)
}
