package port

import (
	"context"

	"github.com/fhuszti/portfolio-medias-go/internal/model"
)

// AssetCatalog is the persisted, ordered collection of media assets.
type AssetCatalog interface {
	List(ctx context.Context) ([]model.MediaAsset, error)
	Get(ctx context.Context, id string) (model.MediaAsset, error)
	Insert(ctx context.Context, asset model.MediaAsset) error
	Update(ctx context.Context, id string, fn func(*model.MediaAsset) error) (model.MediaAsset, error)
	Remove(ctx context.Context, id string) (model.MediaAsset, error)
}
