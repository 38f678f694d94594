package port

import "github.com/fhuszti/portfolio-medias-go/internal/model"

// ImageTransformer re-encodes raw image bytes to a target spec and format.
type ImageTransformer interface {
	Transform(raw []byte, spec model.ImageSpec, format model.Format) (model.Transformed, error)
}
