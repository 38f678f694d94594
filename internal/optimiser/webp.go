package optimiser

import (
	"image"
	"io"

	"github.com/chai2010/webp"
)

type webpEncoder struct{}

// NewWebPEncoder returns the libwebp-backed encoder.
func NewWebPEncoder() WebPEncoder {
	return webpEncoder{}
}

func (webpEncoder) Encode(img image.Image, quality int, w io.Writer) error {
	return webp.Encode(w, img, &webp.Options{Lossless: false, Quality: float32(quality)})
}
