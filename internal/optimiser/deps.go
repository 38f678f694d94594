package optimiser

import (
	"image"
	"io"
)

type WebPEncoder interface {
	Encode(img image.Image, quality int, w io.Writer) error
}

// encoder writes img in one output format.
type encoder interface {
	encode(w io.Writer, img image.Image, quality int) error
}
