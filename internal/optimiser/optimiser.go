package optimiser

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"log"
	"math"

	"github.com/fhuszti/portfolio-medias-go/internal/model"
	"github.com/fhuszti/portfolio-medias-go/internal/port"
	"github.com/fhuszti/portfolio-medias-go/internal/usecase/media"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

type Transformer struct {
	encoders map[model.Format]encoder
	quality  int
}

// compile-time check: *Transformer must satisfy port.ImageTransformer
var _ port.ImageTransformer = (*Transformer)(nil)

// NewTransformer wires one encoder per supported output format.
// quality applies to lossy formats whenever the spec leaves it unset.
func NewTransformer(webpEnc WebPEncoder, quality int) *Transformer {
	log.Println("initialising image transformer...")
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	return &Transformer{
		encoders: map[model.Format]encoder{
			model.FormatWebP: webpFormat{enc: webpEnc},
			model.FormatJPG:  jpegFormat{},
			model.FormatJPEG: jpegFormat{},
			model.FormatPNG:  pngFormat{},
		},
		quality: quality,
	}
}

// Transform decodes raw, centre-crops it to the spec's aspect ratio, scales it
// within the spec's bounds and re-encodes it in format.
// Undecodable input fails with media.ErrDecode.
func (o *Transformer) Transform(raw []byte, spec model.ImageSpec, format model.Format) (model.Transformed, error) {
	if err := spec.Validate(); err != nil {
		return model.Transformed{}, err
	}
	enc, ok := o.encoders[format]
	if !ok {
		return model.Transformed{}, fmt.Errorf("optimiser: unsupported output format %s", format)
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return model.Transformed{}, fmt.Errorf("%w: %v", media.ErrDecode, err)
	}
	b := src.Bounds()
	if b.Empty() {
		return model.Transformed{}, fmt.Errorf("%w: empty image", media.ErrDecode)
	}

	w, h := TargetDimensions(b.Dx(), b.Dy(), spec)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	op := draw.Src
	if format == model.FormatJPG || format == model.FormatJPEG {
		// jpeg has no alpha channel
		draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
		op = draw.Over
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, cropRect(b, spec.AspectRatio), op, nil)

	quality := spec.Quality
	if quality == 0 {
		quality = o.quality
	}
	buf := &bytes.Buffer{}
	if err := enc.encode(buf, dst, quality); err != nil {
		return model.Transformed{}, fmt.Errorf("optimiser: failed to encode %s: %w", format, err)
	}

	return model.Transformed{
		Data:   buf.Bytes(),
		Width:  w,
		Height: h,
		SizeKB: model.SizeKB(buf.Len()),
		Format: format,
	}, nil
}

// TargetDimensions computes the output size for a natW x natH source.
// The result always matches the spec's aspect ratio (within rounding) and
// never exceeds either of its bounds.
func TargetDimensions(natW, natH int, spec model.ImageSpec) (int, int) {
	r := spec.AspectRatio
	maxW, maxH := float64(spec.MaxWidth), float64(spec.MaxHeight)

	var w, h float64
	if float64(natW)/float64(natH) > r {
		w = math.Min(float64(natW), maxW)
		h = w / r
	} else {
		h = math.Min(float64(natH), maxH)
		w = h * r
	}
	// spec boxes are not guaranteed to share the target ratio
	if w > maxW {
		w = maxW
		h = w / r
	}
	if h > maxH {
		h = maxH
		w = h * r
	}

	return max(1, int(math.Round(w))), max(1, int(math.Round(h)))
}

// cropRect returns the largest centred region of b with the given aspect ratio.
func cropRect(b image.Rectangle, ratio float64) image.Rectangle {
	w, h := b.Dx(), b.Dy()
	if float64(w)/float64(h) > ratio {
		cw := min(w, max(1, int(math.Round(float64(h)*ratio))))
		x0 := b.Min.X + (w-cw)/2
		return image.Rect(x0, b.Min.Y, x0+cw, b.Max.Y)
	}
	ch := min(h, max(1, int(math.Round(float64(w)/ratio))))
	y0 := b.Min.Y + (h-ch)/2
	return image.Rect(b.Min.X, y0, b.Max.X, y0+ch)
}

type webpFormat struct{ enc WebPEncoder }

func (f webpFormat) encode(w io.Writer, img image.Image, quality int) error {
	return f.enc.Encode(img, quality, w)
}

type jpegFormat struct{}

func (jpegFormat) encode(w io.Writer, img image.Image, quality int) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
}

type pngFormat struct{}

// png is lossless, quality is ignored
func (pngFormat) encode(w io.Writer, img image.Image, _ int) error {
	enc := &png.Encoder{CompressionLevel: png.BestCompression}
	return enc.Encode(w, img)
}
