package model

import (
	"fmt"
	"path"
	"strings"
)

type Category string

const (
	CategoryThumbnail  Category = "thumbnail"
	CategoryGallery    Category = "gallery"
	CategoryHero       Category = "hero"
	CategoryBackground Category = "background"
	CategoryProfile    Category = "profile"
)

// ParseCategory maps the caller-supplied role to a Category.
// An empty value defaults to gallery.
func ParseCategory(s string) (Category, error) {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case "":
		return CategoryGallery, nil
	case CategoryThumbnail, CategoryGallery, CategoryHero, CategoryBackground, CategoryProfile:
		return c, nil
	default:
		return "", fmt.Errorf("unknown category %q", s)
	}
}

// Format is the closed set of output encodings the transformer can produce.
type Format int

const (
	FormatWebP Format = iota + 1
	FormatJPG
	FormatJPEG
	FormatPNG
)

var formatNames = map[Format]string{
	FormatWebP: "webp",
	FormatJPG:  "jpg",
	FormatJPEG: "jpeg",
	FormatPNG:  "png",
}

// ParseFormat maps a requested format name to a Format. An empty value defaults to webp.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return FormatWebP, nil
	}
	for f, n := range formatNames {
		if n == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unsupported format %q", s)
}

func (f Format) String() string {
	if n, ok := formatNames[f]; ok {
		return n
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// Ext is the file extension, dot included.
func (f Format) Ext() string {
	return "." + f.String()
}

func (f Format) MimeType() string {
	switch f {
	case FormatWebP:
		return "image/webp"
	case FormatJPG, FormatJPEG:
		return "image/jpeg"
	case FormatPNG:
		return "image/png"
	default:
		return "application/octet-stream"
	}
}

// VerbatimFormat labels bytes stored without transformation from their MIME type.
// JPEG keeps the .jpeg spelling only when the filename uses it. Types outside
// the Format set report false.
func VerbatimFormat(mimeType, filename string) (Format, bool) {
	mt, _, _ := strings.Cut(mimeType, ";")
	switch strings.ToLower(strings.TrimSpace(mt)) {
	case "image/webp":
		return FormatWebP, true
	case "image/png":
		return FormatPNG, true
	case "image/jpeg", "image/jpg", "image/pjpeg":
		if strings.EqualFold(path.Ext(filename), ".jpeg") {
			return FormatJPEG, true
		}
		return FormatJPG, true
	default:
		return 0, false
	}
}

// ImageSpec is a named bundle of output bounds, target aspect ratio and quality.
type ImageSpec struct {
	Name        string  `yaml:"name" json:"name"`
	MaxWidth    int     `yaml:"maxWidth" json:"maxWidth"`
	MaxHeight   int     `yaml:"maxHeight" json:"maxHeight"`
	AspectRatio float64 `yaml:"aspectRatio" json:"aspectRatio"`
	Quality     int     `yaml:"quality,omitempty" json:"quality,omitempty"`
}

func (s ImageSpec) Validate() error {
	if s.MaxWidth <= 0 || s.MaxHeight <= 0 {
		return fmt.Errorf("spec %q: bounds must be positive, got %dx%d", s.Name, s.MaxWidth, s.MaxHeight)
	}
	if s.AspectRatio <= 0 {
		return fmt.Errorf("spec %q: aspect ratio must be positive, got %v", s.Name, s.AspectRatio)
	}
	if s.Quality < 0 || s.Quality > 100 {
		return fmt.Errorf("spec %q: quality must be within 0-100, got %d", s.Name, s.Quality)
	}
	return nil
}

// ImageSpecs indexes specs by name.
type ImageSpecs map[string]ImageSpec

// ForCategory picks the spec used for an asset role.
// Backgrounds share the hero spec; anything unknown falls back to gallery.
func (s ImageSpecs) ForCategory(c Category) (ImageSpec, bool) {
	name := "gallery"
	switch c {
	case CategoryThumbnail:
		name = "thumbnail"
	case CategoryHero, CategoryBackground:
		name = "hero"
	case CategoryProfile:
		name = "profile"
	}
	spec, ok := s[name]
	return spec, ok
}

// Transformed is the output of an image transformation.
type Transformed struct {
	Data   []byte
	Width  int
	Height int
	SizeKB int
	Format Format
}
