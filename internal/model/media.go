package model

import (
	"math"
	"time"
)

// MediaAsset is one entry of the media catalog.
type MediaAsset struct {
	ID         string     `json:"id"`
	Filename   string     `json:"filename"`
	Path       string     `json:"path"`
	Dimensions Dimensions `json:"dimensions"`
	Format     string     `json:"format"`
	Size       int        `json:"size"`
	Project    string     `json:"project"`
	Category   Category   `json:"category"`
	CreatedAt  time.Time  `json:"createdAt,omitzero"`
}

type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Unassigned reports whether the asset lives in the interim directory.
func (m MediaAsset) Unassigned() bool {
	return m.Project == ""
}

// SizeKB converts a byte count to the rounded kilobyte figure stored in the catalog.
func SizeKB(n int) int {
	return int(math.Round(float64(n) / 1024))
}
