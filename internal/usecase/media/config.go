package media

import (
	"strings"
	"time"
)

const MaxFileSize = 10 * 1024 * 1024 // 10 MB

// UploadConfig bounds what the uploader accepts.
type UploadConfig struct {
	MaxFileSize int64
}

func (c UploadConfig) maxFileSize() int64 {
	if c.MaxFileSize <= 0 {
		return MaxFileSize
	}
	return c.MaxFileSize
}

// Timeouts derive the deadline of a library operation from the payload size.
type Timeouts struct {
	Base  time.Duration
	PerMB time.Duration
}

// For returns Base plus PerMB for every started megabyte of size.
func (t Timeouts) For(size int) time.Duration {
	mb := (size + 1024*1024 - 1) / (1024 * 1024)
	return t.Base + time.Duration(mb)*t.PerMB
}

func IsImage(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/")
}
