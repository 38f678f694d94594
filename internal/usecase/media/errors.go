package media

import "errors"

var (
	ErrValidation    = errors.New("media: validation failed")
	ErrDecode        = errors.New("media: image could not be decoded")
	ErrFileNotFound  = errors.New("media: file not found")
	ErrIO            = errors.New("media: i/o failure")
	ErrPartialWrite  = errors.New("media: mirror write failed")
	ErrAssetNotFound = errors.New("media: asset not found in catalog")
	ErrAssetExists   = errors.New("media: asset already in catalog")

	ErrUnauthorized = errors.New("storage: unauthorized")
	ErrInternal     = errors.New("storage: internal error")
)
