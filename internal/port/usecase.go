package port

import (
	"context"

	"github.com/fhuszti/portfolio-medias-go/internal/model"
)

type IDGen func() string

// MediaUploader stores a new file in both trees. It does not touch the catalog.
type MediaUploader interface {
	UploadMedia(ctx context.Context, in UploadMediaInput) (UploadMediaOutput, error)
}
type UploadMediaInput struct {
	Data     []byte
	Filename string
	MimeType string
	Optimize bool
	Format   string
	Project  string
	Category string
}
type UploadMediaOutput struct {
	Asset       model.MediaAsset
	Warnings    []string
	MirrorStale bool
}

// MediaMover relocates the physical files of an asset between project directories.
type MediaMover interface {
	MoveMedia(ctx context.Context, in MoveMediaInput) (MoveMediaOutput, error)
}
type MoveMediaInput struct {
	ID         string
	OldProject string
	NewProject string
	Filename   string
}
type MoveMediaOutput struct {
	NewPath     string   `json:"newPath"`
	Warnings    []string `json:"warnings,omitempty"`
	MirrorStale bool     `json:"-"`
}

// MediaDeleter removes the physical files of an asset, best-effort.
type MediaDeleter interface {
	DeleteMedia(ctx context.Context, in DeleteMediaInput) (DeleteMediaOutput, error)
}
type DeleteMediaInput struct {
	ID   string
	Path string
}
type DeleteMediaOutput struct {
	Warnings    []string `json:"warnings,omitempty"`
	MirrorStale bool     `json:"-"`
}

// MediaGetter retrieves a catalog entry.
type MediaGetter interface {
	GetMedia(ctx context.Context, id string) (*model.MediaAsset, error)
}

// MediaLister returns every catalog entry in catalog order.
type MediaLister interface {
	ListMedia(ctx context.Context) ([]model.MediaAsset, error)
}

// MediaLibrary binds the file handlers to the catalog.
type MediaLibrary interface {
	Register(ctx context.Context, in UploadMediaInput) (UploadMediaOutput, error)
	Relocate(ctx context.Context, in RelocateMediaInput) (MoveMediaOutput, error)
	Remove(ctx context.Context, id string) (DeleteMediaOutput, error)
}
type RelocateMediaInput struct {
	ID string
	// OldProject overrides the project recorded in the catalog when set.
	OldProject *string
	NewProject string
}

// MirrorSyncer copies one asset from the primary tree to the mirror tree.
type MirrorSyncer interface {
	SyncMirror(ctx context.Context, path string) error
}

// MirrorBacklog reconciles the whole mirror tree against the catalog.
type MirrorBacklog interface {
	SyncAll(ctx context.Context) (int, error)
}

// ConsistencyChecker reports drift between the catalog and the trees.
type ConsistencyChecker interface {
	CheckConsistency(ctx context.Context) (model.Report, error)
}

// IntegrityChecker reports broken and unused references between catalogs.
type IntegrityChecker interface {
	CheckIntegrity(ctx context.Context) (model.Report, error)
}
