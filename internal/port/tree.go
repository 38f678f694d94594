package port

import (
	"context"
	"io"
)

// FileInfo represents metadata about a stored file.
type FileInfo struct {
	SizeBytes   int64
	ContentType string
}

// Tree is one physical copy of the uploads directory layout. Keys are
// slash-separated and relative to the tree root, e.g. "projects/p1/abc.webp".
type Tree interface {
	Name() string
	EnsureDir(ctx context.Context, dir string) error
	SaveFile(ctx context.Context, key string, reader io.Reader, fileSize int64, opts map[string]string) error
	RenameFile(ctx context.Context, srcKey, destKey string) error
	CopyFile(ctx context.Context, srcKey, destKey string) error
	RemoveFile(ctx context.Context, key string) error
	StatFile(ctx context.Context, key string) (FileInfo, error)
	GetFile(ctx context.Context, key string) (io.ReadCloser, error)
	FileExists(ctx context.Context, key string) (bool, error)
	ListFiles(ctx context.Context) ([]string, error)
}
