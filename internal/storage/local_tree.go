package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/fhuszti/portfolio-medias-go/internal/port"
	"github.com/fhuszti/portfolio-medias-go/internal/usecase/media"
	"github.com/gabriel-vasile/mimetype"
)

// LocalTree stores files under a directory of the local filesystem.
type LocalTree struct {
	name string
	root string
}

// compile-time check: *LocalTree must satisfy port.Tree
var _ port.Tree = (*LocalTree)(nil)

// NewLocalTree creates the root directory if needed.
func NewLocalTree(name, root string) (*LocalTree, error) {
	log.Printf("initialising %s tree at %q...", name, root)
	if root == "" {
		return nil, fmt.Errorf("%s tree: root directory is required", name)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%s tree: %w", name, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, mapFSErr(err)
	}
	return &LocalTree{name: name, root: abs}, nil
}

func (t *LocalTree) Name() string {
	return t.name
}

func (t *LocalTree) Root() string {
	return t.root
}

func (t *LocalTree) EnsureDir(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := t.resolve(dir)
	if err != nil {
		return err
	}
	return mapFSErr(os.MkdirAll(p, 0o755))
}

// SaveFile writes to a temporary sibling first and renames it into place,
// so readers never observe a partially written file.
func (t *LocalTree) SaveFile(ctx context.Context, key string, reader io.Reader, fileSize int64, opts map[string]string) error {
	log.Printf("saving file %q into %s tree...", key, t.name)
	if err := ctx.Err(); err != nil {
		return err
	}
	dst, err := t.resolve(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return mapFSErr(err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*.part")
	if err != nil {
		return mapFSErr(err)
	}
	tmpName := tmp.Name()
	defer func() {
		// no-op once renamed
		_ = os.Remove(tmpName)
	}()

	n, err := io.Copy(tmp, reader)
	if err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: writing %q: %v", media.ErrIO, key, err)
	}
	if fileSize >= 0 && n != fileSize {
		_ = tmp.Close()
		return fmt.Errorf("%w: short write for %q: %d of %d bytes", media.ErrIO, key, n, fileSize)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return mapFSErr(err)
	}
	if err := tmp.Close(); err != nil {
		return mapFSErr(err)
	}
	return mapFSErr(os.Rename(tmpName, dst))
}

func (t *LocalTree) RenameFile(ctx context.Context, srcKey, destKey string) error {
	log.Printf("renaming file %q to %q inside %s tree...", srcKey, destKey, t.name)
	if err := ctx.Err(); err != nil {
		return err
	}
	src, err := t.resolve(srcKey)
	if err != nil {
		return err
	}
	dst, err := t.resolve(destKey)
	if err != nil {
		return err
	}
	if _, err := os.Stat(src); err != nil {
		return mapFSErr(err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return mapFSErr(err)
	}
	return mapFSErr(os.Rename(src, dst))
}

func (t *LocalTree) CopyFile(ctx context.Context, srcKey, destKey string) error {
	log.Printf("copying file %q to %q inside %s tree...", srcKey, destKey, t.name)
	if err := ctx.Err(); err != nil {
		return err
	}
	src, err := t.resolve(srcKey)
	if err != nil {
		return err
	}
	f, err := os.Open(src)
	if err != nil {
		return mapFSErr(err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("failed to close %q: %v", src, err)
		}
	}()
	info, err := f.Stat()
	if err != nil {
		return mapFSErr(err)
	}
	return t.SaveFile(ctx, destKey, f, info.Size(), nil)
}

func (t *LocalTree) RemoveFile(ctx context.Context, key string) error {
	log.Printf("removing file %q from %s tree...", key, t.name)
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := t.resolve(key)
	if err != nil {
		return err
	}
	return mapFSErr(os.Remove(p))
}

func (t *LocalTree) StatFile(ctx context.Context, key string) (port.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return port.FileInfo{}, err
	}
	p, err := t.resolve(key)
	if err != nil {
		return port.FileInfo{}, err
	}
	info, err := os.Stat(p)
	if err != nil {
		return port.FileInfo{}, mapFSErr(err)
	}
	if info.IsDir() {
		return port.FileInfo{}, fmt.Errorf("%w: %q is a directory", media.ErrFileNotFound, key)
	}
	ct := ""
	if mt, err := mimetype.DetectFile(p); err == nil {
		ct = mt.String()
	}
	return port.FileInfo{SizeBytes: info.Size(), ContentType: ct}, nil
}

func (t *LocalTree) GetFile(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := t.resolve(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, mapFSErr(err)
	}
	return f, nil
}

func (t *LocalTree) FileExists(ctx context.Context, key string) (bool, error) {
	_, err := t.StatFile(ctx, key)
	if errors.Is(err, media.ErrFileNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListFiles returns every file key in the tree, skipping in-flight temporary files.
func (t *LocalTree) ListFiles(ctx context.Context) ([]string, error) {
	var keys []string
	err := filepath.WalkDir(t.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		rel, err := filepath.Rel(t.root, p)
		if err != nil {
			return err
		}
		keys = append(keys, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, mapFSErr(err)
	}
	return keys, nil
}

// resolve maps a slash-separated key to an absolute path inside the root.
func (t *LocalTree) resolve(key string) (string, error) {
	clean := path.Clean(key)
	if key == "" || clean != key || clean == ".." || strings.HasPrefix(clean, "../") || path.IsAbs(clean) {
		return "", fmt.Errorf("%w: invalid key %q", media.ErrValidation, key)
	}
	return filepath.Join(t.root, filepath.FromSlash(clean)), nil
}
