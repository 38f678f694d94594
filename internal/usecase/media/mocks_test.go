package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/fhuszti/portfolio-medias-go/internal/model"
	"github.com/fhuszti/portfolio-medias-go/internal/port"
)

// memTree is an in-memory port.Tree.
type memTree struct {
	name string

	mu    sync.Mutex
	files map[string][]byte
	dirs  map[string]bool

	ensureErr error
	saveErr   error
	renameErr error
	copyErr   error
	removeErr error
	statErr   error

	saveOpts map[string]string
}

func newMemTree(name string) *memTree {
	return &memTree{name: name, files: map[string][]byte{}, dirs: map[string]bool{}}
}

func (m *memTree) put(key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[key] = data
}

func (m *memTree) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[key]
	return ok
}

func (m *memTree) content(key string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.files[key]
}

func (m *memTree) Name() string { return m.name }

func (m *memTree) EnsureDir(ctx context.Context, dir string) error {
	if m.ensureErr != nil {
		return m.ensureErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[dir] = true
	return nil
}

func (m *memTree) SaveFile(ctx context.Context, key string, reader io.Reader, fileSize int64, opts map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.saveErr != nil {
		return m.saveErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[key] = data
	m.saveOpts = opts
	return nil
}

func (m *memTree) RenameFile(ctx context.Context, srcKey, destKey string) error {
	if m.renameErr != nil {
		return m.renameErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[srcKey]
	if !ok {
		return fmt.Errorf("%w: %q", ErrFileNotFound, srcKey)
	}
	delete(m.files, srcKey)
	m.files[destKey] = data
	return nil
}

func (m *memTree) CopyFile(ctx context.Context, srcKey, destKey string) error {
	if m.copyErr != nil {
		return m.copyErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[srcKey]
	if !ok {
		return fmt.Errorf("%w: %q", ErrFileNotFound, srcKey)
	}
	m.files[destKey] = bytes.Clone(data)
	return nil
}

func (m *memTree) RemoveFile(ctx context.Context, key string) error {
	if m.removeErr != nil {
		return m.removeErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[key]; !ok {
		return fmt.Errorf("%w: %q", ErrFileNotFound, key)
	}
	delete(m.files, key)
	return nil
}

func (m *memTree) StatFile(ctx context.Context, key string) (port.FileInfo, error) {
	if m.statErr != nil {
		return port.FileInfo{}, m.statErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[key]
	if !ok {
		return port.FileInfo{}, fmt.Errorf("%w: %q", ErrFileNotFound, key)
	}
	return port.FileInfo{SizeBytes: int64(len(data)), ContentType: "image/webp"}, nil
}

func (m *memTree) GetFile(ctx context.Context, key string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFileNotFound, key)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memTree) FileExists(ctx context.Context, key string) (bool, error) {
	return m.has(key), nil
}

func (m *memTree) ListFiles(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.files))
	for k := range m.files {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

type mockTransformer struct {
	out   model.Transformed
	err   error
	delay time.Duration

	called   bool
	gotSpec  model.ImageSpec
	gotFmt   model.Format
	gotBytes []byte
}

func (m *mockTransformer) Transform(raw []byte, spec model.ImageSpec, format model.Format) (model.Transformed, error) {
	m.called = true
	m.gotSpec = spec
	m.gotFmt = format
	m.gotBytes = raw
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	return m.out, m.err
}

// memCatalog is an in-memory port.AssetCatalog.
type memCatalog struct {
	mu     sync.Mutex
	assets []model.MediaAsset

	insertErr error
	updateErr error
	removeErr error
}

func (m *memCatalog) List(ctx context.Context) ([]model.MediaAsset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.assets), nil
}

func (m *memCatalog) Get(ctx context.Context, id string) (model.MediaAsset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.assets {
		if a.ID == id {
			return a, nil
		}
	}
	return model.MediaAsset{}, fmt.Errorf("%w: %q", ErrAssetNotFound, id)
}

func (m *memCatalog) Insert(ctx context.Context, asset model.MediaAsset) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assets = append(m.assets, asset)
	return nil
}

func (m *memCatalog) Update(ctx context.Context, id string, fn func(*model.MediaAsset) error) (model.MediaAsset, error) {
	if m.updateErr != nil {
		return model.MediaAsset{}, m.updateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.assets {
		if m.assets[i].ID == id {
			if err := fn(&m.assets[i]); err != nil {
				return model.MediaAsset{}, err
			}
			return m.assets[i], nil
		}
	}
	return model.MediaAsset{}, fmt.Errorf("%w: %q", ErrAssetNotFound, id)
}

func (m *memCatalog) Remove(ctx context.Context, id string) (model.MediaAsset, error) {
	if m.removeErr != nil {
		return model.MediaAsset{}, m.removeErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, a := range m.assets {
		if a.ID == id {
			m.assets = slices.Delete(m.assets, i, i+1)
			return a, nil
		}
	}
	return model.MediaAsset{}, fmt.Errorf("%w: %q", ErrAssetNotFound, id)
}

type mockCache struct {
	delMediaCalled bool
	delEtagCalled  bool
	deletedID      string
}

func (m *mockCache) GetMediaDetails(ctx context.Context, id string) ([]byte, error) {
	return nil, nil
}
func (m *mockCache) GetEtagMediaDetails(ctx context.Context, id string) (string, error) {
	return "", nil
}
func (m *mockCache) SetMediaDetails(ctx context.Context, id string, data []byte, validUntil time.Time) {
}
func (m *mockCache) SetEtagMediaDetails(ctx context.Context, id string, etag string, validUntil time.Time) {
}
func (m *mockCache) DeleteMediaDetails(ctx context.Context, id string) error {
	m.delMediaCalled = true
	m.deletedID = id
	return nil
}
func (m *mockCache) DeleteEtagMediaDetails(ctx context.Context, id string) error {
	m.delEtagCalled = true
	return nil
}

type mockSyncer struct {
	paths []string
	errs  map[string]error
}

func (m *mockSyncer) SyncMirror(ctx context.Context, path string) error {
	m.paths = append(m.paths, path)
	return m.errs[path]
}

func fixedID(id string) port.IDGen {
	return func() string { return id }
}
