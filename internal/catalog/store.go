package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/fhuszti/portfolio-medias-go/internal/model"
	"github.com/fhuszti/portfolio-medias-go/internal/port"
	"github.com/fhuszti/portfolio-medias-go/internal/usecase/media"
)

const mediaKey = "media"

// Store owns the media catalog document. Every mutation holds the writer lock
// until the document has been persisted, and rolls back in memory if it was not.
type Store struct {
	path string

	mu    sync.Mutex
	media []model.MediaAsset
	// top-level keys other than "media", kept verbatim
	extra map[string]json.RawMessage
}

// compile-time check: *Store must satisfy port.AssetCatalog
var _ port.AssetCatalog = (*Store)(nil)

// Open loads the catalog at path. A missing file is an empty catalog.
func Open(path string) (*Store, error) {
	log.Printf("opening media catalog %q...", path)
	s := &Store{path: path}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Path() string {
	return s.path
}

// Reload replaces the in-memory state with the document on disk.
func (s *Store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	assets, extra, err := readDocument(s.path)
	if err != nil {
		return err
	}
	s.media = assets
	s.extra = extra
	return nil
}

func (s *Store) List(ctx context.Context) ([]model.MediaAsset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.media), nil
}

func (s *Store) Get(ctx context.Context, id string) (model.MediaAsset, error) {
	if err := ctx.Err(); err != nil {
		return model.MediaAsset{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return model.MediaAsset{}, fmt.Errorf("%w: %q", media.ErrAssetNotFound, id)
	}
	return s.media[i], nil
}

func (s *Store) Insert(ctx context.Context, asset model.MediaAsset) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if asset.ID == "" {
		return fmt.Errorf("%w: asset id is required", media.ErrValidation)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(asset.ID) >= 0 {
		return fmt.Errorf("%w: %q", media.ErrAssetExists, asset.ID)
	}

	prev := s.media
	s.media = append(slices.Clone(prev), asset)
	if err := s.save(); err != nil {
		s.media = prev
		return err
	}
	return nil
}

// Update applies fn to a copy of the asset and persists the result.
// The id cannot be changed.
func (s *Store) Update(ctx context.Context, id string, fn func(*model.MediaAsset) error) (model.MediaAsset, error) {
	if err := ctx.Err(); err != nil {
		return model.MediaAsset{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return model.MediaAsset{}, fmt.Errorf("%w: %q", media.ErrAssetNotFound, id)
	}

	updated := s.media[i]
	if err := fn(&updated); err != nil {
		return model.MediaAsset{}, err
	}
	updated.ID = id

	prev := s.media
	s.media = slices.Clone(prev)
	s.media[i] = updated
	if err := s.save(); err != nil {
		s.media = prev
		return model.MediaAsset{}, err
	}
	return updated, nil
}

func (s *Store) Remove(ctx context.Context, id string) (model.MediaAsset, error) {
	if err := ctx.Err(); err != nil {
		return model.MediaAsset{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return model.MediaAsset{}, fmt.Errorf("%w: %q", media.ErrAssetNotFound, id)
	}

	removed := s.media[i]
	prev := s.media
	s.media = slices.Delete(slices.Clone(prev), i, i+1)
	if err := s.save(); err != nil {
		s.media = prev
		return model.MediaAsset{}, err
	}
	return removed, nil
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.media, func(a model.MediaAsset) bool { return a.ID == id })
}

// save must be called with mu held.
func (s *Store) save() error {
	doc := make(map[string]any, len(s.extra)+1)
	for k, v := range s.extra {
		doc[k] = v
	}
	assets := s.media
	if assets == nil {
		assets = []model.MediaAsset{}
	}
	doc[mediaKey] = assets

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	return writeAtomic(s.path, append(data, '\n'))
}

func readDocument(path string) ([]model.MediaAsset, map[string]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []model.MediaAsset{}, map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: reading catalog %q: %v", media.ErrIO, path, err)
	}

	doc := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("decoding catalog %q: %w", path, err)
	}
	assets := []model.MediaAsset{}
	if raw, ok := doc[mediaKey]; ok {
		if err := json.Unmarshal(raw, &assets); err != nil {
			return nil, nil, fmt.Errorf("decoding %q entries of %q: %w", mediaKey, path, err)
		}
		if assets == nil {
			assets = []model.MediaAsset{}
		}
	}
	delete(doc, mediaKey)
	return assets, doc, nil
}

// writeAtomic replaces path with data through a synced temporary sibling.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", media.ErrIO, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", media.ErrIO, err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: writing catalog: %v", media.ErrIO, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: syncing catalog: %v", media.ErrIO, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", media.ErrIO, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("%w: %v", media.ErrIO, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: replacing catalog: %v", media.ErrIO, err)
	}
	return nil
}
