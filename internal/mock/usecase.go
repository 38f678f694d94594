package mock

import (
	"context"

	"github.com/fhuszti/portfolio-medias-go/internal/model"
	"github.com/fhuszti/portfolio-medias-go/internal/port"
)

// MediaGetter implements port.MediaGetter for tests.
type MediaGetter struct {
	Out    *model.MediaAsset
	Err    error
	Called bool
	GotID  string
}

func (m *MediaGetter) GetMedia(ctx context.Context, id string) (*model.MediaAsset, error) {
	m.Called = true
	m.GotID = id
	return m.Out, m.Err
}

// MediaLister implements port.MediaLister for tests.
type MediaLister struct {
	Out    []model.MediaAsset
	Err    error
	Called bool
}

func (m *MediaLister) ListMedia(ctx context.Context) ([]model.MediaAsset, error) {
	m.Called = true
	return m.Out, m.Err
}

// MediaLibrary implements port.MediaLibrary for tests.
type MediaLibrary struct {
	RegisterOut port.UploadMediaOutput
	RegisterErr error
	GotRegister port.UploadMediaInput
	RegisterHit bool

	RelocateOut port.MoveMediaOutput
	RelocateErr error
	GotRelocate port.RelocateMediaInput
	RelocateHit bool

	RemoveOut port.DeleteMediaOutput
	RemoveErr error
	GotRemove string
	RemoveHit bool
}

func (m *MediaLibrary) Register(ctx context.Context, in port.UploadMediaInput) (port.UploadMediaOutput, error) {
	m.RegisterHit = true
	m.GotRegister = in
	return m.RegisterOut, m.RegisterErr
}

func (m *MediaLibrary) Relocate(ctx context.Context, in port.RelocateMediaInput) (port.MoveMediaOutput, error) {
	m.RelocateHit = true
	m.GotRelocate = in
	return m.RelocateOut, m.RelocateErr
}

func (m *MediaLibrary) Remove(ctx context.Context, id string) (port.DeleteMediaOutput, error) {
	m.RemoveHit = true
	m.GotRemove = id
	return m.RemoveOut, m.RemoveErr
}

// MirrorSyncer implements port.MirrorSyncer for tests.
type MirrorSyncer struct {
	Err     error
	Called  bool
	GotPath string
}

func (m *MirrorSyncer) SyncMirror(ctx context.Context, path string) error {
	m.Called = true
	m.GotPath = path
	return m.Err
}

// Checker implements port.IntegrityChecker and port.ConsistencyChecker for tests.
type Checker struct {
	Out    model.Report
	Err    error
	Called bool
}

func (m *Checker) CheckIntegrity(ctx context.Context) (model.Report, error) {
	m.Called = true
	return m.Out, m.Err
}

func (m *Checker) CheckConsistency(ctx context.Context) (model.Report, error) {
	m.Called = true
	return m.Out, m.Err
}
