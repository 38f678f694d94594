package media

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fhuszti/portfolio-medias-go/internal/mock"
	"github.com/fhuszti/portfolio-medias-go/internal/model"
	"github.com/fhuszti/portfolio-medias-go/internal/port"
)

type libraryFixture struct {
	primary *memTree
	mirror  *memTree
	tr      *mockTransformer
	catalog *memCatalog
	cache   *mockCache
	tasks   *mock.Dispatcher
	lib     port.MediaLibrary
}

func newLibraryFixture() *libraryFixture {
	f := &libraryFixture{
		primary: newMemTree("primary"),
		mirror:  newMemTree("mirror"),
		tr: &mockTransformer{out: model.Transformed{
			Data: []byte("webp"), Width: 1200, Height: 800, SizeKB: 1, Format: model.FormatWebP,
		}},
		catalog: &memCatalog{},
		cache:   &mockCache{},
		tasks:   &mock.Dispatcher{},
	}
	f.lib = NewMediaLibrary(
		NewMediaUploader(f.primary, f.mirror, f.tr, testSpecs, fixedID("id-1"), UploadConfig{}),
		NewMediaMover(f.primary, f.mirror),
		NewMediaDeleter(f.primary, f.mirror),
		f.catalog,
		f.cache,
		f.tasks,
		Timeouts{Base: time.Second, PerMB: time.Second},
	)
	return f
}

func TestLibrary_RegisterInsertsIntoCatalog(t *testing.T) {
	f := newLibraryFixture()

	out, err := f.lib.Register(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	got, err := f.catalog.Get(context.Background(), "id-1")
	if err != nil {
		t.Fatalf("catalog entry missing: %v", err)
	}
	if got.Path != out.Asset.Path || got.Project != "" {
		t.Errorf("catalog entry = %+v", got)
	}
	if len(f.tasks.MirrorSyncPaths) != 0 {
		t.Errorf("unexpected mirror sync: %v", f.tasks.MirrorSyncPaths)
	}
}

func TestLibrary_RegisterValidationLeavesCatalogAlone(t *testing.T) {
	f := newLibraryFixture()
	in := validInput()
	in.MimeType = "text/plain"

	if _, err := f.lib.Register(context.Background(), in); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v; want ErrValidation", err)
	}
	if list, _ := f.catalog.List(context.Background()); len(list) != 0 {
		t.Errorf("catalog = %+v; want empty", list)
	}
}

func TestLibrary_RegisterCatalogFailure(t *testing.T) {
	f := newLibraryFixture()
	f.catalog.insertErr = errors.New("disk full")

	if _, err := f.lib.Register(context.Background(), validInput()); !errors.Is(err, ErrIO) {
		t.Fatalf("err = %v; want ErrIO", err)
	}
}

func TestLibrary_RegisterSchedulesMirrorSync(t *testing.T) {
	f := newLibraryFixture()
	f.mirror.saveErr = errors.New("mirror offline")

	out, err := f.lib.Register(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if len(out.Warnings) != 1 {
		t.Errorf("warnings = %v; want one", out.Warnings)
	}
	if len(f.tasks.MirrorSyncPaths) != 1 || f.tasks.MirrorSyncPaths[0] != out.Asset.Path {
		t.Errorf("enqueued = %v; want [%s]", f.tasks.MirrorSyncPaths, out.Asset.Path)
	}
}

func TestLibrary_RelocateUpdatesCatalog(t *testing.T) {
	f := newLibraryFixture()
	ctx := context.Background()
	if _, err := f.lib.Register(ctx, validInput()); err != nil {
		t.Fatalf("Register: %v", err)
	}

	out, err := f.lib.Relocate(ctx, port.RelocateMediaInput{ID: "id-1", NewProject: "p1"})
	if err != nil {
		t.Fatalf("Relocate: %v", err)
	}
	if out.NewPath != "/uploads/projects/p1/id-1.webp" {
		t.Errorf("NewPath = %q", out.NewPath)
	}
	got, _ := f.catalog.Get(ctx, "id-1")
	if got.Project != "p1" || got.Path != out.NewPath {
		t.Errorf("catalog entry = %+v", got)
	}
	if !f.primary.has("projects/p1/id-1.webp") || !f.mirror.has("projects/p1/id-1.webp") {
		t.Error("file not moved in both trees")
	}
	if !f.cache.delMediaCalled || !f.cache.delEtagCalled || f.cache.deletedID != "id-1" {
		t.Error("cache not invalidated")
	}

	back, err := f.lib.Relocate(ctx, port.RelocateMediaInput{ID: "id-1", NewProject: ""})
	if err != nil {
		t.Fatalf("Relocate back: %v", err)
	}
	if back.NewPath != "/uploads/interim/id-1.webp" || !f.primary.has("interim/id-1.webp") {
		t.Errorf("move back ended at %q", back.NewPath)
	}
}

func TestLibrary_RelocateExplicitOldProject(t *testing.T) {
	f := newLibraryFixture()
	ctx := context.Background()
	// catalog says p0 but the file is still in interim
	f.catalog.assets = []model.MediaAsset{{ID: "a", Path: "/uploads/projects/p0/a.webp", Project: "p0"}}
	f.primary.put("interim/a.webp", []byte("a"))

	empty := ""
	if _, err := f.lib.Relocate(ctx, port.RelocateMediaInput{ID: "a", OldProject: &empty, NewProject: "p1"}); err != nil {
		t.Fatalf("Relocate: %v", err)
	}
	if !f.primary.has("projects/p1/a.webp") || f.primary.has("interim/a.webp") {
		t.Error("file not renamed from the caller's old project")
	}
}

func TestLibrary_RelocateErrors(t *testing.T) {
	f := newLibraryFixture()
	ctx := context.Background()

	if _, err := f.lib.Relocate(ctx, port.RelocateMediaInput{ID: "nope", NewProject: "p1"}); !errors.Is(err, ErrAssetNotFound) {
		t.Errorf("unknown id err = %v; want ErrAssetNotFound", err)
	}

	f.catalog.assets = []model.MediaAsset{{ID: "a", Path: "/uploads/interim/a.webp"}}
	if _, err := f.lib.Relocate(ctx, port.RelocateMediaInput{ID: "a", NewProject: "p1"}); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("missing file err = %v; want ErrFileNotFound", err)
	}
	if got, _ := f.catalog.Get(ctx, "a"); got.Project != "" || got.Path != "/uploads/interim/a.webp" {
		t.Errorf("catalog changed after a failed move: %+v", got)
	}
}

func TestLibrary_RelocateSchedulesBothMirrorPaths(t *testing.T) {
	f := newLibraryFixture()
	ctx := context.Background()
	f.catalog.assets = []model.MediaAsset{{ID: "a", Path: "/uploads/interim/a.webp"}}
	f.primary.put("interim/a.webp", []byte("a"))

	if _, err := f.lib.Relocate(ctx, port.RelocateMediaInput{ID: "a", NewProject: "p1"}); err != nil {
		t.Fatalf("Relocate: %v", err)
	}
	want := []string{"/uploads/projects/p1/a.webp", "/uploads/interim/a.webp"}
	if len(f.tasks.MirrorSyncPaths) != 2 || f.tasks.MirrorSyncPaths[0] != want[0] || f.tasks.MirrorSyncPaths[1] != want[1] {
		t.Errorf("enqueued = %v; want %v", f.tasks.MirrorSyncPaths, want)
	}
}

func TestLibrary_RemoveTwice(t *testing.T) {
	f := newLibraryFixture()
	ctx := context.Background()
	if _, err := f.lib.Register(ctx, validInput()); err != nil {
		t.Fatalf("Register: %v", err)
	}

	out, err := f.lib.Remove(ctx, "id-1")
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if len(out.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", out.Warnings)
	}
	if f.primary.has("interim/id-1.webp") || f.mirror.has("interim/id-1.webp") {
		t.Error("files not removed")
	}
	if !f.cache.delMediaCalled {
		t.Error("cache not invalidated")
	}

	if _, err := f.lib.Remove(ctx, "id-1"); !errors.Is(err, ErrAssetNotFound) {
		t.Errorf("second Remove err = %v; want ErrAssetNotFound", err)
	}
}

func TestLibrary_RemoveMissingFileStillDropsEntry(t *testing.T) {
	f := newLibraryFixture()
	ctx := context.Background()
	f.catalog.assets = []model.MediaAsset{{ID: "a", Path: "/uploads/interim/a.webp"}}

	out, err := f.lib.Remove(ctx, "a")
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if len(out.Warnings) == 0 {
		t.Error("expected a warning for the missing file")
	}
	if list, _ := f.catalog.List(ctx); len(list) != 0 {
		t.Errorf("catalog = %+v; want empty", list)
	}
}

func TestLibrary_RemoveSchedulesMirrorSyncOnMirrorFailure(t *testing.T) {
	f := newLibraryFixture()
	ctx := context.Background()
	f.catalog.assets = []model.MediaAsset{{ID: "a", Path: "/uploads/projects/p1/a.webp"}}
	f.primary.put("projects/p1/a.webp", []byte("a"))
	f.mirror.put("projects/p1/a.webp", []byte("a"))
	f.mirror.removeErr = errors.New("bucket unreachable")

	out, err := f.lib.Remove(ctx, "a")
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if len(out.Warnings) != 1 {
		t.Errorf("warnings = %v; want one", out.Warnings)
	}
	if list, _ := f.catalog.List(ctx); len(list) != 0 {
		t.Errorf("catalog = %+v; want empty", list)
	}
	want := "/uploads/projects/p1/a.webp"
	if len(f.tasks.MirrorSyncPaths) != 1 || f.tasks.MirrorSyncPaths[0] != want {
		t.Errorf("enqueued = %v; want [%s]", f.tasks.MirrorSyncPaths, want)
	}
}

func TestLibrary_RemoveMissingMirrorFileSchedulesNothing(t *testing.T) {
	f := newLibraryFixture()
	ctx := context.Background()
	f.catalog.assets = []model.MediaAsset{{ID: "a", Path: "/uploads/interim/a.webp"}}
	f.primary.put("interim/a.webp", []byte("a"))

	if _, err := f.lib.Remove(ctx, "a"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if f.tasks.MirrorSyncCalled {
		t.Errorf("unexpected mirror sync: %v", f.tasks.MirrorSyncPaths)
	}
}

func TestLibrary_RemoveKeepsEntryOnPrimaryFailure(t *testing.T) {
	f := newLibraryFixture()
	ctx := context.Background()
	f.catalog.assets = []model.MediaAsset{{ID: "a", Path: "/uploads/interim/a.webp"}}
	f.primary.put("interim/a.webp", []byte("a"))
	f.primary.removeErr = errors.New("permission denied")

	if _, err := f.lib.Remove(ctx, "a"); !errors.Is(err, ErrIO) {
		t.Fatalf("err = %v; want ErrIO", err)
	}
	if _, err := f.catalog.Get(ctx, "a"); err != nil {
		t.Errorf("catalog entry dropped after a failed delete: %v", err)
	}
}

func TestTimeouts_For(t *testing.T) {
	tm := Timeouts{Base: 10 * time.Second, PerMB: 2 * time.Second}
	tests := []struct {
		size int
		want time.Duration
	}{
		{0, 10 * time.Second},
		{1, 12 * time.Second},
		{1024 * 1024, 12 * time.Second},
		{1024*1024 + 1, 14 * time.Second},
	}
	for _, tc := range tests {
		if got := tm.For(tc.size); got != tc.want {
			t.Errorf("For(%d) = %v; want %v", tc.size, got, tc.want)
		}
	}
}
