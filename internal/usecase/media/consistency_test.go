package media

import (
	"context"
	"errors"
	"testing"

	"github.com/fhuszti/portfolio-medias-go/internal/model"
)

func TestCheckConsistency(t *testing.T) {
	catalog := &memCatalog{assets: []model.MediaAsset{
		{ID: "ok", Path: "/uploads/projects/p1/ok.webp", Project: "p1"},
		{ID: "gone", Path: "/uploads/interim/gone.webp"},
		{ID: "astray", Path: "/uploads/projects/p2/astray.webp", Project: "p1"},
		{ID: "broken", Path: "interim/broken.webp"},
		{ID: "nomirror", Path: "/uploads/interim/nomirror.webp"},
		{ID: "drift", Path: "/uploads/interim/drift.webp"},
	}}
	primary, mirror := newMemTree("primary"), newMemTree("mirror")
	for _, k := range []string{"projects/p1/ok.webp", "projects/p2/astray.webp", "interim/nomirror.webp"} {
		primary.put(k, []byte("same"))
	}
	primary.put("interim/drift.webp", []byte("longer content"))
	primary.put("interim/orphan.webp", []byte("?"))
	for _, k := range []string{"projects/p1/ok.webp", "projects/p2/astray.webp"} {
		mirror.put(k, []byte("same"))
	}
	mirror.put("interim/drift.webp", []byte("short"))

	report, err := NewConsistencyChecker(catalog, primary, mirror).CheckConsistency(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// gone: missing primary, astray: wrong directory, broken: invalid path
	if len(report.Errors) != 3 {
		t.Errorf("errors = %v; want 3", report.Errors)
	}
	// nomirror, drift, orphan
	if len(report.Warnings) != 3 {
		t.Errorf("warnings = %v; want 3", report.Warnings)
	}
	if report.Valid() {
		t.Error("report should not be valid")
	}
}

func TestCheckConsistency_CleanTreesWithoutMirror(t *testing.T) {
	catalog := &memCatalog{assets: []model.MediaAsset{{ID: "a", Path: "/uploads/interim/a.webp"}}}
	primary := newMemTree("primary")
	primary.put("interim/a.webp", []byte("a"))

	report, err := NewConsistencyChecker(catalog, primary, nil).CheckConsistency(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !report.Valid() || len(report.Warnings) != 0 {
		t.Errorf("report = %+v; want clean", report)
	}
}

func TestCheckConsistency_PrimaryStatFailure(t *testing.T) {
	catalog := &memCatalog{assets: []model.MediaAsset{{ID: "a", Path: "/uploads/interim/a.webp"}}}
	primary := newMemTree("primary")
	primary.statErr = errors.New("io error")

	if _, err := NewConsistencyChecker(catalog, primary, nil).CheckConsistency(context.Background()); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestGetMedia(t *testing.T) {
	catalog := &memCatalog{assets: []model.MediaAsset{{ID: "a", Path: "/uploads/interim/a.webp"}, {ID: "b"}}}
	ctx := context.Background()

	got, err := NewMediaGetter(catalog).GetMedia(ctx, "a")
	if err != nil {
		t.Fatalf("GetMedia: %v", err)
	}
	if got.Path != "/uploads/interim/a.webp" {
		t.Errorf("Path = %q", got.Path)
	}
	if _, err := NewMediaGetter(catalog).GetMedia(ctx, "zzz"); !errors.Is(err, ErrAssetNotFound) {
		t.Errorf("err = %v; want ErrAssetNotFound", err)
	}

	list, err := NewMediaLister(catalog).ListMedia(ctx)
	if err != nil || len(list) != 2 {
		t.Errorf("ListMedia = %d entries, %v; want 2", len(list), err)
	}
}
