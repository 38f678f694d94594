package media

import (
	"context"
	"errors"
	"testing"

	"github.com/fhuszti/portfolio-medias-go/internal/model"
)

func TestSyncMirror(t *testing.T) {
	tests := []struct {
		name         string
		inPrimary    bool
		inMirror     bool
		wantInMirror bool
	}{
		{"copies a missing mirror file", true, false, true},
		{"refreshes an existing mirror file", true, true, true},
		{"drops a mirror file without primary", false, true, false},
		{"nothing anywhere", false, false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			primary, mirror := newMemTree("primary"), newMemTree("mirror")
			if tc.inPrimary {
				primary.put("projects/p1/a.webp", []byte("fresh"))
			}
			if tc.inMirror {
				mirror.put("projects/p1/a.webp", []byte("stale"))
			}

			if err := NewMirrorSyncer(primary, mirror).SyncMirror(context.Background(), "/uploads/projects/p1/a.webp"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := mirror.has("projects/p1/a.webp"); got != tc.wantInMirror {
				t.Fatalf("mirror has file = %v; want %v", got, tc.wantInMirror)
			}
			if tc.wantInMirror && string(mirror.content("projects/p1/a.webp")) != "fresh" {
				t.Errorf("mirror content = %q; want fresh", mirror.content("projects/p1/a.webp"))
			}
			if tc.wantInMirror && !mirror.dirs["projects/p1"] {
				t.Error("mirror directory not ensured")
			}
		})
	}
}

func TestSyncMirror_NoMirrorIsNoop(t *testing.T) {
	if err := NewMirrorSyncer(newMemTree("primary"), nil).SyncMirror(context.Background(), "not even a path"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSyncMirror_Errors(t *testing.T) {
	primary, mirror := newMemTree("primary"), newMemTree("mirror")
	svc := NewMirrorSyncer(primary, mirror)
	ctx := context.Background()

	if err := svc.SyncMirror(ctx, "/elsewhere/a.webp"); !errors.Is(err, ErrValidation) {
		t.Errorf("invalid path err = %v; want ErrValidation", err)
	}

	primary.put("interim/a.webp", []byte("a"))
	mirror.saveErr = errors.New("bucket gone")
	if err := svc.SyncMirror(ctx, "/uploads/interim/a.webp"); err == nil {
		t.Error("expected mirror save error, got nil")
	}
}

func TestMirrorBacklog_SyncAll(t *testing.T) {
	catalog := &memCatalog{assets: []model.MediaAsset{
		{ID: "a", Path: "/uploads/interim/a.webp"},
		{ID: "b", Path: "/uploads/projects/p1/b.webp"},
		{ID: "c", Path: "/uploads/projects/p2/c.webp"},
	}}
	boom := errors.New("boom")
	syncer := &mockSyncer{errs: map[string]error{"/uploads/projects/p1/b.webp": boom}}

	n, err := NewMirrorBacklog(catalog, syncer).SyncAll(context.Background())
	if !errors.Is(err, boom) {
		t.Errorf("err = %v; want boom", err)
	}
	if n != 2 {
		t.Errorf("synced = %d; want 2", n)
	}
	if len(syncer.paths) != 3 {
		t.Errorf("synced paths = %v; want all three", syncer.paths)
	}
}

func TestMirrorBacklog_EmptyCatalog(t *testing.T) {
	syncer := &mockSyncer{}
	n, err := NewMirrorBacklog(&memCatalog{}, syncer).SyncAll(context.Background())
	if err != nil || n != 0 {
		t.Errorf("SyncAll = %d, %v; want 0, nil", n, err)
	}
	if len(syncer.paths) != 0 {
		t.Errorf("unexpected syncs: %v", syncer.paths)
	}
}
