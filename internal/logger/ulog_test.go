package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
)

func TestNew_AddsServiceAndRequestID(t *testing.T) {
	tests := []struct {
		name      string
		ctx       context.Context
		wantReqID string
	}{
		{"outside a request", context.Background(), "system"},
		{"inside a request", context.WithValue(context.Background(), middleware.RequestIDKey, "host/abc-000001"), "host/abc-000001"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			l := New(buf, "json", slog.LevelInfo, false)
			l.InfoContext(tc.ctx, "hello")

			var rec map[string]any
			if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
				t.Fatalf("invalid JSON log line %q: %v", buf.String(), err)
			}
			if rec["svc"] != "portfolio-medias" {
				t.Errorf("svc = %v; want portfolio-medias", rec["svc"])
			}
			if rec["req_id"] != tc.wantReqID {
				t.Errorf("req_id = %v; want %s", rec["req_id"], tc.wantReqID)
			}
		})
	}
}

func TestNew_RespectsLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	l := New(buf, "text", slog.LevelWarn, false)
	l.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("info line written at warn level: %q", buf.String())
	}
	l.Warn("kept")
	if !bytes.Contains(buf.Bytes(), []byte("kept")) {
		t.Errorf("warn line missing: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARNING": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLevel(in).Level(); got != want {
			t.Errorf("parseLevel(%q) = %v; want %v", in, got, want)
		}
	}
}
