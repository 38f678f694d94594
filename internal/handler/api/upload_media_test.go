package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/fhuszti/portfolio-medias-go/internal/mock"
	"github.com/fhuszti/portfolio-medias-go/internal/model"
	"github.com/fhuszti/portfolio-medias-go/internal/port"
	"github.com/fhuszti/portfolio-medias-go/internal/usecase/media"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

type uploadPart struct {
	filename    string
	contentType string
	data        []byte
}

func newUploadRequest(t *testing.T, file *uploadPart, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("WriteField: %v", err)
		}
	}
	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, file.filename))
		if file.contentType != "" {
			h.Set("Content-Type", file.contentType)
		}
		pw, err := mw.CreatePart(h)
		if err != nil {
			t.Fatalf("CreatePart: %v", err)
		}
		if _, err := pw.Write(file.data); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/media/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadMediaHandler(t *testing.T) {
	asset := model.MediaAsset{
		ID:         "m1",
		Filename:   "photo.jpg",
		Path:       "/uploads/projects/p1/m1.webp",
		Dimensions: model.Dimensions{Width: 1200, Height: 800},
		Format:     "webp",
		Size:       42,
		Project:    "p1",
		Category:   model.CategoryGallery,
	}
	jpeg := &uploadPart{filename: "photo.jpg", contentType: "image/jpeg", data: []byte("jpeg-bytes")}

	tests := []struct {
		name           string
		file           *uploadPart
		fields         map[string]string
		svcErr         error
		wantStatus     int
		wantBodySubstr string
		wantCalled     bool
		check          func(t *testing.T, in port.UploadMediaInput)
	}{
		{
			name:       "defaults",
			file:       jpeg,
			fields:     map[string]string{"project": "p1"},
			wantStatus: http.StatusOK,
			wantCalled: true,
			check: func(t *testing.T, in port.UploadMediaInput) {
				if !in.Optimize {
					t.Error("optimize should default to true")
				}
				if in.MimeType != "image/jpeg" {
					t.Errorf("mime = %q; want image/jpeg", in.MimeType)
				}
				if in.Project != "p1" || in.Filename != "photo.jpg" {
					t.Errorf("got project %q filename %q", in.Project, in.Filename)
				}
				if string(in.Data) != "jpeg-bytes" {
					t.Errorf("data = %q", in.Data)
				}
			},
		},
		{
			name:       "explicit options",
			file:       jpeg,
			fields:     map[string]string{"optimize": "false", "format": "PNG", "category": "hero"},
			wantStatus: http.StatusOK,
			wantCalled: true,
			check: func(t *testing.T, in port.UploadMediaInput) {
				if in.Optimize {
					t.Error("optimize = true; want false")
				}
				if in.Format != "png" || in.Category != "hero" || in.Project != "" {
					t.Errorf("got format %q category %q project %q", in.Format, in.Category, in.Project)
				}
			},
		},
		{
			name:       "mime sniffed from content",
			file:       &uploadPart{filename: "pixel", contentType: "application/octet-stream", data: pngMagic},
			wantStatus: http.StatusOK,
			wantCalled: true,
			check: func(t *testing.T, in port.UploadMediaInput) {
				if in.MimeType != "image/png" {
					t.Errorf("mime = %q; want image/png", in.MimeType)
				}
			},
		},
		{
			name:           "no file",
			fields:         map[string]string{"project": "p1"},
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "No file uploaded",
		},
		{
			name:           "invalid format",
			file:           jpeg,
			fields:         map[string]string{"format": "gif"},
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: `"format":"oneof"`,
		},
		{
			name:           "invalid project",
			file:           jpeg,
			fields:         map[string]string{"project": "../etc"},
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: `"project":"projectid"`,
		},
		{
			name:       "unknown optimize value keeps optimisation",
			file:       jpeg,
			fields:     map[string]string{"optimize": "maybe"},
			wantStatus: http.StatusOK,
			wantCalled: true,
			check: func(t *testing.T, in port.UploadMediaInput) {
				if !in.Optimize {
					t.Error("optimize = false; want true for a value other than false")
				}
			},
		},
		{
			name:       "false is case insensitive",
			file:       jpeg,
			fields:     map[string]string{"optimize": " FALSE "},
			wantStatus: http.StatusOK,
			wantCalled: true,
			check: func(t *testing.T, in port.UploadMediaInput) {
				if in.Optimize {
					t.Error("optimize = true; want false")
				}
			},
		},
		{
			name:           "use case validation error",
			file:           jpeg,
			svcErr:         fmt.Errorf("%w: unsupported mime type %q", media.ErrValidation, "text/plain"),
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "unsupported mime type",
			wantCalled:     true,
		},
		{
			name:           "io failure hides details",
			file:           jpeg,
			svcErr:         fmt.Errorf("%w: /srv/uploads: permission denied", media.ErrIO),
			wantStatus:     http.StatusInternalServerError,
			wantBodySubstr: "Failed to upload media",
			wantCalled:     true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mock.MediaLibrary{
				RegisterOut: port.UploadMediaOutput{Asset: asset, Warnings: []string{"mirror lagging"}},
				RegisterErr: tc.svcErr,
			}
			rec := httptest.NewRecorder()

			UploadMediaHandler(svc).ServeHTTP(rec, newUploadRequest(t, tc.file, tc.fields))

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d; want %d (body %s)", rec.Code, tc.wantStatus, rec.Body.String())
			}
			if svc.RegisterHit != tc.wantCalled {
				t.Fatalf("service called = %v; want %v", svc.RegisterHit, tc.wantCalled)
			}
			if tc.check != nil {
				tc.check(t, svc.GotRegister)
			}
			if tc.wantBodySubstr != "" && !strings.Contains(rec.Body.String(), tc.wantBodySubstr) {
				t.Errorf("body = %q; want it to contain %q", rec.Body.String(), tc.wantBodySubstr)
			}
			if strings.Contains(rec.Body.String(), "permission denied") {
				t.Errorf("body leaks internal error: %s", rec.Body.String())
			}
		})
	}
}

func TestUploadMediaHandler_ResponseShape(t *testing.T) {
	svc := &mock.MediaLibrary{RegisterOut: port.UploadMediaOutput{
		Asset: model.MediaAsset{
			ID:         "m1",
			Filename:   "photo.jpg",
			Path:       "/uploads/interim/m1.webp",
			Dimensions: model.Dimensions{Width: 1200, Height: 800},
			Format:     "webp",
			Size:       42,
			Category:   model.CategoryGallery,
		},
		Warnings: []string{"mirror lagging"},
	}}
	rec := httptest.NewRecorder()
	file := &uploadPart{filename: "photo.jpg", contentType: "image/jpeg", data: []byte("x")}

	UploadMediaHandler(svc).ServeHTTP(rec, newUploadRequest(t, file, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d", rec.Code, http.StatusOK)
	}
	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, key := range []string{"success", "id", "filename", "path", "dimensions", "format", "size", "project", "category", "warnings"} {
		if _, ok := got[key]; !ok {
			t.Errorf("response misses %q: %v", key, got)
		}
	}
	if got["success"] != true || got["path"] != "/uploads/interim/m1.webp" || got["project"] != "" {
		t.Errorf("unexpected response %v", got)
	}
}
