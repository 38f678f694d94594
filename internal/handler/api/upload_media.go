package api

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/fhuszti/portfolio-medias-go/internal/logger"
	"github.com/fhuszti/portfolio-medias-go/internal/model"
	"github.com/fhuszti/portfolio-medias-go/internal/port"
	"github.com/fhuszti/portfolio-medias-go/internal/validation"
	"github.com/gabriel-vasile/mimetype"
)

const multipartMemory = 32 << 20

type UploadMediaForm struct {
	Format   string `json:"format" validate:"omitempty,oneof=webp jpg jpeg png"`
	Project  string `json:"project" validate:"projectid"`
	Category string `json:"category" validate:"omitempty,oneof=thumbnail gallery hero background profile"`
}

type UploadMediaResponse struct {
	Success bool `json:"success"`
	model.MediaAsset
	Warnings []string `json:"warnings,omitempty"`
}

// UploadMediaHandler ingests a multipart upload and registers it in the catalog.
func UploadMediaHandler(svc port.MediaLibrary) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				WriteError(w, http.StatusRequestEntityTooLarge, "File is too large", err)
				return
			}
			WriteError(w, http.StatusBadRequest, "invalid multipart payload", err)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			WriteError(w, http.StatusBadRequest, "No file uploaded", err)
			return
		}
		defer func() {
			_ = file.Close()
		}()

		form := UploadMediaForm{
			Format:   strings.ToLower(strings.TrimSpace(r.FormValue("format"))),
			Project:  strings.TrimSpace(r.FormValue("project")),
			Category: strings.ToLower(strings.TrimSpace(r.FormValue("category"))),
		}
		if errs := validation.ValidateStruct(form); errs != nil {
			errsJSON, err := validation.ErrorsToJson(errs)
			if err != nil {
				WriteError(w, http.StatusInternalServerError, "failed to encode validation errors", err)
				return
			}
			RespondRawJSON(w, http.StatusBadRequest, []byte(errsJSON))
			logger.Warnf(r.Context(), "❌  Validation failed: %s", errsJSON)
			return
		}

		data, err := io.ReadAll(file)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "could not read uploaded file", err)
			return
		}

		// anything but an explicit "false" keeps optimisation on
		optimize := !strings.EqualFold(strings.TrimSpace(r.FormValue("optimize")), "false")

		out, err := svc.Register(r.Context(), port.UploadMediaInput{
			Data:     data,
			Filename: header.Filename,
			MimeType: detectMimeType(header.Header.Get("Content-Type"), data),
			Optimize: optimize,
			Format:   form.Format,
			Project:  form.Project,
			Category: form.Category,
		})
		if err != nil {
			writeMediaError(w, "Failed to upload media", err)
			return
		}

		RespondJSON(w, http.StatusOK, UploadMediaResponse{
			Success:    true,
			MediaAsset: out.Asset,
			Warnings:   out.Warnings,
		})
		logger.Infof(r.Context(), "✅  Successfully uploaded media #%s", out.Asset.ID)
	}
}

// detectMimeType trusts the declared part type unless it is missing or generic.
func detectMimeType(declared string, data []byte) string {
	ct, _, _ := strings.Cut(declared, ";")
	ct = strings.ToLower(strings.TrimSpace(ct))
	if ct != "" && ct != "application/octet-stream" {
		return ct
	}
	detected, _, _ := strings.Cut(mimetype.Detect(data).String(), ";")
	return detected
}
