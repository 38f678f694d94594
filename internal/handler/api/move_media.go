package api

import (
	"encoding/json"
	"net/http"

	"github.com/fhuszti/portfolio-medias-go/internal/api_context"
	"github.com/fhuszti/portfolio-medias-go/internal/logger"
	"github.com/fhuszti/portfolio-medias-go/internal/port"
	"github.com/fhuszti/portfolio-medias-go/internal/validation"
)

type MoveMediaRequest struct {
	OldProject *string `json:"oldProject" validate:"omitempty,projectid"`
	NewProject *string `json:"newProject" validate:"required,projectid"`
}

type MoveMediaResponse struct {
	Success bool `json:"success"`
	port.MoveMediaOutput
}

// MoveMediaHandler reassigns a media to another project.
func MoveMediaHandler(svc port.MediaLibrary) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		var req MoveMediaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request payload", err)
			return
		}

		if errs := validation.ValidateStruct(req); errs != nil {
			errsJSON, err := validation.ErrorsToJson(errs)
			if err != nil {
				WriteError(w, http.StatusInternalServerError, "failed to encode validation errors", err)
				return
			}
			RespondRawJSON(w, http.StatusBadRequest, []byte(errsJSON))
			logger.Warnf(r.Context(), "❌  Validation failed: %s", errsJSON)
			return
		}

		out, err := svc.Relocate(r.Context(), port.RelocateMediaInput{
			ID:         id,
			OldProject: req.OldProject,
			NewProject: *req.NewProject,
		})
		if err != nil {
			writeMediaError(w, "Failed to move media", err)
			return
		}

		RespondJSON(w, http.StatusOK, MoveMediaResponse{Success: true, MoveMediaOutput: out})
		logger.Infof(r.Context(), "✅  Successfully moved media #%s to %q", id, out.NewPath)
	}
}
