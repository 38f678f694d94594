package api

import (
	"net/http"

	"github.com/fhuszti/portfolio-medias-go/internal/api_context"
	"github.com/fhuszti/portfolio-medias-go/internal/logger"
	"github.com/fhuszti/portfolio-medias-go/internal/port"
)

type DeleteMediaResponse struct {
	Success bool `json:"success"`
	port.DeleteMediaOutput
}

// DeleteMediaHandler deletes a media by ID.
func DeleteMediaHandler(svc port.MediaLibrary) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		out, err := svc.Remove(r.Context(), id)
		if err != nil {
			writeMediaError(w, "Failed to delete media", err)
			return
		}

		RespondJSON(w, http.StatusOK, DeleteMediaResponse{Success: true, DeleteMediaOutput: out})
		logger.Infof(r.Context(), "🗑️  Successfully deleted media #%s", id)
	}
}
