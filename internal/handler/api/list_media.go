package api

import (
	"net/http"

	"github.com/fhuszti/portfolio-medias-go/internal/logger"
	"github.com/fhuszti/portfolio-medias-go/internal/model"
	"github.com/fhuszti/portfolio-medias-go/internal/port"
)

type ListMediaResponse struct {
	Media []model.MediaAsset `json:"media"`
}

// ListMediaHandler returns every catalog entry in catalog order.
func ListMediaHandler(svc port.MediaLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListMedia(r.Context())
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "Could not list medias", err)
			return
		}
		if items == nil {
			items = []model.MediaAsset{}
		}

		w.Header().Set("Cache-Control", "no-cache")
		RespondJSON(w, http.StatusOK, ListMediaResponse{Media: items})
		logger.Infof(r.Context(), "✅  Listed %d medias", len(items))
	}
}
