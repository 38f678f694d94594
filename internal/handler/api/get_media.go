package api

import (
	"net/http"

	"github.com/fhuszti/portfolio-medias-go/internal/api_context"
	"github.com/fhuszti/portfolio-medias-go/internal/logger"
	"github.com/fhuszti/portfolio-medias-go/internal/port"
)

func GetMediaHandler(renderer port.HTTPRenderer, svc port.MediaGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		raw, etag, err := renderer.RenderGetMedia(r.Context(), svc, id)
		if err != nil {
			writeMediaError(w, "Could not get media details", err)
			return
		}

		w.Header().Set("ETag", etag)
		w.Header().Set("Cache-Control", "public, max-age=300")
		if match := r.Header.Get("If-None-Match"); match == etag {
			w.WriteHeader(http.StatusNotModified)
			logger.Infof(r.Context(), "✅  Returning cached media #%s", id)
			return
		}

		RespondRawJSON(w, http.StatusOK, raw)
		logger.Infof(r.Context(), "✅  Successfully returned details for media #%s", id)
	}
}
