package middleware

import (
	"fmt"
	"net/http"

	"github.com/fhuszti/portfolio-medias-go/internal/api_context"
	"github.com/fhuszti/portfolio-medias-go/internal/handler/api"
	"github.com/fhuszti/portfolio-medias-go/internal/validation"
	"github.com/go-chi/chi/v5"
)

func WithMediaID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := chi.URLParam(r, "id")
			if id == "" {
				api.WriteError(w, http.StatusBadRequest, "ID is required", nil)
				return
			}
			if err := validation.ValidateVar(id, "assetid"); err != nil {
				api.WriteError(w, http.StatusBadRequest, fmt.Sprintf("ID %q is not a valid media ID", id), nil)
				return
			}

			// stash it in context and call the real handler
			next.ServeHTTP(w, r.WithContext(api_context.WithID(r.Context(), id)))
		})
	}
}
