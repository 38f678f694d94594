package middleware

import (
	"net/http"

	"github.com/fhuszti/portfolio-medias-go/internal/handler/api"
)

// WithMaxBodySize caps the request body. Reads past the limit fail with *http.MaxBytesError.
func WithMaxBodySize(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > n {
				api.WriteError(w, http.StatusRequestEntityTooLarge, "File is too large", nil)
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, n)
			next.ServeHTTP(w, r)
		})
	}
}
