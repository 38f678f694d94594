package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fhuszti/portfolio-medias-go/internal/logger"
	"github.com/fhuszti/portfolio-medias-go/internal/usecase/media"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteError(w http.ResponseWriter, status int, msg string, err error) {
	ctx := context.Background()
	if err != nil {
		logger.Errorf(ctx, "❌  %s: %v", msg, err)
	} else {
		logger.Error(ctx, "❌  "+msg)
	}
	w.Header().Set("Cache-Control", "no-store, max-age=0, must-revalidate")
	RespondJSON(w, status, ErrorResponse{Error: msg})
}

func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Errorf(context.Background(), "❌  Failed to encode JSON response: %v", err)
	}
}

func RespondRawJSON(w http.ResponseWriter, status int, raw []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(raw); err != nil {
		logger.Errorf(context.Background(), "❌  Failed to write JSON payload: %v", err)
	}
}

// statusFor maps use case errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, media.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, media.ErrAssetNotFound):
		return http.StatusNotFound
	case errors.Is(err, media.ErrFileNotFound):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// messageFor keeps internal error details out of client responses.
func messageFor(status int, fallback string, err error) string {
	switch status {
	case http.StatusBadRequest, http.StatusConflict:
		return err.Error()
	case http.StatusNotFound:
		return "Media not found"
	default:
		return fallback
	}
}

func writeMediaError(w http.ResponseWriter, fallback string, err error) {
	status := statusFor(err)
	WriteError(w, status, messageFor(status, fallback, err), err)
}
