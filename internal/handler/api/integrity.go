package api

import (
	"net/http"

	"github.com/fhuszti/portfolio-medias-go/internal/logger"
	"github.com/fhuszti/portfolio-medias-go/internal/port"
)

type IntegrityResponse struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// IntegrityHandler runs the referential integrity scan over the data catalogs.
func IntegrityHandler(checker port.IntegrityChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := checker.CheckIntegrity(r.Context())
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "Could not check data integrity", err)
			return
		}

		resp := IntegrityResponse{Valid: report.Valid(), Errors: report.Errors, Warnings: report.Warnings}
		if resp.Errors == nil {
			resp.Errors = []string{}
		}
		if resp.Warnings == nil {
			resp.Warnings = []string{}
		}

		w.Header().Set("Cache-Control", "no-store")
		RespondJSON(w, http.StatusOK, resp)
		if !resp.Valid {
			logger.Warnf(r.Context(), "⚠️  Integrity check found %d errors and %d warnings", len(resp.Errors), len(resp.Warnings))
			return
		}
		logger.Infof(r.Context(), "✅  Integrity check passed with %d warnings", len(resp.Warnings))
	}
}
