package main

import (
	"fmt"
	"io"

	"github.com/fhuszti/portfolio-medias-go/internal/model"
)

// printReport writes a report the way operators read it in a terminal.
func printReport(w io.Writer, title string, r model.Report) {
	_, _ = fmt.Fprintf(w, "%s: %d errors, %d warnings\n", title, len(r.Errors), len(r.Warnings))
	for _, e := range r.Errors {
		_, _ = fmt.Fprintf(w, "  ❌  %s\n", e)
	}
	for _, warn := range r.Warnings {
		_, _ = fmt.Fprintf(w, "  ⚠️  %s\n", warn)
	}
	if r.Valid() {
		_, _ = fmt.Fprintln(w, "✅  OK")
	}
}
