package model

// Report collects the findings of a read-only health scan.
// Errors are broken references, warnings are dead weight or drift.
type Report struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func NewReport() Report {
	return Report{Errors: []string{}, Warnings: []string{}}
}

func (r *Report) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

func (r *Report) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

func (r Report) Valid() bool {
	return len(r.Errors) == 0
}
