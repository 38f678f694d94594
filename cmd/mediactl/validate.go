package main

import (
	"errors"

	"github.com/fhuszti/portfolio-medias-go/internal/integrity"
	mediaSvc "github.com/fhuszti/portfolio-medias-go/internal/usecase/media"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check project references against the data catalogs",
	Long: `Scan projects.json and its sibling catalogs for references to
types, skills, tags, medias and links that do not exist, and report
catalog entries no project uses.

Exits with a non-zero status when broken references are found.`,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	checker := integrity.NewChecker(cfg.DataDir, mediaSvc.NewMediaLister(store))
	report, err := checker.CheckIntegrity(getContext(cmd))
	if err != nil {
		return err
	}

	printReport(cmd.OutOrStdout(), "integrity", report)
	if !report.Valid() {
		return errors.New("broken references found")
	}
	return nil
}
