package main

import (
	"errors"

	mediaSvc "github.com/fhuszti/portfolio-medias-go/internal/usecase/media"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report drift between the media catalog and the upload trees",
	Long: `Compare every catalog entry with the files on disk.

Missing primary files and paths outside the project directory are errors.
Missing mirror copies, size mismatches and orphan files are warnings.`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	checker := mediaSvc.NewConsistencyChecker(store, primary, mirror)
	report, err := checker.CheckConsistency(getContext(cmd))
	if err != nil {
		return err
	}

	printReport(cmd.OutOrStdout(), "consistency", report)
	if !report.Valid() {
		return errors.New("catalog and files are out of sync")
	}
	return nil
}
