package main

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	mediaSvc "github.com/fhuszti/portfolio-medias-go/internal/usecase/media"
	"github.com/spf13/cobra"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Copy every cataloged media from the primary tree to the mirror",
	RunE:  runReconcile,
}

func runReconcile(cmd *cobra.Command, args []string) error {
	if mirror == nil {
		return errors.New("no mirror configured, set MIRROR_BACKEND")
	}

	backlog := mediaSvc.NewMirrorBacklog(store, mediaSvc.NewMirrorSyncer(primary, mirror))
	synced, err := backlog.SyncAll(getContext(cmd))
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "🔄 %s medias synced to %s\n", humanize.Comma(int64(synced)), mirror.Name())
	return err
}
