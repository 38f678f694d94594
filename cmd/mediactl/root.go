package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fhuszti/portfolio-medias-go/internal/catalog"
	"github.com/fhuszti/portfolio-medias-go/internal/config"
	"github.com/fhuszti/portfolio-medias-go/internal/logger"
	"github.com/fhuszti/portfolio-medias-go/internal/port"
	"github.com/fhuszti/portfolio-medias-go/internal/storage"
	"github.com/spf13/cobra"
)

var (
	cfg     *config.Settings
	store   *catalog.Store
	primary port.Tree
	mirror  port.Tree
)

var rootCmd = &cobra.Command{
	Use:   "mediactl",
	Short: "Maintenance commands for the portfolio media catalog",
	Long: "mediactl inspects and repairs the media catalog and the upload trees.\n" +
		"It reads the same environment (or .env file) as the API.",
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(reconcileCmd)
	rootCmd.AddCommand(specsCmd)
}

func initializeApp(cmd *cobra.Command, args []string) error {
	logger.Init()

	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	store, err = catalog.Open(cfg.CatalogPath)
	if err != nil {
		return err
	}

	tree, err := storage.NewLocalTree("primary", cfg.UploadsRoot)
	if err != nil {
		return err
	}
	primary = tree

	mirror, err = storage.NewMirrorTree(getContext(cmd), storage.MirrorOptions{
		Backend:        cfg.MirrorBackend,
		Root:           cfg.MirrorRoot,
		MinioEndpoint:  cfg.MinioEndpoint,
		MinioAccessKey: cfg.MinioAccessKey,
		MinioSecretKey: cfg.MinioSecretKey,
		MinioUseSSL:    cfg.MinioUseSSL,
		Bucket:         cfg.MirrorBucket,
	})
	return err
}

func getContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
