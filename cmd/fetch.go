package cmd

import (
	"context"
	"fmt"

	"slotpatch/core/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// fetchCmd downloads the shared translation artifacts.
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the published translation table and patched binary",
	Long: `Download the translation table and the patched binary from the configured bucket
into their local paths. Artifacts that were never published are skipped.`,
	RunE: runFetch,
}

func init() {
	RootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, l, err := setup()
	if err != nil {
		return err
	}
	defer l.Sync()

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to connect to storage: %w", err)
	}

	progress := newBarProgress()
	fetched, missing, err := storage.Fetch(ctx, client, cfg.Storage.Bucket, cfg.Storage.Prefix, artifactsFor(cfg.Files), progress)
	progress.Wait()
	if err != nil {
		return err
	}

	for _, name := range missing {
		l.Info("Artifact not published yet, skipped", zap.String("name", name))
	}
	l.Info("Fetched artifacts", zap.String("bucket", cfg.Storage.Bucket), zap.Strings("names", fetched))
	return nil
}
