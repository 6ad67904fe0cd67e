package cmd

import (
	"context"
	"fmt"

	"slotpatch/core/pipeline"
	"slotpatch/core/storage"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var yesConfirm bool

// publishCmd uploads the translation artifacts to the shared bucket.
var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Upload the translation table and patched binary to object storage",
	Long: `Upload the translation table and the patched binary to the configured bucket,
overwriting the objects a previous publish left there.

Examples:
  # Ask before overwriting
  publish

  # Non-interactive
  publish --yes`,
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm overwriting remote artifacts (non-interactive)")

	RootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, l, err := setup()
	if err != nil {
		return err
	}
	defer l.Sync()

	artifacts := artifactsFor(cfg.Files)

	confirmed, err := confirmOverwrite(cfg.Storage, len(artifacts))
	if err != nil {
		return err
	}
	if !confirmed {
		l.Warn("Operation cancelled by user. Nothing was uploaded.")
		return nil
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to connect to storage: %w", err)
	}

	progress := newBarProgress()
	keys, err := storage.Publish(ctx, client, cfg.Storage.Bucket, cfg.Storage.Prefix, artifacts, progress)
	progress.Wait()
	if err != nil {
		return err
	}

	l.Info("Published artifacts", zap.String("bucket", cfg.Storage.Bucket), zap.Strings("keys", keys))
	return nil
}

// artifactsFor lists the files shared through storage: the table and the patched binary.
func artifactsFor(files pipeline.Files) []storage.Artifact {
	return []storage.Artifact{
		storage.NewArtifact(files.Table),
		storage.NewArtifact(files.OutputPath()),
	}
}

// confirmOverwrite prompts the user for confirmation or uses --yes flag.
func confirmOverwrite(cfg storage.Config, count int) (bool, error) {
	if yesConfirm {
		return true, nil
	}

	confirmed := false
	prompt := &survey.Confirm{
		Message: fmt.Sprintf("Upload %d artifacts to %s/%s, overwriting existing objects?", count, cfg.Bucket, cfg.Prefix),
		Default: false,
	}
	if err := survey.AskOne(prompt, &confirmed); err != nil {
		return false, fmt.Errorf("confirmation failed (use --yes when not on a terminal): %w", err)
	}
	return confirmed, nil
}
