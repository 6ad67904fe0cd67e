package cmd

import (
	"context"
	"fmt"

	"slotpatch/core/database"
	"slotpatch/core/pipeline"
	"slotpatch/feature/memory"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dryRunTranslate bool
	useMemory       bool
	translateFiles  pipeline.Files
)

// translateCmd runs one reconcile and patch pass.
var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Regenerate the translation table and the patched binary",
	Long: `Scan the original and the previously patched binary, reconcile them with the
translation table and write both the regenerated table and the patched binary.

Examples:
  # Regular run with the configured files
  translate

  # Report only
  translate --dry-run

  # Merge the shared translation memory before reconciling
  translate --memory`,
	RunE: runTranslate,
}

func init() {
	translateCmd.Flags().BoolVar(&dryRunTranslate, "dry-run", false, "Run every stage but write nothing")
	translateCmd.Flags().BoolVar(&useMemory, "memory", false, "Merge translations from the translation memory database")
	translateCmd.Flags().StringVar(&translateFiles.Original, "original", "", "Original binary (overrides FILES_ORIGINAL)")
	translateCmd.Flags().StringVar(&translateFiles.Patched, "patched", "", "Previously patched binary (overrides FILES_PATCHED)")
	translateCmd.Flags().StringVar(&translateFiles.Output, "output", "", "Output binary (overrides FILES_OUTPUT)")
	translateCmd.Flags().StringVar(&translateFiles.Addresses, "addresses", "", "Address range file (overrides FILES_ADDRESSES)")
	translateCmd.Flags().StringVar(&translateFiles.Table, "table", "", "Translation table (overrides FILES_TABLE)")

	RootCmd.AddCommand(translateCmd)
}

func runTranslate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, l, err := setup()
	if err != nil {
		return err
	}
	defer l.Sync()

	opts := pipeline.Options{
		Files:  overrideFiles(cfg.Files, translateFiles),
		Scan:   cfg.Scan,
		DryRun: dryRunTranslate,
	}

	if useMemory {
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		svc := memory.NewService(db, l)
		if err := svc.Migrate(ctx); err != nil {
			return err
		}
		extra, err := svc.Pull(ctx)
		if err != nil {
			return err
		}
		opts.Extra = extra
	}

	l.Info("Starting translation pass",
		zap.String("original", opts.Files.Original),
		zap.String("patched", opts.Files.Patched),
		zap.String("output", opts.Files.OutputPath()),
		zap.Bool("dry_run", opts.DryRun),
	)

	if _, err := pipeline.Run(ctx, opts, l); err != nil {
		return err
	}
	return nil
}

// overrideFiles replaces configured paths with the non-empty ones in flags.
func overrideFiles(files, flags pipeline.Files) pipeline.Files {
	if flags.Original != "" {
		files.Original = flags.Original
	}
	if flags.Patched != "" {
		files.Patched = flags.Patched
	}
	if flags.Output != "" {
		files.Output = flags.Output
	}
	if flags.Addresses != "" {
		files.Addresses = flags.Addresses
	}
	if flags.Table != "" {
		files.Table = flags.Table
	}
	return files
}
