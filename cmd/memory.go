package cmd

import (
	"context"
	"fmt"

	"slotpatch/core/database"
	"slotpatch/core/table"
	"slotpatch/feature/memory"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// memoryCmd is the parent command for translation memory operations.
var memoryCmd = &cobra.Command{
	Use:   "memory",
	Short: "Manage the shared translation memory",
}

// memoryPushCmd uploads the local table into the translation memory.
var memoryPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upsert every translation of the local table into the translation memory",
	RunE:  runMemoryPush,
}

func init() {
	memoryCmd.AddCommand(memoryPushCmd)
	RootCmd.AddCommand(memoryCmd)
}

func runMemoryPush(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, l, err := setup()
	if err != nil {
		return err
	}
	defer l.Sync()

	tbl, found, err := table.Load(cfg.Files.Table)
	if err != nil {
		return err
	}
	if !found || tbl.Len() == 0 {
		l.Warn("No translations to push", zap.String("path", cfg.Files.Table))
		return nil
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	svc := memory.NewService(db, l)
	if err := svc.Migrate(ctx); err != nil {
		return err
	}

	pushed, err := svc.Push(ctx, tbl)
	if err != nil {
		return err
	}

	l.Info("Pushed translations", zap.Int("count", pushed), zap.String("driver", cfg.Database.Driver))
	return nil
}
