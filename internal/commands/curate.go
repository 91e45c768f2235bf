package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/famledger/internal/curator"
)

func newCurateCommand(configPath *string) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "curate",
		Short: "Run the curator for one account",
		Long:  "Flags duplicates and detects recurring patterns. Category suggestions need an AI provider.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCurate(cmd.Context(), *configPath, email)
		},
	}

	cmd.Flags().StringVar(&email, "user", "", "account email (required)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func runCurate(ctx context.Context, configPath, email string) error {
	loader, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	cfg := loader.Config()

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	userID, err := lookupUser(ctx, store, email)
	if err != nil {
		return err
	}

	opts := []curator.Option{
		curator.WithThresholds(curator.Thresholds{AutoApply: cfg.Thresholds.AutoApply, Review: cfg.Thresholds.Review}),
		curator.WithFetchLimit(cfg.Curation.FetchLimit),
	}
	res, err := curator.New(store, opts...).Run(ctx, userID)
	if err != nil {
		return fmt.Errorf("curating: %w", err)
	}

	fmt.Printf("Scanned %d transactions for %s\n", res.Scanned, email)
	fmt.Printf("  duplicates: %d (%d new)\n", res.Duplicates, res.NewDuplicates)
	fmt.Printf("  recurring patterns: %d\n", res.Patterns)
	fmt.Printf("  categories applied: %d, queued: %d, discarded: %d\n", res.Applied, res.Queued, res.Discarded)
	return nil
}
