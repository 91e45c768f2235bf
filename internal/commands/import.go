package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmynk/famledger/internal/importer"
)

func newImportCommand(configPath *string) *cobra.Command {
	var email, file, format string

	registry := importer.DefaultRegistry()
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a bank CSV export into an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), *configPath, registry, email, file, format)
		},
	}

	cmd.Flags().StringVar(&email, "user", "", "account email (required)")
	_ = cmd.MarkFlagRequired("user")
	cmd.Flags().StringVar(&file, "file", "", "CSV file to import (required)")
	_ = cmd.MarkFlagRequired("file")
	cmd.Flags().StringVar(&format, "format", "generic", "file format: "+strings.Join(registry.Formats(), ", "))

	return cmd
}

func runImport(ctx context.Context, configPath string, registry *importer.Registry, email, file, format string) error {
	parser := registry.Get(format)
	if parser == nil {
		return fmt.Errorf("unknown format %q (have %s)", format, strings.Join(registry.Formats(), ", "))
	}

	loader, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	store, err := openStore(loader.Config())
	if err != nil {
		return err
	}
	defer store.Close()

	userID, err := lookupUser(ctx, store, email)
	if err != nil {
		return err
	}

	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("opening %s: %w", file, err)
	}
	defer f.Close()

	sum, err := importer.Import(ctx, store, userID, parser, f)
	if sum != nil {
		fmt.Printf("Imported %d transactions (income %s, expense %s)\n",
			sum.Imported, sum.Income.StringFixed(2), sum.Expense.StringFixed(2))
	}
	if err != nil {
		return fmt.Errorf("importing %s: %w", file, err)
	}
	return nil
}
