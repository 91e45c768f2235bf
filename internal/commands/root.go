// Package commands implements the famledger command line.
package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/famledger/internal/config"
	"github.com/mmynk/famledger/internal/storage/sqlite"
	"github.com/mmynk/famledger/pkg/logging"
)

// Version is set at build time.
var Version = "dev"

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "famledger",
		Short:   "Family finance backend",
		Version: Version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./"+config.DefaultFile+")")

	rootCmd.AddCommand(
		newServeCommand(&configPath),
		newInitCommand(),
		newCurateCommand(&configPath),
		newImportCommand(&configPath),
		newGrantCommand(&configPath),
	)

	return rootCmd
}

// loadConfig reads the config and sets up logging from it.
func loadConfig(path string) (*config.Loader, error) {
	loader, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	logging.SetupWithLevel(loader.Config().Log.Level)
	return loader, nil
}

// openStore opens the configured database.
func openStore(cfg *config.Config) (*sqlite.SQLiteStore, error) {
	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", cfg.Database.Path, err)
	}
	return store, nil
}

// lookupUser resolves an account by email.
func lookupUser(ctx context.Context, store *sqlite.SQLiteStore, email string) (string, error) {
	p, err := store.GetProfileByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("looking up %s: %w", email, err)
	}
	return p.ID, nil
}
