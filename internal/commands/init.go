package commands

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/famledger/internal/config"
)

func newInitCommand() *cobra.Command {
	var path string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(path, force)
		},
	}

	cmd.Flags().StringVar(&path, "path", config.DefaultFile, "where to write the config")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}

func runInit(path string, force bool) error {
	cfg := config.Default()

	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return fmt.Errorf("generating jwt secret: %w", err)
	}
	cfg.JWT.Secret = hex.EncodeToString(secret)

	if err := config.Save(path, cfg, force); err != nil {
		return err
	}

	fmt.Printf("Wrote %s\n", path)
	fmt.Println("Next steps:")
	fmt.Println("  1. Set ai.provider and ai.api_key to enable the assistant")
	fmt.Println("  2. Set messaging.secret_token to enable the messaging webhook")
	fmt.Println("  3. Run: famledger serve")
	return nil
}
