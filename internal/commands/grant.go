package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmynk/famledger/internal/access"
	"github.com/mmynk/famledger/internal/models"
	"github.com/mmynk/famledger/internal/storage"
)

// grantOptions describe one manual subscription change.
type grantOptions struct {
	Email  string
	Status string
	Plan   string
	Until  string
	Role   string
}

func newGrantCommand(configPath *string) *cobra.Command {
	var opts grantOptions

	cmd := &cobra.Command{
		Use:   "grant",
		Short: "Set an account's subscription or role",
		Example: `  famledger grant --email ana@example.com --status active
  famledger grant --email ana@example.com --status trial --until 2025-12-31
  famledger grant --email ops@example.com --status active --role admin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGrant(cmd.Context(), *configPath, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Email, "email", "", "account email (required)")
	_ = cmd.MarkFlagRequired("email")
	cmd.Flags().StringVar(&opts.Status, "status", models.SubscriptionActive, "trial, active, past_due, canceled or expired")
	cmd.Flags().StringVar(&opts.Plan, "plan", "", "plan name (keeps the current plan when empty)")
	cmd.Flags().StringVar(&opts.Until, "until", "", "trial or paid period end, YYYY-MM-DD")
	cmd.Flags().StringVar(&opts.Role, "role", "", "also set the role: user or admin")

	return cmd
}

func runGrant(ctx context.Context, configPath string, opts grantOptions) error {
	loader, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	store, err := openStore(loader.Config())
	if err != nil {
		return err
	}
	defer store.Close()

	now := time.Now()
	sub, err := applyGrant(ctx, store, opts, now)
	if err != nil {
		return err
	}

	d := access.Evaluate(sub, now)
	fmt.Printf("%s: status=%s plan=%s access=%t (%s)\n", opts.Email, sub.Status, sub.Plan, d.Granted, d.Reason)
	return nil
}

// grantStore is what applyGrant needs from storage.
type grantStore interface {
	storage.ProfileStore
	storage.SubscriptionStore
}

// applyGrant updates the account's subscription, and its role when asked.
func applyGrant(ctx context.Context, store grantStore, opts grantOptions, now time.Time) (*models.Subscription, error) {
	if !models.ValidSubscriptionStatus(opts.Status) {
		return nil, fmt.Errorf("invalid status %q", opts.Status)
	}
	if opts.Role != "" && opts.Role != models.RoleUser && opts.Role != models.RoleAdmin {
		return nil, fmt.Errorf("invalid role %q", opts.Role)
	}

	var until *time.Time
	if opts.Until != "" {
		t, err := time.ParseInLocation(time.DateOnly, opts.Until, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("until must be YYYY-MM-DD: %w", err)
		}
		// The whole day counts.
		t = t.Add(24*time.Hour - time.Second)
		until = &t
	}

	p, err := store.GetProfileByEmail(ctx, opts.Email)
	if err != nil {
		return nil, fmt.Errorf("looking up %s: %w", opts.Email, err)
	}

	if opts.Role != "" && opts.Role != p.Role {
		p.Role = opts.Role
		if err := store.UpdateProfile(ctx, p); err != nil {
			return nil, fmt.Errorf("updating role: %w", err)
		}
	}

	sub, err := store.GetSubscription(ctx, p.ID)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		sub = &models.Subscription{UserID: p.ID, CreatedAt: now.Unix()}
	case err != nil:
		return nil, fmt.Errorf("loading subscription: %w", err)
	}

	sub.Status = opts.Status
	if opts.Plan != "" {
		sub.Plan = opts.Plan
	}
	if sub.Plan == "" {
		sub.Plan = "family"
	}
	if until != nil {
		if opts.Status == models.SubscriptionTrial {
			sub.TrialEnd = until
		} else {
			sub.CurrentPeriodEnd = until
		}
	}

	if err := store.UpsertSubscription(ctx, sub); err != nil {
		return nil, fmt.Errorf("saving subscription: %w", err)
	}
	return sub, nil
}
