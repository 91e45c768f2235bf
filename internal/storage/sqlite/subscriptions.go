package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mmynk/famledger/internal/models"
)

// UpsertSubscription inserts or replaces the profile's subscription row.
func (s *SQLiteStore) UpsertSubscription(ctx context.Context, sub *models.Subscription) error {
	if sub.ID == "" {
		sub.ID = newID()
	}
	now := time.Now().Unix()
	if sub.CreatedAt == 0 {
		sub.CreatedAt = now
	}
	sub.UpdatedAt = now

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO subscriptions (id, user_id, plan, status, trial_end, current_period_end, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
		     plan = excluded.plan,
		     status = excluded.status,
		     trial_end = excluded.trial_end,
		     current_period_end = excluded.current_period_end,
		     updated_at = excluded.updated_at`,
		sub.ID, sub.UserID, sub.Plan, sub.Status,
		nullUnix(sub.TrialEnd), nullUnix(sub.CurrentPeriodEnd),
		sub.CreatedAt, sub.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert subscription: %w", err)
	}
	return nil
}

// GetSubscription retrieves the subscription for a profile.
func (s *SQLiteStore) GetSubscription(ctx context.Context, userID string) (*models.Subscription, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, plan, status, trial_end, current_period_end, created_at, updated_at
		 FROM subscriptions WHERE user_id = ?`, userID)
	sub, err := scanSubscription(row)
	if err != nil {
		return nil, notFound(err, "subscription for user", userID)
	}
	return sub, nil
}

// ListSubscriptions returns every subscription, most recently updated first.
func (s *SQLiteStore) ListSubscriptions(ctx context.Context) ([]*models.Subscription, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, plan, status, trial_end, current_period_end, created_at, updated_at
		 FROM subscriptions ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []*models.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate subscriptions: %w", err)
	}
	return subs, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSubscription(row scanner) (*models.Subscription, error) {
	sub := &models.Subscription{}
	var trialEnd, periodEnd sql.NullInt64
	if err := row.Scan(&sub.ID, &sub.UserID, &sub.Plan, &sub.Status,
		&trialEnd, &periodEnd, &sub.CreatedAt, &sub.UpdatedAt); err != nil {
		return nil, err
	}
	sub.TrialEnd = fromNullUnix(trialEnd)
	sub.CurrentPeriodEnd = fromNullUnix(periodEnd)
	return sub, nil
}
