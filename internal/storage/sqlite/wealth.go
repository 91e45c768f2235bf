package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mmynk/famledger/internal/models"
)

// CreateAsset persists a new asset.
func (s *SQLiteStore) CreateAsset(ctx context.Context, a *models.Asset) error {
	if a.ID == "" {
		a.ID = newID()
	}
	now := time.Now().Unix()
	if a.CreatedAt == 0 {
		a.CreatedAt = now
	}
	a.UpdatedAt = now

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO assets (id, user_id, name, kind, value, acquired_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.UserID, a.Name, a.Kind, a.Value.String(), nullUnix(a.AcquiredAt), a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert asset: %w", err)
	}
	return nil
}

// ListAssets returns the user's assets ordered by name.
func (s *SQLiteStore) ListAssets(ctx context.Context, userID string) ([]*models.Asset, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, name, kind, value, acquired_at, created_at, updated_at
		 FROM assets WHERE user_id = ? ORDER BY name`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	defer rows.Close()

	var assets []*models.Asset
	for rows.Next() {
		a := &models.Asset{}
		var acquired sql.NullInt64
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.Kind, &a.Value, &acquired, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		a.AcquiredAt = fromNullUnix(acquired)
		assets = append(assets, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assets: %w", err)
	}
	return assets, nil
}

// DeleteAsset removes an owned asset.
func (s *SQLiteStore) DeleteAsset(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM assets WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	return checkAffected(res, "asset", id)
}

// CreateLiability persists a new liability.
func (s *SQLiteStore) CreateLiability(ctx context.Context, l *models.Liability) error {
	if l.ID == "" {
		l.ID = newID()
	}
	now := time.Now().Unix()
	if l.CreatedAt == 0 {
		l.CreatedAt = now
	}
	l.UpdatedAt = now

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO liabilities (id, user_id, name, kind, balance, interest_rate, due_date, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.UserID, l.Name, l.Kind, l.Balance.String(), l.InterestRate.String(),
		nullUnix(l.DueDate), l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert liability: %w", err)
	}
	return nil
}

// ListLiabilities returns the user's liabilities ordered by name.
func (s *SQLiteStore) ListLiabilities(ctx context.Context, userID string) ([]*models.Liability, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, name, kind, balance, interest_rate, due_date, created_at, updated_at
		 FROM liabilities WHERE user_id = ? ORDER BY name`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list liabilities: %w", err)
	}
	defer rows.Close()

	var liabilities []*models.Liability
	for rows.Next() {
		l := &models.Liability{}
		var due sql.NullInt64
		if err := rows.Scan(&l.ID, &l.UserID, &l.Name, &l.Kind, &l.Balance, &l.InterestRate,
			&due, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan liability: %w", err)
		}
		l.DueDate = fromNullUnix(due)
		liabilities = append(liabilities, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate liabilities: %w", err)
	}
	return liabilities, nil
}

// DeleteLiability removes an owned liability.
func (s *SQLiteStore) DeleteLiability(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM liabilities WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete liability: %w", err)
	}
	return checkAffected(res, "liability", id)
}
