package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/mmynk/famledger/internal/models"
	"github.com/mmynk/famledger/internal/storage"
)

const transactionColumns = `id, user_id, family_member_id, category_id, type, amount, description, date, source, recurrence, created_at, updated_at`

// CreateTransaction persists a new transaction.
func (s *SQLiteStore) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	if t.ID == "" {
		t.ID = newID()
	}
	now := time.Now().Unix()
	if t.CreatedAt == 0 {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
	if t.Source == "" {
		t.Source = models.SourceManual
	}
	t.Date = models.Day(t.Date)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (`+transactionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.UserID, nullString(t.FamilyMemberID), nullString(t.CategoryID), t.Type,
		t.Amount.String(), t.Description, formatDate(t.Date), t.Source, t.Recurrence,
		t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// GetTransaction retrieves a transaction owned by userID.
func (s *SQLiteStore) GetTransaction(ctx context.Context, userID, id string) (*models.Transaction, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = ? AND user_id = ?`, id, userID)
	t, err := scanTransaction(row)
	if err != nil {
		return nil, notFound(err, "transaction", id)
	}
	return t, nil
}

// ListTransactions returns the user's transactions matching f, newest first.
func (s *SQLiteStore) ListTransactions(ctx context.Context, userID string, f storage.TransactionFilter) ([]*models.Transaction, error) {
	var (
		where = []string{"user_id = ?"}
		args  = []any{userID}
	)
	if !f.From.IsZero() {
		where = append(where, "date >= ?")
		args = append(args, formatDate(f.From))
	}
	if !f.To.IsZero() {
		where = append(where, "date < ?")
		args = append(args, formatDate(f.To))
	}
	if f.CategoryID != "" {
		where = append(where, "category_id = ?")
		args = append(args, f.CategoryID)
	}
	if f.Type != "" {
		where = append(where, "type = ?")
		args = append(args, f.Type)
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE ` +
		strings.Join(where, " AND ") + ` ORDER BY date DESC, created_at DESC`
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txns []*models.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return txns, nil
}

// UpdateTransaction overwrites the mutable fields of an owned transaction.
func (s *SQLiteStore) UpdateTransaction(ctx context.Context, t *models.Transaction) error {
	t.UpdatedAt = time.Now().Unix()
	t.Date = models.Day(t.Date)

	res, err := s.db.ExecContext(ctx,
		`UPDATE transactions SET family_member_id = ?, category_id = ?, type = ?, amount = ?, description = ?,
		     date = ?, recurrence = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		nullString(t.FamilyMemberID), nullString(t.CategoryID), t.Type, t.Amount.String(), t.Description,
		formatDate(t.Date), t.Recurrence, t.UpdatedAt, t.ID, t.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return checkAffected(res, "transaction", t.ID)
}

// DeleteTransaction removes an owned transaction.
func (s *SQLiteStore) DeleteTransaction(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return checkAffected(res, "transaction", id)
}

func scanTransaction(row scanner) (*models.Transaction, error) {
	t := &models.Transaction{}
	var memberID, categoryID sql.NullString
	var date string
	if err := row.Scan(&t.ID, &t.UserID, &memberID, &categoryID, &t.Type, &t.Amount,
		&t.Description, &date, &t.Source, &t.Recurrence, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	d, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	t.Date = d
	t.FamilyMemberID = memberID.String
	t.CategoryID = categoryID.String
	return t, nil
}
