package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/mmynk/famledger/internal/models"
)

// UpsertPattern inserts a pattern or refreshes the existing row with the same key.
func (s *SQLiteStore) UpsertPattern(ctx context.Context, p *models.TransactionPattern) error {
	if p.ID == "" {
		p.ID = newID()
	}
	if p.CreatedAt == 0 {
		p.CreatedAt = time.Now().Unix()
	}

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO transaction_patterns (id, user_id, description, description_key, amount, type, frequency,
		     occurrences, average_interval_days, last_date, next_expected_date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id, description_key, amount, type) DO UPDATE SET
		     description = excluded.description,
		     frequency = excluded.frequency,
		     occurrences = excluded.occurrences,
		     average_interval_days = excluded.average_interval_days,
		     last_date = excluded.last_date,
		     next_expected_date = excluded.next_expected_date
		 RETURNING id, created_at`,
		p.ID, p.UserID, p.Description, strings.ToLower(strings.TrimSpace(p.Description)), p.Amount.String(), p.Type, p.Frequency, p.Occurrences,
		p.AverageIntervalDays, formatDate(p.LastDate), formatDate(p.NextExpectedDate), p.CreatedAt,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert pattern: %w", err)
	}
	return nil
}

// ListPatterns returns the user's recurring patterns, soonest expected first.
func (s *SQLiteStore) ListPatterns(ctx context.Context, userID string) ([]*models.TransactionPattern, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, description, amount, type, frequency, occurrences, average_interval_days,
		     last_date, next_expected_date, created_at
		 FROM transaction_patterns WHERE user_id = ? ORDER BY next_expected_date`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list patterns: %w", err)
	}
	defer rows.Close()

	var patterns []*models.TransactionPattern
	for rows.Next() {
		p := &models.TransactionPattern{}
		var last, next string
		if err := rows.Scan(&p.ID, &p.UserID, &p.Description, &p.Amount, &p.Type, &p.Frequency,
			&p.Occurrences, &p.AverageIntervalDays, &last, &next, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pattern: %w", err)
		}
		if p.LastDate, err = parseDate(last); err != nil {
			return nil, err
		}
		if p.NextExpectedDate, err = parseDate(next); err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate patterns: %w", err)
	}
	return patterns, nil
}

// CreateSuggestion stores a suggestion unless one of the same kind is pending
// for the transaction, or the same finding was already reviewed.
func (s *SQLiteStore) CreateSuggestion(ctx context.Context, sg *models.TransactionSuggestion) (bool, error) {
	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM transaction_suggestions
		 WHERE user_id = ? AND transaction_id = ? AND kind = ?
		   AND (status = ? OR (COALESCE(related_transaction_id, '') = ? AND COALESCE(category_id, '') = ?))
		 LIMIT 1`,
		sg.UserID, sg.TransactionID, sg.Kind, models.SuggestionPending, sg.RelatedTransactionID, sg.CategoryID,
	).Scan(&exists)
	if err == nil {
		return false, nil
	}
	if err != sql.ErrNoRows {
		return false, fmt.Errorf("failed to check existing suggestion: %w", err)
	}

	if sg.ID == "" {
		sg.ID = newID()
	}
	if sg.CreatedAt == 0 {
		sg.CreatedAt = time.Now().Unix()
	}
	if sg.Status == "" {
		sg.Status = models.SuggestionPending
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO transaction_suggestions (id, user_id, transaction_id, kind, related_transaction_id,
		     category_id, confidence, reason, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sg.ID, sg.UserID, sg.TransactionID, sg.Kind, nullString(sg.RelatedTransactionID),
		nullString(sg.CategoryID), sg.Confidence, sg.Reason, sg.Status, sg.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert suggestion: %w", err)
	}
	return true, nil
}

const suggestionColumns = `id, user_id, transaction_id, kind, related_transaction_id, category_id, confidence, reason, status, created_at`

// GetSuggestion retrieves an owned suggestion.
func (s *SQLiteStore) GetSuggestion(ctx context.Context, userID, id string) (*models.TransactionSuggestion, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+suggestionColumns+` FROM transaction_suggestions WHERE id = ? AND user_id = ?`, id, userID)
	sg, err := scanSuggestion(row)
	if err != nil {
		return nil, notFound(err, "suggestion", id)
	}
	return sg, nil
}

// ListSuggestions returns the user's suggestions, filtered by status when non-empty.
func (s *SQLiteStore) ListSuggestions(ctx context.Context, userID, status string) ([]*models.TransactionSuggestion, error) {
	query := `SELECT ` + suggestionColumns + ` FROM transaction_suggestions WHERE user_id = ?`
	args := []any{userID}
	if status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list suggestions: %w", err)
	}
	defer rows.Close()

	var out []*models.TransactionSuggestion
	for rows.Next() {
		sg, err := scanSuggestion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan suggestion: %w", err)
		}
		out = append(out, sg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate suggestions: %w", err)
	}
	return out, nil
}

// SetSuggestionStatus records a review decision.
func (s *SQLiteStore) SetSuggestionStatus(ctx context.Context, userID, id, status string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE transaction_suggestions SET status = ? WHERE id = ? AND user_id = ?`, status, id, userID)
	if err != nil {
		return fmt.Errorf("failed to update suggestion: %w", err)
	}
	return checkAffected(res, "suggestion", id)
}

func scanSuggestion(row scanner) (*models.TransactionSuggestion, error) {
	sg := &models.TransactionSuggestion{}
	var related, category sql.NullString
	if err := row.Scan(&sg.ID, &sg.UserID, &sg.TransactionID, &sg.Kind, &related, &category,
		&sg.Confidence, &sg.Reason, &sg.Status, &sg.CreatedAt); err != nil {
		return nil, err
	}
	sg.RelatedTransactionID = related.String
	sg.CategoryID = category.String
	return sg, nil
}
