package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/mmynk/famledger/internal/models"
)

// CreateReport persists a generated report.
func (s *SQLiteStore) CreateReport(ctx context.Context, r *models.Report) error {
	if r.ID == "" {
		r.ID = newID()
	}
	if r.CreatedAt == 0 {
		r.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO reports (id, user_id, period_start, period_end, income, expense, narrative, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.UserID, formatDate(r.PeriodStart), formatDate(r.PeriodEnd),
		r.Income.String(), r.Expense.String(), r.Narrative, r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}
	return nil
}

// ListReports returns the user's reports, newest first.
func (s *SQLiteStore) ListReports(ctx context.Context, userID string) ([]*models.Report, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, period_start, period_end, income, expense, narrative, created_at
		 FROM reports WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var reports []*models.Report
	for rows.Next() {
		r := &models.Report{}
		var start, end string
		if err := rows.Scan(&r.ID, &r.UserID, &start, &end, &r.Income, &r.Expense, &r.Narrative, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		if r.PeriodStart, err = parseDate(start); err != nil {
			return nil, err
		}
		if r.PeriodEnd, err = parseDate(end); err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reports: %w", err)
	}
	return reports, nil
}
