package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mmynk/famledger/internal/models"
)

const profileColumns = `id, email, display_name, password_hash, role, family_id, messaging_chat_id, currency, created_at, updated_at`

// CreateProfile inserts a new profile into the database.
func (s *SQLiteStore) CreateProfile(ctx context.Context, p *models.Profile) error {
	if p.ID == "" {
		p.ID = newID()
	}
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO profiles (`+profileColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Email, p.DisplayName, p.PasswordHash, p.Role,
		nullString(p.FamilyID), nullString(p.MessagingChatID), p.Currency,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// GetProfileByEmail retrieves a profile by email address.
func (s *SQLiteStore) GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	row := s.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE email = ?`, email)
	p, err := scanProfile(row)
	if err != nil {
		return nil, notFound(err, "profile", email)
	}
	return p, nil
}

// GetProfileByID retrieves a profile by ID.
func (s *SQLiteStore) GetProfileByID(ctx context.Context, id string) (*models.Profile, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = ?`, id)
	p, err := scanProfile(row)
	if err != nil {
		return nil, notFound(err, "profile", id)
	}
	return p, nil
}

// GetProfileByChatID retrieves the profile linked to a messaging chat.
func (s *SQLiteStore) GetProfileByChatID(ctx context.Context, chatID string) (*models.Profile, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE messaging_chat_id = ?`, chatID)
	p, err := scanProfile(row)
	if err != nil {
		return nil, notFound(err, "profile for chat", chatID)
	}
	return p, nil
}

// UpdateProfile writes the mutable profile fields.
func (s *SQLiteStore) UpdateProfile(ctx context.Context, p *models.Profile) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE profiles SET display_name = ?, role = ?, family_id = ?, messaging_chat_id = ?, currency = ?, updated_at = ?
		 WHERE id = ?`,
		p.DisplayName, p.Role, nullString(p.FamilyID), nullString(p.MessagingChatID), p.Currency, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return checkAffected(res, "profile", p.ID)
}

func scanProfile(row scanner) (*models.Profile, error) {
	p := &models.Profile{}
	var familyID, chatID sql.NullString
	if err := row.Scan(&p.ID, &p.Email, &p.DisplayName, &p.PasswordHash, &p.Role,
		&familyID, &chatID, &p.Currency, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.FamilyID = familyID.String
	p.MessagingChatID = chatID.String
	return p, nil
}
