package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mmynk/famledger/internal/models"
)

// CreateFamily persists a family and links the owner's profile to it.
func (s *SQLiteStore) CreateFamily(ctx context.Context, f *models.Family) error {
	if f.ID == "" {
		f.ID = newID()
	}
	if f.CreatedAt == 0 {
		f.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO families (id, name, owner_id, created_at) VALUES (?, ?, ?, ?)`,
		f.ID, f.Name, f.OwnerID, f.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert family: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE profiles SET family_id = ?, updated_at = ? WHERE id = ?`,
		f.ID, f.CreatedAt, f.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to link owner to family: %w", err)
	}
	if err := checkAffected(res, "profile", f.OwnerID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetFamily retrieves a family by ID.
func (s *SQLiteStore) GetFamily(ctx context.Context, id string) (*models.Family, error) {
	f := &models.Family{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, owner_id, created_at FROM families WHERE id = ?`, id,
	).Scan(&f.ID, &f.Name, &f.OwnerID, &f.CreatedAt)
	if err != nil {
		return nil, notFound(err, "family", id)
	}
	return f, nil
}

// AddFamilyMember persists a new member.
func (s *SQLiteStore) AddFamilyMember(ctx context.Context, m *models.FamilyMember) error {
	if m.ID == "" {
		m.ID = newID()
	}
	if m.CreatedAt == 0 {
		m.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO family_members (id, family_id, name, relationship, profile_id, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.FamilyID, m.Name, m.Relationship, nullString(m.ProfileID), m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert family member: %w", err)
	}
	return nil
}

// ListFamilyMembers returns the members of a family ordered by name.
func (s *SQLiteStore) ListFamilyMembers(ctx context.Context, familyID string) ([]*models.FamilyMember, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, family_id, name, relationship, profile_id, created_at
		 FROM family_members WHERE family_id = ? ORDER BY name`, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list family members: %w", err)
	}
	defer rows.Close()

	var members []*models.FamilyMember
	for rows.Next() {
		m := &models.FamilyMember{}
		var profileID sql.NullString
		if err := rows.Scan(&m.ID, &m.FamilyID, &m.Name, &m.Relationship, &profileID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan family member: %w", err)
		}
		m.ProfileID = profileID.String
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate family members: %w", err)
	}
	return members, nil
}

// RemoveFamilyMember deletes a member from a family.
func (s *SQLiteStore) RemoveFamilyMember(ctx context.Context, familyID, memberID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM family_members WHERE id = ? AND family_id = ?`, memberID, familyID)
	if err != nil {
		return fmt.Errorf("failed to delete family member: %w", err)
	}
	return checkAffected(res, "family member", memberID)
}
