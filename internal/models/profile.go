package models

import "time"

// Roles a profile can hold.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Profile represents a registered account.
type Profile struct {
	// ID is the unique identifier for the profile (UUID format).
	ID string

	// Email is the login address (unique, lowercased).
	Email string

	// DisplayName is shown in the dashboard header and reports.
	DisplayName string

	// PasswordHash is the bcrypt hash of the password.
	PasswordHash string

	// Role is RoleUser or RoleAdmin.
	Role string

	// FamilyID links the profile to a household. Empty when solo.
	FamilyID string

	// MessagingChatID is the chat identifier from the messaging platform.
	// Webhook messages from this chat are attributed to the profile.
	MessagingChatID string

	// Currency is the ISO 4217 code used when rendering amounts.
	Currency string

	// CreatedAt is the Unix timestamp when the profile was created.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last profile change.
	UpdatedAt int64
}

// NewProfile creates a profile with a fresh timestamp and default role.
// The ID is assigned by the store.
func NewProfile(email, displayName, passwordHash string) *Profile {
	now := time.Now().Unix()
	return &Profile{
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		Role:         RoleUser,
		Currency:     "USD",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsAdmin reports whether the profile may use admin tooling.
func (p *Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}
