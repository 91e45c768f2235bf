// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/mmynk/famledger/internal/models"
)

// ErrNotFound is returned when a row does not exist or belongs to another user.
var ErrNotFound = errors.New("not found")

// TransactionFilter narrows ListTransactions.
// Zero values mean "no constraint". Results are ordered newest first.
type TransactionFilter struct {
	From       time.Time
	To         time.Time // exclusive
	CategoryID string
	Type       string
	Limit      int
}

// ProfileStore persists accounts.
type ProfileStore interface {
	CreateProfile(ctx context.Context, p *models.Profile) error
	GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error)
	GetProfileByID(ctx context.Context, id string) (*models.Profile, error)
	GetProfileByChatID(ctx context.Context, chatID string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, p *models.Profile) error
}

// SubscriptionStore persists billing state, one row per profile.
type SubscriptionStore interface {
	UpsertSubscription(ctx context.Context, sub *models.Subscription) error
	GetSubscription(ctx context.Context, userID string) (*models.Subscription, error)
	ListSubscriptions(ctx context.Context) ([]*models.Subscription, error)
}

// TransactionStore persists income and expense entries.
type TransactionStore interface {
	CreateTransaction(ctx context.Context, t *models.Transaction) error
	GetTransaction(ctx context.Context, userID, id string) (*models.Transaction, error)
	ListTransactions(ctx context.Context, userID string, f TransactionFilter) ([]*models.Transaction, error)
	UpdateTransaction(ctx context.Context, t *models.Transaction) error
	DeleteTransaction(ctx context.Context, userID, id string) error
}

// CategoryStore persists categories.
type CategoryStore interface {
	CreateCategory(ctx context.Context, c *models.Category) error
	ListCategories(ctx context.Context, userID string) ([]*models.Category, error)
	DeleteCategory(ctx context.Context, userID, id string) error
}

// FamilyStore persists households and their members.
type FamilyStore interface {
	CreateFamily(ctx context.Context, f *models.Family) error
	GetFamily(ctx context.Context, id string) (*models.Family, error)
	AddFamilyMember(ctx context.Context, m *models.FamilyMember) error
	ListFamilyMembers(ctx context.Context, familyID string) ([]*models.FamilyMember, error)
	RemoveFamilyMember(ctx context.Context, familyID, memberID string) error
}

// WealthStore persists assets and liabilities.
type WealthStore interface {
	CreateAsset(ctx context.Context, a *models.Asset) error
	ListAssets(ctx context.Context, userID string) ([]*models.Asset, error)
	DeleteAsset(ctx context.Context, userID, id string) error
	CreateLiability(ctx context.Context, l *models.Liability) error
	ListLiabilities(ctx context.Context, userID string) ([]*models.Liability, error)
	DeleteLiability(ctx context.Context, userID, id string) error
}

// CurationStore persists curator output.
type CurationStore interface {
	UpsertPattern(ctx context.Context, p *models.TransactionPattern) error
	ListPatterns(ctx context.Context, userID string) ([]*models.TransactionPattern, error)
	// CreateSuggestion stores s unless a pending suggestion of the same kind
	// already exists for the transaction, or a suggestion with the same target
	// (related transaction or category) was already accepted or rejected.
	// It reports whether a row was written.
	CreateSuggestion(ctx context.Context, s *models.TransactionSuggestion) (bool, error)
	GetSuggestion(ctx context.Context, userID, id string) (*models.TransactionSuggestion, error)
	ListSuggestions(ctx context.Context, userID, status string) ([]*models.TransactionSuggestion, error)
	SetSuggestionStatus(ctx context.Context, userID, id, status string) error
}

// ReportStore persists generated reports.
type ReportStore interface {
	CreateReport(ctx context.Context, r *models.Report) error
	ListReports(ctx context.Context, userID string) ([]*models.Report, error)
}

// Store defines the full storage surface.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	ProfileStore
	SubscriptionStore
	TransactionStore
	CategoryStore
	FamilyStore
	WealthStore
	CurationStore
	ReportStore

	// Close releases any resources held by the store.
	Close() error
}
