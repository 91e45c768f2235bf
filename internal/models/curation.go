package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recurrence frequencies.
const (
	FrequencyWeekly   = "weekly"
	FrequencyBiweekly = "biweekly"
	FrequencyMonthly  = "monthly"
)

// Suggestion kinds and statuses.
const (
	SuggestionDuplicate = "duplicate"
	SuggestionCategory  = "category"

	SuggestionPending  = "pending"
	SuggestionAccepted = "accepted"
	SuggestionRejected = "rejected"
)

// TransactionPattern is a recurring group of similar transactions.
// Patterns are keyed by (UserID, case-insensitive Description, Amount, Type);
// re-running the curator updates the existing row and its Description.
type TransactionPattern struct {
	ID          string
	UserID      string
	Description string
	Amount      decimal.Decimal
	Type        string
	Frequency   string
	Occurrences int

	AverageIntervalDays float64

	LastDate         time.Time
	NextExpectedDate time.Time

	CreatedAt int64
}

// TransactionSuggestion is a curator finding awaiting user review.
type TransactionSuggestion struct {
	ID            string
	UserID        string
	TransactionID string

	// Kind is SuggestionDuplicate or SuggestionCategory.
	Kind string

	// RelatedTransactionID is the earlier row a duplicate matches.
	RelatedTransactionID string

	// CategoryID is the proposed category for SuggestionCategory.
	CategoryID string

	Confidence float64
	Reason     string
	Status     string
	CreatedAt  int64
}
