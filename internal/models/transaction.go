package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Transaction sources.
const (
	SourceManual    = "manual"
	SourceAssistant = "assistant"
	SourceMessaging = "messaging"
	SourceImport    = "import"
)

// Transaction is a single income or expense entry.
type Transaction struct {
	// ID is the unique identifier for the transaction (UUID format).
	ID string

	// UserID is the owning profile.
	UserID string

	// FamilyMemberID optionally attributes the entry to a household member.
	FamilyMemberID string

	// CategoryID is empty for uncategorized entries.
	CategoryID string

	// Type is TypeIncome or TypeExpense.
	Type string

	// Amount is always positive; Type carries the sign.
	Amount decimal.Decimal

	Description string

	// Date is the calendar day the transaction happened (UTC midnight).
	Date time.Time

	// Source records how the entry was created.
	Source string

	// Recurrence is the frequency label assigned by the curator
	// (weekly, biweekly, monthly) or empty.
	Recurrence string

	CreatedAt int64
	UpdatedAt int64
}

// ValidType reports whether t is a known transaction type.
func ValidType(t string) bool {
	return t == TypeIncome || t == TypeExpense
}

// Day truncates t to midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SignedAmount returns Amount negated for expenses.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}
