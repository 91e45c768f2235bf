package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Asset is something the user owns (cash, property, investments).
type Asset struct {
	ID     string
	UserID string
	Name   string

	// Kind is a free-form label such as "cash", "property", "investment".
	Kind string

	Value decimal.Decimal

	// AcquiredAt is optional.
	AcquiredAt *time.Time

	CreatedAt int64
	UpdatedAt int64
}

// Liability is something the user owes (loans, cards).
type Liability struct {
	ID     string
	UserID string
	Name   string
	Kind   string

	Balance decimal.Decimal

	// InterestRate is an annual percentage, e.g. 4.5.
	InterestRate decimal.Decimal

	DueDate *time.Time

	CreatedAt int64
	UpdatedAt int64
}
