package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Report is a generated period summary with an AI-written narrative.
type Report struct {
	ID          string
	UserID      string
	PeriodStart time.Time
	PeriodEnd   time.Time
	Income      decimal.Decimal
	Expense     decimal.Decimal
	Narrative   string
	CreatedAt   int64
}
