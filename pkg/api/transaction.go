package api

import "github.com/shopspring/decimal"

// CreateTransactionRequest adds a manual entry. Date defaults to today.
type CreateTransactionRequest struct {
	Type           string          `json:"type"`
	Amount         decimal.Decimal `json:"amount"`
	Description    string          `json:"description"`
	Date           string          `json:"date,omitempty"`
	CategoryID     string          `json:"categoryId,omitempty"`
	FamilyMemberID string          `json:"familyMemberId,omitempty"`
}

type CreateTransactionResponse struct {
	Transaction *Transaction `json:"transaction"`
}

// ListTransactionsRequest filters by inclusive dates; empty fields are ignored.
type ListTransactionsRequest struct {
	From       string `json:"from,omitempty"`
	To         string `json:"to,omitempty"`
	CategoryID string `json:"categoryId,omitempty"`
	Type       string `json:"type,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

type ListTransactionsResponse struct {
	Transactions []*Transaction `json:"transactions"`
}

// UpdateTransactionRequest replaces the editable fields of a transaction.
type UpdateTransactionRequest struct {
	ID             string          `json:"id"`
	Type           string          `json:"type"`
	Amount         decimal.Decimal `json:"amount"`
	Description    string          `json:"description"`
	Date           string          `json:"date"`
	CategoryID     string          `json:"categoryId,omitempty"`
	FamilyMemberID string          `json:"familyMemberId,omitempty"`
}

type UpdateTransactionResponse struct {
	Transaction *Transaction `json:"transaction"`
}

type DeleteTransactionRequest struct {
	ID string `json:"id"`
}

type DeleteTransactionResponse struct{}

// GetDashboardRequest defaults to the current calendar month.
type GetDashboardRequest struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

type GetDashboardResponse struct {
	From        string           `json:"from"`
	To          string           `json:"to"`
	Income      decimal.Decimal  `json:"income"`
	Expense     decimal.Decimal  `json:"expense"`
	Net         decimal.Decimal  `json:"net"`
	SavingsRate float64          `json:"savingsRate"`
	ByCategory  []*CategoryTotal `json:"byCategory"`
	Recent      []*Transaction   `json:"recent"`
}
