package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/famledger/internal/models"
	"github.com/mmynk/famledger/internal/report"
	"github.com/mmynk/famledger/internal/storage"
	"github.com/mmynk/famledger/pkg/api"
	"github.com/mmynk/famledger/pkg/api/apiconnect"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000
	maxDescription   = 200
)

// TransactionService implements the TransactionService RPC interface.
type TransactionService struct {
	apiconnect.UnimplementedTransactionServiceHandler
	store   storage.Store
	reports *report.Builder
	now     func() time.Time
}

// NewTransactionService creates a TransactionService. The builder computes dashboards.
func NewTransactionService(store storage.Store, reports *report.Builder) *TransactionService {
	return &TransactionService{store: store, reports: reports, now: time.Now}
}

// transactionInput is the user-editable part of a transaction.
type transactionInput struct {
	Type           string
	Amount         decimal.Decimal
	Description    string
	Date           string
	CategoryID     string
	FamilyMemberID string
}

// buildTransaction validates in against the caller's categories and family.
func buildTransaction(ctx context.Context, store storage.Store, userID string, in transactionInput, today time.Time) (*models.Transaction, error) {
	typ := strings.ToLower(strings.TrimSpace(in.Type))
	if !models.ValidType(typ) {
		return nil, invalidArgument("type must be %q or %q", models.TypeIncome, models.TypeExpense)
	}
	if !in.Amount.IsPositive() {
		return nil, invalidArgument("amount must be positive")
	}
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		return nil, invalidArgument("description is required")
	}
	if len(desc) > maxDescription {
		return nil, invalidArgument("description is longer than %d characters", maxDescription)
	}
	date, err := parseDate("date", in.Date, models.Day(today))
	if err != nil {
		return nil, err
	}

	if in.CategoryID != "" {
		categories, err := store.ListCategories(ctx, userID)
		if err != nil {
			return nil, storeError("list categories", err)
		}
		var found *models.Category
		for _, c := range categories {
			if c.ID == in.CategoryID {
				found = c
				break
			}
		}
		if found == nil {
			return nil, connect.NewError(connect.CodeNotFound, errors.New("category not found"))
		}
		if found.Type != typ {
			return nil, invalidArgument("category %q is for %s transactions", found.Name, found.Type)
		}
	}

	if in.FamilyMemberID != "" {
		if err := checkFamilyMember(ctx, store, userID, in.FamilyMemberID); err != nil {
			return nil, err
		}
	}

	return &models.Transaction{
		UserID:         userID,
		FamilyMemberID: in.FamilyMemberID,
		CategoryID:     in.CategoryID,
		Type:           typ,
		Amount:         in.Amount,
		Description:    desc,
		Date:           date,
	}, nil
}

// checkFamilyMember verifies memberID belongs to the caller's family.
func checkFamilyMember(ctx context.Context, store storage.Store, userID, memberID string) error {
	profile, err := store.GetProfileByID(ctx, userID)
	if err != nil {
		return storeError("get profile", err)
	}
	if profile.FamilyID == "" {
		return connect.NewError(connect.CodeFailedPrecondition, errors.New("create a family before assigning members"))
	}
	members, err := store.ListFamilyMembers(ctx, profile.FamilyID)
	if err != nil {
		return storeError("list family members", err)
	}
	for _, m := range members {
		if m.ID == memberID {
			return nil
		}
	}
	return connect.NewError(connect.CodeNotFound, errors.New("family member not found"))
}

// CreateTransaction records a manual income or expense.
func (s *TransactionService) CreateTransaction(ctx context.Context, req *connect.Request[api.CreateTransactionRequest]) (*connect.Response[api.CreateTransactionResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	txn, err := buildTransaction(ctx, s.store, userID, transactionInput{
		Type:           req.Msg.Type,
		Amount:         req.Msg.Amount,
		Description:    req.Msg.Description,
		Date:           req.Msg.Date,
		CategoryID:     req.Msg.CategoryID,
		FamilyMemberID: req.Msg.FamilyMemberID,
	}, s.now())
	if err != nil {
		return nil, err
	}
	txn.Source = models.SourceManual

	if err := s.store.CreateTransaction(ctx, txn); err != nil {
		return nil, storeError("create transaction", err)
	}

	slog.Info("Transaction created", "user_id", userID, "transaction_id", txn.ID, "type", txn.Type)
	return connect.NewResponse(&api.CreateTransactionResponse{Transaction: toAPITransaction(txn)}), nil
}

// ListTransactions returns the caller's transactions, newest first.
func (s *TransactionService) ListTransactions(ctx context.Context, req *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.ListTransactionsResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	f := storage.TransactionFilter{CategoryID: req.Msg.CategoryID, Limit: req.Msg.Limit}
	if f.From, err = parseDate("from", req.Msg.From, time.Time{}); err != nil {
		return nil, err
	}
	to, err := parseDate("to", req.Msg.To, time.Time{})
	if err != nil {
		return nil, err
	}
	if !to.IsZero() {
		f.To = to.AddDate(0, 0, 1)
	}
	if !f.From.IsZero() && !to.IsZero() && to.Before(f.From) {
		return nil, invalidArgument("to is before from")
	}
	if req.Msg.Type != "" {
		if !models.ValidType(req.Msg.Type) {
			return nil, invalidArgument("unknown type %q", req.Msg.Type)
		}
		f.Type = req.Msg.Type
	}
	switch {
	case f.Limit <= 0:
		f.Limit = defaultListLimit
	case f.Limit > maxListLimit:
		f.Limit = maxListLimit
	}

	txns, err := s.store.ListTransactions(ctx, userID, f)
	if err != nil {
		return nil, storeError("list transactions", err)
	}
	return connect.NewResponse(&api.ListTransactionsResponse{Transactions: toAPITransactions(txns)}), nil
}

// UpdateTransaction replaces the editable fields of one of the caller's transactions.
func (s *TransactionService) UpdateTransaction(ctx context.Context, req *connect.Request[api.UpdateTransactionRequest]) (*connect.Response[api.UpdateTransactionResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.ID == "" {
		return nil, invalidArgument("id is required")
	}

	existing, err := s.store.GetTransaction(ctx, userID, req.Msg.ID)
	if err != nil {
		return nil, storeError("get transaction", err)
	}

	updated, err := buildTransaction(ctx, s.store, userID, transactionInput{
		Type:           req.Msg.Type,
		Amount:         req.Msg.Amount,
		Description:    req.Msg.Description,
		Date:           req.Msg.Date,
		CategoryID:     req.Msg.CategoryID,
		FamilyMemberID: req.Msg.FamilyMemberID,
	}, existing.Date)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.Source = existing.Source
	updated.Recurrence = existing.Recurrence
	updated.CreatedAt = existing.CreatedAt

	if err := s.store.UpdateTransaction(ctx, updated); err != nil {
		return nil, storeError("update transaction", err)
	}

	slog.Info("Transaction updated", "user_id", userID, "transaction_id", updated.ID)
	return connect.NewResponse(&api.UpdateTransactionResponse{Transaction: toAPITransaction(updated)}), nil
}

// DeleteTransaction removes one of the caller's transactions.
func (s *TransactionService) DeleteTransaction(ctx context.Context, req *connect.Request[api.DeleteTransactionRequest]) (*connect.Response[api.DeleteTransactionResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.ID == "" {
		return nil, invalidArgument("id is required")
	}

	if err := s.store.DeleteTransaction(ctx, userID, req.Msg.ID); err != nil {
		return nil, storeError("delete transaction", err)
	}

	slog.Info("Transaction deleted", "user_id", userID, "transaction_id", req.Msg.ID)
	return connect.NewResponse(&api.DeleteTransactionResponse{}), nil
}

// GetDashboard summarizes a period, the current month by default.
func (s *TransactionService) GetDashboard(ctx context.Context, req *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	first, last := monthBounds(s.now())
	from, err := parseDate("from", req.Msg.From, first)
	if err != nil {
		return nil, err
	}
	to, err := parseDate("to", req.Msg.To, last)
	if err != nil {
		return nil, err
	}

	sum, err := s.reports.Summarize(ctx, userID, from, to)
	if err != nil {
		if errors.Is(err, report.ErrInvalidPeriod) {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		return nil, storeError("summarize", err)
	}

	return connect.NewResponse(&api.GetDashboardResponse{
		From:        formatDate(sum.From),
		To:          formatDate(sum.To),
		Income:      sum.Income,
		Expense:     sum.Expense,
		Net:         sum.Net,
		SavingsRate: sum.SavingsRate,
		ByCategory:  toAPICategoryTotals(sum.ByCategory),
		Recent:      toAPITransactions(sum.Recent),
	}), nil
}
