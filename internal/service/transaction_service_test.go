package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/famledger/internal/models"
	"github.com/mmynk/famledger/pkg/api"
)

func TestCreateTransaction_And_List(t *testing.T) {
	env := setupTestServer(t)
	u := env.register(t, "alice@example.com")
	groceries := env.categoryID(t, u, "Groceries")

	created := env.addTransaction(t, u, models.TypeExpense, "42.50", "Weekly shop", "2025-03-10", groceries)
	if created.ID == "" {
		t.Fatal("expected non-empty transaction ID")
	}
	if created.Source != models.SourceManual {
		t.Errorf("source: expected manual, got %q", created.Source)
	}
	env.addTransaction(t, u, models.TypeIncome, "3000", "March salary", "2025-03-01", "")
	env.addTransaction(t, u, models.TypeExpense, "12", "Coffee", "2025-04-02", "")

	resp, err := env.transactions.ListTransactions(context.Background(), authed(u, &api.ListTransactionsRequest{
		From: "2025-03-01",
		To:   "2025-03-31",
	}))
	if err != nil {
		t.Fatalf("ListTransactions failed: %v", err)
	}
	if len(resp.Msg.Transactions) != 2 {
		t.Fatalf("transactions: expected 2 in March, got %d", len(resp.Msg.Transactions))
	}
	if resp.Msg.Transactions[0].Description != "Weekly shop" {
		t.Errorf("order: expected newest first, got %q", resp.Msg.Transactions[0].Description)
	}

	resp, err = env.transactions.ListTransactions(context.Background(), authed(u, &api.ListTransactionsRequest{
		Type: models.TypeIncome,
	}))
	if err != nil {
		t.Fatalf("ListTransactions failed: %v", err)
	}
	if len(resp.Msg.Transactions) != 1 || resp.Msg.Transactions[0].Description != "March salary" {
		t.Errorf("type filter: unexpected result %+v", resp.Msg.Transactions)
	}
}

func TestCreateTransaction_Validation(t *testing.T) {
	env := setupTestServer(t)
	u := env.register(t, "alice@example.com")
	salary := env.categoryID(t, u, "Salary")

	tests := []struct {
		name string
		req  *api.CreateTransactionRequest
		code connect.Code
	}{
		{"bad type", &api.CreateTransactionRequest{Type: "transfer", Amount: decimal.NewFromInt(1), Description: "x"}, connect.CodeInvalidArgument},
		{"zero amount", &api.CreateTransactionRequest{Type: "expense", Amount: decimal.Zero, Description: "x"}, connect.CodeInvalidArgument},
		{"negative amount", &api.CreateTransactionRequest{Type: "expense", Amount: decimal.NewFromInt(-5), Description: "x"}, connect.CodeInvalidArgument},
		{"no description", &api.CreateTransactionRequest{Type: "expense", Amount: decimal.NewFromInt(1), Description: "  "}, connect.CodeInvalidArgument},
		{"bad date", &api.CreateTransactionRequest{Type: "expense", Amount: decimal.NewFromInt(1), Description: "x", Date: "03/10/2025"}, connect.CodeInvalidArgument},
		{"unknown category", &api.CreateTransactionRequest{Type: "expense", Amount: decimal.NewFromInt(1), Description: "x", CategoryID: "missing"}, connect.CodeNotFound},
		{"category type mismatch", &api.CreateTransactionRequest{Type: "expense", Amount: decimal.NewFromInt(1), Description: "x", CategoryID: salary}, connect.CodeInvalidArgument},
		{"member without family", &api.CreateTransactionRequest{Type: "expense", Amount: decimal.NewFromInt(1), Description: "x", FamilyMemberID: "m1"}, connect.CodeFailedPrecondition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.transactions.CreateTransaction(context.Background(), authed(u, tt.req))
			expectCode(t, err, tt.code)
		})
	}
}

func TestTransactions_OwnerScoped(t *testing.T) {
	env := setupTestServer(t)
	alice := env.register(t, "alice@example.com")
	bob := env.register(t, "bob@example.com")

	txn := env.addTransaction(t, alice, models.TypeExpense, "10", "Lunch", "2025-03-10", "")

	_, err := env.transactions.DeleteTransaction(context.Background(), authed(bob, &api.DeleteTransactionRequest{ID: txn.ID}))
	expectCode(t, err, connect.CodeNotFound)

	resp, err := env.transactions.ListTransactions(context.Background(), authed(bob, &api.ListTransactionsRequest{}))
	if err != nil {
		t.Fatalf("ListTransactions failed: %v", err)
	}
	if len(resp.Msg.Transactions) != 0 {
		t.Errorf("expected bob to see no transactions, got %d", len(resp.Msg.Transactions))
	}
}

func TestUpdateTransaction(t *testing.T) {
	env := setupTestServer(t)
	u := env.register(t, "alice@example.com")
	dining := env.categoryID(t, u, "Dining")

	txn := env.addTransaction(t, u, models.TypeExpense, "10", "Lunch", "2025-03-10", "")

	resp, err := env.transactions.UpdateTransaction(context.Background(), authed(u, &api.UpdateTransactionRequest{
		ID:          txn.ID,
		Type:        models.TypeExpense,
		Amount:      decimal.RequireFromString("12.75"),
		Description: "Team lunch",
		CategoryID:  dining,
	}))
	if err != nil {
		t.Fatalf("UpdateTransaction failed: %v", err)
	}
	got := resp.Msg.Transaction
	if !got.Amount.Equal(decimal.RequireFromString("12.75")) {
		t.Errorf("amount: expected 12.75, got %s", got.Amount)
	}
	if got.Date != "2025-03-10" {
		t.Errorf("date: expected to keep 2025-03-10, got %s", got.Date)
	}
	if got.CategoryID != dining {
		t.Errorf("category: expected %s, got %s", dining, got.CategoryID)
	}
	if got.Source != models.SourceManual {
		t.Errorf("source: expected manual to be preserved, got %q", got.Source)
	}

	_, err = env.transactions.UpdateTransaction(context.Background(), authed(u, &api.UpdateTransactionRequest{
		ID: "missing", Type: models.TypeExpense, Amount: decimal.NewFromInt(1), Description: "x",
	}))
	expectCode(t, err, connect.CodeNotFound)
}

func TestDeleteTransaction(t *testing.T) {
	env := setupTestServer(t)
	u := env.register(t, "alice@example.com")
	txn := env.addTransaction(t, u, models.TypeExpense, "10", "Lunch", "2025-03-10", "")

	if _, err := env.transactions.DeleteTransaction(context.Background(), authed(u, &api.DeleteTransactionRequest{ID: txn.ID})); err != nil {
		t.Fatalf("DeleteTransaction failed: %v", err)
	}
	_, err := env.transactions.DeleteTransaction(context.Background(), authed(u, &api.DeleteTransactionRequest{ID: txn.ID}))
	expectCode(t, err, connect.CodeNotFound)
}

func TestGetDashboard(t *testing.T) {
	env := setupTestServer(t)
	u := env.register(t, "alice@example.com")
	housing := env.categoryID(t, u, "Housing")
	groceries := env.categoryID(t, u, "Groceries")

	env.addTransaction(t, u, models.TypeIncome, "4000", "Salary", "2025-03-01", "")
	env.addTransaction(t, u, models.TypeExpense, "1500", "Rent", "2025-03-02", housing)
	env.addTransaction(t, u, models.TypeExpense, "500", "Groceries", "2025-03-15", groceries)
	env.addTransaction(t, u, models.TypeExpense, "999", "April rent", "2025-04-01", housing)

	resp, err := env.transactions.GetDashboard(context.Background(), authed(u, &api.GetDashboardRequest{
		From: "2025-03-01",
		To:   "2025-03-31",
	}))
	if err != nil {
		t.Fatalf("GetDashboard failed: %v", err)
	}
	m := resp.Msg
	if !m.Income.Equal(decimal.NewFromInt(4000)) || !m.Expense.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("totals: expected 4000/2000, got %s/%s", m.Income, m.Expense)
	}
	if !m.Net.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("net: expected 2000, got %s", m.Net)
	}
	if m.SavingsRate != 0.5 {
		t.Errorf("savings rate: expected 0.5, got %v", m.SavingsRate)
	}
	if len(m.ByCategory) != 2 || m.ByCategory[0].Name != "Housing" {
		t.Errorf("by category: expected Housing first, got %+v", m.ByCategory)
	}
	if len(m.Recent) != 3 {
		t.Errorf("recent: expected 3, got %d", len(m.Recent))
	}

	_, err = env.transactions.GetDashboard(context.Background(), authed(u, &api.GetDashboardRequest{
		From: "2025-03-31",
		To:   "2025-03-01",
	}))
	expectCode(t, err, connect.CodeInvalidArgument)
}
