package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/famledger/internal/curator"
	"github.com/mmynk/famledger/internal/models"
	"github.com/mmynk/famledger/pkg/api"
)

func TestRunCuration_AcceptDuplicate(t *testing.T) {
	env := setupTestServer(t)
	u := env.register(t, "alice@example.com")
	health := env.categoryID(t, u, "Health")
	ctx := context.Background()

	original := env.addTransaction(t, u, models.TypeExpense, "40", "Gym", "2025-03-10", health)
	dup := env.addTransaction(t, u, models.TypeExpense, "40", "gym ", "2025-03-11", health)

	run, err := env.curation.RunCuration(ctx, authed(u, &api.RunCurationRequest{}))
	if err != nil {
		t.Fatalf("RunCuration failed: %v", err)
	}
	if run.Msg.Scanned != 2 || run.Msg.NewDuplicates != 1 {
		t.Errorf("unexpected run result: %+v", run.Msg)
	}

	// A second run does not queue the same finding again.
	run, err = env.curation.RunCuration(ctx, authed(u, &api.RunCurationRequest{}))
	if err != nil {
		t.Fatalf("RunCuration failed: %v", err)
	}
	if run.Msg.Duplicates != 1 || run.Msg.NewDuplicates != 0 {
		t.Errorf("rerun: expected 1 known and 0 new duplicates, got %+v", run.Msg)
	}

	list, err := env.curation.ListSuggestions(ctx, authed(u, &api.ListSuggestionsRequest{}))
	if err != nil {
		t.Fatalf("ListSuggestions failed: %v", err)
	}
	if len(list.Msg.Suggestions) != 1 {
		t.Fatalf("expected 1 pending suggestion, got %d", len(list.Msg.Suggestions))
	}
	sg := list.Msg.Suggestions[0]
	if sg.Kind != models.SuggestionDuplicate || sg.TransactionID != dup.ID || sg.RelatedTransactionID != original.ID {
		t.Errorf("unexpected suggestion: %+v", sg)
	}

	review, err := env.curation.ReviewSuggestion(ctx, authed(u, &api.ReviewSuggestionRequest{ID: sg.ID, Accept: true}))
	if err != nil {
		t.Fatalf("ReviewSuggestion failed: %v", err)
	}
	if review.Msg.Suggestion.Status != models.SuggestionAccepted {
		t.Errorf("status: expected accepted, got %q", review.Msg.Suggestion.Status)
	}

	txns, err := env.transactions.ListTransactions(ctx, authed(u, &api.ListTransactionsRequest{}))
	if err != nil {
		t.Fatalf("ListTransactions failed: %v", err)
	}
	if len(txns.Msg.Transactions) != 1 || txns.Msg.Transactions[0].ID != original.ID {
		t.Errorf("expected only the original to remain, got %+v", txns.Msg.Transactions)
	}
}

func TestReviewSuggestion_Category(t *testing.T) {
	env := setupTestServer(t)
	u := env.register(t, "alice@example.com")
	groceries := env.categoryID(t, u, "Groceries")
	ctx := context.Background()
	env.provider.guess = &curator.CategoryGuess{Confidence: 0.75, Reason: "Supermarket chain"}

	txn := env.addTransaction(t, u, models.TypeExpense, "55.10", "Tesco", "2025-03-10", "")

	run, err := env.curation.RunCuration(ctx, authed(u, &api.RunCurationRequest{}))
	if err != nil {
		t.Fatalf("RunCuration failed: %v", err)
	}
	if run.Msg.Queued != 1 || run.Msg.Applied != 0 {
		t.Errorf("expected one queued suggestion, got %+v", run.Msg)
	}

	list, err := env.curation.ListSuggestions(ctx, authed(u, &api.ListSuggestionsRequest{}))
	if err != nil {
		t.Fatalf("ListSuggestions failed: %v", err)
	}
	if len(list.Msg.Suggestions) != 1 || list.Msg.Suggestions[0].CategoryID != groceries {
		t.Fatalf("expected a Groceries suggestion, got %+v", list.Msg.Suggestions)
	}
	id := list.Msg.Suggestions[0].ID

	if _, err := env.curation.ReviewSuggestion(ctx, authed(u, &api.ReviewSuggestionRequest{ID: id, Accept: true})); err != nil {
		t.Fatalf("ReviewSuggestion failed: %v", err)
	}
	got, err := env.store.GetTransaction(ctx, u.ID, txn.ID)
	if err != nil {
		t.Fatalf("GetTransaction failed: %v", err)
	}
	if got.CategoryID != groceries {
		t.Errorf("category: expected %s, got %q", groceries, got.CategoryID)
	}

	_, err = env.curation.ReviewSuggestion(ctx, authed(u, &api.ReviewSuggestionRequest{ID: id, Accept: false}))
	expectCode(t, err, connect.CodeFailedPrecondition)

	accepted, err := env.curation.ListSuggestions(ctx, authed(u, &api.ListSuggestionsRequest{Status: models.SuggestionAccepted}))
	if err != nil {
		t.Fatalf("ListSuggestions failed: %v", err)
	}
	if len(accepted.Msg.Suggestions) != 1 {
		t.Errorf("expected 1 accepted suggestion, got %d", len(accepted.Msg.Suggestions))
	}
}

func TestReviewSuggestion_Reject(t *testing.T) {
	env := setupTestServer(t)
	u := env.register(t, "alice@example.com")
	ctx := context.Background()
	env.provider.guess = &curator.CategoryGuess{Confidence: 0.8}

	txn := env.addTransaction(t, u, models.TypeExpense, "9.99", "Corner shop", "2025-03-10", "")
	if _, err := env.curation.RunCuration(ctx, authed(u, &api.RunCurationRequest{})); err != nil {
		t.Fatalf("RunCuration failed: %v", err)
	}
	list, err := env.curation.ListSuggestions(ctx, authed(u, &api.ListSuggestionsRequest{}))
	if err != nil || len(list.Msg.Suggestions) != 1 {
		t.Fatalf("ListSuggestions: expected 1 suggestion, got %v (err %v)", list, err)
	}

	review, err := env.curation.ReviewSuggestion(ctx, authed(u, &api.ReviewSuggestionRequest{ID: list.Msg.Suggestions[0].ID}))
	if err != nil {
		t.Fatalf("ReviewSuggestion failed: %v", err)
	}
	if review.Msg.Suggestion.Status != models.SuggestionRejected {
		t.Errorf("status: expected rejected, got %q", review.Msg.Suggestion.Status)
	}
	got, err := env.store.GetTransaction(ctx, u.ID, txn.ID)
	if err != nil {
		t.Fatalf("GetTransaction failed: %v", err)
	}
	if got.CategoryID != "" {
		t.Errorf("expected transaction to stay uncategorized, got %q", got.CategoryID)
	}

	// The rejected guess is not queued again.
	run, err := env.curation.RunCuration(ctx, authed(u, &api.RunCurationRequest{}))
	if err != nil {
		t.Fatalf("RunCuration failed: %v", err)
	}
	if run.Msg.Queued != 0 {
		t.Errorf("rerun: expected nothing queued after rejection, got %+v", run.Msg)
	}

	_, err = env.curation.ListSuggestions(ctx, authed(u, &api.ListSuggestionsRequest{Status: "maybe"}))
	expectCode(t, err, connect.CodeInvalidArgument)
	_, err = env.curation.ReviewSuggestion(ctx, authed(u, &api.ReviewSuggestionRequest{ID: "missing"}))
	expectCode(t, err, connect.CodeNotFound)
}

func TestListPatterns(t *testing.T) {
	env := setupTestServer(t)
	u := env.register(t, "alice@example.com")
	housing := env.categoryID(t, u, "Housing")
	ctx := context.Background()

	for _, d := range []string{"2025-01-01", "2025-02-01", "2025-03-01"} {
		env.addTransaction(t, u, models.TypeExpense, "1500", "Rent", d, housing)
	}

	run, err := env.curation.RunCuration(ctx, authed(u, &api.RunCurationRequest{}))
	if err != nil {
		t.Fatalf("RunCuration failed: %v", err)
	}
	if run.Msg.Patterns != 1 {
		t.Errorf("patterns: expected 1, got %d", run.Msg.Patterns)
	}

	resp, err := env.curation.ListPatterns(ctx, authed(u, &api.ListPatternsRequest{}))
	if err != nil {
		t.Fatalf("ListPatterns failed: %v", err)
	}
	if len(resp.Msg.Patterns) != 1 {
		t.Fatalf("expected 1 pattern, got %d", len(resp.Msg.Patterns))
	}
	p := resp.Msg.Patterns[0]
	if p.Frequency != models.FrequencyMonthly || p.Occurrences != 3 || p.LastDate != "2025-03-01" {
		t.Errorf("unexpected pattern: %+v", p)
	}

	txns, err := env.transactions.ListTransactions(ctx, authed(u, &api.ListTransactionsRequest{}))
	if err != nil {
		t.Fatalf("ListTransactions failed: %v", err)
	}
	for _, txn := range txns.Msg.Transactions {
		if txn.Recurrence != models.FrequencyMonthly {
			t.Errorf("transaction %s: expected monthly recurrence, got %q", txn.ID, txn.Recurrence)
		}
	}
}

func TestReviewSuggestion_DeletedCategory(t *testing.T) {
	env := setupTestServer(t)
	u := env.register(t, "alice@example.com")
	groceries := env.categoryID(t, u, "Groceries")
	ctx := context.Background()
	env.provider.guess = &curator.CategoryGuess{Confidence: 0.75}

	txn := env.addTransaction(t, u, models.TypeExpense, "55.10", "Tesco", "2025-03-10", "")
	if _, err := env.curation.RunCuration(ctx, authed(u, &api.RunCurationRequest{})); err != nil {
		t.Fatalf("RunCuration failed: %v", err)
	}
	list, err := env.curation.ListSuggestions(ctx, authed(u, &api.ListSuggestionsRequest{}))
	if err != nil || len(list.Msg.Suggestions) != 1 {
		t.Fatalf("ListSuggestions: expected 1 suggestion, got %v (err %v)", list, err)
	}
	id := list.Msg.Suggestions[0].ID

	if err := env.store.DeleteCategory(ctx, u.ID, groceries); err != nil {
		t.Fatalf("DeleteCategory failed: %v", err)
	}

	_, err = env.curation.ReviewSuggestion(ctx, authed(u, &api.ReviewSuggestionRequest{ID: id, Accept: true}))
	expectCode(t, err, connect.CodeFailedPrecondition)

	sg, err := env.store.GetSuggestion(ctx, u.ID, id)
	if err != nil {
		t.Fatalf("GetSuggestion failed: %v", err)
	}
	if sg.Status != models.SuggestionPending {
		t.Errorf("status: expected pending after failed accept, got %q", sg.Status)
	}
	got, err := env.store.GetTransaction(ctx, u.ID, txn.ID)
	if err != nil {
		t.Fatalf("GetTransaction failed: %v", err)
	}
	if got.CategoryID != "" {
		t.Errorf("expected transaction to stay uncategorized, got %q", got.CategoryID)
	}

	// It can still be rejected.
	review, err := env.curation.ReviewSuggestion(ctx, authed(u, &api.ReviewSuggestionRequest{ID: id}))
	if err != nil {
		t.Fatalf("ReviewSuggestion failed: %v", err)
	}
	if review.Msg.Suggestion.Status != models.SuggestionRejected {
		t.Errorf("status: expected rejected, got %q", review.Msg.Suggestion.Status)
	}
}
