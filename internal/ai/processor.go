package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mmynk/famledger/internal/curator"
	"github.com/mmynk/famledger/internal/models"
	"github.com/mmynk/famledger/internal/storage"
)

// DefaultAutoInsert is the confidence at which a parsed transaction is saved
// without asking the user.
const DefaultAutoInsert = 0.8

// ProcessorStore is the subset of storage the processor needs.
type ProcessorStore interface {
	storage.TransactionStore
	storage.CategoryStore
}

// Outcome is the result of processing one message.
type Outcome struct {
	// Transaction is the parsed entry. It has an ID only when Inserted.
	Transaction *models.Transaction

	// CategoryName is the model's category even when it did not match one.
	CategoryName string

	Confidence float64
	Inserted   bool

	// NeedsConfirmation is set when confidence was below the auto-insert
	// threshold; the client should show the draft for editing.
	NeedsConfirmation bool

	Transcript string
}

// Processor turns messages into transactions.
type Processor struct {
	store      ProcessorStore
	provider   Provider
	autoInsert float64
	now        func() time.Time
}

// NewProcessor creates a processor. autoInsert <= 0 selects DefaultAutoInsert.
func NewProcessor(store ProcessorStore, provider Provider, autoInsert float64) *Processor {
	if autoInsert <= 0 {
		autoInsert = DefaultAutoInsert
	}
	return &Processor{
		store:      store,
		provider:   provider,
		autoInsert: autoInsert,
		now:        time.Now,
	}
}

// Process extracts a transaction from in and saves it when the model is
// confident enough. source is recorded on the saved row.
func (p *Processor) Process(ctx context.Context, userID string, in Input, source string) (*Outcome, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	categories, err := p.store.ListCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading categories: %w", err)
	}
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}

	today := models.Day(p.now())
	ex, err := p.provider.Extract(ctx, in, today, names)
	if err != nil {
		return nil, &ProviderError{Provider: p.provider.Name(), Err: err}
	}
	if !ex.Amount.IsPositive() && !ex.Amount.IsNegative() {
		return nil, ErrNoTransaction
	}

	txn := &models.Transaction{
		UserID:      userID,
		Type:        ex.Type,
		Amount:      ex.Amount.Abs(),
		Description: ex.Description,
		Date:        parseDay(ex.Date, today),
		Source:      source,
	}
	confidence := ex.Confidence
	if !models.ValidType(txn.Type) {
		// Negative amounts read as spending; anything else needs a human.
		txn.Type = models.TypeExpense
		if !ex.Amount.IsNegative() {
			confidence = minFloat(confidence, p.autoInsert/2)
		}
	}
	if txn.Description == "" {
		txn.Description = strings.TrimSpace(ex.Transcript)
	}
	if cat := findCategory(categories, ex.CategoryName, txn.Type); cat != nil {
		txn.CategoryID = cat.ID
	}

	out := &Outcome{
		Transaction:  txn,
		CategoryName: ex.CategoryName,
		Confidence:   confidence,
		Transcript:   ex.Transcript,
	}

	if confidence < p.autoInsert {
		out.NeedsConfirmation = true
		slog.Info("Assistant draft needs confirmation",
			"user_id", userID, "kind", in.Kind, "confidence", confidence)
		return out, nil
	}

	if err := p.store.CreateTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("saving transaction: %w", err)
	}
	out.Inserted = true
	slog.Info("Assistant inserted transaction",
		"user_id", userID, "kind", in.Kind, "transaction_id", txn.ID, "confidence", confidence)
	return out, nil
}

// Categorize adapts the provider to curator.Categorizer.
func (p *Processor) Categorize(ctx context.Context, txn *models.Transaction, categories []*models.Category) (*curator.CategoryGuess, error) {
	return p.provider.Classify(ctx, txn, categories)
}

// parseDay reads "YYYY-MM-DD" and falls back to today. Future dates clamp to today.
func parseDay(s string, today time.Time) time.Time {
	d, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil || d.After(today) {
		return today
	}
	return d
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
