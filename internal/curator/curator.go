// Package curator finds duplicate entries, recurring patterns and missing
// categories in a user's recent transactions.
package curator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/famledger/internal/metrics"
	"github.com/mmynk/famledger/internal/models"
	"github.com/mmynk/famledger/internal/storage"
)

// DefaultFetchLimit caps how many recent transactions one run scans.
const DefaultFetchLimit = 100

// CategoryGuess is a categorizer's answer for one transaction.
type CategoryGuess struct {
	CategoryID string
	Confidence float64
	Reason     string
}

// Categorizer proposes a category for an uncategorized transaction.
type Categorizer interface {
	Categorize(ctx context.Context, txn *models.Transaction, categories []*models.Category) (*CategoryGuess, error)
}

// Store is the subset of storage the curator needs.
type Store interface {
	storage.TransactionStore
	storage.CategoryStore
	storage.CurationStore
}

// Result summarizes one curator run.
type Result struct {
	Scanned       int
	Duplicates    int
	NewDuplicates int
	Patterns      int
	Applied       int
	Queued        int
	Discarded     int
}

// Curator runs the detectors and persists their findings.
type Curator struct {
	store       Store
	categorizer Categorizer
	thresholds  Thresholds
	fetchLimit  int
	metrics     *metrics.Metrics
}

// Option configures a Curator.
type Option func(*Curator)

// WithCategorizer enables AI category suggestions.
func WithCategorizer(c Categorizer) Option {
	return func(cu *Curator) { cu.categorizer = c }
}

// WithThresholds overrides DefaultThresholds.
func WithThresholds(th Thresholds) Option {
	return func(cu *Curator) { cu.thresholds = th }
}

// WithFetchLimit overrides DefaultFetchLimit.
func WithFetchLimit(n int) Option {
	return func(cu *Curator) {
		if n > 0 {
			cu.fetchLimit = n
		}
	}
}

// WithMetrics records finding counts.
func WithMetrics(m *metrics.Metrics) Option {
	return func(cu *Curator) { cu.metrics = m }
}

// New creates a Curator over store.
func New(store Store, opts ...Option) *Curator {
	c := &Curator{
		store:      store,
		thresholds: DefaultThresholds,
		fetchLimit: DefaultFetchLimit,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run scans the user's most recent transactions once.
func (c *Curator) Run(ctx context.Context, userID string) (*Result, error) {
	txns, err := c.store.ListTransactions(ctx, userID, storage.TransactionFilter{Limit: c.fetchLimit})
	if err != nil {
		return nil, fmt.Errorf("loading transactions: %w", err)
	}
	res := &Result{Scanned: len(txns)}

	if err := c.flagDuplicates(ctx, userID, txns, res); err != nil {
		return nil, err
	}
	if err := c.tagRecurring(ctx, userID, txns, res); err != nil {
		return nil, err
	}
	if c.categorizer != nil {
		if err := c.suggestCategories(ctx, userID, txns, res); err != nil {
			return nil, err
		}
	}

	c.metrics.CuratorFindings(metrics.FindingDuplicate, res.NewDuplicates)
	c.metrics.CuratorFindings(metrics.FindingPattern, res.Patterns)
	c.metrics.CuratorFindings(metrics.FindingCategoryApplied, res.Applied)
	c.metrics.CuratorFindings(metrics.FindingCategoryQueued, res.Queued)

	slog.Info("Curation finished",
		"user_id", userID,
		"scanned", res.Scanned,
		"duplicates", res.Duplicates,
		"new_duplicates", res.NewDuplicates,
		"patterns", res.Patterns,
		"applied", res.Applied,
		"queued", res.Queued,
		"discarded", res.Discarded,
	)
	return res, nil
}

func (c *Curator) flagDuplicates(ctx context.Context, userID string, txns []*models.Transaction, res *Result) error {
	pairs := FindDuplicates(txns)
	res.Duplicates = len(pairs)
	for _, p := range pairs {
		created, err := c.store.CreateSuggestion(ctx, &models.TransactionSuggestion{
			UserID:               userID,
			TransactionID:        p.Duplicate.ID,
			Kind:                 models.SuggestionDuplicate,
			RelatedTransactionID: p.Original.ID,
			Confidence:           1,
			Reason: fmt.Sprintf("Same amount and description as the entry on %s",
				p.Original.Date.Format("Jan 2, 2006")),
		})
		if err != nil {
			return fmt.Errorf("saving duplicate suggestion: %w", err)
		}
		if created {
			res.NewDuplicates++
		}
	}
	return nil
}

func (c *Curator) tagRecurring(ctx context.Context, userID string, txns []*models.Transaction, res *Result) error {
	patterns := FindRecurring(txns)
	res.Patterns = len(patterns)
	for _, p := range patterns {
		err := c.store.UpsertPattern(ctx, &models.TransactionPattern{
			UserID:              userID,
			Description:         p.Description,
			Amount:              p.Amount,
			Type:                p.Type,
			Frequency:           p.Frequency,
			Occurrences:         len(p.Transactions),
			AverageIntervalDays: p.AverageIntervalDays,
			LastDate:            p.LastDate,
			NextExpectedDate:    p.NextExpectedDate,
		})
		if err != nil {
			return fmt.Errorf("saving pattern: %w", err)
		}

		for _, t := range p.Transactions {
			if t.Recurrence == p.Frequency {
				continue
			}
			t.Recurrence = p.Frequency
			if err := c.store.UpdateTransaction(ctx, t); err != nil {
				return fmt.Errorf("tagging transaction %s: %w", t.ID, err)
			}
		}
	}
	return nil
}

func (c *Curator) suggestCategories(ctx context.Context, userID string, txns []*models.Transaction, res *Result) error {
	categories, err := c.store.ListCategories(ctx, userID)
	if err != nil {
		return fmt.Errorf("loading categories: %w", err)
	}
	if len(categories) == 0 {
		return nil
	}

	for _, t := range txns {
		if t.CategoryID != "" {
			continue
		}
		candidates := categoriesOfType(categories, t.Type)
		if len(candidates) == 0 {
			continue
		}

		guess, err := c.categorizer.Categorize(ctx, t, candidates)
		if err != nil {
			return fmt.Errorf("categorizing transaction %s: %w", t.ID, err)
		}
		if guess == nil || !containsCategory(candidates, guess.CategoryID) {
			res.Discarded++
			continue
		}

		switch c.thresholds.Decide(guess.Confidence) {
		case Apply:
			t.CategoryID = guess.CategoryID
			if err := c.store.UpdateTransaction(ctx, t); err != nil {
				return fmt.Errorf("applying category to %s: %w", t.ID, err)
			}
			res.Applied++
		case Review:
			created, err := c.store.CreateSuggestion(ctx, &models.TransactionSuggestion{
				UserID:        userID,
				TransactionID: t.ID,
				Kind:          models.SuggestionCategory,
				CategoryID:    guess.CategoryID,
				Confidence:    guess.Confidence,
				Reason:        guess.Reason,
			})
			if err != nil {
				return fmt.Errorf("saving category suggestion: %w", err)
			}
			if created {
				res.Queued++
			}
		default:
			res.Discarded++
		}
	}
	return nil
}

func categoriesOfType(categories []*models.Category, typ string) []*models.Category {
	var out []*models.Category
	for _, c := range categories {
		if c.Type == typ {
			out = append(out, c)
		}
	}
	return out
}

func containsCategory(categories []*models.Category, id string) bool {
	for _, c := range categories {
		if c.ID == id {
			return true
		}
	}
	return false
}
