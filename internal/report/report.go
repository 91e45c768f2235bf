// Package report builds period summaries and exports transactions.
package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/famledger/internal/models"
	"github.com/mmynk/famledger/internal/storage"
)

// TopExpenses is how many of the largest expenses a summary lists.
const TopExpenses = 5

// RecentCount is how many of the newest transactions a summary lists.
const RecentCount = 10

// ErrInvalidPeriod is returned when the period end precedes its start.
var ErrInvalidPeriod = errors.New("period end is before start")

// Narrator writes the free-text part of a report.
type Narrator interface {
	Narrate(ctx context.Context, prompt string) (string, error)
}

// Store is the subset of storage the builder reads and writes.
type Store interface {
	storage.TransactionStore
	storage.CategoryStore
	storage.WealthStore
	storage.ReportStore
}

// CategoryTotal is the expense total for one category.
type CategoryTotal struct {
	CategoryID string
	Name       string
	Amount     decimal.Decimal
	// Share is Amount divided by the period's expense total.
	Share float64
}

// Summary is the computed part of a report.
type Summary struct {
	From, To time.Time

	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
	// SavingsRate is Net/Income, or 0 without income.
	SavingsRate float64

	ByCategory  []CategoryTotal
	TopExpenses []*models.Transaction
	Recent      []*models.Transaction
	Count       int

	Assets      decimal.Decimal
	Liabilities decimal.Decimal
	NetWorth    decimal.Decimal

	Transactions []*models.Transaction
	Categories   []*models.Category
}

// Builder computes summaries and persists reports.
type Builder struct {
	store    Store
	narrator Narrator
}

// NewBuilder creates a builder. narrator may be nil.
func NewBuilder(store Store, narrator Narrator) *Builder {
	return &Builder{store: store, narrator: narrator}
}

// Summarize loads everything for [from, to] (whole days, inclusive) and
// computes totals.
func (b *Builder) Summarize(ctx context.Context, userID string, from, to time.Time) (*Summary, error) {
	from, to = models.Day(from), models.Day(to)
	if to.Before(from) {
		return nil, ErrInvalidPeriod
	}

	var (
		txns        []*models.Transaction
		categories  []*models.Category
		assets      []*models.Asset
		liabilities []*models.Liability
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		txns, err = b.store.ListTransactions(egCtx, userID, storage.TransactionFilter{From: from, To: to.AddDate(0, 0, 1)})
		if err != nil {
			return fmt.Errorf("loading transactions: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		var err error
		categories, err = b.store.ListCategories(egCtx, userID)
		if err != nil {
			return fmt.Errorf("loading categories: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		var err error
		assets, err = b.store.ListAssets(egCtx, userID)
		if err != nil {
			return fmt.Errorf("loading assets: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		var err error
		liabilities, err = b.store.ListLiabilities(egCtx, userID)
		if err != nil {
			return fmt.Errorf("loading liabilities: %w", err)
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	s := Compute(txns, categories)
	s.From, s.To = from, to
	for _, a := range assets {
		s.Assets = s.Assets.Add(a.Value)
	}
	for _, l := range liabilities {
		s.Liabilities = s.Liabilities.Add(l.Balance)
	}
	s.NetWorth = s.Assets.Sub(s.Liabilities)
	return s, nil
}

// Compute derives totals from already-loaded transactions.
// txns are expected newest first, as storage returns them.
func Compute(txns []*models.Transaction, categories []*models.Category) *Summary {
	s := &Summary{Transactions: txns, Categories: categories, Count: len(txns)}

	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	byCat := map[string]decimal.Decimal{}
	var expenses []*models.Transaction
	for _, t := range txns {
		if t.Type == models.TypeIncome {
			s.Income = s.Income.Add(t.Amount)
			continue
		}
		s.Expense = s.Expense.Add(t.Amount)
		byCat[t.CategoryID] = byCat[t.CategoryID].Add(t.Amount)
		expenses = append(expenses, t)
	}
	s.Net = s.Income.Sub(s.Expense)
	if s.Income.IsPositive() {
		s.SavingsRate = s.Net.Div(s.Income).InexactFloat64()
	}

	for id, amt := range byCat {
		ct := CategoryTotal{CategoryID: id, Name: names[id], Amount: amt}
		if ct.Name == "" {
			ct.Name = "Uncategorized"
		}
		if s.Expense.IsPositive() {
			ct.Share = amt.Div(s.Expense).InexactFloat64()
		}
		s.ByCategory = append(s.ByCategory, ct)
	}
	sort.Slice(s.ByCategory, func(i, j int) bool {
		if c := s.ByCategory[i].Amount.Cmp(s.ByCategory[j].Amount); c != 0 {
			return c > 0
		}
		return s.ByCategory[i].Name < s.ByCategory[j].Name
	})

	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].Amount.GreaterThan(expenses[j].Amount)
	})
	s.TopExpenses = expenses[:min(TopExpenses, len(expenses))]
	s.Recent = txns[:min(RecentCount, len(txns))]
	return s
}

// Build summarizes the period, writes the narrative and stores the report.
// A narrator failure falls back to the plain summary.
func (b *Builder) Build(ctx context.Context, userID string, from, to time.Time) (*models.Report, *Summary, error) {
	s, err := b.Summarize(ctx, userID, from, to)
	if err != nil {
		return nil, nil, err
	}

	narrative := Describe(s)
	if b.narrator != nil {
		text, err := b.narrator.Narrate(ctx, narrationPrompt(s))
		switch {
		case err != nil:
			slog.Warn("Narrative generation failed, using plain summary", "user_id", userID, "error", err)
		case strings.TrimSpace(text) != "":
			narrative = strings.TrimSpace(text)
		}
	}

	r := &models.Report{
		UserID:      userID,
		PeriodStart: s.From,
		PeriodEnd:   s.To,
		Income:      s.Income,
		Expense:     s.Expense,
		Narrative:   narrative,
	}
	if err := b.store.CreateReport(ctx, r); err != nil {
		return nil, nil, fmt.Errorf("saving report: %w", err)
	}
	slog.Info("Report generated", "user_id", userID, "report_id", r.ID,
		"from", s.From.Format(time.DateOnly), "to", s.To.Format(time.DateOnly), "transactions", s.Count)
	return r, s, nil
}

// Describe writes a deterministic plain-text summary.
func Describe(s *Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From %s to %s you earned %s and spent %s",
		s.From.Format(time.DateOnly), s.To.Format(time.DateOnly),
		s.Income.StringFixed(2), s.Expense.StringFixed(2))
	if s.Income.IsPositive() {
		fmt.Fprintf(&b, ", saving %.0f%% of your income", s.SavingsRate*100)
	}
	b.WriteString(".")
	if len(s.ByCategory) > 0 {
		top := s.ByCategory[0]
		fmt.Fprintf(&b, " Your largest spending category was %s at %s.", top.Name, top.Amount.StringFixed(2))
	}
	if !s.Assets.IsZero() || !s.Liabilities.IsZero() {
		fmt.Fprintf(&b, " Net worth stands at %s.", s.NetWorth.StringFixed(2))
	}
	return b.String()
}

func narrationPrompt(s *Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Period: %s to %s\n", s.From.Format(time.DateOnly), s.To.Format(time.DateOnly))
	fmt.Fprintf(&b, "Income: %s\nExpenses: %s\nSavings rate: %.1f%%\n",
		s.Income.StringFixed(2), s.Expense.StringFixed(2), s.SavingsRate*100)
	if len(s.ByCategory) > 0 {
		b.WriteString("Spending by category:\n")
		for _, c := range s.ByCategory {
			fmt.Fprintf(&b, "- %s: %s (%.0f%%)\n", c.Name, c.Amount.StringFixed(2), c.Share*100)
		}
	}
	if len(s.TopExpenses) > 0 {
		b.WriteString("Largest expenses:\n")
		for _, t := range s.TopExpenses {
			fmt.Fprintf(&b, "- %s %s on %s\n", t.Description, t.Amount.StringFixed(2), t.Date.Format(time.DateOnly))
		}
	}
	fmt.Fprintf(&b, "Assets: %s\nLiabilities: %s\nNet worth: %s\n",
		s.Assets.StringFixed(2), s.Liabilities.StringFixed(2), s.NetWorth.StringFixed(2))
	return b.String()
}
