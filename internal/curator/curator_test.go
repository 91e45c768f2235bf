package curator

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/famledger/internal/models"
	"github.com/mmynk/famledger/internal/storage"
	"github.com/mmynk/famledger/internal/storage/sqlite"
)

// stubCategorizer returns a fixed guess per description.
type stubCategorizer struct {
	guesses map[string]*CategoryGuess
	err     error
	calls   int
}

func (s *stubCategorizer) Categorize(_ context.Context, t *models.Transaction, _ []*models.Category) (*CategoryGuess, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.guesses[t.Description], nil
}

type fixture struct {
	store  *sqlite.SQLiteStore
	userID string
	cats   map[string]*models.Category
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "curator.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	p := models.NewProfile("curator@example.com", "Curator", "hash")
	require.NoError(t, store.CreateProfile(ctx, p))

	f := &fixture{store: store, userID: p.ID, cats: map[string]*models.Category{}}
	for _, c := range []models.Category{
		{Name: "Dining", Type: models.TypeExpense},
		{Name: "Streaming", Type: models.TypeExpense},
		{Name: "Salary", Type: models.TypeIncome},
	} {
		c := c
		c.UserID = p.ID
		require.NoError(t, store.CreateCategory(ctx, &c))
		f.cats[c.Name] = &c
	}
	return f
}

func (f *fixture) add(t *testing.T, desc, amount, typ string, dayOffset int) *models.Transaction {
	t.Helper()
	tx := &models.Transaction{
		UserID:      f.userID,
		Type:        typ,
		Amount:      decimal.RequireFromString(amount),
		Description: desc,
		Date:        base.AddDate(0, 0, dayOffset),
	}
	require.NoError(t, f.store.CreateTransaction(context.Background(), tx))
	return tx
}

func TestCuratorRun(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.add(t, "Pizza Place", "22.00", models.TypeExpense, 0)
	dup := f.add(t, "pizza place", "22", models.TypeExpense, 1)
	for _, off := range []int{0, 30, 60} {
		f.add(t, "StreamCo", "9.99", models.TypeExpense, off)
	}
	f.add(t, "Mystery", "5", models.TypeExpense, 10)
	f.add(t, "Bonus", "500", models.TypeIncome, 12)

	cat := &stubCategorizer{guesses: map[string]*CategoryGuess{
		"StreamCo":    {CategoryID: f.cats["Streaming"].ID, Confidence: 0.95},
		"Pizza Place": {CategoryID: f.cats["Dining"].ID, Confidence: 0.8, Reason: "restaurant"},
		"pizza place": {CategoryID: f.cats["Dining"].ID, Confidence: 0.75},
		"Mystery":     {CategoryID: f.cats["Dining"].ID, Confidence: 0.2},
		// wrong type: an expense category for income is discarded
		"Bonus": {CategoryID: f.cats["Dining"].ID, Confidence: 0.99},
	}}

	c := New(f.store, WithCategorizer(cat))
	res, err := c.Run(ctx, f.userID)
	require.NoError(t, err)

	assert.Equal(t, 7, res.Scanned)
	assert.Equal(t, 1, res.Duplicates)
	assert.Equal(t, 1, res.NewDuplicates)
	assert.Equal(t, 1, res.Patterns)
	assert.Equal(t, 3, res.Applied)
	assert.Equal(t, 2, res.Queued)
	assert.Equal(t, 2, res.Discarded)

	pending, err := f.store.ListSuggestions(ctx, f.userID, models.SuggestionPending)
	require.NoError(t, err)
	var dupSuggestion *models.TransactionSuggestion
	for _, s := range pending {
		if s.Kind == models.SuggestionDuplicate {
			dupSuggestion = s
		}
	}
	require.NotNil(t, dupSuggestion)
	assert.Equal(t, dup.ID, dupSuggestion.TransactionID)

	patterns, err := f.store.ListPatterns(ctx, f.userID)
	require.NoError(t, err)
	require.Len(t, patterns, 1)
	assert.Equal(t, "StreamCo", patterns[0].Description)
	assert.Equal(t, models.FrequencyMonthly, patterns[0].Frequency)

	streams, err := f.store.ListTransactions(ctx, f.userID, storage.TransactionFilter{CategoryID: f.cats["Streaming"].ID})
	require.NoError(t, err)
	require.Len(t, streams, 3)
	for _, s := range streams {
		assert.Equal(t, models.FrequencyMonthly, s.Recurrence)
	}

	t.Run("second run does not duplicate findings", func(t *testing.T) {
		res, err := c.Run(ctx, f.userID)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Duplicates)
		assert.Equal(t, 0, res.NewDuplicates)
		assert.Equal(t, 0, res.Applied)
		assert.Equal(t, 0, res.Queued)
	})
}

func TestCuratorKeepsRejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.add(t, "Corner Shop", "12.40", models.TypeExpense, 0)
	f.add(t, "Corner Shop", "12.40", models.TypeExpense, 2)

	c := New(f.store)
	res, err := c.Run(ctx, f.userID)
	require.NoError(t, err)
	require.Equal(t, 1, res.NewDuplicates)

	pending, err := f.store.ListSuggestions(ctx, f.userID, models.SuggestionPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.NoError(t, f.store.SetSuggestionStatus(ctx, f.userID, pending[0].ID, models.SuggestionRejected))

	res, err = c.Run(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Duplicates)
	assert.Equal(t, 0, res.NewDuplicates)

	pending, err = f.store.ListSuggestions(ctx, f.userID, models.SuggestionPending)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestCuratorFetchLimit(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 5; i++ {
		f.add(t, "Tea", "2", models.TypeExpense, i*10)
	}

	res, err := New(f.store, WithFetchLimit(2)).Run(context.Background(), f.userID)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Scanned)
	assert.Equal(t, 0, res.Patterns)
}

func TestCuratorCategorizerError(t *testing.T) {
	f := newFixture(t)
	f.add(t, "Something", "1", models.TypeExpense, 0)

	_, err := New(f.store, WithCategorizer(&stubCategorizer{err: errors.New("provider down")})).Run(context.Background(), f.userID)
	assert.ErrorContains(t, err, "provider down")
}
