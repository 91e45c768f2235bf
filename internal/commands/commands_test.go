package commands_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/famledger/internal/commands"
	"github.com/mmynk/famledger/internal/config"
	"github.com/mmynk/famledger/internal/models"
	"github.com/mmynk/famledger/internal/storage"
	"github.com/mmynk/famledger/internal/storage/sqlite"
)

func runFamledger(t *testing.T, args ...string) error {
	t.Helper()
	cmd := commands.NewRootCommand()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}

// setupConfig writes a config pointing at a fresh database and seeds one account.
func setupConfig(t *testing.T, email string) (cfgPath, dbPath, userID string) {
	t.Helper()
	dir := t.TempDir()
	dbPath = filepath.Join(dir, "famledger.db")
	cfgPath = filepath.Join(dir, "famledger.yaml")

	cfg := config.Default()
	cfg.Database.Path = dbPath
	cfg.Log.Level = "error"
	require.NoError(t, config.Save(cfgPath, cfg, false))

	store, err := sqlite.New(dbPath)
	require.NoError(t, err)
	defer store.Close()
	p := models.NewProfile(email, "Ana", "hash")
	require.NoError(t, store.CreateProfile(context.Background(), p))
	return cfgPath, dbPath, p.ID
}

func openStore(t *testing.T, dbPath string) *sqlite.SQLiteStore {
	t.Helper()
	store, err := sqlite.New(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "famledger.yaml")

	require.NoError(t, runFamledger(t, "init", "--path", path))

	loader, err := config.Load(path)
	require.NoError(t, err)
	cfg := loader.Config()
	assert.Len(t, cfg.JWT.Secret, 64)
	assert.NotEqual(t, config.Default().JWT.Secret, cfg.JWT.Secret)
	assert.Equal(t, 8080, cfg.Server.Port)

	err = runFamledger(t, "init", "--path", path)
	assert.ErrorContains(t, err, "already exists")

	assert.NoError(t, runFamledger(t, "init", "--path", path, "--force"))
}

func TestImport(t *testing.T) {
	cfgPath, dbPath, userID := setupConfig(t, "ana@example.com")
	csv := filepath.Join("..", "importer", "testdata", "generic.csv")

	require.NoError(t, runFamledger(t, "import", "--config", cfgPath, "--user", "ana@example.com", "--file", csv))

	txns, err := openStore(t, dbPath).ListTransactions(context.Background(), userID, storage.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, txns, 4)
	for _, txn := range txns {
		assert.Equal(t, models.SourceImport, txn.Source)
	}
}

func TestImport_Errors(t *testing.T) {
	cfgPath, _, _ := setupConfig(t, "ana@example.com")
	csv := filepath.Join("..", "importer", "testdata", "generic.csv")

	err := runFamledger(t, "import", "--config", cfgPath, "--user", "ana@example.com", "--file", csv, "--format", "qif")
	assert.ErrorContains(t, err, "unknown format")

	err = runFamledger(t, "import", "--config", cfgPath, "--user", "nobody@example.com", "--file", csv)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	err = runFamledger(t, "import", "--config", cfgPath, "--user", "ana@example.com")
	assert.Error(t, err)
}

func TestCurate(t *testing.T) {
	cfgPath, dbPath, userID := setupConfig(t, "ana@example.com")
	ctx := context.Background()

	store := openStore(t, dbPath)
	for _, d := range []int{10, 11} {
		require.NoError(t, store.CreateTransaction(ctx, &models.Transaction{
			UserID:      userID,
			Type:        models.TypeExpense,
			Amount:      decimal.RequireFromString("19.99"),
			Description: "Streaming",
			Date:        time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC),
			Source:      models.SourceManual,
		}))
	}

	require.NoError(t, runFamledger(t, "curate", "--config", cfgPath, "--user", "ana@example.com"))

	suggestions, err := store.ListSuggestions(ctx, userID, models.SuggestionPending)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, models.SuggestionDuplicate, suggestions[0].Kind)
}

func TestGrant(t *testing.T) {
	cfgPath, dbPath, userID := setupConfig(t, "ana@example.com")

	require.NoError(t, runFamledger(t, "grant", "--config", cfgPath,
		"--email", "ana@example.com", "--status", "active", "--role", "admin"))

	store := openStore(t, dbPath)
	sub, err := store.GetSubscription(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionActive, sub.Status)

	p, err := store.GetProfileByID(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, p.IsAdmin())

	err = runFamledger(t, "grant", "--config", cfgPath, "--email", "ana@example.com", "--status", "gold")
	assert.ErrorContains(t, err, "invalid status")
}
