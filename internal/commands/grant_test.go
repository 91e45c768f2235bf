package commands

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/famledger/internal/access"
	"github.com/mmynk/famledger/internal/models"
	"github.com/mmynk/famledger/internal/storage/sqlite"
)

func TestApplyGrant(t *testing.T) {
	ctx := context.Background()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	p := models.NewProfile("ana@example.com", "Ana", "hash")
	require.NoError(t, store.CreateProfile(ctx, p))
	now := time.Date(2025, time.March, 20, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.UpsertSubscription(ctx, access.NewTrial(p.ID, 14, now.AddDate(0, -1, 0))))

	t.Run("extends a trial through the whole day", func(t *testing.T) {
		sub, err := applyGrant(ctx, store, grantOptions{Email: "ana@example.com", Status: models.SubscriptionTrial, Until: "2025-03-31"}, now)
		require.NoError(t, err)
		assert.Equal(t, "trial", sub.Plan)
		require.NotNil(t, sub.TrialEnd)
		assert.Equal(t, time.Date(2025, time.March, 31, 23, 59, 59, 0, time.UTC), *sub.TrialEnd)
		assert.True(t, access.HasAccess(sub, now))
	})

	t.Run("paid period end for non-trial status", func(t *testing.T) {
		sub, err := applyGrant(ctx, store, grantOptions{Email: "ana@example.com", Status: models.SubscriptionCanceled, Plan: "family", Until: "2025-03-25"}, now)
		require.NoError(t, err)
		assert.Equal(t, "family", sub.Plan)
		require.NotNil(t, sub.CurrentPeriodEnd)
		assert.True(t, access.HasAccess(sub, now))
		assert.False(t, access.HasAccess(sub, now.AddDate(0, 0, 6)))
	})

	t.Run("rejects bad input", func(t *testing.T) {
		_, err := applyGrant(ctx, store, grantOptions{Email: "ana@example.com", Status: "gold"}, now)
		assert.ErrorContains(t, err, "invalid status")

		_, err = applyGrant(ctx, store, grantOptions{Email: "ana@example.com", Status: models.SubscriptionActive, Role: "owner"}, now)
		assert.ErrorContains(t, err, "invalid role")

		_, err = applyGrant(ctx, store, grantOptions{Email: "ana@example.com", Status: models.SubscriptionActive, Until: "31/03/2025"}, now)
		assert.ErrorContains(t, err, "YYYY-MM-DD")
	})
}

func TestCORSMiddleware(t *testing.T) {
	called := false
	h := corsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/famledger.v1.AuthService/Login", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.False(t, called)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/famledger.v1.AuthService/Login", nil))
	assert.True(t, called)
}
