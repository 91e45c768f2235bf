package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/famledger/internal/access"
	"github.com/mmynk/famledger/internal/auth"
	"github.com/mmynk/famledger/internal/metrics"
	"github.com/mmynk/famledger/internal/models"
	"github.com/mmynk/famledger/internal/storage/sqlite"
	"github.com/mmynk/famledger/pkg/api"
	"github.com/mmynk/famledger/pkg/api/apiconnect"
)

// whoami answers GetAccess with the caller's identity in Reason.
type whoami struct {
	apiconnect.UnimplementedSubscriptionServiceHandler
}

func (whoami) GetAccess(ctx context.Context, _ *connect.Request[api.GetAccessRequest]) (*connect.Response[api.GetAccessResponse], error) {
	return connect.NewResponse(&api.GetAccessResponse{Access: &api.Access{
		Granted: true, Reason: GetUserID(ctx) + "|" + GetEmail(ctx) + "|" + GetRole(ctx),
	}}), nil
}

func newClient(t *testing.T, interceptors ...connect.Interceptor) apiconnect.SubscriptionServiceClient {
	t.Helper()
	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewSubscriptionServiceHandler(whoami{}, connect.WithInterceptors(interceptors...)))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return apiconnect.NewSubscriptionServiceClient(http.DefaultClient, srv.URL)
}

func call(client apiconnect.SubscriptionServiceClient, token string) (*api.GetAccessResponse, error) {
	req := connect.NewRequest(&api.GetAccessRequest{})
	if token != "" {
		req.Header().Set("Authorization", "Bearer "+token)
	}
	resp, err := client.GetAccess(context.Background(), req)
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}

func TestRequireAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("secret", time.Hour)
	client := newClient(t, RequireAuth(jwtManager))

	_, err := call(client, "")
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))

	_, err = call(client, "garbage")
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))

	token, err := jwtManager.Generate(&models.Profile{ID: "u1", Email: "a@example.com", Role: models.RoleUser})
	require.NoError(t, err)
	msg, err := call(client, token)
	require.NoError(t, err)
	assert.Equal(t, "u1|a@example.com|user", msg.Access.Reason)
}

func TestOptionalAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("secret", time.Hour)
	client := newClient(t, OptionalAuth(jwtManager))

	msg, err := call(client, "")
	require.NoError(t, err)
	assert.Equal(t, "||", msg.Access.Reason)

	msg, err = call(client, "garbage")
	require.NoError(t, err)
	assert.Equal(t, "||", msg.Access.Reason)
}

func TestRequireAdmin(t *testing.T) {
	jwtManager := auth.NewJWTManager("secret", time.Hour)
	userToken, _ := jwtManager.Generate(&models.Profile{ID: "u1", Role: models.RoleUser})
	adminToken, _ := jwtManager.Generate(&models.Profile{ID: "a1", Role: models.RoleAdmin})

	guarded := newClient(t, RequireAuth(jwtManager), RequireAdmin(apiconnect.SubscriptionServiceGetAccessProcedure))
	_, err := call(guarded, userToken)
	assert.Equal(t, connect.CodePermissionDenied, connect.CodeOf(err))
	_, err = call(guarded, adminToken)
	assert.NoError(t, err)

	other := newClient(t, RequireAuth(jwtManager), RequireAdmin(apiconnect.SubscriptionServiceListSubscriptionsProcedure))
	_, err = call(other, userToken)
	assert.NoError(t, err)
}

func TestRequireSubscription(t *testing.T) {
	store, err := sqlite.New(filepath.Join(t.TempDir(), "mw.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	jwtManager := auth.NewJWTManager("secret", time.Hour)

	newUser := func(email string) (*models.Profile, string) {
		p := models.NewProfile(email, email, "hash")
		require.NoError(t, store.CreateProfile(ctx, p))
		token, err := jwtManager.Generate(p)
		require.NoError(t, err)
		return p, token
	}

	client := newClient(t, RequireAuth(jwtManager), RequireSubscription(store, func() time.Time { return now }))

	trialing, trialToken := newUser("trial@example.com")
	require.NoError(t, store.UpsertSubscription(ctx, access.NewTrial(trialing.ID, 14, now.AddDate(0, 0, -3))))
	_, err = call(client, trialToken)
	assert.NoError(t, err)

	lapsed, lapsedToken := newUser("lapsed@example.com")
	require.NoError(t, store.UpsertSubscription(ctx, access.NewTrial(lapsed.ID, 14, now.AddDate(0, 0, -30))))
	_, err = call(client, lapsedToken)
	require.Error(t, err)
	assert.Equal(t, connect.CodePermissionDenied, connect.CodeOf(err))
	var cerr *connect.Error
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, access.ReasonExpired, cerr.Meta().Get(AccessReasonHeader))

	_, noneToken := newUser("none@example.com")
	_, err = call(client, noneToken)
	assert.Equal(t, connect.CodePermissionDenied, connect.CodeOf(err))

	admin := models.NewProfile("admin@example.com", "Admin", "hash")
	admin.Role = models.RoleAdmin
	require.NoError(t, store.CreateProfile(ctx, admin))
	adminToken, err := jwtManager.Generate(admin)
	require.NoError(t, err)
	_, err = call(client, adminToken)
	assert.NoError(t, err)

	// A demoted admin loses the bypass while the old token is still valid.
	admin.Role = models.RoleUser
	require.NoError(t, store.UpdateProfile(ctx, admin))
	_, err = call(client, adminToken)
	assert.Equal(t, connect.CodePermissionDenied, connect.CodeOf(err))

	ghostToken, _ := jwtManager.Generate(&models.Profile{ID: "ghost", Role: models.RoleAdmin})
	_, err = call(client, ghostToken)
	assert.Equal(t, connect.CodePermissionDenied, connect.CodeOf(err))
}

func TestMetricsAndLoggingInterceptors(t *testing.T) {
	m := metrics.New()
	jwtManager := auth.NewJWTManager("secret", time.Hour)
	client := newClient(t, LoggingInterceptor(), MetricsInterceptor(m), RequireAuth(jwtManager))

	_, err := call(client, "")
	require.Error(t, err)
	token, _ := jwtManager.Generate(&models.Profile{ID: "u1"})
	_, err = call(client, token)
	require.NoError(t, err)

	n, err := testutil.GatherAndCount(m.Registry(), "famledger_rpc_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
