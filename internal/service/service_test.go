package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/famledger/internal/ai"
	"github.com/mmynk/famledger/internal/auth"
	"github.com/mmynk/famledger/internal/curator"
	"github.com/mmynk/famledger/internal/middleware"
	"github.com/mmynk/famledger/internal/models"
	"github.com/mmynk/famledger/internal/report"
	"github.com/mmynk/famledger/internal/storage/sqlite"
	"github.com/mmynk/famledger/pkg/api"
	"github.com/mmynk/famledger/pkg/api/apiconnect"
)

// fakeProvider returns canned answers and records what it was asked.
type fakeProvider struct {
	extraction *ai.Extraction
	extractErr error
	guess      *curator.CategoryGuess
	narrative  string
	lastInput  ai.Input
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Extract(_ context.Context, in ai.Input, _ time.Time, _ []string) (*ai.Extraction, error) {
	f.lastInput = in
	if f.extractErr != nil {
		return nil, f.extractErr
	}
	ex := *f.extraction
	return &ex, nil
}

func (f *fakeProvider) Classify(_ context.Context, _ *models.Transaction, categories []*models.Category) (*curator.CategoryGuess, error) {
	if f.guess == nil {
		return &curator.CategoryGuess{}, nil
	}
	g := *f.guess
	if g.CategoryID == "" {
		// Default to Groceries.
		for _, c := range categories {
			if c.Name == "Groceries" {
				g.CategoryID = c.ID
			}
		}
	}
	return &g, nil
}

func (f *fakeProvider) Narrate(context.Context, string) (string, error) {
	return f.narrative, nil
}

type testEnv struct {
	store    *sqlite.SQLiteStore
	jwt      *auth.JWTManager
	provider *fakeProvider

	auth         apiconnect.AuthServiceClient
	transactions apiconnect.TransactionServiceClient
	categories   apiconnect.CategoryServiceClient
	family       apiconnect.FamilyServiceClient
	wealth       apiconnect.WealthServiceClient
	assistant    apiconnect.AssistantServiceClient
	curation     apiconnect.CurationServiceClient
	subs         apiconnect.SubscriptionServiceClient
	reports      apiconnect.ReportServiceClient
}

// setupTestServer creates every service over a temporary SQLite database.
func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	env := &testEnv{
		store:    store,
		jwt:      auth.NewJWTManager("test-secret", time.Hour),
		provider: &fakeProvider{},
	}

	processor := ai.NewProcessor(store, env.provider, 0)
	builder := report.NewBuilder(store, env.provider)
	cur := curator.New(store, curator.WithCategorizer(processor))

	public := connect.WithInterceptors(middleware.OptionalAuth(env.jwt))
	private := connect.WithInterceptors(middleware.RequireAuth(env.jwt))

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewAuthServiceHandler(NewAuthService(auth.NewPasswordAuthenticator(store), env.jwt, store, 0, nil), public))
	mux.Handle(apiconnect.NewTransactionServiceHandler(NewTransactionService(store, builder), private))
	mux.Handle(apiconnect.NewCategoryServiceHandler(NewCategoryService(store), private))
	mux.Handle(apiconnect.NewFamilyServiceHandler(NewFamilyService(store), private))
	mux.Handle(apiconnect.NewWealthServiceHandler(NewWealthService(store), private))
	mux.Handle(apiconnect.NewAssistantServiceHandler(NewAssistantService(processor, store), private))
	mux.Handle(apiconnect.NewCurationServiceHandler(NewCurationService(cur, store), private))
	mux.Handle(apiconnect.NewSubscriptionServiceHandler(NewSubscriptionService(store, nil), private))
	mux.Handle(apiconnect.NewReportServiceHandler(NewReportService(builder, store), private))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	env.auth = apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL)
	env.transactions = apiconnect.NewTransactionServiceClient(http.DefaultClient, server.URL)
	env.categories = apiconnect.NewCategoryServiceClient(http.DefaultClient, server.URL)
	env.family = apiconnect.NewFamilyServiceClient(http.DefaultClient, server.URL)
	env.wealth = apiconnect.NewWealthServiceClient(http.DefaultClient, server.URL)
	env.assistant = apiconnect.NewAssistantServiceClient(http.DefaultClient, server.URL)
	env.curation = apiconnect.NewCurationServiceClient(http.DefaultClient, server.URL)
	env.subs = apiconnect.NewSubscriptionServiceClient(http.DefaultClient, server.URL)
	env.reports = apiconnect.NewReportServiceClient(http.DefaultClient, server.URL)
	return env
}

// testUser is a registered account and its token.
type testUser struct {
	ID    string
	Token string
}

func (e *testEnv) register(t *testing.T, email string) testUser {
	t.Helper()
	resp, err := e.auth.Register(context.Background(), connect.NewRequest(&api.RegisterRequest{
		Email:    email,
		Password: "correct-horse",
	}))
	if err != nil {
		t.Fatalf("Register(%s) failed: %v", email, err)
	}
	return testUser{ID: resp.Msg.Profile.ID, Token: resp.Msg.Token}
}

// admin promotes a fresh account to admin and returns a token carrying the role.
func (e *testEnv) admin(t *testing.T, email string) testUser {
	t.Helper()
	u := e.register(t, email)
	p, err := e.store.GetProfileByID(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("GetProfileByID failed: %v", err)
	}
	p.Role = models.RoleAdmin
	if err := e.store.UpdateProfile(context.Background(), p); err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	token, err := e.jwt.Generate(p)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return testUser{ID: u.ID, Token: token}
}

// categoryID looks up a seeded category by name.
func (e *testEnv) categoryID(t *testing.T, u testUser, name string) string {
	t.Helper()
	resp, err := e.categories.ListCategories(context.Background(), authed(u, &api.ListCategoriesRequest{}))
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	for _, c := range resp.Msg.Categories {
		if c.Name == name {
			return c.ID
		}
	}
	t.Fatalf("category %q not found", name)
	return ""
}

func (e *testEnv) addTransaction(t *testing.T, u testUser, typ, amount, desc, date, categoryID string) *api.Transaction {
	t.Helper()
	resp, err := e.transactions.CreateTransaction(context.Background(), authed(u, &api.CreateTransactionRequest{
		Type:        typ,
		Amount:      decimal.RequireFromString(amount),
		Description: desc,
		Date:        date,
		CategoryID:  categoryID,
	}))
	if err != nil {
		t.Fatalf("CreateTransaction(%s) failed: %v", desc, err)
	}
	return resp.Msg.Transaction
}

func authed[T any](u testUser, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+u.Token)
	return req
}

func expectCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v, got nil error", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Errorf("expected %v, got %v (%v)", want, got, err)
	}
}
