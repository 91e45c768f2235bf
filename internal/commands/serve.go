package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/famledger/internal/ai"
	"github.com/mmynk/famledger/internal/auth"
	"github.com/mmynk/famledger/internal/config"
	"github.com/mmynk/famledger/internal/curator"
	"github.com/mmynk/famledger/internal/httpapi"
	"github.com/mmynk/famledger/internal/metrics"
	"github.com/mmynk/famledger/internal/middleware"
	"github.com/mmynk/famledger/internal/report"
	"github.com/mmynk/famledger/internal/service"
	"github.com/mmynk/famledger/internal/storage/sqlite"
	"github.com/mmynk/famledger/pkg/api/apiconnect"
	"github.com/mmynk/famledger/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(configPath *string) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, *configPath, port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides server.port)")

	return cmd
}

func runServe(ctx context.Context, configPath string, port int) error {
	loader, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	loader.Watch(func(c *config.Config) {
		logging.SetLevel(c.Log.Level)
	})
	cfg := loader.Config()
	if port == 0 {
		port = cfg.Server.Port
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.Database.Path)

	m := metrics.New()
	provider, err := newProvider(ctx, cfg.AI, m)
	if err != nil {
		return err
	}

	handler := buildHandler(store, cfg, provider, m)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           h2c.NewHandler(loggingMiddleware(corsMiddleware(handler)), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "address", srv.Addr, "url", fmt.Sprintf("http://localhost%s", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newProvider builds the configured AI backend. It returns nil when AI is off.
func newProvider(ctx context.Context, cfg config.AIConfig, m *metrics.Metrics) (ai.Provider, error) {
	var (
		p   ai.Provider
		err error
	)
	switch cfg.Provider {
	case "gemini":
		p, err = ai.NewGeminiProvider(ctx, ai.GeminiConfig{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
			Timeout: cfg.Timeout,
		})
	case "openai":
		p, err = ai.NewOpenAIProvider(ai.OpenAIConfig{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		})
	default:
		slog.Warn("AI provider disabled; assistant and webhook are unavailable")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("creating %s provider: %w", cfg.Provider, err)
	}
	slog.Info("AI provider ready", "provider", p.Name())
	return ai.Instrument(p, m), nil
}

// buildHandler wires every service and the plain HTTP routes onto one handler.
func buildHandler(store *sqlite.SQLiteStore, cfg *config.Config, provider ai.Provider, m *metrics.Metrics) http.Handler {
	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpireHours)*time.Hour)

	var (
		processor *ai.Processor
		narrator  report.Narrator
	)
	curatorOpts := []curator.Option{
		curator.WithThresholds(curator.Thresholds{
			AutoApply: cfg.Thresholds.AutoApply,
			Review:    cfg.Thresholds.Review,
		}),
		curator.WithFetchLimit(cfg.Curation.FetchLimit),
		curator.WithMetrics(m),
	}
	if provider != nil {
		processor = ai.NewProcessor(store, provider, cfg.Thresholds.AutoInsert)
		narrator = provider
		curatorOpts = append(curatorOpts, curator.WithCategorizer(processor))
	}
	builder := report.NewBuilder(store, narrator)
	cur := curator.New(store, curatorOpts...)

	common := []connect.Interceptor{middleware.LoggingInterceptor(), middleware.MetricsInterceptor(m)}
	withCommon := func(extra ...connect.Interceptor) connect.HandlerOption {
		return connect.WithInterceptors(append(append([]connect.Interceptor{}, common...), extra...)...)
	}
	public := withCommon(middleware.OptionalAuth(jwtManager))
	admin := withCommon(middleware.RequireAuth(jwtManager), middleware.RequireAdmin(service.AdminProcedures...))
	paid := withCommon(middleware.RequireAuth(jwtManager), middleware.RequireSubscription(store, time.Now))

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewAuthServiceHandler(
		service.NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager, store, cfg.Subscription.TrialDays, nil), public))
	mux.Handle(apiconnect.NewSubscriptionServiceHandler(service.NewSubscriptionService(store, nil), admin))
	mux.Handle(apiconnect.NewTransactionServiceHandler(service.NewTransactionService(store, builder), paid))
	mux.Handle(apiconnect.NewCategoryServiceHandler(service.NewCategoryService(store), paid))
	mux.Handle(apiconnect.NewFamilyServiceHandler(service.NewFamilyService(store), paid))
	mux.Handle(apiconnect.NewWealthServiceHandler(service.NewWealthService(store), paid))
	mux.Handle(apiconnect.NewAssistantServiceHandler(service.NewAssistantService(processor, store), paid))
	mux.Handle(apiconnect.NewCurationServiceHandler(service.NewCurationService(cur, store), paid))
	mux.Handle(apiconnect.NewReportServiceHandler(service.NewReportService(builder, store), paid))

	gin.SetMode(gin.ReleaseMode)
	mux.Handle("/", httpapi.NewRouter(httpapi.Config{
		Store:         store,
		JWT:           jwtManager,
		Processor:     processor,
		WebhookSecret: cfg.Messaging.SecretToken,
		Metrics:       m,
	}))

	return mux
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms, Content-Disposition")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
