package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/famledger/internal/access"
	"github.com/mmynk/famledger/internal/auth"
	"github.com/mmynk/famledger/internal/models"
	"github.com/mmynk/famledger/internal/storage"
	"github.com/mmynk/famledger/pkg/api"
	"github.com/mmynk/famledger/pkg/api/apiconnect"
)

// DefaultTrialDays is the trial length given at registration.
const DefaultTrialDays = 14

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	apiconnect.UnimplementedAuthServiceHandler
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	store         storage.Store
	trialDays     int
	logger        *slog.Logger
	now           func() time.Time
}

// NewAuthService creates a new authentication service. trialDays <= 0 selects DefaultTrialDays.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, store storage.Store, trialDays int, logger *slog.Logger) *AuthService {
	if trialDays <= 0 {
		trialDays = DefaultTrialDays
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		store:         store,
		trialDays:     trialDays,
		logger:        logger,
		now:           time.Now,
	}
}

// Register creates a new account with a trial subscription and the default categories.
func (s *AuthService) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	s.logger.Info("Register request", "email", req.Msg.Email)

	if strings.TrimSpace(req.Msg.Email) == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidEmail)
	}

	profile, err := s.authenticator.Register(ctx, req.Msg.Email, req.Msg.DisplayName, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Registration failed", "email", req.Msg.Email, "error", err)
		switch {
		case errors.Is(err, auth.ErrEmailExists):
			return nil, connect.NewError(connect.CodeAlreadyExists, err)
		case errors.Is(err, auth.ErrWeakPassword), errors.Is(err, auth.ErrInvalidEmail):
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	now := s.now()
	trial := access.NewTrial(profile.ID, s.trialDays, now)
	if err := s.store.UpsertSubscription(ctx, trial); err != nil {
		return nil, storeError("create trial subscription", err)
	}

	for _, c := range models.DefaultCategories() {
		c.UserID = profile.ID
		if err := s.store.CreateCategory(ctx, &c); err != nil {
			return nil, storeError("seed categories", err)
		}
	}

	token, err := s.jwtManager.Generate(profile)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", profile.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("User registered successfully", "user_id", profile.ID, "email", profile.Email)
	return connect.NewResponse(&api.RegisterResponse{
		Profile: toAPIProfile(profile),
		Token:   token,
		Access:  toAPIAccess(access.Evaluate(trial, now)),
	}), nil
}

// Login authenticates a user and returns a JWT token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	s.logger.Info("Login request", "email", req.Msg.Email)

	if req.Msg.Email == "" || req.Msg.Password == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidCredentials)
	}

	profile, err := s.authenticator.Authenticate(ctx, req.Msg.Email, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Login failed", "email", req.Msg.Email, "error", err)
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredentials)
	}

	token, err := s.jwtManager.Generate(profile)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", profile.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("User logged in successfully", "user_id", profile.ID)
	return connect.NewResponse(&api.LoginResponse{
		Profile: toAPIProfile(profile),
		Token:   token,
	}), nil
}

// GetCurrentUser returns the authenticated user's profile and access state.
func (s *AuthService) GetCurrentUser(ctx context.Context, req *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	profile, err := s.store.GetProfileByID(ctx, userID)
	if err != nil {
		return nil, storeError("get profile", err)
	}
	sub, err := s.store.GetSubscription(ctx, userID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, storeError("get subscription", err)
	}

	return connect.NewResponse(&api.GetCurrentUserResponse{
		Profile: toAPIProfile(profile),
		Access:  toAPIAccess(access.Evaluate(sub, s.now())),
	}), nil
}

// UpdateProfile changes the display name, currency or linked messaging chat.
func (s *AuthService) UpdateProfile(ctx context.Context, req *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.UpdateProfileResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	profile, err := s.store.GetProfileByID(ctx, userID)
	if err != nil {
		return nil, storeError("get profile", err)
	}

	if v := req.Msg.DisplayName; v != nil {
		name := strings.TrimSpace(*v)
		if name == "" {
			return nil, invalidArgument("display name cannot be empty")
		}
		profile.DisplayName = name
	}
	if v := req.Msg.Currency; v != nil {
		cur := strings.ToUpper(strings.TrimSpace(*v))
		if len(cur) != 3 {
			return nil, invalidArgument("currency must be a 3-letter ISO code, got %q", *v)
		}
		profile.Currency = cur
	}
	if v := req.Msg.MessagingChatID; v != nil {
		chatID := strings.TrimSpace(*v)
		if chatID != "" && chatID != profile.MessagingChatID {
			other, err := s.store.GetProfileByChatID(ctx, chatID)
			if err == nil && other.ID != userID {
				return nil, connect.NewError(connect.CodeAlreadyExists, errors.New("chat is linked to another account"))
			}
			if err != nil && !errors.Is(err, storage.ErrNotFound) {
				return nil, storeError("look up chat", err)
			}
		}
		profile.MessagingChatID = chatID
	}

	profile.UpdatedAt = s.now().Unix()
	if err := s.store.UpdateProfile(ctx, profile); err != nil {
		return nil, storeError("update profile", err)
	}

	s.logger.Info("Profile updated", "user_id", userID)
	return connect.NewResponse(&api.UpdateProfileResponse{Profile: toAPIProfile(profile)}), nil
}
