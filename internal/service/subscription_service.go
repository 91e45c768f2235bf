package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/famledger/internal/access"
	"github.com/mmynk/famledger/internal/middleware"
	"github.com/mmynk/famledger/internal/models"
	"github.com/mmynk/famledger/internal/storage"
	"github.com/mmynk/famledger/pkg/api"
	"github.com/mmynk/famledger/pkg/api/apiconnect"
)

// SubscriptionService implements the SubscriptionService RPC interface.
// ListSubscriptions and UpdateSubscription are admin-only.
type SubscriptionService struct {
	apiconnect.UnimplementedSubscriptionServiceHandler
	store storage.Store
	now   func() time.Time
}

// NewSubscriptionService creates a SubscriptionService. A nil now uses time.Now.
func NewSubscriptionService(store storage.Store, now func() time.Time) *SubscriptionService {
	if now == nil {
		now = time.Now
	}
	return &SubscriptionService{store: store, now: now}
}

// AdminProcedures lists the procedures that require the admin role.
var AdminProcedures = []string{
	apiconnect.SubscriptionServiceListSubscriptionsProcedure,
	apiconnect.SubscriptionServiceUpdateSubscriptionProcedure,
}

// GetAccess reports the caller's subscription and whether it grants access.
func (s *SubscriptionService) GetAccess(ctx context.Context, req *connect.Request[api.GetAccessRequest]) (*connect.Response[api.GetAccessResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	sub, err := s.store.GetSubscription(ctx, userID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, storeError("get subscription", err)
	}

	return connect.NewResponse(&api.GetAccessResponse{
		Subscription: toAPISubscription(sub),
		Access:       toAPIAccess(access.Evaluate(sub, s.now())),
	}), nil
}

// ListSubscriptions returns every subscription with its owner's email.
func (s *SubscriptionService) ListSubscriptions(ctx context.Context, req *connect.Request[api.ListSubscriptionsRequest]) (*connect.Response[api.ListSubscriptionsResponse], error) {
	if err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}

	subs, err := s.store.ListSubscriptions(ctx)
	if err != nil {
		return nil, storeError("list subscriptions", err)
	}

	now := s.now()
	resp := &api.ListSubscriptionsResponse{Subscriptions: make([]*api.SubscriptionInfo, 0, len(subs))}
	for _, sub := range subs {
		info := &api.SubscriptionInfo{
			Subscription: toAPISubscription(sub),
			Access:       toAPIAccess(access.Evaluate(sub, now)),
		}
		p, err := s.store.GetProfileByID(ctx, sub.UserID)
		switch {
		case err == nil:
			info.Email = p.Email
		case !errors.Is(err, storage.ErrNotFound):
			return nil, storeError("get profile", err)
		}
		resp.Subscriptions = append(resp.Subscriptions, info)
	}
	return connect.NewResponse(resp), nil
}

// UpdateSubscription overwrites a profile's subscription.
func (s *SubscriptionService) UpdateSubscription(ctx context.Context, req *connect.Request[api.UpdateSubscriptionRequest]) (*connect.Response[api.UpdateSubscriptionResponse], error) {
	if err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}
	if req.Msg.UserID == "" {
		return nil, invalidArgument("user_id is required")
	}
	if !models.ValidSubscriptionStatus(req.Msg.Status) {
		return nil, invalidArgument("unknown status %q", req.Msg.Status)
	}
	if _, err := s.store.GetProfileByID(ctx, req.Msg.UserID); err != nil {
		return nil, storeError("get profile", err)
	}

	sub, err := s.store.GetSubscription(ctx, req.Msg.UserID)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		sub = &models.Subscription{UserID: req.Msg.UserID}
	case err != nil:
		return nil, storeError("get subscription", err)
	}
	if req.Msg.Plan != "" {
		sub.Plan = req.Msg.Plan
	}
	sub.Status = req.Msg.Status
	sub.TrialEnd = fromOptionalUnix(req.Msg.TrialEnd)
	sub.CurrentPeriodEnd = fromOptionalUnix(req.Msg.CurrentPeriodEnd)

	if err := s.store.UpsertSubscription(ctx, sub); err != nil {
		return nil, storeError("upsert subscription", err)
	}

	d := access.Evaluate(sub, s.now())
	slog.Info("Subscription updated",
		"admin_id", middleware.GetUserID(ctx), "user_id", sub.UserID, "status", sub.Status, "granted", d.Granted)
	return connect.NewResponse(&api.UpdateSubscriptionResponse{
		Subscription: toAPISubscription(sub),
		Access:       toAPIAccess(d),
	}), nil
}

// requireAdmin checks the token's role and then the stored profile, so a
// demoted admin is refused before the token expires.
func (s *SubscriptionService) requireAdmin(ctx context.Context) error {
	userID, err := requireUser(ctx)
	if err != nil {
		return err
	}
	if !middleware.IsAdmin(ctx) {
		return connect.NewError(connect.CodePermissionDenied, middleware.ErrAdminRequired)
	}
	admin, err := middleware.StoredAdmin(ctx, s.store, userID)
	if err != nil {
		slog.Error("Failed to load profile", "user_id", userID, "error", err)
		return connect.NewError(connect.CodeInternal, err)
	}
	if !admin {
		return connect.NewError(connect.CodePermissionDenied, middleware.ErrAdminRequired)
	}
	return nil
}
