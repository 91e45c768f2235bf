package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/famledger/internal/access"
	"github.com/mmynk/famledger/internal/storage"
)

// ErrSubscriptionRequired is returned when the caller's subscription does not grant access.
var ErrSubscriptionRequired = errors.New("an active subscription or trial is required")

// AccessReasonHeader carries access.Decision.Reason on denied calls.
const AccessReasonHeader = "Famledger-Access-Reason"

// AccessStore is what RequireSubscription reads.
type AccessStore interface {
	storage.ProfileStore
	storage.SubscriptionStore
}

// RequireSubscription rejects callers whose subscription does not grant
// access at now(). Admins are always let through; the role is confirmed
// against the stored profile so a demotion takes effect before the token
// expires. It must run after RequireAuth.
func RequireSubscription(store AccessStore, now func() time.Time) connect.UnaryInterceptorFunc {
	if now == nil {
		now = time.Now
	}
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			userID := GetUserID(ctx)
			if userID == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, errors.New("authentication required"))
			}
			if IsAdmin(ctx) {
				admin, err := StoredAdmin(ctx, store, userID)
				if err != nil {
					return nil, connect.NewError(connect.CodeInternal, err)
				}
				if admin {
					return next(ctx, req)
				}
			}

			sub, err := store.GetSubscription(ctx, userID)
			if err != nil && !errors.Is(err, storage.ErrNotFound) {
				return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("loading subscription: %w", err))
			}

			d := access.Evaluate(sub, now())
			if !d.Granted {
				slog.Info("Access denied", "user_id", userID, "procedure", req.Spec().Procedure, "reason", d.Reason)
				cerr := connect.NewError(connect.CodePermissionDenied, ErrSubscriptionRequired)
				cerr.Meta().Set(AccessReasonHeader, d.Reason)
				return nil, cerr
			}
			return next(ctx, req)
		}
	}
}

// StoredAdmin reports whether the stored profile for userID holds the admin
// role. A missing profile is not an admin.
func StoredAdmin(ctx context.Context, store storage.ProfileStore, userID string) (bool, error) {
	p, err := store.GetProfileByID(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("loading profile: %w", err)
	}
	return p.IsAdmin(), nil
}
