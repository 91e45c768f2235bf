package service

import (
	"context"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/famledger/internal/access"
	"github.com/mmynk/famledger/internal/models"
	"github.com/mmynk/famledger/pkg/api"
)

func TestGetAccess(t *testing.T) {
	env := setupTestServer(t)
	u := env.register(t, "alice@example.com")

	resp, err := env.subs.GetAccess(context.Background(), authed(u, &api.GetAccessRequest{}))
	if err != nil {
		t.Fatalf("GetAccess failed: %v", err)
	}
	if resp.Msg.Subscription == nil || resp.Msg.Subscription.Status != models.SubscriptionTrial {
		t.Fatalf("expected a trial subscription, got %+v", resp.Msg.Subscription)
	}
	if !resp.Msg.Access.Granted || resp.Msg.Access.Reason != access.ReasonTrial {
		t.Errorf("expected trial access, got %+v", resp.Msg.Access)
	}
	wantEnd := time.Now().AddDate(0, 0, DefaultTrialDays).Unix()
	if d := resp.Msg.Access.Until - wantEnd; d < -60 || d > 60 {
		t.Errorf("until: expected about %d, got %d", wantEnd, resp.Msg.Access.Until)
	}
}

func TestSubscriptionAdmin_RequiresRole(t *testing.T) {
	env := setupTestServer(t)
	u := env.register(t, "alice@example.com")

	_, err := env.subs.ListSubscriptions(context.Background(), authed(u, &api.ListSubscriptionsRequest{}))
	expectCode(t, err, connect.CodePermissionDenied)

	_, err = env.subs.UpdateSubscription(context.Background(), authed(u, &api.UpdateSubscriptionRequest{
		UserID: u.ID, Status: models.SubscriptionActive,
	}))
	expectCode(t, err, connect.CodePermissionDenied)
}

func TestSubscriptionAdmin_Demoted(t *testing.T) {
	env := setupTestServer(t)
	admin := env.admin(t, "admin@example.com")
	ctx := context.Background()

	if _, err := env.subs.ListSubscriptions(ctx, authed(admin, &api.ListSubscriptionsRequest{})); err != nil {
		t.Fatalf("ListSubscriptions failed: %v", err)
	}

	p, err := env.store.GetProfileByID(ctx, admin.ID)
	if err != nil {
		t.Fatalf("GetProfileByID failed: %v", err)
	}
	p.Role = models.RoleUser
	if err := env.store.UpdateProfile(ctx, p); err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}

	// The token still says admin.
	_, err = env.subs.ListSubscriptions(ctx, authed(admin, &api.ListSubscriptionsRequest{}))
	expectCode(t, err, connect.CodePermissionDenied)
}

func TestUpdateSubscription(t *testing.T) {
	env := setupTestServer(t)
	admin := env.admin(t, "admin@example.com")
	u := env.register(t, "alice@example.com")
	ctx := context.Background()

	past := time.Now().Add(-time.Hour).Unix()
	resp, err := env.subs.UpdateSubscription(ctx, authed(admin, &api.UpdateSubscriptionRequest{
		UserID: u.ID, Status: models.SubscriptionCanceled, CurrentPeriodEnd: past,
	}))
	if err != nil {
		t.Fatalf("UpdateSubscription failed: %v", err)
	}
	if resp.Msg.Access.Granted || resp.Msg.Access.Reason != access.ReasonExpired {
		t.Errorf("expected expired access, got %+v", resp.Msg.Access)
	}
	if resp.Msg.Subscription.TrialEnd != 0 {
		t.Errorf("trial end: expected cleared, got %d", resp.Msg.Subscription.TrialEnd)
	}

	resp, err = env.subs.UpdateSubscription(ctx, authed(admin, &api.UpdateSubscriptionRequest{
		UserID: u.ID, Plan: "family", Status: models.SubscriptionActive,
	}))
	if err != nil {
		t.Fatalf("UpdateSubscription failed: %v", err)
	}
	if !resp.Msg.Access.Granted || resp.Msg.Subscription.Plan != "family" {
		t.Errorf("expected active family plan, got %+v / %+v", resp.Msg.Subscription, resp.Msg.Access)
	}

	list, err := env.subs.ListSubscriptions(ctx, authed(admin, &api.ListSubscriptionsRequest{}))
	if err != nil {
		t.Fatalf("ListSubscriptions failed: %v", err)
	}
	if len(list.Msg.Subscriptions) != 2 {
		t.Fatalf("expected 2 subscriptions, got %d", len(list.Msg.Subscriptions))
	}
	var found bool
	for _, info := range list.Msg.Subscriptions {
		if info.Email == "alice@example.com" {
			found = true
			if info.Subscription.Status != models.SubscriptionActive {
				t.Errorf("alice: expected active, got %q", info.Subscription.Status)
			}
		}
	}
	if !found {
		t.Error("expected alice in the subscription list")
	}

	_, err = env.subs.UpdateSubscription(ctx, authed(admin, &api.UpdateSubscriptionRequest{UserID: u.ID, Status: "lifetime"}))
	expectCode(t, err, connect.CodeInvalidArgument)
	_, err = env.subs.UpdateSubscription(ctx, authed(admin, &api.UpdateSubscriptionRequest{UserID: "missing", Status: models.SubscriptionActive}))
	expectCode(t, err, connect.CodeNotFound)
}
