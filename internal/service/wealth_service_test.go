package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/famledger/pkg/api"
)

func TestWealth_NetWorth(t *testing.T) {
	env := setupTestServer(t)
	u := env.register(t, "alice@example.com")
	ctx := context.Background()

	house, err := env.wealth.CreateAsset(ctx, authed(u, &api.CreateAssetRequest{
		Name: "House", Kind: "property", Value: decimal.NewFromInt(300000), AcquiredAt: "2019-06-01",
	}))
	if err != nil {
		t.Fatalf("CreateAsset failed: %v", err)
	}
	if house.Msg.Asset.AcquiredAt != "2019-06-01" {
		t.Errorf("acquired at: expected 2019-06-01, got %q", house.Msg.Asset.AcquiredAt)
	}
	if _, err := env.wealth.CreateAsset(ctx, authed(u, &api.CreateAssetRequest{
		Name: "Savings", Kind: "cash", Value: decimal.RequireFromString("12500.50"),
	})); err != nil {
		t.Fatalf("CreateAsset failed: %v", err)
	}
	if _, err := env.wealth.CreateLiability(ctx, authed(u, &api.CreateLiabilityRequest{
		Name: "Mortgage", Balance: decimal.NewFromInt(200000), InterestRate: decimal.RequireFromString("3.5"),
	})); err != nil {
		t.Fatalf("CreateLiability failed: %v", err)
	}

	assets, err := env.wealth.ListAssets(ctx, authed(u, &api.ListAssetsRequest{}))
	if err != nil {
		t.Fatalf("ListAssets failed: %v", err)
	}
	if len(assets.Msg.Assets) != 2 || !assets.Msg.Total.Equal(decimal.RequireFromString("312500.50")) {
		t.Errorf("assets: expected 2 totalling 312500.50, got %d totalling %s", len(assets.Msg.Assets), assets.Msg.Total)
	}

	nw, err := env.wealth.GetNetWorth(ctx, authed(u, &api.GetNetWorthRequest{}))
	if err != nil {
		t.Fatalf("GetNetWorth failed: %v", err)
	}
	if !nw.Msg.NetWorth.Equal(decimal.RequireFromString("112500.50")) {
		t.Errorf("net worth: expected 112500.50, got %s", nw.Msg.NetWorth)
	}

	if _, err := env.wealth.DeleteAsset(ctx, authed(u, &api.DeleteAssetRequest{ID: house.Msg.Asset.ID})); err != nil {
		t.Fatalf("DeleteAsset failed: %v", err)
	}
	nw, err = env.wealth.GetNetWorth(ctx, authed(u, &api.GetNetWorthRequest{}))
	if err != nil {
		t.Fatalf("GetNetWorth failed: %v", err)
	}
	if !nw.Msg.NetWorth.Equal(decimal.RequireFromString("-187499.50")) {
		t.Errorf("net worth: expected -187499.50, got %s", nw.Msg.NetWorth)
	}
}

func TestWealth_Validation(t *testing.T) {
	env := setupTestServer(t)
	u := env.register(t, "alice@example.com")
	ctx := context.Background()

	_, err := env.wealth.CreateAsset(ctx, authed(u, &api.CreateAssetRequest{Name: " ", Value: decimal.NewFromInt(1)}))
	expectCode(t, err, connect.CodeInvalidArgument)

	_, err = env.wealth.CreateAsset(ctx, authed(u, &api.CreateAssetRequest{Name: "Car", Value: decimal.NewFromInt(-1)}))
	expectCode(t, err, connect.CodeInvalidArgument)

	_, err = env.wealth.CreateAsset(ctx, authed(u, &api.CreateAssetRequest{Name: "Car", Value: decimal.NewFromInt(1), AcquiredAt: "yesterday"}))
	expectCode(t, err, connect.CodeInvalidArgument)

	_, err = env.wealth.CreateLiability(ctx, authed(u, &api.CreateLiabilityRequest{Name: "Card", Balance: decimal.NewFromInt(1), InterestRate: decimal.NewFromInt(120)}))
	expectCode(t, err, connect.CodeInvalidArgument)

	_, err = env.wealth.DeleteLiability(ctx, authed(u, &api.DeleteLiabilityRequest{ID: "missing"}))
	expectCode(t, err, connect.CodeNotFound)
}
