package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/famledger/internal/models"
	"github.com/mmynk/famledger/internal/storage"
	"github.com/mmynk/famledger/pkg/api"
	"github.com/mmynk/famledger/pkg/api/apiconnect"
)

// WealthService implements the WealthService RPC interface.
type WealthService struct {
	apiconnect.UnimplementedWealthServiceHandler
	store storage.Store
}

// NewWealthService creates a WealthService.
func NewWealthService(store storage.Store) *WealthService {
	return &WealthService{store: store}
}

// CreateAsset records something the caller owns.
func (s *WealthService) CreateAsset(ctx context.Context, req *connect.Request[api.CreateAssetRequest]) (*connect.Response[api.CreateAssetResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, invalidArgument("name is required")
	}
	if req.Msg.Value.IsNegative() {
		return nil, invalidArgument("value cannot be negative")
	}
	acquired, err := parseOptionalDate("acquired_at", req.Msg.AcquiredAt)
	if err != nil {
		return nil, err
	}

	a := &models.Asset{
		UserID:     userID,
		Name:       name,
		Kind:       strings.TrimSpace(req.Msg.Kind),
		Value:      req.Msg.Value,
		AcquiredAt: acquired,
	}
	if err := s.store.CreateAsset(ctx, a); err != nil {
		return nil, storeError("create asset", err)
	}

	slog.Info("Asset created", "user_id", userID, "asset_id", a.ID)
	return connect.NewResponse(&api.CreateAssetResponse{Asset: toAPIAsset(a)}), nil
}

// ListAssets returns the caller's assets and their total value.
func (s *WealthService) ListAssets(ctx context.Context, req *connect.Request[api.ListAssetsRequest]) (*connect.Response[api.ListAssetsResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	assets, err := s.store.ListAssets(ctx, userID)
	if err != nil {
		return nil, storeError("list assets", err)
	}

	resp := &api.ListAssetsResponse{Assets: make([]*api.Asset, len(assets))}
	for i, a := range assets {
		resp.Assets[i] = toAPIAsset(a)
		resp.Total = resp.Total.Add(a.Value)
	}
	return connect.NewResponse(resp), nil
}

// DeleteAsset removes one of the caller's assets.
func (s *WealthService) DeleteAsset(ctx context.Context, req *connect.Request[api.DeleteAssetRequest]) (*connect.Response[api.DeleteAssetResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.ID == "" {
		return nil, invalidArgument("id is required")
	}
	if err := s.store.DeleteAsset(ctx, userID, req.Msg.ID); err != nil {
		return nil, storeError("delete asset", err)
	}
	slog.Info("Asset deleted", "user_id", userID, "asset_id", req.Msg.ID)
	return connect.NewResponse(&api.DeleteAssetResponse{}), nil
}

// CreateLiability records something the caller owes.
func (s *WealthService) CreateLiability(ctx context.Context, req *connect.Request[api.CreateLiabilityRequest]) (*connect.Response[api.CreateLiabilityResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, invalidArgument("name is required")
	}
	if req.Msg.Balance.IsNegative() {
		return nil, invalidArgument("balance cannot be negative")
	}
	if req.Msg.InterestRate.IsNegative() || req.Msg.InterestRate.GreaterThan(decimal.NewFromInt(100)) {
		return nil, invalidArgument("interest rate must be between 0 and 100")
	}
	due, err := parseOptionalDate("due_date", req.Msg.DueDate)
	if err != nil {
		return nil, err
	}

	l := &models.Liability{
		UserID:       userID,
		Name:         name,
		Kind:         strings.TrimSpace(req.Msg.Kind),
		Balance:      req.Msg.Balance,
		InterestRate: req.Msg.InterestRate,
		DueDate:      due,
	}
	if err := s.store.CreateLiability(ctx, l); err != nil {
		return nil, storeError("create liability", err)
	}

	slog.Info("Liability created", "user_id", userID, "liability_id", l.ID)
	return connect.NewResponse(&api.CreateLiabilityResponse{Liability: toAPILiability(l)}), nil
}

// ListLiabilities returns the caller's liabilities and their total balance.
func (s *WealthService) ListLiabilities(ctx context.Context, req *connect.Request[api.ListLiabilitiesRequest]) (*connect.Response[api.ListLiabilitiesResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	liabilities, err := s.store.ListLiabilities(ctx, userID)
	if err != nil {
		return nil, storeError("list liabilities", err)
	}

	resp := &api.ListLiabilitiesResponse{Liabilities: make([]*api.Liability, len(liabilities))}
	for i, l := range liabilities {
		resp.Liabilities[i] = toAPILiability(l)
		resp.Total = resp.Total.Add(l.Balance)
	}
	return connect.NewResponse(resp), nil
}

// DeleteLiability removes one of the caller's liabilities.
func (s *WealthService) DeleteLiability(ctx context.Context, req *connect.Request[api.DeleteLiabilityRequest]) (*connect.Response[api.DeleteLiabilityResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.ID == "" {
		return nil, invalidArgument("id is required")
	}
	if err := s.store.DeleteLiability(ctx, userID, req.Msg.ID); err != nil {
		return nil, storeError("delete liability", err)
	}
	slog.Info("Liability deleted", "user_id", userID, "liability_id", req.Msg.ID)
	return connect.NewResponse(&api.DeleteLiabilityResponse{}), nil
}

// GetNetWorth returns total assets minus total liabilities.
func (s *WealthService) GetNetWorth(ctx context.Context, req *connect.Request[api.GetNetWorthRequest]) (*connect.Response[api.GetNetWorthResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	var assets []*models.Asset
	var liabilities []*models.Liability
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		assets, err = s.store.ListAssets(egCtx, userID)
		return err
	})
	eg.Go(func() error {
		var err error
		liabilities, err = s.store.ListLiabilities(egCtx, userID)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, storeError("load wealth", err)
	}

	resp := &api.GetNetWorthResponse{}
	for _, a := range assets {
		resp.Assets = resp.Assets.Add(a.Value)
	}
	for _, l := range liabilities {
		resp.Liabilities = resp.Liabilities.Add(l.Balance)
	}
	resp.NetWorth = resp.Assets.Sub(resp.Liabilities)
	return connect.NewResponse(resp), nil
}
