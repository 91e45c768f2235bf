package apiconnect

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/famledger/pkg/api"
)

// WealthServiceName is the fully-qualified service name.
const WealthServiceName = Package + ".WealthService"

// Procedure paths for WealthService.
const (
	WealthServiceCreateAssetProcedure     = "/" + WealthServiceName + "/CreateAsset"
	WealthServiceListAssetsProcedure      = "/" + WealthServiceName + "/ListAssets"
	WealthServiceDeleteAssetProcedure     = "/" + WealthServiceName + "/DeleteAsset"
	WealthServiceCreateLiabilityProcedure = "/" + WealthServiceName + "/CreateLiability"
	WealthServiceListLiabilitiesProcedure = "/" + WealthServiceName + "/ListLiabilities"
	WealthServiceDeleteLiabilityProcedure = "/" + WealthServiceName + "/DeleteLiability"
	WealthServiceGetNetWorthProcedure     = "/" + WealthServiceName + "/GetNetWorth"
)

// WealthServiceHandler is implemented by the server.
type WealthServiceHandler interface {
	CreateAsset(context.Context, *connect.Request[api.CreateAssetRequest]) (*connect.Response[api.CreateAssetResponse], error)
	ListAssets(context.Context, *connect.Request[api.ListAssetsRequest]) (*connect.Response[api.ListAssetsResponse], error)
	DeleteAsset(context.Context, *connect.Request[api.DeleteAssetRequest]) (*connect.Response[api.DeleteAssetResponse], error)
	CreateLiability(context.Context, *connect.Request[api.CreateLiabilityRequest]) (*connect.Response[api.CreateLiabilityResponse], error)
	ListLiabilities(context.Context, *connect.Request[api.ListLiabilitiesRequest]) (*connect.Response[api.ListLiabilitiesResponse], error)
	DeleteLiability(context.Context, *connect.Request[api.DeleteLiabilityRequest]) (*connect.Response[api.DeleteLiabilityResponse], error)
	GetNetWorth(context.Context, *connect.Request[api.GetNetWorthRequest]) (*connect.Response[api.GetNetWorthResponse], error)
}

// NewWealthServiceHandler builds an HTTP handler for svc. The returned path is
// the prefix to mount it under.
func NewWealthServiceHandler(svc WealthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return servicePath("WealthService"), routes{
		WealthServiceCreateAssetProcedure:     connect.NewUnaryHandler(WealthServiceCreateAssetProcedure, svc.CreateAsset, opts...),
		WealthServiceListAssetsProcedure:      connect.NewUnaryHandler(WealthServiceListAssetsProcedure, svc.ListAssets, opts...),
		WealthServiceDeleteAssetProcedure:     connect.NewUnaryHandler(WealthServiceDeleteAssetProcedure, svc.DeleteAsset, opts...),
		WealthServiceCreateLiabilityProcedure: connect.NewUnaryHandler(WealthServiceCreateLiabilityProcedure, svc.CreateLiability, opts...),
		WealthServiceListLiabilitiesProcedure: connect.NewUnaryHandler(WealthServiceListLiabilitiesProcedure, svc.ListLiabilities, opts...),
		WealthServiceDeleteLiabilityProcedure: connect.NewUnaryHandler(WealthServiceDeleteLiabilityProcedure, svc.DeleteLiability, opts...),
		WealthServiceGetNetWorthProcedure:     connect.NewUnaryHandler(WealthServiceGetNetWorthProcedure, svc.GetNetWorth, opts...),
	}
}

// UnimplementedWealthServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedWealthServiceHandler struct{}

func (UnimplementedWealthServiceHandler) CreateAsset(context.Context, *connect.Request[api.CreateAssetRequest]) (*connect.Response[api.CreateAssetResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("famledger.v1.WealthService.CreateAsset is not implemented"))
}

func (UnimplementedWealthServiceHandler) ListAssets(context.Context, *connect.Request[api.ListAssetsRequest]) (*connect.Response[api.ListAssetsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("famledger.v1.WealthService.ListAssets is not implemented"))
}

func (UnimplementedWealthServiceHandler) DeleteAsset(context.Context, *connect.Request[api.DeleteAssetRequest]) (*connect.Response[api.DeleteAssetResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("famledger.v1.WealthService.DeleteAsset is not implemented"))
}

func (UnimplementedWealthServiceHandler) CreateLiability(context.Context, *connect.Request[api.CreateLiabilityRequest]) (*connect.Response[api.CreateLiabilityResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("famledger.v1.WealthService.CreateLiability is not implemented"))
}

func (UnimplementedWealthServiceHandler) ListLiabilities(context.Context, *connect.Request[api.ListLiabilitiesRequest]) (*connect.Response[api.ListLiabilitiesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("famledger.v1.WealthService.ListLiabilities is not implemented"))
}

func (UnimplementedWealthServiceHandler) DeleteLiability(context.Context, *connect.Request[api.DeleteLiabilityRequest]) (*connect.Response[api.DeleteLiabilityResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("famledger.v1.WealthService.DeleteLiability is not implemented"))
}

func (UnimplementedWealthServiceHandler) GetNetWorth(context.Context, *connect.Request[api.GetNetWorthRequest]) (*connect.Response[api.GetNetWorthResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("famledger.v1.WealthService.GetNetWorth is not implemented"))
}

// WealthServiceClient calls WealthService over HTTP.
type WealthServiceClient interface {
	CreateAsset(context.Context, *connect.Request[api.CreateAssetRequest]) (*connect.Response[api.CreateAssetResponse], error)
	ListAssets(context.Context, *connect.Request[api.ListAssetsRequest]) (*connect.Response[api.ListAssetsResponse], error)
	DeleteAsset(context.Context, *connect.Request[api.DeleteAssetRequest]) (*connect.Response[api.DeleteAssetResponse], error)
	CreateLiability(context.Context, *connect.Request[api.CreateLiabilityRequest]) (*connect.Response[api.CreateLiabilityResponse], error)
	ListLiabilities(context.Context, *connect.Request[api.ListLiabilitiesRequest]) (*connect.Response[api.ListLiabilitiesResponse], error)
	DeleteLiability(context.Context, *connect.Request[api.DeleteLiabilityRequest]) (*connect.Response[api.DeleteLiabilityResponse], error)
	GetNetWorth(context.Context, *connect.Request[api.GetNetWorthRequest]) (*connect.Response[api.GetNetWorthResponse], error)
}

// NewWealthServiceClient creates a client for the service at baseURL.
func NewWealthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) WealthServiceClient {
	baseURL = trimBase(baseURL)
	opts    = clientOptions(opts)
	return &wealthServiceClient{
		createAsset:     connect.NewClient[api.CreateAssetRequest, api.CreateAssetResponse](httpClient, baseURL+WealthServiceCreateAssetProcedure, opts...),
		listAssets:      connect.NewClient[api.ListAssetsRequest, api.ListAssetsResponse](httpClient, baseURL+WealthServiceListAssetsProcedure, opts...),
		deleteAsset:     connect.NewClient[api.DeleteAssetRequest, api.DeleteAssetResponse](httpClient, baseURL+WealthServiceDeleteAssetProcedure, opts...),
		createLiability: connect.NewClient[api.CreateLiabilityRequest, api.CreateLiabilityResponse](httpClient, baseURL+WealthServiceCreateLiabilityProcedure, opts...),
		listLiabilities: connect.NewClient[api.ListLiabilitiesRequest, api.ListLiabilitiesResponse](httpClient, baseURL+WealthServiceListLiabilitiesProcedure, opts...),
		deleteLiability: connect.NewClient[api.DeleteLiabilityRequest, api.DeleteLiabilityResponse](httpClient, baseURL+WealthServiceDeleteLiabilityProcedure, opts...),
		getNetWorth:     connect.NewClient[api.GetNetWorthRequest, api.GetNetWorthResponse](httpClient, baseURL+WealthServiceGetNetWorthProcedure, opts...),
	}
}

type wealthServiceClient struct {
	createAsset     *connect.Client[api.CreateAssetRequest, api.CreateAssetResponse]
	listAssets      *connect.Client[api.ListAssetsRequest, api.ListAssetsResponse]
	deleteAsset     *connect.Client[api.DeleteAssetRequest, api.DeleteAssetResponse]
	createLiability *connect.Client[api.CreateLiabilityRequest, api.CreateLiabilityResponse]
	listLiabilities *connect.Client[api.ListLiabilitiesRequest, api.ListLiabilitiesResponse]
	deleteLiability *connect.Client[api.DeleteLiabilityRequest, api.DeleteLiabilityResponse]
	getNetWorth     *connect.Client[api.GetNetWorthRequest, api.GetNetWorthResponse]
}

func (c *wealthServiceClient) CreateAsset(ctx context.Context, req *connect.Request[api.CreateAssetRequest]) (*connect.Response[api.CreateAssetResponse], error) {
	return c.createAsset.CallUnary(ctx, req)
}

func (c *wealthServiceClient) ListAssets(ctx context.Context, req *connect.Request[api.ListAssetsRequest]) (*connect.Response[api.ListAssetsResponse], error) {
	return c.listAssets.CallUnary(ctx, req)
}

func (c *wealthServiceClient) DeleteAsset(ctx context.Context, req *connect.Request[api.DeleteAssetRequest]) (*connect.Response[api.DeleteAssetResponse], error) {
	return c.deleteAsset.CallUnary(ctx, req)
}

func (c *wealthServiceClient) CreateLiability(ctx context.Context, req *connect.Request[api.CreateLiabilityRequest]) (*connect.Response[api.CreateLiabilityResponse], error) {
	return c.createLiability.CallUnary(ctx, req)
}

func (c *wealthServiceClient) ListLiabilities(ctx context.Context, req *connect.Request[api.ListLiabilitiesRequest]) (*connect.Response[api.ListLiabilitiesResponse], error) {
	return c.listLiabilities.CallUnary(ctx, req)
}

func (c *wealthServiceClient) DeleteLiability(ctx context.Context, req *connect.Request[api.DeleteLiabilityRequest]) (*connect.Response[api.DeleteLiabilityResponse], error) {
	return c.deleteLiability.CallUnary(ctx, req)
}

func (c *wealthServiceClient) GetNetWorth(ctx context.Context, req *connect.Request[api.GetNetWorthRequest]) (*connect.Response[api.GetNetWorthResponse], error) {
	return c.getNetWorth.CallUnary(ctx, req)
}
