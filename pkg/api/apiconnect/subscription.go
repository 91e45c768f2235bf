package apiconnect

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/famledger/pkg/api"
)

// SubscriptionServiceName is the fully-qualified service name.
const SubscriptionServiceName = Package + ".SubscriptionService"

// Procedure paths for SubscriptionService.
const (
	SubscriptionServiceGetAccessProcedure          = "/" + SubscriptionServiceName + "/GetAccess"
	SubscriptionServiceListSubscriptionsProcedure  = "/" + SubscriptionServiceName + "/ListSubscriptions"
	SubscriptionServiceUpdateSubscriptionProcedure = "/" + SubscriptionServiceName + "/UpdateSubscription"
)

// SubscriptionServiceHandler is implemented by the server.
type SubscriptionServiceHandler interface {
	GetAccess(context.Context, *connect.Request[api.GetAccessRequest]) (*connect.Response[api.GetAccessResponse], error)
	ListSubscriptions(context.Context, *connect.Request[api.ListSubscriptionsRequest]) (*connect.Response[api.ListSubscriptionsResponse], error)
	UpdateSubscription(context.Context, *connect.Request[api.UpdateSubscriptionRequest]) (*connect.Response[api.UpdateSubscriptionResponse], error)
}

// NewSubscriptionServiceHandler builds an HTTP handler for svc. The returned path is
// the prefix to mount it under.
func NewSubscriptionServiceHandler(svc SubscriptionServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return servicePath("SubscriptionService"), routes{
		SubscriptionServiceGetAccessProcedure:          connect.NewUnaryHandler(SubscriptionServiceGetAccessProcedure, svc.GetAccess, opts...),
		SubscriptionServiceListSubscriptionsProcedure:  connect.NewUnaryHandler(SubscriptionServiceListSubscriptionsProcedure, svc.ListSubscriptions, opts...),
		SubscriptionServiceUpdateSubscriptionProcedure: connect.NewUnaryHandler(SubscriptionServiceUpdateSubscriptionProcedure, svc.UpdateSubscription, opts...),
	}
}

// UnimplementedSubscriptionServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedSubscriptionServiceHandler struct{}

func (UnimplementedSubscriptionServiceHandler) GetAccess(context.Context, *connect.Request[api.GetAccessRequest]) (*connect.Response[api.GetAccessResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("famledger.v1.SubscriptionService.GetAccess is not implemented"))
}

func (UnimplementedSubscriptionServiceHandler) ListSubscriptions(context.Context, *connect.Request[api.ListSubscriptionsRequest]) (*connect.Response[api.ListSubscriptionsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("famledger.v1.SubscriptionService.ListSubscriptions is not implemented"))
}

func (UnimplementedSubscriptionServiceHandler) UpdateSubscription(context.Context, *connect.Request[api.UpdateSubscriptionRequest]) (*connect.Response[api.UpdateSubscriptionResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("famledger.v1.SubscriptionService.UpdateSubscription is not implemented"))
}

// SubscriptionServiceClient calls SubscriptionService over HTTP.
type SubscriptionServiceClient interface {
	GetAccess(context.Context, *connect.Request[api.GetAccessRequest]) (*connect.Response[api.GetAccessResponse], error)
	ListSubscriptions(context.Context, *connect.Request[api.ListSubscriptionsRequest]) (*connect.Response[api.ListSubscriptionsResponse], error)
	UpdateSubscription(context.Context, *connect.Request[api.UpdateSubscriptionRequest]) (*connect.Response[api.UpdateSubscriptionResponse], error)
}

// NewSubscriptionServiceClient creates a client for the service at baseURL.
func NewSubscriptionServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SubscriptionServiceClient {
	baseURL = trimBase(baseURL)
	opts    = clientOptions(opts)
	return &subscriptionServiceClient{
		getAccess:          connect.NewClient[api.GetAccessRequest, api.GetAccessResponse](httpClient, baseURL+SubscriptionServiceGetAccessProcedure, opts...),
		listSubscriptions:  connect.NewClient[api.ListSubscriptionsRequest, api.ListSubscriptionsResponse](httpClient, baseURL+SubscriptionServiceListSubscriptionsProcedure, opts...),
		updateSubscription: connect.NewClient[api.UpdateSubscriptionRequest, api.UpdateSubscriptionResponse](httpClient, baseURL+SubscriptionServiceUpdateSubscriptionProcedure, opts...),
	}
}

type subscriptionServiceClient struct {
	getAccess          *connect.Client[api.GetAccessRequest, api.GetAccessResponse]
	listSubscriptions  *connect.Client[api.ListSubscriptionsRequest, api.ListSubscriptionsResponse]
	updateSubscription *connect.Client[api.UpdateSubscriptionRequest, api.UpdateSubscriptionResponse]
}

func (c *subscriptionServiceClient) GetAccess(ctx context.Context, req *connect.Request[api.GetAccessRequest]) (*connect.Response[api.GetAccessResponse], error) {
	return c.getAccess.CallUnary(ctx, req)
}

func (c *subscriptionServiceClient) ListSubscriptions(ctx context.Context, req *connect.Request[api.ListSubscriptionsRequest]) (*connect.Response[api.ListSubscriptionsResponse], error) {
	return c.listSubscriptions.CallUnary(ctx, req)
}

func (c *subscriptionServiceClient) UpdateSubscription(ctx context.Context, req *connect.Request[api.UpdateSubscriptionRequest]) (*connect.Response[api.UpdateSubscriptionResponse], error) {
	return c.updateSubscription.CallUnary(ctx, req)
}
