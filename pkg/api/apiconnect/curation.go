package apiconnect

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/famledger/pkg/api"
)

// CurationServiceName is the fully-qualified service name.
const CurationServiceName = Package + ".CurationService"

// Procedure paths for CurationService.
const (
	CurationServiceRunCurationProcedure      = "/" + CurationServiceName + "/RunCuration"
	CurationServiceListSuggestionsProcedure  = "/" + CurationServiceName + "/ListSuggestions"
	CurationServiceReviewSuggestionProcedure = "/" + CurationServiceName + "/ReviewSuggestion"
	CurationServiceListPatternsProcedure     = "/" + CurationServiceName + "/ListPatterns"
)

// CurationServiceHandler is implemented by the server.
type CurationServiceHandler interface {
	RunCuration(context.Context, *connect.Request[api.RunCurationRequest]) (*connect.Response[api.RunCurationResponse], error)
	ListSuggestions(context.Context, *connect.Request[api.ListSuggestionsRequest]) (*connect.Response[api.ListSuggestionsResponse], error)
	ReviewSuggestion(context.Context, *connect.Request[api.ReviewSuggestionRequest]) (*connect.Response[api.ReviewSuggestionResponse], error)
	ListPatterns(context.Context, *connect.Request[api.ListPatternsRequest]) (*connect.Response[api.ListPatternsResponse], error)
}

// NewCurationServiceHandler builds an HTTP handler for svc. The returned path is
// the prefix to mount it under.
func NewCurationServiceHandler(svc CurationServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return servicePath("CurationService"), routes{
		CurationServiceRunCurationProcedure:      connect.NewUnaryHandler(CurationServiceRunCurationProcedure, svc.RunCuration, opts...),
		CurationServiceListSuggestionsProcedure:  connect.NewUnaryHandler(CurationServiceListSuggestionsProcedure, svc.ListSuggestions, opts...),
		CurationServiceReviewSuggestionProcedure: connect.NewUnaryHandler(CurationServiceReviewSuggestionProcedure, svc.ReviewSuggestion, opts...),
		CurationServiceListPatternsProcedure:     connect.NewUnaryHandler(CurationServiceListPatternsProcedure, svc.ListPatterns, opts...),
	}
}

// UnimplementedCurationServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedCurationServiceHandler struct{}

func (UnimplementedCurationServiceHandler) RunCuration(context.Context, *connect.Request[api.RunCurationRequest]) (*connect.Response[api.RunCurationResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("famledger.v1.CurationService.RunCuration is not implemented"))
}

func (UnimplementedCurationServiceHandler) ListSuggestions(context.Context, *connect.Request[api.ListSuggestionsRequest]) (*connect.Response[api.ListSuggestionsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("famledger.v1.CurationService.ListSuggestions is not implemented"))
}

func (UnimplementedCurationServiceHandler) ReviewSuggestion(context.Context, *connect.Request[api.ReviewSuggestionRequest]) (*connect.Response[api.ReviewSuggestionResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("famledger.v1.CurationService.ReviewSuggestion is not implemented"))
}

func (UnimplementedCurationServiceHandler) ListPatterns(context.Context, *connect.Request[api.ListPatternsRequest]) (*connect.Response[api.ListPatternsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("famledger.v1.CurationService.ListPatterns is not implemented"))
}

// CurationServiceClient calls CurationService over HTTP.
type CurationServiceClient interface {
	RunCuration(context.Context, *connect.Request[api.RunCurationRequest]) (*connect.Response[api.RunCurationResponse], error)
	ListSuggestions(context.Context, *connect.Request[api.ListSuggestionsRequest]) (*connect.Response[api.ListSuggestionsResponse], error)
	ReviewSuggestion(context.Context, *connect.Request[api.ReviewSuggestionRequest]) (*connect.Response[api.ReviewSuggestionResponse], error)
	ListPatterns(context.Context, *connect.Request[api.ListPatternsRequest]) (*connect.Response[api.ListPatternsResponse], error)
}

// NewCurationServiceClient creates a client for the service at baseURL.
func NewCurationServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) CurationServiceClient {
	baseURL = trimBase(baseURL)
	opts    = clientOptions(opts)
	return &curationServiceClient{
		runCuration:      connect.NewClient[api.RunCurationRequest, api.RunCurationResponse](httpClient, baseURL+CurationServiceRunCurationProcedure, opts...),
		listSuggestions:  connect.NewClient[api.ListSuggestionsRequest, api.ListSuggestionsResponse](httpClient, baseURL+CurationServiceListSuggestionsProcedure, opts...),
		reviewSuggestion: connect.NewClient[api.ReviewSuggestionRequest, api.ReviewSuggestionResponse](httpClient, baseURL+CurationServiceReviewSuggestionProcedure, opts...),
		listPatterns:     connect.NewClient[api.ListPatternsRequest, api.ListPatternsResponse](httpClient, baseURL+CurationServiceListPatternsProcedure, opts...),
	}
}

type curationServiceClient struct {
	runCuration      *connect.Client[api.RunCurationRequest, api.RunCurationResponse]
	listSuggestions  *connect.Client[api.ListSuggestionsRequest, api.ListSuggestionsResponse]
	reviewSuggestion *connect.Client[api.ReviewSuggestionRequest, api.ReviewSuggestionResponse]
	listPatterns     *connect.Client[api.ListPatternsRequest, api.ListPatternsResponse]
}

func (c *curationServiceClient) RunCuration(ctx context.Context, req *connect.Request[api.RunCurationRequest]) (*connect.Response[api.RunCurationResponse], error) {
	return c.runCuration.CallUnary(ctx, req)
}

func (c *curationServiceClient) ListSuggestions(ctx context.Context, req *connect.Request[api.ListSuggestionsRequest]) (*connect.Response[api.ListSuggestionsResponse], error) {
	return c.listSuggestions.CallUnary(ctx, req)
}

func (c *curationServiceClient) ReviewSuggestion(ctx context.Context, req *connect.Request[api.ReviewSuggestionRequest]) (*connect.Response[api.ReviewSuggestionResponse], error) {
	return c.reviewSuggestion.CallUnary(ctx, req)
}

func (c *curationServiceClient) ListPatterns(ctx context.Context, req *connect.Request[api.ListPatternsRequest]) (*connect.Response[api.ListPatternsResponse], error) {
	return c.listPatterns.CallUnary(ctx, req)
}
