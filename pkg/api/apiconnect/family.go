package apiconnect

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/famledger/pkg/api"
)

// FamilyServiceName is the fully-qualified service name.
const FamilyServiceName = Package + ".FamilyService"

// Procedure paths for FamilyService.
const (
	FamilyServiceCreateFamilyProcedure = "/" + FamilyServiceName + "/CreateFamily"
	FamilyServiceGetFamilyProcedure    = "/" + FamilyServiceName + "/GetFamily"
	FamilyServiceAddMemberProcedure    = "/" + FamilyServiceName + "/AddMember"
	FamilyServiceRemoveMemberProcedure = "/" + FamilyServiceName + "/RemoveMember"
)

// FamilyServiceHandler is implemented by the server.
type FamilyServiceHandler interface {
	CreateFamily(context.Context, *connect.Request[api.CreateFamilyRequest]) (*connect.Response[api.CreateFamilyResponse], error)
	GetFamily(context.Context, *connect.Request[api.GetFamilyRequest]) (*connect.Response[api.GetFamilyResponse], error)
	AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error)
	RemoveMember(context.Context, *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error)
}

// NewFamilyServiceHandler builds an HTTP handler for svc. The returned path is
// the prefix to mount it under.
func NewFamilyServiceHandler(svc FamilyServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return servicePath("FamilyService"), routes{
		FamilyServiceCreateFamilyProcedure: connect.NewUnaryHandler(FamilyServiceCreateFamilyProcedure, svc.CreateFamily, opts...),
		FamilyServiceGetFamilyProcedure:    connect.NewUnaryHandler(FamilyServiceGetFamilyProcedure, svc.GetFamily, opts...),
		FamilyServiceAddMemberProcedure:    connect.NewUnaryHandler(FamilyServiceAddMemberProcedure, svc.AddMember, opts...),
		FamilyServiceRemoveMemberProcedure: connect.NewUnaryHandler(FamilyServiceRemoveMemberProcedure, svc.RemoveMember, opts...),
	}
}

// UnimplementedFamilyServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedFamilyServiceHandler struct{}

func (UnimplementedFamilyServiceHandler) CreateFamily(context.Context, *connect.Request[api.CreateFamilyRequest]) (*connect.Response[api.CreateFamilyResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("famledger.v1.FamilyService.CreateFamily is not implemented"))
}

func (UnimplementedFamilyServiceHandler) GetFamily(context.Context, *connect.Request[api.GetFamilyRequest]) (*connect.Response[api.GetFamilyResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("famledger.v1.FamilyService.GetFamily is not implemented"))
}

func (UnimplementedFamilyServiceHandler) AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("famledger.v1.FamilyService.AddMember is not implemented"))
}

func (UnimplementedFamilyServiceHandler) RemoveMember(context.Context, *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("famledger.v1.FamilyService.RemoveMember is not implemented"))
}

// FamilyServiceClient calls FamilyService over HTTP.
type FamilyServiceClient interface {
	CreateFamily(context.Context, *connect.Request[api.CreateFamilyRequest]) (*connect.Response[api.CreateFamilyResponse], error)
	GetFamily(context.Context, *connect.Request[api.GetFamilyRequest]) (*connect.Response[api.GetFamilyResponse], error)
	AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error)
	RemoveMember(context.Context, *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error)
}

// NewFamilyServiceClient creates a client for the service at baseURL.
func NewFamilyServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) FamilyServiceClient {
	baseURL = trimBase(baseURL)
	opts    = clientOptions(opts)
	return &familyServiceClient{
		createFamily: connect.NewClient[api.CreateFamilyRequest, api.CreateFamilyResponse](httpClient, baseURL+FamilyServiceCreateFamilyProcedure, opts...),
		getFamily:    connect.NewClient[api.GetFamilyRequest, api.GetFamilyResponse](httpClient, baseURL+FamilyServiceGetFamilyProcedure, opts...),
		addMember:    connect.NewClient[api.AddMemberRequest, api.AddMemberResponse](httpClient, baseURL+FamilyServiceAddMemberProcedure, opts...),
		removeMember: connect.NewClient[api.RemoveMemberRequest, api.RemoveMemberResponse](httpClient, baseURL+FamilyServiceRemoveMemberProcedure, opts...),
	}
}

type familyServiceClient struct {
	createFamily *connect.Client[api.CreateFamilyRequest, api.CreateFamilyResponse]
	getFamily    *connect.Client[api.GetFamilyRequest, api.GetFamilyResponse]
	addMember    *connect.Client[api.AddMemberRequest, api.AddMemberResponse]
	removeMember *connect.Client[api.RemoveMemberRequest, api.RemoveMemberResponse]
}

func (c *familyServiceClient) CreateFamily(ctx context.Context, req *connect.Request[api.CreateFamilyRequest]) (*connect.Response[api.CreateFamilyResponse], error) {
	return c.createFamily.CallUnary(ctx, req)
}

func (c *familyServiceClient) GetFamily(ctx context.Context, req *connect.Request[api.GetFamilyRequest]) (*connect.Response[api.GetFamilyResponse], error) {
	return c.getFamily.CallUnary(ctx, req)
}

func (c *familyServiceClient) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	return c.addMember.CallUnary(ctx, req)
}

func (c *familyServiceClient) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error) {
	return c.removeMember.CallUnary(ctx, req)
}
