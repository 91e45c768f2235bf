package apiconnect

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/famledger/pkg/api"
)

// CategoryServiceName is the fully-qualified service name.
const CategoryServiceName = Package + ".CategoryService"

// Procedure paths for CategoryService.
const (
	CategoryServiceCreateCategoryProcedure = "/" + CategoryServiceName + "/CreateCategory"
	CategoryServiceListCategoriesProcedure = "/" + CategoryServiceName + "/ListCategories"
	CategoryServiceDeleteCategoryProcedure = "/" + CategoryServiceName + "/DeleteCategory"
)

// CategoryServiceHandler is implemented by the server.
type CategoryServiceHandler interface {
	CreateCategory(context.Context, *connect.Request[api.CreateCategoryRequest]) (*connect.Response[api.CreateCategoryResponse], error)
	ListCategories(context.Context, *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error)
	DeleteCategory(context.Context, *connect.Request[api.DeleteCategoryRequest]) (*connect.Response[api.DeleteCategoryResponse], error)
}

// NewCategoryServiceHandler builds an HTTP handler for svc. The returned path is
// the prefix to mount it under.
func NewCategoryServiceHandler(svc CategoryServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return servicePath("CategoryService"), routes{
		CategoryServiceCreateCategoryProcedure: connect.NewUnaryHandler(CategoryServiceCreateCategoryProcedure, svc.CreateCategory, opts...),
		CategoryServiceListCategoriesProcedure: connect.NewUnaryHandler(CategoryServiceListCategoriesProcedure, svc.ListCategories, opts...),
		CategoryServiceDeleteCategoryProcedure: connect.NewUnaryHandler(CategoryServiceDeleteCategoryProcedure, svc.DeleteCategory, opts...),
	}
}

// UnimplementedCategoryServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedCategoryServiceHandler struct{}

func (UnimplementedCategoryServiceHandler) CreateCategory(context.Context, *connect.Request[api.CreateCategoryRequest]) (*connect.Response[api.CreateCategoryResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("famledger.v1.CategoryService.CreateCategory is not implemented"))
}

func (UnimplementedCategoryServiceHandler) ListCategories(context.Context, *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("famledger.v1.CategoryService.ListCategories is not implemented"))
}

func (UnimplementedCategoryServiceHandler) DeleteCategory(context.Context, *connect.Request[api.DeleteCategoryRequest]) (*connect.Response[api.DeleteCategoryResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("famledger.v1.CategoryService.DeleteCategory is not implemented"))
}

// CategoryServiceClient calls CategoryService over HTTP.
type CategoryServiceClient interface {
	CreateCategory(context.Context, *connect.Request[api.CreateCategoryRequest]) (*connect.Response[api.CreateCategoryResponse], error)
	ListCategories(context.Context, *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error)
	DeleteCategory(context.Context, *connect.Request[api.DeleteCategoryRequest]) (*connect.Response[api.DeleteCategoryResponse], error)
}

// NewCategoryServiceClient creates a client for the service at baseURL.
func NewCategoryServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) CategoryServiceClient {
	baseURL = trimBase(baseURL)
	opts    = clientOptions(opts)
	return &categoryServiceClient{
		createCategory: connect.NewClient[api.CreateCategoryRequest, api.CreateCategoryResponse](httpClient, baseURL+CategoryServiceCreateCategoryProcedure, opts...),
		listCategories: connect.NewClient[api.ListCategoriesRequest, api.ListCategoriesResponse](httpClient, baseURL+CategoryServiceListCategoriesProcedure, opts...),
		deleteCategory: connect.NewClient[api.DeleteCategoryRequest, api.DeleteCategoryResponse](httpClient, baseURL+CategoryServiceDeleteCategoryProcedure, opts...),
	}
}

type categoryServiceClient struct {
	createCategory *connect.Client[api.CreateCategoryRequest, api.CreateCategoryResponse]
	listCategories *connect.Client[api.ListCategoriesRequest, api.ListCategoriesResponse]
	deleteCategory *connect.Client[api.DeleteCategoryRequest, api.DeleteCategoryResponse]
}

func (c *categoryServiceClient) CreateCategory(ctx context.Context, req *connect.Request[api.CreateCategoryRequest]) (*connect.Response[api.CreateCategoryResponse], error) {
	return c.createCategory.CallUnary(ctx, req)
}

func (c *categoryServiceClient) ListCategories(ctx context.Context, req *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error) {
	return c.listCategories.CallUnary(ctx, req)
}

func (c *categoryServiceClient) DeleteCategory(ctx context.Context, req *connect.Request[api.DeleteCategoryRequest]) (*connect.Response[api.DeleteCategoryResponse], error) {
	return c.deleteCategory.CallUnary(ctx, req)
}
