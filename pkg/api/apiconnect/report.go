package apiconnect

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/famledger/pkg/api"
)

// ReportServiceName is the fully-qualified service name.
const ReportServiceName = Package + ".ReportService"

// Procedure paths for ReportService.
const (
	ReportServiceGenerateReportProcedure = "/" + ReportServiceName + "/GenerateReport"
	ReportServiceListReportsProcedure    = "/" + ReportServiceName + "/ListReports"
)

// ReportServiceHandler is implemented by the server.
type ReportServiceHandler interface {
	GenerateReport(context.Context, *connect.Request[api.GenerateReportRequest]) (*connect.Response[api.GenerateReportResponse], error)
	ListReports(context.Context, *connect.Request[api.ListReportsRequest]) (*connect.Response[api.ListReportsResponse], error)
}

// NewReportServiceHandler builds an HTTP handler for svc. The returned path is
// the prefix to mount it under.
func NewReportServiceHandler(svc ReportServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return servicePath("ReportService"), routes{
		ReportServiceGenerateReportProcedure: connect.NewUnaryHandler(ReportServiceGenerateReportProcedure, svc.GenerateReport, opts...),
		ReportServiceListReportsProcedure:    connect.NewUnaryHandler(ReportServiceListReportsProcedure, svc.ListReports, opts...),
	}
}

// UnimplementedReportServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedReportServiceHandler struct{}

func (UnimplementedReportServiceHandler) GenerateReport(context.Context, *connect.Request[api.GenerateReportRequest]) (*connect.Response[api.GenerateReportResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("famledger.v1.ReportService.GenerateReport is not implemented"))
}

func (UnimplementedReportServiceHandler) ListReports(context.Context, *connect.Request[api.ListReportsRequest]) (*connect.Response[api.ListReportsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("famledger.v1.ReportService.ListReports is not implemented"))
}

// ReportServiceClient calls ReportService over HTTP.
type ReportServiceClient interface {
	GenerateReport(context.Context, *connect.Request[api.GenerateReportRequest]) (*connect.Response[api.GenerateReportResponse], error)
	ListReports(context.Context, *connect.Request[api.ListReportsRequest]) (*connect.Response[api.ListReportsResponse], error)
}

// NewReportServiceClient creates a client for the service at baseURL.
func NewReportServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ReportServiceClient {
	baseURL = trimBase(baseURL)
	opts    = clientOptions(opts)
	return &reportServiceClient{
		generateReport: connect.NewClient[api.GenerateReportRequest, api.GenerateReportResponse](httpClient, baseURL+ReportServiceGenerateReportProcedure, opts...),
		listReports:    connect.NewClient[api.ListReportsRequest, api.ListReportsResponse](httpClient, baseURL+ReportServiceListReportsProcedure, opts...),
	}
}

type reportServiceClient struct {
	generateReport *connect.Client[api.GenerateReportRequest, api.GenerateReportResponse]
	listReports    *connect.Client[api.ListReportsRequest, api.ListReportsResponse]
}

func (c *reportServiceClient) GenerateReport(ctx context.Context, req *connect.Request[api.GenerateReportRequest]) (*connect.Response[api.GenerateReportResponse], error) {
	return c.generateReport.CallUnary(ctx, req)
}

func (c *reportServiceClient) ListReports(ctx context.Context, req *connect.Request[api.ListReportsRequest]) (*connect.Response[api.ListReportsResponse], error) {
	return c.listReports.CallUnary(ctx, req)
}
