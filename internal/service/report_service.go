package service

import (
	"context"
	"errors"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/famledger/internal/report"
	"github.com/mmynk/famledger/internal/storage"
	"github.com/mmynk/famledger/pkg/api"
	"github.com/mmynk/famledger/pkg/api/apiconnect"
)

// ReportService implements the ReportService RPC interface.
type ReportService struct {
	apiconnect.UnimplementedReportServiceHandler
	builder *report.Builder
	store   storage.Store
	now     func() time.Time
}

// NewReportService creates a ReportService.
func NewReportService(builder *report.Builder, store storage.Store) *ReportService {
	return &ReportService{builder: builder, store: store, now: time.Now}
}

// GenerateReport summarizes a period and stores the narrative.
// Empty bounds default to the current month.
func (s *ReportService) GenerateReport(ctx context.Context, req *connect.Request[api.GenerateReportRequest]) (*connect.Response[api.GenerateReportResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	first, last := monthBounds(s.now())
	from, err := parseDate("from", req.Msg.From, first)
	if err != nil {
		return nil, err
	}
	to, err := parseDate("to", req.Msg.To, last)
	if err != nil {
		return nil, err
	}

	r, summary, err := s.builder.Build(ctx, userID, from, to)
	switch {
	case errors.Is(err, report.ErrInvalidPeriod):
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	case err != nil:
		return nil, storeError("build report", err)
	}

	return connect.NewResponse(&api.GenerateReportResponse{
		Report:      toAPIReport(r),
		SavingsRate: summary.SavingsRate,
		ByCategory:  toAPICategoryTotals(summary.ByCategory),
		TopExpenses: toAPITransactions(summary.TopExpenses),
		NetWorth:    summary.NetWorth,
	}), nil
}

// ListReports returns the caller's reports, newest first.
func (s *ReportService) ListReports(ctx context.Context, req *connect.Request[api.ListReportsRequest]) (*connect.Response[api.ListReportsResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	reports, err := s.store.ListReports(ctx, userID)
	if err != nil {
		return nil, storeError("list reports", err)
	}

	resp := &api.ListReportsResponse{Reports: make([]*api.Report, len(reports))}
	for i, r := range reports {
		resp.Reports[i] = toAPIReport(r)
	}
	return connect.NewResponse(resp), nil
}
