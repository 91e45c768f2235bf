package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"connectrpc.com/connect"

	"github.com/mmynk/famledger/internal/curator"
	"github.com/mmynk/famledger/internal/models"
	"github.com/mmynk/famledger/internal/storage"
	"github.com/mmynk/famledger/pkg/api"
	"github.com/mmynk/famledger/pkg/api/apiconnect"
)

// CurationService implements the CurationService RPC interface.
type CurationService struct {
	apiconnect.UnimplementedCurationServiceHandler
	curator *curator.Curator
	store   storage.Store
}

// NewCurationService creates a CurationService.
func NewCurationService(c *curator.Curator, store storage.Store) *CurationService {
	return &CurationService{curator: c, store: store}
}

// RunCuration scans the caller's recent transactions on demand.
func (s *CurationService) RunCuration(ctx context.Context, req *connect.Request[api.RunCurationRequest]) (*connect.Response[api.RunCurationResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	res, err := s.curator.Run(ctx, userID)
	if err != nil {
		slog.Error("Curation failed", "user_id", userID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&api.RunCurationResponse{
		Scanned:       res.Scanned,
		Duplicates:    res.Duplicates,
		NewDuplicates: res.NewDuplicates,
		Patterns:      res.Patterns,
		Applied:       res.Applied,
		Queued:        res.Queued,
		Discarded:     res.Discarded,
	}), nil
}

// ListSuggestions returns the caller's suggestions, pending ones by default.
func (s *CurationService) ListSuggestions(ctx context.Context, req *connect.Request[api.ListSuggestionsRequest]) (*connect.Response[api.ListSuggestionsResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	status := req.Msg.Status
	switch status {
	case "":
		status = models.SuggestionPending
	case models.SuggestionPending, models.SuggestionAccepted, models.SuggestionRejected:
	default:
		return nil, invalidArgument("unknown status %q", status)
	}

	suggestions, err := s.store.ListSuggestions(ctx, userID, status)
	if err != nil {
		return nil, storeError("list suggestions", err)
	}

	resp := &api.ListSuggestionsResponse{Suggestions: make([]*api.Suggestion, len(suggestions))}
	for i, sg := range suggestions {
		resp.Suggestions[i] = toAPISuggestion(sg)
	}
	return connect.NewResponse(resp), nil
}

// ReviewSuggestion accepts or rejects a pending suggestion.
// Accepting a category suggestion sets the transaction's category.
// Accepting a duplicate deletes the later transaction, which also removes
// the suggestion row.
func (s *CurationService) ReviewSuggestion(ctx context.Context, req *connect.Request[api.ReviewSuggestionRequest]) (*connect.Response[api.ReviewSuggestionResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.ID == "" {
		return nil, invalidArgument("id is required")
	}

	sg, err := s.store.GetSuggestion(ctx, userID, req.Msg.ID)
	if err != nil {
		return nil, storeError("get suggestion", err)
	}
	if sg.Status != models.SuggestionPending {
		return nil, connect.NewError(connect.CodeFailedPrecondition,
			fmt.Errorf("suggestion is already %s", sg.Status))
	}

	switch {
	case !req.Msg.Accept:
		err = s.setStatus(ctx, userID, sg, models.SuggestionRejected)
	case sg.Kind == models.SuggestionCategory:
		err = s.acceptCategory(ctx, userID, sg)
	case sg.Kind == models.SuggestionDuplicate:
		err = s.acceptDuplicate(ctx, userID, sg)
	default:
		err = connect.NewError(connect.CodeInternal, fmt.Errorf("unknown suggestion kind %q", sg.Kind))
	}
	if err != nil {
		return nil, err
	}

	slog.Info("Suggestion reviewed", "user_id", userID, "suggestion_id", sg.ID, "kind", sg.Kind, "status", sg.Status)
	return connect.NewResponse(&api.ReviewSuggestionResponse{Suggestion: toAPISuggestion(sg)}), nil
}

func (s *CurationService) setStatus(ctx context.Context, userID string, sg *models.TransactionSuggestion, status string) error {
	if err := s.store.SetSuggestionStatus(ctx, userID, sg.ID, status); err != nil {
		return storeError("update suggestion", err)
	}
	sg.Status = status
	return nil
}

// acceptCategory applies the category, then marks the suggestion accepted.
// A category deleted since the suggestion was made leaves it pending.
func (s *CurationService) acceptCategory(ctx context.Context, userID string, sg *models.TransactionSuggestion) error {
	categories, err := s.store.ListCategories(ctx, userID)
	if err != nil {
		return storeError("list categories", err)
	}
	if !slices.ContainsFunc(categories, func(c *models.Category) bool { return c.ID == sg.CategoryID }) {
		return connect.NewError(connect.CodeFailedPrecondition, errors.New("suggested category no longer exists"))
	}

	txn, err := s.store.GetTransaction(ctx, userID, sg.TransactionID)
	if err != nil {
		return storeError("get transaction", err)
	}
	txn.CategoryID = sg.CategoryID
	if err := s.store.UpdateTransaction(ctx, txn); err != nil {
		return storeError("update transaction", err)
	}
	return s.setStatus(ctx, userID, sg, models.SuggestionAccepted)
}

// acceptDuplicate marks the suggestion accepted before deleting the later
// transaction, since the delete cascades to the suggestion row. A failed
// delete puts the suggestion back to pending.
func (s *CurationService) acceptDuplicate(ctx context.Context, userID string, sg *models.TransactionSuggestion) error {
	if err := s.setStatus(ctx, userID, sg, models.SuggestionAccepted); err != nil {
		return err
	}
	err := s.store.DeleteTransaction(ctx, userID, sg.TransactionID)
	if err == nil || errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if rerr := s.store.SetSuggestionStatus(ctx, userID, sg.ID, models.SuggestionPending); rerr != nil {
		slog.Error("Failed to restore suggestion", "suggestion_id", sg.ID, "error", rerr)
	}
	sg.Status = models.SuggestionPending
	return storeError("delete transaction", err)
}

// ListPatterns returns the recurring patterns found for the caller.
func (s *CurationService) ListPatterns(ctx context.Context, req *connect.Request[api.ListPatternsRequest]) (*connect.Response[api.ListPatternsResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	patterns, err := s.store.ListPatterns(ctx, userID)
	if err != nil {
		return nil, storeError("list patterns", err)
	}

	resp := &api.ListPatternsResponse{Patterns: make([]*api.Pattern, len(patterns))}
	for i, p := range patterns {
		resp.Patterns[i] = toAPIPattern(p)
	}
	return connect.NewResponse(resp), nil
}
