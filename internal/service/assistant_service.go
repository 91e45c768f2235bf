package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/famledger/internal/ai"
	"github.com/mmynk/famledger/internal/models"
	"github.com/mmynk/famledger/internal/storage"
	"github.com/mmynk/famledger/pkg/api"
	"github.com/mmynk/famledger/pkg/api/apiconnect"
)

var errAssistantDisabled = errors.New("assistant is not configured")

// AssistantService implements the AssistantService RPC interface.
type AssistantService struct {
	apiconnect.UnimplementedAssistantServiceHandler
	processor *ai.Processor
	store     storage.Store
	now       func() time.Time
}

// NewAssistantService creates an AssistantService. A nil processor makes
// the Process calls return CodeUnavailable; ConfirmDraft still works.
func NewAssistantService(processor *ai.Processor, store storage.Store) *AssistantService {
	return &AssistantService{processor: processor, store: store, now: time.Now}
}

// ProcessText parses a chat message.
func (s *AssistantService) ProcessText(ctx context.Context, req *connect.Request[api.ProcessTextRequest]) (*connect.Response[api.ProcessResponse], error) {
	return s.process(ctx, ai.Input{Kind: ai.KindText, Text: req.Msg.Text})
}

// ProcessAudio transcribes and parses a voice note.
func (s *AssistantService) ProcessAudio(ctx context.Context, req *connect.Request[api.ProcessAudioRequest]) (*connect.Response[api.ProcessResponse], error) {
	return s.process(ctx, ai.Input{Kind: ai.KindAudio, Data: req.Msg.Data, MIMEType: req.Msg.MIMEType})
}

// ProcessImage reads a receipt or bank screenshot.
func (s *AssistantService) ProcessImage(ctx context.Context, req *connect.Request[api.ProcessImageRequest]) (*connect.Response[api.ProcessResponse], error) {
	return s.process(ctx, ai.Input{Kind: ai.KindImage, Data: req.Msg.Data, MIMEType: req.Msg.MIMEType})
}

func (s *AssistantService) process(ctx context.Context, in ai.Input) (*connect.Response[api.ProcessResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if s.processor == nil {
		return nil, connect.NewError(connect.CodeUnavailable, errAssistantDisabled)
	}

	out, err := s.processor.Process(ctx, userID, in, models.SourceAssistant)
	var providerErr *ai.ProviderError
	switch {
	case errors.Is(err, ai.ErrEmptyInput):
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, ai.ErrNoTransaction):
		return nil, connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.As(err, &providerErr):
		slog.Error("Assistant provider failed", "user_id", userID, "kind", in.Kind, "error", err)
		return nil, connect.NewError(connect.CodeUnavailable, err)
	case err != nil:
		slog.Error("Assistant processing failed", "user_id", userID, "kind", in.Kind, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&api.ProcessResponse{
		Transaction:       toAPITransaction(out.Transaction),
		CategoryName:      out.CategoryName,
		Confidence:        out.Confidence,
		Inserted:          out.Inserted,
		NeedsConfirmation: out.NeedsConfirmation,
		Transcript:        out.Transcript,
	}), nil
}

// ConfirmDraft saves a draft the user reviewed after a low-confidence parse.
func (s *AssistantService) ConfirmDraft(ctx context.Context, req *connect.Request[api.ConfirmDraftRequest]) (*connect.Response[api.ConfirmDraftResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	txn, err := buildTransaction(ctx, s.store, userID, transactionInput{
		Type:           req.Msg.Type,
		Amount:         req.Msg.Amount,
		Description:    req.Msg.Description,
		Date:           req.Msg.Date,
		CategoryID:     req.Msg.CategoryID,
		FamilyMemberID: req.Msg.FamilyMemberID,
	}, s.now())
	if err != nil {
		return nil, err
	}
	txn.Source = models.SourceAssistant

	if err := s.store.CreateTransaction(ctx, txn); err != nil {
		return nil, storeError("create transaction", err)
	}

	slog.Info("Assistant draft confirmed", "user_id", userID, "transaction_id", txn.ID)
	return connect.NewResponse(&api.ConfirmDraftResponse{Transaction: toAPITransaction(txn)}), nil
}
