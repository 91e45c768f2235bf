package apiconnect

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/famledger/pkg/api"
)

// AssistantServiceName is the fully-qualified service name.
const AssistantServiceName = Package + ".AssistantService"

// Procedure paths for AssistantService.
const (
	AssistantServiceProcessTextProcedure  = "/" + AssistantServiceName + "/ProcessText"
	AssistantServiceProcessAudioProcedure = "/" + AssistantServiceName + "/ProcessAudio"
	AssistantServiceProcessImageProcedure = "/" + AssistantServiceName + "/ProcessImage"
	AssistantServiceConfirmDraftProcedure = "/" + AssistantServiceName + "/ConfirmDraft"
)

// AssistantServiceHandler is implemented by the server.
type AssistantServiceHandler interface {
	ProcessText(context.Context, *connect.Request[api.ProcessTextRequest]) (*connect.Response[api.ProcessResponse], error)
	ProcessAudio(context.Context, *connect.Request[api.ProcessAudioRequest]) (*connect.Response[api.ProcessResponse], error)
	ProcessImage(context.Context, *connect.Request[api.ProcessImageRequest]) (*connect.Response[api.ProcessResponse], error)
	ConfirmDraft(context.Context, *connect.Request[api.ConfirmDraftRequest]) (*connect.Response[api.ConfirmDraftResponse], error)
}

// NewAssistantServiceHandler builds an HTTP handler for svc. The returned path is
// the prefix to mount it under.
func NewAssistantServiceHandler(svc AssistantServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return servicePath("AssistantService"), routes{
		AssistantServiceProcessTextProcedure:  connect.NewUnaryHandler(AssistantServiceProcessTextProcedure, svc.ProcessText, opts...),
		AssistantServiceProcessAudioProcedure: connect.NewUnaryHandler(AssistantServiceProcessAudioProcedure, svc.ProcessAudio, opts...),
		AssistantServiceProcessImageProcedure: connect.NewUnaryHandler(AssistantServiceProcessImageProcedure, svc.ProcessImage, opts...),
		AssistantServiceConfirmDraftProcedure: connect.NewUnaryHandler(AssistantServiceConfirmDraftProcedure, svc.ConfirmDraft, opts...),
	}
}

// UnimplementedAssistantServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedAssistantServiceHandler struct{}

func (UnimplementedAssistantServiceHandler) ProcessText(context.Context, *connect.Request[api.ProcessTextRequest]) (*connect.Response[api.ProcessResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("famledger.v1.AssistantService.ProcessText is not implemented"))
}

func (UnimplementedAssistantServiceHandler) ProcessAudio(context.Context, *connect.Request[api.ProcessAudioRequest]) (*connect.Response[api.ProcessResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("famledger.v1.AssistantService.ProcessAudio is not implemented"))
}

func (UnimplementedAssistantServiceHandler) ProcessImage(context.Context, *connect.Request[api.ProcessImageRequest]) (*connect.Response[api.ProcessResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("famledger.v1.AssistantService.ProcessImage is not implemented"))
}

func (UnimplementedAssistantServiceHandler) ConfirmDraft(context.Context, *connect.Request[api.ConfirmDraftRequest]) (*connect.Response[api.ConfirmDraftResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("famledger.v1.AssistantService.ConfirmDraft is not implemented"))
}

// AssistantServiceClient calls AssistantService over HTTP.
type AssistantServiceClient interface {
	ProcessText(context.Context, *connect.Request[api.ProcessTextRequest]) (*connect.Response[api.ProcessResponse], error)
	ProcessAudio(context.Context, *connect.Request[api.ProcessAudioRequest]) (*connect.Response[api.ProcessResponse], error)
	ProcessImage(context.Context, *connect.Request[api.ProcessImageRequest]) (*connect.Response[api.ProcessResponse], error)
	ConfirmDraft(context.Context, *connect.Request[api.ConfirmDraftRequest]) (*connect.Response[api.ConfirmDraftResponse], error)
}

// NewAssistantServiceClient creates a client for the service at baseURL.
func NewAssistantServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AssistantServiceClient {
	baseURL = trimBase(baseURL)
	opts    = clientOptions(opts)
	return &assistantServiceClient{
		processText:  connect.NewClient[api.ProcessTextRequest, api.ProcessResponse](httpClient, baseURL+AssistantServiceProcessTextProcedure, opts...),
		processAudio: connect.NewClient[api.ProcessAudioRequest, api.ProcessResponse](httpClient, baseURL+AssistantServiceProcessAudioProcedure, opts...),
		processImage: connect.NewClient[api.ProcessImageRequest, api.ProcessResponse](httpClient, baseURL+AssistantServiceProcessImageProcedure, opts...),
		confirmDraft: connect.NewClient[api.ConfirmDraftRequest, api.ConfirmDraftResponse](httpClient, baseURL+AssistantServiceConfirmDraftProcedure, opts...),
	}
}

type assistantServiceClient struct {
	processText  *connect.Client[api.ProcessTextRequest, api.ProcessResponse]
	processAudio *connect.Client[api.ProcessAudioRequest, api.ProcessResponse]
	processImage *connect.Client[api.ProcessImageRequest, api.ProcessResponse]
	confirmDraft *connect.Client[api.ConfirmDraftRequest, api.ConfirmDraftResponse]
}

func (c *assistantServiceClient) ProcessText(ctx context.Context, req *connect.Request[api.ProcessTextRequest]) (*connect.Response[api.ProcessResponse], error) {
	return c.processText.CallUnary(ctx, req)
}

func (c *assistantServiceClient) ProcessAudio(ctx context.Context, req *connect.Request[api.ProcessAudioRequest]) (*connect.Response[api.ProcessResponse], error) {
	return c.processAudio.CallUnary(ctx, req)
}

func (c *assistantServiceClient) ProcessImage(ctx context.Context, req *connect.Request[api.ProcessImageRequest]) (*connect.Response[api.ProcessResponse], error) {
	return c.processImage.CallUnary(ctx, req)
}

func (c *assistantServiceClient) ConfirmDraft(ctx context.Context, req *connect.Request[api.ConfirmDraftRequest]) (*connect.Response[api.ConfirmDraftResponse], error) {
	return c.confirmDraft.CallUnary(ctx, req)
}
