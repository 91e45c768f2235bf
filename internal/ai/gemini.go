package ai

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/mmynk/famledger/internal/curator"
	"github.com/mmynk/famledger/internal/models"
)

// DefaultGeminiModel handles text, audio and images in one call.
const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiProvider talks to Google's Gemini API through the genai SDK.
// Audio and images are sent inline, so no separate transcription step is needed.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// GeminiConfig configures NewGeminiProvider.
type GeminiConfig struct {
	APIKey string
	Model  string
	// BaseURL overrides the API endpoint (tests, proxies).
	BaseURL string
	Timeout time.Duration
}

// NewGeminiProvider creates a Gemini-backed provider.
func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultGeminiModel
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		timeout := cfg.Timeout
		cc.HTTPOptions.Timeout = &timeout
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GeminiProvider{client: client, model: cfg.Model}, nil
}

// Name returns the provider name.
func (p *GeminiProvider) Name() string { return "gemini" }

// Extract sends the input as content parts and expects JSON back.
func (p *GeminiProvider) Extract(ctx context.Context, in Input, today time.Time, categories []string) (*Extraction, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	parts := []*genai.Part{genai.NewPartFromText(extractUserPrompt(in, today, categories))}
	if in.Kind != KindText {
		parts = append(parts, genai.NewPartFromBytes(in.Data, in.MIMEType))
	}

	raw, err := p.generate(ctx, extractSystemPrompt, parts, true)
	if err != nil {
		return nil, err
	}
	return parseExtraction(raw)
}

// Classify asks the model to choose one of categories.
func (p *GeminiProvider) Classify(ctx context.Context, txn *models.Transaction, categories []*models.Category) (*curator.CategoryGuess, error) {
	raw, err := p.generate(ctx, classifySystemPrompt,
		[]*genai.Part{genai.NewPartFromText(classifyUserPrompt(txn, categories))}, true)
	if err != nil {
		return nil, err
	}
	return parseClassification(raw, categories)
}

// Narrate writes free text.
func (p *GeminiProvider) Narrate(ctx context.Context, prompt string) (string, error) {
	return p.generate(ctx, narrateSystemPrompt, []*genai.Part{genai.NewPartFromText(prompt)}, false)
}

func (p *GeminiProvider) generate(ctx context.Context, system string, parts []*genai.Part, jsonOut bool) (string, error) {
	temperature := float32(0.1)
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       &temperature,
	}
	if jsonOut {
		cfg.ResponseMIMEType = "application/json"
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}, cfg)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("GenAI returned no text")
	}
	return text, nil
}
