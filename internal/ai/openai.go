package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/mmynk/famledger/internal/curator"
	"github.com/mmynk/famledger/internal/models"
)

// OpenAIConfig configures NewOpenAIProvider.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	// TranscriptionModel is used for audio input.
	TranscriptionModel string
	Timeout            time.Duration
}

// DefaultOpenAIConfig returns sensible defaults.
func DefaultOpenAIConfig(apiKey string) OpenAIConfig {
	return OpenAIConfig{
		APIKey:             apiKey,
		BaseURL:            "https://api.openai.com/v1",
		Model:              "gpt-4o-mini",
		TranscriptionModel: "whisper-1",
		Timeout:            60 * time.Second,
	}
}

// OpenAIProvider implements Provider against an OpenAI-compatible API.
// Audio is transcribed first, then parsed like text.
type OpenAIProvider struct {
	apiKey             string
	baseURL            string
	model              string
	transcriptionModel string
	httpClient         *http.Client
}

// NewOpenAIProvider creates a provider; zero fields in cfg take defaults.
func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}
	def := DefaultOpenAIConfig(cfg.APIKey)
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.Model == "" {
		cfg.Model = def.Model
	}
	if cfg.TranscriptionModel == "" {
		cfg.TranscriptionModel = def.TranscriptionModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = def.Timeout
	}
	return &OpenAIProvider{
		apiKey:             cfg.APIKey,
		baseURL:            strings.TrimRight(cfg.BaseURL, "/"),
		model:              cfg.Model,
		transcriptionModel: cfg.TranscriptionModel,
		httpClient:         &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string { return "openai" }

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Extract handles text directly, images as data URLs and audio via transcription.
func (p *OpenAIProvider) Extract(ctx context.Context, in Input, today time.Time, categories []string) (*Extraction, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var transcript string
	if in.Kind == KindAudio {
		t, err := p.transcribe(ctx, in.Data, in.MIMEType)
		if err != nil {
			return nil, err
		}
		transcript = t
		in = Input{Kind: KindText, Text: t}
	}

	var user any = extractUserPrompt(in, today, categories)
	if in.Kind == KindImage {
		dataURL := "data:" + in.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(in.Data)
		user = []contentPart{
			{Type: "text", Text: extractUserPrompt(in, today, categories)},
			{Type: "image_url", ImageURL: &imageURL{URL: dataURL}},
		}
	}

	raw, err := p.chat(ctx, extractSystemPrompt, user, true)
	if err != nil {
		return nil, err
	}
	ex, err := parseExtraction(raw)
	if err != nil {
		return nil, err
	}
	if transcript != "" {
		ex.Transcript = transcript
	}
	return ex, nil
}

// Classify asks the chat model to choose one of categories.
func (p *OpenAIProvider) Classify(ctx context.Context, txn *models.Transaction, categories []*models.Category) (*curator.CategoryGuess, error) {
	raw, err := p.chat(ctx, classifySystemPrompt, classifyUserPrompt(txn, categories), true)
	if err != nil {
		return nil, err
	}
	return parseClassification(raw, categories)
}

// Narrate writes free text.
func (p *OpenAIProvider) Narrate(ctx context.Context, prompt string) (string, error) {
	return p.chat(ctx, narrateSystemPrompt, prompt, false)
}

func (p *OpenAIProvider) chat(ctx context.Context, system string, user any, jsonOut bool) (string, error) {
	reqBody := chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.1,
	}
	if jsonOut {
		reqBody.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var resp chatResponse
	if err := p.do(req, &resp); err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion returned")
	}
	return resp.Choices[0].Message.Content, nil
}

type transcriptionResponse struct {
	Text  string    `json:"text"`
	Error *apiError `json:"error,omitempty"`
}

func (p *OpenAIProvider) transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("model", p.transcriptionModel); err != nil {
		return "", fmt.Errorf("failed to write form: %w", err)
	}
	fw, err := w.CreateFormFile("file", "voice"+audioExtension(mimeType))
	if err != nil {
		return "", fmt.Errorf("failed to write form: %w", err)
	}
	if _, err := fw.Write(audio); err != nil {
		return "", fmt.Errorf("failed to write audio: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/audio/transcriptions", &buf)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var resp transcriptionResponse
	if err := p.do(req, &resp); err != nil {
		return "", err
	}
	if strings.TrimSpace(resp.Text) == "" {
		return "", ErrNoTransaction
	}
	return resp.Text, nil
}

func (p *OpenAIProvider) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var env struct {
			Error *apiError `json:"error"`
		}
		if json.Unmarshal(body, &env) == nil && env.Error != nil {
			return fmt.Errorf("API error (status %d): %s", resp.StatusCode, env.Error.Message)
		}
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// audioExtension picks a filename suffix the transcription endpoint accepts.
func audioExtension(mimeType string) string {
	switch mimeType {
	case "audio/ogg", "audio/ogg; codecs=opus":
		return ".ogg"
	case "audio/mpeg":
		return ".mp3"
	case "audio/wav", "audio/x-wav":
		return ".wav"
	case "audio/webm":
		return ".webm"
	}
	if exts, err := mime.ExtensionsByType(mimeType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ".m4a"
}
