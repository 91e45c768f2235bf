package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/famledger/internal/models"
)

func chatReply(content string) string {
	b, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{{"message": map[string]string{"role": "assistant", "content": content}}},
	})
	return string(b)
}

func newOpenAITestProvider(t *testing.T, h http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", BaseURL: srv.URL + "/", Timeout: 5 * time.Second})
	require.NoError(t, err)
	return p
}

func TestOpenAIExtractText(t *testing.T) {
	var got chatRequest
	p := newOpenAITestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		io.WriteString(w, chatReply(`{"type":"expense","amount":"9.99","description":"Netflix","category":"Entertainment","date":"2025-05-01","confidence":0.91}`))
	})

	ex, err := p.Extract(context.Background(), Input{Kind: KindText, Text: "netflix 9.99"}, today, []string{"Entertainment"})
	require.NoError(t, err)
	assert.Equal(t, "expense", ex.Type)
	assert.Equal(t, "9.99", ex.Amount.String())
	assert.Equal(t, "Entertainment", ex.CategoryName)
	assert.Equal(t, 0.91, ex.Confidence)

	assert.Equal(t, "gpt-4o-mini", got.Model)
	require.NotNil(t, got.ResponseFormat)
	assert.Equal(t, "json_object", got.ResponseFormat.Type)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Contains(t, got.Messages[1].Content, "netflix 9.99")
}

func TestOpenAIExtractImageSendsDataURL(t *testing.T) {
	p := newOpenAITestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), `"type":"image_url"`)
		assert.Contains(t, string(body), "data:image/png;base64,AQID")
		io.WriteString(w, chatReply(`{"type":"expense","amount":20,"description":"Receipt","confidence":0.85}`))
	})

	ex, err := p.Extract(context.Background(), Input{Kind: KindImage, Data: []byte{1, 2, 3}, MIMEType: "image/png"}, today, nil)
	require.NoError(t, err)
	assert.Equal(t, "Receipt", ex.Description)
}

func TestOpenAIExtractAudioTranscribesFirst(t *testing.T) {
	var calls []string
	p := newOpenAITestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.URL.Path)
		switch r.URL.Path {
		case "/audio/transcriptions":
			require.NoError(t, r.ParseMultipartForm(1<<20))
			assert.Equal(t, "whisper-1", r.FormValue("model"))
			_, hdr, err := r.FormFile("file")
			require.NoError(t, err)
			assert.Equal(t, "voice.ogg", hdr.Filename)
			io.WriteString(w, `{"text":"paid 12 for lunch"}`)
		case "/chat/completions":
			body, _ := io.ReadAll(r.Body)
			assert.Contains(t, string(body), "paid 12 for lunch")
			io.WriteString(w, chatReply(`{"type":"expense","amount":12,"description":"Lunch","confidence":0.88}`))
		default:
			http.NotFound(w, r)
		}
	})

	ex, err := p.Extract(context.Background(), Input{Kind: KindAudio, Data: []byte("OggS"), MIMEType: "audio/ogg"}, today, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"/audio/transcriptions", "/chat/completions"}, calls)
	assert.Equal(t, "paid 12 for lunch", ex.Transcript)
}

func TestOpenAIClassify(t *testing.T) {
	p := newOpenAITestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, chatReply("```json\n{\"category\":\"Dining\",\"confidence\":0.72,\"reason\":\"restaurant\"}\n```"))
	})
	cats := []*models.Category{{ID: "dining", Name: "Dining", Type: models.TypeExpense}}

	g, err := p.Classify(context.Background(), &models.Transaction{Description: "Pizza place"}, cats)
	require.NoError(t, err)
	assert.Equal(t, "dining", g.CategoryID)
	assert.Equal(t, "restaurant", g.Reason)
}

func TestOpenAIErrorEnvelope(t *testing.T) {
	p := newOpenAITestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		io.WriteString(w, `{"error":{"message":"rate limited","type":"requests"}}`)
	})

	_, err := p.Narrate(context.Background(), "summarize")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "429") && strings.Contains(err.Error(), "rate limited"), err.Error())
}

func TestNewOpenAIProviderRequiresKey(t *testing.T) {
	_, err := NewOpenAIProvider(OpenAIConfig{})
	assert.Error(t, err)
}

func TestAudioExtension(t *testing.T) {
	assert.Equal(t, ".ogg", audioExtension("audio/ogg"))
	assert.Equal(t, ".mp3", audioExtension("audio/mpeg"))
	assert.Equal(t, ".m4a", audioExtension("application/x-unknown-thing"))
}
