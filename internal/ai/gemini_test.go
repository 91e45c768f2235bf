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
)

func geminiReply(text string) string {
	b, _ := json.Marshal(map[string]any{
		"candidates": []map[string]any{{
			"content": map[string]any{
				"role":  "model",
				"parts": []map[string]string{{"text": text}},
			},
		}},
	})
	return string(b)
}

func TestGeminiExtract(t *testing.T) {
	var path, body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		body = string(b)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, geminiReply(`{"type":"income","amount":2500,"description":"Salary","category":"Salary","confidence":0.97}`))
	}))
	defer srv.Close()

	p, err := NewGeminiProvider(context.Background(), GeminiConfig{APIKey: "k", BaseURL: srv.URL + "/", Timeout: 5 * time.Second})
	require.NoError(t, err)

	ex, err := p.Extract(context.Background(), Input{Kind: KindText, Text: "salary arrived 2500"}, today, []string{"Salary"})
	require.NoError(t, err)
	assert.Equal(t, "income", ex.Type)
	assert.Equal(t, "2500", ex.Amount.String())
	assert.Equal(t, 0.97, ex.Confidence)

	assert.True(t, strings.HasSuffix(path, "models/"+DefaultGeminiModel+":generateContent"), path)
	assert.Contains(t, body, "salary arrived 2500")
	assert.Contains(t, body, "application/json")
}

func TestGeminiEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"candidates":[]}`)
	}))
	defer srv.Close()

	p, err := NewGeminiProvider(context.Background(), GeminiConfig{APIKey: "k", BaseURL: srv.URL + "/"})
	require.NoError(t, err)

	_, err = p.Narrate(context.Background(), "summary please")
	assert.Error(t, err)
}

func TestNewGeminiProviderRequiresKey(t *testing.T) {
	_, err := NewGeminiProvider(context.Background(), GeminiConfig{})
	assert.Error(t, err)
}
