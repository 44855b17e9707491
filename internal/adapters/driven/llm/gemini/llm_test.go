package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zaibi117/readme-maker/internal/core/domain"
	"github.com/zaibi117/readme-maker/internal/core/ports/driven"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *LLMService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc, err := NewLLMService(LLMConfig{APIKey: "g-key", BaseURL: srv.URL})
	require.NoError(t, err)
	return svc
}

func TestNewLLMService(t *testing.T) {
	_, err := NewLLMService(LLMConfig{})
	assert.Error(t, err)

	svc, err := NewLLMService(LLMConfig{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, DefaultLLMModel, svc.ModelName())
	assert.Equal(t, DefaultBaseURL+"/models/"+DefaultLLMModel, svc.modelURL())
}

func TestLLMService_Generate(t *testing.T) {
	var got generateContentRequest
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-2.0-flash:generateContent", r.URL.Path)
		assert.Equal(t, "g-key", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Builds "},{"text":"docs."}]},"finishReason":"STOP"}]}`))
	})

	out, err := svc.Generate(context.Background(), "what", driven.GenerateOptions{System: "sys", MaxTokens: 99})

	require.NoError(t, err)
	assert.Equal(t, "Builds docs.", out)
	require.NotNil(t, got.SystemInstruction)
	assert.Equal(t, "sys", got.SystemInstruction.Parts[0].Text)
	require.NotNil(t, got.GenerationConfig)
	assert.Equal(t, 99, got.GenerationConfig.MaxOutputTokens)
	assert.Equal(t, "user", got.Contents[0].Role)
}

func TestLLMService_Generate_Blocked(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[],"promptFeedback":{"blockReason":"SAFETY"}}`))
	})

	_, err := svc.Generate(context.Background(), "x", driven.GenerateOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "SAFETY")
	assert.False(t, domain.IsSkippableError(err))
}

func TestLLMService_Generate_ResourceExhausted(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"Quota exceeded","status":"RESOURCE_EXHAUSTED"}}`))
	})

	_, err := svc.Generate(context.Background(), "x", driven.GenerateOptions{})

	assert.ErrorIs(t, err, domain.ErrRateLimited)
	assert.Contains(t, err.Error(), "RESOURCE_EXHAUSTED")
}

func TestLLMService_Ping(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		if r.Header.Get("x-goog-api-key") != "g-key" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		_, _ = w.Write([]byte(`{"name":"models/gemini-2.0-flash"}`))
	})
	assert.NoError(t, svc.Ping(context.Background()))

	svc.apiKey = "wrong"
	assert.ErrorIs(t, svc.Ping(context.Background()), domain.ErrAuthRequired)
}
