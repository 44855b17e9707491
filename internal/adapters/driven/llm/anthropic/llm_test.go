package anthropic

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zaibi117/readme-maker/internal/core/domain"
	"github.com/zaibi117/readme-maker/internal/core/ports/driven"
)

func messageJSON(text string) map[string]any {
	return map[string]any{
		"id":          "msg_test",
		"type":        "message",
		"role":        "assistant",
		"model":       DefaultModel,
		"content":     []map[string]any{{"type": "text", "text": text}},
		"stop_reason": "end_turn",
		"usage":       map[string]any{"input_tokens": 1, "output_tokens": 1},
	}
}

func newTestService(t *testing.T, handler http.HandlerFunc) *LLMService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc, err := NewLLMService(Config{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)
	return svc
}

func TestNewLLMService_RequiresAPIKey(t *testing.T) {
	_, err := NewLLMService(Config{})
	assert.Error(t, err)
}

func TestNewLLMService_Defaults(t *testing.T) {
	svc, err := NewLLMService(Config{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, svc.ModelName())
	assert.NoError(t, svc.Close())
}

func TestLLMService_Generate(t *testing.T) {
	var got map[string]any
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(messageJSON("Parses the config."))
	})

	out, err := svc.Generate(context.Background(), "Summarise this", driven.GenerateOptions{
		System:    "Be terse",
		MaxTokens: 200,
	})

	require.NoError(t, err)
	assert.Equal(t, "Parses the config.", out)
	assert.Equal(t, float64(200), got["max_tokens"])
	assert.Equal(t, DefaultModel, got["model"])
	assert.NotNil(t, got["system"])
}

func TestLLMService_Generate_DefaultMaxTokens(t *testing.T) {
	var got map[string]any
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(messageJSON("ok"))
	})

	_, err := svc.Generate(context.Background(), "hi", driven.GenerateOptions{})

	require.NoError(t, err)
	assert.Equal(t, float64(DefaultMaxTokens), got["max_tokens"])
	assert.Nil(t, got["system"])
}

func TestLLMService_Generate_RateLimited(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = io.WriteString(w, `{"type":"error","error":{"type":"rate_limit_error","message":"slow down"}}`)
	})

	_, err := svc.Generate(context.Background(), "hi", driven.GenerateOptions{})

	assert.ErrorIs(t, err, domain.ErrRateLimited)
	assert.True(t, domain.IsSkippableError(err))
}

func TestLLMService_Generate_BadRequestNotSkippable(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"type":"error","error":{"type":"invalid_request_error","message":"prompt is too long"}}`)
	})

	_, err := svc.Generate(context.Background(), "hi", driven.GenerateOptions{})

	require.Error(t, err)
	assert.False(t, domain.IsSkippableError(err))
}

func TestLLMService_Generate_EmptyContent(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		resp := messageJSON("")
		resp["content"] = []map[string]any{}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	})

	_, err := svc.Generate(context.Background(), "hi", driven.GenerateOptions{})

	assert.Error(t, err)
}

func TestLLMService_Ping(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/models", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"data":[],"has_more":false,"first_id":null,"last_id":null}`)
	})

	assert.NoError(t, svc.Ping(context.Background()))
}

func TestLLMService_Ping_Unauthorized(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`)
	})

	err := svc.Ping(context.Background())

	assert.ErrorIs(t, err, domain.ErrAuthRequired)
}
