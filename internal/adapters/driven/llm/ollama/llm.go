// Package ollama provides an LLM service adapter for a local Ollama daemon.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/zaibi117/readme-maker/internal/core/domain"
	"github.com/zaibi117/readme-maker/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// Default configuration values.
const (
	DefaultBaseURL    = "http://localhost:11434"
	DefaultLLMModel   = "llama3.2"
	DefaultLLMTimeout = 300 * time.Second
)

// LLMConfig holds configuration for the Ollama LLM service.
type LLMConfig struct {
	BaseURL string
	Model   string

	// Timeout bounds one request. Local models on CPU are slow, so keep it generous.
	Timeout time.Duration
}

// LLMService talks to the Ollama chat API.
type LLMService struct {
	client  *http.Client
	baseURL string
	model   string
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatOptions struct {
	NumPredict  int     `json:"num_predict,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

type chatRequest struct {
	Model    string       `json:"model"`
	Messages []message    `json:"messages"`
	Stream   bool         `json:"stream"`
	Options  *chatOptions `json:"options,omitempty"`
}

type chatResponse struct {
	Message    message `json:"message"`
	Done       bool    `json:"done"`
	DoneReason string  `json:"done_reason,omitempty"`
	Error      string  `json:"error,omitempty"`
}

type tagsResponse struct {
	Models []struct {
		Name  string `json:"name"`
		Model string `json:"model"`
	} `json:"models"`
}

// NewLLMService creates an Ollama LLM service. No key is needed.
func NewLLMService(cfg LLMConfig) *LLMService {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultLLMModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultLLMTimeout
	}

	return &LLMService{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
	}
}

// Generate sends the prompt as a single user turn and returns the reply.
func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	reqBody := chatRequest{Model: s.model}
	if opts.System != "" {
		reqBody.Messages = append(reqBody.Messages, message{Role: "system", Content: opts.System})
	}
	reqBody.Messages = append(reqBody.Messages, message{Role: "user", Content: prompt})
	if opts.MaxTokens > 0 || opts.Temperature > 0 {
		reqBody.Options = &chatOptions{NumPredict: opts.MaxTokens, Temperature: opts.Temperature}
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/chat", bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := s.do(req)
	if err != nil {
		return "", err
	}

	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("ollama: decode response: %w", err)
	}
	if resp.Error != "" {
		return "", fmt.Errorf("ollama error: %s", resp.Error)
	}
	if resp.Message.Content == "" {
		return "", fmt.Errorf("ollama: empty response (done reason %q)", resp.DoneReason)
	}
	return resp.Message.Content, nil
}

// ModelName returns the configured model tag.
func (s *LLMService) ModelName() string {
	return s.model
}

// Ping lists the local models and checks the configured one has been pulled.
func (s *LLMService) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/tags", http.NoBody)
	if err != nil {
		return fmt.Errorf("ollama: failed to create ping request: %w", err)
	}

	body, err := s.do(req)
	if err != nil {
		return fmt.Errorf("ollama: ping failed: %w", err)
	}

	var tags tagsResponse
	if err := json.Unmarshal(body, &tags); err != nil {
		return fmt.Errorf("ollama: decode model list: %w", err)
	}
	for _, m := range tags.Models {
		if sameModel(m.Name, s.model) || sameModel(m.Model, s.model) {
			return nil
		}
	}
	return fmt.Errorf("ollama: model %q not pulled; run 'ollama pull %s'", s.model, s.model)
}

// Close releases resources.
func (s *LLMService) Close() error {
	return nil
}

func (s *LLMService) do(req *http.Request) ([]byte, error) {
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama: %w: %w", domain.ErrLLMUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ollama: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp.StatusCode, body)
	}
	return body, nil
}

func statusError(status int, body []byte) error {
	msg := strings.TrimSpace(string(body))
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		msg = e.Error
	}

	if status == http.StatusServiceUnavailable {
		return fmt.Errorf("ollama: %w (status %d): %s", domain.ErrLLMUnavailable, status, msg)
	}
	return fmt.Errorf("ollama error (status %d): %s", status, msg)
}

// sameModel treats an untagged name as ":latest".
func sameModel(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return withTag(a) == withTag(b)
}

func withTag(name string) string {
	if strings.Contains(name, ":") {
		return name
	}
	return name + ":latest"
}
