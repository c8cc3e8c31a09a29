// Package llm holds the HTTP clients for the inference services: the Ollama
// chat and embedding endpoints and the cross-encoder rerank endpoint.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"rag-pipeline/internal/domain"
)

const chatTemperature = 0.0

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string         `json:"model"`
	Messages  []chatMessage  `json:"messages"`
	Stream    bool           `json:"stream"`
	KeepAlive int            `json:"keep_alive"`
	Options   map[string]any `json:"options,omitempty"`
}

type chatResponse struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
	Done bool `json:"done"`
}

// OllamaChat sends system/user message pairs to Ollama's chat endpoint.
type OllamaChat struct {
	BaseURL   string
	Model     string
	MaxTokens int
	Client    *http.Client
}

// NewOllamaChat constructs a chat client for the given endpoint and model.
func NewOllamaChat(baseURL, model string, maxTokens int, timeout time.Duration) *OllamaChat {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &OllamaChat{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		Model:     model,
		MaxTokens: maxTokens,
		Client:    &http.Client{Timeout: timeout},
	}
}

// Chat sends the message pair and returns the assistant text.
func (c *OllamaChat) Chat(ctx context.Context, system, user string) (string, error) {
	reqBody := chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Stream:    false,
		KeepAlive: -1,
		Options: map[string]any{
			"temperature": chatTemperature,
		},
	}
	if c.MaxTokens > 0 {
		reqBody.Options["num_predict"] = c.MaxTokens
	}

	jsonPayload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	url := fmt.Sprintf("%s/api/chat", c.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonPayload))
	if err != nil {
		return "", fmt.Errorf("failed to create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call chat endpoint: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("chat endpoint returned %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode chat response: %w", err)
	}

	return strings.TrimSpace(chatResp.Message.Content), nil
}

// Version returns the wrapped model name.
func (c *OllamaChat) Version() string {
	return c.Model
}

var _ domain.ChatClient = (*OllamaChat)(nil)
