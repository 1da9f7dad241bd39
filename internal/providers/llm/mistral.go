package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrMissingAPIKey is returned by Ready when the provider was constructed
// without a credential. The chat service maps it to a configuration failure
// before any network call happens.
var ErrMissingAPIKey = errors.New("mistral api key is not configured")

// Mistral talks to the Mistral chat-completions API (OpenAI-compatible).
type Mistral struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func NewMistral(apiKey, baseURL, model string) *Mistral {
	if baseURL == "" {
		baseURL = "https://api.mistral.ai/v1"
	}
	if model == "" {
		model = "mistral-small"
	}
	return &Mistral{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{},
	}
}

func (m *Mistral) Ready() error {
	if m.apiKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

func (m *Mistral) Close() error { return nil }

// Complete sends the system instruction plus the user message as a single
// exchange. The upstream API is stateless, so sessionID is not transmitted;
// it exists to satisfy providers that do keep per-session context.
func (m *Mistral) Complete(ctx context.Context, system, sessionID, userMessage string) (string, error) {
	if err := m.Ready(); err != nil {
		return "", err
	}

	reqBody := chatRequest{
		Model: m.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: userMessage},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/chat/completions", m.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", m.apiKey))

	resp, err := m.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("mistral api error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(bodyBytes, &chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if chatResp.Error != nil {
		return "", fmt.Errorf("mistral api returned error: %s", chatResp.Error.Message)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("empty choices from mistral api")
	}

	return chatResp.Choices[0].Message.Content, nil
}
