package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/IAnMove/ideagenerator/internal/features/ideas/domain"
)

// ChatRequest is one chat-completion call. BaseURL and APIKey vary per
// request, so no client is bound to a single account.
type ChatRequest struct {
	BaseURL     string
	APIKey      string
	Model       string
	Prompt      domain.ChatPrompt
	Temperature float32
}

// ChatClient defines the interface for an OpenAI-compatible chat-completions
// backend.
type ChatClient interface {
	Complete(ctx context.Context, req ChatRequest) (string, error)
}

// UpstreamError is a non-2xx answer from the provider.
type UpstreamError struct {
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("status %d: %v", e.StatusCode, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// openAIChatClient is the implementation of ChatClient on go-openai.
type openAIChatClient struct {
	httpClient *http.Client
}

// NewOpenAIChatClient creates a ChatClient whose calls are bounded by timeout.
func NewOpenAIChatClient(timeout time.Duration) ChatClient {
	return &openAIChatClient{httpClient: &http.Client{Timeout: timeout}}
}

// Complete sends the system and user messages in JSON-object mode and
// returns the first choice's content. No choices yields an empty string.
func (c *openAIChatClient) Complete(ctx context.Context, req ChatRequest) (string, error) {
	cfg := openai.DefaultConfig(req.APIKey)
	cfg.BaseURL = strings.TrimRight(req.BaseURL, "/")
	cfg.HTTPClient = c.httpClient
	client := openai.NewClientWithConfig(cfg)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.Prompt.System},
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt.User},
		},
		Temperature: req.Temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", describeError(err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func describeError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		return &UpstreamError{StatusCode: apiErr.HTTPStatusCode, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &UpstreamError{StatusCode: reqErr.HTTPStatusCode, Err: err}
	}
	return fmt.Errorf("chat completion failed: %w", err)
}
