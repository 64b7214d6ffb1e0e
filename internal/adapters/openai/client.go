// internal/adapters/openai/client.go
package openaiad

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"travel_guide/internal/adapters/observability"
	"travel_guide/internal/domain"
)

const (
	service      = "openai"
	DefaultModel = "gpt-4o"
)

type Options struct {
	APIKey  string
	BaseURL string // optional, for proxies and tests
	Model   string
	Timeout time.Duration
}

type Client struct {
	api   openai.Client
	model string
}

func New(o Options) (*Client, error) {
	if o.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if o.Model == "" {
		o.Model = DefaultModel
	}
	if o.Timeout <= 0 {
		o.Timeout = 60 * time.Second
	}
	opts := []option.RequestOption{
		option.WithAPIKey(o.APIKey),
		option.WithRequestTimeout(o.Timeout),
		option.WithMaxRetries(0),
	}
	if o.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(o.BaseURL))
	}
	return &Client{api: openai.NewClient(opts...), model: o.Model}, nil
}

// Complete sends one chat completion made of the system instruction and the user
// prompt and returns the trimmed text of the first choice.
func (c *Client) Complete(ctx context.Context, system, prompt string) (string, error) {
	start := time.Now()
	completion, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		observability.ObserveExternal(service, "chat.completions", statusOf(err), time.Since(start))
		return "", fmt.Errorf("openai: chat completion: %w", err)
	}
	observability.ObserveExternal(service, "chat.completions", 200, time.Since(start))

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("openai: %w: no choices", domain.ErrNotFound)
	}
	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}

func statusOf(err error) int {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
