package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// openaiClient implements ChatClient on the OpenAI chat completions API, or
// any server speaking the same protocol when an endpoint is configured.
type openaiClient struct {
	cfg      Config
	client   *openai.Client
	observer Observer
}

// NewOpenAIClient creates a ChatClient backed by go-openai.
func NewOpenAIClient(cfg Config, observer Observer) ChatClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	ocfg := openai.DefaultConfig(cfg.APIKey)
	if base := cfg.EndpointURL(); base != "" {
		ocfg.BaseURL = base
	}
	return &openaiClient{
		cfg:      cfg,
		client:   openai.NewClientWithConfig(ocfg),
		observer: observer,
	}
}

func (c *openaiClient) Provider() Provider { return ProviderOpenAI }

func (c *openaiClient) Complete(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	start := time.Now()
	model := c.cfg.ModelName()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout())
	defer cancel()

	var messages []openai.ChatCompletionMessage
	if req.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.UserPrompt,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: float32(temperatureOf(c.cfg, req)),
		MaxTokens:   maxTokensOf(c.cfg, req),
	})
	if err != nil {
		err = classifyOpenAIError(ctx, err)
		report(c.observer, ProviderOpenAI, model, start, err)
		return nil, err
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		report(c.observer, ProviderOpenAI, model, start, ErrEmptyCompletion)
		return nil, ErrEmptyCompletion
	}

	latency := report(c.observer, ProviderOpenAI, model, start, nil)
	return &ChatResponse{
		Text:      resp.Choices[0].Message.Content,
		Model:     resp.Model,
		LatencyMs: latency,
	}, nil
}

func classifyOpenAIError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ErrTimeout
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("openai returned status %d: %s", apiErr.HTTPStatusCode, apiErr.Message)
	}
	if isConnectionError(err) {
		return ErrUnavailable
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("openai request failed with status %d: %w", reqErr.HTTPStatusCode, reqErr.Err)
	}
	return err
}
