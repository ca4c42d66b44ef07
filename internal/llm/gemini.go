package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

// geminiClient implements ChatClient on the Gemini API.
type geminiClient struct {
	cfg      Config
	client   *genai.Client
	observer Observer
}

// NewGeminiClient creates a ChatClient backed by google.golang.org/genai.
func NewGeminiClient(cfg Config, observer Observer) (ChatClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key is required", ErrNotConfigured)
	}
	if observer == nil {
		observer = NoopObserver{}
	}

	gcfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if base := cfg.EndpointURL(); base != "" {
		gcfg.HTTPOptions = genai.HTTPOptions{BaseURL: base}
	}

	client, err := genai.NewClient(context.Background(), gcfg)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &geminiClient{cfg: cfg, client: client, observer: observer}, nil
}

func (c *geminiClient) Provider() Provider { return ProviderGemini }

func (c *geminiClient) Complete(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	start := time.Now()
	model := c.cfg.ModelName()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout())
	defer cancel()

	gen := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(temperatureOf(c.cfg, req))),
		MaxOutputTokens: int32(maxTokensOf(c.cfg, req)),
	}
	if req.SystemPrompt != "" {
		gen.SystemInstruction = genai.NewContentFromText(req.SystemPrompt, genai.RoleUser)
	}

	resp, err := c.client.Models.GenerateContent(ctx, model, genai.Text(req.UserPrompt), gen)
	if err != nil {
		if ctx.Err() != nil {
			err = ErrTimeout
		} else if isConnectionError(err) {
			err = ErrUnavailable
		} else {
			err = fmt.Errorf("gemini generate: %w", err)
		}
		report(c.observer, ProviderGemini, model, start, err)
		return nil, err
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		report(c.observer, ProviderGemini, model, start, ErrEmptyCompletion)
		return nil, ErrEmptyCompletion
	}

	latency := report(c.observer, ProviderGemini, model, start, nil)
	return &ChatResponse{
		Text:      text,
		Model:     model,
		LatencyMs: latency,
	}, nil
}
