package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// ChatRequest holds the parameters for a single chat completion.
type ChatRequest struct {
	SystemPrompt string
	UserPrompt   string
	Temperature  *float64 // nil uses config default
	MaxTokens    *int     // nil uses config default
}

// ChatResponse holds the result of a chat completion.
type ChatResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// ChatClient provides access to a language model for text completion.
type ChatClient interface {
	// Complete sends a prompt pair and returns the raw text response.
	Complete(ctx context.Context, req ChatRequest) (*ChatResponse, error)

	// Provider names the backend serving completions.
	Provider() Provider
}

// NewClient builds the ChatClient selected by cfg. It returns
// ErrNotConfigured when the provider is off or lacks a credential, which
// callers treat as a mode switch rather than a failure.
func NewClient(cfg Config, observer Observer) (ChatClient, error) {
	if observer == nil {
		observer = NoopObserver{}
	}
	switch cfg.Provider {
	case ProviderOpenAI, "":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%w: OPENAI_API_KEY not set", ErrNotConfigured)
		}
		return NewOpenAIClient(cfg, observer), nil
	case ProviderGemini:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%w: GEMINI_API_KEY not set", ErrNotConfigured)
		}
		return NewGeminiClient(cfg, observer)
	case ProviderOllama:
		if !cfg.Enabled {
			return nil, fmt.Errorf("%w: set TASKFLOW_LLM_ENABLED=true to use ollama", ErrNotConfigured)
		}
		return NewOllamaClient(cfg, observer), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}

// ollamaClient implements ChatClient using the Ollama HTTP API.
type ollamaClient struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// NewOllamaClient creates a ChatClient that talks to a local Ollama instance.
func NewOllamaClient(cfg Config, observer Observer) ChatClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &ollamaClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

// ollamaRequest is the JSON body sent to POST /api/generate.
type ollamaRequest struct {
	Model   string        `json:"model"`
	System  string        `json:"system,omitempty"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options,omitempty"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

// ollamaResponse is the JSON body returned by POST /api/generate (non-streaming).
type ollamaResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
}

func (c *ollamaClient) Provider() Provider { return ProviderOllama }

func (c *ollamaClient) Complete(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	start := time.Now()
	model := c.cfg.ModelName()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout())
	defer cancel()

	body := ollamaRequest{
		Model:  model,
		System: req.SystemPrompt,
		Prompt: req.UserPrompt,
		Stream: false,
		Options: ollamaOptions{
			Temperature: temperatureOf(c.cfg, req),
			NumPredict:  maxTokensOf(c.cfg, req),
		},
	}

	resp, err := c.doRequest(ctx, body)
	if err != nil {
		if ctx.Err() != nil {
			err = ErrTimeout
		} else if isConnectionError(err) {
			err = ErrUnavailable
		}
		report(c.observer, ProviderOllama, model, start, err)
		return nil, err
	}
	if strings.TrimSpace(resp.Response) == "" {
		report(c.observer, ProviderOllama, model, start, ErrEmptyCompletion)
		return nil, ErrEmptyCompletion
	}

	latency := report(c.observer, ProviderOllama, model, start, nil)
	return &ChatResponse{
		Text:      resp.Response,
		Model:     resp.Model,
		LatencyMs: latency,
	}, nil
}

func (c *ollamaClient) doRequest(ctx context.Context, body ollamaRequest) (*ollamaResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := c.cfg.EndpointURL() + "/api/generate"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama returned status %d: %s", httpResp.StatusCode, string(respBody))
	}

	var resp ollamaResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrInvalidOutput, err)
	}

	return &resp, nil
}

func temperatureOf(cfg Config, req ChatRequest) float64 {
	if req.Temperature != nil {
		return *req.Temperature
	}
	return cfg.Temperature
}

func maxTokensOf(cfg Config, req ChatRequest) int {
	if req.MaxTokens != nil {
		return *req.MaxTokens
	}
	return cfg.MaxTokens
}

// report emits a CallEvent for the call that began at start and returns
// its latency in milliseconds.
func report(observer Observer, provider Provider, model string, start time.Time, err error) int64 {
	latency := time.Since(start).Milliseconds()
	observer.OnCallComplete(CallEvent{
		Provider:  provider,
		Model:     model,
		LatencyMs: latency,
		Success:   err == nil,
		ErrorCode: errorCode(err),
	})
	return latency
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrEmptyCompletion):
		return "EMPTY"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	default:
		return "UNKNOWN"
	}
}
