package testutil

import (
	"context"
	"sync"

	"github.com/alexanderramin/taskflow/internal/llm"
)

// StubChatClient is a scripted llm.ChatClient. It answers every call with
// Reply, or fails with Err, or panics with PanicMsg when set.
type StubChatClient struct {
	Reply    string
	Err      error
	PanicMsg string

	// Model is reported in responses. Defaults to "gpt-3.5-turbo".
	Model string

	mu    sync.Mutex
	calls []llm.ChatRequest
}

// Complete records req and returns the scripted outcome.
func (c *StubChatClient) Complete(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	c.mu.Lock()
	c.calls = append(c.calls, req)
	c.mu.Unlock()

	if c.PanicMsg != "" {
		panic(c.PanicMsg)
	}
	if c.Err != nil {
		return nil, c.Err
	}
	model := c.Model
	if model == "" {
		model = "gpt-3.5-turbo"
	}
	return &llm.ChatResponse{Text: c.Reply, Model: model, LatencyMs: 1}, nil
}

func (c *StubChatClient) Provider() llm.Provider { return llm.ProviderOpenAI }

// Calls returns the requests received so far.
func (c *StubChatClient) Calls() []llm.ChatRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]llm.ChatRequest(nil), c.calls...)
}
