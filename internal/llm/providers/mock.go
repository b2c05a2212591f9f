package providers

import (
	"context"
	"strings"
	"sync"

	"github.com/biograph-ai/biograph/internal/llm"
	"github.com/biograph-ai/biograph/internal/types"
)

// MockProvider is a scripted llm.Provider for tests. Responses are matched by
// substring rules against the last user message, falling back to a queue of
// canned responses, falling back to a default.
type MockProvider struct {
	mu sync.Mutex

	rules    []mockRule
	queue    []string
	fallback string
	err      error

	// Requests records every request received, for assertions.
	Requests []llm.CompletionRequest
}

type mockRule struct {
	substring string
	response  string
}

// NewMockProvider creates a mock provider with an empty script.
func NewMockProvider() *MockProvider {
	return &MockProvider{fallback: "mock response"}
}

// WithRule registers a response returned when the last user message contains
// the given substring. Rules are checked in registration order.
func (p *MockProvider) WithRule(substring, response string) *MockProvider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rules = append(p.rules, mockRule{substring: substring, response: response})
	return p
}

// WithResponses queues canned responses consumed one per request.
func (p *MockProvider) WithResponses(responses ...string) *MockProvider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queue = append(p.queue, responses...)
	return p
}

// WithError makes every subsequent call fail with the given error.
func (p *MockProvider) WithError(err error) *MockProvider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
	return p
}

// Name returns the provider name.
func (p *MockProvider) Name() string {
	return "mock"
}

// Complete replays the scripted response for the request.
func (p *MockProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, llm.TranslateError("mock", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.Requests = append(p.Requests, req)

	if p.err != nil {
		return nil, p.err
	}

	prompt := lastUserContent(req.Messages)
	for _, rule := range p.rules {
		if strings.Contains(prompt, rule.substring) {
			return &llm.CompletionResponse{Content: rule.response, Model: req.Model}, nil
		}
	}

	if len(p.queue) > 0 {
		resp := p.queue[0]
		p.queue = p.queue[1:]
		return &llm.CompletionResponse{Content: resp, Model: req.Model}, nil
	}

	return &llm.CompletionResponse{Content: p.fallback, Model: req.Model}, nil
}

// Health always reports healthy.
func (p *MockProvider) Health(ctx context.Context) types.HealthStatus {
	return types.Healthy("mock provider")
}

func lastUserContent(messages []llm.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == llm.RoleUser {
			return messages[i].Content
		}
	}
	return ""
}
