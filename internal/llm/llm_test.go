package llm

import (
	"context"
	"sync"
	"testing"
)

// MockProvider records calls and replies with canned responses.
type MockProvider struct {
	mu       sync.Mutex
	Response string
	Err      error
	Calls    []CompletionRequest
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) Complete(_ context.Context, req CompletionRequest) (*CompletionResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, req)
	if m.Err != nil {
		return nil, m.Err
	}
	return &CompletionResponse{Content: m.Response, Model: req.Model}, nil
}

func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

func TestMockProviderRecordsCalls(t *testing.T) {
	mock := &MockProvider{Response: "mock response"}

	req := CompletionRequest{
		Model:    "test-model",
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
	}
	resp, err := mock.Complete(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != "mock response" {
		t.Errorf("expected 'mock response', got %q", resp.Content)
	}
	if mock.CallCount() != 1 {
		t.Errorf("expected 1 call, got %d", mock.CallCount())
	}
	if mock.Calls[0].Model != "test-model" {
		t.Errorf("expected model 'test-model', got %q", mock.Calls[0].Model)
	}
}

func TestFactoryReturnsErrorForMissingAPIKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	for _, p := range []string{"anthropic", "openai"} {
		if _, err := NewProvider(p, "some-model"); err == nil {
			t.Errorf("expected error for provider %q with missing API key", p)
		}
	}
}

func TestFactoryReturnsErrorForUnknownProvider(t *testing.T) {
	if _, err := NewProvider("unknown", "some-model"); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestFactoryCreatesOllamaWithoutAPIKey(t *testing.T) {
	t.Setenv("OLLAMA_HOST", "http://localhost:11434")
	provider, err := NewProvider("ollama", "llama3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.Name() != "ollama" {
		t.Errorf("expected name 'ollama', got %q", provider.Name())
	}
}

func TestFactoryCreatesOllamaWithDefaultHost(t *testing.T) {
	t.Setenv("OLLAMA_HOST", "")
	provider, err := NewProvider("ollama", "llama3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ollamaP, ok := provider.(*OllamaProvider)
	if !ok {
		t.Fatalf("expected *OllamaProvider, got %T", provider)
	}
	if ollamaP.baseURL != "http://localhost:11434" {
		t.Errorf("expected default host, got %q", ollamaP.baseURL)
	}
}

func TestRateLimitedProviderPassesThrough(t *testing.T) {
	mock := &MockProvider{Response: "ok"}
	limited := NewRateLimitedProvider(mock, 60)

	if limited.Name() != "mock" {
		t.Errorf("expected wrapped name 'mock', got %q", limited.Name())
	}
	resp, err := limited.Complete(context.Background(), CompletionRequest{Model: "m"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != "ok" {
		t.Errorf("expected 'ok', got %q", resp.Content)
	}
	if mock.CallCount() != 1 {
		t.Errorf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestRateLimitedProviderBlocksWhenExhausted(t *testing.T) {
	mock := &MockProvider{Response: "ok"}
	limited := NewRateLimitedProvider(mock, 1)

	ctx := context.Background()
	if _, err := limited.Complete(ctx, CompletionRequest{}); err != nil {
		t.Fatalf("first call: %v", err)
	}

	cancelCtx, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := limited.Complete(cancelCtx, CompletionRequest{}); err == nil {
		t.Error("expected context error when bucket is empty")
	}
	if mock.CallCount() != 1 {
		t.Errorf("expected exactly 1 upstream call, got %d", mock.CallCount())
	}
}
