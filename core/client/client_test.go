package client

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/leofalp/sportsintel/providers/ai"
)

// mockProvider implements ai.Provider only.
type mockProvider struct {
	lastRequest ai.ChatRequest
	response    *ai.ChatResponse
	err         error
	calls       int
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) SendMessage(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	m.calls++
	m.lastRequest = request
	if m.err != nil {
		return nil, m.err
	}
	if m.response != nil {
		return m.response, nil
	}
	return &ai.ChatResponse{Content: "ok", FinishReason: "stop"}, nil
}

func (m *mockProvider) WithAPIKey(string) ai.Provider          { return m }
func (m *mockProvider) WithBaseURL(string) ai.Provider         { return m }
func (m *mockProvider) WithHttpClient(*http.Client) ai.Provider { return m }

func TestNew_NilProvider(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, ErrNilProvider) {
		t.Errorf("error = %v, want ErrNilProvider", err)
	}
}

func TestNew_NilSendMiddleware(t *testing.T) {
	_, err := New(&mockProvider{}, WithMiddleware(MiddlewareConfig{}))
	if err == nil {
		t.Error("expected error for middleware without Send")
	}
}

func TestSendMessage_BuildsRequest(t *testing.T) {
	provider := &mockProvider{}
	client, err := New(provider,
		WithDefaultModel("gemini-2.5-flash"),
		WithSystemPrompt("system"),
		WithWebSearch(true),
		WithGenerationConfig(&ai.GenerationConfig{MaxOutputTokens: 4096}),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	response, err := client.SendMessage(context.Background(), "latest nba trades")
	if err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}
	if response.Content != "ok" {
		t.Errorf("Content = %q", response.Content)
	}

	request := provider.lastRequest
	if request.Model != "gemini-2.5-flash" || request.SystemPrompt != "system" {
		t.Errorf("request = %+v", request)
	}
	if len(request.Messages) != 1 || request.Messages[0].Role != ai.RoleUser || request.Messages[0].Content != "latest nba trades" {
		t.Errorf("messages = %+v", request.Messages)
	}
	if !request.HasTool(ai.ToolWebSearch) {
		t.Error("web search tool missing")
	}
	if request.GenerationConfig == nil || request.GenerationConfig.MaxOutputTokens != 4096 {
		t.Errorf("generation config = %+v", request.GenerationConfig)
	}
}

func TestSendMessage_WithoutWebSearch(t *testing.T) {
	provider := &mockProvider{}
	client, _ := New(provider)

	if _, err := client.SendMessage(context.Background(), "q"); err != nil {
		t.Fatal(err)
	}
	if len(provider.lastRequest.Tools) != 0 {
		t.Errorf("tools = %+v, want none", provider.lastRequest.Tools)
	}
	if client.WebSearch() {
		t.Error("WebSearch() should be false")
	}
}

func TestSendMessage_EmptyPrompt(t *testing.T) {
	provider := &mockProvider{}
	client, _ := New(provider)

	for _, prompt := range []string{"", "   \n"} {
		if _, err := client.SendMessage(context.Background(), prompt); !errors.Is(err, ErrEmptyPrompt) {
			t.Errorf("SendMessage(%q) error = %v, want ErrEmptyPrompt", prompt, err)
		}
	}
	if provider.calls != 0 {
		t.Errorf("provider called %d times", provider.calls)
	}
}

func TestSendMessage_ProviderError(t *testing.T) {
	boom := &ai.ProviderError{Provider: "mock", StatusCode: 500, Message: "down"}
	client, _ := New(&mockProvider{err: boom})

	_, err := client.SendMessage(context.Background(), "q")
	var providerErr *ai.ProviderError
	if !errors.As(err, &providerErr) || providerErr != boom {
		t.Errorf("error = %v, want provider error", err)
	}
}

func TestMiddlewareOrder(t *testing.T) {
	var order []string
	record := func(name string) MiddlewareConfig {
		return MiddlewareConfig{
			Send: func(next SendFunc) SendFunc {
				return func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
					order = append(order, name)
					return next(ctx, request)
				}
			},
		}
	}

	client, err := New(&mockProvider{}, WithMiddleware(record("outer"), record("inner")))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := client.SendMessage(context.Background(), "q"); err != nil {
		t.Fatal(err)
	}
	if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
		t.Errorf("order = %v, want [outer inner]", order)
	}
}
