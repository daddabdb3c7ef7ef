package openai

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/leofalp/sportsintel/internal/utils"
	"github.com/leofalp/sportsintel/providers/ai"
	"github.com/leofalp/sportsintel/providers/observability"
)

const (
	providerName            = "openai"
	defaultBaseURL          = "https://api.openai.com/v1"
	chatCompletionsEndpoint = "/chat/completions"

	// DefaultModel is a chat completions model that accepts web_search_options.
	DefaultModel = "gpt-4o-mini-search-preview"
)

// OpenAIProvider implements ai.Provider and ai.StreamProvider on the chat
// completions endpoint of OpenAI and compatible APIs.
type OpenAIProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

var _ ai.StreamProvider = (*OpenAIProvider)(nil)

// New creates a provider configured from OPENAI_API_KEY and, optionally,
// OPENAI_API_BASE_URL.
func New() *OpenAIProvider {
	baseURL := os.Getenv("OPENAI_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &OpenAIProvider{
		apiKey:  os.Getenv("OPENAI_API_KEY"),
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

func (p *OpenAIProvider) Name() string {
	return providerName
}

func (p *OpenAIProvider) WithAPIKey(apiKey string) ai.Provider {
	p.apiKey = apiKey
	return p
}

func (p *OpenAIProvider) WithBaseURL(baseURL string) ai.Provider {
	p.baseURL = baseURL
	return p
}

func (p *OpenAIProvider) WithHttpClient(httpClient *http.Client) ai.Provider {
	p.client = httpClient
	return p
}

// SendMessage posts a non-streaming chat completion.
func (p *OpenAIProvider) SendMessage(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	model := p.prepare(ctx, request, false)
	if p.apiKey == "" {
		return nil, fmt.Errorf("%s: %w (set OPENAI_API_KEY)", providerName, ai.ErrMissingAPIKey)
	}

	_, resp, err := utils.DoPostSync[chatCompletionResponse](ctx, p.client, p.baseURL+chatCompletionsEndpoint, p.apiKey, requestToChatCompletion(request, model))
	if err != nil {
		return nil, wrapError(err)
	}

	result := chatCompletionToGeneric(*resp)
	if span := observability.SpanFromContext(ctx); span != nil {
		span.SetAttributes(observability.String(observability.AttrLLMFinishReason, result.FinishReason))
		if result.Usage != nil {
			span.SetAttributes(observability.Int(observability.AttrLLMTokensTotal, result.Usage.TotalTokens))
		}
	}
	return result, nil
}

func (p *OpenAIProvider) prepare(ctx context.Context, request ai.ChatRequest, streaming bool) string {
	model := request.Model
	if model == "" {
		model = DefaultModel
	}
	webSearch := request.HasTool(ai.ToolWebSearch)

	if span := observability.SpanFromContext(ctx); span != nil {
		span.AddEvent(observability.EventLLMRequestStart)
		span.SetAttributes(
			observability.String(observability.AttrLLMProvider, providerName),
			observability.String(observability.AttrLLMEndpoint, p.baseURL),
			observability.String(observability.AttrLLMModel, model),
			observability.Bool(observability.AttrLLMStreaming, streaming),
			observability.Bool(observability.AttrLLMWebSearch, webSearch),
		)
	}
	if observer := observability.ObserverFromContext(ctx); observer != nil {
		observer.Trace(ctx, "OpenAI provider preparing request",
			observability.String(observability.AttrLLMModel, model),
			observability.Bool(observability.AttrLLMStreaming, streaming),
			observability.Bool(observability.AttrLLMWebSearch, webSearch),
		)
	}
	return model
}
