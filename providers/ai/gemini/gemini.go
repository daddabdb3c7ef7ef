package gemini

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
	providerName   = "gemini"
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// DefaultModel supports Google Search grounding and streams quickly.
	DefaultModel = "gemini-2.5-flash"
)

// GeminiProvider implements ai.Provider and ai.StreamProvider for Google's
// Gemini API.
type GeminiProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

var _ ai.StreamProvider = (*GeminiProvider)(nil)

// New creates a provider configured from GEMINI_API_KEY and, optionally,
// GEMINI_API_BASE_URL.
func New() *GeminiProvider {
	baseURL := os.Getenv("GEMINI_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &GeminiProvider{
		apiKey:  os.Getenv("GEMINI_API_KEY"),
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

func (p *GeminiProvider) Name() string {
	return providerName
}

func (p *GeminiProvider) WithAPIKey(apiKey string) ai.Provider {
	p.apiKey = apiKey
	return p
}

func (p *GeminiProvider) WithBaseURL(baseURL string) ai.Provider {
	p.baseURL = baseURL
	return p
}

func (p *GeminiProvider) WithHttpClient(httpClient *http.Client) ai.Provider {
	p.client = httpClient
	return p
}

// SendMessage calls generateContent and waits for the whole answer.
func (p *GeminiProvider) SendMessage(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	model := p.prepare(ctx, request, false)
	if p.apiKey == "" {
		return nil, fmt.Errorf("%s: %w (set GEMINI_API_KEY)", providerName, ai.ErrMissingAPIKey)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", p.baseURL, model)
	_, resp, err := utils.DoPostSync[generateContentResponse](
		ctx,
		p.client,
		url,
		"", // Gemini authenticates with x-goog-api-key, not a bearer token
		requestToGemini(request),
		utils.HeaderOption{Key: "x-goog-api-key", Value: p.apiKey},
	)
	if err != nil {
		return nil, wrapError(err)
	}
	if resp.Error != nil {
		return nil, &ai.ProviderError{Provider: providerName, StatusCode: resp.Error.Code, Message: resp.Error.Message}
	}

	result := geminiToGeneric(*resp)
	if result.Model == "" {
		result.Model = model
	}

	if span := observability.SpanFromContext(ctx); span != nil {
		span.SetAttributes(observability.String(observability.AttrLLMFinishReason, result.FinishReason))
		if result.Usage != nil {
			span.SetAttributes(observability.Int(observability.AttrLLMTokensTotal, result.Usage.TotalTokens))
		}
	}
	return result, nil
}

// prepare resolves the model and records the request on the span and observer
// carried by ctx.
func (p *GeminiProvider) prepare(ctx context.Context, request ai.ChatRequest, streaming bool) string {
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
		observer.Trace(ctx, "Gemini provider preparing request",
			observability.String(observability.AttrLLMModel, model),
			observability.Bool(observability.AttrLLMStreaming, streaming),
			observability.Bool(observability.AttrLLMWebSearch, webSearch),
		)
	}
	return model
}
