package ai

import (
	"context"
	"net/http"
)

// Provider is one LLM backend. A briefing needs nothing more from it than a
// single prompt in and a single answer out: the request carries the system
// prompt, the user's query and, when enabled, the web search tool.
type Provider interface {
	// Name identifies the backend in logs, spans and ProviderError messages.
	Name() string

	// SendMessage waits for the whole answer. The client falls back to it,
	// replayed as a one-event stream, when the backend cannot stream.
	SendMessage(ctx context.Context, request ChatRequest) (*ChatResponse, error)

	WithAPIKey(apiKey string) Provider
	WithBaseURL(baseURL string) Provider
	WithHttpClient(httpClient *http.Client) Provider
}

// StreamProvider is implemented by backends that stream their answer. The
// briefing session recovers a partial result after every content delta, so
// this is the path it prefers.
//
// Errors before the first byte (a bad key, a 4xx from the search tool) are
// returned directly. Once streaming has started they arrive through the
// iterator, after whatever text already made it through.
type StreamProvider interface {
	Provider
	StreamMessage(ctx context.Context, request ChatRequest) (*ChatStream, error)
}
