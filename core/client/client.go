package client

import (
	"context"
	"errors"
	"strings"

	"github.com/leofalp/sportsintel/providers/ai"
	"github.com/leofalp/sportsintel/providers/observability"
)

// ErrNilProvider is returned by New when no provider is given.
var ErrNilProvider = errors.New("client: provider is nil")

// ErrEmptyPrompt is returned when a message has no content.
var ErrEmptyPrompt = errors.New("client: prompt is empty")

// Client sends single-turn prompts to a provider through a middleware chain.
// It is immutable after New and safe for concurrent use.
type Client struct {
	provider         ai.Provider
	defaultModel     string
	systemPrompt     string
	webSearch        bool
	generationConfig *ai.GenerationConfig
	observer         observability.Provider
	sendChain        SendFunc
	streamChain      StreamFunc
}

// New builds a Client. When an observer is configured its middleware is the
// outermost one, so it sees the final outcome of the chain.
func New(provider ai.Provider, opts ...Option) (*Client, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}

	options := &ClientOptions{}
	for _, opt := range opts {
		opt(options)
	}

	middlewares := options.Middlewares
	if options.Observer != nil {
		middlewares = append([]MiddlewareConfig{NewObservabilityMiddleware(options.Observer, options.DefaultModel)}, middlewares...)
	}
	for _, mw := range middlewares {
		if mw.Send == nil {
			return nil, errors.New("client: middleware with nil Send")
		}
	}

	return &Client{
		provider:         provider,
		defaultModel:     options.DefaultModel,
		systemPrompt:     options.SystemPrompt,
		webSearch:        options.WebSearch,
		generationConfig: options.GenerationConfig,
		observer:         options.Observer,
		sendChain:        buildSendChain(provider, middlewares),
		streamChain:      buildStreamChain(provider, middlewares),
	}, nil
}

// Provider returns the underlying provider.
func (c *Client) Provider() ai.Provider {
	return c.provider
}

// DefaultModel returns the model sent with every request; empty lets the
// provider choose.
func (c *Client) DefaultModel() string {
	return c.defaultModel
}

// Observer returns the configured observer, or nil.
func (c *Client) Observer() observability.Provider {
	return c.observer
}

// WebSearch reports whether requests ask for hosted web search.
func (c *Client) WebSearch() bool {
	return c.webSearch
}

// SendMessage sends prompt and waits for the complete answer.
func (c *Client) SendMessage(ctx context.Context, prompt string) (*ai.ChatResponse, error) {
	request, err := c.buildRequest(prompt)
	if err != nil {
		return nil, err
	}
	return c.sendChain(ctx, request)
}

// StreamMessage sends prompt and returns the answer as a stream. Providers
// without native streaming are wrapped in a single-event stream.
func (c *Client) StreamMessage(ctx context.Context, prompt string) (*ai.ChatStream, error) {
	request, err := c.buildRequest(prompt)
	if err != nil {
		return nil, err
	}
	return c.streamChain(ctx, request)
}

func (c *Client) buildRequest(prompt string) (ai.ChatRequest, error) {
	if strings.TrimSpace(prompt) == "" {
		return ai.ChatRequest{}, ErrEmptyPrompt
	}

	request := ai.ChatRequest{
		Model:            c.defaultModel,
		SystemPrompt:     c.systemPrompt,
		Messages:         []ai.Message{{Role: ai.RoleUser, Content: prompt}},
		GenerationConfig: c.generationConfig,
	}
	if c.webSearch {
		request.Tools = append(request.Tools, ai.ToolDescription{
			Name:        ai.ToolWebSearch,
			Description: "Search the web for current sports news",
		})
	}
	return request, nil
}
