package client

import (
	"github.com/leofalp/sportsintel/providers/ai"
	"github.com/leofalp/sportsintel/providers/observability"
)

// ClientOptions collects the values set by Option functions.
type ClientOptions struct {
	DefaultModel     string
	SystemPrompt     string
	WebSearch        bool
	GenerationConfig *ai.GenerationConfig
	Observer         observability.Provider
	Middlewares      []MiddlewareConfig
}

// Option configures a Client.
type Option func(*ClientOptions)

// WithDefaultModel sets the model sent with every request. Empty lets the
// provider choose.
func WithDefaultModel(model string) Option {
	return func(o *ClientOptions) {
		o.DefaultModel = model
	}
}

func WithSystemPrompt(prompt string) Option {
	return func(o *ClientOptions) {
		o.SystemPrompt = prompt
	}
}

// WithWebSearch adds the built-in web search tool to every request.
func WithWebSearch(enabled bool) Option {
	return func(o *ClientOptions) {
		o.WebSearch = enabled
	}
}

func WithGenerationConfig(config *ai.GenerationConfig) Option {
	return func(o *ClientOptions) {
		o.GenerationConfig = config
	}
}

// WithObserver enables spans, metrics and logs for every provider call.
func WithObserver(observer observability.Provider) Option {
	return func(o *ClientOptions) {
		o.Observer = observer
	}
}

// WithMiddleware appends middlewares; the first one given is the outermost.
func WithMiddleware(middlewares ...MiddlewareConfig) Option {
	return func(o *ClientOptions) {
		o.Middlewares = append(o.Middlewares, middlewares...)
	}
}
