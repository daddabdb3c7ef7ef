// Package client sits between the briefing session and the LLM providers.
//
// A [Client] turns a prompt into an [ai.ChatRequest] carrying the configured
// model, system prompt and, when enabled, the built-in web search tool, then
// runs it through a middleware chain ending at the provider. [Client.StreamMessage]
// uses native streaming when the provider supports it and otherwise presents
// the synchronous answer as a single-event stream.
package client
