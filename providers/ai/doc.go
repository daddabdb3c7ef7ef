// Package ai defines the provider-agnostic request, response and streaming
// types shared by the Gemini and OpenAI providers. Each provider maps these
// types to its own wire format so the briefing code never sees
// provider-specific details.
//
// The two central interfaces are [Provider] for one-shot completions and
// [StreamProvider] for SSE streaming. Streaming results are delivered through
// a [ChatStream] of [StreamEvent] values; the briefing session concatenates
// the content deltas into the buffer it hands to the recoverer.
//
// Hosted web search is requested through the built-in pseudo-tool
// [ToolWebSearch]; providers translate it into their native search tool.
package ai
