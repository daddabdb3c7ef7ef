// Package openai implements [ai.Provider] and [ai.StreamProvider] against the
// /chat/completions endpoint of OpenAI-compatible APIs.
//
// Requests asking for [ai.ToolWebSearch] send web_search_options, which the
// *-search-preview models answer with url_citation annotations; those become
// grounding sources. [New] reads OPENAI_API_KEY and OPENAI_API_BASE_URL.
package openai
