// Package gemini implements [ai.Provider] and [ai.StreamProvider] for Google's
// Gemini API.
//
// Requests asking for [ai.ToolWebSearch] enable the hosted googleSearch tool;
// the web sources it reports come back as grounding metadata, both on
// [ai.ChatResponse] and as [ai.StreamEventGrounding] events while streaming.
// [New] reads GEMINI_API_KEY and GEMINI_API_BASE_URL from the environment.
package gemini
