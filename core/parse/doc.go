// Package parse recovers structured sports briefings from raw, possibly
// incomplete, LLM text output. A model streaming a JSON document only emits
// valid JSON at the very end, so every intermediate buffer is treated as a
// prefix of valid JSON rather than as JSON itself.
//
// The main entry point is [RecoverResponse], a pure function from a buffer to
// the best available [intel.Response]. It first attempts a strict decode and
// falls back to a structural salvage pass built on a small string-aware
// scanner. [DecodeLenient] is the per-object decoder used inside salvage: a
// strict decode, then an automatic JSON repair, then schema unwrapping.
package parse
