// Package intel defines the sports intelligence briefing model: the
// [Response] a model streams back, its [EventRecord] cards, and the closed
// [Category] and [Significance] vocabularies.
//
// Values are produced fresh on every recovery attempt by the parse package
// and are never mutated after being handed to a caller. [Response.IsComplete]
// and [Response.Validate] together decide whether a recovered value can be
// accepted as the final answer of a stream.
package intel
