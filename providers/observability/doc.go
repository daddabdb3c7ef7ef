// Package observability defines the interfaces and semantic conventions used
// for tracing, metrics and structured logging across sportsintel.
//
// The central entry point is [Provider], which composes [Tracer], [Metrics],
// and [Logger] into a single injectable dependency. Callers propagate an active
// [Provider] and [Span] through a [context.Context] using [ContextWithObserver]
// and [ContextWithSpan]; they can be retrieved with [ObserverFromContext] and
// [SpanFromContext]. Both lookups return nil when nothing was attached, and
// every call site checks for nil, so observability is always optional.
package observability
