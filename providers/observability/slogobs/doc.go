// Package slogobs implements observability.Provider with log/slog.
//
// Spans, counters and histograms are emitted as DEBUG records and kept in
// memory, which is all a single CLI run needs. Records are rendered by
// [Handler] in compact, pretty or JSON form; the defaults come from
// SPORTSINTEL_LOG_FORMAT and SPORTSINTEL_LOG_LEVEL.
package slogobs
