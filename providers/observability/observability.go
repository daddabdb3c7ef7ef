package observability

import (
	"context"
	"time"
)

// Provider bundles the three signals a briefing run emits. The session and
// the client middleware take one Provider and never check which parts are
// backed by something real; slogobs backs all three with a slog.Logger.
type Provider interface {
	Tracer
	Metrics
	Logger
}

// Tracer opens the briefing.run and llm.stream spans. The returned context
// carries the span so nested calls can find it with SpanFromContext.
type Tracer interface {
	StartSpan(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Span is one traced run or request. End must be called exactly once,
// including on the superseded and abandoned paths.
type Span interface {
	End()
	SetAttributes(attrs ...Attribute)
	SetStatus(code StatusCode, description string)
	RecordError(err error)
	AddEvent(name string, attrs ...Attribute)
}

// StatusCode is the outcome recorded on a span. An incomplete briefing ends
// with StatusError; a superseded one with StatusOK.
type StatusCode int

const (
	StatusUnset StatusCode = iota
	StatusOK
	StatusError
)

// Metrics hands out instruments by name. Names come from semconv.go.
type Metrics interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
}

// Counter counts runs, recovery attempts, failures and tokens.
type Counter interface {
	Add(ctx context.Context, value int64, attrs ...Attribute)
}

// Histogram records run and request durations in seconds.
type Histogram interface {
	Record(ctx context.Context, value float64, attrs ...Attribute)
}

// Logger writes leveled, structured log lines. Each recovered partial is
// logged at Trace so that Debug stays readable during a long stream.
type Logger interface {
	Trace(ctx context.Context, msg string, attrs ...Attribute)
	Debug(ctx context.Context, msg string, attrs ...Attribute)
	Info(ctx context.Context, msg string, attrs ...Attribute)
	Warn(ctx context.Context, msg string, attrs ...Attribute)
	Error(ctx context.Context, msg string, attrs ...Attribute)
}

// Attribute is a key/value pair attached to spans, metrics and log lines.
type Attribute struct {
	Key   string
	Value interface{}
}

func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int(key string, value int) Attribute {
	return Attribute{Key: key, Value: value}
}

// Uint64 is used for session generations.
func Uint64(key string, value uint64) Attribute {
	return Attribute{Key: key, Value: value}
}

func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value}
}

// Error stores err's message under AttrError; a nil err stores "".
func Error(err error) Attribute {
	if err == nil {
		return Attribute{Key: AttrError, Value: ""}
	}
	return Attribute{Key: AttrError, Value: err.Error()}
}
