package observability

import (
	"context"
	"testing"
)

type mockSpan struct {
	name string
}

func (s *mockSpan) End() {}

func (s *mockSpan) SetAttributes(attrs ...Attribute) {}

func (s *mockSpan) SetStatus(code StatusCode, description string) {}

func (s *mockSpan) RecordError(err error) {}

func (s *mockSpan) AddEvent(name string, attrs ...Attribute) {}

type mockObserver struct{}

func (o *mockObserver) StartSpan(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span) {
	return ctx, &mockSpan{name: name}
}

func (o *mockObserver) Counter(name string) Counter {
	return nil
}

func (o *mockObserver) Histogram(name string) Histogram {
	return nil
}

func (o *mockObserver) Trace(ctx context.Context, msg string, attrs ...Attribute) {}

func (o *mockObserver) Debug(ctx context.Context, msg string, attrs ...Attribute) {}

func (o *mockObserver) Info(ctx context.Context, msg string, attrs ...Attribute) {}

func (o *mockObserver) Warn(ctx context.Context, msg string, attrs ...Attribute) {}

func (o *mockObserver) Error(ctx context.Context, msg string, attrs ...Attribute) {}

func TestSpanFromContext_Empty(t *testing.T) {
	if span := SpanFromContext(context.Background()); span != nil {
		t.Errorf("Expected nil span from empty context, got %v", span)
	}
}

func TestSpanFromContext_WithSpan(t *testing.T) {
	mock := &mockSpan{name: "test-span"}
	ctx := ContextWithSpan(context.Background(), mock)

	span := SpanFromContext(ctx)
	if span != mock {
		t.Errorf("Expected same span instance, got %v", span)
	}
}

func TestObserverFromContext(t *testing.T) {
	if observer := ObserverFromContext(context.Background()); observer != nil {
		t.Errorf("Expected nil observer from empty context, got %v", observer)
	}

	mock := &mockObserver{}
	ctx := ContextWithObserver(context.Background(), mock)
	if observer := ObserverFromContext(ctx); observer != mock {
		t.Errorf("Expected same observer instance, got %v", observer)
	}

	// Span and observer keys must not collide
	if span := SpanFromContext(ctx); span != nil {
		t.Errorf("Expected no span in observer-only context, got %v", span)
	}
}
