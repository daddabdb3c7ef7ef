package client

import (
	"context"
	"time"

	"github.com/leofalp/sportsintel/internal/utils"
	"github.com/leofalp/sportsintel/providers/ai"
	"github.com/leofalp/sportsintel/providers/observability"
)

// NewObservabilityMiddleware traces every provider call. The span and the
// observer are put on the context so providers can enrich them. For streams
// the span stays open until the stream ends, fails or is abandoned.
func NewObservabilityMiddleware(observer observability.Provider, defaultModel string) MiddlewareConfig {
	return MiddlewareConfig{
		Send:   buildObsSend(observer, defaultModel),
		Stream: buildObsStream(observer, defaultModel),
	}
}

func buildObsSend(observer observability.Provider, defaultModel string) Middleware {
	return func(next SendFunc) SendFunc {
		return func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
			model := effectiveModel(request.Model, defaultModel)
			ctx, span := startCallSpan(ctx, observer, request, model)

			start := time.Now()
			response, err := next(ctx, request)
			if err != nil {
				recordObsFailure(ctx, span, observer, err, time.Since(start), model)
				return nil, err
			}

			recordObsSuccess(ctx, span, observer, response, time.Since(start), model)
			return response, nil
		}
	}
}

func buildObsStream(observer observability.Provider, defaultModel string) StreamMiddleware {
	return func(next StreamFunc) StreamFunc {
		return func(ctx context.Context, request ai.ChatRequest) (*ai.ChatStream, error) {
			model := effectiveModel(request.Model, defaultModel)
			ctx, span := startCallSpan(ctx, observer, request, model)

			start := time.Now()
			stream, err := next(ctx, request)
			if err != nil {
				recordObsFailure(ctx, span, observer, err, time.Since(start), model)
				return nil, err
			}
			return wrapStreamWithObservability(ctx, stream, span, observer, start, model), nil
		}
	}
}

func startCallSpan(ctx context.Context, observer observability.Provider, request ai.ChatRequest, model string) (context.Context, observability.Span) {
	ctx, span := observer.StartSpan(ctx, observability.SpanLLMStream,
		observability.String(observability.AttrLLMModel, model),
	)
	ctx = observability.ContextWithSpan(ctx, span)
	ctx = observability.ContextWithObserver(ctx, observer)

	observer.Debug(ctx, "llm request",
		observability.String(observability.AttrLLMModel, model),
		observability.Bool(observability.AttrLLMWebSearch, request.HasTool(ai.ToolWebSearch)),
	)
	return ctx, span
}

// wrapStreamWithObservability passes every event through unchanged and
// accumulates what the completion record needs.
func wrapStreamWithObservability(
	ctx context.Context,
	stream *ai.ChatStream,
	span observability.Span,
	observer observability.Provider,
	start time.Time,
	model string,
) *ai.ChatStream {
	iterator := func(yield func(ai.StreamEvent, error) bool) {
		var accumulator ai.StreamAccumulator

		for event, err := range stream.Iter() {
			if err != nil {
				recordObsFailure(ctx, span, observer, err, time.Since(start), model)
				yield(event, err)
				return
			}

			accumulator.Add(event)
			if !yield(event, nil) {
				span.SetStatus(observability.StatusOK, "llm stream abandoned")
				span.End()
				observer.Debug(ctx, "llm stream abandoned",
					observability.String(observability.AttrLLMModel, model),
					observability.Duration(observability.AttrDuration, time.Since(start)),
				)
				return
			}
		}

		summary := accumulator.Response()
		summary.Model = model
		span.SetAttributes(observability.Int(observability.AttrBriefingBufferLength, len(summary.Content)))
		recordObsSuccess(ctx, span, observer, summary, time.Since(start), model)
	}

	return ai.NewChatStream(iterator)
}

func recordObsFailure(ctx context.Context, span observability.Span, observer observability.Provider, err error, elapsed time.Duration, model string) {
	span.RecordError(err)
	span.SetStatus(observability.StatusError, "llm call failed")
	span.End()

	observer.Warn(ctx, "llm call failed",
		observability.Error(err),
		observability.Duration(observability.AttrDuration, elapsed),
		observability.String(observability.AttrLLMModel, model),
	)
	observer.Counter(observability.MetricLLMRequests).Add(ctx, 1,
		observability.String(observability.AttrStatus, "error"),
		observability.String(observability.AttrLLMModel, model),
	)
}

func recordObsSuccess(ctx context.Context, span observability.Span, observer observability.Provider, response *ai.ChatResponse, elapsed time.Duration, model string) {
	observer.Histogram(observability.MetricLLMDuration).Record(ctx, elapsed.Seconds(),
		observability.String(observability.AttrLLMModel, model),
	)
	observer.Counter(observability.MetricLLMRequests).Add(ctx, 1,
		observability.String(observability.AttrStatus, "success"),
		observability.String(observability.AttrLLMModel, model),
	)

	attrs := []observability.Attribute{
		observability.String(observability.AttrLLMModel, model),
		observability.String(observability.AttrLLMFinishReason, response.FinishReason),
		observability.Duration(observability.AttrDuration, elapsed),
	}
	if response.Usage != nil {
		observer.Counter(observability.MetricLLMTokens).Add(ctx, int64(response.Usage.TotalTokens),
			observability.String(observability.AttrLLMModel, model),
		)
		span.SetAttributes(observability.Int(observability.AttrLLMTokensTotal, response.Usage.TotalTokens))
		attrs = append(attrs, observability.Int(observability.AttrLLMTokensTotal, response.Usage.TotalTokens))
	}
	if response.Grounding != nil {
		attrs = append(attrs, observability.Int(observability.AttrLLMGroundingSources, len(response.Grounding.Sources)))
	}
	if response.Content != "" {
		attrs = append(attrs, observability.String("response", utils.TruncateString(response.Content, 100)))
	}

	observer.Debug(ctx, "llm call completed", attrs...)

	span.SetStatus(observability.StatusOK, "success")
	span.End()
}

// effectiveModel falls back to the client default; both empty lets the
// provider choose.
func effectiveModel(requestModel, defaultModel string) string {
	if requestModel != "" {
		return requestModel
	}
	return defaultModel
}
