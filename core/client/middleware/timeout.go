package middleware

import (
	"context"
	"time"

	"github.com/leofalp/sportsintel/core/client"
	"github.com/leofalp/sportsintel/providers/ai"
)

// NewTimeoutMiddleware caps how long a briefing may take. Search-grounded
// answers can stall for a long time before the first token and then stream
// for a minute more, so for streams the deadline covers the whole answer and
// not only the connect. It ends when the stream finishes, fails or is
// abandoned by the session.
//
// A run cut off by the deadline surfaces as a *briefing.TransportError
// wrapping context.DeadlineExceeded; partials already delivered stay valid.
// A shorter deadline on the caller's context still applies.
func NewTimeoutMiddleware(timeout time.Duration) client.MiddlewareConfig {
	return client.MiddlewareConfig{
		Send:   sendWithTimeout(timeout),
		Stream: streamWithTimeout(timeout),
	}
}

func sendWithTimeout(timeout time.Duration) client.Middleware {
	return func(next client.SendFunc) client.SendFunc {
		return func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			return next(ctx, request)
		}
	}
}

func streamWithTimeout(timeout time.Duration) client.StreamMiddleware {
	return func(next client.StreamFunc) client.StreamFunc {
		return func(ctx context.Context, request ai.ChatRequest) (*ai.ChatStream, error) {
			ctx, cancel := context.WithTimeout(ctx, timeout)

			stream, err := next(ctx, request)
			if err != nil {
				cancel()
				return nil, err
			}
			return releaseOnEnd(stream, cancel), nil
		}
	}
}

// releaseOnEnd passes events through and calls cancel once the consumer is
// done with the stream, whichever way that happens.
func releaseOnEnd(stream *ai.ChatStream, cancel context.CancelFunc) *ai.ChatStream {
	return ai.NewChatStream(func(yield func(ai.StreamEvent, error) bool) {
		defer cancel()
		for event, err := range stream.Iter() {
			if !yield(event, err) || err != nil {
				return
			}
		}
	})
}
