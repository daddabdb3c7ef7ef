package ai

import (
	"iter"
	"strings"
)

// StreamEventType identifies the kind of delta carried by a StreamEvent.
type StreamEventType string

const (
	// StreamEventContent indicates a text content delta.
	StreamEventContent StreamEventType = "content"
	// StreamEventGrounding carries web sources reported by a hosted search tool.
	StreamEventGrounding StreamEventType = "grounding"
	// StreamEventUsage carries token usage metadata (typically the final event).
	StreamEventUsage StreamEventType = "usage"
	// StreamEventDone signals that the stream has finished normally.
	StreamEventDone StreamEventType = "done"
	// StreamEventError signals an error that terminated the stream.
	StreamEventError StreamEventType = "error"
)

// StreamEvent represents a single delta yielded during LLM response streaming.
// Each event carries exactly one type of payload, identified by the Type field.
type StreamEvent struct {
	Type         StreamEventType    `json:"type"`
	Content      string             `json:"content,omitempty"`       // Text delta (Type == StreamEventContent)
	Grounding    *GroundingMetadata `json:"grounding,omitempty"`     // Sources (Type == StreamEventGrounding)
	Usage        *Usage             `json:"usage,omitempty"`         // Token usage (Type == StreamEventUsage)
	FinishReason string             `json:"finish_reason,omitempty"` // Present on StreamEventDone
	Error        string             `json:"error,omitempty"`         // Error message (Type == StreamEventError)
}

// ChatStream wraps a streaming iterator and provides automatic accumulation
// of deltas into a final ChatResponse.
//
// Important: callers must consume the stream, either by iterating with Iter()
// (including breaking out of the loop early) or by calling Collect(). The
// underlying provider holds the HTTP response body open until the iterator
// completes or is abandoned via a loop break.
type ChatStream struct {
	iterator iter.Seq2[StreamEvent, error]
}

// NewChatStream creates a ChatStream from a raw streaming iterator.
// The iterator yields StreamEvent values with a nil error for normal deltas,
// and may yield a non-nil error to signal a mid-stream failure.
func NewChatStream(iterator iter.Seq2[StreamEvent, error]) *ChatStream {
	return &ChatStream{iterator: iterator}
}

// NewSingleEventStream wraps a synchronous ChatResponse as a single-event stream.
// This is used as a fallback when the provider does not support streaming: the
// entire response is delivered as one content event followed by a done event.
func NewSingleEventStream(response *ChatResponse) *ChatStream {
	iteratorFunc := func(yield func(StreamEvent, error) bool) {
		if response.Content != "" {
			if !yield(StreamEvent{Type: StreamEventContent, Content: response.Content}, nil) {
				return
			}
		}

		if response.Grounding != nil {
			if !yield(StreamEvent{Type: StreamEventGrounding, Grounding: response.Grounding}, nil) {
				return
			}
		}

		if response.Usage != nil {
			if !yield(StreamEvent{Type: StreamEventUsage, Usage: response.Usage}, nil) {
				return
			}
		}

		yield(StreamEvent{Type: StreamEventDone, FinishReason: response.FinishReason}, nil)
	}

	return NewChatStream(iteratorFunc)
}

// Iter returns the underlying iterator for use with range-over-func loops.
//
// Example:
//
//	for event, err := range stream.Iter() {
//	    if err != nil { handle error }
//	    fmt.Print(event.Content)
//	}
func (stream *ChatStream) Iter() iter.Seq2[StreamEvent, error] {
	return stream.iterator
}

// Collect consumes the entire stream and returns the accumulated ChatResponse.
// Any mid-stream error terminates collection and returns a partial response with the error.
func (stream *ChatStream) Collect() (*ChatResponse, error) {
	var accumulator StreamAccumulator
	for event, err := range stream.iterator {
		if err != nil {
			return accumulator.Response(), err
		}
		accumulator.Add(event)
	}
	return accumulator.Response(), nil
}

// StreamAccumulator folds stream events into a ChatResponse. Wrappers that
// pass events through use it to build a summary without consuming the
// stream themselves. The zero value is ready to use.
type StreamAccumulator struct {
	content strings.Builder
	summary ChatResponse
}

// Add folds one event into the accumulated response.
func (a *StreamAccumulator) Add(event StreamEvent) {
	switch event.Type {
	case StreamEventContent:
		a.content.WriteString(event.Content)

	case StreamEventGrounding:
		if event.Grounding != nil {
			if a.summary.Grounding == nil {
				a.summary.Grounding = &GroundingMetadata{}
			}
			a.summary.Grounding.Merge(event.Grounding)
		}

	case StreamEventUsage:
		if event.Usage != nil {
			a.summary.Usage = event.Usage
		}

	case StreamEventDone:
		a.summary.FinishReason = event.FinishReason

	case StreamEventError:
		// Informational; the terminating error arrives through the iterator's error value
	}
}

// Response returns a snapshot of everything added so far.
func (a *StreamAccumulator) Response() *ChatResponse {
	response := a.summary
	response.Content = a.content.String()
	return &response
}
