package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/leofalp/sportsintel/internal/utils"
	"github.com/leofalp/sportsintel/providers/ai"
)

// StreamMessage posts a chat completion with stream=true and usage reporting
// enabled, yielding content deltas as SSE chunks arrive.
func (p *OpenAIProvider) StreamMessage(ctx context.Context, request ai.ChatRequest) (*ai.ChatStream, error) {
	model := p.prepare(ctx, request, true)
	if p.apiKey == "" {
		return nil, fmt.Errorf("%s: %w (set OPENAI_API_KEY)", providerName, ai.ErrMissingAPIKey)
	}

	chatRequest := requestToChatCompletion(request, model)
	chatRequest.Stream = true
	chatRequest.StreamOptions = &streamOptions{IncludeUsage: true}

	httpResponse, err := utils.DoPostStream(ctx, p.client, p.baseURL+chatCompletionsEndpoint, p.apiKey, chatRequest)
	if err != nil {
		return nil, wrapError(err)
	}

	scanner := utils.NewSSEScanner(httpResponse.Body)

	iterator := func(yield func(ai.StreamEvent, error) bool) {
		defer utils.CloseWithLog(httpResponse.Body)

		for {
			if ctx.Err() != nil {
				yield(ai.StreamEvent{}, ctx.Err())
				return
			}

			payload, err := scanner.Next()
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(ai.StreamEvent{}, fmt.Errorf("SSE read error: %w", err))
				return
			}

			var chunk chatCompletionStreamChunk
			if scanner.Event() == "error" {
				chunk.Error = errorFromEvent(payload)
			} else if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
				yield(ai.StreamEvent{}, fmt.Errorf("failed to parse streaming chunk: %w", err))
				return
			}
			if chunk.Error != nil {
				providerErr := &ai.ProviderError{Provider: providerName, Message: chunk.Error.Message}
				if yield(ai.StreamEvent{Type: ai.StreamEventError, Error: providerErr.Error()}, nil) {
					yield(ai.StreamEvent{}, providerErr)
				}
				return
			}

			for _, event := range chunkToStreamEvents(&chunk) {
				if !yield(event, nil) {
					return
				}
			}
		}
	}

	return ai.NewChatStream(iterator), nil
}

// errorFromEvent reads the payload of an "event: error" frame. Some
// compatible servers send a JSON envelope there, others plain text.
func errorFromEvent(payload string) *apiError {
	var envelope errorEnvelope
	if err := json.Unmarshal([]byte(payload), &envelope); err == nil && envelope.Error != nil {
		return envelope.Error
	}
	return &apiError{Message: strings.TrimSpace(payload)}
}

// chunkToStreamEvents converts one chunk; only the first choice is used.
// The usage chunk has no choices and comes after the finish reason.
func chunkToStreamEvents(chunk *chatCompletionStreamChunk) []ai.StreamEvent {
	var events []ai.StreamEvent

	for _, choice := range chunk.Choices {
		if choice.Index != 0 {
			continue
		}
		if content := choice.Delta.Content; content != nil && *content != "" {
			events = append(events, ai.StreamEvent{Type: ai.StreamEventContent, Content: *content})
		}
		if grounding := annotationsToGrounding(choice.Delta.Annotations); grounding != nil {
			events = append(events, ai.StreamEvent{Type: ai.StreamEventGrounding, Grounding: grounding})
		}
		if reason := choice.FinishReason; reason != nil && *reason != "" {
			events = append(events, ai.StreamEvent{Type: ai.StreamEventDone, FinishReason: *reason})
		}
	}

	if usage := mapUsage(chunk.Usage); usage != nil {
		events = append(events, ai.StreamEvent{Type: ai.StreamEventUsage, Usage: usage})
	}
	return events
}
