package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/leofalp/sportsintel/internal/utils"
	"github.com/leofalp/sportsintel/providers/ai"
)

// StreamMessage calls streamGenerateContent with alt=sse. Every SSE event is a
// complete generateContentResponse; text is turned into deltas by
// textTracker, and grounding arrives with the last chunks.
func (p *GeminiProvider) StreamMessage(ctx context.Context, request ai.ChatRequest) (*ai.ChatStream, error) {
	model := p.prepare(ctx, request, true)
	if p.apiKey == "" {
		return nil, fmt.Errorf("%s: %w (set GEMINI_API_KEY)", providerName, ai.ErrMissingAPIKey)
	}

	url := fmt.Sprintf("%s/models/%s:streamGenerateContent?alt=sse", p.baseURL, model)
	httpResponse, err := utils.DoPostStream(
		ctx,
		p.client,
		url,
		"",
		requestToGemini(request),
		utils.HeaderOption{Key: "x-goog-api-key", Value: p.apiKey},
	)
	if err != nil {
		return nil, wrapError(err)
	}

	scanner := utils.NewSSEScanner(httpResponse.Body)

	iterator := func(yield func(ai.StreamEvent, error) bool) {
		defer utils.CloseWithLog(httpResponse.Body)

		var tracker textTracker
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

			var chunk generateContentResponse
			if scanner.Event() == "error" {
				chunk.Error = errorFromEvent(payload)
			} else if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
				yield(ai.StreamEvent{}, fmt.Errorf("failed to parse Gemini streaming chunk: %w", err))
				return
			}
			if chunk.Error != nil {
				providerErr := &ai.ProviderError{Provider: providerName, StatusCode: chunk.Error.Code, Message: chunk.Error.Message}
				if yield(ai.StreamEvent{Type: ai.StreamEventError, Error: providerErr.Error()}, nil) {
					yield(ai.StreamEvent{}, providerErr)
				}
				return
			}

			for _, event := range chunkToStreamEvents(&chunk, &tracker) {
				if !yield(event, nil) {
					return
				}
			}
		}
	}

	return ai.NewChatStream(iterator), nil
}

// errorFromEvent reads the payload of an "event: error" frame, which is either
// a JSON error envelope or bare text.
func errorFromEvent(payload string) *apiError {
	var envelope errorEnvelope
	if err := json.Unmarshal([]byte(payload), &envelope); err == nil && envelope.Error != nil {
		return envelope.Error
	}
	return &apiError{Message: strings.TrimSpace(payload)}
}

// textTracker accepts both chunk styles Gemini has used: cumulative text,
// where each chunk repeats everything so far, and plain deltas. The style is
// fixed by the first two non-empty chunks: cumulative when the second starts
// with the first, delta otherwise.
type textTracker struct {
	mode textMode
	seen string // text so far; only kept while undecided or cumulative
}

type textMode int

const (
	modeUndecided textMode = iota
	modeCumulative
	modeDelta
)

func (t *textTracker) delta(text string) string {
	if text == "" {
		return ""
	}

	switch t.mode {
	case modeDelta:
		return text
	case modeCumulative:
		if !strings.HasPrefix(text, t.seen) {
			// A rewrite of earlier text; append it rather than lose it.
			t.seen += text
			return text
		}
		delta := text[len(t.seen):]
		t.seen = text
		return delta
	}

	if t.seen == "" {
		t.seen = text
		return text
	}
	if strings.HasPrefix(text, t.seen) {
		t.mode = modeCumulative
		delta := text[len(t.seen):]
		t.seen = text
		return delta
	}
	t.mode = modeDelta
	t.seen = ""
	return text
}

func chunkToStreamEvents(chunk *generateContentResponse, tracker *textTracker) []ai.StreamEvent {
	var events []ai.StreamEvent

	if len(chunk.Candidates) == 0 {
		if chunk.PromptFeedback != nil && chunk.PromptFeedback.BlockReason != "" {
			events = append(events, ai.StreamEvent{Type: ai.StreamEventDone, FinishReason: "content_filter"})
		}
		return events
	}

	candidate := chunk.Candidates[0]
	if delta := tracker.delta(candidateText(candidate)); delta != "" {
		events = append(events, ai.StreamEvent{Type: ai.StreamEventContent, Content: delta})
	}
	if grounding := mapGroundingMetadata(candidate.GroundingMetadata); grounding != nil {
		events = append(events, ai.StreamEvent{Type: ai.StreamEventGrounding, Grounding: grounding})
	}
	if usage := mapUsage(chunk.UsageMetadata); usage != nil && candidate.FinishReason != "" {
		events = append(events, ai.StreamEvent{Type: ai.StreamEventUsage, Usage: usage})
	}
	if candidate.FinishReason != "" {
		events = append(events, ai.StreamEvent{Type: ai.StreamEventDone, FinishReason: mapFinishReason(candidate.FinishReason)})
	}
	return events
}
