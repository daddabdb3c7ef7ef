package gemini

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/leofalp/sportsintel/internal/utils"
	"github.com/leofalp/sportsintel/providers/ai"
)

func requestToGemini(request ai.ChatRequest) generateContentRequest {
	req := generateContentRequest{
		Contents: buildContents(request.Messages),
		Tools:    buildTools(request.Tools),
	}

	if request.SystemPrompt != "" {
		req.SystemInstruction = &systemInstruction{Parts: []part{{Text: request.SystemPrompt}}}
	}

	if cfg := request.GenerationConfig; cfg != nil {
		gc := &generationConfig{}
		if cfg.Temperature != 0 {
			gc.Temperature = &cfg.Temperature
		}
		if cfg.MaxOutputTokens > 0 {
			gc.MaxOutputTokens = &cfg.MaxOutputTokens
		}
		if gc.Temperature != nil || gc.MaxOutputTokens != nil {
			req.GenerationConfig = gc
		}
	}

	return req
}

// buildContents maps roles onto Gemini's user/model pair. System messages in
// the history are folded into user turns since Gemini only accepts a single
// systemInstruction.
func buildContents(messages []ai.Message) []content {
	contents := make([]content, 0, len(messages))
	for _, msg := range messages {
		role := "user"
		if msg.Role == ai.RoleAssistant {
			role = "model"
		}
		contents = append(contents, content{Role: role, Parts: []part{{Text: msg.Content}}})
	}
	return contents
}

// buildTools keeps only built-in tools Gemini hosts; anything else is ignored.
func buildTools(tools []ai.ToolDescription) []tool {
	var out []tool
	for _, t := range tools {
		if t.Name == ai.ToolWebSearch {
			out = append(out, tool{GoogleSearch: &googleSearchTool{}})
		}
	}
	return out
}

func geminiToGeneric(resp generateContentResponse) *ai.ChatResponse {
	result := &ai.ChatResponse{
		Id:    resp.ResponseID,
		Model: resp.ModelVersion,
		Usage: mapUsage(resp.UsageMetadata),
	}

	if len(resp.Candidates) == 0 {
		result.FinishReason = "error"
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			result.FinishReason = "content_filter"
		}
		return result
	}

	candidate := resp.Candidates[0]
	result.FinishReason = mapFinishReason(candidate.FinishReason)
	result.Content = candidateText(candidate)
	result.Grounding = mapGroundingMetadata(candidate.GroundingMetadata)
	return result
}

// candidateText joins the answer parts, skipping thought summaries.
func candidateText(c candidate) string {
	if c.Content == nil {
		return ""
	}
	var texts []string
	for _, p := range c.Content.Parts {
		if p.Text != "" && !p.Thought {
			texts = append(texts, p.Text)
		}
	}
	return strings.Join(texts, "")
}

func mapUsage(usage *usageMetadata) *ai.Usage {
	if usage == nil {
		return nil
	}
	return &ai.Usage{
		PromptTokens:     usage.PromptTokenCount,
		CompletionTokens: usage.CandidatesTokenCount,
		TotalTokens:      usage.TotalTokenCount,
	}
}

func mapFinishReason(reason string) string {
	switch reason {
	case "":
		return ""
	case "MAX_TOKENS":
		return "length"
	case "SAFETY", "RECITATION", "BLOCKLIST", "PROHIBITED_CONTENT", "SPII":
		return "content_filter"
	default:
		return "stop"
	}
}

// mapGroundingMetadata returns nil when search contributed nothing.
func mapGroundingMetadata(gm *groundingMetadata) *ai.GroundingMetadata {
	if gm == nil {
		return nil
	}
	result := &ai.GroundingMetadata{SearchQueries: gm.WebSearchQueries}
	for _, chunk := range gm.GroundingChunks {
		if chunk.Web != nil && chunk.Web.URI != "" {
			result.Sources = append(result.Sources, ai.GroundingSource{Title: chunk.Web.Title, URI: chunk.Web.URI})
		}
	}
	if len(result.Sources) == 0 && len(result.SearchQueries) == 0 {
		return nil
	}
	return result
}

// wrapError turns a transport status error into an *ai.ProviderError carrying
// the message from Gemini's error envelope when there is one.
func wrapError(err error) error {
	var statusErr *utils.StatusError
	if !errors.As(err, &statusErr) {
		return err
	}
	message := statusErr.Body
	var envelope errorEnvelope
	if json.Unmarshal([]byte(statusErr.Body), &envelope) == nil && envelope.Error != nil {
		message = envelope.Error.Message
	}
	return &ai.ProviderError{Provider: providerName, StatusCode: statusErr.StatusCode, Message: message}
}
