package openai

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/leofalp/sportsintel/internal/utils"
	"github.com/leofalp/sportsintel/providers/ai"
)

func requestToChatCompletion(request ai.ChatRequest, model string) chatCompletionRequest {
	req := chatCompletionRequest{Model: model}

	if request.SystemPrompt != "" {
		req.Messages = append(req.Messages, chatMessage{Role: string(ai.RoleSystem), Content: request.SystemPrompt})
	}
	for _, msg := range request.Messages {
		req.Messages = append(req.Messages, chatMessage{Role: string(msg.Role), Content: msg.Content})
	}

	if cfg := request.GenerationConfig; cfg != nil {
		if cfg.MaxOutputTokens > 0 {
			req.MaxCompletionTokens = &cfg.MaxOutputTokens
		}
		if cfg.Temperature != 0 {
			req.Temperature = &cfg.Temperature
		}
	}

	if request.HasTool(ai.ToolWebSearch) {
		req.WebSearchOptions = &webSearchOptions{}
	}
	return req
}

func chatCompletionToGeneric(resp chatCompletionResponse) *ai.ChatResponse {
	result := &ai.ChatResponse{
		Id:    resp.ID,
		Model: resp.Model,
		Usage: mapUsage(resp.Usage),
	}
	if len(resp.Choices) == 0 {
		result.FinishReason = "error"
		return result
	}

	choice := resp.Choices[0]
	result.FinishReason = choice.FinishReason
	if choice.Message.Content != nil {
		result.Content = *choice.Message.Content
	}
	result.Grounding = annotationsToGrounding(choice.Message.Annotations)
	return result
}

func mapUsage(usage *chatUsage) *ai.Usage {
	if usage == nil {
		return nil
	}
	return &ai.Usage{
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.CompletionTokens,
		TotalTokens:      usage.TotalTokens,
	}
}

// annotationsToGrounding collects url_citation annotations as sources,
// returning nil when there are none.
func annotationsToGrounding(annotations []annotation) *ai.GroundingMetadata {
	var grounding *ai.GroundingMetadata
	for _, a := range annotations {
		if a.Type != "url_citation" || a.URLCitation == nil || a.URLCitation.URL == "" {
			continue
		}
		if grounding == nil {
			grounding = &ai.GroundingMetadata{}
		}
		grounding.Merge(&ai.GroundingMetadata{
			Sources: []ai.GroundingSource{{Title: a.URLCitation.Title, URI: a.URLCitation.URL}},
		})
	}
	return grounding
}

func wrapError(err error) error {
	var statusErr *utils.StatusError
	if !errors.As(err, &statusErr) {
		return err
	}
	message := statusErr.Body
	var envelope errorEnvelope
	if json.Unmarshal([]byte(statusErr.Body), &envelope) == nil && envelope.Error != nil {
		message = envelope.Error.Message
		if envelope.Error.Param != "" {
			message = fmt.Sprintf("%s (param: %s)", message, envelope.Error.Param)
		}
	}
	return &ai.ProviderError{Provider: providerName, StatusCode: statusErr.StatusCode, Message: message}
}
