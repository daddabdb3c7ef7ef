package ai

/*
	##### PROVIDER INPUT #####
*/

// ChatRequest represents a request to send a chat message
type ChatRequest struct {
	Model            string            `json:"model,omitempty"`             // Model name or identifier
	Messages         []Message         `json:"messages"`                    // All messages in the conversation except the system prompt
	SystemPrompt     string            `json:"system_prompt,omitempty"`     // Optional system prompt
	Tools            []ToolDescription `json:"tools,omitempty"`             // Built-in tools requested for this call
	GenerationConfig *GenerationConfig `json:"generation_config,omitempty"` // Optional generation configuration
}

// ToolDescription names a tool the model may use.
type ToolDescription struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Message represents a single message in a conversation
type Message struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content,omitempty"`
}

type GenerationConfig struct {
	MaxOutputTokens int     `json:"max_output_tokens,omitempty"` // Optional cap on generated tokens
	Temperature     float32 `json:"temperature,omitempty"`       // Sampling temperature [0..2]
}

// HasTool reports whether the request asks for the named tool.
func (request ChatRequest) HasTool(name string) bool {
	for _, tool := range request.Tools {
		if tool.Name == name {
			return true
		}
	}
	return false
}

/*
	##### PROVIDER OUTPUT #####
*/

type Usage struct {
	PromptTokens     int `json:"prompt_tokens,omitempty"`
	CompletionTokens int `json:"completion_tokens,omitempty"`
	TotalTokens      int `json:"total_tokens,omitempty"`
}

// ChatResponse represents the response from a chat completion
type ChatResponse struct {
	Id           string             `json:"id,omitempty"`
	Model        string             `json:"model,omitempty"`
	Content      string             `json:"content"`
	FinishReason string             `json:"finish_reason,omitempty"`
	Usage        *Usage             `json:"usage,omitempty"`
	Grounding    *GroundingMetadata `json:"grounding,omitempty"` // Web sources used by hosted search, if any
}

// GroundingMetadata lists the web sources and queries a hosted search tool
// used while generating a response.
type GroundingMetadata struct {
	Sources       []GroundingSource `json:"sources,omitempty"`
	SearchQueries []string          `json:"search_queries,omitempty"`
}

// GroundingSource is a single cited web page.
type GroundingSource struct {
	Title string `json:"title,omitempty"`
	URI   string `json:"uri"`
}

// Merge appends the sources and queries of other, skipping duplicate URIs
// and queries.
func (metadata *GroundingMetadata) Merge(other *GroundingMetadata) {
	if other == nil {
		return
	}
	seenSources := make(map[string]bool, len(metadata.Sources))
	for _, source := range metadata.Sources {
		seenSources[source.URI] = true
	}
	for _, source := range other.Sources {
		if !seenSources[source.URI] {
			seenSources[source.URI] = true
			metadata.Sources = append(metadata.Sources, source)
		}
	}

	seenQueries := make(map[string]bool, len(metadata.SearchQueries))
	for _, query := range metadata.SearchQueries {
		seenQueries[query] = true
	}
	for _, query := range other.SearchQueries {
		if !seenQueries[query] {
			seenQueries[query] = true
			metadata.SearchQueries = append(metadata.SearchQueries, query)
		}
	}
}

/*
	##### ENUMS #####
*/

// MessageRole represents the role of a message; compatible with string
type MessageRole string

const (
	RoleSystem    MessageRole = "system"    // System instructions/configuration
	RoleUser      MessageRole = "user"      // End-user message
	RoleAssistant MessageRole = "assistant" // Model response
)

// Built-in pseudo-tools. They carry no schema; providers map them onto their
// native hosted tools.
const (
	// ToolWebSearch asks the provider to ground the answer with hosted web search
	// (Gemini googleSearch, OpenAI web_search_options).
	ToolWebSearch = "_web_search"
)
