package ai

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingAPIKey is returned when a provider is used without credentials.
var ErrMissingAPIKey = errors.New("API key is not set")

// ProviderError describes a failure reported by a provider API, either as a
// non-2xx HTTP status or as an error payload inside the stream.
type ProviderError struct {
	Provider   string
	StatusCode int // zero for mid-stream error payloads
	Message    string
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

var searchMarkers = []string{
	"search",
	"grounding",
	"web_search",
	"googlesearch",
}

// SearchRelated reports whether the failure is attributable to the hosted web
// search tool rather than to generation in general.
func (e *ProviderError) SearchRelated() bool {
	message := strings.ToLower(e.Message)
	for _, marker := range searchMarkers {
		if strings.Contains(message, marker) {
			return true
		}
	}
	return false
}
