package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/leofalp/sportsintel/providers/ai"
)

// writeSSE writes one SSE data line and flushes it.
func writeSSE(writer http.ResponseWriter, data string) {
	fmt.Fprintf(writer, "data: %s\n\n", data)
	if flusher, ok := writer.(http.Flusher); ok {
		flusher.Flush()
	}
}

func sseServer(t *testing.T, chunks ...string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, ":streamGenerateContent") || r.URL.Query().Get("alt") != "sse" {
			t.Errorf("unexpected URL %s", r.URL)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		for _, chunk := range chunks {
			writeSSE(w, chunk)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func streamRequest() ai.ChatRequest {
	return ai.ChatRequest{
		Messages: []ai.Message{{Role: ai.RoleUser, Content: "Hi"}},
		Tools:    []ai.ToolDescription{{Name: ai.ToolWebSearch}},
	}
}

func TestGeminiStreamMessage_CumulativeChunks(t *testing.T) {
	server := sseServer(t,
		`{"candidates":[{"content":{"parts":[{"text":"{\"summ"}],"role":"model"}}]}`,
		`{"candidates":[{"content":{"parts":[{"text":"{\"summary\":"}],"role":"model"}}]}`,
		`{"candidates":[{"content":{"parts":[{"text":"{\"summary\":\"x\"}"}],"role":"model"},"finishReason":"STOP"}],"usageMetadata":{"promptTokenCount":5,"candidatesTokenCount":3,"totalTokenCount":8}}`,
	)

	stream, err := newTestProvider(server.URL).StreamMessage(context.Background(), streamRequest())
	if err != nil {
		t.Fatalf("StreamMessage() error = %v", err)
	}

	var deltas []string
	for event, err := range stream.Iter() {
		if err != nil {
			t.Fatalf("stream error: %v", err)
		}
		if event.Type == ai.StreamEventContent {
			deltas = append(deltas, event.Content)
		}
	}

	want := []string{`{"summ`, `ary":`, `"x"}`}
	if strings.Join(deltas, "|") != strings.Join(want, "|") {
		t.Errorf("deltas = %q, want %q", deltas, want)
	}
}

func TestGeminiStreamMessage_DeltaChunks(t *testing.T) {
	server := sseServer(t,
		`{"candidates":[{"content":{"parts":[{"text":"Hello"}]}}]}`,
		`{"candidates":[{"content":{"parts":[{"text":" world"}]}}]}`,
		`{"candidates":[{"content":{"parts":[{"text":"!"}]},"finishReason":"STOP","groundingMetadata":{"groundingChunks":[{"web":{"uri":"https://nba.com","title":"nba.com"}}]}}],"usageMetadata":{"totalTokenCount":8}}`,
	)

	stream, err := newTestProvider(server.URL).StreamMessage(context.Background(), streamRequest())
	if err != nil {
		t.Fatalf("StreamMessage() error = %v", err)
	}
	response, err := stream.Collect()
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	if response.Content != "Hello world!" {
		t.Errorf("Content = %q", response.Content)
	}
	if response.FinishReason != "stop" {
		t.Errorf("FinishReason = %q", response.FinishReason)
	}
	if response.Usage == nil || response.Usage.TotalTokens != 8 {
		t.Errorf("Usage = %+v", response.Usage)
	}
	if response.Grounding == nil || response.Grounding.Sources[0].URI != "https://nba.com" {
		t.Errorf("Grounding = %+v", response.Grounding)
	}
}

func TestGeminiStreamMessage_InStreamError(t *testing.T) {
	server := sseServer(t,
		`{"candidates":[{"content":{"parts":[{"text":"{"}]}}]}`,
		`{"error":{"code":503,"message":"The model is overloaded.","status":"UNAVAILABLE"}}`,
	)

	stream, err := newTestProvider(server.URL).StreamMessage(context.Background(), streamRequest())
	if err != nil {
		t.Fatalf("StreamMessage() error = %v", err)
	}
	response, err := stream.Collect()

	var providerErr *ai.ProviderError
	if !errors.As(err, &providerErr) || providerErr.StatusCode != 503 {
		t.Fatalf("error = %v, want ProviderError 503", err)
	}
	if response.Content != "{" {
		t.Errorf("partial content = %q", response.Content)
	}
}

func TestGeminiStreamMessage_DeltaRepeatingPrefix(t *testing.T) {
	server := sseServer(t,
		`{"candidates":[{"content":{"parts":[{"text":"{\"a\":"}]}}]}`,
		`{"candidates":[{"content":{"parts":[{"text":"1,"}]}}]}`,
		`{"candidates":[{"content":{"parts":[{"text":"{\"a\":1,\"b\":2}"}]},"finishReason":"STOP"}]}`,
	)

	stream, err := newTestProvider(server.URL).StreamMessage(context.Background(), streamRequest())
	if err != nil {
		t.Fatalf("StreamMessage() error = %v", err)
	}
	response, err := stream.Collect()
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if want := `{"a":1,{"a":1,"b":2}`; response.Content != want {
		t.Errorf("Content = %q, want %q", response.Content, want)
	}
}

func TestGeminiStreamMessage_ErrorEvent(t *testing.T) {
	tests := []struct {
		name       string
		payload    string
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "json envelope",
			payload:    `{"error":{"code":429,"message":"Resource exhausted","status":"RESOURCE_EXHAUSTED"}}`,
			wantStatus: 429,
			wantMsg:    "Resource exhausted",
		},
		{
			name:    "plain text",
			payload: "backend closed the stream",
			wantMsg: "backend closed the stream",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/event-stream")
				writeSSE(w, `{"candidates":[{"content":{"parts":[{"text":"{"}]}}]}`)
				fmt.Fprintf(w, "event: error\ndata: %s\n\n", tt.payload)
			}))
			defer server.Close()

			stream, err := newTestProvider(server.URL).StreamMessage(context.Background(), streamRequest())
			if err != nil {
				t.Fatalf("StreamMessage() error = %v", err)
			}
			response, err := stream.Collect()

			var providerErr *ai.ProviderError
			if !errors.As(err, &providerErr) {
				t.Fatalf("error = %v, want ProviderError", err)
			}
			if providerErr.StatusCode != tt.wantStatus || providerErr.Message != tt.wantMsg {
				t.Errorf("ProviderError = %+v", providerErr)
			}
			if response.Content != "{" {
				t.Errorf("partial content = %q", response.Content)
			}
		})
	}
}

func TestGeminiStreamMessage_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error":{"code":403,"message":"API key not valid."}}`)
	}))
	defer server.Close()

	_, err := newTestProvider(server.URL).StreamMessage(context.Background(), streamRequest())
	var providerErr *ai.ProviderError
	if !errors.As(err, &providerErr) || providerErr.StatusCode != http.StatusForbidden {
		t.Fatalf("error = %v, want ProviderError 403", err)
	}
	if providerErr.SearchRelated() {
		t.Error("auth failure should not be search related")
	}
}

func TestGeminiStreamMessage_MalformedChunk(t *testing.T) {
	server := sseServer(t, `{not json`)

	stream, err := newTestProvider(server.URL).StreamMessage(context.Background(), streamRequest())
	if err != nil {
		t.Fatalf("StreamMessage() error = %v", err)
	}
	if _, err := stream.Collect(); err == nil || !strings.Contains(err.Error(), "streaming chunk") {
		t.Errorf("error = %v, want parse error", err)
	}
}

func TestGeminiStreamMessage_EarlyBreak(t *testing.T) {
	server := sseServer(t,
		`{"candidates":[{"content":{"parts":[{"text":"a"}]}}]}`,
		`{"candidates":[{"content":{"parts":[{"text":"b"}]}}]}`,
	)

	stream, err := newTestProvider(server.URL).StreamMessage(context.Background(), streamRequest())
	if err != nil {
		t.Fatalf("StreamMessage() error = %v", err)
	}
	count := 0
	for range stream.Iter() {
		count++
		break
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}
