package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/leofalp/sportsintel/providers/observability"
)

// maxResponseBodySize caps how much of a response body is buffered (10 MB).
const maxResponseBodySize int64 = 10 * 1024 * 1024

// maxErrorBodySize caps how much of a non-2xx body is kept for the error.
const maxErrorBodySize int64 = 64 * 1024

// HeaderOption is an extra request header. Headers are applied after the
// defaults, so they can replace Authorization.
type HeaderOption struct {
	Key   string
	Value string
}

// StatusError is returned for non-2xx responses. Body holds the start of the
// response body, which providers usually parse for their own error payload.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("non-2xx status %d: %s", e.StatusCode, TruncateString(e.Body, DefaultMaxStringLength))
}

// DoPostSync POSTs body as JSON and decodes a 2xx response into Output.
// The response body is always closed before returning.
func DoPostSync[Output any](ctx context.Context, client *http.Client, url string, apiKey string, body any, headers ...HeaderOption) (*http.Response, *Output, error) {
	res, duration, err := doPost(ctx, client, url, apiKey, body, "application/json", headers)
	if err != nil {
		return res, nil, err
	}
	defer CloseWithLog(res.Body)

	if err := checkStatus(res); err != nil {
		return res, nil, err
	}

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBodySize))
	if err != nil {
		return res, nil, fmt.Errorf("error reading response body: %w", err)
	}

	if span := observability.SpanFromContext(ctx); span != nil {
		span.AddEvent("http.response.received",
			observability.Int(observability.AttrHTTPStatusCode, res.StatusCode),
			observability.Duration("http.request.duration", duration),
		)
	}

	var output Output
	if err := json.Unmarshal(raw, &output); err != nil {
		return res, nil, fmt.Errorf("error decoding response body (status %d): %w; body: %s", res.StatusCode, err, TruncateString(string(raw), DefaultMaxStringLength))
	}
	return res, &output, nil
}

// DoPostStream POSTs body as JSON asking for an event stream and returns the
// response with its body open. The caller closes the body. For non-2xx
// responses the body is drained and closed and a *StatusError is returned.
func DoPostStream(ctx context.Context, client *http.Client, url string, apiKey string, body any, headers ...HeaderOption) (*http.Response, error) {
	res, duration, err := doPost(ctx, client, url, apiKey, body, "text/event-stream", headers)
	if err != nil {
		return res, err
	}

	if err := checkStatus(res); err != nil {
		CloseWithLog(res.Body)
		return res, err
	}

	if span := observability.SpanFromContext(ctx); span != nil {
		span.AddEvent("http.stream_response.started",
			observability.Int(observability.AttrHTTPStatusCode, res.StatusCode),
			observability.Duration("http.request.duration", duration),
		)
	}
	return res, nil
}

func doPost(ctx context.Context, client *http.Client, url, apiKey string, body any, accept string, headers []HeaderOption) (*http.Response, time.Duration, error) {
	if client == nil {
		client = http.DefaultClient
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, 0, fmt.Errorf("error marshaling body: %w", err)
	}

	span := observability.SpanFromContext(ctx)
	if span != nil {
		span.AddEvent("http.request.prepared",
			observability.String(observability.AttrHTTPMethod, http.MethodPost),
			observability.String(observability.AttrHTTPURL, url),
			observability.Int(observability.AttrHTTPRequestBodySize, len(payload)),
		)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, 0, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", accept)
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}
	for _, header := range headers {
		req.Header.Set(header.Key, header.Value)
	}

	start := time.Now()
	res, err := client.Do(req)
	duration := time.Since(start)
	if err != nil {
		if span != nil {
			span.AddEvent("http.request.error",
				observability.Error(err),
				observability.Duration("http.request.duration", duration),
			)
		}
		return nil, duration, fmt.Errorf("error sending request: %w", err)
	}
	return res, duration, nil
}

func checkStatus(res *http.Response) error {
	if res.StatusCode >= 200 && res.StatusCode < 300 {
		return nil
	}
	raw, err := io.ReadAll(io.LimitReader(res.Body, maxErrorBodySize))
	if err != nil {
		return &StatusError{StatusCode: res.StatusCode, Body: fmt.Sprintf("(failed to read body: %v)", err)}
	}
	return &StatusError{StatusCode: res.StatusCode, Body: string(raw)}
}

// CloseWithLog closes c and logs a failure instead of returning it.
func CloseWithLog(c io.Closer) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		slog.Warn("failed to close response body", "error", err.Error())
	}
}
