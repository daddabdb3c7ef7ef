package utils

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type echoResponse struct {
	Echo string `json:"echo"`
}

func TestDoPostSync_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Authorization = %q", got)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		_ = json.NewEncoder(w).Encode(echoResponse{Echo: body["say"]})
	}))
	defer server.Close()

	res, out, err := DoPostSync[echoResponse](context.Background(), server.Client(), server.URL, "secret", map[string]string{"say": "hi"})
	if err != nil {
		t.Fatalf("DoPostSync() error = %v", err)
	}
	if res.StatusCode != http.StatusOK || out.Echo != "hi" {
		t.Errorf("got status %d, out %+v", res.StatusCode, out)
	}
}

func TestDoPostSync_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer server.Close()

	_, out, err := DoPostSync[echoResponse](context.Background(), nil, server.URL, "", struct{}{})
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("error = %v, want *StatusError 400", err)
	}
	if out != nil {
		t.Errorf("out = %+v, want nil", out)
	}
}

func TestDoPostSync_DecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "not json")
	}))
	defer server.Close()

	_, _, err := DoPostSync[echoResponse](context.Background(), nil, server.URL, "", struct{}{})
	if err == nil || !strings.Contains(err.Error(), "not json") {
		t.Errorf("error = %v, want body preview", err)
	}
}

func TestDoPostSync_MarshalError(t *testing.T) {
	_, _, err := DoPostSync[echoResponse](context.Background(), nil, "http://unused", "", make(chan int))
	if err == nil || !strings.Contains(err.Error(), "marshaling") {
		t.Errorf("error = %v, want marshaling error", err)
	}
}

type failingCloser struct{ closed bool }

func (c *failingCloser) Close() error {
	c.closed = true
	return errors.New("close failed")
}

func TestCloseWithLog(t *testing.T) {
	closer := &failingCloser{}
	CloseWithLog(closer)
	if !closer.closed {
		t.Error("Close was not called")
	}
	CloseWithLog(nil)
}

func TestStatusError_Error(t *testing.T) {
	err := &StatusError{StatusCode: 503, Body: strings.Repeat("x", 600)}
	msg := err.Error()
	if !strings.HasPrefix(msg, "non-2xx status 503: ") || !strings.Contains(msg, "truncated, total: 600 chars") {
		t.Errorf("Error() = %q", msg)
	}
}
