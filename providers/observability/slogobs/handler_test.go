package slogobs

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func newTestLogger(format Format, level slog.Level) (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	handler := NewHandler(&HandlerOptions{Format: format, Level: level, Output: &buf})
	return slog.New(handler), &buf
}

func TestHandler_Compact(t *testing.T) {
	logger, buf := newTestLogger(FormatCompact, slog.LevelDebug)
	logger.Info("Briefing ready", "events", 3, "barTalk", 2)

	output := buf.String()
	for _, want := range []string{" INFO ", "Briefing ready", " -> ", `{"barTalk":2,"events":3}`} {
		if !strings.Contains(output, want) {
			t.Errorf("compact output missing %q: %s", want, output)
		}
	}
	if strings.Contains(output, "\033[") {
		t.Errorf("colours written to a buffer: %q", output)
	}
}

func TestHandler_Pretty(t *testing.T) {
	logger, buf := newTestLogger(FormatPretty, slog.LevelDebug)
	logger.Warn("Search unavailable", "provider", "gemini", "status", 503)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("pretty output has %d lines, want 3: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "WARN") || !strings.Contains(lines[0], "Search unavailable") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "|- provider: gemini") {
		t.Errorf("first attribute = %q", lines[1])
	}
	if !strings.Contains(lines[2], "`- status: 503") {
		t.Errorf("last attribute = %q", lines[2])
	}
}

func TestHandler_JSON(t *testing.T) {
	logger, buf := newTestLogger(FormatJSON, slog.LevelDebug)
	logger.Error("Run failed", "error", errors.New("boom"))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v: %s", err, buf.String())
	}
	if record["level"] != "ERROR" || record["msg"] != "Run failed" {
		t.Errorf("record = %v", record)
	}
	if record["error"] != "boom" {
		t.Errorf("error attribute = %v, want boom", record["error"])
	}
}

func TestHandler_LevelFiltering(t *testing.T) {
	logger, buf := newTestLogger(FormatCompact, slog.LevelWarn)
	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Errorf("records below WARN were written: %s", output)
	}
	if !strings.Contains(output, "shown") {
		t.Errorf("WARN record missing: %s", output)
	}
}

func TestHandler_WithAttrsAndGroup(t *testing.T) {
	logger, buf := newTestLogger(FormatJSON, slog.LevelInfo)
	logger.With("request_id", "abc").WithGroup("llm").Info("call", "model", "gemini-2.5-flash")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if record["llm.request_id"] != "abc" {
		t.Errorf("grouped handler attribute = %v", record)
	}
	if record["llm.model"] != "gemini-2.5-flash" {
		t.Errorf("grouped record attribute = %v", record)
	}
}

func TestHandler_ForcedColors(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&HandlerOptions{Output: &buf, Colors: true}))
	logger.Error("red")

	if !strings.Contains(buf.String(), colorRed) {
		t.Errorf("expected red escape in %q", buf.String())
	}
}

func TestLevelString(t *testing.T) {
	tests := map[slog.Level]string{
		LevelTrace:      "TRACE",
		slog.LevelDebug: "DEBUG",
		slog.LevelInfo:  "INFO",
		slog.LevelWarn:  "WARN",
		slog.LevelError: "ERROR",
	}
	for level, want := range tests {
		if got := levelString(level); got != want {
			t.Errorf("levelString(%v) = %q, want %q", level, got, want)
		}
	}
}
