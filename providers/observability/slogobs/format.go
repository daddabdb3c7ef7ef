package slogobs

import (
	"log/slog"
	"os"
	"strings"
)

// Format is the rendering used by Handler.
type Format string

const (
	// FormatCompact is one line per record with attributes as a JSON object.
	//	2026-10-15 10:40:35  INFO Briefing ready -> {"briefing.events":3}
	FormatCompact Format = "compact"

	// FormatPretty puts every attribute on its own indented line.
	FormatPretty Format = "pretty"

	// FormatJSON is one JSON object per record, for log shipping.
	FormatJSON Format = "json"
)

// Environment variables read when no explicit option is given. The generic
// LOG_* names are consulted after the prefixed ones.
const (
	EnvLogFormat = "SPORTSINTEL_LOG_FORMAT"
	EnvLogLevel  = "SPORTSINTEL_LOG_LEVEL"
)

// ParseFormat maps a format name to a Format; unknown names yield FormatCompact.
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pretty":
		return FormatPretty
	case "json":
		return FormatJSON
	default:
		return FormatCompact
	}
}

// GetFormatFromEnv reads SPORTSINTEL_LOG_FORMAT, then LOG_FORMAT.
func GetFormatFromEnv() Format {
	return ParseFormat(firstEnv(EnvLogFormat, "LOG_FORMAT"))
}

func (f Format) String() string {
	return string(f)
}

// ParseLogLevel maps TRACE, DEBUG, INFO, WARN/WARNING and ERROR
// (case-insensitive) to a level. Anything else is INFO.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "TRACE":
		return LevelTrace
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// GetLogLevelFromEnv reads SPORTSINTEL_LOG_LEVEL, then LOG_LEVEL.
func GetLogLevelFromEnv() slog.Level {
	return ParseLogLevel(firstEnv(EnvLogLevel, "LOG_LEVEL"))
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if value := os.Getenv(key); value != "" {
			return value
		}
	}
	return ""
}
