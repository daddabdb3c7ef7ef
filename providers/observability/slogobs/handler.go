package slogobs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"

	"golang.org/x/term"
)

// Handler is a slog.Handler rendering records as compact, pretty or JSON text.
// Attribute keys are written in sorted order so output is stable.
type Handler struct {
	format Format
	level  slog.Level
	colors bool
	mu     *sync.Mutex
	output io.Writer
	attrs  []slog.Attr
	groups []string
}

// HandlerOptions configures a Handler.
type HandlerOptions struct {
	Format Format
	Level  slog.Level
	Output io.Writer // defaults to os.Stderr
	Colors bool      // forced on; otherwise enabled when Output is a colour terminal
}

// NewHandler creates a Handler from opts; a nil opts gives compact INFO on stderr.
func NewHandler(opts *HandlerOptions) *Handler {
	if opts == nil {
		opts = &HandlerOptions{}
	}
	output := opts.Output
	if output == nil {
		output = os.Stderr
	}
	format := opts.Format
	if format == "" {
		format = FormatCompact
	}

	colors := opts.Colors
	if !colors && format != FormatJSON {
		colors = colorTerminal(output)
	}

	return &Handler{
		format: format,
		level:  opts.Level,
		colors: colors,
		mu:     &sync.Mutex{},
		output: output,
	}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var line []byte
	switch h.format {
	case FormatPretty:
		line = h.pretty(r)
	case FormatJSON:
		var err error
		if line, err = h.json(r); err != nil {
			return err
		}
	default:
		line = h.compact(r)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.output.Write(line)
	return err
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(slices.Clone(h.attrs), attrs...)
	return &clone
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(slices.Clone(h.groups), name)
	return &clone
}

// compact: "2006-01-02 15:04:05  INFO message -> {"key":"value"}"
func (h *Handler) compact(r slog.Record) []byte {
	var b strings.Builder
	b.WriteString(r.Time.Format("2006-01-02 15:04:05"))
	b.WriteByte(' ')
	h.writeLevel(&b, r.Level, "%5s")
	b.WriteByte(' ')
	b.WriteString(r.Message)

	attrs := h.collect(r)
	if len(attrs) > 0 {
		b.WriteString(" -> ")
		encoded, err := json.Marshal(attrs)
		if err != nil {
			b.WriteString("[unencodable attributes]")
		} else {
			b.Write(encoded)
		}
	}
	b.WriteByte('\n')
	return []byte(b.String())
}

// pretty puts the header on one line and each attribute below it.
func (h *Handler) pretty(r slog.Record) []byte {
	var b strings.Builder
	b.WriteString(r.Time.Format("2006-01-02 15:04:05"))
	b.WriteByte(' ')
	h.writeLevel(&b, r.Level, "%-5s")
	b.WriteString("  ")
	b.WriteString(r.Message)
	b.WriteByte('\n')

	attrs := h.collect(r)
	keys := sortedKeys(attrs)
	for i, key := range keys {
		branch := "|- "
		if i == len(keys)-1 {
			branch = "`- "
		}
		fmt.Fprintf(&b, "                    %s%s: %v\n", branch, key, attrs[key])
	}
	return []byte(b.String())
}

func (h *Handler) json(r slog.Record) ([]byte, error) {
	data := h.collect(r)
	data["time"] = r.Time.Format("2006-01-02T15:04:05.000Z07:00")
	data["level"] = levelString(r.Level)
	data["msg"] = r.Message

	encoded, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return append(encoded, '\n'), nil
}

func (h *Handler) writeLevel(b *strings.Builder, level slog.Level, layout string) {
	if h.colors {
		b.WriteString(colorForLevel(level))
	}
	fmt.Fprintf(b, layout, levelString(level))
	if h.colors {
		b.WriteString(colorReset)
	}
}

// collect merges handler and record attributes, prefixing keys with groups.
// encoding/json sorts map keys, so the compact and JSON formats are ordered.
func (h *Handler) collect(r slog.Record) map[string]any {
	attrs := make(map[string]any, len(h.attrs)+r.NumAttrs())
	prefix := ""
	if len(h.groups) > 0 {
		prefix = strings.Join(h.groups, ".") + "."
	}
	add := func(attr slog.Attr) bool {
		value := attr.Value.Resolve().Any()
		if err, ok := value.(error); ok {
			value = err.Error()
		}
		attrs[prefix+attr.Key] = value
		return true
	}
	for _, attr := range h.attrs {
		add(attr)
	}
	r.Attrs(add)
	return attrs
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

func levelString(level slog.Level) string {
	switch {
	case level < slog.LevelDebug:
		return "TRACE"
	case level < slog.LevelInfo:
		return "DEBUG"
	case level < slog.LevelWarn:
		return "INFO"
	case level < slog.LevelError:
		return "WARN"
	default:
		return "ERROR"
	}
}

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorGreen  = "\033[32m"
	colorBlue   = "\033[34m"
	colorGray   = "\033[90m"
)

func colorForLevel(level slog.Level) string {
	switch {
	case level < slog.LevelDebug:
		return colorGray
	case level < slog.LevelInfo:
		return colorBlue
	case level < slog.LevelWarn:
		return colorGreen
	case level < slog.LevelError:
		return colorYellow
	default:
		return colorRed
	}
}

// colorTerminal honours NO_COLOR and only colours real terminals.
func colorTerminal(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
