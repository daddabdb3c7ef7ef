package render

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/leofalp/sportsintel/core/intel"
)

// Renderer writes briefings as plain-text cards.
type Renderer struct {
	w     io.Writer
	style styler
	width int
	live  bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithColor forces colours on or off.
func WithColor(enabled bool) Option {
	return func(r *Renderer) {
		r.style.color = enabled
	}
}

// WithWidth sets the wrap width.
func WithWidth(width int) Option {
	return func(r *Renderer) {
		if width > 0 {
			r.width = width
		}
	}
}

// New creates a Renderer for w. Colour and width are detected from w unless
// set through options.
func New(w io.Writer, opts ...Option) *Renderer {
	r := &Renderer{
		w:     w,
		style: styler{color: ShouldUseColor(w)},
		width: Width(w),
		live:  isTerminal(w),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Status replaces the current status line on a terminal. Elsewhere it does
// nothing, so piped output only carries the final briefing.
func (r *Renderer) Status(format string, args ...any) {
	if !r.live {
		return
	}
	fmt.Fprintf(r.w, "\r\x1b[K%s", r.style.muted(fmt.Sprintf(format, args...)))
}

// ClearStatus removes the status line written by Status.
func (r *Renderer) ClearStatus() {
	if r.live {
		fmt.Fprint(r.w, "\r\x1b[K")
	}
}

// Briefing writes the summary, one card per event and the bar talk list.
// Missing sections are skipped.
func (r *Renderer) Briefing(response *intel.Response) error {
	if response == nil {
		return nil
	}
	var b strings.Builder

	if response.Summary != nil {
		b.WriteString(r.style.bold("SUMMARY") + "\n")
		b.WriteString(wrap(PlainText(*response.Summary), r.width, "") + "\n\n")
	}

	for i, event := range response.Events {
		r.card(&b, i+1, event)
	}

	if len(response.BarTalk) > 0 {
		b.WriteString(r.style.bold("BAR TALK") + "\n")
		for _, line := range response.BarTalk {
			b.WriteString(wrap(PlainText(line), r.width, "  - ") + "\n")
		}
	}

	_, err := io.WriteString(r.w, b.String())
	return err
}

func (r *Renderer) card(b *strings.Builder, n int, event intel.EventRecord) {
	category := event.Category
	if !category.Known() {
		category = intel.ParseCategory(string(category))
	}

	fmt.Fprintf(b, "%s %s  %s\n",
		r.style.muted(fmt.Sprintf("%2d.", n)),
		r.style.accent("["+string(category)+"]"),
		r.style.significance(event.Significance),
	)
	b.WriteString(wrap(r.style.bold(event.Headline), r.width, "    ") + "\n")

	var meta []string
	if len(event.Teams) > 0 {
		meta = append(meta, strings.Join(event.Teams, " vs "))
	}
	if event.Date != "" {
		meta = append(meta, event.Date)
	}
	if event.Source != "" {
		meta = append(meta, event.Source)
	}
	if len(meta) > 0 {
		b.WriteString("    " + r.style.muted(strings.Join(meta, " | ")) + "\n")
	}

	if description := PlainText(event.Description); description != "" && description != intel.LoadingSentinel {
		b.WriteString(wrap(description, r.width, "    ") + "\n")
	}
	for _, link := range event.Links {
		b.WriteString("    " + r.style.muted(link) + "\n")
	}
	b.WriteString("\n")
}

var htmlTag = regexp.MustCompile(`</?[a-zA-Z][a-zA-Z0-9]*(\s[^<>]*)?/?>`)

// PlainText converts HTML fragments that models sometimes emit in text fields
// to Markdown. Text without tags is returned trimmed.
func PlainText(text string) string {
	text = strings.TrimSpace(text)
	if !htmlTag.MatchString(text) {
		return text
	}
	markdown, err := htmltomarkdown.ConvertString(text)
	if err != nil {
		return text
	}
	return strings.TrimSpace(markdown)
}

// wrap breaks text into lines of at most width columns, each starting with
// indent. Words longer than a line are kept whole. Existing line breaks are
// preserved.
func wrap(text string, width int, indent string) string {
	limit := width - len(indent)
	if limit < 20 {
		limit = 20
	}
	pad := strings.Repeat(" ", len(indent))

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		line := ""
		for _, word := range strings.Fields(paragraph) {
			switch {
			case line == "":
				line = word
			case visibleLen(line)+1+visibleLen(word) > limit:
				lines = append(lines, line)
				line = word
			default:
				line += " " + word
			}
		}
		lines = append(lines, line)
	}

	for i := range lines {
		if i == 0 {
			lines[i] = indent + lines[i]
		} else {
			lines[i] = pad + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func visibleLen(s string) int {
	return len([]rune(ansiEscape.ReplaceAllString(s, "")))
}
