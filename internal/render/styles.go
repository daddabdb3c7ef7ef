package render

import (
	"fmt"

	"github.com/leofalp/sportsintel/core/intel"
)

// ANSI256 colour codes.
const (
	colorAccent = 74  // blue
	colorMuted  = 245 // medium gray
	colorHigh   = 203 // red
	colorMedium = 179 // amber
	colorLow    = 108 // green
)

type styler struct {
	color bool
}

func (s styler) paint(code int, text string) string {
	if !s.color || text == "" {
		return text
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", code, text)
}

func (s styler) bold(text string) string {
	if !s.color || text == "" {
		return text
	}
	return "\x1b[1m" + text + "\x1b[0m"
}

func (s styler) accent(text string) string { return s.paint(colorAccent, text) }
func (s styler) muted(text string) string  { return s.paint(colorMuted, text) }

func (s styler) significance(level intel.Significance) string {
	level = intel.ParseSignificance(string(level))
	label := string(level)
	switch level {
	case intel.SignificanceHigh:
		return s.paint(colorHigh, label)
	case intel.SignificanceLow:
		return s.paint(colorLow, label)
	default:
		return s.paint(colorMedium, label)
	}
}
