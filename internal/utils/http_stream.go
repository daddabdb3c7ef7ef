package utils

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// maxSSELineSize bounds a single SSE line (1 MB); bufio's 64 KiB default is
// too small for long completions. Longer lines surface bufio.ErrTooLong.
const maxSSELineSize = 1 * 1024 * 1024

// SSEScanner reads Server-Sent Events. Multi-line data fields are joined with
// newlines, comments and non-data fields are skipped, and the OpenAI [DONE]
// sentinel ends the stream.
type SSEScanner struct {
	scanner *bufio.Scanner
	event   string
}

func NewSSEScanner(reader io.Reader) *SSEScanner {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxSSELineSize)
	return &SSEScanner{scanner: scanner}
}

// Next returns the data of the next event, or io.EOF at the end of the stream.
func (s *SSEScanner) Next() (string, error) {
	var data []string
	s.event = ""

	for s.scanner.Scan() {
		line := s.scanner.Text()

		if line == "" {
			if len(data) > 0 {
				return strings.Join(data, "\n"), nil
			}
			s.event = ""
			continue
		}
		if strings.HasPrefix(line, ":") {
			continue
		}

		// Only the single space after the colon belongs to the framing.
		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")
		switch field {
		case "data":
			if value == "[DONE]" {
				return "", io.EOF
			}
			data = append(data, value)
		case "event":
			s.event = value
		}
	}

	if err := s.scanner.Err(); err != nil {
		return "", fmt.Errorf("SSE scanner error: %w", err)
	}
	if len(data) > 0 {
		return strings.Join(data, "\n"), nil
	}
	return "", io.EOF
}

// Event returns the "event:" field of the payload last returned by Next,
// or "" when the server sent none.
func (s *SSEScanner) Event() string {
	return s.event
}
