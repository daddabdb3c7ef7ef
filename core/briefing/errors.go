package briefing

import (
	"errors"

	"github.com/leofalp/sportsintel/providers/ai"
)

var (
	// ErrIncompleteResponse is returned when the finished stream does not hold
	// a summary, an events list and a bar talk list.
	ErrIncompleteResponse = errors.New("could not parse complete structured response")

	// ErrSuperseded is returned by a run that was replaced by a newer one.
	ErrSuperseded = errors.New("briefing superseded by a newer request")

	// ErrEmptyQuery is returned when the query is blank.
	ErrEmptyQuery = errors.New("briefing query is empty")
)

// TransportError reports that the generation call itself failed. The message
// is user-facing; the cause is available through errors.Unwrap.
type TransportError struct {
	SearchRelated bool
	Err           error
}

func (e *TransportError) Error() string {
	if e.SearchRelated {
		return "sports search is unavailable right now"
	}
	return "failed to generate sports briefing"
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func newTransportError(err error) *TransportError {
	transportErr := &TransportError{Err: err}
	var providerErr *ai.ProviderError
	if errors.As(err, &providerErr) {
		transportErr.SearchRelated = providerErr.SearchRelated()
	}
	return transportErr
}
