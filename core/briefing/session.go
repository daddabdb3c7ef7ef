package briefing

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/leofalp/sportsintel/core/intel"
	"github.com/leofalp/sportsintel/core/parse"
	"github.com/leofalp/sportsintel/providers/ai"
	"github.com/leofalp/sportsintel/providers/observability"
)

// Streamer starts a streamed generation for a prompt. *client.Client
// implements it.
type Streamer interface {
	StreamMessage(ctx context.Context, prompt string) (*ai.ChatStream, error)
}

// Update is one partial result delivered while a run is streaming.
type Update struct {
	Generation   uint64
	RequestID    string
	Response     *intel.Response
	BufferLength int
}

// Sink receives partial results. Partial is called from the goroutine running
// Session.Run, one update at a time.
type Sink interface {
	Partial(update Update)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(update Update)

func (f SinkFunc) Partial(update Update) {
	f(update)
}

// Option configures a Session.
type Option func(*Session)

// WithObserver traces and logs every run.
func WithObserver(observer observability.Provider) Option {
	return func(s *Session) {
		s.observer = observer
	}
}

// WithClock overrides the time source used for the prompt date.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// Session runs briefings one at a time. Starting a run cancels the one in
// flight, and a run that is no longer current delivers nothing more.
type Session struct {
	streamer Streamer
	observer observability.Provider
	now      func() time.Time

	generation atomic.Uint64

	mu               sync.Mutex
	cancel           context.CancelFunc
	latest           *intel.Response // owned; handed out as clones
	latestGeneration uint64
}

// New creates a Session streaming through streamer.
func New(streamer Streamer, opts ...Option) *Session {
	s := &Session{
		streamer: streamer,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generation returns the generation of the most recent run.
func (s *Session) Generation() uint64 {
	return s.generation.Load()
}

// Latest returns a copy of the most recent result of the current run: its
// final response, or the last partial when it failed or is still streaming.
// It returns nil once a newer run starts or Cancel is called.
func (s *Session) Latest() *intel.Response {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.latestGeneration != s.generation.Load() {
		return nil
	}
	return s.latest.Clone()
}

// Cancel stops the run in flight, if any; that run returns ErrSuperseded.
func (s *Session) Cancel() {
	s.generation.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Run streams a briefing for query. After each content fragment the buffer is
// recovered and, when something was found and the run is still current, the
// result is passed to sink. sink may be nil.
//
// The returned response is the final recovery of the full buffer. It must
// hold all three top-level fields and match intel.ResponseSchema, otherwise
// Run returns ErrIncompleteResponse. Failures of the generation call come
// back as *TransportError.
func (s *Session) Run(ctx context.Context, query string, sink Sink) (*intel.Response, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	generation := s.begin(cancel)
	defer s.release(generation)

	requestID := uuid.NewString()
	run := &runState{
		session:    s,
		generation: generation,
		requestID:  requestID,
		started:    time.Now(),
	}
	ctx = run.start(ctx, query)

	stream, err := s.streamer.StreamMessage(ctx, BuildPrompt(query, s.now()))
	if err != nil {
		return nil, run.fail(ctx, err)
	}

	var buffer strings.Builder
	for event, err := range stream.Iter() {
		if !s.current(generation) {
			return nil, run.superseded(ctx)
		}
		if err != nil {
			return nil, run.fail(ctx, err)
		}
		if event.Type != ai.StreamEventContent || event.Content == "" {
			continue
		}

		buffer.WriteString(event.Content)
		run.fragment()

		recovered := parse.RecoverResponse(buffer.String())
		run.recovered(ctx, recovered)
		if recovered == nil {
			continue
		}
		if !s.keep(generation, recovered) {
			return nil, run.superseded(ctx)
		}
		if sink == nil {
			continue
		}
		sink.Partial(Update{
			Generation:   generation,
			RequestID:    requestID,
			Response:     recovered.Clone(),
			BufferLength: buffer.Len(),
		})
	}

	if !s.current(generation) {
		return nil, run.superseded(ctx)
	}

	final := parse.RecoverResponse(buffer.String())
	if !final.IsComplete() {
		return nil, run.incomplete(ctx, buffer.Len(), nil)
	}
	violations, err := final.Validate()
	if err != nil {
		err = fmt.Errorf("validating briefing: %w", err)
		run.recordFailure(ctx, err, err)
		return nil, err
	}
	if len(violations) > 0 {
		return nil, run.incomplete(ctx, buffer.Len(), violations)
	}

	if !s.keep(generation, final) {
		return nil, run.superseded(ctx)
	}
	run.succeed(ctx, final, buffer.Len())
	return final.Clone(), nil
}

func (s *Session) begin(cancel context.CancelFunc) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = cancel
	s.latest = nil
	return s.generation.Add(1)
}

// keep records response as the latest result of generation. It reports
// false when generation is no longer current.
func (s *Session) keep(generation uint64, response *intel.Response) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.current(generation) {
		return false
	}
	s.latest = response
	s.latestGeneration = generation
	return true
}

func (s *Session) release(generation uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current(generation) {
		s.cancel = nil
	}
}

func (s *Session) current(generation uint64) bool {
	return s.generation.Load() == generation
}

// runState carries the per-run observability bookkeeping.
type runState struct {
	session    *Session
	generation uint64
	requestID  string
	started    time.Time
	fragments  int
	partials   int
	span       observability.Span
}

func (r *runState) observer() observability.Provider {
	return r.session.observer
}

func (r *runState) attrs(extra ...observability.Attribute) []observability.Attribute {
	return append([]observability.Attribute{
		observability.String(observability.AttrBriefingRequestID, r.requestID),
		observability.Uint64(observability.AttrBriefingGeneration, r.generation),
	}, extra...)
}

func (r *runState) start(ctx context.Context, query string) context.Context {
	observer := r.observer()
	if observer == nil {
		return ctx
	}
	ctx, r.span = observer.StartSpan(ctx, observability.SpanBriefingRun,
		r.attrs(observability.String(observability.AttrBriefingQuery, query))...,
	)
	ctx = observability.ContextWithObserver(ctx, observer)
	observer.Counter(observability.MetricBriefingRuns).Add(ctx, 1)
	observer.Info(ctx, "briefing started", r.attrs(observability.String(observability.AttrBriefingQuery, query))...)
	return ctx
}

func (r *runState) fragment() {
	r.fragments++
	if r.span != nil && r.fragments == 1 {
		r.span.AddEvent(observability.EventFirstFragment,
			observability.Duration(observability.AttrDuration, time.Since(r.started)),
		)
	}
}

func (r *runState) recovered(ctx context.Context, response *intel.Response) {
	observer := r.observer()
	if observer == nil {
		return
	}
	observer.Counter(observability.MetricRecoveryAttempts).Add(ctx, 1)
	if response == nil {
		observer.Counter(observability.MetricRecoveryMisses).Add(ctx, 1)
		return
	}
	r.partials++
	if r.partials == 1 {
		r.span.AddEvent(observability.EventPartialRecovered,
			observability.Duration(observability.AttrDuration, time.Since(r.started)),
		)
	}
	observer.Trace(ctx, "partial recovered", r.attrs(
		observability.Int(observability.AttrBriefingFragments, r.fragments),
		observability.Int(observability.AttrBriefingEvents, len(response.Events)),
	)...)
}

func (r *runState) superseded(ctx context.Context) error {
	if r.span != nil {
		r.span.AddEvent(observability.EventGenerationSuperseded)
		r.span.SetStatus(observability.StatusOK, "superseded")
		r.span.End()
	}
	if observer := r.observer(); observer != nil {
		observer.Debug(ctx, "briefing superseded", r.attrs()...)
	}
	return ErrSuperseded
}

func (r *runState) fail(ctx context.Context, err error) error {
	if !r.session.current(r.generation) {
		return r.superseded(ctx)
	}
	failure := newTransportError(err)
	r.recordFailure(ctx, failure, err)
	return failure
}

func (r *runState) incomplete(ctx context.Context, bufferLength int, violations []string) error {
	err := ErrIncompleteResponse
	if len(violations) > 0 {
		err = fmt.Errorf("%w: %s", ErrIncompleteResponse, strings.Join(violations, "; "))
	}
	r.recordFailure(ctx, err, err,
		observability.Int(observability.AttrBriefingBufferLength, bufferLength),
		observability.String(observability.AttrBriefingViolations, strings.Join(violations, "; ")),
	)
	return err
}

func (r *runState) recordFailure(ctx context.Context, failure, cause error, extra ...observability.Attribute) {
	observer := r.observer()
	if observer == nil {
		return
	}
	r.span.RecordError(cause)
	r.span.SetStatus(observability.StatusError, failure.Error())
	r.span.End()

	attrs := r.attrs(extra...)
	attrs = append(attrs,
		observability.Error(cause),
		observability.Int(observability.AttrBriefingFragments, r.fragments),
		observability.Duration(observability.AttrDuration, time.Since(r.started)),
	)
	observer.Error(ctx, failure.Error(), attrs...)
	observer.Counter(observability.MetricBriefingFailures).Add(ctx, 1)
}

func (r *runState) succeed(ctx context.Context, response *intel.Response, bufferLength int) {
	observer := r.observer()
	if observer == nil {
		return
	}
	elapsed := time.Since(r.started)
	observer.Histogram(observability.MetricBriefingDuration).Record(ctx, elapsed.Seconds())

	attrs := r.attrs(
		observability.Int(observability.AttrBriefingFragments, r.fragments),
		observability.Int(observability.AttrBriefingBufferLength, bufferLength),
		observability.Int(observability.AttrBriefingEvents, len(response.Events)),
		observability.Duration(observability.AttrDuration, elapsed),
	)
	r.span.SetAttributes(attrs...)
	r.span.SetStatus(observability.StatusOK, "success")
	r.span.End()
	observer.Info(ctx, "briefing completed", attrs...)
}
