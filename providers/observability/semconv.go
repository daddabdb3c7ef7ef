package observability

// Semantic conventions for observability attributes.

// --- LLM Provider Attributes ---

const (
	// AttrLLMProvider is the name of the LLM provider (e.g., "gemini", "openai")
	AttrLLMProvider = "llm.provider"

	// AttrLLMModel is the model identifier
	AttrLLMModel = "llm.model"

	// AttrLLMEndpoint is the API endpoint URL
	AttrLLMEndpoint = "llm.endpoint"

	// AttrLLMFinishReason is the reason the generation finished
	AttrLLMFinishReason = "llm.finish_reason"

	// AttrLLMStreaming marks requests served over SSE
	AttrLLMStreaming = "llm.streaming"

	// AttrLLMWebSearch marks requests that enabled hosted web search
	AttrLLMWebSearch = "llm.web_search"

	// AttrLLMTokensTotal is the total number of tokens
	AttrLLMTokensTotal = "llm.tokens.total" // #nosec G101 -- Not a credential, token refers to LLM tokens

	// AttrLLMGroundingSources is the number of web sources reported by search
	AttrLLMGroundingSources = "llm.grounding.sources"
)

// --- HTTP Attributes ---

const (
	AttrHTTPMethod          = "http.method"
	AttrHTTPStatusCode      = "http.status_code"
	AttrHTTPURL             = "http.url"
	AttrHTTPRequestBodySize = "http.request.body.size"
)

// --- Briefing Attributes ---

const (
	// AttrBriefingRequestID correlates every log line of one briefing run
	AttrBriefingRequestID = "briefing.request_id"

	// AttrBriefingGeneration is the session generation of the run
	AttrBriefingGeneration = "briefing.generation"

	// AttrBriefingQuery is the user query
	AttrBriefingQuery = "briefing.query"

	// AttrBriefingFragments is the number of content fragments received
	AttrBriefingFragments = "briefing.fragments"

	// AttrBriefingBufferLength is the accumulated buffer length in bytes
	AttrBriefingBufferLength = "briefing.buffer_length"

	// AttrBriefingEvents is the number of events recovered
	AttrBriefingEvents = "briefing.events"

	// AttrBriefingViolations lists schema violations of the final response
	AttrBriefingViolations = "briefing.violations"
)

// --- General Attributes ---

const (
	AttrError             = "error"
	AttrStatus            = "status"
	AttrStatusDescription = "status_description"
	AttrDuration          = "duration"
)

// --- Span Names ---

const (
	SpanBriefingRun = "briefing.run"
	SpanLLMStream   = "llm.stream"
)

// --- Event Names ---

const (
	EventLLMRequestStart      = "llm.request.start"
	EventFirstFragment        = "briefing.first_fragment"
	EventPartialRecovered     = "briefing.partial_recovered"
	EventGenerationSuperseded = "briefing.generation_superseded"
)

// --- Metric Names ---

const (
	MetricBriefingRuns     = "sportsintel.briefing.runs"
	MetricBriefingFailures = "sportsintel.briefing.failures"
	MetricBriefingDuration = "sportsintel.briefing.duration"
	MetricRecoveryAttempts = "sportsintel.recovery.attempts"
	MetricRecoveryMisses   = "sportsintel.recovery.misses"
	MetricLLMRequests      = "sportsintel.llm.requests"
	MetricLLMDuration      = "sportsintel.llm.duration"
	MetricLLMTokens        = "sportsintel.llm.tokens"
)
