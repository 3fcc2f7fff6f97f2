package domain

// ReasoningRequest carries the prompt fields for the explanation service.
// RankedSummary is the pre-scored top-card digest the model explains.
type ReasoningRequest struct {
	Merchant      string
	Amount        float64
	Category      string
	Goal          string
	RankedSummary string
}

// RateLimitError preserves the upstream rate-limit response body verbatim.
// The error format of the reasoning provider is not contractual, so the raw
// text is kept for pattern matching instead of a structured error type.
type RateLimitError struct {
	Raw string
}

func (e *RateLimitError) Error() string {
	return "reasoning service rate limited: " + e.Raw
}
