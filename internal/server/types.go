package server

// Response is the JSON body of a successful /fibonacci request.
type Response struct {
	// N is the index of the Fibonacci number requested.
	N uint8 `json:"n"`
	// Result is F(n) in decimal, or F(n) mod 2^128 when Exact is false.
	Result string `json:"result"`
	// Hex is Result in 0x-prefixed hexadecimal.
	Hex string `json:"hex"`
	// Exact reports whether Result is the true Fibonacci number.
	Exact bool `json:"exact"`
	// OverflowPolicy is the policy that was applied.
	OverflowPolicy string `json:"overflow_policy"`
	// Duration is the formatted execution time string.
	Duration string `json:"duration"`
}

// HealthResponse is the JSON body of /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
}

// ErrorResponse represents the standardized JSON response for an API error.
type ErrorResponse struct {
	// Error is the short error code or status text.
	Error string `json:"error"`
	// Message is a descriptive error message.
	Message string `json:"message,omitempty"`
}

// requestError is a parameter or calculation failure mapped to an HTTP status.
type requestError struct {
	Message    string
	StatusCode int
}

func (e requestError) Error() string {
	return e.Message
}
