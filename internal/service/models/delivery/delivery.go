package delivery

// Kind classifies the outcome of one delivery attempt to the partner API.
// Exactly one kind applies to any attempt.
type Kind string

const (
	// KindSuccess means HTTP 200 with a valid JSON body that reports no error.
	KindSuccess Kind = "success"
	// KindTransportError means the HTTP call itself failed (DNS, TLS,
	// connection reset).
	KindTransportError Kind = "transport_error"
	// KindHTTPStatusError means a response was received with a status code
	// other than 200.
	KindHTTPStatusError Kind = "http_status_error"
	// KindAPIError means HTTP 200 but the partner flagged an error in the
	// response body.
	KindAPIError Kind = "api_error"
	// KindParseError means HTTP 200 but the body is not valid JSON.
	KindParseError Kind = "parse_error"
)

// Result is the classified outcome of one delivery attempt.
type Result struct {
	Kind    Kind
	Message string
}

// OK reports whether the delivery succeeded.
func (r Result) OK() bool {
	return r.Kind == KindSuccess
}

// Success returns a successful result.
func Success() Result {
	return Result{Kind: KindSuccess}
}

// TransportError returns a result for a failed HTTP call.
func TransportError(message string) Result {
	return Result{Kind: KindTransportError, Message: message}
}

// HTTPStatusError returns a result for a non-200 response.
func HTTPStatusError(message string) Result {
	return Result{Kind: KindHTTPStatusError, Message: message}
}

// APIError returns a result for a partner-reported error.
func APIError(message string) Result {
	return Result{Kind: KindAPIError, Message: message}
}

// ParseError returns a result for an unparseable response body.
func ParseError(message string) Result {
	return Result{Kind: KindParseError, Message: message}
}
