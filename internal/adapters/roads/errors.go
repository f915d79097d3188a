package roads

import (
	"errors"
	"fmt"
)

// Classification sentinels for structured remote errors. Callers match them
// with errors.Is; the concrete *APIError keeps the vendor status and message.
var (
	// ErrInvalidArgument reports bad local input, before any request is sent.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrRequestDenied reports an authentication or permission failure.
	ErrRequestDenied = errors.New("request denied")

	// ErrInvalidRequest reports a request the remote service rejected as malformed.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrRateLimitExceeded reports quota exhaustion.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
)

// HTTPError is a non-200 response that carried no structured error envelope.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("roads: http status %d", e.StatusCode)
	}
	return fmt.Sprintf("roads: http status %d: %s", e.StatusCode, e.Body)
}

// MalformedResponseError is a 200 response whose body could not be parsed as JSON.
type MalformedResponseError struct {
	Body string
	err  error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("roads: malformed response body: %v", e.err)
}

func (e *MalformedResponseError) Unwrap() error { return e.err }

// APIError is a structured error decoded from the remote error envelope.
// HTTPStatus preserves the transport status the envelope arrived with.
type APIError struct {
	HTTPStatus int
	Status     string
	Message    string

	kind error
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("roads: api error %s (http %d)", e.Status, e.HTTPStatus)
	}
	return fmt.Sprintf("roads: api error %s (http %d): %s", e.Status, e.HTTPStatus, e.Message)
}

// Unwrap exposes the classification sentinel, if any, so errors.Is works.
func (e *APIError) Unwrap() error { return e.kind }

// invalidKeyMessage is the exact message the service attaches to an
// INVALID_ARGUMENT status when the API key itself is bad. It is classified
// as a denial, not a malformed request.
const invalidKeyMessage = "The provided API key is invalid."

// statusKinds maps a vendor status string to its local classification.
// Statuses not listed here fall through to a generic APIError.
var statusKinds = map[string]error{
	"INVALID_ARGUMENT":   ErrInvalidRequest,
	"PERMISSION_DENIED":  ErrRequestDenied,
	"RESOURCE_EXHAUSTED": ErrRateLimitExceeded,
}

// classify turns a decoded error envelope into a typed APIError.
// The API-key special case overrides the table lookup.
func classify(httpStatus int, env errorEnvelope) *APIError {
	kind := statusKinds[env.Status]
	if env.Status == "INVALID_ARGUMENT" && env.Message == invalidKeyMessage {
		kind = ErrRequestDenied
	}

	return &APIError{
		HTTPStatus: httpStatus,
		Status:     env.Status,
		Message:    env.Message,
		kind:       kind,
	}
}
