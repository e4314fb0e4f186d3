package contextapi

import "errors"

// Error kinds surfaced by the client. Callers distinguish them with
// errors.Is; the message on the chain carries the detail.
var (
	// ErrTransport covers unreachable servers, timeouts and non-auth
	// HTTP error statuses.
	ErrTransport = errors.New("context api unreachable")

	// ErrDecode covers syntactically broken response payloads.
	ErrDecode = errors.New("context api returned malformed payload")

	// ErrAuthorization covers rejected API keys or sessions.
	ErrAuthorization = errors.New("context api rejected credentials")

	// ErrCircuitOpen is returned when the circuit breaker rejects a
	// request without sending it.
	ErrCircuitOpen = errors.New("circuit breaker is open")
)
