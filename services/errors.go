package services

import "fmt"

// GatewayError represents a failed call to the remote order gateway
// (network error, timeout, or a non-auth error status). It is transient and
// user-visible; the console never retries the operation on its own.
type GatewayError struct {
	Op         string // gateway operation that failed, e.g. "list orders"
	StatusCode int    // HTTP status from the gateway, 0 for transport errors
	Message    string
	Err        error
}

func (e *GatewayError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("gateway %s failed with status %d: %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("gateway %s failed: %s", e.Op, e.Message)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// AuthExpiredError indicates the gateway rejected the console's credentials.
// The persisted session is cleared before this error is returned, so the
// caller only needs to send the user back to the login entry point.
type AuthExpiredError struct {
	Op string
}

func (e *AuthExpiredError) Error() string {
	return fmt.Sprintf("authorization rejected during %s, session cleared", e.Op)
}

// ValidationError is rejected input caught before any network call is made.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
