package rcon

import (
	"errors"
	"fmt"
)

var (
	// ErrConnectionTimeout means the connection did not reach an open state
	// within the configured timeout.
	ErrConnectionTimeout = errors.New("connection timed out, check your host and port")

	// ErrAuthentication means the server refused the connection, which is how
	// WebRcon signals a wrong password.
	ErrAuthentication = errors.New("authentication failed, check your password")

	// ErrResponseTimeout means the command was sent but no reply frame arrived
	// within the configured timeout.
	ErrResponseTimeout = errors.New("server did not respond in time")
)

// InvalidResponseError means a frame arrived but was not a usable answer:
// either it was not valid JSON, or its identifier did not match the request.
// Raw holds the offending frame for diagnostics.
type InvalidResponseError struct {
	Reason string
	Raw    []byte
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("invalid response from server: %s", e.Reason)
}
