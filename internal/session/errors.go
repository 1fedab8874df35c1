// ABOUTME: Error taxonomy for session commands
// ABOUTME: ValidationError rejects before any network call; TransportError is recoverable

package session

import (
	"errors"
	"fmt"
)

// ErrActionPending is reported when a command arrives while another
// command for the same session is still in flight.
var ErrActionPending = errors.New("another action is already pending")

// ErrNoSession is reported when a command arrives with no open session.
var ErrNoSession = errors.New("no meeting session is open")

// ValidationError marks a command that was rejected synchronously, before
// any backend call was made. Session state is unchanged.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Reason
}

// TransportError marks a recoverable backend failure. The session remains
// usable; retry is a user-initiated repetition of the same command.
type TransportError struct {
	Op  string // "list messages", "create message", "trigger reply"
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is a validation rejection.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
