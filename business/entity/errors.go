package entity

import (
	"errors"
	"fmt"
)

var (
	ErrTransport             = errors.New("request failed")
	ErrActionRejected        = errors.New("action rejected")
	ErrAlreadyInTargetState  = errors.New("already in target state")
	ErrConflictingConnection = errors.New("room connected to another videoconference room")
	ErrPollExhausted         = errors.New("status polling attempts exhausted")
	ErrUnsupportedRoom       = errors.New("unsupported room")
	ErrButtonDisabled        = errors.New("button disabled")
	ErrUnknownRoom           = errors.New("unknown room")
)

// TransportError is returned when a request to the host failed outright:
// network failure, non-2xx answer or an undecodable body.
type TransportError struct {
	Method     string
	URL        string
	StatusCode int
	// Message is the host supplied error text, if the body carried one.
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("%s %s: %s", e.Method, e.URL, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s %s: status %d", e.Method, e.URL, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
	default:
		return fmt.Sprintf("%s %s: %v", e.Method, e.URL, ErrTransport)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// RejectedError is an answer with success=false. Is maps the reason onto the
// matching sentinel.
type RejectedError struct {
	Reason  string
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("rejected: %s", e.Reason)
	}
	if e.Reason == "" {
		return fmt.Sprintf("rejected: %s", e.Message)
	}
	return fmt.Sprintf("rejected (%s): %s", e.Reason, e.Message)
}

func (e *RejectedError) Is(target error) bool {
	switch e.Reason {
	case ReasonUnsupported:
		return target == ErrUnsupportedRoom
	case ReasonConnectedOther:
		return target == ErrConflictingConnection
	case ReasonAlreadyConnected, ReasonAlreadyDisconnected:
		return target == ErrAlreadyInTargetState
	default:
		return target == ErrActionRejected
	}
}

// ErrorMessage returns the user facing text carried by err, or "" when err
// has none.
func ErrorMessage(err error) string {
	var te *TransportError
	if errors.As(err, &te) {
		return te.Message
	}
	var re *RejectedError
	if errors.As(err, &re) {
		return re.Message
	}
	return ""
}
