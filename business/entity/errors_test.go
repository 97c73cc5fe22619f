package entity

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRejectedErrorIs(t *testing.T) {
	tests := []struct {
		reason string
		target error
	}{
		{reason: ReasonUnsupported, target: ErrUnsupportedRoom},
		{reason: ReasonConnectedOther, target: ErrConflictingConnection},
		{reason: ReasonAlreadyConnected, target: ErrAlreadyInTargetState},
		{reason: ReasonAlreadyDisconnected, target: ErrAlreadyInTargetState},
		{reason: "", target: ErrActionRejected},
		{reason: "something-else", target: ErrActionRejected},
	}

	for _, tt := range tests {
		err := (&StatusResponse{Reason: tt.reason}).Err()
		assert.ErrorIs(t, err, tt.target, tt.reason)
		assert.ErrorIs(t, fmt.Errorf("wrapped: %w", err), tt.target, tt.reason)
	}

	assert.NoError(t, (&StatusResponse{Success: true}).Err())
}

func TestTransportError(t *testing.T) {
	cause := errors.New("connection refused")
	err := &TransportError{Method: "GET", URL: "http://host/status", Err: cause}

	assert.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "GET http://host/status: connection refused", err.Error())
	assert.Empty(t, ErrorMessage(err))

	err = &TransportError{Method: "POST", URL: "http://host/connect", StatusCode: 403, Message: "Not authorized"}
	assert.Equal(t, "Not authorized", ErrorMessage(fmt.Errorf("x: %w", err)))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "busy", ErrorMessage(&RejectedError{Reason: "x", Message: "busy"}))
	assert.Empty(t, ErrorMessage(errors.New("plain")))
}
