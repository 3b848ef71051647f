package ai

import "errors"

// The gateway's closed error set. Callers only ever observe these four
// kinds; raw transport errors never escape.
var (
	// ErrMissingCredential means no API credential is configured. The
	// gateway checks this before building any request.
	ErrMissingCredential = errors.New("no API credential configured")

	// ErrEmptyResponse means the service returned no usable content.
	ErrEmptyResponse = errors.New("AI service returned an empty response")

	// ErrMalformedResponse means the response did not satisfy the
	// structured-output contract.
	ErrMalformedResponse = errors.New("AI service returned a malformed response")
)

// TransportError wraps a network or HTTP-status failure. It is
// user-indistinguishable from a malformed response but stays a distinct
// type for diagnostics.
type TransportError struct {
	err error
}

func (e *TransportError) Error() string {
	return e.err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.err
}

// NewTransportError wraps an error as a transport failure.
func NewTransportError(err error) error {
	return &TransportError{err: err}
}

// IsTransport reports whether err is a transport failure.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
