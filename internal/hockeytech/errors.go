package hockeytech

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes a failed fetch so callers can decide between
// retrying later and treating the id as absent upstream.
type ErrorKind string

const (
	// Transient covers network failures, timeouts, 429 and 5xx responses.
	// The client has already retried these before surfacing the error.
	Transient ErrorKind = "transient"
	// NotFound covers upstream 404s and empty envelopes for a
	// specific-id request.
	NotFound ErrorKind = "not_found"
)

// FetchError is the only error type fetch operations return. Op names the
// operation ("schedule", "play_by_play", ...), Kind categorizes the failure,
// Err carries the underlying cause.
type FetchError struct {
	Op   string
	Kind ErrorKind
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("hockeytech %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a FetchError of kind NotFound.
func IsNotFound(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Kind == NotFound
}

// IsTransient reports whether err is a FetchError of kind Transient.
func IsTransient(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Kind == Transient
}
