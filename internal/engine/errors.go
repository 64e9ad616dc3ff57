package engine

import (
	"errors"
	"fmt"
)

// Kind classifies engine failures. The string value is what callers see in
// the "error" field of a failed response.
type Kind string

const (
	KindInvalidKey       Kind = "InvalidKey"
	KindInvalidScale     Kind = "InvalidScale"
	KindInvalidBars      Kind = "InvalidBars"
	KindInvalidCadence   Kind = "InvalidCadence"
	KindInvalidVoicing   Kind = "InvalidVoicing"
	KindInvalidInversion Kind = "InvalidInversion"
	KindInvalidPlayback  Kind = "InvalidPlayback"
	KindInternal         Kind = "InternalError"
)

// Error is a structured engine failure.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same Kind, so the sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is checks.
var (
	ErrInvalidKey       = &Error{Kind: KindInvalidKey, Message: "invalid key"}
	ErrInvalidScale     = &Error{Kind: KindInvalidScale, Message: "invalid scale"}
	ErrInvalidBars      = &Error{Kind: KindInvalidBars, Message: "invalid bars"}
	ErrInvalidCadence   = &Error{Kind: KindInvalidCadence, Message: "invalid cadence"}
	ErrInvalidVoicing   = &Error{Kind: KindInvalidVoicing, Message: "invalid voicing"}
	ErrInvalidInversion = &Error{Kind: KindInvalidInversion, Message: "invalid inversion"}
	ErrInvalidPlayback  = &Error{Kind: KindInvalidPlayback, Message: "invalid playback"}
)

func newError(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: cause}
}

// KindOf returns the Kind of err, or KindInternal when err is not an engine error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
