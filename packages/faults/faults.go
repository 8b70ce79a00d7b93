// Package faults contains the error kinds shared by the codecs, the domain model and the resolver.
//
// Errors returned by this module wrap one of the kinds below, so callers can classify a failure with errors.Is
// without matching on messages.
package faults

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrFormat is returned if a value is malformed: an unparsable duration, an unknown enum discriminant, invalid hex
	// or a reserved field that is not zero.
	ErrFormat = errors.New("invalid format")

	// ErrLength is returned if a buffer is shorter than the fixed width of the field that is being decoded.
	ErrLength = errors.New("invalid length")

	// ErrState is returned if an operation is not allowed in the current state of a value, e.g. resolving the aliases
	// of a transaction that was not confirmed yet.
	ErrState = errors.New("invalid state")

	// ErrNotFound is returned if a receipt statement holds no resolution for an aliased reference.
	ErrNotFound = errors.New("not found")
)

// IsFormat returns true if the error is (or wraps) ErrFormat.
func IsFormat(err error) bool {
	return errors.Is(err, ErrFormat)
}

// IsLength returns true if the error is (or wraps) ErrLength.
func IsLength(err error) bool {
	return errors.Is(err, ErrLength)
}

// IsState returns true if the error is (or wraps) ErrState.
func IsState(err error) bool {
	return errors.Is(err, ErrState)
}

// IsNotFound returns true if the error is (or wraps) ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
