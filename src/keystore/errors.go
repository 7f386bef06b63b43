package keystore

import (
	"errors"
	"fmt"
)

// KeyErrType enumerates the ways a keystore operation can fail.
type KeyErrType uint32

const (
	// AlreadyInitialized means a keyfile exists where a new one was requested.
	AlreadyInitialized KeyErrType = iota
	// NotInitialized means no keyfile exists where one was expected.
	NotInitialized
	// IoFailure covers every other filesystem error: permissions, disk
	// full, unreadable file.
	IoFailure
	// DecodeFailure means the keyfile exists but does not contain a valid
	// key.
	DecodeFailure
)

// String ...
func (t KeyErrType) String() string {
	switch t {
	case AlreadyInitialized:
		return "AlreadyInitialized"
	case NotInitialized:
		return "NotInitialized"
	case IoFailure:
		return "IoFailure"
	case DecodeFailure:
		return "DecodeFailure"
	default:
		return "Unknown"
	}
}

// KeyErr is the error returned by keystore operations. It carries the
// failure kind, the directory it concerns, and the underlying cause if any.
type KeyErr struct {
	errType KeyErrType
	dir     string
	cause   error
}

// NewKeyErr builds a KeyErr. Components composing the keystore with other
// storage use it to report their own failures in the same terms.
func NewKeyErr(errType KeyErrType, dir string, cause error) KeyErr {
	return KeyErr{
		errType: errType,
		dir:     dir,
		cause:   cause,
	}
}

// Type returns the failure kind.
func (e KeyErr) Type() KeyErrType {
	return e.errType
}

// Error ...
func (e KeyErr) Error() string {
	var m string
	switch e.errType {
	case AlreadyInitialized:
		m = fmt.Sprintf("a key already lives under %s", e.dir)
	case NotInitialized:
		m = fmt.Sprintf("no key found under %s", e.dir)
	case IoFailure:
		m = fmt.Sprintf("keyfile I/O under %s", e.dir)
	case DecodeFailure:
		m = fmt.Sprintf("cannot decode keyfile under %s", e.dir)
	default:
		m = fmt.Sprintf("keystore error under %s", e.dir)
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %v", m, e.cause)
	}
	return m
}

// Unwrap returns the underlying cause.
func (e KeyErr) Unwrap() error {
	return e.cause
}

// Is checks that err is, or wraps, a KeyErr of the given kind.
func Is(err error, t KeyErrType) bool {
	var keyErr KeyErr
	return errors.As(err, &keyErr) && keyErr.errType == t
}
