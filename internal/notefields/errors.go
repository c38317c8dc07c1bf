package notefields

import "github.com/pkg/errors"

var (
	// ErrClosed is returned once the statements have been retired.
	ErrClosed = errors.New("notefields: statements already closed")
	// ErrUnavailable means the statements could not be built on the
	// installed connection, or no connection was installed.
	ErrUnavailable = errors.New("notefields: data layer unavailable")
)
