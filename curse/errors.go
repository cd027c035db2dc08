package curse

import (
	"errors"
	"fmt"
)

// The two error kinds the package raises. Precondition violations are
// caller-fixable and are reported before any provider is contacted; everything
// else returned as an error is a domain failure from a backend. Panics are
// programming errors and are never translated into either kind.
var (
	// ErrPrecondition marks an invalid argument: an out-of-range ID, a
	// missing required parameter or a non-positive formatting parameter.
	ErrPrecondition = errors.New("invalid argument")

	// ErrUnavailable marks a backend that reports itself as permanently
	// unreachable.
	ErrUnavailable = errors.New("backend unavailable")

	// ErrUnresolved marks a derived value that could not be resolved even
	// though its ID is known, e.g. a file whose project no provider returns.
	ErrUnresolved = errors.New("could not be resolved")
)

func preconditionf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrPrecondition, fmt.Sprintf(format, args...))
}

func unresolvedf(format string, args ...any) error {
	return fmt.Errorf("%s %w", fmt.Sprintf(format, args...), ErrUnresolved)
}
