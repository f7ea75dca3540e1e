// Package msqerr defines the error kinds shared across the search: a
// configuration error for bad CLI input, and a logic error for invariant
// violations that should be unreachable.
package msqerr

import "errors"

// ErrConfiguration marks an error caused by invalid external configuration
// (CLI flags, an out-of-range search window, and so on).
var ErrConfiguration = errors.New("msq3: configuration error")

// ErrLogic marks an invariant violation that should be unreachable, such as
// the prime-to-triple kernel being called on a non-Pythagorean prime. It is
// returned rather than panicked so callers can choose how to abort, but it
// must never be recovered from as an ordinary, retryable failure.
var ErrLogic = errors.New("msq3: logic error")

// IsConfiguration reports whether err (or something it wraps) is
// ErrConfiguration, the distinction cmd/msq3 uses to choose its exit code.
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}
