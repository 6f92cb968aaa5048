package shared

import "errors"

var (
	// ErrNilResource reports a missing resource handle. This is a
	// programming error, never a runtime condition.
	ErrNilResource = errors.New("resource handle is required")

	// ErrDurationOutOfRange reports a lease duration outside [15s, 60s].
	ErrDurationOutOfRange = errors.New("lease duration must be between 15 and 60 seconds")

	// ErrAttemptsOutOfRange reports an attempt count outside [1, 10].
	ErrAttemptsOutOfRange = errors.New("lease attempt count must be between 1 and 10")

	// ErrLeaseAlreadyPresent marks a remote conflict: the resource is
	// leased by another holder. Backends wrap their native conflict
	// error with this sentinel; every other remote error passes through
	// untouched.
	ErrLeaseAlreadyPresent = errors.New("lease already present")
)

func IsLeaseConflict(err error) bool {
	return errors.Is(err, ErrLeaseAlreadyPresent)
}
