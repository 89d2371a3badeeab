package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest is returned before any store mutation for malformed input.
	ErrInvalidRequest = errors.New("invalid request")
	ErrCannotLikeSelf = fmt.Errorf("%w: cannot like yourself", ErrInvalidRequest)

	ErrProfileNotFound = errors.New("profile not found")
	ErrLikeNotFound    = errors.New("like not found")
	ErrMatchNotFound   = errors.New("match not found")

	// Conflicts on insert-if-absent. Callers treat them as success of the existing record.
	ErrLikeAlreadyExists  = errors.New("like already exists")
	ErrMatchAlreadyExists = errors.New("match already exists")

	// ErrStoreUnavailable marks a retryable collaborator failure (timeout, lost connection).
	ErrStoreUnavailable = errors.New("store unavailable")
)

// IsNotFound reports whether err is any of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProfileNotFound) ||
		errors.Is(err, ErrLikeNotFound) ||
		errors.Is(err, ErrMatchNotFound)
}

// InvalidRequestf wraps ErrInvalidRequest with a caller-facing message.
func InvalidRequestf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}
