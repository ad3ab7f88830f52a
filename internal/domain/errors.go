package domain

import "errors"

var (
	ErrInvalidInput            = errors.New("invalid input")
	ErrForbidden               = errors.New("forbidden")
	ErrInvalidTransition       = errors.New("invalid campaign state transition")
	ErrAlreadyEnrolled         = errors.New("donor already enrolled in campaign")
	ErrDuplicateActiveCampaign = errors.New("beneficiary already has an open campaign")
	ErrNotFound                = errors.New("not found")
	ErrStorageUnavailable      = errors.New("storage unavailable")
)

// IsRetryable reports whether err is a transient infrastructure failure.
// Every other error kind is deterministic for the same input.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStorageUnavailable)
}
