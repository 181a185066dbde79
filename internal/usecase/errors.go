package usecase

import (
	stderrors "errors"

	"github.com/cockroachdb/errors"
)

var (
	ErrInvalidInput          = stderrors.New("invalid input")
	ErrNotFound              = stderrors.New("resource not found")
	ErrUnauthorized          = stderrors.New("unauthorized")
	ErrDependencyUnavailable = stderrors.New("dependency unavailable")
	ErrSyncAlreadyRunning    = stderrors.New("sync already running")
	ErrRateLimited           = stderrors.New("provider rate limited")
)

// Failure classification markers. A sync run counts API, data, and matching
// failures separately and only aborts on systemic ones.
var (
	errClassAPI      = stderrors.New("api failure")
	errClassData     = stderrors.New("data failure")
	errClassMatching = stderrors.New("matching failure")
	errClassSystemic = stderrors.New("systemic failure")
)

func markAPIError(err error) error {
	if err == nil {
		return nil
	}
	return errors.Mark(err, errClassAPI)
}

func markDataError(err error) error {
	if err == nil {
		return nil
	}
	return errors.Mark(err, errClassData)
}

func markMatchingError(err error) error {
	if err == nil {
		return nil
	}
	return errors.Mark(err, errClassMatching)
}

func markSystemicError(err error) error {
	if err == nil {
		return nil
	}
	return errors.Mark(err, errClassSystemic)
}

func IsAPIError(err error) bool      { return errors.Is(err, errClassAPI) }
func IsDataError(err error) bool     { return errors.Is(err, errClassData) }
func IsMatchingError(err error) bool { return errors.Is(err, errClassMatching) }
func IsSystemicError(err error) bool { return errors.Is(err, errClassSystemic) }
