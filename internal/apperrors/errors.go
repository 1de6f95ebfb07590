package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested location could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrInputTimeout indicates that a requester did not answer a dialog question in time.
var ErrInputTimeout = errors.New("input timed out")

// ErrPrecondition indicates that a workflow transition is not allowed from the current state.
var ErrPrecondition = errors.New("precondition failed")

// ErrBusy indicates that the requester already has an intake dialog open.
var ErrBusy = errors.New("dialog already in progress")

// ErrRemoteSync indicates that the remote console could not be reached or rejected the command.
// Connection, authentication and timeout failures all collapse into this category.
var ErrRemoteSync = errors.New("remote console error")

// ErrMarkerParse indicates that the console answered but no marker id could be recovered.
// The marker may exist on the map.
var ErrMarkerParse = errors.New("marker id not found in console response")

// MarkerParseError carries the raw console response that could not be parsed.
type MarkerParseError struct {
	Response string
}

func (e *MarkerParseError) Error() string {
	return fmt.Sprintf("%s: %q", ErrMarkerParse.Error(), e.Response)
}

// Is lets errors.Is(err, ErrMarkerParse) match.
func (e *MarkerParseError) Is(target error) bool {
	return target == ErrMarkerParse
}

// NewRemoteSyncError wraps a transport error into the remote console category.
func NewRemoteSyncError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrRemoteSync, op, err)
}

// NewValidationFailedError returns an ErrValidation carrying a user-facing reason.
func NewValidationFailedError(reason string) error {
	return fmt.Errorf("%w: %s", ErrValidation, reason)
}

// NewPreconditionError returns an ErrPrecondition carrying a user-facing reason.
func NewPreconditionError(reason string) error {
	return fmt.Errorf("%w: %s", ErrPrecondition, reason)
}
