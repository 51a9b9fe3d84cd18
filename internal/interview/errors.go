package interview

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAcquired is returned when recording is attempted without a live
	// camera/microphone handle.
	ErrNotAcquired = errors.New("capture device not acquired")
	// ErrAlreadyAcquired guards the exclusive-ownership policy: a stream must
	// be released before another flow may open the device.
	ErrAlreadyAcquired = errors.New("capture device already acquired")
	// ErrCaptureBusy is returned while a countdown or recording is running.
	ErrCaptureBusy = errors.New("capture already in progress")
	// ErrReleased is returned by an in-flight recording when the hardware
	// handle is torn down underneath it.
	ErrReleased = errors.New("capture device released")

	// ErrMaxAttempts rejects a take once the retake budget is spent.
	ErrMaxAttempts = errors.New("maximum attempts reached")
	// ErrNoSelection is returned when advancing without a confirmed take.
	ErrNoSelection = errors.New("no take selected")

	ErrInvalidTransition = errors.New("invalid state transition")
	ErrForwardNavigation = errors.New("cannot navigate to a future question")
	ErrIdentityRequired  = errors.New("candidate name and email are required")
	ErrJobLinkNotFound   = errors.New("job not found or link inactive")
	ErrNothingToUpload   = errors.New("no finalized responses to upload")
	ErrNoQuestions       = errors.New("interview has no questions")
)

// PermissionError wraps a failed camera/microphone acquisition. It is terminal
// for the session: recording cannot proceed without the capability.
type PermissionError struct {
	Err error
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("camera/microphone access denied: %v", e.Err)
}

func (e *PermissionError) Unwrap() error { return e.Err }

// UploadError identifies which item of the sequence failed. Position is
// 1-based; a failure during the completion handshake reports the position one
// past the last item.
type UploadError struct {
	Position int
	Total    int
	Err      error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %d of %d failed: %v", e.Position, e.Total, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }
