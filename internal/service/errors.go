package service

import "errors"

// Sentinel errors the controllers translate into response envelopes. Anything
// not matched here is treated as an internal fault.
var (
	ErrJobNotFound         = errors.New("job not found")
	ErrQuestionNotFound    = errors.New("question not found")
	ErrCandidateNotFound   = errors.New("candidate not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrSubmissionNotFound  = errors.New("submission not found")
	ErrEmailTaken          = errors.New("email already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrJobLocked           = errors.New("job already has applications; questions are immutable once an interview is underway")
)
