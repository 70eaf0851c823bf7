package review

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid review input")
	ErrNotFound        = errors.New("job not found")
	ErrUnauthorized    = errors.New("caller is not the owner of this job")
	ErrNotReady        = errors.New("job is not ready for review")
	ErrAlreadyReviewed = errors.New("job has already been reviewed")
)
