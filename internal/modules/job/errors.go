package job

import "errors"

var (
	ErrNotFound          = errors.New("job not found")
	ErrUnauthorized      = errors.New("caller is not the provider of record")
	ErrInvalidTransition = errors.New("job is not in a state that allows this transition")
)
