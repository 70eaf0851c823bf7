package bid

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid bid input")
	ErrNotFound        = errors.New("job or bid not found")
	ErrUnauthorized    = errors.New("caller is not the owner of this request")
	ErrAlreadyAssigned = errors.New("request already has an accepted bid")
)
