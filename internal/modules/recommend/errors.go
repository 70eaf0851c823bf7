package recommend

import "errors"

var (
	ErrInvalidInput = errors.New("invalid recommendation input")
	ErrNotFound     = errors.New("job not found")
	ErrUnauthorized = errors.New("caller is not the owner of this job")
	ErrNoBids       = errors.New("no bids to rank")
)
