package request

import "errors"

var (
	ErrInvalidInput = errors.New("invalid request input")
	ErrNotFound     = errors.New("service request not found")
)
