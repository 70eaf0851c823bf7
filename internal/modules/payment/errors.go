package payment

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid payment input")
	ErrNotFound         = errors.New("job not found")
	ErrUnauthorized     = errors.New("caller is not the owner of this job")
	ErrNotPayable       = errors.New("job is not ready for payment")
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrExternalService  = errors.New("payment gateway unavailable")
)
