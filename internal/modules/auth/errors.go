package auth

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid auth input")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)
