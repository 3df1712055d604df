package apperr

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrUnavailable   = errors.New("content store unavailable")
	ErrInvalidInput  = errors.New("invalid input")
	ErrMailDelivery  = errors.New("mail delivery failed")
)
