package common

import "errors"

var (
	// Validation errors raised before any request is sent.
	ErrorValidation = errors.New("validation error")
	ErrEmptyFile    = errors.New("file is empty")

	// Token lifecycle errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
