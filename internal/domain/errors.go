package domain

import "errors"

var (
	ErrUnauthenticated = errors.New("invalid api key")
	ErrInvalidConfig   = errors.New("invalid configuration")
)
