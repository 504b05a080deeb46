// Package domain defines the error values shared across the service.
//
// Request-path failures collapse to ErrUnauthenticated; startup failures
// wrap ErrInvalidConfig so callers can tell them apart with errors.Is.
package domain
