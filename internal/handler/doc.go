// Package handler implements HTTP request handlers.
//
// This package provides HTTP endpoints for:
// - /: service name and version, no authentication
// - /health: health check, requires "Authorization: Bearer <API_KEY>"
//
// Unknown paths and unsupported methods answer with a JSON "detail" body.
// The middlewares here tag requests with an id, log them, and gate the
// protected routes on the API key.
package handler
