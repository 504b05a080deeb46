// Package auth implements the API-key gate that guards privileged routes.
//
// The gate is a stateless predicate over the Authorization header. It holds
// no locks and performs no I/O, so a single Gate is shared by every request.
package auth
