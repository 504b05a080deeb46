package auth

import (
	"strings"

	"github.com/amaumene/personal-backend/internal/domain"
)

const bearerScheme = "bearer"

// Validator decides whether a presented credential is acceptable.
// *config.Config satisfies it.
type Validator interface {
	ValidateAPIKey(key string) bool
}

type Gate struct {
	validator Validator
}

func NewGate(validator Validator) *Gate {
	return &Gate{validator: validator}
}

// Check returns nil when authorization carries a bearer credential the
// validator accepts, and domain.ErrUnauthenticated otherwise.
func (g *Gate) Check(authorization string) error {
	token, ok := BearerToken(authorization)
	if !ok {
		return domain.ErrUnauthenticated
	}
	if !g.validator.ValidateAPIKey(token) {
		return domain.ErrUnauthenticated
	}
	return nil
}

// BearerToken extracts the credential from an Authorization header value.
// The scheme is compared case-insensitively; everything after the first
// space is the credential.
func BearerToken(authorization string) (string, bool) {
	scheme, token, found := strings.Cut(authorization, " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) || token == "" {
		return "", false
	}
	return token, true
}
