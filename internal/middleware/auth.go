package middleware

import (
	"strings"

	"github.com/dimitrije/credential-vault/internal/services"
	"github.com/dimitrije/credential-vault/internal/vault"
	"github.com/m1z23r/drift/pkg/drift"
)

const IdentityKey = "identity"

// TokenValidator is the part of services.JWTService used by Auth.
type TokenValidator interface {
	ValidateAccessToken(token string) (*services.Claims, error)
}

// Auth attributes the caller identity from a bearer token. Handlers behind it
// read the identity with GetIdentity and never from the request body.
func Auth(validator TokenValidator) drift.HandlerFunc {
	return func(c *drift.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Unauthorized("missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
			c.Unauthorized("invalid authorization header format")
			return
		}

		claims, err := validator.ValidateAccessToken(parts[1])
		if err != nil {
			c.Unauthorized("invalid or expired token")
			return
		}

		c.Set(IdentityKey, vault.Identity(claims.Identity))

		c.Next()
	}
}

func GetIdentity(c *drift.Context) vault.Identity {
	if v, ok := c.Get(IdentityKey); ok {
		if id, ok := v.(vault.Identity); ok {
			return id
		}
	}
	return ""
}
