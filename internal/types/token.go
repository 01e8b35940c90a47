package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims represents the claims of a bearer token issued by the identity
// provider. The user id is the registered subject.
type TokenClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// UserID returns the subject of the token
func (c *TokenClaims) UserID() string {
	return c.Subject
}
