package dto

import (
	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims will be encoded inside the session token
type AuthClaims struct {
	Roles []string `json:"roles,omitempty"`
	// Standard claims (sub, exp, iat) are embedded here
	jwt.RegisteredClaims
}
