package types

import "github.com/golang-jwt/jwt/v5"

// Claims is the token payload issued by the identity provider.
type Claims struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	Name        string `json:"name,omitempty"`
	Role        string `json:"role"`
	Institution string `json:"institution"`
	jwt.RegisteredClaims
}
