package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/linskybing/moderation-platform/internal/domain/user"
	"github.com/linskybing/moderation-platform/pkg/response"
	"github.com/linskybing/moderation-platform/pkg/types"
	"github.com/linskybing/moderation-platform/pkg/utils"
)

var (
	jwtKey    []byte
	jwtIssuer string
)

// Init sets the JWT verification key and expected issuer.
func Init(secret, issuer string) {
	jwtKey = []byte(secret)
	jwtIssuer = issuer
}

// GenerateToken signs claims. Tokens are normally minted by the identity
// provider; this exists for tooling and tests.
var GenerateToken = func(claims types.Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   claims.UserID,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    jwtIssuer,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	return token.SignedString(jwtKey)
}

// ParseToken validates and extracts claims.
func ParseToken(tokenStr string) (*types.Claims, error) {
	claims := &types.Claims{}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if jwtIssuer != "" {
		opts = append(opts, jwt.WithIssuer(jwtIssuer))
	}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return jwtKey, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.UserID == "" || !user.Role(claims.Role).Valid() {
		return nil, errors.New("token is missing user_id or carries an unknown role")
	}
	return claims, nil
}

func tokenFromRequest(c *gin.Context) (string, error) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return "", errors.New("Authorization header format must be Bearer {token}")
		}
		return parts[1], nil
	}
	if cookie, err := c.Cookie("token"); err == nil && cookie != "" {
		return cookie, nil
	}
	// Browsers cannot set headers on a websocket handshake.
	if strings.EqualFold(c.GetHeader("Upgrade"), "websocket") {
		if q := c.Query("token"); q != "" {
			return q, nil
		}
	}
	return "", errors.New("Authorization required (header or cookie)")
}

// JWTAuthMiddleware validates Bearer token in Authorization header or cookie.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := tokenFromRequest(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{Error: err.Error(), Code: "UNAUTHENTICATED"})
			return
		}

		claims, err := ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Invalid token: " + err.Error(), Code: "UNAUTHENTICATED"})
			return
		}

		c.Set(utils.ClaimsKey, claims)
		c.Next()
	}
}
