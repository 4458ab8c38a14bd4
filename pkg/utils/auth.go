package utils

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/moderation-platform/internal/domain/user"
	"github.com/linskybing/moderation-platform/internal/workflow"
	"github.com/linskybing/moderation-platform/pkg/types"
)

// ClaimsKey is where the JWT middleware stores verified claims.
const ClaimsKey = "claims"

var (
	ErrNoClaims     = errors.New("user claims not found in context")
	ErrClaimsFormat = errors.New("invalid user claims type")
)

func GetClaims(c *gin.Context) (*types.Claims, error) {
	claimsVal, exists := c.Get(ClaimsKey)
	if !exists {
		return nil, ErrNoClaims
	}
	claims, ok := claimsVal.(*types.Claims)
	if !ok {
		return nil, ErrClaimsFormat
	}
	return claims, nil
}

var GetUserIDFromContext = func(c *gin.Context) (string, error) {
	claims, err := GetClaims(c)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

// ActorFromContext builds the workflow actor for the current request.
var ActorFromContext = func(c *gin.Context) (workflow.Actor, error) {
	claims, err := GetClaims(c)
	if err != nil {
		return workflow.Actor{}, err
	}
	return workflow.Actor{
		UserID:      claims.UserID,
		Email:       claims.Email,
		Name:        claims.Name,
		Role:        user.Role(claims.Role),
		Institution: claims.Institution,
		IPAddress:   c.ClientIP(),
		UserAgent:   c.GetHeader("User-Agent"),
	}, nil
}
