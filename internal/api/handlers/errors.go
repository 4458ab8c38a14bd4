package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	apperrors "github.com/linskybing/moderation-platform/internal/errors"
	"github.com/linskybing/moderation-platform/internal/workflow"
	"github.com/linskybing/moderation-platform/pkg/response"
	"github.com/linskybing/moderation-platform/pkg/utils"
)

// respondError is the single place where error kinds become HTTP statuses.
func respondError(c *gin.Context, err error) {
	kind := apperrors.KindOf(err)
	if kind == apperrors.KindUnknown || kind == apperrors.KindUnavailable {
		log.Printf("[ERROR] %s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	c.JSON(kind.HTTPStatus(), response.ErrorResponse{Error: apperrors.Message(err), Code: string(kind)})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: msg, Code: string(apperrors.KindInvalidArgument)})
}

// bindError turns binding failures into readable messages for the frontend.
func bindError(c *gin.Context, err error) {
	var verr validator.ValidationErrors
	if !errors.As(err, &verr) {
		badRequest(c, "Invalid input")
		return
	}

	msgs := make([]string, 0, len(verr))
	for _, fe := range verr {
		lbl := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", lbl))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s]", lbl, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", lbl))
		}
	}
	badRequest(c, strings.Join(msgs, "; "))
}

// actorOrAbort resolves the caller; it has already answered when ok is false.
func actorOrAbort(c *gin.Context) (workflow.Actor, bool) {
	actor, err := utils.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized", Code: "UNAUTHENTICATED"})
		return workflow.Actor{}, false
	}
	return actor, true
}
