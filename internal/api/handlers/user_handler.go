package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/moderation-platform/internal/application"
	"github.com/linskybing/moderation-platform/internal/domain/user"
	"github.com/linskybing/moderation-platform/pkg/response"
)

type UserHandler struct {
	svc *application.UserService
}

func NewUserHandler(svc *application.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// GetUsers godoc
// @Summary List users
// @Description Institution managers only see their own institution.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} user.User
// @Failure 403 {object} response.ErrorResponse
// @Router /users [get]
func (h *UserHandler) GetUsers(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	users, err := h.svc.ListUsers(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// UpdateRole godoc
// @Summary Change a user's role
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body user.UpdateRoleDTO true "Role change"
// @Success 200 {object} user.User
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /users/update-role [post]
func (h *UserHandler) UpdateRole(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var input user.UpdateRoleDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	u, err := h.svc.UpdateRole(c.Request.Context(), actor, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// ApproveUser godoc
// @Summary Approve or reject a pending account
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body user.ApproveUserDTO true "approve or reject"
// @Success 200 {object} user.User
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /users/approve [post]
func (h *UserHandler) ApproveUser(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var input user.ApproveUserDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	u, err := h.svc.ApproveUser(c.Request.Context(), actor, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// RemoveUser godoc
// @Summary Remove a user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body user.RemoveUserDTO true "User and reason"
// @Success 200 {object} response.MessageResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /users/remove [post]
func (h *UserHandler) RemoveUser(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var input user.RemoveUserDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	if err := h.svc.RemoveUser(c.Request.Context(), actor, input); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "User removed"})
}
