package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/moderation-platform/internal/application"
	"github.com/linskybing/moderation-platform/internal/repository"
	"github.com/linskybing/moderation-platform/pkg/utils"
)

type AuditHandler struct {
	svc *application.AuditService
}

func NewAuditHandler(svc *application.AuditService) *AuditHandler {
	return &AuditHandler{svc: svc}
}

// GetAuditLogs godoc
// @Summary Query audit logs
// @Tags audit
// @Produce json
// @Security BearerAuth
// @Param user_id query string false "Actor ID"
// @Param resource_type query string false "Resource type"
// @Param resource_id query string false "Resource ID"
// @Param action query string false "Action"
// @Param start_time query string false "RFC 3339 lower bound"
// @Param end_time query string false "RFC 3339 upper bound"
// @Param limit query int false "Page size (default 50, max 1000)"
// @Param offset query int false "Offset"
// @Success 200 {array} audit.AuditLog
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /audit-logs [get]
func (h *AuditHandler) GetAuditLogs(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	params := repository.AuditQueryParams{
		UserID:       utils.QueryString(c, "user_id"),
		ResourceType: utils.QueryString(c, "resource_type"),
		ResourceID:   utils.QueryString(c, "resource_id"),
		Action:       utils.QueryString(c, "action"),
	}
	var err error
	if params.StartTime, err = utils.QueryTime(c, "start_time"); err != nil {
		badRequest(c, err.Error())
		return
	}
	if params.EndTime, err = utils.QueryTime(c, "end_time"); err != nil {
		badRequest(c, err.Error())
		return
	}
	if v := c.Query("limit"); v != "" {
		if params.Limit, err = strconv.Atoi(v); err != nil {
			badRequest(c, "limit must be an integer")
			return
		}
	}
	if v := c.Query("offset"); v != "" {
		if params.Offset, err = strconv.Atoi(v); err != nil {
			badRequest(c, "offset must be an integer")
			return
		}
	}

	logs, err := h.svc.QueryAuditLogs(c.Request.Context(), actor, params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}
