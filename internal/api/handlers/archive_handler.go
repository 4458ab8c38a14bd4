package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/moderation-platform/internal/application"
)

type ArchiveHandler struct {
	svc *application.SubmissionService
}

func NewArchiveHandler(svc *application.SubmissionService) *ArchiveHandler {
	return &ArchiveHandler{svc: svc}
}

// GetArchive godoc
// @Summary List archived submissions
// @Description Returns the approved submissions visible to the caller with the date their files may be purged.
// @Tags archive
// @Produce json
// @Security BearerAuth
// @Success 200 {array} submission.ArchivedSubmission
// @Failure 401 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse
// @Router /archive [get]
func (h *ArchiveHandler) GetArchive(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	archived, err := h.svc.Archive(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, archived)
}
