package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/moderation-platform/internal/application"
	"github.com/linskybing/moderation-platform/internal/domain/review"
	"github.com/linskybing/moderation-platform/pkg/utils"
)

type ReviewHandler struct {
	svc      *application.ReviewService
	workflow *application.WorkflowService
}

func NewReviewHandler(svc *application.ReviewService, wf *application.WorkflowService) *ReviewHandler {
	return &ReviewHandler{svc: svc, workflow: wf}
}

// SubmitReview godoc
// @Summary Record a review decision
// @Description The caller must own the submission's current stage. The decision may be sent as "decision" or "status".
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body review.SubmitReviewDTO true "Decision"
// @Success 201 {object} review.Review
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /reviews [post]
func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var input review.SubmitReviewDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	if strings.TrimSpace(input.SubmissionID) == "" {
		badRequest(c, "submission_id is required")
		return
	}

	rec, err := h.workflow.SubmitReview(c.Request.Context(), actor, application.SubmitReviewInput{
		SubmissionID: input.SubmissionID,
		Decision:     input.DecisionValue(),
		Comments:     input.Comments,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// ResetSubmission godoc
// @Summary Return a corrected submission to intake
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body review.ResetSubmissionDTO true "Submission"
// @Success 200 {object} submission.Submission
// @Failure 403 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /reviews/reset [post]
func (h *ReviewHandler) ResetSubmission(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var input review.ResetSubmissionDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	if strings.TrimSpace(input.SubmissionID) == "" {
		badRequest(c, "submission_id is required")
		return
	}

	sub, err := h.workflow.ResetSubmission(c.Request.Context(), actor, input.SubmissionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

// ListReviews godoc
// @Summary List review records
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param submission_id query string false "Single submission ID"
// @Param submission_ids query string false "Comma-separated submission IDs, at most 100"
// @Success 200 {array} review.Review
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /reviews [get]
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	reviews, err := h.svc.List(c.Request.Context(), actor, utils.QueryList(c, "submission_id", "submission_ids"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}
