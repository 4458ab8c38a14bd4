package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/moderation-platform/internal/application"
	"github.com/linskybing/moderation-platform/internal/domain/submission"
	"github.com/linskybing/moderation-platform/pkg/utils"
)

type SubmissionHandler struct {
	svc      *application.SubmissionService
	workflow *application.WorkflowService
}

func NewSubmissionHandler(svc *application.SubmissionService, wf *application.WorkflowService) *SubmissionHandler {
	return &SubmissionHandler{svc: svc, workflow: wf}
}

// CreateSubmission godoc
// @Summary Create a submission
// @Description Creates a draft submission owned by the caller. The reference code is generated server-side.
// @Tags submissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body submission.CreateSubmissionDTO true "Submission"
// @Success 201 {object} submission.Submission
// @Failure 400 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse
// @Router /submissions [post]
func (h *SubmissionHandler) CreateSubmission(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var input submission.CreateSubmissionDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	sub, err := h.svc.Create(c.Request.Context(), actor, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

// ListSubmissions godoc
// @Summary List submissions visible to the caller
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} submission.Submission
// @Failure 503 {object} response.ErrorResponse
// @Router /submissions [get]
func (h *SubmissionHandler) ListSubmissions(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	subs, err := h.svc.List(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, subs)
}

// GetSubmission godoc
// @Summary Get a submission with its documents
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Submission ID"
// @Success 200 {object} submission.Submission
// @Failure 404 {object} response.ErrorResponse
// @Router /submissions/{id} [get]
func (h *SubmissionHandler) GetSubmission(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	sub, err := h.svc.Get(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

// UploadDocument godoc
// @Summary Attach a document to a submission
// @Description Accepts PDF, Word (.doc, .docx), JPEG and PNG files up to 10 MiB.
// @Tags submissions
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Submission ID"
// @Param file formData file true "Document"
// @Success 201 {object} submission.Document
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /submissions/{id}/documents [post]
func (h *SubmissionHandler) UploadDocument(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "file is required")
		return
	}
	f, err := fh.Open()
	if err != nil {
		badRequest(c, "cannot read uploaded file")
		return
	}
	defer f.Close()

	doc, err := h.svc.UploadDocument(c.Request.Context(), actor, id, submission.DocumentUpload{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
	}, f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, doc)
}

// SubmitForReview godoc
// @Summary Move a draft into intake
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Submission ID"
// @Success 200 {object} submission.Submission
// @Failure 409 {object} response.ErrorResponse
// @Router /submissions/{id}/submit [post]
func (h *SubmissionHandler) SubmitForReview(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	sub, err := h.workflow.SubmitForReview(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

// AssignReviewers godoc
// @Summary Start the review pipeline
// @Description Moves an intake submission into the first review stage, optionally binding a reviewer.
// @Tags submissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Submission ID"
// @Param input body submission.AssignReviewersDTO false "Reviewer"
// @Success 200 {object} submission.Submission
// @Failure 403 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /submissions/{id}/assign-reviewers [post]
func (h *SubmissionHandler) AssignReviewers(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	var input submission.AssignReviewersDTO
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			bindError(c, err)
			return
		}
	}

	sub, err := h.workflow.AssignReviewers(c.Request.Context(), actor, application.AssignReviewersInput{
		SubmissionID: id,
		ReviewerID:   input.ReviewerID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}
